package row

import "gopkg.in/guregu/null.v3"

// Reader - Reads columns from an Accessor one after another, keeping the
// first error. Once an error occurred, all further reads return zero values
// and are not forwarded to the accessor.
type Reader struct {
	r   Accessor
	err error
}

func NewReader(r Accessor) *Reader {
	return &Reader{r: r}
}

func (rd *Reader) String(column string) null.String {
	if rd.err != nil {
		return null.String{}
	}
	var v null.String
	v, rd.err = rd.r.String(column)
	return v
}

func (rd *Reader) Int64(column string) int64 {
	if rd.err != nil {
		return 0
	}
	var v int64
	v, rd.err = rd.r.Int64(column)
	return v
}

func (rd *Reader) Time(column string) null.Time {
	if rd.err != nil {
		return null.Time{}
	}
	var v null.Time
	v, rd.err = rd.r.Time(column)
	return v
}

// Err - First error returned by the accessor, if any
func (rd *Reader) Err() error {
	return rd.err
}
