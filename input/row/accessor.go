// Package row provides null-tolerant, typed access to a single row of a
// monitoring query result.
//
// Every lookup degrades to the zero value of its type when the column is
// missing or NULL, since monitoring views differ slightly between server
// versions. Values that are present but cannot be converted are reported as
// a *TypeCoercionError.
package row

import (
	"gopkg.in/guregu/null.v3"
)

// Accessor - Named-column access to one result row
type Accessor interface {
	String(column string) (null.String, error)
	Int64(column string) (int64, error)
	Time(column string) (null.Time, error)
}

// Map - Row held as column name to raw driver value. Column names are
// matched case-sensitively.
type Map map[string]interface{}

func (m Map) String(column string) (null.String, error) {
	return coerceString(column, m[column])
}

func (m Map) Int64(column string) (int64, error) {
	return coerceInt64(column, m[column])
}

func (m Map) Time(column string) (null.Time, error) {
	return coerceTime(column, m[column])
}
