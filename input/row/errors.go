package row

import "fmt"

// TypeCoercionError - A column value is present but doesn't convert to the
// type the field is declared as (e.g. non-numeric text in an integer column)
type TypeCoercionError struct {
	Column string
	Value  interface{}
	Target string
	Err    error
}

func (e *TypeCoercionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("column %s: cannot convert %T value %v to %s: %s", e.Column, e.Value, e.Value, e.Target, e.Err)
	}
	return fmt.Sprintf("column %s: cannot convert %T value %v to %s", e.Column, e.Value, e.Value, e.Target)
}

func (e *TypeCoercionError) Unwrap() error {
	return e.Err
}

// MalformedRowError - The underlying cursor could not produce the row, for
// example because it was closed or invalidated mid-read
type MalformedRowError struct {
	Err error
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("malformed row: %s", e.Err)
}

func (e *MalformedRowError) Unwrap() error {
	return e.Err
}
