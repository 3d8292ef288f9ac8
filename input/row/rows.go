package row

import (
	"github.com/jmoiron/sqlx"
)

// FromRows - Copies the current row of rows into a Map. Call only after
// rows.Next() returned true.
func FromRows(rows *sqlx.Rows) (Map, error) {
	m := make(map[string]interface{})
	if err := rows.MapScan(m); err != nil {
		return nil, &MalformedRowError{Err: err}
	}
	return Map(m), nil
}

// Each - Calls fn for every row in rows, in cursor order. Errors returned by
// fn are passed through as-is; cursor failures become *MalformedRowError.
func Each(rows *sqlx.Rows, fn func(Accessor) error) error {
	for rows.Next() {
		m, err := FromRows(rows)
		if err != nil {
			return err
		}
		if err = fn(m); err != nil {
			return err
		}
	}

	if err := rows.Err(); err != nil {
		return &MalformedRowError{Err: err}
	}

	return nil
}
