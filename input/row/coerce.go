package row

import (
	"database/sql/driver"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"gopkg.in/guregu/null.v3"
)

const (
	targetString  = "string"
	targetInteger = "integer"
	targetTime    = "timestamp"
)

// Layouts accepted for timestamps delivered as text, in the order tried.
// Oracle and Postgres drivers normally hand out time.Time, but text values
// show up with some driver settings and with hand-built rows.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// unwrap turns driver specific wrappers (sql.NullString, null.Int, pointers,
// ...) into the plain value they carry, nil if they are NULL.
func unwrap(column string, value interface{}, target string) (interface{}, error) {
	if value == nil {
		return nil, nil
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, nil
		}
		if _, ok := value.(driver.Valuer); !ok {
			return unwrap(column, rv.Elem().Interface(), target)
		}
	}

	if valuer, ok := value.(driver.Valuer); ok {
		v, err := valuer.Value()
		if err != nil {
			return nil, &TypeCoercionError{Column: column, Value: value, Target: target, Err: err}
		}
		return v, nil
	}

	return value, nil
}

func coerceString(column string, value interface{}) (null.String, error) {
	value, err := unwrap(column, value, targetString)
	if err != nil {
		return null.String{}, err
	}

	switch v := value.(type) {
	case nil:
		return null.String{}, nil
	case string:
		return null.StringFrom(v), nil
	case []byte:
		return null.StringFrom(string(v)), nil
	case int64:
		return null.StringFrom(strconv.FormatInt(v, 10)), nil
	case int, int8, int16, int32, uint, uint8, uint16, uint32, uint64:
		return null.StringFrom(fmt.Sprintf("%d", v)), nil
	case float64:
		return null.StringFrom(strconv.FormatFloat(v, 'f', -1, 64)), nil
	case float32:
		return null.StringFrom(strconv.FormatFloat(float64(v), 'f', -1, 32)), nil
	case bool:
		return null.StringFrom(strconv.FormatBool(v)), nil
	case time.Time:
		return null.StringFrom(v.Format(time.RFC3339Nano)), nil
	case fmt.Stringer:
		return null.StringFrom(v.String()), nil
	}

	return null.String{}, &TypeCoercionError{Column: column, Value: value, Target: targetString}
}

func coerceInt64(column string, value interface{}) (int64, error) {
	value, err := unwrap(column, value, targetInteger)
	if err != nil {
		return 0, err
	}

	switch v := value.(type) {
	case nil:
		return 0, nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, &TypeCoercionError{Column: column, Value: value, Target: targetInteger, Err: strconv.ErrRange}
		}
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return 0, &TypeCoercionError{Column: column, Value: value, Target: targetInteger, Err: strconv.ErrRange}
		}
		return int64(v), nil
	case float64:
		return floatToInt64(column, value, v)
	case float32:
		return floatToInt64(column, value, float64(v))
	case string:
		return parseInt64(column, value, v)
	case []byte:
		return parseInt64(column, value, string(v))
	}

	return 0, &TypeCoercionError{Column: column, Value: value, Target: targetInteger}
}

func floatToInt64(column string, value interface{}, f float64) (int64, error) {
	// 2^63 is exactly representable, MaxInt64 is not
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f < -(1<<63) || f >= 1<<63 {
		return 0, &TypeCoercionError{Column: column, Value: value, Target: targetInteger}
	}
	return int64(f), nil
}

func parseInt64(column string, value interface{}, s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	i, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return i, nil
	}

	// NUMBER columns are sometimes rendered as "5.0" or "1E3"
	if f, ferr := strconv.ParseFloat(s, 64); ferr == nil {
		if i, ferr := floatToInt64(column, value, f); ferr == nil {
			return i, nil
		}
	}

	return 0, &TypeCoercionError{Column: column, Value: value, Target: targetInteger, Err: err}
}

func coerceTime(column string, value interface{}) (null.Time, error) {
	value, err := unwrap(column, value, targetTime)
	if err != nil {
		return null.Time{}, err
	}

	switch v := value.(type) {
	case nil:
		return null.Time{}, nil
	case time.Time:
		return null.TimeFrom(v), nil
	case string:
		return parseTime(column, value, v)
	case []byte:
		return parseTime(column, value, string(v))
	}

	return null.Time{}, &TypeCoercionError{Column: column, Value: value, Target: targetTime}
}

func parseTime(column string, value interface{}, s string) (null.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return null.Time{}, nil
	}

	var err error
	for _, layout := range timeLayouts {
		var t time.Time
		t, err = time.Parse(layout, s)
		if err == nil {
			return null.TimeFrom(t), nil
		}
	}

	return null.Time{}, &TypeCoercionError{Column: column, Value: value, Target: targetTime, Err: err}
}
