package phone

import (
	"fmt"
	"reflect"
	"strconv"
)

// DistinctDigits returns the digits 0-9 present in the decimal string form
// of value, ascending and without duplicates. Characters other than '0'-'9'
// are ignored, so signs and non-numeric input are tolerated; a value with no
// digits yields an empty slice.
//
// A PhoneRecord, or a pointer to one, contributes its Components.Number.
// Other pointers are dereferenced; a nil pointer has no digits.
func DistinctDigits(value any) []int {
	var seen [10]bool
	for _, c := range []byte(decimalString(value)) {
		if c >= '0' && c <= '9' {
			seen[c-'0'] = true
		}
	}

	result := make([]int, 0, len(seen))
	for d, ok := range seen {
		if ok {
			result = append(result, d)
		}
	}
	return result
}

// RecordDigits is DistinctDigits of rec.Components.Number.
func RecordDigits(rec *PhoneRecord) []int {
	if rec == nil {
		return DistinctDigits(nil)
	}
	return DistinctDigits(rec.Components.Number)
}

// decimalString avoids exponent notation for floats ("9999999999", not
// "9.999999999e+09"). Nil pointers yield "".
func decimalString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case *PhoneRecord:
		if v == nil {
			return ""
		}
		return strconv.FormatInt(v.Components.Number, 10)
	case PhoneRecord:
		return strconv.FormatInt(v.Components.Number, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	}

	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		return decimalString(rv.Elem().Interface())
	}
	return fmt.Sprint(value)
}
