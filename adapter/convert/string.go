package convert

import (
	"fmt"
	"strconv"
)

// GetString converts interface to string.
func GetString(v interface{}) string {
	switch result := v.(type) {
	case float64:
		return strconv.FormatFloat(result, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(result, 10)
	case string:
		return result
	case int32:
		return strconv.FormatInt(int64(result), 10)
	case float32:
		return strconv.FormatFloat(float64(result), 'f', -1, 32)
	case int:
		return strconv.FormatInt(int64(result), 10)
	case []byte:
		return string(result)
	case bool:
		return strconv.FormatBool(result)
	default:
		if v != nil {
			return fmt.Sprint(result)
		}
	}
	return ""
}

// GetInt64 converts interface to int64.
func GetInt64(v interface{}) int64 {
	switch result := v.(type) {
	case string:
		value, err := strconv.ParseInt(result, 10, 64)
		if err != nil {
			return 0
		}
		return value
	case int32:
		return int64(result)
	case int:
		return int64(result)
	case int64:
		return result
	case float64:
		return int64(result)
	default:
		if d := GetString(v); d != "" {
			value, _ := strconv.ParseInt(d, 10, 64)
			return value
		}
	}
	return 0
}

// GetBool converts interface to bool. Strings are parsed, so "true" and true agree.
func GetBool(v interface{}) bool {
	switch result := v.(type) {
	case bool:
		return result
	default:
		if d := GetString(v); d != "" {
			value, _ := strconv.ParseBool(d)
			return value
		}
	}
	return false
}

// BoolPtr returns a pointer to b
func BoolPtr(b bool) *bool {
	return &b
}
