package text

import (
	"context"
)

func GetBool(ctx context.Context, val string) bool {
	if ret, ok := ctx.Value(val).(bool); ok {
		return ret
	}
	return false
}

func GetInt64(ctx context.Context, val string) int64 {
	if ret, ok := ctx.Value(val).(int64); ok {
		return ret
	}
	return 0
}

func GetString(ctx context.Context, val string) string {
	if ret, ok := ctx.Value(val).(string); ok {
		return ret
	}
	return ""
}
