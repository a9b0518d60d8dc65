package timer

import (
	"fmt"
	"time"
)

// MicNow returns unix milliseconds
func MicNow() int64 {
	return time.Now().UnixNano() / 1000000
}

func Now() int64 {
	return time.Now().Unix()
}

// FormatStr renders a unix second or millisecond timestamp
func FormatStr(ts int64) string {
	if ts > 1e10 {
		return time.UnixMilli(ts).Format("2006-01-02 15:04:05.000")
	}
	return time.Unix(ts, 0).Format("2006-01-02 15:04:05")
}

func NowStr(dsep, sep, hsep string) string {
	baseFormat := fmt.Sprintf("2006%s01%s02%s15%s04%s05", dsep, dsep, sep, hsep, hsep)
	return time.Now().Format(baseFormat)
}

// Seconds converts a config interval in seconds, falling back to def when unset
func Seconds(sec int64, def time.Duration) time.Duration {
	if sec <= 0 {
		return def
	}
	return time.Duration(sec) * time.Second
}
