package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSeconds(t *testing.T) {
	assert.Equal(t, 30*time.Second, Seconds(0, 30*time.Second))
	assert.Equal(t, 5*time.Second, Seconds(5, 30*time.Second))
}

func TestFormatStr(t *testing.T) {
	ms := time.Date(2020, 1, 2, 3, 4, 5, 6e6, time.Local).UnixMilli()
	assert.Equal(t, "2020-01-02 03:04:05.006", FormatStr(ms))
	assert.Equal(t, "2020-01-02 03:04:05", FormatStr(ms/1000))
}

func TestNowStr(t *testing.T) {
	assert.Len(t, NowStr("-", " ", ":"), len("2006-01-02 15:04:05"))
}
