package text

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetters(t *testing.T) {
	ctx := context.WithValue(context.Background(), "s", "v")
	ctx = context.WithValue(ctx, "b", true)
	ctx = context.WithValue(ctx, "i", int64(7))

	assert.Equal(t, "v", GetString(ctx, "s"))
	assert.True(t, GetBool(ctx, "b"))
	assert.Equal(t, int64(7), GetInt64(ctx, "i"))

	assert.Equal(t, "", GetString(ctx, "missing"))
	assert.Equal(t, int64(0), GetInt64(ctx, "s"))
	assert.False(t, GetBool(ctx, "s"))
}
