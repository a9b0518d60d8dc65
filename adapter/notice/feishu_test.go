package notice

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifierSend(t *testing.T) {
	var got Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		_, _ = w.Write([]byte(`{"StatusCode":0,"StatusMessage":"success"}`))
	}))
	defer srv.Close()

	n := NewNotifier(srv.URL, "[okex]")
	require.NoError(t, n.Send(context.Background(), "reconnected"))
	assert.Equal(t, "text", got.MsgType)
	assert.Equal(t, "[okex] reconnected", got.Content.Text)
}

func TestNotifierErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":19001,"msg":"param invalid"}`))
	}))
	defer srv.Close()
	assert.EqualError(t, NewNotifier(srv.URL, "").Send(context.Background(), "x"), "param invalid")

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer down.Close()
	assert.Error(t, NewNotifier(down.URL, "").Send(context.Background(), "x"))
}
