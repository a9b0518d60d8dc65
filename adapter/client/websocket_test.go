package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"
)

// echoServer answers every text frame with "echo:<frame>" and hangs up on "bye"
func echoServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer c.Close(websocket.StatusInternalError, "")
		ctx := r.Context()
		for {
			typ, msg, err := c.Read(ctx)
			if err != nil {
				return
			}
			if string(msg) == "bye" {
				c.Close(websocket.StatusNormalClosure, "bye")
				return
			}
			if err := c.Write(ctx, typ, append([]byte("echo:"), msg...)); err != nil {
				return
			}
		}
	}))
}

func socketCtx(srv *httptest.Server) context.Context {
	ctx := context.WithValue(context.Background(), WssUrl, "ws"+strings.TrimPrefix(srv.URL, "http"))
	ctx = context.WithValue(ctx, Id, "test")
	ctx = context.WithValue(ctx, MsgLen, int64(8))
	return ctx
}

func recv(t *testing.T, tr Transport) ([]byte, bool) {
	t.Helper()
	select {
	case msg, ok := <-tr.Messages():
		return msg, ok
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for frame")
		return nil, false
	}
}

func TestWssSocketSendAndReceive(t *testing.T) {
	srv := echoServer(t)
	defer srv.Close()

	sc, err := NewWssSocket(socketCtx(srv))
	require.NoError(t, err)
	defer sc.Close()
	assert.Equal(t, StatusOpened, sc.Status())

	require.NoError(t, sc.Send([]byte(`{"event":"ping"}`)))
	msg, ok := recv(t, sc)
	require.True(t, ok)
	assert.Equal(t, `echo:{"event":"ping"}`, string(msg))
	assert.NotZero(t, sc.LastResponse())
}

func TestWssSocketRemoteClose(t *testing.T) {
	srv := echoServer(t)
	defer srv.Close()

	sc, err := NewWssSocket(socketCtx(srv))
	require.NoError(t, err)

	require.NoError(t, sc.Send([]byte("bye")))
	_, ok := recv(t, sc)
	assert.False(t, ok)
	assert.Error(t, sc.Err())
	assert.Equal(t, StatusClosed, sc.Status())
	assert.ErrorIs(t, sc.Send([]byte("x")), ErrSocketClosed)
}

func TestWssSocketCloseIsIdempotent(t *testing.T) {
	srv := echoServer(t)
	defer srv.Close()

	sc, err := NewWssSocket(socketCtx(srv))
	require.NoError(t, err)

	require.NoError(t, sc.Close())
	assert.NoError(t, sc.Close())
	_, ok := recv(t, sc)
	assert.False(t, ok)
	assert.ErrorIs(t, sc.Err(), ErrSocketClosed)
}

func TestWssSocketContextCancel(t *testing.T) {
	srv := echoServer(t)
	defer srv.Close()

	ctx, cancel := context.WithCancel(socketCtx(srv))
	sc, err := NewWssSocket(ctx)
	require.NoError(t, err)

	cancel()
	_, ok := recv(t, sc)
	assert.False(t, ok)
}

func TestWssSocketDialError(t *testing.T) {
	ctx := context.WithValue(context.Background(), WssUrl, "ws://127.0.0.1:1/none")
	_, err := NewWssSocket(ctx)
	assert.Error(t, err)
}
