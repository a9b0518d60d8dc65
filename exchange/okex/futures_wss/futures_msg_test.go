package futures_wss

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMessagePong(t *testing.T) {
	f, err := NewMsgHandler().ReadMessage([]byte(` {"event":"pong"}`))
	require.NoError(t, err)
	assert.Equal(t, EventPong, f.Event)
	assert.Empty(t, f.Entries)
}

func TestReadMessageEntries(t *testing.T) {
	msg := `[{"channel":"login","data":{"result":true}},
		{"channel":"ok_futureusd_trade","success":false,"errorcode":20007}]`
	f, err := NewMsgHandler().ReadMessage([]byte(msg))
	require.NoError(t, err)
	require.Len(t, f.Entries, 2)

	login := f.Entries[0]
	assert.Equal(t, ChannelLogin, login.Channel)
	assert.True(t, login.Result().Get("result").MustBool())
	assert.False(t, login.Declined())

	trade := f.Entries[1]
	assert.True(t, trade.Declined())
	assert.Equal(t, int64(20007), trade.Code())
}

func TestReadMessageMalformed(t *testing.T) {
	for _, msg := range []string{"", "pong", "[{", `{"event":`} {
		_, err := NewMsgHandler().ReadMessage([]byte(msg))
		assert.ErrorIs(t, err, ErrMalformedFrame, msg)
	}
}

func TestDeclined(t *testing.T) {
	cases := map[string]struct {
		resp ServerResponse
		want bool
	}{
		"ok":               {ServerResponse{Data: []byte(`{"result":true,"order_id":1}`)}, false},
		"string result":    {ServerResponse{Data: []byte(`{"result":"true"}`)}, false},
		"result false":     {ServerResponse{Data: []byte(`{"result":false}`)}, true},
		"data error_code":  {ServerResponse{Data: []byte(`{"result":false,"error_code":10001}`)}, true},
		"success false":    {ServerResponse{Success: []byte(`false`)}, true},
		"zero errorcode":   {ServerResponse{ErrorCode: []byte(`0`), Data: []byte(`{}`)}, false},
		"string errorcode": {ServerResponse{ErrorCode: []byte(`"10005"`)}, true},
		"no payload":       {ServerResponse{}, false},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, c.want, c.resp.Declined())
		})
	}
}
