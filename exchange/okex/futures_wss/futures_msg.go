package futures_wss

import (
	"bytes"
	"fmt"

	simplejson "github.com/bitly/go-simplejson"
	json "github.com/goccy/go-json"
)

// Frame is one parsed inbound message: either a control event or channel entries
type Frame struct {
	Event   string
	Entries []ServerResponse
}

type MsgHandler struct{}

func NewMsgHandler() *MsgHandler {
	return &MsgHandler{}
}

// ReadMessage parses a frame once. Arrays are channel frames, objects are
// control frames identified by their event field.
func (mh *MsgHandler) ReadMessage(message []byte) (*Frame, error) {
	trimmed := bytes.TrimSpace(message)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty frame", ErrMalformedFrame)
	}
	switch trimmed[0] {
	case '[':
		var entries []ServerResponse
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
		}
		return &Frame{Entries: entries}, nil
	case '{':
		js, err := simplejson.NewJson(trimmed)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
		}
		return &Frame{Event: js.Get("event").MustString()}, nil
	default:
		return nil, fmt.Errorf("%w: %.64s", ErrMalformedFrame, trimmed)
	}
}
