package notice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
)

// Notifier posts text messages to a feishu bot webhook
type Notifier struct {
	Url    string
	Prefix string
	Client *http.Client
}

func NewNotifier(url, prefix string) *Notifier {
	return &Notifier{Url: url, Prefix: prefix, Client: &http.Client{Timeout: 5 * time.Second}}
}

func (n *Notifier) Send(ctx context.Context, text string) error {
	if n.Prefix != "" {
		text = n.Prefix + " " + text
	}
	body, err := json.Marshal(&Message{MsgType: "text", Content: Content{Text: text}})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.Url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := n.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("notice webhook status %d: %s", resp.StatusCode, data)
	}
	var response Response
	if err = json.Unmarshal(data, &response); err != nil {
		return err
	}
	if response.Code != 0 {
		return errors.New(response.Msg)
	}
	if response.StatusMessage != "" && response.StatusMessage != "success" {
		return errors.New(response.StatusMessage)
	}
	return nil
}
