package client

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/gorilla/websocket"
)

const noteCreatedType = "NOTE_CREATED"

type feedMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Watch subscribes to the server's websocket feed and calls fn for every
// created note. It returns nil when ctx is cancelled.
func (c *Client) Watch(ctx context.Context, fn func(Note)) error {
	wsURL := "ws" + strings.TrimPrefix(c.BaseURL, "http") + "/ws"

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return &RemoteError{Op: OpWatch, Err: err}
	}
	defer conn.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	for {
		var msg feedMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return &RemoteError{Op: OpWatch, Err: err}
		}
		if msg.Type != noteCreatedType {
			continue
		}
		var note Note
		if err := json.Unmarshal(msg.Payload, &note); err != nil {
			return &RemoteError{Op: OpWatch, Err: err}
		}
		fn(note)
	}
}
