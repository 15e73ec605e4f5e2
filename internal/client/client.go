// Package client talks to the notes API over HTTP and its websocket feed.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	OpListNotes  = "list notes"
	OpCreateNote = "create note"
	OpWatch      = "watch notes"

	notesPath       = "/api/notes"
	defaultTimeout  = 10 * time.Second
	maxResponseBody = 10 << 20
)

// ErrRemoteCall matches every failure returned by Client. Network errors,
// unexpected status codes and malformed bodies are not told apart.
var ErrRemoteCall = errors.New("remote call failed")

type RemoteError struct {
	Op         string
	StatusCode int // zero when no response arrived
	Err        error
}

func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d): %v", e.Op, ErrRemoteCall, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, ErrRemoteCall, e.Err)
}

func (e *RemoteError) Unwrap() []error {
	return []error{ErrRemoteCall, e.Err}
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: defaultTimeout},
	}
}

// ListNotes fetches every note in server order.
func (c *Client) ListNotes(ctx context.Context) ([]Note, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+notesPath, nil)
	if err != nil {
		return nil, &RemoteError{Op: OpListNotes, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	body, status, err := c.do(req)
	if err != nil {
		return nil, &RemoteError{Op: OpListNotes, StatusCode: status, Err: err}
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &RemoteError{Op: OpListNotes, StatusCode: status, Err: errors.New("response is not a JSON array")}
	}
	var items []noteResponse
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, &RemoteError{Op: OpListNotes, StatusCode: status, Err: err}
	}
	notes := make([]Note, 0, len(items))
	for i, item := range items {
		n, err := item.note()
		if err != nil {
			return nil, &RemoteError{Op: OpListNotes, StatusCode: status, Err: fmt.Errorf("item %d: %w", i, err)}
		}
		notes = append(notes, n)
	}
	return notes, nil
}

// CreateNote posts text as-is, including the empty string.
func (c *Client) CreateNote(ctx context.Context, text string) (Note, error) {
	payload, err := json.Marshal(createRequest{Text: text})
	if err != nil {
		return Note{}, &RemoteError{Op: OpCreateNote, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+notesPath, bytes.NewReader(payload))
	if err != nil {
		return Note{}, &RemoteError{Op: OpCreateNote, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	body, status, err := c.do(req)
	if err != nil {
		return Note{}, &RemoteError{Op: OpCreateNote, StatusCode: status, Err: err}
	}

	var resp noteResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Note{}, &RemoteError{Op: OpCreateNote, StatusCode: status, Err: err}
	}
	n, err := resp.note()
	if err != nil {
		return Note{}, &RemoteError{Op: OpCreateNote, StatusCode: status, Err: err}
	}
	return n, nil
}

// do sends req and returns the body of a 2xx response.
func (c *Client) do(req *http.Request) ([]byte, int, error) {
	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	res, err := httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBody))
	if err != nil {
		return nil, res.StatusCode, err
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, res.StatusCode, fmt.Errorf("unexpected status: %s", strings.TrimSpace(string(body)))
	}
	return body, res.StatusCode, nil
}
