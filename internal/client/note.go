package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ID is an opaque note identifier. The API may send it as a JSON string or
// number; either way it is kept as text.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("note id must be a string or a number: %w", err)
		}
		*id = ID(n.String())
		return nil
	}
}

func (id ID) String() string { return string(id) }

type Note struct {
	ID   ID     `json:"id"`
	Text string `json:"text"`
}

type createRequest struct {
	Text string `json:"text"`
}

// noteResponse is a note as sent by the server. Both fields are required.
type noteResponse struct {
	ID   *ID     `json:"id"`
	Text *string `json:"text"`
}

func (r noteResponse) note() (Note, error) {
	if r.ID == nil || *r.ID == "" || r.Text == nil {
		return Note{}, errors.New("note lacks id or text")
	}
	return Note{ID: *r.ID, Text: *r.Text}, nil
}
