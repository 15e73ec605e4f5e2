package model

import "time"

type Note struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateNoteRequest struct {
	Text string `json:"text"`
}
