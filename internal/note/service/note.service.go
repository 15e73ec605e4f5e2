package service

import (
	"context"
	"fmt"
	"time"

	"notesapp/internal/note/model"
	"notesapp/internal/note/repository"

	"github.com/oklog/ulid/v2"
)

// Broadcaster is notified of every note that was persisted.
type Broadcaster interface {
	BroadcastNote(note model.Note)
}

type NoteService struct {
	Repo repository.Repository
	Hub  Broadcaster

	now func() time.Time
}

func NewNoteService(repo repository.Repository, hub Broadcaster) *NoteService {
	return &NoteService{Repo: repo, Hub: hub, now: time.Now}
}

func (s *NoteService) ListNotes(ctx context.Context) ([]model.Note, error) {
	notes, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []model.Note{}
	}
	return notes, nil
}

// CreateNote stores text verbatim under a fresh id. Empty text is accepted.
func (s *NoteService) CreateNote(ctx context.Context, text string) (model.Note, error) {
	now := s.now().UTC()
	id, err := ulid.New(ulid.Timestamp(now), ulid.DefaultEntropy())
	if err != nil {
		return model.Note{}, fmt.Errorf("generate note id: %w", err)
	}

	note := model.Note{ID: id.String(), Text: text, CreatedAt: now}
	if err := s.Repo.Create(ctx, note); err != nil {
		return model.Note{}, err
	}

	if s.Hub != nil {
		s.Hub.BroadcastNote(note)
	}
	return note, nil
}
