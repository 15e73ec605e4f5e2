package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"notesapp/internal/note/model"
	"notesapp/internal/note/repository"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHub struct {
	notes []model.Note
}

func (h *recordingHub) BroadcastNote(note model.Note) { h.notes = append(h.notes, note) }

type failingRepo struct{ err error }

func (r failingRepo) List(context.Context) ([]model.Note, error) { return nil, r.err }
func (r failingRepo) Create(context.Context, model.Note) error { return r.err }

func TestCreateNoteAssignsIDAndBroadcasts(t *testing.T) {
	repo := repository.NewMemoryRepository()
	hub := &recordingHub{}
	svc := NewNoteService(repo, hub)
	fixed := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	note, err := svc.CreateNote(context.Background(), "hello")
	require.NoError(t, err)

	parsed, err := ulid.Parse(note.ID)
	require.NoError(t, err)
	assert.Equal(t, ulid.Timestamp(fixed), parsed.Time())
	assert.Equal(t, "hello", note.Text)
	assert.Equal(t, fixed, note.CreatedAt)

	require.Len(t, hub.notes, 1)
	assert.Equal(t, note, hub.notes[0])

	stored, err := svc.ListNotes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Note{note}, stored)
}

func TestCreateNoteKeepsTextVerbatim(t *testing.T) {
	svc := NewNoteService(repository.NewMemoryRepository(), nil)

	for _, text := range []string{"", "  padded  ", "line\nbreak"} {
		note, err := svc.CreateNote(context.Background(), text)
		require.NoError(t, err)
		assert.Equal(t, text, note.Text)
	}
}

func TestCreateNoteIDsAreOrdered(t *testing.T) {
	svc := NewNoteService(repository.NewMemoryRepository(), nil)

	var prev string
	for i := 0; i < 50; i++ {
		note, err := svc.CreateNote(context.Background(), "n")
		require.NoError(t, err)
		assert.Greater(t, note.ID, prev)
		prev = note.ID
	}
}

func TestCreateNoteRepositoryError(t *testing.T) {
	boom := errors.New("boom")
	hub := &recordingHub{}
	svc := NewNoteService(failingRepo{err: boom}, hub)

	_, err := svc.CreateNote(context.Background(), "x")
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, hub.notes, "nothing is broadcast when persistence fails")
}

func TestListNotesNeverNil(t *testing.T) {
	svc := NewNoteService(repository.NewMemoryRepository(), nil)

	notes, err := svc.ListNotes(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, notes)
}
