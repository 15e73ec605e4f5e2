package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"notesapp/internal/note/model"
	"notesapp/internal/note/repository"
	"notesapp/internal/note/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenRepo struct{}

func (brokenRepo) List(context.Context) ([]model.Note, error) { return nil, errors.New("down") }
func (brokenRepo) Create(context.Context, model.Note) error { return errors.New("down") }

func newTestHandler() *NoteHandler {
	return NewNoteHandler(service.NewNoteService(repository.NewMemoryRepository(), nil))
}

func TestGetNotesEmptyIsArray(t *testing.T) {
	h := newTestHandler()

	rec := httptest.NewRecorder()
	h.Notes(rec, httptest.NewRequest(http.MethodGet, "/api/notes", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCreateThenList(t *testing.T) {
	h := newTestHandler()

	for _, text := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(`{"text":"`+text+`"}`))
		req.Header.Set("Content-Type", "application/json")
		h.Notes(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)

		var created model.Note
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, text, created.Text)
	}

	rec := httptest.NewRecorder()
	h.Notes(rec, httptest.NewRequest(http.MethodGet, "/api/notes", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var notes []model.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &notes))
	require.Len(t, notes, 2)
	assert.Equal(t, "a", notes[0].Text)
	assert.Equal(t, "b", notes[1].Text)
}

func TestCreateEmptyText(t *testing.T) {
	h := newTestHandler()

	rec := httptest.NewRecorder()
	h.Notes(rec, httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(`{"text":""}`)))

	require.Equal(t, http.StatusCreated, rec.Code)
	var created model.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "", created.Text)
}

func TestCreateInvalidBody(t *testing.T) {
	cases := map[string]string{
		"truncated":     `{"text":`,
		"empty":         ``,
		"null":          `null`,
		"string":        `"hello"`,
		"trailing data": `{"text":"a"}{"text":"b"}`,
		"trailing junk": `{"text":"a"} x`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			h := newTestHandler()

			rec := httptest.NewRecorder()
			h.Notes(rec, httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(body)))
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			notes, err := h.Service.ListNotes(context.Background())
			require.NoError(t, err)
			assert.Empty(t, notes)
		})
	}
}

func TestCreateAcceptsTrailingWhitespace(t *testing.T) {
	h := newTestHandler()

	rec := httptest.NewRecorder()
	h.Notes(rec, httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader("{\"text\":\"a\"}\n")))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateBodyTooLarge(t *testing.T) {
	h := newTestHandler()

	body := `{"text":"` + strings.Repeat("a", maxRequestBody) + `"}`
	rec := httptest.NewRecorder()
	h.Notes(rec, httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(body)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestHandler()

	rec := httptest.NewRecorder()
	h.Notes(rec, httptest.NewRequest(http.MethodDelete, "/api/notes", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, POST", rec.Header().Get("Allow"))
}

func TestRepositoryFailures(t *testing.T) {
	h := NewNoteHandler(service.NewNoteService(brokenRepo{}, nil))

	rec := httptest.NewRecorder()
	h.Notes(rec, httptest.NewRequest(http.MethodGet, "/api/notes", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = httptest.NewRecorder()
	h.Notes(rec, httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(`{"text":"x"}`)))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
