package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"notesapp/internal/note/model"
	"notesapp/internal/note/service"
	"notesapp/pkg/logger"
)

const maxRequestBody = 1 << 20

type NoteHandler struct {
	Service *service.NoteService
}

func NewNoteHandler(service *service.NoteService) *NoteHandler {
	return &NoteHandler{Service: service}
}

// Notes serves GET and POST on the collection path.
func (h *NoteHandler) Notes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.GetNotes(w, r)
	case http.MethodPost:
		h.CreateNote(w, r)
	default:
		w.Header().Set("Allow", strings.Join([]string{http.MethodGet, http.MethodPost}, ", "))
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *NoteHandler) GetNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.Service.ListNotes(r.Context())
	if err != nil {
		logger.Sugar.Errorf("Handler: Failed to fetch notes: %v", err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, notes)
}

func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCreateRequest(w, r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	note, err := h.Service.CreateNote(r.Context(), req.Text)
	if err != nil {
		logger.Sugar.Errorf("Handler: Failed to create note: %v", err)
		http.Error(w, "Failed to create note", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, note)
}

// decodeCreateRequest reads exactly one JSON object from the body. A top-level
// null or trailing data is rejected.
func decodeCreateRequest(w http.ResponseWriter, r *http.Request) (model.CreateNoteRequest, error) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	var req *model.CreateNoteRequest
	if err := dec.Decode(&req); err != nil {
		return model.CreateNoteRequest{}, err
	}
	if req == nil {
		return model.CreateNoteRequest{}, errors.New("request body is null")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after request object")
		}
		return model.CreateNoteRequest{}, err
	}
	return *req, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Sugar.Errorf("Handler: Failed to encode response: %v", err)
	}
}
