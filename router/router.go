package router

import (
	"net/http"

	noteHandler "notesapp/internal/note"
	"notesapp/internal/note/repository"
	"notesapp/internal/note/service"
	"notesapp/middleware"
	"notesapp/socket"
)

func Setup(repo repository.Repository, hub *socket.Hub, corsOrigin string) http.Handler {
	mux := http.NewServeMux()

	// WebSocket feed of created notes
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		socket.ServeWs(hub, w, r)
	})

	// REST API
	noteService := service.NewNoteService(repo, hub)
	notes := noteHandler.NewNoteHandler(noteService)
	mux.HandleFunc("/api/notes", notes.Notes)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return middleware.LoggingMiddleware(middleware.CORSMiddleware(corsOrigin)(mux))
}
