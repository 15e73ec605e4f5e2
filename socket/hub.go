package socket

import (
	"context"
	"encoding/json"

	"notesapp/internal/note/model"
	"notesapp/pkg/logger"

	"github.com/gorilla/websocket"
)

const (
	NoteCreatedType = "NOTE_CREATED" // A note was persisted
	SubscribedType  = "SUBSCRIBED"   // Sent once to a client after it is registered
)

type WSMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type SubscribedPayload struct {
	ClientID    string `json:"client_id"`
	Subscribers int    `json:"subscribers"`
}

// Hub fans note events out to every connected websocket client. All client
// bookkeeping happens on the Run goroutine.
type Hub struct {
	Clients    map[*Client]bool
	Broadcast  chan WSMessage
	Register   chan *Client
	Unregister chan *Client

	done chan struct{}
}

type Client struct {
	ID   string
	Hub  *Hub
	Conn *websocket.Conn
	Send chan []byte
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Broadcast:  make(chan WSMessage),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run processes registrations and broadcasts until ctx is done, then
// disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for client := range h.Clients {
				h.drop(client)
			}
			logger.Sugar.Info("Hub stopped")
			return

		case client := <-h.Register:
			h.Clients[client] = true
			payload, _ := json.Marshal(SubscribedPayload{ClientID: client.ID, Subscribers: len(h.Clients)})
			msg, _ := json.Marshal(WSMessage{Type: SubscribedType, Payload: payload})
			client.Send <- msg
			logger.Sugar.Infof("Client %s subscribed (%d connected)", client.ID, len(h.Clients))

		case client := <-h.Unregister:
			if h.Clients[client] {
				h.drop(client)
				logger.Sugar.Infof("Client %s unsubscribed (%d connected)", client.ID, len(h.Clients))
			}

		case msg := <-h.Broadcast:
			// Marshal the message once to be sent to all clients.
			payload, err := json.Marshal(msg)
			if err != nil {
				logger.Sugar.Errorf("Error marshalling broadcast message: %v", err)
				continue
			}
			for client := range h.Clients {
				select {
				case client.Send <- payload:
				default:
					// A lagging client must not block the hub.
					logger.Sugar.Warnf("Client %s's send buffer is full. Unregistering.", client.ID)
					h.drop(client)
				}
			}
		}
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.Clients, client)
	close(client.Send)
}

// BroadcastNote queues a NOTE_CREATED event. It returns immediately once the
// hub has stopped.
func (h *Hub) BroadcastNote(note model.Note) {
	payload, err := json.Marshal(note)
	if err != nil {
		logger.Sugar.Errorf("Error marshalling note %s: %v", note.ID, err)
		return
	}
	select {
	case h.Broadcast <- WSMessage{Type: NoteCreatedType, Payload: payload}:
	case <-h.done:
	}
}

func (h *Hub) register(client *Client) bool {
	select {
	case h.Register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) unregister(client *Client) {
	select {
	case h.Unregister <- client:
	case <-h.done:
	}
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}
