package broadcast

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

// Event is the frame pushed to every connected listener when a post
// changes. Post carries the post object for create/update and the bare
// post id for delete.
type Event struct {
	Action string `json:"action"`
	Post   any    `json:"post"`
}

const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Hub fans post events out to all connected websocket clients. It is
// created once at startup and lives for the whole process; delivery is
// best-effort and a slow or dead client never blocks a publish.
type Hub struct {
	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	events     chan []byte
	upgrader   websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		events:     make(chan []byte, 64),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
		case message := <-h.events:
			for c := range h.clients {
				select {
				case c.send <- message:
				default:
					// client is not keeping up, drop it
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

// Publish queues an event for every connected client. A full queue drops
// the frame instead of blocking the caller.
func (h *Hub) Publish(event Event) {
	message, err := json.Marshal(event)
	if err != nil {
		log.Printf("broadcast: failed to marshal %s event: %v", event.Action, err)
		return
	}

	select {
	case h.events <- message:
	default:
		log.Printf("broadcast: event queue full, dropping %s event", event.Action)
	}
}

// ServeWS upgrades the request and registers the connection with the hub.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("broadcast: upgrade failed: %v", err)
		return
	}

	c := &client{hub: h, conn: conn, send: make(chan []byte, sendBuffer)}
	h.register <- c

	go c.writePump()
	go c.readPump()
}
