package websocket

import (
	"log"
	"sync"

	"github.com/dom/league-skinset-finder/internal/roster"
	"github.com/dom/league-skinset-finder/internal/service"
)

// Hub tracks the live sessions so they can be torn down on disconnect and on
// shutdown. Sessions never talk to each other.
type Hub struct {
	resolve    *service.ResolveService
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	stop       chan struct{}
	stopOnce   sync.Once
	done       chan struct{} // closed when Run() exits
	mu         sync.RWMutex
}

func NewHub(resolve *service.ResolveService) *Hub {
	return &Hub{
		resolve:    resolve,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	defer close(h.done) // Signal that Run() has exited

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			clients := h.clients
			h.clients = make(map[*Client]bool)
			h.mu.Unlock()

			for client := range clients {
				client.session.Stop()
				client.Close()
			}
			log.Printf("websocket hub stopped, closed %d sessions", len(clients))
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			_, ok := h.clients[client]
			delete(h.clients, client)
			h.mu.Unlock()

			if ok {
				client.session.Stop()
				client.Close()
			}
		}
	}
}

// Stop closes every session and blocks until Run has returned.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.stop) })
	<-h.done
}

// Register starts a session for client. A nil roster starts from an empty one.
// The session must be registered before the client's pumps start.
func (h *Hub) Register(client *Client, r *roster.Roster) {
	if r == nil {
		r = roster.New(h.resolve.Catalog())
	}
	client.session = newSession(client, h.resolve, r)
	go client.session.Run()

	select {
	case h.register <- client:
	case <-h.done:
		client.session.Stop()
		client.Close()
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
