package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/Dosada05/fast-orienteering/models"
)

// Hub рассылает события соревнования всем подключённым участникам.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	logger     *slog.Logger
	done       chan struct{}

	mu sync.RWMutex
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
		done:       make(chan struct{}),
	}
}

// Run обслуживает регистрацию клиентов и рассылку до отмены ctx.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				client.close()
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Debug("live client registered", slog.Int("clients", total))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				client.close()
				delete(h.clients, client)
			}
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Debug("live client unregistered", slog.Int("clients", total))

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				if !client.trySend(message) {
					h.logger.Warn("live client send buffer full, message dropped")
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Publish реализует services.Notifier и никогда не блокирует вызывающего.
func (h *Hub) Publish(event models.LiveEvent) {
	messageBytes, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to marshal live event", slog.String("type", string(event.Type)), slog.Any("error", err))
		return
	}
	select {
	case h.broadcast <- messageBytes:
	default:
		h.logger.Warn("live broadcast queue full, event dropped", slog.String("type", string(event.Type)))
	}
}

// ClientCount возвращает число подключённых клиентов.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
