package websocket

import (
	"context"
	"sync"

	"ats-assistant-be/internal/pkg/logger"
	"ats-assistant-be/pkg/jsonx"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "ats-assistant:ws"

// Hub tracks every open chat connection per user. Final replies are fanned
// out to all of a user's connections (other tabs, other devices); with Redis
// configured they also reach connections held by other instances.
type Hub struct {
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	rdb        *redis.Client
	instanceID string

	logger logger.ILogger
}

type clusterMessage struct {
	Origin       string `json:"origin"`
	TargetUserID string `json:"target_user_id"`
	Frame        []byte `json:"frame"`
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			clients := h.clients[client.UserID]
			for i, c := range clients {
				if c == client {
					h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
					break
				}
			}
			if len(h.clients[client.UserID]) == 0 {
				delete(h.clients, client.UserID)
			}
			h.mu.Unlock()
			h.logger.Info("Hub", "Client unregistered", map[string]interface{}{"user_id": client.UserID})
		}
	}
}

// Connections reports how many local connections a user holds.
func (h *Hub) Connections(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// SendToUser delivers a frame to every local connection of the user and
// publishes it for the other instances.
func (h *Hub) SendToUser(ctx context.Context, userID string, frame []byte) {
	h.deliverLocal(userID, frame)

	if h.rdb == nil {
		return
	}
	payload, err := jsonx.Marshal(clusterMessage{Origin: h.instanceID, TargetUserID: userID, Frame: frame})
	if err != nil {
		return
	}
	if err := h.rdb.Publish(ctx, clusterChannel, payload).Err(); err != nil {
		h.logger.Warn("Hub", "Failed to publish frame to Redis", map[string]interface{}{"error": err.Error()})
	}
}

func (h *Hub) deliverLocal(userID string, frame []byte) {
	h.mu.RLock()
	clients := append([]*Client(nil), h.clients[userID]...)
	h.mu.RUnlock()

	for _, client := range clients {
		if !client.trySend(frame) {
			h.logger.Warn("Hub", "Client Send buffer full, dropping frame", map[string]interface{}{"user_id": userID})
		}
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload clusterMessage
		if err := jsonx.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "Redis msg parse error", map[string]interface{}{"error": err.Error()})
			continue
		}
		if payload.Origin == h.instanceID {
			continue
		}
		h.deliverLocal(payload.TargetUserID, payload.Frame)
	}
}
