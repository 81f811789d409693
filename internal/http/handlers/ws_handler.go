package handlers

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/campaign-studio/backend/internal/auth"
	"github.com/campaign-studio/backend/internal/config"
	"github.com/campaign-studio/backend/internal/events"
	"github.com/campaign-studio/backend/internal/services"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// wsSender is the write half of a websocket connection. Declared as an
// interface so registry behavior can be tested without real sockets.
type wsSender interface {
	WriteMessage(messageType int, data []byte) error
}

// subscriptionRegistry tracks which conversation each connection listens
// to. A connection holds at most one subscription: attaching to a new
// conversation silently detaches the previous one.
type subscriptionRegistry struct {
	mu             sync.RWMutex
	byConversation map[uuid.UUID]map[wsSender]struct{}
	byConn         map[wsSender]uuid.UUID
}

func newSubscriptionRegistry() *subscriptionRegistry {
	return &subscriptionRegistry{
		byConversation: make(map[uuid.UUID]map[wsSender]struct{}),
		byConn:         make(map[wsSender]uuid.UUID),
	}
}

func (r *subscriptionRegistry) Attach(conn wsSender, conversationID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.detachLocked(conn)
	if r.byConversation[conversationID] == nil {
		r.byConversation[conversationID] = make(map[wsSender]struct{})
	}
	r.byConversation[conversationID][conn] = struct{}{}
	r.byConn[conn] = conversationID
}

func (r *subscriptionRegistry) Detach(conn wsSender) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.detachLocked(conn)
}

func (r *subscriptionRegistry) detachLocked(conn wsSender) {
	prev, ok := r.byConn[conn]
	if !ok {
		return
	}
	delete(r.byConversation[prev], conn)
	if len(r.byConversation[prev]) == 0 {
		delete(r.byConversation, prev)
	}
	delete(r.byConn, conn)
}

func (r *subscriptionRegistry) subscribers(conversationID uuid.UUID) []wsSender {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conns := make([]wsSender, 0, len(r.byConversation[conversationID]))
	for conn := range r.byConversation[conversationID] {
		conns = append(conns, conn)
	}
	return conns
}

// StudioHub fans conversation events out to subscribed websocket clients.
type StudioHub struct {
	cfg           *config.Config
	studioService *services.StudioService
	subscriber    events.Subscriber
	registry      *subscriptionRegistry
	log           *zap.Logger
}

func NewStudioHub(cfg *config.Config, studioService *services.StudioService, subscriber events.Subscriber, log *zap.Logger) *StudioHub {
	return &StudioHub{
		cfg:           cfg,
		studioService: studioService,
		subscriber:    subscriber,
		registry:      newSubscriptionRegistry(),
		log:           log,
	}
}

func (h *StudioHub) Start(ctx context.Context) {
	_ = h.subscriber.Subscribe(ctx, events.StreamConversation, func(event events.Event) {
		h.broadcast(event)
	})
}

func (h *StudioHub) broadcast(event events.Event) {
	rawID, _ := event.Payload["conversation_id"].(string)
	conversationID, err := uuid.Parse(rawID)
	if err != nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	for _, conn := range h.registry.subscribers(conversationID) {
		_ = conn.WriteMessage(websocket.TextMessage, data)
	}
}

// WSUpgradeMiddleware checks for websocket upgrade
func WSUpgradeMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

type wsClientFrame struct {
	Action         string `json:"action"`
	ConversationID string `json:"conversation_id"`
}

func (h *StudioHub) HandleWS(conn *websocket.Conn) {
	tokenStr := conn.Query("token")
	if tokenStr == "" {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"missing token"}`))
		conn.Close()
		return
	}

	claims, err := auth.ParseJWT(h.cfg.JWTSecret, tokenStr)
	if err != nil {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"invalid token"}`))
		conn.Close()
		return
	}

	userID := claims.UserID

	defer func() {
		h.registry.Detach(conn)
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var frame wsClientFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"malformed frame"}`))
			continue
		}

		switch frame.Action {
		case "subscribe":
			h.handleSubscribe(conn, userID, frame.ConversationID)
		case "unsubscribe":
			h.registry.Detach(conn)
		default:
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"unknown action"}`))
		}
	}
}

func (h *StudioHub) handleSubscribe(conn *websocket.Conn, userID uuid.UUID, rawID string) {
	conversationID, err := uuid.Parse(rawID)
	if err != nil {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"invalid conversation_id"}`))
		return
	}

	ctx := context.Background()
	if err := h.studioService.Authorize(ctx, conversationID, userID); err != nil {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"conversation not found"}`))
		return
	}

	h.registry.Attach(conn, conversationID)

	// Send the current transcript right away so the client does not have
	// to wait for the next append.
	messages, err := h.studioService.ListMessages(ctx, conversationID, userID)
	if err != nil {
		h.log.Error("ws: snapshot load failed",
			zap.String("conversation_id", conversationID.String()), zap.Error(err))
		return
	}

	data, err := json.Marshal(events.Event{
		Type: events.EventConversationUpdated,
		Payload: map[string]any{
			"conversation_id": conversationID.String(),
			"messages":        messages,
		},
	})
	if err != nil {
		return
	}
	_ = conn.WriteMessage(websocket.TextMessage, data)
}
