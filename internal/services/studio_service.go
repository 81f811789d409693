package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/campaign-studio/backend/internal/events"
	"github.com/campaign-studio/backend/internal/generation"
	"github.com/campaign-studio/backend/internal/models"
	"github.com/campaign-studio/backend/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultAgentName is the only agent the studio currently exposes.
const DefaultAgentName = "marketing_strategist"

// ErrConversationNotFound covers both a missing conversation and one owned
// by another user, so that ownership is not observable from the outside.
var ErrConversationNotFound = errors.New("conversation not found")

const agentSystemPrompt = `You are an expert marketing strategist assistant. Help the user plan
campaigns, sharpen positioning, pick channels and write better briefs.
Be concrete and concise. Answer the latest user message in the context of
the conversation below.`

var replySchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"reply": map[string]any{"type": "string"},
	},
}

// StudioService manages conversational sessions. Live delivery happens over
// the events stream: every appended message republishes the full message
// list for the conversation.
type StudioService struct {
	convRepo  *repositories.ConversationRepo
	text      generation.TextGenerator
	publisher events.Publisher
	log       *zap.Logger

	replyTimeout time.Duration
}

func NewStudioService(
	convRepo *repositories.ConversationRepo,
	text generation.TextGenerator,
	publisher events.Publisher,
	log *zap.Logger,
) *StudioService {
	return &StudioService{
		convRepo:     convRepo,
		text:         text,
		publisher:    publisher,
		log:          log,
		replyTimeout: 90 * time.Second,
	}
}

func (s *StudioService) CreateConversation(ctx context.Context, userID uuid.UUID, agentName, name, description string) (*models.Conversation, error) {
	if agentName == "" {
		agentName = DefaultAgentName
	}
	c := &models.Conversation{
		OwnerUserID: userID,
		AgentName:   agentName,
		Name:        strPtrOrNil(name),
		Description: strPtrOrNil(description),
	}
	if err := s.convRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *StudioService) ListConversations(ctx context.Context, userID uuid.UUID, agentName string) ([]models.Conversation, error) {
	if agentName == "" {
		agentName = DefaultAgentName
	}
	return s.convRepo.ListByOwner(ctx, userID, agentName)
}

// Authorize checks that the conversation exists and belongs to userID. Used
// by the websocket hub before attaching a subscription.
func (s *StudioService) Authorize(ctx context.Context, conversationID, userID uuid.UUID) error {
	c, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return ErrConversationNotFound
	}
	if c.OwnerUserID != userID {
		return ErrConversationNotFound
	}
	return nil
}

func (s *StudioService) ListMessages(ctx context.Context, conversationID, userID uuid.UUID) ([]models.ConversationMessage, error) {
	if err := s.Authorize(ctx, conversationID, userID); err != nil {
		return nil, err
	}
	return s.convRepo.ListMessages(ctx, conversationID)
}

// SendMessage appends the user's message and kicks off assistant reply
// generation in the background. The caller gets no reply payload; both the
// echoed user message and the eventual reply arrive via the subscription.
func (s *StudioService) SendMessage(ctx context.Context, conversationID, userID uuid.UUID, content string) error {
	if err := s.Authorize(ctx, conversationID, userID); err != nil {
		return err
	}

	msg := &models.ConversationMessage{
		ConversationID: conversationID,
		Role:           models.MessageRoleUser,
		Content:        content,
	}
	if err := s.convRepo.AddMessage(ctx, msg); err != nil {
		return err
	}
	s.publishSnapshot(ctx, conversationID)

	go s.generateReply(conversationID)
	return nil
}

func (s *StudioService) generateReply(conversationID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), s.replyTimeout)
	defer cancel()

	messages, err := s.convRepo.ListMessages(ctx, conversationID)
	if err != nil {
		s.log.Error("reply: load transcript failed",
			zap.String("conversation_id", conversationID.String()), zap.Error(err))
		return
	}

	raw, err := s.text.InvokeText(ctx, buildTranscriptPrompt(messages), replySchema)
	if err != nil {
		s.log.Error("reply generation failed",
			zap.String("conversation_id", conversationID.String()), zap.Error(err))
		return
	}

	var parsed struct {
		Reply string `json:"reply"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil || parsed.Reply == "" {
		s.log.Error("reply response malformed",
			zap.String("conversation_id", conversationID.String()), zap.Error(err))
		return
	}

	reply := &models.ConversationMessage{
		ConversationID: conversationID,
		Role:           models.MessageRoleAssistant,
		Content:        parsed.Reply,
	}
	if err := s.convRepo.AddMessage(ctx, reply); err != nil {
		s.log.Error("reply: persist failed",
			zap.String("conversation_id", conversationID.String()), zap.Error(err))
		return
	}
	s.publishSnapshot(ctx, conversationID)
}

func (s *StudioService) publishSnapshot(ctx context.Context, conversationID uuid.UUID) {
	messages, err := s.convRepo.ListMessages(ctx, conversationID)
	if err != nil {
		s.log.Error("snapshot: load messages failed", zap.Error(err))
		return
	}

	err = s.publisher.Publish(ctx, events.StreamConversation, events.Event{
		Type: events.EventConversationUpdated,
		Payload: map[string]any{
			"conversation_id": conversationID.String(),
			"messages":        messages,
		},
	})
	if err != nil {
		s.log.Error("snapshot: publish failed", zap.Error(err))
	}
}

func buildTranscriptPrompt(messages []models.ConversationMessage) string {
	prompt := agentSystemPrompt + "\n\n"
	for _, m := range messages {
		prompt += fmt.Sprintf("%s: %s\n", m.Role, m.Content)
	}
	prompt += "\nRespond as JSON with a single \"reply\" field."
	return prompt
}
