package repositories

import (
	"context"

	"github.com/campaign-studio/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ConversationRepo struct {
	pool *pgxpool.Pool
}

func NewConversationRepo(pool *pgxpool.Pool) *ConversationRepo {
	return &ConversationRepo{pool: pool}
}

func (r *ConversationRepo) Create(ctx context.Context, c *models.Conversation) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO conversations (owner_user_id, agent_name, name, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, c.OwnerUserID, c.AgentName, c.Name, c.Description,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *ConversationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
	var c models.Conversation
	err := r.pool.QueryRow(ctx, `
		SELECT id, owner_user_id, agent_name, name, description, created_at, updated_at
		FROM conversations WHERE id = $1
	`, id).Scan(&c.ID, &c.OwnerUserID, &c.AgentName, &c.Name, &c.Description,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ConversationRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, agentName string) ([]models.Conversation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_user_id, agent_name, name, description, created_at, updated_at
		FROM conversations
		WHERE owner_user_id = $1 AND agent_name = $2
		ORDER BY updated_at DESC
	`, ownerID, agentName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convos []models.Conversation
	for rows.Next() {
		var c models.Conversation
		if err := rows.Scan(&c.ID, &c.OwnerUserID, &c.AgentName, &c.Name, &c.Description,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		convos = append(convos, c)
	}
	return convos, nil
}

// AddMessage appends a message and bumps the conversation's updated_at.
func (r *ConversationRepo) AddMessage(ctx context.Context, m *models.ConversationMessage) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO conversation_messages (conversation_id, role, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, m.ConversationID, m.Role, m.Content).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `
		UPDATE conversations SET updated_at = now() WHERE id = $1
	`, m.ConversationID)
	return err
}

func (r *ConversationRepo) ListMessages(ctx context.Context, conversationID uuid.UUID) ([]models.ConversationMessage, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, conversation_id, role, content, created_at
		FROM conversation_messages
		WHERE conversation_id = $1
		ORDER BY created_at
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.ConversationMessage
	for rows.Next() {
		var m models.ConversationMessage
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, nil
}
