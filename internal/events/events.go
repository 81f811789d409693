package events

import "context"

// Streams
const (
	StreamConversation = "events:conversation"
	StreamCampaign     = "events:campaign"
)

// Event types
const (
	EventConversationUpdated = "conversation_updated"
	EventCampaignDeployed    = "campaign_deployed"
	EventGenerationFailed    = "generation_failed"
)

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
