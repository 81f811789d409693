package builder

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DeployState tracks how far a deploy got, so a retry after a partial
// failure resumes instead of duplicating records.
type DeployState struct {
	CampaignID         *uuid.UUID `json:"campaign_id,omitempty"`
	CreativesPersisted int        `json:"creatives_persisted"`
	AssetsPersisted    int        `json:"assets_persisted"`
	InFlight           bool       `json:"in_flight"`
}

// Session is one wizard run. It exclusively owns its draft and is discarded
// on completion or process restart.
type Session struct {
	sync.Mutex

	ID          uuid.UUID   `json:"id"`
	OwnerUserID uuid.UUID   `json:"owner_user_id"`
	CurrentStep Step        `json:"current_step"`
	Draft       *Draft      `json:"draft"`
	Deploy      DeployState `json:"deploy"`
	CreatedAt   time.Time   `json:"created_at"`
}

func NewSession(ownerUserID uuid.UUID) *Session {
	return &Session{
		ID:          uuid.New(),
		OwnerUserID: ownerUserID,
		CurrentStep: StepBrief,
		Draft:       NewDraft(),
		CreatedAt:   time.Now(),
	}
}

// Next advances one step if the current step's completion predicate holds.
// Returns false (and leaves CurrentStep untouched) otherwise. Caller must
// hold the session lock.
func (s *Session) Next() bool {
	if s.CurrentStep >= StepPreview {
		return false
	}
	if !CanAdvance(s.CurrentStep, s.Draft) {
		return false
	}
	s.CurrentStep++
	return true
}

// Back retreats one step unconditionally, a no-op at Brief. No data is
// dropped. Caller must hold the session lock.
func (s *Session) Back() bool {
	if s.CurrentStep <= StepBrief {
		return false
	}
	s.CurrentStep--
	return true
}
