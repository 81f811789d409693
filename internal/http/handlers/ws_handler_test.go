package handlers

import (
	"testing"

	"github.com/google/uuid"
)

type recordingSender struct {
	frames [][]byte
}

func (r *recordingSender) WriteMessage(messageType int, data []byte) error {
	r.frames = append(r.frames, data)
	return nil
}

func TestSubscriptionRegistry_AttachAndFanOut(t *testing.T) {
	reg := newSubscriptionRegistry()
	convA := uuid.New()

	connA := &recordingSender{}
	connB := &recordingSender{}
	reg.Attach(connA, convA)
	reg.Attach(connB, convA)

	subs := reg.subscribers(convA)
	if len(subs) != 2 {
		t.Fatalf("subscribers = %d, want 2", len(subs))
	}
}

func TestSubscriptionRegistry_SingleSubscriptionPerConn(t *testing.T) {
	reg := newSubscriptionRegistry()
	convA := uuid.New()
	convB := uuid.New()
	conn := &recordingSender{}

	reg.Attach(conn, convA)
	reg.Attach(conn, convB)

	if got := reg.subscribers(convA); len(got) != 0 {
		t.Errorf("conn still attached to previous conversation, subs = %d", len(got))
	}
	if got := reg.subscribers(convB); len(got) != 1 {
		t.Errorf("conn not attached to new conversation, subs = %d", len(got))
	}
}

func TestSubscriptionRegistry_Detach(t *testing.T) {
	reg := newSubscriptionRegistry()
	conv := uuid.New()
	conn := &recordingSender{}

	reg.Attach(conn, conv)
	reg.Detach(conn)

	if got := reg.subscribers(conv); len(got) != 0 {
		t.Errorf("subscribers = %d after detach, want 0", len(got))
	}

	// detaching twice, or a conn never attached, must not panic
	reg.Detach(conn)
	reg.Detach(&recordingSender{})
}

func TestSubscriptionRegistry_ReattachSameConversation(t *testing.T) {
	reg := newSubscriptionRegistry()
	conv := uuid.New()
	conn := &recordingSender{}

	reg.Attach(conn, conv)
	reg.Attach(conn, conv)

	if got := reg.subscribers(conv); len(got) != 1 {
		t.Errorf("subscribers = %d, want 1 (no duplicates)", len(got))
	}
}
