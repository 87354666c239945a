package sse

import (
	"testing"

	"github.com/google/uuid"

	"github.com/equify/equify-backend/internal/logger"
)

func newTestHub(t *testing.T) *SSEHub {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("failed to build logger: %v", err)
	}
	return NewSSEHub(log)
}

func TestUserChannel(t *testing.T) {
	id := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	if got := UserChannel(id); got != "user:11111111-2222-3333-4444-555555555555" {
		t.Fatalf("unexpected channel %q", got)
	}
}

func TestBroadcast_DeliversToSubscribedClient(t *testing.T) {
	hub := newTestHub(t)
	userID := uuid.New()
	client := hub.NewSSEClient(userID)
	hub.AddChannel(client, UserChannel(userID))

	hub.NotifyUser(userID, SSEEventFavorLogged, map[string]any{"x": 1})

	select {
	case msg := <-client.Outbound:
		if msg.Event != SSEEventFavorLogged {
			t.Fatalf("unexpected event %q", msg.Event)
		}
		if msg.Channel != UserChannel(userID) {
			t.Fatalf("unexpected channel %q", msg.Channel)
		}
	default:
		t.Fatalf("expected a message on the outbound channel")
	}
}

func TestBroadcast_OtherUsersDoNotReceive(t *testing.T) {
	hub := newTestHub(t)
	userA := uuid.New()
	userB := uuid.New()
	clientB := hub.NewSSEClient(userB)
	hub.AddChannel(clientB, UserChannel(userB))

	hub.NotifyUser(userA, SSEEventRelationshipChanged, nil)

	select {
	case msg := <-clientB.Outbound:
		t.Fatalf("unexpected delivery to other user: %+v", msg)
	default:
	}
}

func TestBroadcast_DropsWhenBufferFull(t *testing.T) {
	hub := newTestHub(t)
	userID := uuid.New()
	client := hub.NewSSEClient(userID)
	hub.AddChannel(client, UserChannel(userID))

	for i := 0; i < cap(client.Outbound)+5; i++ {
		hub.NotifyUser(userID, SSEEventRecommendationsReady, nil)
	}
	if len(client.Outbound) != cap(client.Outbound) {
		t.Fatalf("expected full buffer, got %d/%d", len(client.Outbound), cap(client.Outbound))
	}
}

func TestRemoveClient_StopsDelivery(t *testing.T) {
	hub := newTestHub(t)
	userID := uuid.New()
	client := hub.NewSSEClient(userID)
	hub.AddChannel(client, UserChannel(userID))
	hub.RemoveClient(client)

	hub.NotifyUser(userID, SSEEventFavorLogged, nil)

	select {
	case msg := <-client.Outbound:
		t.Fatalf("unexpected delivery after removal: %+v", msg)
	default:
	}
}

func TestAddChannel_IgnoresBlankChannel(t *testing.T) {
	hub := newTestHub(t)
	client := hub.NewSSEClient(uuid.New())
	hub.AddChannel(client, "   ")
	if len(client.Channels) != 0 {
		t.Fatalf("blank channel must not subscribe")
	}
}
