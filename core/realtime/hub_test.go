package realtime

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHub_DeliverToAllConnectionsOfUser(t *testing.T) {
	hub := NewHub()
	// Một user mở hai tab
	tab1 := hub.Register("user-1", 4)
	tab2 := hub.Register("user-1", 4)
	other := hub.Register("user-2", 4)

	event := Event{EntityID: "RPT-001", Message: "Report RPT-001 has been assigned to you.", CreatedAt: 1000}
	hub.Deliver("user-1", event)

	for _, client := range []*Client{tab1, tab2} {
		select {
		case payload := <-client.Receive():
			var got Event
			assert.NoError(t, json.Unmarshal(payload, &got))
			assert.Equal(t, event, got)
		default:
			t.Fatal("client của user-1 phải nhận được event")
		}
	}

	select {
	case <-other.Receive():
		t.Fatal("user-2 không được nhận event của user-1")
	default:
	}
}

func TestHub_DeliverToUnknownUserIsNoop(t *testing.T) {
	hub := NewHub()
	// Không panic, không deadlock
	hub.Deliver("ghost", Event{EntityID: "RPT-001"})
}

func TestHub_DropWhenBufferFull(t *testing.T) {
	hub := NewHub()
	client := hub.Register("user-1", 1)

	hub.Deliver("user-1", Event{EntityID: "RPT-001", CreatedAt: 1})
	// Buffer đầy, event thứ hai bị drop (at-most-once, không chặn publisher)
	hub.Deliver("user-1", Event{EntityID: "RPT-002", CreatedAt: 2})

	var first Event
	assert.NoError(t, json.Unmarshal(<-client.Receive(), &first))
	assert.Equal(t, "RPT-001", first.EntityID)

	select {
	case payload := <-client.Receive():
		t.Fatalf("event thứ hai phải bị drop, nhận được: %s", payload)
	default:
	}
}

func TestHub_UnregisterClosesAndCleansRoom(t *testing.T) {
	hub := NewHub()
	client := hub.Register("user-1", 4)
	assert.Equal(t, 1, hub.ConnectionCount("user-1"))

	hub.Unregister(client)
	assert.Equal(t, 0, hub.ConnectionCount("user-1"))

	// Channel đã đóng
	_, open := <-client.Receive()
	assert.False(t, open)

	// Idempotent: gọi lại không panic (không close channel hai lần)
	hub.Unregister(client)
}

func TestHub_UnregisterOneTabKeepsOthers(t *testing.T) {
	hub := NewHub()
	tab1 := hub.Register("user-1", 4)
	tab2 := hub.Register("user-1", 4)

	hub.Unregister(tab1)
	assert.Equal(t, 1, hub.ConnectionCount("user-1"))

	hub.Deliver("user-1", Event{EntityID: "RPT-001"})
	select {
	case <-tab2.Receive():
	default:
		t.Fatal("tab còn lại phải vẫn nhận được event")
	}
}
