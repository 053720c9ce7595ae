package realtime

import (
	"testing"

	"comment-insights/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestHubBroadcastSyncStatus(t *testing.T) {
	hub := NewSyncHub()

	ch := make(chan SyncEvent, 8)
	hub.addSubscriber("user-1", ch)
	defer hub.removeSubscriber("user-1", ch)

	other := make(chan SyncEvent, 8)
	hub.addSubscriber("user-2", other)
	defer hub.removeSubscriber("user-2", other)

	hub.BroadcastSyncStatus(&model.SyncJob{
		JobID:    "job-1",
		UserID:   "user-1",
		VideoID:  "vid-1",
		State:    model.SyncStateAnalyzing,
		Progress: 80,
	})

	select {
	case evt := <-ch:
		assert.Equal(t, "job-1", evt.JobID)
		assert.Equal(t, "analyzing", evt.State)
		assert.Equal(t, 80, evt.Progress)
	default:
		t.Fatal("expected an event for the job owner")
	}
	assert.Empty(t, other)
}

func TestHubBroadcastDoesNotBlock(t *testing.T) {
	hub := NewSyncHub()

	full := make(chan SyncEvent) // unbuffered, nobody reading
	hub.addSubscriber("user-1", full)
	defer hub.removeSubscriber("user-1", full)

	// must return immediately even though the subscriber cannot receive
	hub.BroadcastSyncStatus(&model.SyncJob{JobID: "job-1", UserID: "user-1"})
}
