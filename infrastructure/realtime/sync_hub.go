package realtime

import (
	"encoding/json"
	"net/http"
	"sync"

	"comment-insights/domain/model"

	"github.com/gin-gonic/gin"
)

// SyncEvent represents an SSE payload for sync progress updates. It mirrors
// the job record; clients that miss events can always poll the job instead.
type SyncEvent struct {
	Type              string `json:"type"`
	JobID             string `json:"job_id"`
	VideoID           string `json:"video_id"`
	State             string `json:"state"`
	Progress          int    `json:"progress"`
	TotalComments     int    `json:"total_comments"`
	ProcessedComments int    `json:"processed_comments"`
	Error             string `json:"error,omitempty"`
}

// Hub maintains per-user subscribers listening for sync progress events.
type Hub struct {
	mu    sync.RWMutex
	users map[string]map[chan SyncEvent]struct{}
}

func NewSyncHub() *Hub {
	return &Hub{users: make(map[string]map[chan SyncEvent]struct{})}
}

// Serve registers an SSE stream for the authenticated user (user_id set by middleware).
func (h *Hub) Serve(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.Status(http.StatusUnauthorized)
		return
	}
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // disable nginx buffering

	ch := make(chan SyncEvent, 8)
	h.addSubscriber(userID, ch)
	defer h.removeSubscriber(userID, ch)

	// Initial comment to keep connection open
	c.Writer.Write([]byte(":ok\n\n"))
	c.Writer.Flush()

	for {
		select {
		case evt := <-ch:
			data, _ := json.Marshal(evt)
			_, _ = c.Writer.Write([]byte("event: sync_status\n"))
			_, _ = c.Writer.Write([]byte("data: "))
			_, _ = c.Writer.Write(data)
			_, _ = c.Writer.Write([]byte("\n\n"))
			c.Writer.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}

func (h *Hub) addSubscriber(userID string, ch chan SyncEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.users[userID] == nil {
		h.users[userID] = make(map[chan SyncEvent]struct{})
	}
	h.users[userID][ch] = struct{}{}
}

func (h *Hub) removeSubscriber(userID string, ch chan SyncEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs := h.users[userID]; subs != nil {
		delete(subs, ch)
		close(ch)
		if len(subs) == 0 {
			delete(h.users, userID)
		}
	}
}

// BroadcastSyncStatus broadcasts to all subscribers of the user who owns the job.
func (h *Hub) BroadcastSyncStatus(job *model.SyncJob) {
	if job == nil {
		return
	}
	evt := SyncEvent{
		Type:              "sync_status",
		JobID:             job.JobID,
		VideoID:           job.VideoID,
		State:             string(job.State),
		Progress:          job.Progress,
		TotalComments:     job.TotalComments,
		ProcessedComments: job.ProcessedComments,
		Error:             job.Error,
	}
	h.mu.RLock()
	subs := h.users[job.UserID]
	for ch := range subs {
		select { // non-blocking
		case ch <- evt:
		default:
		}
	}
	h.mu.RUnlock()
}
