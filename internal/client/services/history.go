package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/thumbkeeper/internal/client/client"
	"github.com/dmitrijs2005/thumbkeeper/internal/client/models"
	"github.com/dmitrijs2005/thumbkeeper/internal/common"
	"github.com/dmitrijs2005/thumbkeeper/internal/logging"
)

// HistorySnapshot is the visible history of the signed-in user.
type HistorySnapshot struct {
	Records []models.ThumbnailRecord
	Count   int
	Loading bool
}

// HistoryRepository keeps the signed-in user's generation records. The
// list changes only by full replacement (refetch) or full clear; it
// refetches whenever the session user changes.
type HistoryRepository struct {
	store  *SessionStore
	table  client.ThumbnailTable
	logger logging.Logger

	baseCtx     context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	unsubscribe func()

	mu       sync.Mutex
	tracked  string
	observed bool
	owner    string
	records  []models.ThumbnailRecord
	count    int
	loading  bool
	gen      uint64
	// seq numbers refetch calls; applied is the newest one stored.
	seq      uint64
	applied  uint64
	inflight int
}

func NewHistoryRepository(store *SessionStore, table client.ThumbnailTable, logger logging.Logger) *HistoryRepository {
	if logger == nil {
		logger = logging.Nop()
	}
	ctx, cancel := context.WithCancel(context.Background())

	h := &HistoryRepository{
		store:   store,
		table:   table,
		logger:  logger,
		baseCtx: ctx,
		cancel:  cancel,
		loading: true,
	}
	h.unsubscribe = store.Subscribe(h.onSessionChange)
	return h
}

// onSessionChange schedules a refetch when the session user differs from
// the one last seen. The store's current user is read fresh because
// notifications may arrive out of order.
func (h *HistoryRepository) onSessionChange(st State) {
	if st.Status == StatusUninitialized || st.Status == StatusLoading {
		return
	}
	userID := h.store.currentUserID()

	h.mu.Lock()
	if h.observed && h.tracked == userID {
		h.mu.Unlock()
		return
	}
	h.observed = true
	h.tracked = userID
	h.mu.Unlock()

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		if err := h.Refetch(h.baseCtx); err != nil {
			h.logger.Error(h.baseCtx, "failed to fetch thumbnails", "user_id", userID, "error", err)
		}
	}()
}

// List returns the records of userID newest first with the exact count.
// An empty userID yields an empty list.
func (h *HistoryRepository) List(ctx context.Context, userID string) ([]models.ThumbnailRecord, int, error) {
	if userID == "" {
		return []models.ThumbnailRecord{}, 0, nil
	}
	records, count, err := h.table.ListByUserID(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("list thumbnails: %w", err)
	}
	return records, count, nil
}

// Refetch replaces the in-memory list with the current user's records.
// Without a session it clears the list. On failure the list is kept. When
// refetches overlap, the one started last wins.
func (h *HistoryRepository) Refetch(ctx context.Context) error {
	userID := h.store.currentUserID()
	if userID == "" {
		h.Clear()
		return nil
	}

	h.mu.Lock()
	h.seq++
	seq := h.seq
	gen := h.gen
	h.inflight++
	h.loading = true
	h.mu.Unlock()

	records, count, err := h.List(ctx, userID)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.inflight--
	h.loading = h.inflight > 0
	if err != nil {
		return err
	}
	if h.gen != gen || seq < h.applied || h.store.currentUserID() != userID {
		return nil
	}
	h.applied = seq
	h.owner = userID
	h.records = records
	h.count = count
	return nil
}

// Save inserts a record for the signed-in user and then refetches, so the
// backend-assigned id and created_at are authoritative. An empty context is
// stored as NULL.
func (h *HistoryRepository) Save(ctx context.Context, imageURL, topic, topicContext string, style models.Style) error {
	userID := h.store.currentUserID()
	if userID == "" {
		return common.ErrNotAuthenticated
	}

	var c *string
	if topicContext != "" {
		c = &topicContext
	}
	if _, err := h.table.Insert(ctx, models.NewThumbnail{
		UserID:   userID,
		ImageURL: imageURL,
		Topic:    topic,
		Context:  c,
		Style:    style,
	}); err != nil {
		return fmt.Errorf("save thumbnail: %w", err)
	}

	return h.Refetch(ctx)
}

// Clear empties the list. Refetches started before Clear are discarded.
func (h *HistoryRepository) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.gen++
	h.owner = ""
	h.records = nil
	h.count = 0
	h.loading = false
}

// Snapshot returns a copy of the visible history. It is empty while no
// session is active or the list belongs to another user.
func (h *HistoryRepository) Snapshot() HistorySnapshot {
	userID := h.store.currentUserID()

	h.mu.Lock()
	defer h.mu.Unlock()

	snap := HistorySnapshot{Records: []models.ThumbnailRecord{}, Loading: h.loading}
	if userID == "" || h.owner != userID {
		return snap
	}
	snap.Records = append(snap.Records, h.records...)
	snap.Count = h.count
	return snap
}

// Wait blocks until background refetches finish.
func (h *HistoryRepository) Wait() {
	h.wg.Wait()
}

// Close stops following the session store.
func (h *HistoryRepository) Close() {
	h.unsubscribe()
	h.cancel()
	h.wg.Wait()
}
