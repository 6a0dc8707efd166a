// Package store holds the authoritative in-memory model of every collection
// the user is learning. All writes go through the transition methods below;
// nothing outside this package mutates a record directly. The server stays
// the source of truth for counters: merges replace them wholesale instead of
// incrementing locally.
package store

import (
	"sync"

	"learning-engine/internal/models"
)

// ProgressStore keys progress records by collection id and preserves
// registration order so reads are deterministic.
type ProgressStore struct {
	mu      sync.RWMutex
	records map[int64]models.CollectionProgress
	order   []int64
}

func New() *ProgressStore {
	return &ProgressStore{records: make(map[int64]models.CollectionProgress)}
}

// Register creates a fresh in_progress record for the collection with zeroed
// counters and task_count set to goal. A stopped record may be re-registered
// and is replaced outright; any other existing record fails with
// models.ErrAlreadyRegistered.
func (s *ProgressStore) Register(c models.Collection, goal int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur, ok := s.records[c.ID]; ok {
		if cur.Status != models.StatusStopped {
			return models.ErrAlreadyRegistered
		}
	} else {
		s.order = append(s.order, c.ID)
	}

	s.records[c.ID] = models.CollectionProgress{
		CollectionID: c.ID,
		Collection:   c,
		Status:       models.StatusInProgress,
		TaskCount:    goal,
	}
	return nil
}

// AnswerCard merges a server-confirmed snapshot after an answer was recorded.
// Unknown collection ids are silent no-ops.
func (s *ProgressStore) AnswerCard(snapshot models.CollectionProgress) {
	s.merge(snapshot)
}

// IncreaseMasteredCount merges a server-confirmed snapshot after a card was
// marked mastered. Same merge rule as AnswerCard; the name tracks the event.
func (s *ProgressStore) IncreaseMasteredCount(snapshot models.CollectionProgress) {
	s.merge(snapshot)
}

func (s *ProgressStore) merge(snapshot models.CollectionProgress) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.records[snapshot.CollectionID]
	if !ok {
		return
	}
	cur.TaskCount = snapshot.TaskCount
	cur.TodayLearnedCount = snapshot.TodayLearnedCount
	cur.MasteredCardCount = snapshot.MasteredCardCount
	cur.LearnedCardCount = snapshot.LearnedCardCount
	cur.LastReviewedAt = snapshot.LastReviewedAt
	if snapshot.Collection.ID != 0 {
		cur.Collection = snapshot.Collection
	}
	s.records[snapshot.CollectionID] = cur
}

// ChangeStatus overwrites the status field only. Unknown ids and records
// already in a terminal state are silent no-ops.
func (s *ProgressStore) ChangeStatus(id int64, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.records[id]
	if !ok || cur.Terminal() {
		return
	}
	cur.Status = status
	s.records[id] = cur
}

// ByID returns a copy of the record for id.
func (s *ProgressStore) ByID(id int64) (models.CollectionProgress, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.records[id]
	return p, ok
}

// Active selects the collection a session should run against: the hinted
// collection when it exists and is not stopped, otherwise the first record
// still in progress. Recomputed from source fields on every call.
func (s *ProgressStore) Active(hint int64) (models.CollectionProgress, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if hint != 0 {
		if p, ok := s.records[hint]; ok && p.Status != models.StatusStopped {
			return p, true
		}
	}
	for _, id := range s.order {
		if p := s.records[id]; p.Status == models.StatusInProgress {
			return p, true
		}
	}
	return models.CollectionProgress{}, false
}

// InProgress returns the learning list: every record still in progress, in
// registration order.
func (s *ProgressStore) InProgress() []models.CollectionProgress {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.CollectionProgress
	for _, id := range s.order {
		if p := s.records[id]; p.Status == models.StatusInProgress {
			out = append(out, p)
		}
	}
	return out
}

// All returns every record in registration order.
func (s *ProgressStore) All() []models.CollectionProgress {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.CollectionProgress, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id])
	}
	return out
}

// Len returns the number of records.
func (s *ProgressStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
