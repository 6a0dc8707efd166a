package models

// Collection progress statuses. A progress record starts at in_progress on
// registration and only ever moves forward; completed and stopped are terminal.
const (
	StatusNotRegistered = "not_registered"
	StatusInProgress    = "in_progress"
	StatusCompleted     = "completed"
	StatusStopped       = "stopped"
)

// Card statuses accepted by the collection service.
const (
	CardStatusMastered = "mastered"
)

// Collection is the server-defined card set.
type Collection struct {
	ID        int64  `bson:"id" json:"id"`
	Name      string `bson:"name" json:"name"`
	CardCount int    `bson:"card_count" json:"card_count"`
	Icon      string `bson:"icon" json:"icon"`
}

// CollectionSummary is a catalog entry annotated with the user's
// registration state, as returned by the collection listing endpoint.
type CollectionSummary struct {
	Collection   `bson:",inline"`
	IsRegistered bool `bson:"is_registered" json:"is_registered"`
}

// CollectionProgress is the per-collection learning state. Counters are
// server-confirmed snapshots, never incremented locally; LastReviewedAt is
// kept only for day-boundary comparison.
type CollectionProgress struct {
	CollectionID      int64      `bson:"collection_id" json:"collection_id"`
	Collection        Collection `bson:"collection" json:"collection"`
	Status            string     `bson:"status" json:"status"`
	TaskCount         int        `bson:"task_count" json:"task_count"`
	TodayLearnedCount int        `bson:"today_learned_count" json:"today_learned_count"`
	MasteredCardCount int        `bson:"mastered_card_count" json:"mastered_card_count"`
	LearnedCardCount  int        `bson:"learned_card_count" json:"learned_card_count"`
	LastReviewedAt    string     `bson:"last_reviewed_at" json:"last_reviewed_at"`
}

// GoalReached reports whether today's learning target has been met.
func (p *CollectionProgress) GoalReached() bool {
	return p.TaskCount > 0 && p.TodayLearnedCount == p.TaskCount
}

// Terminal reports whether the record can no longer transition.
func (p *CollectionProgress) Terminal() bool {
	return p.Status == StatusCompleted || p.Status == StatusStopped
}
