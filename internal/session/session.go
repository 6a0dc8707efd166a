// Package session runs the quiz loop for the active collection: fetching
// randomized batches, walking them with a cursor, and pushing every answer,
// mastery, stop and registration through the remote boundary before any
// local state moves.
package session

import (
	"context"
	"log"
	"sync"
	"time"

	"learning-engine/internal/cache"
	"learning-engine/internal/event"
	"learning-engine/internal/models"
	"learning-engine/internal/remote"
	"learning-engine/internal/rollover"
	"learning-engine/internal/store"

	"github.com/google/uuid"
)

// Orchestrator owns the ephemeral session state and wires user intents to
// the progress store, the remote boundary and the cache collaborators.
// All session mutations are serialized on one mutex; remote calls are made
// with the mutex released.
type Orchestrator struct {
	api      remote.API
	progress *store.ProgressStore
	events   event.Publisher
	listC    cache.CollectionList
	statsC   cache.StatsStore
	calendar cache.Calendar

	now func() time.Time

	mu         sync.Mutex
	sessionID  string
	hint       int64
	reviewMode bool
	quizList   []models.Quiz
	current    int
	batchLen   int
	fetchGen   uint64
	sweepDate  string
}

// New wires an orchestrator. events may be nil when no broker is configured;
// signals are then only logged.
func New(api remote.API, progress *store.ProgressStore, events event.Publisher,
	listC cache.CollectionList, statsC cache.StatsStore, calendar cache.Calendar) *Orchestrator {
	return &Orchestrator{
		api:       api,
		progress:  progress,
		events:    events,
		listC:     listC,
		statsC:    statsC,
		calendar:  calendar,
		now:       time.Now,
		sessionID: uuid.NewString(),
	}
}

// State is the session snapshot the presentation layer renders from.
type State struct {
	SessionID     string                     `json:"session_id"`
	Active        *models.CollectionProgress `json:"active,omitempty"`
	Quiz          *models.Quiz               `json:"quiz,omitempty"`
	CurrentIndex  int                        `json:"current_index"`
	BatchSize     int                        `json:"batch_size"`
	ReviewMode    bool                       `json:"review_mode"`
	GoalReached   bool                       `json:"goal_reached"`
	ShowMastered  bool                       `json:"show_mastered_button"`
	ShowStop      bool                       `json:"show_stop_button"`
	ShowReviewing bool                       `json:"show_review_toggle"`
}

// State reports the current session. When no collection is active only the
// session id and review flag are set, which drives the "no collection" view.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()

	st := State{
		SessionID:    o.sessionID,
		CurrentIndex: o.current,
		BatchSize:    o.batchLen,
		ReviewMode:   o.reviewMode,
	}
	cp, ok := o.activeLocked()
	if !ok {
		return st
	}
	active := cp
	st.Active = &active
	st.GoalReached = cp.GoalReached()
	notCompleted := cp.Status != models.StatusCompleted
	st.ShowMastered = notCompleted
	st.ShowStop = notCompleted
	st.ShowReviewing = notCompleted
	if o.current < len(o.quizList) {
		q := o.quizList[o.current]
		st.Quiz = &q
	}
	return st
}

// ActivateCollection makes id the session hint and starts a fresh batch.
// The previous session position is discarded.
func (o *Orchestrator) ActivateCollection(ctx context.Context, id int64) error {
	o.mu.Lock()
	o.hint = id
	o.quizList = nil
	o.current = 0
	o.batchLen = 0
	o.mu.Unlock()
	return o.Fetch(ctx)
}

// ToggleReviewMode flips the session-local review flag and refetches so the
// batch composition follows the new mode.
func (o *Orchestrator) ToggleReviewMode(ctx context.Context) (bool, error) {
	o.mu.Lock()
	o.reviewMode = !o.reviewMode
	mode := o.reviewMode
	o.mu.Unlock()
	return mode, o.Fetch(ctx)
}

// Collections serves the catalog listing through the collection-list cache,
// falling back to the remote service and re-priming the cache on a miss.
func (o *Orchestrator) Collections(ctx context.Context) ([]models.CollectionSummary, error) {
	if o.listC != nil {
		if cached, err := o.listC.Get(ctx); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}
	list, err := o.api.GetAllCollections(ctx)
	if err != nil {
		o.notifyError("list collections", err)
		return nil, err
	}
	if o.listC != nil {
		if err := o.listC.Put(ctx, list); err != nil {
			log.Printf("prime collection list cache: %v", err)
		}
	}
	return list, nil
}

// SweepRollover fires the same rollover handling as the answer flow for
// sessions idle across midnight. At most one signal per calendar day.
func (o *Orchestrator) SweepRollover(ctx context.Context) {
	o.mu.Lock()
	cp, ok := o.activeLocked()
	today := rollover.Date(o.now())
	swept := o.sweepDate == today
	o.mu.Unlock()

	if !ok || swept || cp.LastReviewedAt == "" {
		return
	}
	newDay, err := rollover.IsNewDay(cp.LastReviewedAt, o.now().UTC().Format(time.RFC3339))
	if err != nil || !newDay {
		return
	}

	o.mu.Lock()
	o.sweepDate = today
	o.mu.Unlock()
	o.handleRollover(ctx, cp.CollectionID)
}

// activeLocked recomputes the active collection. Callers hold o.mu.
func (o *Orchestrator) activeLocked() (models.CollectionProgress, bool) {
	return o.progress.Active(o.hint)
}

func (o *Orchestrator) handleRollover(ctx context.Context, collectionID int64) {
	if o.listC != nil {
		if err := o.listC.Invalidate(ctx); err != nil {
			log.Printf("invalidate collection list cache: %v", err)
		}
	}
	o.emit(event.DayRollover, map[string]any{"collection_id": collectionID})
}

func (o *Orchestrator) emit(signal string, payload any) {
	if o.events == nil {
		return
	}
	if err := o.events.Publish(signal, payload); err != nil {
		log.Printf("publish %s: %v", signal, err)
	}
}

func (o *Orchestrator) notifyError(op string, err error) {
	o.emit(event.FlowError, map[string]any{"op": op, "error": err.Error()})
}
