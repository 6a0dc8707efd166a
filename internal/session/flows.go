package session

import (
	"context"

	"learning-engine/internal/event"
	"learning-engine/internal/models"
	"learning-engine/internal/rollover"
)

// SubmitAnswer records an answer for cardID against the remote boundary.
// On success the server snapshot is merged into the progress store, the
// cursor advances, and a day-boundary check decides whether the collection
// list cache must be dropped. On failure nothing local changes.
func (o *Orchestrator) SubmitAnswer(ctx context.Context, quizType string, cardID int64, isNew bool, rating string) error {
	if !models.ValidQuestionType(quizType) {
		return models.ErrInvalidQuestionType
	}
	if !models.ValidRating(rating) {
		return models.ErrInvalidRating
	}

	o.mu.Lock()
	cp, ok := o.activeLocked()
	o.mu.Unlock()
	if !ok {
		return models.ErrNoActiveCollection
	}

	res, err := o.api.SubmitAnswer(ctx, cp.CollectionID, cardID, quizType, rating, isNew)
	if err != nil {
		o.notifyError("submit answer", err)
		return err
	}

	prevReviewed := cp.LastReviewedAt
	prevGoal := cp.GoalReached()
	o.progress.AnswerCard(res.Collection)

	// A refill failure is already surfaced through the notification
	// boundary; the answer itself succeeded.
	_ = o.Advance(ctx)

	o.checkRollover(ctx, cp.CollectionID, prevReviewed, res.Collection.LastReviewedAt)
	o.refetchOnGoal(ctx, cp.CollectionID, prevGoal)
	return nil
}

// MarkMastered marks the quiz item under the cursor as fully learned. On
// completion of the whole collection the status flips to completed and a
// congratulations signal replaces the usual cursor advance.
func (o *Orchestrator) MarkMastered(ctx context.Context, isNew bool) error {
	o.mu.Lock()
	cp, ok := o.activeLocked()
	if !ok {
		o.mu.Unlock()
		return models.ErrNoActiveCollection
	}
	if o.current >= len(o.quizList) {
		o.mu.Unlock()
		return models.ErrNoQuiz
	}
	cardID := o.quizList[o.current].ID
	o.mu.Unlock()

	res, err := o.api.SetCardStatus(ctx, cp.CollectionID, cardID, models.CardStatusMastered)
	if err != nil {
		o.notifyError("mark mastered", err)
		return err
	}

	o.checkRollover(ctx, cp.CollectionID, cp.LastReviewedAt, res.Collection.LastReviewedAt)

	if o.statsC != nil {
		if err := o.statsC.IncrementMastered(ctx); err != nil {
			o.notifyError("update stats cache", err)
		}
	}
	if o.calendar != nil {
		if err := o.calendar.RecordMastery(ctx, rollover.Date(o.now())); err != nil {
			o.notifyError("update contribution cache", err)
		}
	}

	prevGoal := cp.GoalReached()
	o.progress.IncreaseMasteredCount(res.Collection)

	if res.CollectionCompleted {
		o.progress.ChangeStatus(cp.CollectionID, models.StatusCompleted)
		o.emit(event.CollectionCompleted, map[string]any{
			"collection_id": cp.CollectionID,
			"name":          cp.Collection.Name,
		})
		return nil
	}

	_ = o.Advance(ctx)
	o.refetchOnGoal(ctx, cp.CollectionID, prevGoal)
	return nil
}

// StopCollection sets the active collection to stopped and tears the session
// down. The navigate-away decision belongs to the subscriber of the signal.
func (o *Orchestrator) StopCollection(ctx context.Context) error {
	o.mu.Lock()
	cp, ok := o.activeLocked()
	o.mu.Unlock()
	if !ok {
		return models.ErrNoActiveCollection
	}

	if err := o.api.SetCollectionStatus(ctx, cp.CollectionID, models.StatusStopped); err != nil {
		o.notifyError("stop collection", err)
		return err
	}

	o.progress.ChangeStatus(cp.CollectionID, models.StatusStopped)

	o.mu.Lock()
	if o.hint == cp.CollectionID {
		o.hint = 0
	}
	o.quizList = nil
	o.current = 0
	o.batchLen = 0
	o.fetchGen++ // orphan any in-flight fetch for the stopped collection
	o.mu.Unlock()

	o.emit(event.CollectionStopped, map[string]any{"collection_id": cp.CollectionID})
	return nil
}

// RegisterCollection registers the user on a new collection with a daily
// goal, makes it the active one and starts its first batch.
func (o *Orchestrator) RegisterCollection(ctx context.Context, collectionID int64, goal int) error {
	res, err := o.api.RegisterCollection(ctx, collectionID, goal)
	if err != nil {
		o.notifyError("register collection", err)
		return err
	}

	c := res.Collection
	if c.ID == 0 {
		c.ID = res.CollectionID
	}
	if err := o.progress.Register(c, goal); err != nil {
		return err
	}

	if o.listC != nil {
		if err := o.listC.Invalidate(ctx); err != nil {
			o.notifyError("invalidate collection list cache", err)
		}
	}
	o.emit(event.CollectionRegistered, map[string]any{
		"collection_id": c.ID,
		"goal":          goal,
	})
	return o.ActivateCollection(ctx, c.ID)
}

// checkRollover compares the stored and the freshly confirmed review
// timestamps and, on a day boundary, drops the collection list cache and
// signals the rollover exactly once.
func (o *Orchestrator) checkRollover(ctx context.Context, collectionID int64, prev, next string) {
	newDay, err := rollover.IsNewDay(prev, next)
	if err != nil {
		o.notifyError("day boundary check", err)
		return
	}
	if newDay {
		o.handleRollover(ctx, collectionID)
	}
}

// refetchOnGoal refetches when this mutation just pushed the collection to
// its daily target, so the next batch reflects the new learning phase.
func (o *Orchestrator) refetchOnGoal(ctx context.Context, collectionID int64, prevGoal bool) {
	cp, ok := o.progress.ByID(collectionID)
	if !ok || prevGoal || !cp.GoalReached() {
		return
	}
	_ = o.Fetch(ctx)
}
