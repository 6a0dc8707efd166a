package session

import (
	"context"

	"learning-engine/internal/models"
)

// Fetch retrieves a fresh randomized batch for the active collection and
// resets the cursor. Without an active collection it is a no-op. Each fetch
// is tagged with a generation; a response that lost the race to a newer
// fetch is discarded, so the newest fetch always wins the session state.
func (o *Orchestrator) Fetch(ctx context.Context) error {
	o.mu.Lock()
	cp, ok := o.activeLocked()
	if !ok {
		o.mu.Unlock()
		return nil
	}
	o.fetchGen++
	gen := o.fetchGen
	collectionID := cp.CollectionID
	review := o.reviewMode
	o.mu.Unlock()

	batch, err := o.api.GetRandomQuizBatch(ctx, collectionID, review)
	if err != nil {
		// Previous batch stays; the user keeps their place.
		o.notifyError("fetch quiz batch", err)
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if gen != o.fetchGen {
		// A newer fetch owns the session now.
		return nil
	}
	o.quizList = batch
	o.batchLen = len(batch)
	o.current = 0
	return nil
}

// Advance moves the cursor to the next quiz item, refilling with a new batch
// when the current one is exhausted. Safe on an empty batch: the first
// advance simply triggers a fetch.
func (o *Orchestrator) Advance(ctx context.Context) error {
	o.mu.Lock()
	if o.current+1 < o.batchLen {
		o.current++
		o.mu.Unlock()
		return nil
	}
	o.current = 0
	o.mu.Unlock()
	return o.Fetch(ctx)
}

// CurrentQuiz returns the item under the cursor.
func (o *Orchestrator) CurrentQuiz() (models.Quiz, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.current >= len(o.quizList) {
		return models.Quiz{}, false
	}
	return o.quizList[o.current], true
}
