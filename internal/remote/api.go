package remote

import (
	"context"

	"learning-engine/internal/models"
)

// MutationResult is the common response of the answer and card-status
// endpoints: the server-confirmed progress snapshot plus a marker set when
// the whole collection has just been mastered.
type MutationResult struct {
	Collection          models.CollectionProgress `json:"collection"`
	CollectionCompleted bool                      `json:"collectionCompleted"`
}

// RegisterResult is the response of the collection registration endpoint.
type RegisterResult struct {
	CollectionID int64             `json:"collection_id"`
	Collection   models.Collection `json:"collection"`
}

// API is the boundary to the remote collection and quiz services. The engine
// treats it as a black box: request in, response out, no retries.
type API interface {
	GetAllCollections(ctx context.Context) ([]models.CollectionSummary, error)
	RegisterCollection(ctx context.Context, collectionID int64, goal int) (*RegisterResult, error)
	GetRandomQuizBatch(ctx context.Context, collectionID int64, isReview bool) ([]models.Quiz, error)
	SubmitAnswer(ctx context.Context, collectionID, cardID int64, quizType, rating string, isNew bool) (*MutationResult, error)
	SetCardStatus(ctx context.Context, collectionID, cardID int64, status string) (*MutationResult, error)
	SetCollectionStatus(ctx context.Context, collectionID int64, status string) error
}
