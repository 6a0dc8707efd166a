package cache

import (
	"context"
	"errors"

	"learning-engine/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo-backed cache implementations. The engine is the single writer, so
// read-modify-write through the pure merge functions is safe here.

const statsDocID = "user_stats"

type MongoCollectionList struct {
	Col *mongo.Collection
}

func NewMongoCollectionList(db *mongo.Database) *MongoCollectionList {
	return &MongoCollectionList{Col: db.Collection("collection_list_cache")}
}

func (c *MongoCollectionList) Get(ctx context.Context) ([]models.CollectionSummary, error) {
	cur, err := c.Col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var list []models.CollectionSummary
	if err := cur.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *MongoCollectionList) Put(ctx context.Context, list []models.CollectionSummary) error {
	if _, err := c.Col.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(list) == 0 {
		return nil
	}
	docs := make([]any, len(list))
	for i, item := range list {
		docs[i] = item
	}
	_, err := c.Col.InsertMany(ctx, docs)
	return err
}

func (c *MongoCollectionList) Invalidate(ctx context.Context) error {
	_, err := c.Col.DeleteMany(ctx, bson.M{})
	return err
}

type MongoStats struct {
	Col *mongo.Collection
}

func NewMongoStats(db *mongo.Database) *MongoStats {
	return &MongoStats{Col: db.Collection("stats_cache")}
}

func (c *MongoStats) Get(ctx context.Context) (Stats, error) {
	var doc struct {
		Stats `bson:",inline"`
	}
	err := c.Col.FindOne(ctx, bson.M{"_id": statsDocID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Stats{}, nil
	}
	if err != nil {
		return Stats{}, err
	}
	return doc.Stats, nil
}

func (c *MongoStats) IncrementMastered(ctx context.Context) error {
	cur, err := c.Get(ctx)
	if err != nil {
		return err
	}
	next := ApplyMastery(cur)
	opts := options.Replace().SetUpsert(true)
	_, err = c.Col.ReplaceOne(ctx, bson.M{"_id": statsDocID}, bson.M{
		"_id":   statsDocID,
		"today": next.Today,
		"week":  next.Week,
	}, opts)
	return err
}

type MongoCalendar struct {
	Col *mongo.Collection
}

func NewMongoCalendar(db *mongo.Database) *MongoCalendar {
	return &MongoCalendar{Col: db.Collection("contribution_cache")}
}

func (c *MongoCalendar) Entries(ctx context.Context) ([]Contribution, error) {
	opts := options.Find().SetSort(bson.M{"date": 1})
	cur, err := c.Col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var entries []Contribution
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *MongoCalendar) RecordMastery(ctx context.Context, date string) error {
	opts := options.Update().SetUpsert(true)
	// Matches UpsertContribution: bump today's entry or create it at 1.
	_, err := c.Col.UpdateOne(ctx, bson.M{"date": date},
		bson.M{"$inc": bson.M{"count": 1}}, opts)
	return err
}

var (
	_ CollectionList = (*MongoCollectionList)(nil)
	_ StatsStore     = (*MongoStats)(nil)
	_ Calendar       = (*MongoCalendar)(nil)
)
