package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/model"
)

// EnsureIndexes creates the indexes of the collection. The scoped-unique field gets a unique index
// restricted to live entities, which needs MongoDB 6.0 or later for the $in partial filter.
func (c *Collection[E]) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: model.FieldCreatedAt, Value: -1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("created_at_desc"),
		},
		{
			Keys:    bson.D{{Key: model.FieldEntityStatus, Value: 1}},
			Options: options.Index().SetName("entity_status"),
		},
	}
	if c.uniqueField != "" {
		models = append(models, mongo.IndexModel{
			Keys: bson.D{{Key: c.uniqueField, Value: 1}},
			Options: options.Index().
				SetName(c.uniqueField + "_live_unique").
				SetUnique(true).
				SetPartialFilterExpression(bson.D{{Key: model.FieldEntityStatus, Value: liveStatus()}}),
		})
	}
	for _, field := range c.indexed {
		models = append(models, mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetName(field),
		})
	}
	if _, err := c.collection.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("error creating indexes on %s: %w", c.collection.Name(), err)
	}
	return nil
}

// IndexedStore is implemented by every Collection.
type IndexedStore interface {
	EnsureIndexes(ctx context.Context) error
}

// EnsureAllIndexes creates the indexes of every store.
func EnsureAllIndexes(ctx context.Context, stores ...IndexedStore) error {
	for _, s := range stores {
		if err := s.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}
