// Package mongodb backs the entity stores with one MongoDB collection
// per entity kind, keyed by the entity id as _id.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"poultryfarm/internal/domain"
	"poultryfarm/internal/domain/models"
	"poultryfarm/internal/repository"
)

// Client wraps the MongoDB connection shared by every store.
type Client struct {
	client *mongo.Client
	dbName string
}

// Connect dials MongoDB and verifies the connection with a ping.
func Connect(ctx context.Context, uri, dbName string) (*Client, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Client{client: client, dbName: dbName}, nil
}

// Close disconnects the underlying client.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// Store is a repository.Store over a single collection.
type Store[T repository.Entity] struct {
	coll *mongo.Collection
}

func newStore[T repository.Entity](c *Client, collection string) *Store[T] {
	return &Store[T]{coll: c.client.Database(c.dbName).Collection(collection)}
}

// Get loads the document stored under id.
func (s *Store[T]) Get(ctx context.Context, id string) (T, error) {
	var record T
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return record, fmt.Errorf("%w: id %s", domain.ErrStoreNotFound, id)
		}
		return record, fmt.Errorf("get %s from %s: %w", id, s.coll.Name(), err)
	}
	return record, nil
}

// Insert adds a new document; _id collisions are rejected.
func (s *Store[T]) Insert(ctx context.Context, record T) error {
	if _, err := s.coll.InsertOne(ctx, record); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: id %s", domain.ErrStoreDuplicate, record.Key())
		}
		return fmt.Errorf("insert into %s: %w", s.coll.Name(), err)
	}
	return nil
}

// Replace swaps the full document under its key.
func (s *Store[T]) Replace(ctx context.Context, record T) error {
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": record.Key()}, record)
	if err != nil {
		return fmt.Errorf("replace %s in %s: %w", record.Key(), s.coll.Name(), err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: id %s", domain.ErrStoreNotFound, record.Key())
	}
	return nil
}

// Remove deletes the document stored under id.
func (s *Store[T]) Remove(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("remove %s from %s: %w", id, s.coll.Name(), err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: id %s", domain.ErrStoreNotFound, id)
	}
	return nil
}

// List enumerates every document in natural (insertion) order.
func (s *Store[T]) List(ctx context.Context) ([]T, error) {
	cursor, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	records := make([]T, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.coll.Name(), err)
	}
	return records, nil
}

// NewStores builds the full store bundle over the shared client.
func NewStores(c *Client) *repository.Stores {
	return &repository.Stores{
		Farms:         newStore[models.Farm](c, "farms"),
		Birds:         newStore[models.Bird](c, "birds"),
		Inventory:     newStore[models.InventoryItem](c, "inventory"),
		Products:      newStore[models.Product](c, "products"),
		Transactions:  newStore[models.Transaction](c, "transactions"),
		HealthRecords: newStore[models.HealthRecord](c, "health_records"),
		Analytics:     newStore[models.Analytics](c, "analytics"),
		Orders:        newStore[models.Order](c, "orders"),
	}
}
