package store

import (
	"context"
	"fmt"
	"slices"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultMongoDatabase   = "nodeflow"
	defaultMongoCollection = "graphs"
)

// MongoStore keeps one BSON document per graph, keyed by name. It suits
// deployments that want durable storage with queryable history alongside
// other application data.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to the MongoDB deployment at uri and verifies the
// connection with a ping. Empty database and collection names fall back to
// "nodeflow" and "graphs".
func NewMongoStore(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	if database == "" {
		database = defaultMongoDatabase
	}
	if collection == "" {
		collection = defaultMongoCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

// Get retrieves a record by name.
func (s *MongoStore) Get(ctx context.Context, name string) (Record, error) {
	var rec Record
	err := s.coll.FindOne(ctx, bson.M{"name": name}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Put stores or replaces a record, upserting on name.
func (s *MongoStore) Put(ctx context.Context, rec Record) error {
	if prev, err := s.Get(ctx, rec.Name); err == nil {
		stamp(&rec, &prev)
	} else {
		stamp(&rec, nil)
	}

	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"name": rec.Name},
		rec,
		options.Replace().SetUpsert(true))
	return err
}

// List returns the stored names in sorted order.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	raw, err := s.coll.Distinct(ctx, "name", bson.D{})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(raw))
	for _, v := range raw {
		if name, ok := v.(string); ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

// Delete removes a record.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Close disconnects from the deployment.
func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
