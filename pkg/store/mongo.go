package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storeman/graph-uml/pkg/errors"
	"github.com/storeman/graph-uml/pkg/graph"
)

// diagramsCollection is the collection name used within the database.
const diagramsCollection = "diagrams"

// MongoStore persists diagrams in a MongoDB collection, one document
// per diagram keyed by name.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// mongoRecord is the stored document shape.
type mongoRecord struct {
	Name      string        `bson:"_id"`
	Diagram   graph.Diagram `bson:"diagram"`
	UpdatedAt time.Time     `bson:"updated_at"`
}

// NewMongoStore connects to MongoDB at uri, verifies the connection,
// and uses the diagrams collection of the named database.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to %s", uri)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "ping %s", uri)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(diagramsCollection),
	}, nil
}

// Save implements Store with upsert semantics.
func (s *MongoStore) Save(ctx context.Context, name string, d graph.Diagram) error {
	rec := mongoRecord{Name: name, Diagram: d, UpdatedAt: time.Now().UTC()}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": name}, rec, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "save diagram %q", name)
	}
	return nil
}

// Load implements Store.
func (s *MongoStore) Load(ctx context.Context, name string) (graph.Diagram, error) {
	var rec mongoRecord
	err := s.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return graph.Diagram{}, errors.New(errors.ErrCodeDiagramNotFound, "diagram %q not found", name)
	}
	if err != nil {
		return graph.Diagram{}, errors.Wrap(errors.ErrCodeStore, err, "load diagram %q", name)
	}
	return rec.Diagram, nil
}

// List implements Store.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list diagrams")
	}
	defer cursor.Close(ctx)

	var names []string
	for cursor.Next(ctx) {
		var rec struct {
			Name string `bson:"_id"`
		}
		if err := cursor.Decode(&rec); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStore, err, "decode diagram name")
		}
		names = append(names, rec.Name)
	}
	if err := cursor.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list diagrams")
	}
	return names, nil
}

// Delete implements Store.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": name}); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete diagram %q", name)
	}
	return nil
}

// Close implements Store.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
