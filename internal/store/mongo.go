package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoDocID is the _id of the single document holding both collections.
const mongoDocID = "db"

type mongoRecord struct {
	ID       string `bson:"_id"`
	Document `bson:",inline"`
}

// MongoBackend stores the whole document as one MongoDB document that is
// replaced (with upsert) on every write.
type MongoBackend struct {
	col *mongo.Collection
}

func NewMongoBackend(col *mongo.Collection) *MongoBackend {
	return &MongoBackend{col: col}
}

func (m *MongoBackend) Name() string { return "mongo" }

func (m *MongoBackend) Read(ctx context.Context) (*Document, error) {
	var rec mongoRecord
	if err := m.col.FindOne(ctx, bson.M{"_id": mongoDocID}).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoDocument
		}
		return nil, err
	}
	return &rec.Document, nil
}

func (m *MongoBackend) Write(ctx context.Context, doc *Document) error {
	rec := mongoRecord{ID: mongoDocID, Document: *doc}
	opts := options.Replace().SetUpsert(true)
	_, err := m.col.ReplaceOne(ctx, bson.M{"_id": mongoDocID}, rec, opts)
	return err
}
