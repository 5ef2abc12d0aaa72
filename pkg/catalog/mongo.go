package catalog

import (
	"context"
	"fmt"
	"net/url"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/roomgrid/pkg/errors"
)

// Default MongoDB location of catalog records.
const (
	DefaultMongoDatabase   = "roomgrid"
	DefaultMongoCollection = "items"
)

// MongoSource reads catalog records from a MongoDB collection. Each document
// has the record fields name, image and size.
type MongoSource struct {
	URI        string
	Database   string
	Collection string
}

// NewMongoSource creates a MongoDB source. Empty database or collection
// names fall back to the defaults.
func NewMongoSource(uri, database, collection string) *MongoSource {
	if database == "" {
		database = DefaultMongoDatabase
	}
	if collection == "" {
		collection = DefaultMongoCollection
	}
	return &MongoSource{URI: uri, Database: database, Collection: collection}
}

// Records implements Source. Each call opens and closes its own connection;
// catalogs are read once at load and on explicit reload.
func (s *MongoSource) Records(ctx context.Context, refresh bool) ([]Record, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect %s", s)
	}
	defer client.Disconnect(context.WithoutCancel(ctx))

	coll := client.Database(s.Database).Collection(s.Collection)
	cur, err := coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "query %s", s)
	}

	var records []Record
	if err := cur.All(ctx, &records); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", s)
	}
	return records, nil
}

// String describes the source without credentials.
func (s *MongoSource) String() string {
	host := s.URI
	if u, err := url.Parse(s.URI); err == nil {
		host = u.Host
	}
	return fmt.Sprintf("mongodb://%s/%s.%s", host, s.Database, s.Collection)
}
