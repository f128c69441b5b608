package databases

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bluelinehq/police-records-api/config"
)

// MongoStore implements the same per-entity databases on top of MongoDB. It
// is selected when DB_URI is set; records keep the integer ids of the memory
// store via a counters collection.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore connects using the values from the config and wires the
// resulting store into a Store bundle.
func NewMongoStore(ctx context.Context, conf *config.Config) (*Store, *MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(conf.URL))
	if err != nil {
		return nil, nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, err
	}
	name := conf.DatabaseName
	if name == "" {
		name = "police_records"
	}
	m := &MongoStore{client: client, db: client.Database(name)}
	return &Store{
		Users:       m,
		Cases:       m,
		OBEntries:   m,
		Plates:      m,
		Evidence:    m,
		Geofiles:    m,
		Reports:     m,
		Vehicles:    m,
		ResetTokens: m,
	}, m, nil
}

// Disconnect closes the underlying client.
func (m *MongoStore) Disconnect(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// nextID atomically increments and returns the per-collection id counter.
func (m *MongoStore) nextID(ctx context.Context, name string) (int, error) {
	res := m.db.Collection("counters").FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)
	var doc struct {
		Seq int `bson:"seq"`
	}
	if err := res.Decode(&doc); err != nil {
		return 0, err
	}
	return doc.Seq, nil
}

func (m *MongoStore) findByID(ctx context.Context, coll string, id interface{}, out interface{}) error {
	err := m.db.Collection(coll).FindOne(ctx, bson.M{"_id": id}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

func (m *MongoStore) findOne(ctx context.Context, coll string, filter bson.M, out interface{}) error {
	err := m.db.Collection(coll).FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

func (m *MongoStore) listAll(ctx context.Context, coll string, out interface{}) error {
	cur, err := m.db.Collection(coll).Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return err
	}
	return cur.All(ctx, out)
}

func (m *MongoStore) replace(ctx context.Context, coll string, id interface{}, doc interface{}) error {
	res, err := m.db.Collection(coll).ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoStore) remove(ctx context.Context, coll string, id interface{}) error {
	res, err := m.db.Collection(coll).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoStore) exists(ctx context.Context, coll string, filter bson.M) (bool, error) {
	count, err := m.db.Collection(coll).CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
