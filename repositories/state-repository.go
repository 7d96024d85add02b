package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tlux-project/microservices/dashboard-service/logging"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Ključevi pod kojima se čuva celokupno stanje.
const (
	KeyUsers  = "users-collection"
	KeyTasks  = "tasks-collection"
	KeyViewer = "current-viewer-email"
)

var ErrKeyNotFound = errors.New("state key not found")

// StateEvent nosi obaveštenje o promeni jednog ključa u deljenom skladištu.
type StateEvent struct {
	Key      string `json:"key"`
	NewValue []byte `json:"newValue"`
}

// StateStore je ugovor ka trajnom skladištu: cela kolekcija se uvek čita i
// piše kao jedna vrednost, a Subscribe isporučuje promene drugih sesija.
// Transport je zamenljiv (mongo, memorija) bez promene logike servisa.
// Subscribe se vraća čim je pretplata uspostavljena; događaji stižu u
// pozadini sve dok ctx ne istekne.
type StateStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Subscribe(ctx context.Context, handler func(StateEvent)) error
}

type stateDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// MongoStateRepository čuva svako stanje kao jedan dokument po ključu.
type MongoStateRepository struct {
	collection *mongo.Collection
}

func NewMongoStateRepository(collection *mongo.Collection) *MongoStateRepository {
	return &MongoStateRepository{collection: collection}
}

func (r *MongoStateRepository) Load(ctx context.Context, key string) ([]byte, error) {
	var doc stateDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to load state for key %s: %v", key, err)
	}
	return []byte(doc.Value), nil
}

func (r *MongoStateRepository) Save(ctx context.Context, key string, value []byte) error {
	doc := stateDocument{
		Key:       key,
		Value:     string(value),
		UpdatedAt: time.Now().UTC(),
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": key}, doc, opts); err != nil {
		return fmt.Errorf("failed to save state for key %s: %v", key, err)
	}
	return nil
}

// Subscribe prati change stream nad kolekcijom stanja i prosleđuje svaku
// promenu. Poslednji upis pobeđuje - primalac menja celu kolekciju.
func (r *MongoStateRepository) Subscribe(ctx context.Context, handler func(StateEvent)) error {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "operationType", Value: bson.D{{Key: "$in", Value: bson.A{"insert", "update", "replace"}}}},
		}}},
	}

	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	stream, err := r.collection.Watch(ctx, pipeline, opts)
	if err != nil {
		return fmt.Errorf("failed to open change stream: %v", err)
	}

	go func() {
		defer stream.Close(context.Background())

		for stream.Next(ctx) {
			var change struct {
				FullDocument stateDocument `bson:"fullDocument"`
			}
			if err := stream.Decode(&change); err != nil {
				logging.Logger.Errorf("Event ID: CHANGE_STREAM_DECODE_ERROR, Description: Failed to decode change stream event: %v", err)
				continue
			}

			handler(StateEvent{
				Key:      change.FullDocument.Key,
				NewValue: []byte(change.FullDocument.Value),
			})
		}

		if err := stream.Err(); err != nil && !errors.Is(err, context.Canceled) {
			logging.Logger.Errorf("Event ID: CHANGE_STREAM_ERROR, Description: Change stream closed with error: %v", err)
		}
	}()

	return nil
}
