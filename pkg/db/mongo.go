package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sidharrth2002/rss-scraper/pkg/domain"
)

// MongoSaver stores one document per feed record plus a run-summary
// document, both upserted so repeated runs stay idempotent.
type MongoSaver struct {
	mongoClient *mongo.Client
	records     *mongo.Collection
	runs        *mongo.Collection
}

// NewMongoSaver creates a Mongo-backed report saver
func NewMongoSaver(connectionString, databaseName string) *MongoSaver {
	clientOptions := options.Client().ApplyURI(connectionString)
	mongoClient, err := mongo.Connect(context.Background(), clientOptions)
	if err != nil {
		// Return saver with nil - error will be caught during Connect()
		return &MongoSaver{}
	}

	database := mongoClient.Database(databaseName)

	return &MongoSaver{
		mongoClient: mongoClient,
		records:     database.Collection("feed_records"),
		runs:        database.Collection("scrape_runs"),
	}
}

// Connect establishes connection to MongoDB
func (s *MongoSaver) Connect(ctx context.Context) error {
	if s.mongoClient == nil {
		return fmt.Errorf("mongo client not initialized")
	}
	return s.mongoClient.Ping(ctx, nil)
}

// Close closes the MongoDB connection
func (s *MongoSaver) Close(ctx context.Context) error {
	if s.mongoClient == nil {
		return nil
	}
	return s.mongoClient.Disconnect(ctx)
}

type feedRecordDoc struct {
	URL       string    `bson:"url"`
	Validity  string    `bson:"validity"`
	Titles    []string  `bson:"titles"`
	Reason    string    `bson:"reason,omitempty"`
	ScrapedAt time.Time `bson:"scraped_at"`
}

type scrapeRunDoc struct {
	TotalURLs    int       `bson:"total_urls"`
	ValidURLs    int       `bson:"valid_urls"`
	ValidityRate float64   `bson:"validity_rate"`
	FinishedAt   time.Time `bson:"finished_at"`
}

// SaveReport upserts every feed record keyed by URL and appends a run
// summary document.
func (s *MongoSaver) SaveReport(ctx context.Context, rep *domain.CorpusReport) error {
	if s.records == nil || s.runs == nil {
		return fmt.Errorf("collections not initialized")
	}

	now := time.Now()
	for _, r := range rep.Records {
		doc := feedRecordDoc{
			URL:       r.URL,
			Validity:  string(r.Validity),
			Titles:    r.TitleTexts(),
			Reason:    r.Reason,
			ScrapedAt: now,
		}

		filter := bson.M{"url": r.URL}
		update := bson.M{"$set": doc}
		opts := options.Update().SetUpsert(true)

		if _, err := s.records.UpdateOne(ctx, filter, update, opts); err != nil {
			return fmt.Errorf("failed to save record for %s: %w", r.URL, err)
		}
	}

	run := scrapeRunDoc{
		TotalURLs:    rep.TotalURLs,
		ValidURLs:    rep.ValidURLs,
		ValidityRate: rep.ValidityRate,
		FinishedAt:   now,
	}
	if _, err := s.runs.InsertOne(ctx, run); err != nil {
		return fmt.Errorf("failed to save run summary: %w", err)
	}
	return nil
}
