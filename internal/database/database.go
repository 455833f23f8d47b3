package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDB owns the process-wide client and one collection handle per entity.
// It is initialized once at startup and torn down through Close.
type MongoDB struct {
	Client     *mongo.Client
	Users      *mongo.Collection
	Freets     *mongo.Collection
	Comments   *mongo.Collection
	Reactions  *mongo.Collection
	Favorites  *mongo.Collection
	Timelimits *mongo.Collection
}

func NewMongoDB(uri, dbName string) (*MongoDB, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
	}

	// Ping the database to verify connection
	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	slog.Info("connected to MongoDB", "db", dbName)

	db := client.Database(dbName)
	return &MongoDB{
		Client:     client,
		Users:      db.Collection("users"),
		Freets:     db.Collection("freets"),
		Comments:   db.Collection("comments"),
		Reactions:  db.Collection("reactions"),
		Favorites:  db.Collection("favorites"),
		Timelimits: db.Collection("timelimits"),
	}, nil
}

func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// Ping verifies the connection is still alive. Used by the health endpoint.
func (m *MongoDB) Ping(ctx context.Context) error {
	return m.Client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

// EnsureIndexes creates the indexes every collection relies on.
func (m *MongoDB) EnsureIndexes(ctx context.Context) error {
	if err := m.EnsureUserIndexes(ctx); err != nil {
		return err
	}
	if err := m.EnsureFreetIndexes(ctx); err != nil {
		return err
	}
	if err := m.EnsureCommentIndexes(ctx); err != nil {
		return err
	}
	if err := m.EnsureReactionIndexes(ctx); err != nil {
		return err
	}
	if err := m.EnsureFavoriteIndexes(ctx); err != nil {
		return err
	}
	return m.EnsureTimelimitIndexes(ctx)
}

// decodeAll drains a cursor into a slice of documents. All repositories share
// the same find/sort/decode shape; the conversion to models stays per-entity.
func decodeAll[T any](ctx context.Context, cursor *mongo.Cursor) ([]T, error) {
	defer cursor.Close(ctx)

	var docs []T
	for cursor.Next(ctx) {
		var doc T
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode document: %v", err)
		}
		docs = append(docs, doc)
	}
	return docs, cursor.Err()
}
