package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store bundles the MongoDB client and the collections the storefront uses.
// It is constructed once in main and passed down to handlers; nothing in this
// package holds package-level connection state.
type Store struct {
	client *mongo.Client

	Products   *mongo.Collection
	Categories *mongo.Collection
	Admins     *mongo.Collection
	Purchases  *mongo.Collection
}

// Open connects to MongoDB and returns a ready Store.
func Open(ctx context.Context, uri string) (*Store, error) {
	opts := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	database := client.Database("meraki")
	return &Store{
		client:     client,
		Products:   database.Collection("products"),
		Categories: database.Collection("categories"),
		Admins:     database.Collection("admins"),
		Purchases:  database.Collection("purchases"),
	}, nil
}

// Close releases the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
