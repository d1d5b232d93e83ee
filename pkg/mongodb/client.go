package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Client represents a MongoDB client
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewClient creates a new MongoDB client
func NewClient(uri string) (*Client, error) {
	clientOptions := options.Client().ApplyURI(uri)

	client, err := mongo.Connect(context.Background(), clientOptions)
	if err != nil {
		return nil, err
	}

	// Check the connection
	err = client.Ping(context.Background(), nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		client: client,
	}, nil
}

// Database returns a database
func (c *Client) Database(name string) *mongo.Database {
	if c.db == nil || c.db.Name() != name {
		c.db = c.client.Database(name)
	}
	return c.db
}

// WithTransaction runs fn inside a single multi-document transaction. The
// context passed to fn must be used for every operation that should be part
// of the transaction.
func (c *Client) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := c.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// EnsureIndexes creates the unique indexes the data model relies on:
// user email/wallet lookups, receipt txHash dedup, bookmark pair dedup and
// question contract ids.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)
	uniqueSparse := options.Index().SetUnique(true).SetSparse(true)

	_, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: uniqueSparse},
		{Keys: bson.D{{Key: "walletAddress", Value: 1}}, Options: uniqueSparse},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("questions").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "questionId", Value: 1}}, Options: unique,
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("answers").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "questionId", Value: 1}, {Key: "createdAt", Value: 1}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("receipts").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "txHash", Value: 1}}, Options: unique,
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("bookmarks").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "questionId", Value: 1}, {Key: "userAddress", Value: 1}}, Options: unique,
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("notifications").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userEmail", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}

// Disconnect disconnects from MongoDB
func (c *Client) Disconnect(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
