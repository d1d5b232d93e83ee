package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wakqa-labs/wakqa-backend/internal/models"
	"github.com/wakqa-labs/wakqa-backend/internal/repositories"
)

// Compile-time check to ensure ReceiptRepository implements the interface
var _ repositories.ReceiptRepository = (*ReceiptRepository)(nil)

// ReceiptRepository handles MongoDB operations for Receipt. The collection
// carries a unique index on txHash; receipts are never updated or deleted.
type ReceiptRepository struct {
	collection *mongo.Collection
}

// NewReceiptRepository creates a new ReceiptRepository
func NewReceiptRepository(db *mongo.Database) *ReceiptRepository {
	return &ReceiptRepository{
		collection: db.Collection("receipts"),
	}
}

// Insert inserts a receipt once. A duplicate txHash surfaces as a duplicate
// key error for the caller to resolve by re-reading.
func (r *ReceiptRepository) Insert(ctx context.Context, receipt *models.Receipt) error {
	receipt.ID = primitive.NewObjectID()
	receipt.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, receipt)
	return err
}

// FindByTxHash finds a receipt by its transaction hash
func (r *ReceiptRepository) FindByTxHash(ctx context.Context, txHash string) (*models.Receipt, error) {
	var receipt models.Receipt
	err := r.collection.FindOne(ctx, bson.M{"txHash": txHash}).Decode(&receipt)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &receipt, nil
}

// FindByParticipant retrieves receipts whose participants include the address
func (r *ReceiptRepository) FindByParticipant(ctx context.Context, address string) ([]*models.Receipt, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"participants": address}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var receipts []*models.Receipt
	if err = cursor.All(ctx, &receipts); err != nil {
		return nil, err
	}
	if receipts == nil {
		receipts = []*models.Receipt{}
	}
	return receipts, nil
}
