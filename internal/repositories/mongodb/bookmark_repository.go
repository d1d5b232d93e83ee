package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wakqa-labs/wakqa-backend/internal/models"
	"github.com/wakqa-labs/wakqa-backend/internal/repositories"
)

// Compile-time check to ensure BookmarkRepository implements the interface
var _ repositories.BookmarkRepository = (*BookmarkRepository)(nil)

// BookmarkRepository handles MongoDB operations for Bookmark
type BookmarkRepository struct {
	collection *mongo.Collection
}

// NewBookmarkRepository creates a new BookmarkRepository
func NewBookmarkRepository(db *mongo.Database) *BookmarkRepository {
	return &BookmarkRepository{
		collection: db.Collection("bookmarks"),
	}
}

// Add upserts the (questionId, userAddress) pair. $setOnInsert keeps the
// original createdAt when the pair already exists, so a duplicate add is a
// successful no-op.
func (r *BookmarkRepository) Add(ctx context.Context, bookmark *models.Bookmark) (bool, error) {
	filter := bson.M{
		"questionId":  bookmark.QuestionID,
		"userAddress": bookmark.UserAddress,
	}
	update := bson.M{"$setOnInsert": bson.M{
		"questionId":  bookmark.QuestionID,
		"userAddress": bookmark.UserAddress,
		"createdAt":   time.Now(),
	}}
	result, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, err
	}
	return result.UpsertedCount > 0, nil
}

// Remove deletes the pair
func (r *BookmarkRepository) Remove(ctx context.Context, questionID, userAddress string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{
		"questionId":  questionID,
		"userAddress": userAddress,
	})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// FindByUser retrieves a user's bookmarks newest first
func (r *BookmarkRepository) FindByUser(ctx context.Context, userAddress string) ([]*models.Bookmark, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"userAddress": userAddress}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookmarks []*models.Bookmark
	if err = cursor.All(ctx, &bookmarks); err != nil {
		return nil, err
	}
	if bookmarks == nil {
		bookmarks = []*models.Bookmark{}
	}
	return bookmarks, nil
}
