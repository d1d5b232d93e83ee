package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wakqa-labs/wakqa-backend/internal/apperrors"
	"github.com/wakqa-labs/wakqa-backend/internal/models"
	"github.com/wakqa-labs/wakqa-backend/internal/repositories"
)

// Compile-time check to ensure QuestionRepository implements the interface
var _ repositories.QuestionRepository = (*QuestionRepository)(nil)

// QuestionRepository handles MongoDB operations for Question
type QuestionRepository struct {
	collection *mongo.Collection
}

// NewQuestionRepository creates a new QuestionRepository
func NewQuestionRepository(db *mongo.Database) *QuestionRepository {
	return &QuestionRepository{
		collection: db.Collection("questions"),
	}
}

// Create inserts a new question
func (r *QuestionRepository) Create(ctx context.Context, question *models.Question) error {
	question.ID = primitive.NewObjectID()
	question.CreatedAt = time.Now()
	question.UpdatedAt = time.Now()
	if question.Status == "" {
		question.Status = models.QuestionStatusOpen
	}
	_, err := r.collection.InsertOne(ctx, question)
	return err
}

// FindByQuestionID finds a question by its contract-assigned id
func (r *QuestionRepository) FindByQuestionID(ctx context.Context, questionID string) (*models.Question, error) {
	var question models.Question
	err := r.collection.FindOne(ctx, bson.M{"questionId": questionID}).Decode(&question)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &question, nil
}

// FindAll retrieves questions newest first, optionally filtered
func (r *QuestionRepository) FindAll(ctx context.Context, filter models.QuestionFilter, page, limit int) ([]*models.Question, error) {
	query := bson.M{}
	if filter.Tag != "" {
		query["tags"] = filter.Tag
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Author != "" {
		query["author"] = filter.Author
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var questions []*models.Question
	if err = cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	if questions == nil {
		questions = []*models.Question{}
	}
	return questions, nil
}

// MarkSolved transitions an open question to solved and records the accepted
// answer. The status guard in the filter makes solved terminal: a second
// acceptance matches nothing and fails.
func (r *QuestionRepository) MarkSolved(ctx context.Context, questionID, answerID string) error {
	filter := bson.M{"questionId": questionID, "status": models.QuestionStatusOpen}
	update := bson.M{"$set": bson.M{
		"status":           models.QuestionStatusSolved,
		"acceptedAnswerId": answerID,
		"updatedAt":        time.Now(),
	}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		if _, err := r.FindByQuestionID(ctx, questionID); err != nil {
			return mongo.ErrNoDocuments
		}
		return apperrors.E(apperrors.AlreadyResolved, "question already resolved")
	}
	return nil
}
