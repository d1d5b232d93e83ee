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

// Compile-time check to ensure AnswerRepository implements the interface
var _ repositories.AnswerRepository = (*AnswerRepository)(nil)

// AnswerRepository handles MongoDB operations for Answer
type AnswerRepository struct {
	collection *mongo.Collection
}

// NewAnswerRepository creates a new AnswerRepository
func NewAnswerRepository(db *mongo.Database) *AnswerRepository {
	return &AnswerRepository{
		collection: db.Collection("answers"),
	}
}

// Create inserts a new answer
func (r *AnswerRepository) Create(ctx context.Context, answer *models.Answer) error {
	answer.ID = primitive.NewObjectID()
	answer.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, answer)
	return err
}

// FindByQuestion retrieves a question's answers oldest first
func (r *AnswerRepository) FindByQuestion(ctx context.Context, questionID string) ([]*models.Answer, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"questionId": questionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var answers []*models.Answer
	if err = cursor.All(ctx, &answers); err != nil {
		return nil, err
	}
	if answers == nil {
		answers = []*models.Answer{}
	}
	return answers, nil
}

// FindByQuestionAndID resolves answerID against the question. A valid
// ObjectID hex hits the primary key; anything else is matched exactly against
// the stored legacy composite id.
func (r *AnswerRepository) FindByQuestionAndID(ctx context.Context, questionID, answerID string) (*models.Answer, error) {
	var filter bson.M
	if oid, err := primitive.ObjectIDFromHex(answerID); err == nil {
		filter = bson.M{"_id": oid, "questionId": questionID}
	} else {
		filter = bson.M{"legacyId": answerID, "questionId": questionID}
	}

	var answer models.Answer
	if err := r.collection.FindOne(ctx, filter).Decode(&answer); err != nil {
		return nil, err
	}
	return &answer, nil
}

// MarkAccepted sets isAccepted. The transition is monotonic; setting an
// already-accepted answer again is a no-op.
func (r *AnswerRepository) MarkAccepted(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isAccepted": true}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// CountByQuestion returns the live answer count for a question
func (r *AnswerRepository) CountByQuestion(ctx context.Context, questionID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"questionId": questionID})
}

// AggregateAuthorStats groups answers by author with total and accepted
// counts. A zero since means no time filter.
func (r *AnswerRepository) AggregateAuthorStats(ctx context.Context, since time.Time) ([]*models.AuthorStats, error) {
	pipeline := mongo.Pipeline{}
	if !since.IsZero() {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{
			"createdAt": bson.M{"$gte": since},
		}}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$group", Value: bson.M{
			"_id":          "$author",
			"answersCount": bson.M{"$sum": 1},
			"acceptedCount": bson.M{"$sum": bson.M{
				"$cond": bson.A{"$isAccepted", 1, 0},
			}},
		}}},
	)

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stats []*models.AuthorStats
	if err = cursor.All(ctx, &stats); err != nil {
		return nil, err
	}
	if stats == nil {
		stats = []*models.AuthorStats{}
	}
	return stats, nil
}
