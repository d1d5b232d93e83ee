package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/wakqa-labs/wakqa-backend/internal/apperrors"
	"github.com/wakqa-labs/wakqa-backend/internal/models"
	"github.com/wakqa-labs/wakqa-backend/internal/repositories"
)

// Compile-time check to ensure UserRepository implements the interface
var _ repositories.UserRepository = (*UserRepository)(nil)

// UserRepository handles MongoDB operations for the user aggregate
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
	}
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, user)
	return err
}

// FindByEmail finds a user by email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &user, nil
}

// FindByWallet finds a user by lowercase wallet address
func (r *UserRepository) FindByWallet(ctx context.Context, address string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"walletAddress": address}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update updates an existing user
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	filter := bson.M{"_id": user.ID}
	update := bson.M{"$set": user}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

// Delete deletes a user by ID
func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// CreditBalance atomically adds amount to the user's token balance
func (r *UserRepository) CreditBalance(ctx context.Context, email string, amount float64) error {
	if amount < 0 {
		return apperrors.E(apperrors.Invalid, "credit amount must not be negative")
	}
	filter := bson.M{"email": email}
	update := bson.M{
		"$inc": bson.M{"tokenBalance": amount},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DebitBalance atomically subtracts amount, but only when the balance covers
// it. The balance condition is part of the filter so a concurrent debit can
// never drive the balance negative.
func (r *UserRepository) DebitBalance(ctx context.Context, email string, amount float64) error {
	if amount < 0 {
		return apperrors.E(apperrors.Invalid, "debit amount must not be negative")
	}
	filter := bson.M{"email": email, "tokenBalance": bson.M{"$gte": amount}}
	update := bson.M{
		"$inc": bson.M{"tokenBalance": -amount},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		// Distinguish a missing user from an uncovered debit.
		if _, err := r.FindByEmail(ctx, email); err != nil {
			return mongo.ErrNoDocuments
		}
		return apperrors.E(apperrors.InsufficientBalance, "insufficient token balance")
	}
	return nil
}

// CreditAcceptedReward credits a reward by wallet address and bumps the
// accepted-answer counters in one update.
func (r *UserRepository) CreditAcceptedReward(ctx context.Context, wallet string, reward float64) error {
	filter := bson.M{"walletAddress": wallet}
	update := bson.M{
		"$inc": bson.M{
			"tokenBalance":        reward,
			"acceptedAnswerCount": 1,
			"reputation":          10,
		},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// IncrementQuestionCount bumps the user's question counter
func (r *UserRepository) IncrementQuestionCount(ctx context.Context, email string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"email": email},
		bson.M{"$inc": bson.M{"questionCount": 1}, "$set": bson.M{"updatedAt": time.Now()}})
	return err
}

// IncrementAnswerCount bumps the user's answer counter
func (r *UserRepository) IncrementAnswerCount(ctx context.Context, email string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"email": email},
		bson.M{"$inc": bson.M{"answerCount": 1}, "$set": bson.M{"updatedAt": time.Now()}})
	return err
}
