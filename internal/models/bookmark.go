package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bookmark is a unique (questionId, userAddress) pair
type Bookmark struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	QuestionID  string             `bson:"questionId" json:"questionId"`
	UserAddress string             `bson:"userAddress" json:"userAddress"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
