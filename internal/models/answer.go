package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Answer references its question through the explicit QuestionID field.
// LegacyID preserves the old questionId_timestamp_random identifier for rows
// migrated from the previous scheme; new answers are keyed by ObjectID only.
// IsAccepted transitions false to true exactly once.
type Answer struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	QuestionID  string             `bson:"questionId" json:"questionId"`
	LegacyID    string             `bson:"legacyId,omitempty" json:"legacyId,omitempty"`
	Author      string             `bson:"author" json:"author"`
	Content     string             `bson:"content" json:"content"`
	ContentHash string             `bson:"contentHash" json:"contentHash"`
	IsAccepted  bool               `bson:"isAccepted" json:"isAccepted"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// CreateAnswerRequest defines the structure for answer creation
type CreateAnswerRequest struct {
	QuestionID string `json:"questionId" binding:"required"`
	Content    string `json:"content" binding:"required"`
}

// AcceptAnswerRequest defines the structure for answer acceptance
type AcceptAnswerRequest struct {
	QuestionID string `json:"questionId" binding:"required"`
	AnswerID   string `json:"answerId" binding:"required"`
}
