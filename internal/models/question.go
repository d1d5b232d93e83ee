package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Question status values
const (
	QuestionStatusOpen   = "open"
	QuestionStatusSolved = "solved"
)

// Reward unit tags. Legacy documents may carry neither, in which case
// normalization falls back to a magnitude heuristic.
const (
	RewardUnitWei   = "wei"
	RewardUnitToken = "token"
)

// Question is a question with an escrowed token reward. QuestionID is the
// contract-assigned identifier, distinct from the Mongo _id. AnswerCount is
// recomputed from the answers collection on read and never trusted as stored.
type Question struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	QuestionID       string             `bson:"questionId" json:"questionId"`
	Author           string             `bson:"author" json:"author"`
	Title            string             `bson:"title" json:"title"`
	Content          string             `bson:"content" json:"content"`
	ContentHash      string             `bson:"contentHash" json:"contentHash"`
	Reward           float64            `bson:"reward" json:"reward"`
	RewardUnit       string             `bson:"rewardUnit,omitempty" json:"rewardUnit,omitempty"`
	Tags             []string           `bson:"tags" json:"tags"`
	Status           string             `bson:"status" json:"status"`
	AcceptedAnswerID string             `bson:"acceptedAnswerId,omitempty" json:"acceptedAnswerId,omitempty"`
	TxHash           string             `bson:"txHash,omitempty" json:"txHash,omitempty"`
	AnswerCount      int                `bson:"-" json:"answerCount"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CreateQuestionRequest defines the structure for question creation
type CreateQuestionRequest struct {
	QuestionID string   `json:"questionId" binding:"required"`
	Title      string   `json:"title" binding:"required"`
	Content    string   `json:"content" binding:"required"`
	Reward     float64  `json:"reward" binding:"gte=0"`
	RewardUnit string   `json:"rewardUnit" binding:"omitempty,oneof=wei token"`
	Tags       []string `json:"tags"`
	TxHash     string   `json:"txHash"`
}

// QuestionFilter narrows question list reads
type QuestionFilter struct {
	Tag    string
	Status string
	Author string
}
