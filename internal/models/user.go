package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the single user aggregate. It is reachable by two unique sparse
// indices: email (credential login) and walletAddress (chain-side lookups).
// tokenBalance is the internal reward ledger in whole tokens, independent of
// the user's on-chain wallet balance.
type User struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email               string             `bson:"email,omitempty" json:"email,omitempty"`
	PasswordHash        string             `bson:"passwordHash,omitempty" json:"-"`
	UserName            string             `bson:"userName" json:"userName"`
	WalletAddress       string             `bson:"walletAddress,omitempty" json:"walletAddress,omitempty"`
	TokenBalance        float64            `bson:"tokenBalance" json:"tokenBalance"`
	QuestionCount       int                `bson:"questionCount" json:"questionCount"`
	AnswerCount         int                `bson:"answerCount" json:"answerCount"`
	AcceptedAnswerCount int                `bson:"acceptedAnswerCount" json:"acceptedAnswerCount"`
	Reputation          int                `bson:"reputation" json:"reputation"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PublicProfile strips credential fields for wallet-keyed lookups.
func (u *User) PublicProfile() *User {
	return &User{
		ID:                  u.ID,
		UserName:            u.UserName,
		WalletAddress:       u.WalletAddress,
		QuestionCount:       u.QuestionCount,
		AnswerCount:         u.AnswerCount,
		AcceptedAnswerCount: u.AcceptedAnswerCount,
		Reputation:          u.Reputation,
		CreatedAt:           u.CreatedAt,
	}
}
