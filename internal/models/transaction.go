package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transaction types
const (
	TxTypeExchange = "exchange"
	TxTypeWithdraw = "withdraw"
)

// Transaction is an append-only ledger entry. Creating one adjusts the
// owning user's tokenBalance inside the same database transaction.
type Transaction struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserEmail       string             `bson:"userEmail" json:"userEmail"`
	Type            string             `bson:"type" json:"type"`
	EthAmount       float64            `bson:"ethAmount" json:"ethAmount"`
	WakAmount       float64            `bson:"wakAmount" json:"wakAmount"`
	TransactionHash string             `bson:"transactionHash,omitempty" json:"transactionHash,omitempty"`
	Status          string             `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}

// CreateTransactionRequest defines the structure for ledger entries
type CreateTransactionRequest struct {
	Type            string  `json:"type" binding:"required,oneof=exchange withdraw"`
	EthAmount       float64 `json:"ethAmount" binding:"gte=0"`
	WakAmount       float64 `json:"wakAmount" binding:"required,gt=0"`
	TransactionHash string  `json:"transactionHash"`
	Status          string  `json:"status"`
}
