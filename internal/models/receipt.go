package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transaction status values recorded on a receipt
const (
	TxStatusSuccess = "success"
	TxStatusFailed  = "failed"
)

// ReceiptCore is the signed portion of a receipt. It is serialized to JSON,
// hashed and signed with the platform key; field order is fixed by the struct.
type ReceiptCore struct {
	Network        string    `bson:"network" json:"network"`
	ChainID        int64     `bson:"chainId" json:"chainId"`
	QAContract     string    `bson:"qaContract" json:"qaContract"`
	TokenContract  string    `bson:"tokenContract" json:"tokenContract"`
	TxHash         string    `bson:"txHash" json:"txHash"`
	BlockNumber    uint64    `bson:"blockNumber" json:"blockNumber"`
	BlockHash      string    `bson:"blockHash" json:"blockHash"`
	TxStatus       string    `bson:"txStatus" json:"txStatus"`
	QuestionID     string    `bson:"questionId" json:"questionId"`
	AnswerID       string    `bson:"answerId" json:"answerId"`
	QuestionAuthor string    `bson:"questionAuthor" json:"questionAuthor"`
	AnswerAuthor   string    `bson:"answerAuthor" json:"answerAuthor"`
	Reward         float64   `bson:"reward" json:"reward"`
	TokenSymbol    string    `bson:"tokenSymbol" json:"tokenSymbol"`
	TokenDecimals  int       `bson:"tokenDecimals" json:"tokenDecimals"`
	Timestamp      time.Time `bson:"timestamp" json:"timestamp"`
}

// Receipt is the immutable settlement attestation, unique per txHash.
// Participants holds the question and answer authors for access-scoped reads.
type Receipt struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ReceiptCore       `bson:",inline"`
	GasUsed           uint64             `bson:"gasUsed" json:"gasUsed"`
	EffectiveGasPrice string             `bson:"effectiveGasPrice,omitempty" json:"effectiveGasPrice,omitempty"`
	Tags              []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	ExplorerURL       string             `bson:"explorerUrl,omitempty" json:"explorerUrl,omitempty"`
	Signature         string             `bson:"signature,omitempty" json:"signature,omitempty"`
	Signer            string             `bson:"signer,omitempty" json:"signer,omitempty"`
	Participants      []string           `bson:"participants" json:"participants"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
}

// CreateReceiptRequest defines the structure for explicit receipt creation
type CreateReceiptRequest struct {
	TxHash     string `json:"txHash" binding:"required"`
	QuestionID string `json:"questionId"`
	AnswerID   string `json:"answerId"`
}
