package chain

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// ABI fragment for the escrow contract event emitted when a question author
// accepts an answer and the reward is released.
const qaEventABI = `[{"anonymous":false,"inputs":[{"indexed":false,"name":"questionId","type":"string"},{"indexed":false,"name":"answerId","type":"string"},{"indexed":false,"name":"answerAuthor","type":"address"},{"indexed":false,"name":"reward","type":"uint256"}],"name":"AnswerAccepted","type":"event"}]`

// AnswerAcceptedEvent is the decoded AnswerAccepted log.
type AnswerAcceptedEvent struct {
	QuestionID   string
	AnswerID     string
	AnswerAuthor string   // lowercase hex address
	RewardWei    *big.Int // minor units
}

// Settlement bundles the on-chain facts about one acceptance transaction.
type Settlement struct {
	TxHash            string
	BlockNumber       uint64
	BlockHash         string
	Status            string // "success" or "failed"
	GasUsed           uint64
	EffectiveGasPrice string
	Timestamp         time.Time
	Event             *AnswerAcceptedEvent
}

// Reader is the read-only chain access the receipt flow depends on.
type Reader interface {
	Settlement(ctx context.Context, txHash string) (*Settlement, error)
}

// Client talks to an Ethereum-compatible JSON-RPC node. It never sends
// transactions; wallet writes happen in the browser.
type Client struct {
	eth      *ethclient.Client
	contract common.Address
	events   abi.ABI
	timeout  time.Duration
}

var _ Reader = (*Client)(nil)

// NewClient dials the RPC endpoint and prepares the event ABI.
func NewClient(rpcURL, qaContract string, timeout time.Duration) (*Client, error) {
	eth, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the RPC endpoint: %w", err)
	}

	events, err := abi.JSON(strings.NewReader(qaEventABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse event ABI: %w", err)
	}

	return &Client{
		eth:      eth,
		contract: common.HexToAddress(qaContract),
		events:   events,
		timeout:  timeout,
	}, nil
}

// Settlement fetches the receipt and containing block for txHash and decodes
// the AnswerAccepted event if the escrow contract emitted one. Logs from other
// contracts are ignored; logs that fail to decode are skipped.
func (c *Client) Settlement(ctx context.Context, txHash string) (*Settlement, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	hash := common.HexToHash(txHash)

	receipt, err := c.eth.TransactionReceipt(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transaction receipt: %w", err)
	}

	s := &Settlement{
		TxHash:      txHash,
		BlockNumber: receipt.BlockNumber.Uint64(),
		BlockHash:   receipt.BlockHash.Hex(),
		Status:      "failed",
		GasUsed:     receipt.GasUsed,
	}
	if receipt.Status == types.ReceiptStatusSuccessful {
		s.Status = "success"
	}
	if receipt.EffectiveGasPrice != nil {
		s.EffectiveGasPrice = receipt.EffectiveGasPrice.String()
	}

	// Block timestamp is informational; a header fetch failure does not void
	// the settlement.
	if header, err := c.eth.HeaderByHash(ctx, receipt.BlockHash); err == nil {
		s.Timestamp = time.Unix(int64(header.Time), 0).UTC()
	}

	s.Event = c.decodeAcceptance(receipt.Logs)
	return s, nil
}

func (c *Client) decodeAcceptance(logs []*types.Log) *AnswerAcceptedEvent {
	eventID := c.events.Events["AnswerAccepted"].ID
	for _, vLog := range logs {
		if vLog.Address != c.contract {
			continue
		}
		if len(vLog.Topics) == 0 || vLog.Topics[0] != eventID {
			continue
		}

		var decoded struct {
			QuestionId   string
			AnswerId     string
			AnswerAuthor common.Address
			Reward       *big.Int
		}
		if err := c.events.UnpackIntoInterface(&decoded, "AnswerAccepted", vLog.Data); err != nil {
			continue
		}

		return &AnswerAcceptedEvent{
			QuestionID:   decoded.QuestionId,
			AnswerID:     decoded.AnswerId,
			AnswerAuthor: strings.ToLower(decoded.AnswerAuthor.Hex()),
			RewardWei:    decoded.Reward,
		}
	}
	return nil
}

// Close releases the underlying RPC connection.
func (c *Client) Close() {
	c.eth.Close()
}
