package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/golang-jwt/jwt/v5"

	"github.com/wakqa-labs/wakqa-backend/internal/config"
	"github.com/wakqa-labs/wakqa-backend/internal/models"
)

// WeiPerToken is the minor-unit scale of the reward token (18 decimals).
const WeiPerToken = 1e18

// GenerateSessionToken generates the JWT carried by the session cookie.
// The subject claim is the user's email.
func GenerateSessionToken(email string, cfg *config.Config) (string, error) {
	claims := jwt.MapClaims{
		"sub": email,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Second * time.Duration(cfg.JWT.ExpiresIn)).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWT.Secret))
}

// ValidateSessionToken validates a session token and returns the email claim.
func ValidateSessionToken(tokenString string, cfg *config.Config) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}

	email, _ := claims["sub"].(string)
	if email == "" {
		return "", errors.New("token has no subject")
	}
	return email, nil
}

// ContentHash returns the 0x-prefixed keccak256 hash of content, matching the
// hash the contracts compute over the same bytes.
func ContentHash(content string) string {
	return hexutil.Encode(crypto.Keccak256([]byte(content)))
}

// NormalizeAddress lowercases a wallet address for storage and comparison.
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// NormalizeReward converts a stored reward to whole tokens. The unit tag is
// authoritative when present; untagged legacy values fall back to a magnitude
// heuristic where anything >= 1e18 is taken as minor units. A legacy value of
// exactly 1e18 is therefore read as 1 token.
func NormalizeReward(amount float64, unit string) float64 {
	switch unit {
	case models.RewardUnitToken:
		return amount
	case models.RewardUnitWei:
		return amount / WeiPerToken
	}
	if amount >= WeiPerToken {
		return amount / WeiPerToken
	}
	return amount
}
