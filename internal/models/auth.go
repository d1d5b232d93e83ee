package models

// SignupRequest defines the structure for signup requests
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	UserName string `json:"userName" binding:"required"`
}

// SigninRequest defines the structure for signin requests
type SigninRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SessionResponse is returned by GET /auth/session
type SessionResponse struct {
	Authenticated bool  `json:"authenticated"`
	User          *User `json:"user,omitempty"`
}

// UpdateProfileRequest defines the mutable profile fields
type UpdateProfileRequest struct {
	UserName      string `json:"userName"`
	WalletAddress string `json:"walletAddress"`
}

// BalanceRequest is the explicit token-balance mutation contract. The
// operation is named, never inferred from the sign of the amount.
type BalanceRequest struct {
	Operation string  `json:"operation" binding:"required,oneof=credit debit"`
	Amount    float64 `json:"amount" binding:"required,gte=0"`
}
