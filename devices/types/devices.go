package types

type TokenRequest struct {
	Token string `json:"token" binding:"required" example:"fcm:abc123"`
}
