package models

import "time"

// PasswordResetToken records a single-use password reset grant. Token holds
// the jti of the signed reset token, not the token itself.
type PasswordResetToken struct {
	Token     string    `json:"token" bson:"_id"`
	UserID    int       `json:"userId" bson:"userId"`
	ExpiresAt time.Time `json:"expiresAt" bson:"expiresAt"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
