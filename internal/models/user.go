package models

import "time"

type User struct {
	ID           int       `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Action   string `json:"action" form:"action"`
}

type RegisterRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type VerifyOTPRequest struct {
	Token string `json:"token" form:"token"`
	Code  string `json:"code" form:"otp_input"`
}

// OTPChallenge is a pending second-factor check, keyed by Token.
type OTPChallenge struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the challenge can no longer be verified at t.
func (c OTPChallenge) Expired(t time.Time) bool {
	return !t.Before(c.ExpiresAt)
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

type ChallengeResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
