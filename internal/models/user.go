package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// for sign-in
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// for sign-up; the recovery question/answer pair is the identity service's
// account-recovery mechanism.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

type RecoveryQuestionRequest struct {
	Username string `json:"username" validate:"required"`
}

type RecoveryAnswerRequest struct {
	Username string `json:"username" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

type AuthResponse struct {
	Success        bool   `json:"success"`
	Token          string `json:"token,omitempty"`
	Username       string `json:"username,omitempty"`
	Message        string `json:"message,omitempty"`
	RemainingTries int    `json:"remaining_tries,omitempty"`
	RetryAfter     int    `json:"retry_after,omitempty"`
}

type RecoveryQuestionResponse struct {
	Question string `json:"question"`
}

// Claims carried by tokens the identity service issues.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}
