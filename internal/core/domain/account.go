package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var ErrAccountNotFound = errors.New("account not found")
var ErrAccountExists = errors.New("account already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrForbidden = errors.New("access forbidden")

// Account models an authenticated end user and the ledger fields attached to
// its document. Credits only move through the quota ledger; nothing else may
// write CvCredits.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CvCredits    int       `json:"cv_credits"`
	LastCvAt     time.Time `json:"last_cv_at,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
