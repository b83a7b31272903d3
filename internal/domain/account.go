// Package domain provides definitions of all entities.
package domain

import "errors"

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountAlreadyExists indicates that an account with the given name already exists.
	ErrAccountAlreadyExists = errors.New("account already exists")
	// ErrWrongPin indicates that the supplied pin does not match the account pin.
	ErrWrongPin = errors.New("wrong pin")
	// ErrInvalidSecret indicates that the supplied bank secret failed verification.
	ErrInvalidSecret = errors.New("invalid bank secret")
)

// Account holds the balance and the pin of a single named account.
//
// The pin is empty at creation and is set out-of-band. The json field
// names are the persisted record format and must not change.
type Account struct {
	Name    string `json:"name"`
	Pin     string `json:"pin"`
	Balance int64  `json:"balance"`
}
