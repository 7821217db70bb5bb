package auth

import (
	"errors"
	"fmt"

	"github.com/alexedwards/argon2id"
)

// ErrAccountNotFound is returned when no local account matches a username.
var ErrAccountNotFound = errors.New("account not found")

// ErrUsernameTaken is returned when registering a username that already has
// a local account.
var ErrUsernameTaken = errors.New("username already registered")

// Account is a locally-registered user. Registration never reaches the
// network, so the credential lives here as an argon2id hash and sign-in for
// these accounts is verified offline.
type Account struct {
	User         User   `json:"user"`
	PasswordHash string `json:"passwordHash"`
}

// argon2idParams tunes local account hashing. Interactive-login cost: the
// hash is computed once per register/login on the user's own machine.
var argon2idParams = &argon2id.Params{
	Memory:      64 * 1024,
	Iterations:  2,
	Parallelism: 2,
	SaltLength:  16,
	KeyLength:   32,
}

// NewAccount creates a local account for the given user, hashing the
// cleartext password with argon2id.
func NewAccount(user User, password string) (Account, error) {
	hash, err := argon2id.CreateHash(password, argon2idParams)
	if err != nil {
		return Account{}, fmt.Errorf("hash password: %w", err)
	}
	return Account{User: user, PasswordHash: hash}, nil
}

// VerifyPassword reports whether the cleartext password matches the stored
// hash. A malformed stored hash counts as a non-match rather than an error:
// a corrupt accounts file must not make sign-in panic or succeed.
func (a Account) VerifyPassword(password string) bool {
	match, err := argon2id.ComparePasswordAndHash(password, a.PasswordHash)
	if err != nil {
		return false
	}
	return match
}

// Accounts is the persisted collection of locally-registered accounts.
type Accounts []Account

// Find returns the account for a username, or ErrAccountNotFound.
func (as Accounts) Find(username string) (Account, error) {
	for _, a := range as {
		if a.User.Username == username {
			return a, nil
		}
	}
	return Account{}, ErrAccountNotFound
}

// Add appends a new account, rejecting duplicate usernames.
func (as Accounts) Add(account Account) (Accounts, error) {
	if _, err := as.Find(account.User.Username); err == nil {
		return as, ErrUsernameTaken
	}
	return append(as, account), nil
}
