package userservice

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	passwordCost = 10
	// bcrypt refuses input beyond this many bytes.
	PasswordMaxBytes = 72
)

func (p *Password) set(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), passwordCost)
	if err != nil {
		return fmt.Errorf("could not hash password: %w", err)
	}

	p.Plain = plain
	p.hash = hash

	return nil
}

// matches reports whether plain hashes to the stored value. A mismatch is not an error.
func (p *Password) matches(plain string) (bool, error) {
	switch err := bcrypt.CompareHashAndPassword(p.hash, []byte(plain)); {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("could not compare password: %w", err)
	}
}
