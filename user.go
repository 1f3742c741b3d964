package accounts

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/rs/xid"
)

type Repository interface {
	FindByID(id ID) (*User, error)
	FindByEmail(email string) (*User, error)
	Store(u *User) error
	Update(u *User) error
	Delete(id ID) error
}

type ID string

type User struct {
	ID           ID `bson:"_id"`
	Name         string
	Email        string
	PasswordHash string
	Age          int
	Sessions     []string
	Avatar       []byte
	CreatedAt    time.Time
}

var (
	ErrEmptyName          = errors.New("name cannot be empty")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrInvalidAge         = errors.New("age cannot be negative")
	ErrExistingEmail      = errors.New("email in use")
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("unable to login")
	ErrInvalidUpdate      = errors.New("invalid updates")
)

var emailRegexp = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// NewUser validates name and email and returns a new User if
// arguments are valid
func NewUser(name string, email string) (*User, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return nil, ErrEmptyName
	}

	e := normalizeEmail(email)
	if !emailRegexp.MatchString(e) {
		return nil, ErrInvalidEmail
	}

	return &User{Name: n, Email: e}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validPassword requires at least 7 characters and bans the literal
// word "password" anywhere in the value.
func validPassword(password string) bool {
	if len(password) < 7 {
		return false
	}
	return !strings.Contains(strings.ToLower(password), "password")
}

func (u *User) HasSession(token string) bool {
	for _, t := range u.Sessions {
		if t == token {
			return true
		}
	}
	return false
}

// AddSession appends token to the session list. Entries are unique,
// so re-adding a token that is already present is a no-op.
func (u *User) AddSession(token string) {
	if u.HasSession(token) {
		return
	}
	u.Sessions = append(u.Sessions, token)
}

func (u *User) RemoveSession(token string) {
	for i, t := range u.Sessions {
		if t == token {
			u.Sessions = append(u.Sessions[:i], u.Sessions[i+1:]...)
			break
		}
	}
}

func (u *User) ClearSessions() {
	u.Sessions = nil
}

func nextID() ID {
	return ID(xid.New().String())
}

//IsValidID checks if a given id is valid based on the xid library definition of a valid id
// this method should change if we ever change our uid generation library
func IsValidID(id string) bool {
	if _, err := xid.FromString(id); err == xid.ErrInvalidID {
		return false
	}
	return true
}
