package accounts

import (
	"fmt"
	"strings"
	"time"

	"github.com/KurtVarcoe/accounts-api/auth"
)

type Service interface {
	RegisterNewUser(req registerUserRequest) (*User, string, error)
	LoginUser(req loginRequest) (*User, string, error)
	LogoutUser(user *User, token string) error
	LogoutAllSessions(user *User) error
	UpdateProfile(user *User, fields map[string]interface{}) (*User, error)
	DeleteAccount(user *User) (*User, error)
	SetAvatar(user *User, avatar []byte) error
	ClearAvatar(user *User) error
	AvatarByID(id ID) ([]byte, error)
	UserByID(id ID) (*User, error)
}

type service struct {
	users  Repository
	tokens *auth.TokenService
}

func NewService(users Repository, tokens *auth.TokenService) Service {
	return &service{users: users, tokens: tokens}
}

type registerUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Age      int    `json:"age"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterNewUser creates a user and logs in its first session. Hashing
// happens here and in UpdateProfile only, never in the repositories.
func (svc *service) RegisterNewUser(req registerUserRequest) (*User, string, error) {
	user, err := NewUser(req.Name, req.Email)
	if err != nil {
		return nil, "", err
	}

	if !validPassword(req.Password) {
		return nil, "", ErrInvalidPassword
	}

	if req.Age < 0 {
		return nil, "", ErrInvalidAge
	}
	user.Age = req.Age

	if u, err := svc.users.FindByEmail(user.Email); u != nil && err == nil {
		return nil, "", ErrExistingEmail
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}
	user.PasswordHash = hash

	user.ID = nextID()
	user.CreatedAt = time.Now().UTC()

	token, err := svc.tokens.Issue(string(user.ID))
	if err != nil {
		return nil, "", err
	}
	user.AddSession(token)

	if err := svc.users.Store(user); err != nil {
		return nil, "", fmt.Errorf("error saving user: %s", err)
	}

	return user, token, nil
}

// LoginUser returns the same ErrInvalidCredentials for an unknown email and
// a wrong password, so callers cannot probe which emails are registered.
func (svc *service) LoginUser(req loginRequest) (*User, string, error) {
	user, err := svc.users.FindByEmail(normalizeEmail(req.Email))
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !auth.HashMatchesPassword(user.PasswordHash, req.Password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := svc.tokens.Issue(string(user.ID))
	if err != nil {
		return nil, "", err
	}

	user.AddSession(token)
	if err := svc.users.Update(user); err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (svc *service) LogoutUser(user *User, token string) error {
	user.RemoveSession(token)
	return svc.users.Update(user)
}

func (svc *service) LogoutAllSessions(user *User) error {
	user.ClearSessions()
	return svc.users.Update(user)
}

var allowedUpdates = map[string]bool{"name": true, "email": true, "password": true, "age": true}

// UpdateProfile applies fields to the user. A single key outside the
// allow-list rejects the whole update; nothing is persisted until every
// field has been validated.
func (svc *service) UpdateProfile(user *User, fields map[string]interface{}) (*User, error) {
	for k := range fields {
		if !allowedUpdates[k] {
			return nil, ErrInvalidUpdate
		}
	}

	updated := *user

	if v, ok := fields["name"]; ok {
		name, ok := v.(string)
		if !ok {
			return nil, ErrEmptyName
		}
		n := strings.TrimSpace(name)
		if n == "" {
			return nil, ErrEmptyName
		}
		updated.Name = n
	}

	if v, ok := fields["email"]; ok {
		email, ok := v.(string)
		if !ok {
			return nil, ErrInvalidEmail
		}
		e := normalizeEmail(email)
		if !emailRegexp.MatchString(e) {
			return nil, ErrInvalidEmail
		}
		if e != user.Email {
			if u, err := svc.users.FindByEmail(e); u != nil && err == nil {
				return nil, ErrExistingEmail
			}
		}
		updated.Email = e
	}

	if v, ok := fields["age"]; ok {
		age, ok := v.(float64)
		if !ok || age < 0 {
			return nil, ErrInvalidAge
		}
		updated.Age = int(age)
	}

	if v, ok := fields["password"]; ok {
		password, ok := v.(string)
		if !ok || !validPassword(password) {
			return nil, ErrInvalidPassword
		}
		hash, err := auth.HashPassword(password)
		if err != nil {
			return nil, err
		}
		updated.PasswordHash = hash
	}

	if err := svc.users.Update(&updated); err != nil {
		return nil, err
	}

	*user = updated
	return user, nil
}

// DeleteAccount removes the user record and returns the pre-deletion
// snapshot for the confirmation response.
func (svc *service) DeleteAccount(user *User) (*User, error) {
	snapshot := *user
	if err := svc.users.Delete(user.ID); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (svc *service) SetAvatar(user *User, avatar []byte) error {
	user.Avatar = avatar
	return svc.users.Update(user)
}

func (svc *service) ClearAvatar(user *User) error {
	user.Avatar = nil
	return svc.users.Update(user)
}

// AvatarByID collapses "no such user" and "no avatar" into the same
// not-found result.
func (svc *service) AvatarByID(id ID) ([]byte, error) {
	user, err := svc.users.FindByID(id)
	if err != nil {
		return nil, ErrNotFound
	}
	if len(user.Avatar) == 0 {
		return nil, ErrNotFound
	}
	return user.Avatar, nil
}

func (svc *service) UserByID(id ID) (*User, error) {
	return svc.users.FindByID(id)
}
