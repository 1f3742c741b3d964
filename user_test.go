package accounts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewUser(t *testing.T) {
	tests := []struct {
		name, email string
		wantErr     error
		wantUser    *User
	}{
		{"", "", ErrEmptyName, nil},
		{"   ", "kurt@example.com", ErrEmptyName, nil},
		{"Kurt", "", ErrInvalidEmail, nil},
		{"Kurt", "email", ErrInvalidEmail, nil},
		{"Kurt", "kurt@example", ErrInvalidEmail, nil},
		{" Kurt ", " Kurt@Example.COM ", nil, &User{Name: "Kurt", Email: "kurt@example.com"}},
	}

	for _, tt := range tests {
		user, err := NewUser(tt.name, tt.email)
		assert.Equal(t, tt.wantErr, err)
		assert.Equal(t, tt.wantUser, user)
	}
}

func TestValidPassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"", false},
		{"short1", false},
		{"password123", false},
		{"myPASSWORDy", false},
		{"dragons", true},
		{"MyPass5678@", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, validPassword(tt.password), tt.password)
	}
}

func TestUserSessions(t *testing.T) {
	u := &User{}

	u.AddSession("t1")
	u.AddSession("t2")
	u.AddSession("t3")
	assert.Equal(t, []string{"t1", "t2", "t3"}, u.Sessions)

	u.AddSession("t2")
	assert.Equal(t, []string{"t1", "t2", "t3"}, u.Sessions)

	assert.True(t, u.HasSession("t2"))
	u.RemoveSession("t2")
	assert.False(t, u.HasSession("t2"))
	assert.Equal(t, []string{"t1", "t3"}, u.Sessions)

	u.RemoveSession("missing")
	assert.Equal(t, []string{"t1", "t3"}, u.Sessions)

	u.ClearSessions()
	assert.Empty(t, u.Sessions)
}
