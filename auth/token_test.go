package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenService_IssueAndValidate(t *testing.T) {
	ts := NewTokenService([]byte("secret"))

	token, err := ts.Issue("user-1")

	assert.Nil(t, err)
	assert.NotEmpty(t, token)

	userID, err := ts.Validate(token)

	assert.Nil(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestTokenService_IssuesDistinctTokens(t *testing.T) {
	ts := NewTokenService([]byte("secret"))

	t1, _ := ts.Issue("user-1")
	t2, _ := ts.Issue("user-1")

	assert.NotEqual(t, t1, t2)
}

func TestTokenService_RejectsInvalidTokens(t *testing.T) {
	ts := NewTokenService([]byte("secret"))

	token, _ := ts.Issue("user-1")
	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + ".AAAA"

	tests := []string{"", "not-a-token", tampered}

	for _, tt := range tests {
		userID, err := ts.Validate(tt)

		assert.Equal(t, ErrInvalidToken, err)
		assert.Empty(t, userID)
	}
}

func TestTokenService_RejectsTokenSignedWithDifferentSecret(t *testing.T) {
	token, _ := NewTokenService([]byte("other")).Issue("user-1")

	_, err := NewTokenService([]byte("secret")).Validate(token)

	assert.Equal(t, ErrInvalidToken, err)
}
