package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParseToken(t *testing.T) {
	token, err := IssueToken(42, "test-secret")
	require.NoError(t, err)

	userID, err := ParseToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := IssueToken(42, "test-secret")
	require.NoError(t, err)

	_, err = ParseToken(token, "other-secret")
	assert.Error(t, err)
}
