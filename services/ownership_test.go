package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnity/learnity-backend/errs"
)

func TestAuthorizeOwner(t *testing.T) {
	assert.NoError(t, AuthorizeOwner("post", 1, 1))

	err := AuthorizeOwner("post", 1, 2)
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err), "a mismatched owner must look like a missing entity")

	var apiErr *errs.ApiErr
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.StatusCode)
}
