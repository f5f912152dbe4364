package api

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnity/learnity-backend/models"
)

func createPostEntry(t *testing.T, env *testEnv, userID int64, filename string) models.Post {
	t.Helper()

	body, contentType := multipartBody(t, map[string]string{
		"name":        "Concurrency patterns",
		"topic":       "go",
		"description": "channels and select",
		"status":      "Draft",
		"userId":      fmt.Sprintf("%d", userID),
	}, multipartFile{field: "file", filename: filename, content: []byte("post-image")})

	rec := env.do(t, http.MethodPost, "/post", body, contentType)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var post models.Post
	decodeJSON(t, rec, &post)
	return post
}

func TestCreatePostSetsServerTimestamps(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env, "alice@example.com")

	post := createPostEntry(t, env, user.ID, "a.png")

	assert.NotZero(t, post.ID)
	assert.True(t, strings.HasSuffix(post.Image, "a.png"))
	assert.True(t, env.blobExists(t, post.Image))
	assert.WithinDuration(t, time.Now(), post.CreatedAt, time.Minute)
	assert.Equal(t, post.CreatedAt, post.UpdatedAt)
}

func TestGetUserPostsFiltersByOwner(t *testing.T) {
	env := newTestEnv(t)
	alice := seedUser(t, env, "alice@example.com")
	bob := seedUser(t, env, "bob@example.com")
	createPostEntry(t, env, alice.ID, "a.png")
	createPostEntry(t, env, alice.ID, "b.png")
	createPostEntry(t, env, bob.ID, "c.png")

	rec := env.do(t, http.MethodGet, fmt.Sprintf("/post?userId=%d", alice.ID), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var posts []models.Post
	decodeJSON(t, rec, &posts)
	require.Len(t, posts, 2)
	for _, p := range posts {
		assert.Equal(t, alice.ID, p.UserID)
	}
}

func TestUpdatePostNullPreservingMerge(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env, "alice@example.com")
	post := createPostEntry(t, env, user.ID, "a.png")

	body, contentType := multipartBody(t, map[string]string{
		"post details": `{"status": "Published", "description": ""}`,
	})

	rec := env.do(t, http.MethodPut, fmt.Sprintf("/post/%d?userId=%d", post.ID, user.ID), body, contentType)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated models.Post
	decodeJSON(t, rec, &updated)
	assert.Equal(t, "Published", updated.Status)
	assert.Equal(t, "", updated.Description, "explicit empty string clears the field")
	assert.Equal(t, "Concurrency patterns", updated.Name, "absent fields are preserved")
	assert.Equal(t, post.Image, updated.Image)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt) || updated.UpdatedAt.Equal(updated.CreatedAt))
}

func TestUpdatePostRequiresDetailsPart(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env, "alice@example.com")
	post := createPostEntry(t, env, user.ID, "a.png")

	body, contentType := multipartBody(t, map[string]string{})
	rec := env.do(t, http.MethodPut, fmt.Sprintf("/post/%d?userId=%d", post.ID, user.ID), body, contentType)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdatePostReplacingImageDeletesOld(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env, "alice@example.com")
	post := createPostEntry(t, env, user.ID, "a.png")

	body, contentType := multipartBody(t, map[string]string{
		"post details": `{}`,
	}, multipartFile{field: "file", filename: "b.png", content: []byte("fresh")})

	rec := env.do(t, http.MethodPut, fmt.Sprintf("/post/%d?userId=%d", post.ID, user.ID), body, contentType)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated models.Post
	decodeJSON(t, rec, &updated)
	assert.True(t, strings.HasSuffix(updated.Image, "b.png"))
	assert.True(t, env.blobExists(t, updated.Image))
	assert.False(t, env.blobExists(t, post.Image))
}

func TestDeletePostCascadesCommentsAndImage(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env, "alice@example.com")
	post := createPostEntry(t, env, user.ID, "a.png")

	comment := &models.Comment{Text: "hi", Author: "Bob", Date: time.Now(), PostID: post.ID}
	require.NoError(t, env.comments.Add(comment))

	rec := env.do(t, http.MethodDelete, fmt.Sprintf("/post/%d?userId=%d", post.ID, user.ID), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "image deleted")

	assert.False(t, env.blobExists(t, post.Image))

	stored, err := env.comments.FindByID(comment.ID)
	require.NoError(t, err)
	assert.Nil(t, stored, "comments go with their post")
}

func TestDeletePostWrongOwnerIs404(t *testing.T) {
	env := newTestEnv(t)
	alice := seedUser(t, env, "alice@example.com")
	bob := seedUser(t, env, "bob@example.com")
	post := createPostEntry(t, env, alice.ID, "a.png")

	rec := env.do(t, http.MethodDelete, fmt.Sprintf("/post/%d?userId=%d", post.ID, bob.ID), nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.True(t, env.blobExists(t, post.Image), "nothing is deleted on an ownership miss")
}

func TestGetPostForUpdateSkipsOwnerCheck(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env, "alice@example.com")
	post := createPostEntry(t, env, user.ID, "a.png")

	rec := env.do(t, http.MethodGet, fmt.Sprintf("/post/update/%d", post.ID), nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
