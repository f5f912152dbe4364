package api

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnity/learnity-backend/models"
)

func seedPost(t *testing.T, env *testEnv, userID int64) *models.Post {
	t.Helper()

	post := &models.Post{
		Name:   "First post",
		Status: "Published",
		Image:  "img.png",
		UserID: userID,
	}
	require.NoError(t, env.posts.Add(post))
	return post
}

func TestCreateCommentDefaultsAuthor(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env, "alice@example.com")
	post := seedPost(t, env, user.ID)

	body := jsonBody(t, map[string]string{"text": "nice write-up"})
	rec := env.do(t, http.MethodPost, fmt.Sprintf("/post/%d/comments", post.ID), body, "application/json")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var comment models.Comment
	decodeJSON(t, rec, &comment)
	assert.Equal(t, models.AnonymousAuthor, comment.Author)
	assert.Equal(t, "nice write-up", comment.Text)
	assert.Equal(t, post.ID, comment.PostID)
	assert.WithinDuration(t, time.Now(), comment.Date, time.Minute)
}

func TestCreateCommentWithAuthor(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env, "alice@example.com")
	post := seedPost(t, env, user.ID)

	body := jsonBody(t, map[string]string{"text": "agreed", "author": "Bob"})
	rec := env.do(t, http.MethodPost, fmt.Sprintf("/post/%d/comments", post.ID), body, "application/json")
	require.Equal(t, http.StatusCreated, rec.Code)

	var comment models.Comment
	decodeJSON(t, rec, &comment)
	assert.Equal(t, "Bob", comment.Author)
}

func TestCreateCommentMissingPost(t *testing.T) {
	env := newTestEnv(t)

	body := jsonBody(t, map[string]string{"text": "hello"})
	rec := env.do(t, http.MethodPost, "/post/42/comments", body, "application/json")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateCommentRequiresText(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env, "alice@example.com")
	post := seedPost(t, env, user.ID)

	body := jsonBody(t, map[string]string{"author": "Bob"})
	rec := env.do(t, http.MethodPost, fmt.Sprintf("/post/%d/comments", post.ID), body, "application/json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateCommentOnWrongPost(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env, "alice@example.com")
	postA := seedPost(t, env, user.ID)
	postB := seedPost(t, env, user.ID)

	comment := &models.Comment{Text: "on A", Author: "Bob", Date: time.Now(), PostID: postA.ID}
	require.NoError(t, env.comments.Add(comment))

	body := jsonBody(t, map[string]string{"text": "edited"})
	rec := env.do(t, http.MethodPut, fmt.Sprintf("/post/%d/comments/%d", postB.ID, comment.ID), body, "application/json")
	assert.Equal(t, http.StatusNotFound, rec.Code, "a comment reached through the wrong post looks missing")

	stored, err := env.comments.FindByID(comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "on A", stored.Text)
}

func TestUpdateCommentKeepsDateAndAuthor(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env, "alice@example.com")
	post := seedPost(t, env, user.ID)

	created := time.Now().Add(-time.Hour)
	comment := &models.Comment{Text: "original", Author: "Bob", Date: created, PostID: post.ID}
	require.NoError(t, env.comments.Add(comment))

	body := jsonBody(t, map[string]string{"text": "edited"})
	rec := env.do(t, http.MethodPut, fmt.Sprintf("/post/%d/comments/%d", post.ID, comment.ID), body, "application/json")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated models.Comment
	decodeJSON(t, rec, &updated)
	assert.Equal(t, "edited", updated.Text)
	assert.Equal(t, "Bob", updated.Author, "absent author leaves the stored one")
	assert.WithinDuration(t, created, updated.Date, time.Second)
}

func TestGetCommentsListsOnlyOwnPost(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env, "alice@example.com")
	postA := seedPost(t, env, user.ID)
	postB := seedPost(t, env, user.ID)

	require.NoError(t, env.comments.Add(&models.Comment{Text: "a1", Author: "x", Date: time.Now(), PostID: postA.ID}))
	require.NoError(t, env.comments.Add(&models.Comment{Text: "b1", Author: "x", Date: time.Now(), PostID: postB.ID}))
	require.NoError(t, env.comments.Add(&models.Comment{Text: "a2", Author: "x", Date: time.Now(), PostID: postA.ID}))

	rec := env.do(t, http.MethodGet, fmt.Sprintf("/post/%d/comments", postA.ID), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var comments []models.Comment
	decodeJSON(t, rec, &comments)
	require.Len(t, comments, 2)
	assert.Equal(t, "a1", comments[0].Text)
	assert.Equal(t, "a2", comments[1].Text)
}

func TestDeleteComment(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env, "alice@example.com")
	post := seedPost(t, env, user.ID)

	comment := &models.Comment{Text: "bye", Author: "Bob", Date: time.Now(), PostID: post.ID}
	require.NoError(t, env.comments.Add(comment))

	rec := env.do(t, http.MethodDelete, fmt.Sprintf("/post/%d/comments/%d", post.ID, comment.ID), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := env.comments.FindByID(comment.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)

	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/post/%d/comments/%d", post.ID, comment.ID), nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
