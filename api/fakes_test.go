package api

import (
	"sort"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/learnity/learnity-backend/models"
	"github.com/learnity/learnity-backend/services"
	"github.com/learnity/learnity-backend/storage"
)

// In-memory fakes for the store interfaces, keyed by id like the real tables.

type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int64]*models.User{}}
}

func (s *fakeUserStore) FindAll() ([]*models.User, error) {
	var out []*models.User
	for _, u := range s.users {
		copied := *u
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeUserStore) FindByID(id int64) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (s *fakeUserStore) FindByEmail(email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) Add(user *models.User) error {
	s.nextID++
	user.ID = s.nextID
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *fakeUserStore) Update(user *models.User) error {
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *fakeUserStore) Delete(id int64) error {
	delete(s.users, id)
	return nil
}

type fakePostStore struct {
	posts    map[int64]*models.Post
	comments *fakeCommentStore
	nextID   int64
}

func newFakePostStore(comments *fakeCommentStore) *fakePostStore {
	return &fakePostStore{posts: map[int64]*models.Post{}, comments: comments}
}

func (s *fakePostStore) FindAll() ([]*models.Post, error) {
	var out []*models.Post
	for _, p := range s.posts {
		copied := *p
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakePostStore) FindByID(id int64) (*models.Post, error) {
	p, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (s *fakePostStore) FindByUser(userID int64) ([]*models.Post, error) {
	var out []*models.Post
	for _, p := range s.posts {
		if p.UserID == userID {
			copied := *p
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakePostStore) Add(post *models.Post) error {
	s.nextID++
	post.ID = s.nextID
	copied := *post
	s.posts[post.ID] = &copied
	return nil
}

func (s *fakePostStore) Update(post *models.Post) error {
	copied := *post
	s.posts[post.ID] = &copied
	return nil
}

// Delete cascades to comments, mirroring the real repo.
func (s *fakePostStore) Delete(id int64) error {
	delete(s.posts, id)
	if s.comments != nil {
		for cid, c := range s.comments.comments {
			if c.PostID == id {
				delete(s.comments.comments, cid)
			}
		}
	}
	return nil
}

type fakeProgressStore struct {
	entries map[int64]*models.LearningProgress
	nextID  int64
}

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{entries: map[int64]*models.LearningProgress{}}
}

func (s *fakeProgressStore) FindAll() ([]*models.LearningProgress, error) {
	var out []*models.LearningProgress
	for _, e := range s.entries {
		copied := *e
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeProgressStore) FindByID(id int64) (*models.LearningProgress, error) {
	e, ok := s.entries[id]
	if !ok {
		return nil, nil
	}
	copied := *e
	return &copied, nil
}

func (s *fakeProgressStore) FindByUser(userID int64) ([]*models.LearningProgress, error) {
	var out []*models.LearningProgress
	for _, e := range s.entries {
		if e.UserID == userID {
			copied := *e
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeProgressStore) Add(entry *models.LearningProgress) error {
	s.nextID++
	entry.ID = s.nextID
	copied := *entry
	s.entries[entry.ID] = &copied
	return nil
}

func (s *fakeProgressStore) Update(entry *models.LearningProgress) error {
	copied := *entry
	s.entries[entry.ID] = &copied
	return nil
}

func (s *fakeProgressStore) Delete(id int64) error {
	delete(s.entries, id)
	return nil
}

type fakeBlogStore struct {
	blogs  map[int64]*models.Blog
	nextID int64
}

func newFakeBlogStore() *fakeBlogStore {
	return &fakeBlogStore{blogs: map[int64]*models.Blog{}}
}

func (s *fakeBlogStore) FindAll() ([]*models.Blog, error) {
	var out []*models.Blog
	for _, b := range s.blogs {
		copied := *b
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeBlogStore) FindByID(id int64) (*models.Blog, error) {
	b, ok := s.blogs[id]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (s *fakeBlogStore) Add(blog *models.Blog) error {
	s.nextID++
	blog.ID = s.nextID
	copied := *blog
	s.blogs[blog.ID] = &copied
	return nil
}

func (s *fakeBlogStore) Update(blog *models.Blog) error {
	copied := *blog
	s.blogs[blog.ID] = &copied
	return nil
}

func (s *fakeBlogStore) Delete(id int64) error {
	delete(s.blogs, id)
	return nil
}

type fakeCommentStore struct {
	comments map[int64]*models.Comment
	nextID   int64
}

func newFakeCommentStore() *fakeCommentStore {
	return &fakeCommentStore{comments: map[int64]*models.Comment{}}
}

func (s *fakeCommentStore) FindByID(id int64) (*models.Comment, error) {
	c, ok := s.comments[id]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (s *fakeCommentStore) FindByPost(postID int64) ([]*models.Comment, error) {
	var out []*models.Comment
	for _, c := range s.comments {
		if c.PostID == postID {
			copied := *c
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeCommentStore) Add(comment *models.Comment) error {
	s.nextID++
	comment.ID = s.nextID
	copied := *comment
	s.comments[comment.ID] = &copied
	return nil
}

func (s *fakeCommentStore) Update(comment *models.Comment) error {
	copied := *comment
	s.comments[comment.ID] = &copied
	return nil
}

func (s *fakeCommentStore) Delete(id int64) error {
	delete(s.comments, id)
	return nil
}

type fakeVideoStore struct {
	videos map[int64]*models.Video
	nextID int64
}

func newFakeVideoStore() *fakeVideoStore {
	return &fakeVideoStore{videos: map[int64]*models.Video{}}
}

func (s *fakeVideoStore) FindAll() ([]*models.Video, error) {
	var out []*models.Video
	for _, v := range s.videos {
		copied := *v
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeVideoStore) FindByID(id int64) (*models.Video, error) {
	v, ok := s.videos[id]
	if !ok {
		return nil, nil
	}
	copied := *v
	return &copied, nil
}

func (s *fakeVideoStore) Add(video *models.Video) error {
	s.nextID++
	video.ID = s.nextID
	copied := *video
	s.videos[video.ID] = &copied
	return nil
}

func (s *fakeVideoStore) Update(video *models.Video) error {
	copied := *video
	s.videos[video.ID] = &copied
	return nil
}

func (s *fakeVideoStore) Delete(id int64) error {
	delete(s.videos, id)
	return nil
}

// testEnv bundles the fake stores, a real filesystem-backed attachment
// manager and a router with the production route table.
type testEnv struct {
	router      *chi.Mux
	attachments *services.AttachmentManager
	blobStore   *storage.FSStore
	users       *fakeUserStore
	posts       *fakePostStore
	progress    *fakeProgressStore
	blogs       *fakeBlogStore
	comments    *fakeCommentStore
	videos      *fakeVideoStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	blobStore, err := storage.NewFSStore(t.TempDir())
	require.NoError(t, err)
	attachments := services.NewAttachmentManager(blobStore)

	users := newFakeUserStore()
	comments := newFakeCommentStore()
	posts := newFakePostStore(comments)
	progress := newFakeProgressStore()
	blogs := newFakeBlogStore()
	videos := newFakeVideoStore()

	handlers := &routeHandlers{
		userHandler:     newUserHandler(users, "test-secret"),
		postHandler:     newPostHandler(posts, users, attachments),
		progressHandler: newProgressHandler(progress, users, attachments),
		blogHandler:     newBlogHandler(blogs, attachments),
		commentHandler:  newCommentHandler(comments, posts),
		videoHandler:    newVideoHandler(videos, attachments),
	}

	router := chi.NewRouter()
	setupRoutes(router, handlers)

	return &testEnv{
		router:      router,
		attachments: attachments,
		blobStore:   blobStore,
		users:       users,
		posts:       posts,
		progress:    progress,
		blogs:       blogs,
		comments:    comments,
		videos:      videos,
	}
}
