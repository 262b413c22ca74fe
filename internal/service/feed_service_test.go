package service

import (
	"context"
	"errors"
	"testing"

	"kyutaku/internal/models"
	"kyutaku/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn     func(context.Context, *models.Post) error
	getByIDFn    func(context.Context, uint, uint) (*models.Post, error)
	listFn       func(context.Context, int, int, uint) ([]*models.Post, error)
	updateFn     func(context.Context, *models.Post) error
	deleteFn     func(context.Context, uint) error
	toggleLikeFn func(context.Context, uint, uint) (bool, int, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.listFn(ctx, limit, offset, currentUserID)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) ToggleLike(ctx context.Context, userID, postID uint) (bool, int, error) {
	return s.toggleLikeFn(ctx, userID, postID)
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint) ([]*models.Comment, error)
	deleteFn     func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		listFn: func(_ context.Context, _, _ int, _ uint) ([]*models.Post, error) {
			return []*models.Post{}, nil
		},
		updateFn:     func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
		toggleLikeFn: func(_ context.Context, _, _ uint) (bool, int, error) { return true, 1, nil },
	}
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:  func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listByPostFn: func(_ context.Context, _ uint) ([]*models.Comment, error) {
			return []*models.Comment{}, nil
		},
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

func newTestFeedService(t *testing.T, posts *postRepoStub, comments *commentRepoStub) *FeedService {
	t.Helper()
	return NewFeedService(posts, comments, storage.New(t.TempDir(), 10))
}

func TestFeedService_CreatePost_RequiresContentOrImage(t *testing.T) {
	posts := noopPostRepo()
	created := false
	posts.createFn = func(_ context.Context, _ *models.Post) error {
		created = true
		return nil
	}
	svc := newTestFeedService(t, posts, noopCommentRepo())

	_, err := svc.CreatePost(context.Background(), CreatePostInput{UserID: 1, Content: "   "})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.False(t, created)
}

func TestFeedService_CreatePost_TrimsContent(t *testing.T) {
	posts := noopPostRepo()
	var got *models.Post
	posts.createFn = func(_ context.Context, p *models.Post) error {
		got = p
		p.ID = 7
		return nil
	}
	svc := newTestFeedService(t, posts, noopCommentRepo())

	_, err := svc.CreatePost(context.Background(), CreatePostInput{UserID: 1, Content: "  hello  "})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "hello", got.Content)
	assert.Equal(t, uint(1), got.UserID)
}

func TestFeedService_EditPost_NonOwnerForbidden(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 1, Content: "original"}, nil
	}
	updated := false
	posts.updateFn = func(_ context.Context, _ *models.Post) error {
		updated = true
		return nil
	}
	svc := newTestFeedService(t, posts, noopCommentRepo())

	_, err := svc.EditPost(context.Background(), EditPostInput{UserID: 2, PostID: 10, Content: "hacked"})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "FORBIDDEN", appErr.Code)
	// The stored content was never touched.
	assert.False(t, updated)
}

func TestFeedService_EditPost_ReplacesContentOutright(t *testing.T) {
	posts := noopPostRepo()
	stored := &models.Post{ID: 10, UserID: 1, Content: "original", ImageURL: "/media/posts/a.jpg"}
	posts.getByIDFn = func(_ context.Context, _, _ uint) (*models.Post, error) {
		clone := *stored
		return &clone, nil
	}
	posts.updateFn = func(_ context.Context, p *models.Post) error {
		stored = p
		return nil
	}
	svc := newTestFeedService(t, posts, noopCommentRepo())

	_, err := svc.EditPost(context.Background(), EditPostInput{UserID: 1, PostID: 10, Content: "  rewritten  "})
	require.NoError(t, err)
	assert.Equal(t, "rewritten", stored.Content)
	// No new image supplied: the existing one stays.
	assert.Equal(t, "/media/posts/a.jpg", stored.ImageURL)
}

func TestFeedService_DeletePost_NonOwnerForbidden(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 1}, nil
	}
	deleted := false
	posts.deleteFn = func(_ context.Context, _ uint) error {
		deleted = true
		return nil
	}
	svc := newTestFeedService(t, posts, noopCommentRepo())

	err := svc.DeletePost(context.Background(), 2, 10)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "FORBIDDEN", appErr.Code)
	assert.False(t, deleted)

	require.NoError(t, svc.DeletePost(context.Background(), 1, 10))
	assert.True(t, deleted)
}

func TestFeedService_ToggleLike_UnknownPost(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post", id)
	}
	svc := newTestFeedService(t, posts, noopCommentRepo())

	_, err := svc.ToggleLike(context.Background(), 1, 999)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestFeedService_ToggleLike_ReportsState(t *testing.T) {
	posts := noopPostRepo()
	posts.toggleLikeFn = func(_ context.Context, _, _ uint) (bool, int, error) {
		return true, 3, nil
	}
	svc := newTestFeedService(t, posts, noopCommentRepo())

	res, err := svc.ToggleLike(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.Equal(t, 3, res.LikesCount)
}

func TestFeedService_AddComment_Validation(t *testing.T) {
	comments := noopCommentRepo()
	created := false
	comments.createFn = func(_ context.Context, _ *models.Comment) error {
		created = true
		return nil
	}
	svc := newTestFeedService(t, noopPostRepo(), comments)

	_, err := svc.AddComment(context.Background(), AddCommentInput{UserID: 1, PostID: 10, Text: "  \n "})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.False(t, created)
}

func TestFeedService_AddComment_UnknownPost(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post", id)
	}
	svc := newTestFeedService(t, posts, noopCommentRepo())

	_, err := svc.AddComment(context.Background(), AddCommentInput{UserID: 1, PostID: 999, Text: "hello"})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestFeedService_DeleteComment_DualAuthorization(t *testing.T) {
	// Comment by user 2 on a post owned by user 1.
	newStubs := func() (*postRepoStub, *commentRepoStub, *bool) {
		posts := noopPostRepo()
		posts.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 1}, nil
		}
		comments := noopCommentRepo()
		comments.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, PostID: 10, UserID: 2}, nil
		}
		deleted := false
		comments.deleteFn = func(_ context.Context, _ uint) error {
			deleted = true
			return nil
		}
		return posts, comments, &deleted
	}

	t.Run("author may delete", func(t *testing.T) {
		posts, comments, deleted := newStubs()
		svc := newTestFeedService(t, posts, comments)
		require.NoError(t, svc.DeleteComment(context.Background(), DeleteCommentInput{UserID: 2, CommentID: 5}))
		assert.True(t, *deleted)
	})

	t.Run("post owner may delete", func(t *testing.T) {
		posts, comments, deleted := newStubs()
		svc := newTestFeedService(t, posts, comments)
		require.NoError(t, svc.DeleteComment(context.Background(), DeleteCommentInput{UserID: 1, CommentID: 5}))
		assert.True(t, *deleted)
	})

	t.Run("third party forbidden", func(t *testing.T) {
		posts, comments, deleted := newStubs()
		svc := newTestFeedService(t, posts, comments)
		err := svc.DeleteComment(context.Background(), DeleteCommentInput{UserID: 3, CommentID: 5})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "FORBIDDEN", appErr.Code)
		assert.False(t, *deleted)
	})
}

func TestFeedService_Feed_PropagatesRepoError(t *testing.T) {
	posts := noopPostRepo()
	posts.listFn = func(_ context.Context, _, _ int, _ uint) ([]*models.Post, error) {
		return nil, errors.New("db down")
	}
	svc := newTestFeedService(t, posts, noopCommentRepo())

	_, err := svc.Feed(context.Background(), 50, 0, 1)
	assert.Error(t, err)
}
