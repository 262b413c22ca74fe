package service

import (
	"context"
	"strings"

	"kyutaku/internal/models"
	"kyutaku/internal/repository"
	"kyutaku/internal/storage"
)

const maxCommentLen = 10000

// FeedService manages posts, likes and comments.
type FeedService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	media       *storage.Store
}

type CreatePostInput struct {
	UserID  uint
	Content string
	Image   []byte
}

type EditPostInput struct {
	UserID  uint
	PostID  uint
	Content string
	Image   []byte
}

type AddCommentInput struct {
	UserID uint
	PostID uint
	Text   string
}

type DeleteCommentInput struct {
	UserID    uint
	CommentID uint
}

// ToggleLikeResult reports the like state after a toggle.
type ToggleLikeResult struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likes_count"`
}

// NewFeedService returns a FeedService.
func NewFeedService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	media *storage.Store,
) *FeedService {
	return &FeedService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		media:       media,
	}
}

// Feed lists posts from all users, newest first.
func (s *FeedService) Feed(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.postRepo.List(ctx, limit, offset, currentUserID)
}

// CreatePost creates a post; text content or an image is required.
func (s *FeedService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" && len(in.Image) == 0 {
		return nil, models.NewValidationError("Empty post")
	}

	post := &models.Post{UserID: in.UserID, Content: content}
	if len(in.Image) > 0 {
		saved, err := s.media.Save(storage.KindPost, in.Image)
		if err != nil {
			return nil, err
		}
		post.ImageURL = saved.URL
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

// EditPost replaces the post's content outright (not a merge); the image is
// replaced only when a new one is supplied. Only the owner may edit.
func (s *FeedService) EditPost(ctx context.Context, in EditPostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}
	if post.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only edit your own posts")
	}

	post.Content = strings.TrimSpace(in.Content)
	if len(in.Image) > 0 {
		saved, err := s.media.Save(storage.KindPost, in.Image)
		if err != nil {
			return nil, err
		}
		post.ImageURL = saved.URL
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, in.PostID, in.UserID)
}

// DeletePost removes the post and cascades to its comments and likes.
func (s *FeedService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewForbiddenError("You can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, postID)
}

// ToggleLike flips the user's like on the post. Any authenticated user may
// like any post, including their own.
func (s *FeedService) ToggleLike(ctx context.Context, userID, postID uint) (*ToggleLikeResult, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}
	liked, count, err := s.postRepo.ToggleLike(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	return &ToggleLikeResult{Liked: liked, LikesCount: count}, nil
}

// AddComment creates a comment on an existing post.
func (s *FeedService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, models.NewValidationError("Empty comment")
	}
	if len(text) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	if _, err := s.postRepo.GetByID(ctx, in.PostID, 0); err != nil {
		return nil, err
	}

	comment := &models.Comment{PostID: in.PostID, UserID: in.UserID, Text: text}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListComments returns a post's comments, newest first.
func (s *FeedService) ListComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID)
}

// DeleteComment removes a comment. Allowed for the comment's author and for
// the owner of the post it is attached to, so post owners can moderate their
// own threads.
func (s *FeedService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return err
	}

	if comment.UserID != in.UserID {
		post, err := s.postRepo.GetByID(ctx, comment.PostID, 0)
		if err != nil {
			return err
		}
		if post.UserID != in.UserID {
			return models.NewForbiddenError("You can only delete your own comments")
		}
	}

	return s.commentRepo.Delete(ctx, in.CommentID)
}
