package service

import (
	"context"

	"novelshelf/internal/models"
	"novelshelf/internal/repository"
)

// CommentService handles comments on reviews and posts.
type CommentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
	postRepo    repository.PostRepository
	isAdmin     func(ctx context.Context, userID uint) (bool, error)
}

type CreateCommentInput struct {
	UserID   uint
	ReviewID *uint  `json:"review_id"`
	PostID   *uint  `json:"post_id"`
	ParentID *uint  `json:"parent_id"`
	Content  string `json:"content"`
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	reviewRepo repository.ReviewRepository,
	postRepo repository.PostRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
		postRepo:    postRepo,
		isAdmin:     isAdmin,
	}
}

const maxCommentLen = 5000

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Content too long (max 5000 characters)")
	}

	// A comment targets exactly one of review or post
	if (in.ReviewID == nil) == (in.PostID == nil) {
		return nil, models.NewValidationError("Comment must target exactly one review or post")
	}

	if in.ReviewID != nil {
		if _, err := s.reviewRepo.GetByID(ctx, *in.ReviewID, 0); err != nil {
			return nil, err
		}
	} else {
		if _, err := s.postRepo.GetByID(ctx, *in.PostID, 0); err != nil {
			return nil, err
		}
	}

	if in.ParentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *in.ParentID, 0)
		if err != nil {
			return nil, err
		}
		// A reply lives under the same review or post as its parent
		if !sameTarget(parent.ReviewID, in.ReviewID) || !sameTarget(parent.PostID, in.PostID) {
			return nil, models.NewValidationError("Reply must target the same review or post as its parent")
		}
	}

	comment := &models.Comment{
		UserID:   in.UserID,
		ReviewID: in.ReviewID,
		PostID:   in.PostID,
		ParentID: in.ParentID,
		Content:  in.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID, in.UserID)
}

func sameTarget(a, b *uint) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

func (s *CommentService) ReviewComments(ctx context.Context, reviewID uint, limit, offset int, currentUserID uint) ([]*models.Comment, error) {
	return s.commentRepo.GetByReviewID(ctx, reviewID, limit, offset, currentUserID)
}

func (s *CommentService) PostComments(ctx context.Context, postID uint, limit, offset int, currentUserID uint) ([]*models.Comment, error) {
	return s.commentRepo.GetByPostID(ctx, postID, limit, offset, currentUserID)
}

func (s *CommentService) Replies(ctx context.Context, parentID uint, limit, offset int, currentUserID uint) ([]*models.Comment, error) {
	return s.commentRepo.GetReplies(ctx, parentID, limit, offset, currentUserID)
}

func (s *CommentService) UpdateComment(ctx context.Context, userID, commentID uint, content string) (*models.Comment, error) {
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(content) > maxCommentLen {
		return nil, models.NewValidationError("Content too long (max 5000 characters)")
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID, userID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, models.NewUnauthorizedError("You can only update your own comments")
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID, userID)
	if err != nil {
		return err
	}

	if comment.UserID != userID {
		if s.isAdmin == nil {
			return models.NewUnauthorizedError("You can only delete your own comments")
		}
		admin, err := s.isAdmin(ctx, userID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewUnauthorizedError("You can only delete your own comments")
		}
	}

	return s.commentRepo.Delete(ctx, commentID)
}

// ToggleLike flips the user's like on a comment and returns the fresh state.
func (s *CommentService) ToggleLike(ctx context.Context, userID, commentID uint) (*models.Comment, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID, userID); err != nil {
		return nil, err
	}

	isLiked, err := s.commentRepo.IsLiked(ctx, userID, commentID)
	if err != nil {
		return nil, err
	}

	if isLiked {
		if err := s.commentRepo.Unlike(ctx, userID, commentID); err != nil {
			return nil, err
		}
	} else {
		if err := s.commentRepo.Like(ctx, userID, commentID); err != nil {
			return nil, err
		}
	}

	return s.commentRepo.GetByID(ctx, commentID, userID)
}
