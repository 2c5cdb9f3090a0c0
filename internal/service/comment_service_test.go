package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novelshelf/internal/models"
)

func uintPtr(v uint) *uint { return &v }

func TestCreateCommentRequiresExactlyOneTarget(t *testing.T) {
	svc := NewCommentService(noopCommentRepo(), noopReviewRepo(), noopPostRepo(), nil)

	for _, in := range []CreateCommentInput{
		{UserID: 1, Content: "nice"},
		{UserID: 1, Content: "nice", ReviewID: uintPtr(1), PostID: uintPtr(2)},
	} {
		_, err := svc.CreateComment(context.Background(), in)

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		assert.Equal(t, "Comment must target exactly one review or post", appErr.Message)
	}
}

func TestCreateCommentRequiresContent(t *testing.T) {
	svc := NewCommentService(noopCommentRepo(), noopReviewRepo(), noopPostRepo(), nil)

	_, err := svc.CreateComment(context.Background(), CreateCommentInput{
		UserID: 1, ReviewID: uintPtr(1),
	})

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestCreateCommentOnReview(t *testing.T) {
	commentRepo := noopCommentRepo()
	var created *models.Comment
	commentRepo.createFn = func(_ context.Context, c *models.Comment) error {
		created = c
		c.ID = 10
		return nil
	}
	svc := NewCommentService(commentRepo, noopReviewRepo(), noopPostRepo(), nil)

	comment, err := svc.CreateComment(context.Background(), CreateCommentInput{
		UserID: 1, ReviewID: uintPtr(3), Content: "agreed on the pacing",
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	require.NotNil(t, created.ReviewID)
	assert.Equal(t, uint(3), *created.ReviewID)
	assert.Nil(t, created.PostID)
	assert.Equal(t, uint(10), comment.ID)
}

func TestCreateCommentReplyMustShareParentTarget(t *testing.T) {
	commentRepo := noopCommentRepo()
	commentRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Comment, error) {
		// Parent hangs off review 5, not review 3.
		return &models.Comment{ID: id, ReviewID: uintPtr(5)}, nil
	}
	svc := NewCommentService(commentRepo, noopReviewRepo(), noopPostRepo(), nil)

	_, err := svc.CreateComment(context.Background(), CreateCommentInput{
		UserID: 1, ReviewID: uintPtr(3), ParentID: uintPtr(8), Content: "re",
	})

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Equal(t, "Reply must target the same review or post as its parent", appErr.Message)
}

func TestCreateCommentReplyOnSameReview(t *testing.T) {
	commentRepo := noopCommentRepo()
	commentRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Comment, error) {
		return &models.Comment{ID: id, ReviewID: uintPtr(3)}, nil
	}
	svc := NewCommentService(commentRepo, noopReviewRepo(), noopPostRepo(), nil)

	_, err := svc.CreateComment(context.Background(), CreateCommentInput{
		UserID: 1, ReviewID: uintPtr(3), ParentID: uintPtr(8), Content: "re",
	})

	require.NoError(t, err)
}

func TestUpdateCommentRejectsOtherUsersComment(t *testing.T) {
	commentRepo := noopCommentRepo()
	commentRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Comment, error) {
		return &models.Comment{ID: id, UserID: 7}, nil
	}
	svc := NewCommentService(commentRepo, noopReviewRepo(), noopPostRepo(), nil)

	_, err := svc.UpdateComment(context.Background(), 1, 5, "edited")

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}

func TestDeleteCommentAllowsAdmin(t *testing.T) {
	commentRepo := noopCommentRepo()
	commentRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Comment, error) {
		return &models.Comment{ID: id, UserID: 7}, nil
	}
	deleted := false
	commentRepo.deleteFn = func(context.Context, uint) error {
		deleted = true
		return nil
	}
	isAdmin := func(context.Context, uint) (bool, error) { return true, nil }
	svc := NewCommentService(commentRepo, noopReviewRepo(), noopPostRepo(), isAdmin)

	err := svc.DeleteComment(context.Background(), 1, 5)

	require.NoError(t, err)
	assert.True(t, deleted)
}
