package repository

import (
	"context"
	"testing"

	"novelshelf/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmissionRepository_Approve(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSubmissionRepository(db)
	ctx := context.Background()

	t.Run("Promotes Pending Submission", func(t *testing.T) {
		mock.ExpectBegin()
		rows := sqlmock.NewRows([]string{"id", "name", "status", "submitted_by_user_id"}).
			AddRow(3, "Shadow Slave", "pending", 1)
		mock.ExpectQuery(`SELECT \* FROM "novel_submissions" WHERE "novel_submissions"\."id" = \$1 .+ FOR UPDATE`).
			WithArgs(3, 1).
			WillReturnRows(rows)
		mock.ExpectQuery(`INSERT INTO "novels"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
		mock.ExpectExec(`UPDATE "novel_submissions" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		novel, err := repo.Approve(ctx, 3, 9, "looks good")
		require.NoError(t, err)
		assert.Equal(t, uint(42), novel.ID)
		assert.Equal(t, "Shadow Slave", novel.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rejects Double Review", func(t *testing.T) {
		mock.ExpectBegin()
		rows := sqlmock.NewRows([]string{"id", "name", "status"}).
			AddRow(3, "Shadow Slave", "approved")
		mock.ExpectQuery(`SELECT \* FROM "novel_submissions" WHERE "novel_submissions"\."id" = \$1 .+ FOR UPDATE`).
			WithArgs(3, 1).
			WillReturnRows(rows)
		mock.ExpectRollback()

		novel, err := repo.Approve(ctx, 3, 9, "")
		require.Error(t, err)
		assert.Nil(t, novel)

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSubmissionRepository_Reject(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSubmissionRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	rows := sqlmock.NewRows([]string{"id", "name", "status"}).
		AddRow(4, "Duplicate Entry", "pending")
	mock.ExpectQuery(`SELECT \* FROM "novel_submissions" WHERE "novel_submissions"\."id" = \$1 .+ FOR UPDATE`).
		WithArgs(4, 1).
		WillReturnRows(rows)
	mock.ExpectExec(`UPDATE "novel_submissions" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Reject(ctx, 4, 9, "already in the catalog")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
