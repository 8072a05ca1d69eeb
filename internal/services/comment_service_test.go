package services

import (
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/dto"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCommentCreateValidation(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewCommentService(db, testConfig())
	report := &models.Report{ID: uuid.New()}

	_, err := svc.Create(testTenant, uuid.New(), report, &dto.CommentRequest{Content: "   "})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(testTenant, uuid.New(), report, &dto.CommentRequest{Content: strings.Repeat("x", 256)})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCommentUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewCommentService(db, testConfig())
	comment := &models.Comment{ID: uuid.New(), Content: "old"}

	mock.ExpectExec(`UPDATE "comments" SET "content"=\$1,"updated_at"=\$2 WHERE id = \$3 AND tenant_id = \$4`).
		WithArgs("new text", sqlmock.AnyArg(), sqlmock.AnyArg(), testTenant).
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := svc.Update(testTenant, comment, &dto.CommentRequest{Content: " new text "})
	require.NoError(t, err)
	assert.Equal(t, "new text", got.Content)
}

func TestCommentDeleteByAuthorAndReport(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewCommentService(db, testConfig())

	mock.ExpectExec(`DELETE FROM "comments" WHERE author_id = \$1 AND tenant_id = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 5))
	require.NoError(t, svc.DeleteByAuthor(testTenant, uuid.New()))

	mock.ExpectExec(`DELETE FROM "comments" WHERE report_id = \$1 AND tenant_id = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	require.NoError(t, svc.DeleteByReport(testTenant, uuid.New()))
}

func TestCommentDeleteOnReportsByJoinsTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewCommentService(db, testConfig())

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "comments" WHERE report_id IN \(SELECT "id" FROM "reports" WHERE tenant_id = \$1 AND author_id = \$2\) AND tenant_id = \$3`).
		WithArgs(testTenant, sqlmock.AnyArg(), testTenant).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	err := db.Transaction(func(tx *gorm.DB) error {
		return svc.WithTx(tx).DeleteOnReportsBy(testTenant, uuid.New())
	})
	require.NoError(t, err)
}

func TestCommentGetNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewCommentService(db, testConfig())

	mock.ExpectQuery(`SELECT \* FROM "comments" WHERE id = \$1 AND tenant_id = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Get(testTenant, uuid.New())
	assert.ErrorIs(t, err, ErrCommentNotFound)
}
