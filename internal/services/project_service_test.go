package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/dto"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProject() *models.Project {
	manager := models.User{ID: uuid.New(), Nickname: "manager"}
	member := models.User{ID: uuid.New(), Nickname: "member"}
	return &models.Project{
		ID:        uuid.New(),
		ManagerID: manager.ID,
		Members:   []models.User{manager, member},
	}
}

func TestProjectCreateValidation(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewProjectService(db, testConfig())

	_, err := svc.Create(testTenant, uuid.New(), &dto.ProjectRequest{Name: " "})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestProjectRemoveMember(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewProjectService(db, testConfig())
	project := newProject()

	t.Run("manager cannot be removed", func(t *testing.T) {
		assert.ErrorIs(t, svc.RemoveMember(testTenant, project, project.ManagerID), ErrManagerRemoval)
	})

	t.Run("outsider is not a member", func(t *testing.T) {
		assert.ErrorIs(t, svc.RemoveMember(testTenant, project, uuid.New()), ErrNotMember)
	})

	t.Run("member is removed and unassigned", func(t *testing.T) {
		member := project.Members[1].ID
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM project_members WHERE project_id = \$1 AND user_id = \$2`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "reports" SET "assigned_to_id"=\$1,"updated_at"=\$2 WHERE \(project_id = \$3 AND assigned_to_id = \$4\) AND tenant_id = \$5|UPDATE "reports" SET "assigned_to_id"=\$1,"updated_at"=\$2 WHERE project_id = \$3 AND assigned_to_id = \$4 AND tenant_id = \$5`).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		require.NoError(t, svc.RemoveMember(testTenant, project, member))
	})
}

func TestProjectDeleteOrphansReports(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewProjectService(db, testConfig())
	project := newProject()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "reports" SET .*"project_id"=.* WHERE project_id = \$\d AND tenant_id = \$\d`).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(`DELETE FROM project_members WHERE project_id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "projects" WHERE id = \$1 AND tenant_id = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.Delete(testTenant, project))
}

func TestProjectAddMembersSkipsUnknownAndExisting(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewProjectService(db, testConfig())
	project := newProject()
	existing := project.Members[1]

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE nickname IN \(\$1,\$2\) AND tenant_id = \$3`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "nickname"}).
			AddRow(existing.ID.String(), testTenant, existing.Nickname))

	added, err := svc.AddMembers(testTenant, project, "member, ghost, not valid!")
	require.NoError(t, err)
	assert.Empty(t, added)
}

func TestProjectAddMembersWithoutValidNicknames(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewProjectService(db, testConfig())

	added, err := svc.AddMembers(testTenant, newProject(), "  , bad name, x!y")
	require.NoError(t, err)
	assert.Empty(t, added)
}

func TestProjectGetNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewProjectService(db, testConfig())

	mock.ExpectQuery(`SELECT \* FROM "projects" WHERE id = \$1 AND tenant_id = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Get(testTenant, uuid.New())
	assert.ErrorIs(t, err, ErrProjectNotFound)
}
