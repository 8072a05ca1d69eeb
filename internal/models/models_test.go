package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUserGetRolesImpliesBaseRole(t *testing.T) {
	u := &User{}
	assert.Equal(t, []string{RoleUser}, u.GetRoles())
	assert.True(t, u.HasRole(RoleUser))
	assert.False(t, u.IsAdmin())

	u.AddRole(RoleAdmin)
	u.AddRole(RoleAdmin)
	assert.Len(t, u.Roles, 1)
	assert.ElementsMatch(t, []string{RoleAdmin, RoleUser}, u.GetRoles())
	assert.True(t, u.IsAdmin())
}

func TestUserGetRolesDeduplicates(t *testing.T) {
	u := &User{Roles: []string{RoleUser, RoleProjectManager, RoleUser}}
	assert.Equal(t, []string{RoleUser, RoleProjectManager}, u.GetRoles())
}

func TestProjectHasMember(t *testing.T) {
	manager := uuid.New()
	member := uuid.New()
	outsider := uuid.New()

	p := &Project{ManagerID: manager, Members: []User{{ID: member}}}

	assert.True(t, p.HasMember(manager), "manager is always a member")
	assert.True(t, p.HasMember(member))
	assert.False(t, p.HasMember(outsider))
	assert.False(t, p.HasMember(uuid.Nil))
}

func TestProjectAddMember(t *testing.T) {
	u := User{ID: uuid.New()}
	p := &Project{}

	assert.True(t, p.AddMember(u))
	assert.False(t, p.AddMember(u))
	assert.Len(t, p.Members, 1)
	assert.True(t, p.HasMember(u.ID))
}

func TestStatusFromCode(t *testing.T) {
	tests := []struct {
		raw  string
		want ReportStatus
		ok   bool
	}{
		{"1", StatusPending, true},
		{"2", StatusInProgress, true},
		{" 3 ", StatusCompleted, true},
		{"4", StatusArchived, true},
		{"0", 0, false},
		{"5", 0, false},
		{"", 0, false},
		{"archived", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := StatusFromCode(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestStatusNames(t *testing.T) {
	assert.Equal(t, "in_progress", StatusInProgress.String())
	assert.Equal(t, "unknown", ReportStatus(9).String())
	assert.True(t, StatusArchived.Valid())
	assert.False(t, ReportStatus(0).Valid())
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "ui-bug", Slugify("  UI Bug!! "))
	assert.Equal(t, "backend-v2", Slugify("Backend v2"))
}
