package access

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fixture struct {
	admin    Actor
	author   Actor
	member   Actor
	outsider Actor
	blocked  Actor
	anon     Actor

	project       *models.Project
	openReport    *models.Report
	projectReport *models.Report
	archived      *models.Report
	comment       *models.Comment
}

func newFixture() fixture {
	f := fixture{
		admin:    Actor{ID: uuid.New(), Roles: []string{models.RoleAdmin}},
		author:   Actor{ID: uuid.New()},
		member:   Actor{ID: uuid.New()},
		outsider: Actor{ID: uuid.New()},
		blocked:  Actor{ID: uuid.New(), Blocked: true},
		anon:     Anonymous(),
	}

	f.project = &models.Project{
		ID:        uuid.New(),
		ManagerID: f.author.ID,
		Members:   []models.User{{ID: f.author.ID}, {ID: f.member.ID}},
	}
	f.openReport = &models.Report{ID: uuid.New(), AuthorID: f.author.ID, Status: models.StatusPending}
	f.projectReport = &models.Report{
		ID:        uuid.New(),
		AuthorID:  f.author.ID,
		Status:    models.StatusInProgress,
		ProjectID: &f.project.ID,
		Project:   f.project,
	}
	f.archived = &models.Report{ID: uuid.New(), AuthorID: f.author.ID, Status: models.StatusArchived}
	f.comment = &models.Comment{ID: uuid.New(), AuthorID: f.member.ID, Report: f.openReport}
	return f
}

func TestActorFromUser(t *testing.T) {
	assert.False(t, FromUser(nil).IsAuthenticated())

	u := &models.User{ID: uuid.New(), Roles: []string{models.RoleAdmin}, IsBlocked: true}
	a := FromUser(u)
	assert.True(t, a.IsAuthenticated())
	assert.True(t, a.IsAdmin())
	assert.True(t, a.HasRole(models.RoleUser))
	assert.True(t, a.Blocked)
	assert.True(t, a.Is(u.ID))
	assert.False(t, Anonymous().Is(uuid.Nil))
	assert.False(t, Anonymous().HasRole(models.RoleUser))
}

func TestReportVoter(t *testing.T) {
	f := newFixture()
	m := NewDefaultManager()

	tests := []struct {
		name    string
		actor   Actor
		action  Action
		subject any
		want    bool
	}{
		{"anonymous cannot create", f.anon, ActionCreate, nil, false},
		{"user creates", f.member, ActionCreate, nil, true},
		{"blocked cannot create", f.blocked, ActionCreate, nil, false},

		{"anonymous views open report", f.anon, ActionView, f.openReport, true},
		{"anonymous cannot view project report", f.anon, ActionView, f.projectReport, false},
		{"member views project report", f.member, ActionView, f.projectReport, true},
		{"outsider cannot view project report", f.outsider, ActionView, f.projectReport, false},
		{"admin views project report", f.admin, ActionView, f.projectReport, true},

		{"author edits", f.author, ActionEdit, f.openReport, true},
		{"other user cannot edit", f.member, ActionEdit, f.openReport, false},
		{"author cannot edit archived", f.author, ActionEdit, f.archived, false},
		{"author deletes", f.author, ActionDelete, f.openReport, true},
		{"author cannot delete archived", f.author, ActionDelete, f.archived, false},

		{"any user comments", f.outsider, ActionComment, f.openReport, true},
		{"blocked cannot comment", f.blocked, ActionComment, f.openReport, false},
		{"nobody comments on archived", f.author, ActionComment, f.archived, false},
		{"anonymous cannot comment", f.anon, ActionComment, f.openReport, false},

		{"author archives", f.author, ActionToggleArchive, f.openReport, true},
		{"author unarchives", f.author, ActionToggleArchive, f.archived, true},
		{"other user cannot archive", f.member, ActionToggleArchive, f.openReport, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.CanPerform(tt.actor, KindReport, tt.action, tt.subject))
		})
	}
}

func TestReportVoterBlockedAuthor(t *testing.T) {
	f := newFixture()
	m := NewDefaultManager()
	r := &models.Report{AuthorID: f.blocked.ID, Status: models.StatusPending}

	for _, action := range []Action{ActionEdit, ActionDelete, ActionToggleArchive, ActionComment} {
		assert.False(t, m.CanPerform(f.blocked, KindReport, action, r), action)
	}
}

func TestReportViewWithoutLoadedProjectDenies(t *testing.T) {
	f := newFixture()
	m := NewDefaultManager()
	pid := uuid.New()
	r := &models.Report{AuthorID: f.author.ID, ProjectID: &pid}

	assert.False(t, m.CanPerform(f.author, KindReport, ActionView, r))
	assert.True(t, m.CanPerform(f.admin, KindReport, ActionView, r))
}

func TestCommentVoter(t *testing.T) {
	f := newFixture()
	m := NewDefaultManager()
	archivedComment := &models.Comment{AuthorID: f.member.ID, Report: f.archived}

	tests := []struct {
		name    string
		actor   Actor
		action  Action
		subject *models.Comment
		want    bool
	}{
		{"author edits", f.member, ActionEdit, f.comment, true},
		{"author deletes", f.member, ActionDelete, f.comment, true},
		{"other user cannot edit", f.author, ActionEdit, f.comment, false},
		{"anonymous cannot delete", f.anon, ActionDelete, f.comment, false},
		{"author cannot edit on archived report", f.member, ActionEdit, archivedComment, false},
		{"author cannot delete on archived report", f.member, ActionDelete, archivedComment, false},
		{"admin edits on archived report", f.admin, ActionEdit, archivedComment, true},
		{"admin deletes on archived report", f.admin, ActionDelete, archivedComment, true},
		{"report not loaded denies", f.member, ActionEdit, &models.Comment{AuthorID: f.member.ID}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.CanPerform(tt.actor, KindComment, tt.action, tt.subject))
		})
	}
}

func TestProjectVoter(t *testing.T) {
	f := newFixture()
	m := NewDefaultManager()
	blockedManaged := &models.Project{ManagerID: f.blocked.ID, Members: []models.User{{ID: f.blocked.ID}}}

	tests := []struct {
		name    string
		actor   Actor
		action  Action
		subject any
		want    bool
	}{
		{"member views", f.member, ActionView, f.project, true},
		{"manager views", f.author, ActionView, f.project, true},
		{"outsider cannot view", f.outsider, ActionView, f.project, false},
		{"manager edits", f.author, ActionEdit, f.project, true},
		{"member cannot edit", f.member, ActionEdit, f.project, false},
		{"blocked manager cannot edit", f.blocked, ActionEdit, blockedManaged, false},
		{"blocked manager deletes", f.blocked, ActionDelete, blockedManaged, true},
		{"member cannot delete", f.member, ActionDelete, f.project, false},
		{"user creates", f.outsider, ActionCreate, nil, true},
		{"blocked cannot create", f.blocked, ActionCreate, nil, false},
		{"anonymous cannot create", f.anon, ActionCreate, nil, false},
		{"anonymous cannot view", f.anon, ActionView, f.project, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.CanPerform(tt.actor, KindProject, tt.action, tt.subject))
		})
	}
}

func TestProjectViewMatchesMembership(t *testing.T) {
	m := NewDefaultManager()
	users := make([]Actor, 6)
	for i := range users {
		users[i] = Actor{ID: uuid.New()}
	}
	p := &models.Project{
		ManagerID: users[0].ID,
		Members:   []models.User{{ID: users[0].ID}, {ID: users[2].ID}, {ID: users[4].ID}},
	}

	for _, u := range users {
		assert.Equal(t, p.HasMember(u.ID), m.CanPerform(u, KindProject, ActionView, p))
	}
}

func TestUserVoter(t *testing.T) {
	f := newFixture()
	m := NewDefaultManager()
	target := &models.User{ID: f.member.ID}

	for _, action := range []Action{ActionEdit, ActionDelete} {
		assert.True(t, m.CanPerform(f.member, KindUser, action, target), "self %s", action)
		assert.True(t, m.CanPerform(f.admin, KindUser, action, target), "admin %s", action)
		assert.False(t, m.CanPerform(f.outsider, KindUser, action, target), "other %s", action)
		assert.False(t, m.CanPerform(f.anon, KindUser, action, target), "anonymous %s", action)
	}
}

func TestNonAdminArchivedLock(t *testing.T) {
	f := newFixture()
	m := NewDefaultManager()
	comment := &models.Comment{AuthorID: f.author.ID, Report: f.archived}

	for _, actor := range []Actor{f.author, f.member, f.outsider, f.blocked} {
		assert.False(t, m.CanPerform(actor, KindReport, ActionEdit, f.archived))
		assert.False(t, m.CanPerform(actor, KindReport, ActionDelete, f.archived))
		assert.False(t, m.CanPerform(actor, KindReport, ActionComment, f.archived))
		assert.False(t, m.CanPerform(actor, KindComment, ActionEdit, comment))
		assert.False(t, m.CanPerform(actor, KindComment, ActionDelete, comment))
	}
}

func TestAdminIsGrantedEverything(t *testing.T) {
	f := newFixture()
	m := NewDefaultManager()
	blockedAdmin := Actor{ID: uuid.New(), Roles: []string{models.RoleAdmin}, Blocked: true}
	archivedComment := &models.Comment{AuthorID: f.member.ID, Report: f.archived}

	checks := []struct {
		kind    Kind
		action  Action
		subject any
	}{
		{KindReport, ActionCreate, nil},
		{KindReport, ActionView, f.projectReport},
		{KindReport, ActionEdit, f.archived},
		{KindReport, ActionDelete, f.archived},
		{KindReport, ActionComment, f.archived},
		{KindReport, ActionToggleArchive, f.archived},
		{KindComment, ActionEdit, archivedComment},
		{KindComment, ActionDelete, archivedComment},
		{KindProject, ActionView, f.project},
		{KindProject, ActionEdit, f.project},
		{KindProject, ActionDelete, f.project},
		{KindProject, ActionCreate, nil},
		{KindUser, ActionEdit, &models.User{ID: f.member.ID}},
		{KindUser, ActionDelete, &models.User{ID: f.member.ID}},
	}

	for _, admin := range []Actor{f.admin, blockedAdmin} {
		for _, c := range checks {
			assert.Equal(t, Granted, m.Decide(admin, c.kind, c.action, c.subject), "%s %s", c.kind, c.action)
		}
	}
}

func TestAnonymousDeniedExceptOpenReportView(t *testing.T) {
	f := newFixture()
	m := NewDefaultManager()

	assert.True(t, m.CanPerform(f.anon, KindReport, ActionView, f.openReport))

	denied := []struct {
		kind    Kind
		action  Action
		subject any
	}{
		{KindReport, ActionCreate, nil},
		{KindReport, ActionView, f.projectReport},
		{KindReport, ActionEdit, f.openReport},
		{KindReport, ActionDelete, f.openReport},
		{KindReport, ActionComment, f.openReport},
		{KindReport, ActionToggleArchive, f.openReport},
		{KindComment, ActionEdit, f.comment},
		{KindComment, ActionDelete, f.comment},
		{KindProject, ActionView, f.project},
		{KindProject, ActionEdit, f.project},
		{KindProject, ActionDelete, f.project},
		{KindProject, ActionCreate, nil},
		{KindUser, ActionEdit, &models.User{ID: uuid.New()}},
		{KindUser, ActionDelete, &models.User{ID: uuid.New()}},
	}
	for _, c := range denied {
		assert.False(t, m.CanPerform(f.anon, c.kind, c.action, c.subject), "%s %s", c.kind, c.action)
	}
}

func TestNotApplicable(t *testing.T) {
	f := newFixture()
	m := NewDefaultManager()

	tests := []struct {
		name    string
		kind    Kind
		action  Action
		subject any
	}{
		{"unknown action", KindReport, Action("publish"), f.openReport},
		{"unknown kind", Kind("attachment"), ActionView, f.openReport},
		{"report action on project", KindReport, ActionEdit, f.project},
		{"project action on report", KindProject, ActionView, f.openReport},
		{"comment view is not a comment action", KindComment, ActionView, f.comment},
		{"user action on comment", KindUser, ActionEdit, f.comment},
		{"nil report", KindReport, ActionEdit, (*models.Report)(nil)},
		{"missing subject", KindReport, ActionView, nil},
		{"create with wrong subject", KindProject, ActionCreate, f.openReport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, NotApplicable, m.Decide(f.admin, tt.kind, tt.action, tt.subject))
			assert.False(t, m.CanPerform(f.admin, tt.kind, tt.action, tt.subject))
		})
	}
}

func TestEditDeniedAfterArchiving(t *testing.T) {
	f := newFixture()
	m := NewDefaultManager()
	r := &models.Report{AuthorID: f.author.ID, Status: models.StatusPending}

	assert.True(t, m.CanPerform(f.author, KindReport, ActionEdit, r))
	r.Status = models.StatusArchived
	assert.False(t, m.CanPerform(f.author, KindReport, ActionEdit, r))
}

func TestProjectScenarioManagerAndMember(t *testing.T) {
	m := NewDefaultManager()
	manager := Actor{ID: uuid.New()}
	x := Actor{ID: uuid.New()}
	y := Actor{ID: uuid.New()}
	p := &models.Project{ManagerID: manager.ID, Members: []models.User{{ID: manager.ID}, {ID: x.ID}}}

	assert.False(t, m.CanPerform(y, KindProject, ActionView, p))
	assert.True(t, m.CanPerform(x, KindProject, ActionView, p))
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "granted", Granted.String())
	assert.Equal(t, "denied", Denied.String())
	assert.Equal(t, "not_applicable", NotApplicable.String())
}
