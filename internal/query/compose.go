package query

import (
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/access"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/filters"
	"github.com/google/uuid"
)

var voters = access.NewDefaultManager()

// ComposeReportQuery appends the visibility clause and every applicable
// filter for actor to b. actorProjects are the ids of the projects the actor
// is a member of. All clauses are conjunctive; conflicting flags such as
// unassigned together with assigned are both applied as given.
func ComposeReportQuery(b Builder, actor access.Actor, actorProjects []uuid.UUID, f filters.Normalized) {
	admin := actor.IsAdmin()

	if !admin {
		b.Where(ProjectVisible{Projects: actorProjects})
	}
	if f.Category != nil {
		b.Where(CategoryIs{ID: f.Category.ID})
	}
	if f.Tag != nil {
		b.Where(TagIs{ID: f.Tag.ID})
	}
	if f.Status != nil {
		b.Where(StatusIs{Status: *f.Status})
	}
	if f.Project != nil && voters.CanPerform(actor, access.KindProject, access.ActionView, f.Project) {
		b.Where(ProjectIs{ID: f.Project.ID})
	}
	if f.Search != "" {
		b.Where(TitleContains{Text: f.Search})
	}
	if f.Unassigned {
		b.Where(ProjectIsNull{})
	}
	if f.Assigned {
		b.Where(ProjectIn{Projects: actorProjects})
	}
	if admin && f.AdminAssigned {
		b.Where(ProjectNotIn{Projects: actorProjects})
	}
}
