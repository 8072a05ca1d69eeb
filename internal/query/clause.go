// Package query composes the report listing for an actor.
//
// The composer only appends backend-neutral clauses to a Builder. ClauseSet
// collects them in order, and Scope renders a set onto a GORM query over the
// reports table.
package query

import (
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/models"
	"github.com/google/uuid"
)

// Clause is one conjunctive restriction on the report listing. String renders
// it in a readable pseudo-SQL that is stable for equal clauses.
type Clause interface {
	fmt.Stringer
	clause()
}

// ProjectVisible keeps reports with no project or in one of Projects.
type ProjectVisible struct{ Projects []uuid.UUID }

// CategoryIs keeps reports of one category.
type CategoryIs struct{ ID uuid.UUID }

// TagIs keeps reports carrying one tag.
type TagIs struct{ ID uuid.UUID }

// StatusIs keeps reports in one status.
type StatusIs struct{ Status models.ReportStatus }

// ProjectIs keeps reports of one project.
type ProjectIs struct{ ID uuid.UUID }

// TitleContains is a case-insensitive substring match on the title.
type TitleContains struct{ Text string }

// ProjectIsNull keeps reports outside any project.
type ProjectIsNull struct{}

// ProjectIn keeps reports in one of Projects. An empty list matches nothing.
type ProjectIn struct{ Projects []uuid.UUID }

// ProjectNotIn keeps reports that have a project outside Projects. Reports
// without a project never match, as with SQL NOT IN on a NULL column.
type ProjectNotIn struct{ Projects []uuid.UUID }

func (ProjectVisible) clause() {}
func (CategoryIs) clause()     {}
func (TagIs) clause()          {}
func (StatusIs) clause()       {}
func (ProjectIs) clause()      {}
func (TitleContains) clause()  {}
func (ProjectIsNull) clause()  {}
func (ProjectIn) clause()      {}
func (ProjectNotIn) clause()   {}

func (c ProjectVisible) String() string {
	if len(c.Projects) == 0 {
		return "project IS NULL"
	}
	return "(project IS NULL OR project IN " + idList(c.Projects) + ")"
}

func (c CategoryIs) String() string { return "category = " + c.ID.String() }
func (c TagIs) String() string      { return "tag = " + c.ID.String() }
func (c StatusIs) String() string   { return "status = " + c.Status.String() }
func (c ProjectIs) String() string  { return "project = " + c.ID.String() }

func (c TitleContains) String() string {
	return fmt.Sprintf("title CONTAINS %q", c.Text)
}

func (ProjectIsNull) String() string { return "project IS NULL" }

func (c ProjectIn) String() string {
	if len(c.Projects) == 0 {
		return "FALSE"
	}
	return "project IN " + idList(c.Projects)
}

func (c ProjectNotIn) String() string {
	if len(c.Projects) == 0 {
		return "project IS NOT NULL"
	}
	return "project NOT IN " + idList(c.Projects)
}

func idList(ids []uuid.UUID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
