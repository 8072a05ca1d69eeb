package access

import "github.com/ahmetcoskunkizilkaya/reportdesk/internal/models"

// ReportVoter covers view, create, edit, delete, comment and toggle_archive on
// reports. View expects Project.Members to be loaded when ProjectID is set.
type ReportVoter struct{}

func (ReportVoter) Kind() Kind { return KindReport }

func (ReportVoter) Supports(action Action, subject any) bool {
	switch action {
	case ActionCreate:
		if subject == nil {
			return true
		}
		_, ok := subject.(*models.Report)
		return ok
	case ActionView, ActionEdit, ActionDelete, ActionComment, ActionToggleArchive:
		r, ok := subject.(*models.Report)
		return ok && r != nil
	}
	return false
}

func (ReportVoter) Vote(actor Actor, action Action, subject any) bool {
	if action == ActionCreate {
		return canCreateReport(actor)
	}

	report := subject.(*models.Report)
	if action == ActionView {
		return canViewReport(actor, report)
	}
	if !actor.IsAuthenticated() {
		return false
	}
	if actor.IsAdmin() {
		return true
	}

	switch action {
	case ActionEdit, ActionDelete:
		return !report.IsArchived() && !actor.Blocked && actor.Is(report.AuthorID)
	case ActionComment:
		return !report.IsArchived() && !actor.Blocked
	case ActionToggleArchive:
		return !actor.Blocked && actor.Is(report.AuthorID)
	}
	return false
}

func canCreateReport(actor Actor) bool {
	if !actor.IsAuthenticated() {
		return false
	}
	return actor.IsAdmin() || !actor.Blocked
}

// canViewReport is the only check open to anonymous actors: reports outside
// any project are public.
func canViewReport(actor Actor, report *models.Report) bool {
	if actor.IsAdmin() {
		return true
	}
	if report.ProjectID == nil {
		return true
	}
	if !actor.IsAuthenticated() || report.Project == nil {
		return false
	}
	return report.Project.HasMember(actor.ID)
}
