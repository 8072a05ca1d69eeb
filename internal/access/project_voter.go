package access

import "github.com/ahmetcoskunkizilkaya/reportdesk/internal/models"

// ProjectVoter covers view, edit, delete and create on projects. View expects
// Members to be loaded.
type ProjectVoter struct{}

func (ProjectVoter) Kind() Kind { return KindProject }

func (ProjectVoter) Supports(action Action, subject any) bool {
	switch action {
	case ActionCreate:
		if subject == nil {
			return true
		}
		_, ok := subject.(*models.Project)
		return ok
	case ActionView, ActionEdit, ActionDelete:
		p, ok := subject.(*models.Project)
		return ok && p != nil
	}
	return false
}

func (ProjectVoter) Vote(actor Actor, action Action, subject any) bool {
	if !actor.IsAuthenticated() {
		return false
	}
	if actor.IsAdmin() {
		return true
	}
	if action == ActionCreate {
		return !actor.Blocked
	}

	project := subject.(*models.Project)
	switch action {
	case ActionView:
		return project.HasMember(actor.ID)
	case ActionEdit:
		return !actor.Blocked && actor.Is(project.ManagerID)
	case ActionDelete:
		return actor.Is(project.ManagerID)
	}
	return false
}
