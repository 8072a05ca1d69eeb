package access

import "github.com/ahmetcoskunkizilkaya/reportdesk/internal/models"

// UserVoter covers edit (profile, nickname, email, password) and delete on
// accounts: the account owner or an admin.
type UserVoter struct{}

func (UserVoter) Kind() Kind { return KindUser }

func (UserVoter) Supports(action Action, subject any) bool {
	if action != ActionEdit && action != ActionDelete {
		return false
	}
	u, ok := subject.(*models.User)
	return ok && u != nil
}

func (UserVoter) Vote(actor Actor, action Action, subject any) bool {
	target := subject.(*models.User)
	if !actor.IsAuthenticated() {
		return false
	}
	return actor.IsAdmin() || actor.Is(target.ID)
}
