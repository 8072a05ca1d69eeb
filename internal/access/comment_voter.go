package access

import "github.com/ahmetcoskunkizilkaya/reportdesk/internal/models"

// CommentVoter covers edit and delete on comments. The comment's Report must
// be loaded so the archive lock can be checked; creating a comment is the
// report's "comment" action.
type CommentVoter struct{}

func (CommentVoter) Kind() Kind { return KindComment }

func (CommentVoter) Supports(action Action, subject any) bool {
	if action != ActionEdit && action != ActionDelete {
		return false
	}
	c, ok := subject.(*models.Comment)
	return ok && c != nil
}

func (CommentVoter) Vote(actor Actor, action Action, subject any) bool {
	comment := subject.(*models.Comment)
	if !actor.IsAuthenticated() {
		return false
	}
	if actor.IsAdmin() {
		return true
	}
	if comment.Report == nil || comment.Report.IsArchived() {
		return false
	}
	return actor.Is(comment.AuthorID)
}
