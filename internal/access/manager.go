package access

// Manager dispatches checks to the voter registered for a kind.
type Manager struct {
	voters map[Kind]Voter
}

// NewManager registers voters by kind. A later voter for the same kind
// replaces an earlier one.
func NewManager(voters ...Voter) *Manager {
	m := &Manager{voters: make(map[Kind]Voter, len(voters))}
	for _, v := range voters {
		m.voters[v.Kind()] = v
	}
	return m
}

// NewDefaultManager returns a manager with the report, comment, project and
// user voters.
func NewDefaultManager() *Manager {
	return NewManager(ReportVoter{}, CommentVoter{}, ProjectVoter{}, UserVoter{})
}

// Decide evaluates the check and reports whether it applied at all.
func (m *Manager) Decide(actor Actor, kind Kind, action Action, subject any) Decision {
	v, ok := m.voters[kind]
	if !ok || !v.Supports(action, subject) {
		return NotApplicable
	}
	if v.Vote(actor, action, subject) {
		return Granted
	}
	return Denied
}

// CanPerform is Decide collapsed to a boolean; NotApplicable denies.
func (m *Manager) CanPerform(actor Actor, kind Kind, action Action, subject any) bool {
	return m.Decide(actor, kind, action, subject).Allowed()
}
