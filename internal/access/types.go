package access

// Kind names a resource family with its own voter.
type Kind string

const (
	KindReport  Kind = "report"
	KindComment Kind = "comment"
	KindProject Kind = "project"
	KindUser    Kind = "user"
)

type Action string

const (
	ActionView          Action = "view"
	ActionCreate        Action = "create"
	ActionEdit          Action = "edit"
	ActionDelete        Action = "delete"
	ActionComment       Action = "comment"
	ActionToggleArchive Action = "toggle_archive"
)

// Decision is the outcome of evaluating one (kind, action, subject) triple.
type Decision int

const (
	// NotApplicable means no voter supports the action for the given subject:
	// an unknown kind or action, or a subject of the wrong type.
	NotApplicable Decision = iota
	Granted
	Denied
)

func (d Decision) String() string {
	switch d {
	case Granted:
		return "granted"
	case Denied:
		return "denied"
	default:
		return "not_applicable"
	}
}

// Allowed is true only for Granted.
func (d Decision) Allowed() bool {
	return d == Granted
}

// Voter evaluates the actions of one resource kind. Supports must be checked
// before Vote; Vote may assume the subject has the type Supports accepted.
type Voter interface {
	Kind() Kind
	Supports(action Action, subject any) bool
	Vote(actor Actor, action Action, subject any) bool
}
