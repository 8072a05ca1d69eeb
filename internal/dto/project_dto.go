package dto

type ProjectRequest struct {
	Name string `json:"name"`
	// Members is a comma-separated list of nicknames, used on create only.
	Members string `json:"members,omitempty"`
}

type AddMembersRequest struct {
	Nicknames string `json:"nicknames"`
}
