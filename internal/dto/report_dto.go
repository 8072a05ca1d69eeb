package dto

import "github.com/google/uuid"

// ReportRequest is used for both create and edit. Tags is a comma-separated
// list of tag titles; unknown titles are created.
type ReportRequest struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	CategoryID   uuid.UUID  `json:"category_id"`
	Tags         string     `json:"tags"`
	ProjectID    *uuid.UUID `json:"project_id"`
	AssignedToID *uuid.UUID `json:"assigned_to_id"`
	Status       *int       `json:"status,omitempty"`
}

type CommentRequest struct {
	Content string `json:"content"`
}
