package model

// Assignee is a team member eligible to own tasks.
type Assignee struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position,omitempty"`
	Role     string `json:"role,omitempty"`
}

// IsNew reports whether the assignee has not been saved to the store yet.
func (a Assignee) IsNew() bool {
	return a.ID == ""
}
