package models

import "time"

// ProjectStatus is the delivery state of a portfolio project
type ProjectStatus string

const (
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusInProgress ProjectStatus = "in-progress"
	ProjectStatusPlanning   ProjectStatus = "planning"
	ProjectStatusOnHold     ProjectStatus = "on-hold"
)

// Valid reports whether s is a known project status
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusCompleted, ProjectStatusInProgress, ProjectStatusPlanning, ProjectStatusOnHold:
		return true
	}
	return false
}

// Project represents a portfolio entry
type Project struct {
	ID                  string        `json:"_id"`
	Title               string        `json:"title"`
	Category            string        `json:"category"`
	Description         string        `json:"description"`
	DetailedDescription string        `json:"detailedDescription,omitempty"`
	Image               string        `json:"image"`
	Images              StringList    `json:"images"`
	Technologies        StringList    `json:"technologies"`
	URL                 string        `json:"url,omitempty"`
	Client              string        `json:"client,omitempty"`
	Status              ProjectStatus `json:"status"`
	Featured            bool          `json:"featured"`
	CreatedAt           time.Time     `json:"createdAt"`
	UpdatedAt           time.Time     `json:"updatedAt"`
}

// GetID returns the record identifier
func (p Project) GetID() string { return p.ID }

// Validate checks required fields and the status enum
func (p *Project) Validate() error {
	var f fieldErrors
	f.required("title", p.Title)
	f.maxLen("title", p.Title, 200)
	f.required("category", p.Category)
	f.required("description", p.Description)
	if p.Status == "" {
		p.Status = ProjectStatusPlanning
	}
	if !p.Status.Valid() {
		f.add("status", "must be one of completed, in-progress, planning, on-hold")
	}
	return f.result()
}
