package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// CaseStudyStatus controls public visibility of a case study
type CaseStudyStatus string

const (
	CaseStudyStatusPublished CaseStudyStatus = "published"
	CaseStudyStatusDraft     CaseStudyStatus = "draft"
	CaseStudyStatusArchived  CaseStudyStatus = "archived"
)

// Valid reports whether s is a known case study status
func (s CaseStudyStatus) Valid() bool {
	switch s {
	case CaseStudyStatusPublished, CaseStudyStatusDraft, CaseStudyStatusArchived:
		return true
	}
	return false
}

// Metric is a headline result shown on a case study
type Metric struct {
	Label       string `json:"label"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

// Metrics is persisted as a JSONB array
type Metrics []Metric

// Scan implements sql.Scanner
func (m *Metrics) Scan(value interface{}) error {
	return scanJSON(value, m)
}

// Value implements driver.Valuer
func (m Metrics) Value() (driver.Value, error) {
	if m == nil {
		return []byte("[]"), nil
	}
	return valueJSON([]Metric(m))
}

// MarshalJSON emits [] instead of null for an empty list.
func (m Metrics) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Metric(m))
}

// CaseStudy is a long-form client engagement write-up
type CaseStudy struct {
	ID                string          `json:"_id"`
	Title             string          `json:"title"`
	Client            string          `json:"client"`
	Industry          string          `json:"industry"`
	Overview          string          `json:"overview"`
	Challenge         string          `json:"challenge"`
	Solution          string          `json:"solution"`
	Results           string          `json:"results"`
	Testimonial       string          `json:"testimonial,omitempty"`
	TestimonialAuthor string          `json:"testimonialAuthor,omitempty"`
	TestimonialRole   string          `json:"testimonialRole,omitempty"`
	Images            StringList      `json:"images"`
	Technologies      StringList      `json:"technologies"`
	Timeline          string          `json:"timeline"`
	TeamSize          int             `json:"teamSize"`
	Metrics           Metrics         `json:"metrics"`
	Featured          bool            `json:"featured"`
	Status            CaseStudyStatus `json:"status"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// GetID returns the record identifier
func (c CaseStudy) GetID() string { return c.ID }

// Validate checks required fields, the status enum and metric labels
func (c *CaseStudy) Validate() error {
	var f fieldErrors
	f.required("title", c.Title)
	f.maxLen("title", c.Title, 200)
	f.required("client", c.Client)
	f.required("industry", c.Industry)
	f.required("overview", c.Overview)
	if c.TeamSize < 0 {
		f.add("teamSize", "must not be negative")
	}
	if c.Status == "" {
		c.Status = CaseStudyStatusDraft
	}
	if !c.Status.Valid() {
		f.add("status", "must be one of published, draft, archived")
	}
	for i, m := range c.Metrics {
		if m.Label == "" || m.Value == "" {
			f.add("metrics", "entry %d needs a label and a value", i)
		}
	}
	return f.result()
}
