package testutil

import (
	"time"

	"github.com/northwind-labs/sitecms/internal/models"
)

// Fixed identifiers used across handler tests
const (
	TestAdminID   = "0b8e7a52-3c1d-4f6e-9a2b-1d5c7e9f3a10"
	TestProjectID = "6f1c1d5e-2b7a-4c55-9d0e-4b7f3a1e9c21"
	MissingID     = "9d3f2c1b-7e6a-4b5c-8d9e-0f1a2b3c4d5e"
)

// FixedTime is the creation time of every fixture
var FixedTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// NewProject returns a valid project fixture
func NewProject(title string) models.Project {
	return models.Project{
		Title:        title,
		Category:     "Web",
		Description:  "A " + title + " build",
		Image:        "/images/" + title + ".png",
		Images:       models.StringList{},
		Technologies: models.StringList{"Go", "PostgreSQL"},
		Status:       models.ProjectStatusCompleted,
	}
}

// NewCaseStudy returns a valid case study fixture
func NewCaseStudy(title string, status models.CaseStudyStatus) models.CaseStudy {
	return models.CaseStudy{
		Title:        title,
		Client:       "Acme",
		Industry:     "Retail",
		Overview:     "Overview",
		Challenge:    "Challenge",
		Solution:     "Solution",
		Results:      "Results",
		Timeline:     "3 months",
		TeamSize:     4,
		Images:       models.StringList{},
		Technologies: models.StringList{"Go"},
		Metrics:      models.Metrics{{Label: "Conversion", Value: "+20%"}},
		Status:       status,
	}
}

// NewEnquiry returns a stored-looking enquiry fixture
func NewEnquiry(name string) models.Enquiry {
	return models.Enquiry{
		Name:    name,
		Email:   name + "@example.com",
		Subject: "Hello",
		Message: "We need a website",
		Service: "web-development",
		Status:  models.EnquiryStatusNew,
	}
}
