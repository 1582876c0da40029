package client

import (
	"context"

	"github.com/northwind-labs/sitecms/internal/models"
)

// ProjectStore is the admin project collection
type ProjectStore struct {
	*Collection[models.Project]
}

// NewProjectStore creates the admin project store
func NewProjectStore(api *API, opts ...StoreOption) *ProjectStore {
	return &ProjectStore{NewCollection[models.Project](api, Endpoints{
		List:  "/api/admin/projects",
		One:   "/api/admin/projects",
		Write: "/api/admin/projects",
	}, Names{Singular: "project", Plural: "projects"}, opts...)}
}

// CaseStudyStore is the admin case study collection
type CaseStudyStore struct {
	*Collection[models.CaseStudy]
}

// NewCaseStudyStore creates the admin case study store. Detail reads go through the
// admin endpoint so drafts can be opened.
func NewCaseStudyStore(api *API, opts ...StoreOption) *CaseStudyStore {
	return &CaseStudyStore{NewCollection[models.CaseStudy](api, Endpoints{
		List:  "/api/admin/case-studies",
		One:   "/api/admin/case-studies",
		Write: "/api/admin/case-studies",
	}, Names{Singular: "case study", Plural: "case studies"}, opts...)}
}

// EnquiryStore is the admin enquiry collection
type EnquiryStore struct {
	*Collection[models.Enquiry]
}

// NewEnquiryStore creates the admin enquiry store
func NewEnquiryStore(api *API, opts ...StoreOption) *EnquiryStore {
	return &EnquiryStore{NewCollection[models.Enquiry](api, Endpoints{
		List:  "/api/admin/enquiries",
		One:   "/api/admin/enquiries",
		Write: "/api/admin/enquiries",
	}, Names{Singular: "enquiry", Plural: "enquiries"}, opts...)}
}

// UpdateStatus moves an enquiry to status
func (s *EnquiryStore) UpdateStatus(ctx context.Context, id string, status models.EnquiryStatus) (models.Enquiry, error) {
	return s.Patch(ctx, id, "status", map[string]models.EnquiryStatus{"status": status}, "Failed to update enquiry status")
}

// UpdateNotes replaces an enquiry's internal notes
func (s *EnquiryStore) UpdateNotes(ctx context.Context, id, notes string) (models.Enquiry, error) {
	return s.Patch(ctx, id, "notes", map[string]string{"notes": notes}, "Failed to update enquiry notes")
}

// NewAboutStore creates the about page document
func NewAboutStore(api *API, opts ...StoreOption) *Document[models.AboutContent] {
	return NewDocument[models.AboutContent](api, "/api/about", "/api/admin/about", "about content", opts...)
}

// NewContactStore creates the contact information document
func NewContactStore(api *API, opts ...StoreOption) *Document[models.ContactInfo] {
	return NewDocument[models.ContactInfo](api, "/api/contact", "/api/admin/contact", "contact information", opts...)
}

// NewDashboardStore creates the read-only dashboard statistics document
func NewDashboardStore(api *API, opts ...StoreOption) *Document[models.DashboardStats] {
	return NewDocument[models.DashboardStats](api, "/api/admin/dashboard", "", "dashboard stats", opts...)
}
