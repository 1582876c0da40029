package models

import "time"

// EnquiryStatus tracks an enquiry through triage
type EnquiryStatus string

const (
	EnquiryStatusNew        EnquiryStatus = "new"
	EnquiryStatusInProgress EnquiryStatus = "in-progress"
	EnquiryStatusCompleted  EnquiryStatus = "completed"
	EnquiryStatusSpam       EnquiryStatus = "spam"
)

// Valid reports whether s is a known enquiry status
func (s EnquiryStatus) Valid() bool {
	switch s {
	case EnquiryStatusNew, EnquiryStatusInProgress, EnquiryStatusCompleted, EnquiryStatusSpam:
		return true
	}
	return false
}

// Enquiry is a contact-form submission
type Enquiry struct {
	ID        string        `json:"_id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Subject   string        `json:"subject"`
	Message   string        `json:"message"`
	Service   string        `json:"service"`
	Status    EnquiryStatus `json:"status"`
	Notes     string        `json:"notes,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// GetID returns the record identifier
func (e Enquiry) GetID() string { return e.ID }

// EnquiryRequest is the public contact-form payload
type EnquiryRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Service string `json:"service"`
}

// Validate checks the submission. knownService may be nil to skip the service check.
func (r *EnquiryRequest) Validate(knownService func(string) bool) error {
	var f fieldErrors
	f.required("name", r.Name)
	f.maxLen("name", r.Name, 200)
	f.required("email", r.Email)
	f.email("email", r.Email)
	f.required("message", r.Message)
	f.maxLen("message", r.Message, 10000)
	f.maxLen("subject", r.Subject, 300)
	if r.Service != "" && knownService != nil && !knownService(r.Service) {
		f.add("service", "unknown service %q", r.Service)
	}
	return f.result()
}

// Subject falls back to a generic line when the form left it blank.
func (r *EnquiryRequest) subjectOrDefault() string {
	if r.Subject != "" {
		return r.Subject
	}
	return "Website enquiry from " + r.Name
}

// NewEnquiry builds a new-status enquiry from a validated request
func NewEnquiry(r EnquiryRequest) *Enquiry {
	return &Enquiry{
		Name:    r.Name,
		Email:   r.Email,
		Subject: r.subjectOrDefault(),
		Message: r.Message,
		Service: r.Service,
		Status:  EnquiryStatusNew,
	}
}
