package public

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northwind-labs/sitecms/internal/catalogue"
	"github.com/northwind-labs/sitecms/internal/models"
	"github.com/northwind-labs/sitecms/internal/services"
	"github.com/northwind-labs/sitecms/internal/testutil"
)

type fixture struct {
	handler   *Handler
	projects  *testutil.MockProjectStore
	studies   *testutil.MockCaseStudyStore
	content   *testutil.MockContentStore
	enquiries *testutil.MockEnquiryStore
	events    *testutil.MockPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		projects: testutil.NewMockProjectStore(
			testutil.NewProject("alpha"),
			func() models.Project { p := testutil.NewProject("beta"); p.Featured = true; return p }(),
		),
		studies: testutil.NewMockCaseStudyStore(
			testutil.NewCaseStudy("live", models.CaseStudyStatusPublished),
			testutil.NewCaseStudy("hidden", models.CaseStudyStatusDraft),
		),
		content:   &testutil.MockContentStore{},
		enquiries: testutil.NewMockEnquiryStore(),
		events:    &testutil.MockPublisher{},
	}
	cat := catalogue.FromServices([]catalogue.Service{{Slug: "web-development", Title: "Web Development"}})
	submitter := services.NewEnquiryService(f.enquiries, nil, cat, f.events)
	f.handler = NewHandler(f.projects, f.studies, f.content, submitter, cat, nil)
	return f
}

func TestListProjects(t *testing.T) {
	f := newFixture(t)

	rr := httptest.NewRecorder()
	f.handler.ListProjects(rr, testutil.MakeRequest(t, http.MethodGet, "/api/projects", nil))
	var all []models.Project
	testutil.AssertJSONResponse(t, rr, http.StatusOK, &all)
	require.Len(t, all, 2)
	assert.Equal(t, "alpha", all[0].Title)
	assert.Equal(t, "beta", all[1].Title)

	rr = httptest.NewRecorder()
	f.handler.ListProjects(rr, testutil.MakeRequest(t, http.MethodGet, "/api/projects?featured=true", nil))
	var featured []models.Project
	testutil.AssertJSONResponse(t, rr, http.StatusOK, &featured)
	require.Len(t, featured, 1)
	assert.Equal(t, "beta", featured[0].Title)
}

func TestListProjectsEmptyIsArray(t *testing.T) {
	f := newFixture(t)
	f.projects.Projects = nil

	rr := httptest.NewRecorder()
	f.handler.ListProjects(rr, testutil.MakeRequest(t, http.MethodGet, "/api/projects", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestGetProject(t *testing.T) {
	f := newFixture(t)
	id := f.projects.Projects[0].ID

	tests := []struct {
		name       string
		id         string
		wantStatus int
		wantError  string
	}{
		{name: "found", id: id, wantStatus: http.StatusOK},
		{name: "invalid id", id: "not-a-uuid", wantStatus: http.StatusBadRequest, wantError: "Invalid Project ID format"},
		{name: "missing", id: testutil.MissingID, wantStatus: http.StatusNotFound, wantError: "Project not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.WithVars(testutil.MakeRequest(t, http.MethodGet, "/api/projects/"+tt.id, nil), map[string]string{"id": tt.id})
			rr := httptest.NewRecorder()
			f.handler.GetProject(rr, req)
			if tt.wantError != "" {
				testutil.AssertErrorResponse(t, rr, tt.wantStatus, tt.wantError)
				return
			}
			var p models.Project
			testutil.AssertJSONResponse(t, rr, tt.wantStatus, &p)
			assert.Equal(t, id, p.ID)
		})
	}
}

func TestCaseStudiesArePublishedOnly(t *testing.T) {
	f := newFixture(t)

	rr := httptest.NewRecorder()
	f.handler.ListCaseStudies(rr, testutil.MakeRequest(t, http.MethodGet, "/api/case-studies", nil))
	var studies []models.CaseStudy
	testutil.AssertJSONResponse(t, rr, http.StatusOK, &studies)
	require.Len(t, studies, 1)
	assert.Equal(t, "live", studies[0].Title)

	draftID := f.studies.Studies[1].ID
	req := testutil.WithVars(testutil.MakeRequest(t, http.MethodGet, "/api/case-studies/"+draftID, nil), map[string]string{"id": draftID})
	rr = httptest.NewRecorder()
	f.handler.GetCaseStudy(rr, req)
	testutil.AssertErrorResponse(t, rr, http.StatusNotFound, "Case study not found")
}

func TestAboutAndContactDefaults(t *testing.T) {
	f := newFixture(t)

	rr := httptest.NewRecorder()
	f.handler.GetAbout(rr, testutil.MakeRequest(t, http.MethodGet, "/api/about", nil))
	var about models.AboutContent
	testutil.AssertJSONResponse(t, rr, http.StatusOK, &about)
	assert.Empty(t, about.Title)

	f.content.Contact = &models.ContactInfo{Hours: "9-5", MapEmbed: `<iframe src="https://maps.example.com"></iframe>`}
	rr = httptest.NewRecorder()
	f.handler.GetContact(rr, testutil.MakeRequest(t, http.MethodGet, "/api/contact", nil))
	var contact models.ContactInfo
	testutil.AssertJSONResponse(t, rr, http.StatusOK, &contact)
	assert.Equal(t, "9-5", contact.Hours)
	assert.Equal(t, models.TrustedHTML(`<iframe src="https://maps.example.com"></iframe>`), contact.MapEmbed)
}

func TestAboutStoreFailure(t *testing.T) {
	f := newFixture(t)
	f.content.Err = errors.New("connection refused")

	rr := httptest.NewRecorder()
	f.handler.GetAbout(rr, testutil.MakeRequest(t, http.MethodGet, "/api/about", nil))
	testutil.AssertErrorResponse(t, rr, http.StatusInternalServerError, "Failed to retrieve about content")
}

func TestSubmitEnquiry(t *testing.T) {
	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
	}{
		{
			name:       "valid",
			body:       models.EnquiryRequest{Name: "Ada", Email: "ada@example.com", Message: "Hi", Service: "web-development"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "unknown service",
			body:       models.EnquiryRequest{Name: "Ada", Email: "ada@example.com", Message: "Hi", Service: "gardening"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing fields",
			body:       models.EnquiryRequest{Email: "nope"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed json",
			body:       "{",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown field",
			body:       map[string]string{"name": "Ada", "phone": "123"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			rr := httptest.NewRecorder()
			f.handler.SubmitEnquiry(rr, testutil.MakeRequest(t, http.MethodPost, "/api/enquiries", tt.body))

			if tt.wantStatus != http.StatusCreated {
				testutil.AssertErrorResponse(t, rr, tt.wantStatus, "")
				assert.Empty(t, f.enquiries.Enquiries)
				return
			}
			var receipt EnquiryReceipt
			testutil.AssertJSONResponse(t, rr, tt.wantStatus, &receipt)
			require.Len(t, f.enquiries.Enquiries, 1)
			assert.Equal(t, f.enquiries.Enquiries[0].ID, receipt.ID)
			assert.Equal(t, "new", receipt.Status)
			assert.Equal(t, []string{"enquiry.created:" + receipt.ID}, f.events.Published())
		})
	}
}

func TestListServices(t *testing.T) {
	f := newFixture(t)
	rr := httptest.NewRecorder()
	f.handler.ListServices(rr, testutil.MakeRequest(t, http.MethodGet, "/api/services", nil))
	var list []catalogue.Service
	testutil.AssertJSONResponse(t, rr, http.StatusOK, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "web-development", list[0].Slug)
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	rr := httptest.NewRecorder()
	f.handler.Health(rr, testutil.MakeRequest(t, http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())

	f.handler.ping = func(context.Context) error { return errors.New("db down") }
	rr = httptest.NewRecorder()
	f.handler.Health(rr, testutil.MakeRequest(t, http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
