package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northwind-labs/sitecms/internal/models"
)

// fakeCMS is an in-memory stand-in for the admin API.
type fakeCMS struct {
	mu        sync.Mutex
	projects  []models.Project
	enquiries []models.Enquiry
	fail      map[string]int
	nextID    int
	loginBody interface{}
	calls     []string
}

func newFakeCMS() *fakeCMS {
	return &fakeCMS{fail: map[string]int{}}
}

func (f *fakeCMS) failRoute(method, path string, status int) {
	f.mu.Lock()
	f.fail[method+" "+path] = status
	f.mu.Unlock()
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeCMS) server(t *testing.T) *httptest.Server {
	r := mux.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			f.mu.Lock()
			f.calls = append(f.calls, req.Method+" "+req.URL.Path)
			status, failing := f.fail[req.Method+" "+req.URL.Path]
			f.mu.Unlock()
			if failing {
				writeJSON(w, status, map[string]string{"error": "boom"})
				return
			}
			next.ServeHTTP(w, req)
		})
	})

	r.HandleFunc("/api/admin/projects", func(w http.ResponseWriter, req *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, f.projects)
	}).Methods(http.MethodGet)
	r.HandleFunc("/api/admin/projects", func(w http.ResponseWriter, req *http.Request) {
		var p models.Project
		require.NoError(t, json.NewDecoder(req.Body).Decode(&p))
		f.mu.Lock()
		defer f.mu.Unlock()
		f.nextID++
		p.ID = "p" + string(rune('0'+f.nextID))
		f.projects = append(f.projects, p)
		writeJSON(w, http.StatusCreated, p)
	}).Methods(http.MethodPost)
	r.HandleFunc("/api/admin/projects/{id}", func(w http.ResponseWriter, req *http.Request) {
		id := mux.Vars(req)["id"]
		f.mu.Lock()
		defer f.mu.Unlock()
		for _, p := range f.projects {
			if p.ID == id {
				writeJSON(w, http.StatusOK, p)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Project not found"})
	}).Methods(http.MethodGet)
	r.HandleFunc("/api/admin/projects/{id}", func(w http.ResponseWriter, req *http.Request) {
		var p models.Project
		require.NoError(t, json.NewDecoder(req.Body).Decode(&p))
		p.ID = mux.Vars(req)["id"]
		f.mu.Lock()
		defer f.mu.Unlock()
		for i := range f.projects {
			if f.projects[i].ID == p.ID {
				f.projects[i] = p
			}
		}
		writeJSON(w, http.StatusOK, p)
	}).Methods(http.MethodPut)
	r.HandleFunc("/api/admin/projects/{id}", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodDelete)

	r.HandleFunc("/api/admin/enquiries", func(w http.ResponseWriter, req *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, f.enquiries)
	}).Methods(http.MethodGet)
	r.HandleFunc("/api/admin/enquiries/{id}", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodDelete)
	r.HandleFunc("/api/admin/enquiries/{id}/status", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Status models.EnquiryStatus `json:"status"`
		}
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		id := mux.Vars(req)["id"]
		f.mu.Lock()
		defer f.mu.Unlock()
		for i := range f.enquiries {
			if f.enquiries[i].ID == id {
				f.enquiries[i].Status = body.Status
				writeJSON(w, http.StatusOK, f.enquiries[i])
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Enquiry not found"})
	}).Methods(http.MethodPatch)

	r.HandleFunc("/api/about", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, models.AboutContent{Title: "About us"})
	}).Methods(http.MethodGet)
	r.HandleFunc("/api/admin/about", func(w http.ResponseWriter, req *http.Request) {
		var about models.AboutContent
		require.NoError(t, json.NewDecoder(req.Body).Decode(&about))
		writeJSON(w, http.StatusOK, about)
	}).Methods(http.MethodPut)

	r.HandleFunc("/api/auth/login", func(w http.ResponseWriter, req *http.Request) {
		var creds Credentials
		require.NoError(t, json.NewDecoder(req.Body).Decode(&creds))
		if creds.Password != "correct" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
			return
		}
		f.mu.Lock()
		body := f.loginBody
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, body)
	}).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/me", func(w http.ResponseWriter, req *http.Request) {
		if req.Header.Get("Authorization") != "Bearer abc" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			return
		}
		writeJSON(w, http.StatusOK, models.AuthResponse{User: models.User{ID: "u1", Email: "admin@example.com", Role: "admin"}, Token: "abc"})
	}).Methods(http.MethodGet)
	r.HandleFunc("/api/auth/logout", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
	}).Methods(http.MethodPost)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestCollectionFetchAll(t *testing.T) {
	cms := newFakeCMS()
	cms.projects = []models.Project{{ID: "a", Title: "Alpha"}, {ID: "b", Title: "Beta"}, {ID: "c", Title: "Gamma"}}
	srv := cms.server(t)

	store := NewProjectStore(NewAPI(srv.URL))
	ctx := context.Background()

	require.NoError(t, store.FetchAll(ctx))
	assert.Equal(t, []string{"a", "b", "c"}, store.IDs())
	assert.False(t, store.Loading())
	assert.Empty(t, store.Err())

	require.NoError(t, store.FetchAll(ctx))
	assert.Equal(t, cms.projects, store.Items())
}

func TestCollectionFetchAllFailureKeepsData(t *testing.T) {
	cms := newFakeCMS()
	cms.projects = []models.Project{{ID: "a"}}
	srv := cms.server(t)

	toasts := &ToastLog{}
	store := NewProjectStore(NewAPI(srv.URL), WithNotifier(toasts))
	require.NoError(t, store.FetchAll(context.Background()))

	cms.failRoute(http.MethodGet, "/api/admin/projects", http.StatusInternalServerError)
	err := store.FetchAll(context.Background())
	require.Error(t, err)

	var re *RequestError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "Failed to fetch projects", re.Message)
	assert.Equal(t, http.StatusInternalServerError, re.Status)
	assert.Equal(t, "Failed to fetch projects: boom", store.Err())
	assert.Equal(t, []string{"a"}, store.IDs())
	assert.False(t, store.Loading())

	got := toasts.Toasts()
	require.Len(t, got, 1)
	assert.Equal(t, "Error", got[0].Title)
	assert.Equal(t, VariantDestructive, got[0].Variant)
}

func TestCollectionCreateAppends(t *testing.T) {
	cms := newFakeCMS()
	cms.projects = []models.Project{{ID: "a"}}
	srv := cms.server(t)

	store := NewProjectStore(NewAPI(srv.URL))
	ctx := context.Background()
	require.NoError(t, store.FetchAll(ctx))

	created, err := store.Create(ctx, models.Project{Title: "New"})
	require.NoError(t, err)
	assert.Equal(t, "p1", created.ID)
	assert.Equal(t, []string{"a", "p1"}, store.IDs())
	assert.Equal(t, "New", store.Items()[1].Title)
}

func TestCollectionUpdateReplacesOnlyTarget(t *testing.T) {
	cms := newFakeCMS()
	cms.projects = []models.Project{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}, {ID: "c", Title: "C"}}
	srv := cms.server(t)

	store := NewProjectStore(NewAPI(srv.URL))
	ctx := context.Background()
	require.NoError(t, store.FetchAll(ctx))

	t.Run("by id", func(t *testing.T) {
		_, err := store.Update(ctx, "b", models.Project{Title: "B2"}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B2", "C"}, titles(store.Items()))
	})

	t.Run("stale hint falls back to id", func(t *testing.T) {
		hint := 0
		_, err := store.Update(ctx, "c", models.Project{Title: "C2"}, &hint)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B2", "C2"}, titles(store.Items()))
	})

	t.Run("unknown id never appends", func(t *testing.T) {
		_, err := store.Update(ctx, "zzz", models.Project{Title: "Z"}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, store.IDs())
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := store.Update(ctx, "", models.Project{}, nil)
		assert.ErrorIs(t, err, ErrMissingID)
		assert.Equal(t, "Failed to update project", store.Err())
	})
}

func waitFor[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for request")
	}
	var zero T
	return zero
}

func TestCollectionInFlightAndOverlappingWrites(t *testing.T) {
	entered := make(chan string, 3)
	release := map[string]chan struct{}{
		"list":   make(chan struct{}),
		"first":  make(chan struct{}),
		"second": make(chan struct{}),
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/admin/projects", func(w http.ResponseWriter, req *http.Request) {
		entered <- "list"
		<-release["list"]
		writeJSON(w, http.StatusOK, []models.Project{{ID: "a", Title: "A"}})
	}).Methods(http.MethodGet)
	r.HandleFunc("/api/admin/projects/{id}", func(w http.ResponseWriter, req *http.Request) {
		var p models.Project
		_ = json.NewDecoder(req.Body).Decode(&p)
		entered <- p.Title
		<-release[p.Title]
		p.ID = mux.Vars(req)["id"]
		writeJSON(w, http.StatusOK, p)
	}).Methods(http.MethodPut)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	store := NewProjectStore(NewAPI(srv.URL))
	ctx := context.Background()

	fetched := make(chan error, 1)
	go func() { fetched <- store.FetchAll(ctx) }()
	assert.Equal(t, "list", waitFor(t, entered))
	assert.True(t, store.Loading(), "loading while the list request is in flight")
	close(release["list"])
	require.NoError(t, waitFor(t, fetched))
	assert.False(t, store.Loading())
	assert.Equal(t, []string{"a"}, store.IDs())

	update := func(title string) <-chan error {
		done := make(chan error, 1)
		go func() {
			_, err := store.Update(ctx, "a", models.Project{Title: title}, nil)
			done <- err
		}()
		return done
	}

	firstDone := update("first")
	assert.Equal(t, "first", waitFor(t, entered))
	secondDone := update("second")
	assert.Equal(t, "second", waitFor(t, entered), "writes are not serialised")
	assert.True(t, store.Loading())
	assert.Equal(t, []string{"A"}, titles(store.Items()))

	close(release["second"])
	require.NoError(t, waitFor(t, secondDone))
	assert.Equal(t, []string{"second"}, titles(store.Items()))

	close(release["first"])
	require.NoError(t, waitFor(t, firstDone))
	assert.Equal(t, []string{"first"}, titles(store.Items()), "the last response applied wins")
	assert.False(t, store.Loading())
	assert.Empty(t, store.Err())
}

func titles(items []models.Project) []string {
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = p.Title
	}
	return out
}

func TestCollectionFetchOne(t *testing.T) {
	cms := newFakeCMS()
	cms.projects = []models.Project{{ID: "a", Title: "Alpha"}}
	srv := cms.server(t)

	store := NewProjectStore(NewAPI(srv.URL))
	p, err := store.FetchOne(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", p.Title)
	selected, ok := store.Selected()
	require.True(t, ok)
	assert.Equal(t, "a", selected.ID)

	_, err = store.FetchOne(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch project: Project not found", store.Err())
}

func TestEnquiryRemove(t *testing.T) {
	newStore := func(t *testing.T) (*fakeCMS, *EnquiryStore, *ToastLog) {
		cms := newFakeCMS()
		cms.enquiries = []models.Enquiry{{ID: "e1"}, {ID: "e2"}, {ID: "e3"}}
		srv := cms.server(t)
		toasts := &ToastLog{}
		store := NewEnquiryStore(NewAPI(srv.URL), WithNotifier(toasts))
		require.NoError(t, store.FetchAll(context.Background()))
		return cms, store, toasts
	}

	t.Run("success filters the record", func(t *testing.T) {
		_, store, toasts := newStore(t)
		require.NoError(t, store.Remove(context.Background(), "e1"))
		assert.Equal(t, []string{"e2", "e3"}, store.IDs())
		assert.Empty(t, toasts.Toasts())
	})

	t.Run("failure leaves the list unchanged", func(t *testing.T) {
		cms, store, toasts := newStore(t)
		cms.failRoute(http.MethodDelete, "/api/admin/enquiries/e1", http.StatusInternalServerError)
		err := store.Remove(context.Background(), "e1")
		require.Error(t, err)
		assert.Equal(t, []string{"e1", "e2", "e3"}, store.IDs())
		assert.Equal(t, "Failed to delete enquiry: boom", store.Err())
		assert.Len(t, toasts.Toasts(), 1)
	})
}

func TestEnquiryUpdateStatus(t *testing.T) {
	cms := newFakeCMS()
	cms.enquiries = []models.Enquiry{{ID: "e1", Status: models.EnquiryStatusNew}, {ID: "e2", Status: models.EnquiryStatusNew}}
	srv := cms.server(t)

	store := NewEnquiryStore(NewAPI(srv.URL))
	ctx := context.Background()
	require.NoError(t, store.FetchAll(ctx))

	_, err := store.UpdateStatus(ctx, "e2", models.EnquiryStatusCompleted)
	require.NoError(t, err)
	items := store.Items()
	assert.Equal(t, models.EnquiryStatusNew, items[0].Status)
	assert.Equal(t, models.EnquiryStatusCompleted, items[1].Status)

	_, err = store.UpdateStatus(ctx, "e9", models.EnquiryStatusSpam)
	require.Error(t, err)
	assert.Equal(t, "Failed to update enquiry status: Enquiry not found", store.Err())
}

func TestDocument(t *testing.T) {
	srv := newFakeCMS().server(t)
	api := NewAPI(srv.URL)
	ctx := context.Background()

	about := NewAboutStore(api)
	_, ok := about.Data()
	assert.False(t, ok)

	got, err := about.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, "About us", got.Title)

	updated, err := about.Update(ctx, models.AboutContent{Title: "Who we are"})
	require.NoError(t, err)
	assert.Equal(t, "Who we are", updated.Title)
	cached, _ := about.Data()
	assert.Equal(t, "Who we are", cached.Title)

	toasts := &ToastLog{}
	dashboard := NewDashboardStore(api, WithNotifier(toasts))
	_, err = dashboard.Update(ctx, models.DashboardStats{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReadOnly)
	var re *RequestError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "Failed to update dashboard stats", re.Error())
	assert.Equal(t, "Failed to update dashboard stats", dashboard.Err())
	assert.False(t, dashboard.Loading())
	gotToasts := toasts.Toasts()
	require.Len(t, gotToasts, 1)
	assert.Equal(t, VariantDestructive, gotToasts[0].Variant)
	assert.Equal(t, "Failed to update dashboard stats", gotToasts[0].Description)
}

func TestGuard(t *testing.T) {
	tests := []struct {
		name     string
		prepare  func(*Session)
		path     string
		redirect bool
	}{
		{name: "loading never redirects", prepare: func(*Session) {}, path: "/admin/projects", redirect: false},
		{name: "unauthenticated redirects", prepare: func(s *Session) { s.Logout() }, path: "/admin/projects", redirect: true},
		{name: "login route is exempt", prepare: func(s *Session) { s.Logout() }, path: LoginRoute, redirect: false},
		{name: "authenticated passes", prepare: func(s *Session) { s.Login(models.User{ID: "u1"}, "abc") }, path: "/admin/dashboard", redirect: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := NewSession()
			tt.prepare(session)
			var visited []string
			guard := NewGuard(session, NavigatorFunc(func(p string) { visited = append(visited, p) }))

			assert.Equal(t, tt.redirect, guard.Check(tt.path))
			if tt.redirect {
				assert.Equal(t, []string{LoginRoute}, visited)
			} else {
				assert.Empty(t, visited)
			}
		})
	}
}

func TestLoginFlow(t *testing.T) {
	t.Run("wrong password", func(t *testing.T) {
		srv := newFakeCMS().server(t)
		session := NewSession()
		toasts := &ToastLog{}
		var visited []string
		flow := NewLoginFlow(NewAPI(srv.URL), session, toasts, NavigatorFunc(func(p string) { visited = append(visited, p) }))

		err := flow.Submit(context.Background(), Credentials{Email: "admin@example.com", Password: "wrong"})
		require.Error(t, err)
		assert.Empty(t, visited)
		assert.Equal(t, StateUnauthenticated, session.State())

		got := toasts.Toasts()
		require.Len(t, got, 1)
		assert.Equal(t, "Login failed", got[0].Title)
		assert.Equal(t, "Invalid credentials", got[0].Description)
		assert.Equal(t, VariantDestructive, got[0].Variant)
	})

	bodies := map[string]interface{}{
		"direct": map[string]interface{}{
			"user":  map[string]interface{}{"_id": "u1", "name": "Admin", "email": "admin@example.com", "role": "admin"},
			"token": "abc",
		},
		"session wrapped": map[string]interface{}{
			"session": map[string]interface{}{
				"user":        map[string]interface{}{"_id": "u1", "name": "Admin", "email": "admin@example.com", "role": "admin"},
				"accessToken": "abc",
			},
		},
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			cms := newFakeCMS()
			cms.loginBody = body
			srv := cms.server(t)
			api := NewAPI(srv.URL)
			session := NewSession()
			toasts := &ToastLog{}
			var visited []string
			flow := NewLoginFlow(api, session, toasts, NavigatorFunc(func(p string) { visited = append(visited, p) }))

			require.NoError(t, flow.Submit(context.Background(), Credentials{Email: "admin@example.com", Password: "correct"}))
			assert.True(t, session.Authenticated())
			assert.Equal(t, "abc", session.Token())
			assert.Equal(t, "u1", session.User().ID)
			assert.Equal(t, "abc", api.Token())
			assert.Equal(t, []string{DashboardRoute}, visited)

			got := toasts.Toasts()
			require.Len(t, got, 1)
			assert.Equal(t, "Login successful", got[0].Title)
			assert.Equal(t, VariantDefault, got[0].Variant)
		})
	}
}

func TestSessionCheck(t *testing.T) {
	srv := newFakeCMS().server(t)

	t.Run("no token", func(t *testing.T) {
		session := NewSession()
		err := session.Check(context.Background(), NewAPI(srv.URL))
		require.Error(t, err)
		assert.Equal(t, StateUnauthenticated, session.State())
		assert.Equal(t, "Not authenticated", session.Err())
	})

	t.Run("valid token", func(t *testing.T) {
		session := NewSession()
		require.NoError(t, session.Check(context.Background(), NewAPI(srv.URL, WithToken("abc"))))
		assert.True(t, session.Authenticated())
		assert.Equal(t, "admin@example.com", session.User().Email)
	})

	t.Run("unreachable server", func(t *testing.T) {
		session := NewSession()
		err := session.Check(context.Background(), NewAPI("http://127.0.0.1:1"))
		require.Error(t, err)
		assert.Equal(t, "Authentication check failed", session.Err())
	})
}

func TestSessionPersistence(t *testing.T) {
	srv := newFakeCMS().server(t)
	api := NewAPI(srv.URL)
	session := NewSession()
	session.Login(models.User{ID: "u1", Email: "admin@example.com"}, "abc")

	data, err := MarshalSession(session)
	require.NoError(t, err)

	restored := NewSession()
	require.NoError(t, RestoreSession(data, restored, api))
	assert.True(t, restored.Authenticated())
	assert.Equal(t, "abc", api.Token())

	require.NoError(t, restored.SignOut(context.Background(), api))
	assert.Equal(t, StateUnauthenticated, restored.State())
	assert.Empty(t, api.Token())
}

func TestBaseURLFromEnv(t *testing.T) {
	t.Setenv("API_URL", "")
	t.Setenv("NEXT_PUBLIC_API_URL", "")
	assert.Equal(t, DefaultBaseURL, BaseURLFromEnv())

	t.Setenv("NEXT_PUBLIC_API_URL", "http://public:9000")
	assert.Equal(t, "http://public:9000", BaseURLFromEnv())

	t.Setenv("API_URL", "http://api:8000")
	assert.Equal(t, "http://api:8000", BaseURLFromEnv())
}
