package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/postclinics/clinic-dashboard/internal/appointment"
	"github.com/postclinics/clinic-dashboard/internal/calendar"
	"github.com/postclinics/clinic-dashboard/internal/form"
	"github.com/postclinics/clinic-dashboard/internal/gateway"
	"github.com/postclinics/clinic-dashboard/internal/session"
	"github.com/postclinics/clinic-dashboard/internal/store"
	"github.com/postclinics/clinic-dashboard/internal/toast"
)

// fakeAPI is an in-memory stand-in for the remote clinic gateway.
type fakeAPI struct {
	mu           sync.Mutex
	nextID       int
	appointments []appointment.Appointment

	// forceStatus, when non-zero, fails every request with that code.
	forceStatus int
}

func (f *fakeAPI) add(apt appointment.Appointment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appointments = append(f.appointments, apt)
}

func (f *fakeAPI) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.appointments)
}

func (f *fakeAPI) fail(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.forceStatus = status
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.forceStatus != 0 {
		http.Error(w, "forced failure", f.forceStatus)
		return
	}
	if r.Header.Get("Authorization") != "Bearer tok_ok" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/appointments":
		_ = json.NewEncoder(w).Encode(map[string]any{"appointments": f.appointments})
	case r.Method == http.MethodPost && r.URL.Path == "/api/appointments":
		var draft appointment.Draft
		_ = json.NewDecoder(r.Body).Decode(&draft)
		f.nextID++
		apt := appointment.Appointment{
			ID:           fmt.Sprintf("apt_%d", f.nextID),
			PatientName:  draft.PatientName,
			PatientPhone: draft.PatientPhone,
			DateTime:     draft.DateTime,
			Service:      draft.Service,
			Professional: draft.Professional,
			Status:       appointment.StatusPending,
		}
		f.appointments = append(f.appointments, apt)
		_ = json.NewEncoder(w).Encode(apt)
	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/api/appointments/"):
		id := strings.TrimPrefix(r.URL.Path, "/api/appointments/")
		var draft appointment.Draft
		_ = json.NewDecoder(r.Body).Decode(&draft)
		for i := range f.appointments {
			if f.appointments[i].ID == id {
				f.appointments[i].PatientName = draft.PatientName
				f.appointments[i].PatientPhone = draft.PatientPhone
				f.appointments[i].DateTime = draft.DateTime
				f.appointments[i].Service = draft.Service
				f.appointments[i].Professional = draft.Professional
				_ = json.NewEncoder(w).Encode(f.appointments[i])
				return
			}
		}
		http.NotFound(w, r)
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/api/appointments/"):
		id := strings.TrimPrefix(r.URL.Path, "/api/appointments/")
		for i := range f.appointments {
			if f.appointments[i].ID == id {
				f.appointments = append(f.appointments[:i], f.appointments[i+1:]...)
				_ = json.NewEncoder(w).Encode(map[string]string{"status": "deleted"})
				return
			}
		}
		http.NotFound(w, r)
	default:
		http.NotFound(w, r)
	}
}

type env struct {
	api        *fakeAPI
	ts         *httptest.Server
	tokens     *session.MemoryStore
	guard      *session.Guard
	store      *store.Store
	toasts     *toast.Center
	controller *form.Controller
	view       *ViewHandler
	form       *FormHandler
}

func newEnv(t *testing.T) *env {
	t.Helper()

	api := &fakeAPI{}
	ts := httptest.NewServer(api)
	t.Cleanup(ts.Close)

	tokens := session.NewMemoryStore()
	require.NoError(t, tokens.Set("tok_ok"))
	guard := session.NewGuard(tokens, nil, nil)

	client := gateway.NewClient(ts.URL, guard, nil, nil)
	st := store.New(client, guard, nil)
	toasts := toast.NewCenter(time.Minute)
	controller := form.NewController(client, st, toasts, nil)
	adapter := calendar.NewAdapter(calendar.ClinicColorPolicy)

	return &env{
		api:        api,
		ts:         ts,
		tokens:     tokens,
		guard:      guard,
		store:      st,
		toasts:     toasts,
		controller: controller,
		view:       NewViewHandler(st, adapter, toasts, guard, nil),
		form:       NewFormHandler(controller, guard, nil),
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}

// chiWithDismiss mounts the URL-parameterised routes so chi.URLParam
// resolves in handler tests.
func chiWithDismiss(e *env) http.Handler {
	r := chi.NewRouter()
	r.Delete("/api/view/toasts/{id}", e.view.DismissToast)
	r.Delete("/api/appointments/{id}", e.form.Delete)
	return r
}
