package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"stayloop/models"
	"stayloop/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeLifecycle returns a canned booking or error from every operation.
type fakeLifecycle struct {
	booking *models.Booking
	views   []booking.BookingView
	err     error
}

func (f *fakeLifecycle) Request(context.Context, booking.RequestInput) (*models.Booking, error) {
	return f.booking, f.err
}
func (f *fakeLifecycle) Accept(context.Context, string, string, string) (*models.Booking, error) {
	return f.booking, f.err
}
func (f *fakeLifecycle) Decline(context.Context, string, string, string) (*models.Booking, error) {
	return f.booking, f.err
}
func (f *fakeLifecycle) Cancel(context.Context, string, string, string) (*models.Booking, error) {
	return f.booking, f.err
}
func (f *fakeLifecycle) Withdraw(context.Context, string, string) (*models.Booking, error) {
	return f.booking, f.err
}
func (f *fakeLifecycle) Complete(context.Context, string, time.Time) (*models.Booking, error) {
	return f.booking, f.err
}
func (f *fakeLifecycle) CompleteDueBookings(context.Context, time.Time) ([]models.Booking, error) {
	return nil, f.err
}
func (f *fakeLifecycle) AssignCheckinCode(context.Context, string, string) (*models.Booking, error) {
	return f.booking, f.err
}
func (f *fakeLifecycle) GetBooking(context.Context, string) (*models.Booking, error) {
	return f.booking, f.err
}
func (f *fakeLifecycle) ListForActor(context.Context, string, string) ([]booking.BookingView, error) {
	return f.views, f.err
}

func newTestRouter(lifecycle booking.LifecycleService, actorID, role string) *gin.Engine {
	h := NewBookingHandler(lifecycle, zap.NewNop())
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("actorID", actorID)
		c.Set("actorRole", role)
	})
	r.POST("/bookings", h.RequestBooking)
	r.POST("/bookings/:id/accept", h.AcceptBooking)
	r.POST("/bookings/:id/cancel", h.CancelBooking)
	r.GET("/bookings/:id", h.GetBooking)
	r.GET("/bookings", h.ListBookings)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const validRequestBody = `{
	"property_id": "prop-42",
	"checkin_date": "2025-03-01",
	"checkout_date": "2025-03-05",
	"guest_count": 2,
	"price": {"price_nights": 400, "cleaning_fee": 50, "service_fee": 30, "taxes": 20, "total_amount": 500, "currency": "USD"}
}`

func TestRequestBooking_Created(t *testing.T) {
	b := &models.Booking{ID: "b-1", Status: models.StatusPending, TenantID: "tenant-1"}
	r := newTestRouter(&fakeLifecycle{booking: b}, "tenant-1", models.RoleTenant)

	w := doJSON(t, r, http.MethodPost, "/bookings", validRequestBody)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", w.Code, w.Body.String())
	}
	var got models.Booking
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("response is not a booking: %v", err)
	}
	if got.ID != "b-1" {
		t.Errorf("returned booking id = %q, want b-1", got.ID)
	}
}

func TestRequestBooking_MalformedDate(t *testing.T) {
	r := newTestRouter(&fakeLifecycle{}, "tenant-1", models.RoleTenant)

	body := strings.Replace(validRequestBody, "2025-03-01", "March 1st", 1)
	w := doJSON(t, r, http.MethodPost, "/bookings", body)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestErrorTaxonomyToStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid range", booking.NewInvalidRangeError("checkout before checkin"), http.StatusBadRequest},
		{"forbidden", booking.NewForbiddenError("not the host"), http.StatusForbidden},
		{"not found", booking.NewNotFoundError("no such booking"), http.StatusNotFound},
		{"invalid transition", booking.NewInvalidTransitionError("already declined"), http.StatusConflict},
		{"conflict", booking.NewConflictError("modified concurrently"), http.StatusConflict},
		{"range unavailable", booking.NewRangeUnavailableError("dates taken"), http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&fakeLifecycle{err: tt.err}, "host-1", models.RoleHost)

			w := doJSON(t, r, http.MethodPost, "/bookings/b-1/accept", `{"note":""}`)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d; body %s", w.Code, tt.want, w.Body.String())
			}

			var resp struct {
				Message string `json:"message"`
				Code    string `json:"code"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("bad error body: %v", err)
			}
			if resp.Code == "" || resp.Message == "" {
				t.Errorf("error body missing code or message: %s", w.Body.String())
			}
		})
	}
}

func TestGetBooking_NonPartyForbidden(t *testing.T) {
	b := &models.Booking{ID: "b-1", TenantID: "tenant-1", HostID: "host-1"}
	r := newTestRouter(&fakeLifecycle{booking: b}, "tenant-999", models.RoleTenant)

	w := doJSON(t, r, http.MethodGet, "/bookings/b-1", "")
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestGetBooking_PartyAllowed(t *testing.T) {
	b := &models.Booking{ID: "b-1", TenantID: "tenant-1", HostID: "host-1"}

	for _, actor := range []string{"tenant-1", "host-1"} {
		r := newTestRouter(&fakeLifecycle{booking: b}, actor, models.RoleTenant)
		w := doJSON(t, r, http.MethodGet, "/bookings/b-1", "")
		if w.Code != http.StatusOK {
			t.Errorf("actor %s: status = %d, want 200", actor, w.Code)
		}
	}
}

func TestListBookings_ReturnsViews(t *testing.T) {
	views := []booking.BookingView{
		{Booking: models.Booking{ID: "b-1", Status: models.StatusPending}, DisplayStatus: booking.DisplayPending},
	}
	r := newTestRouter(&fakeLifecycle{views: views}, "tenant-1", models.RoleTenant)

	w := doJSON(t, r, http.MethodGet, "/bookings", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp struct {
		Bookings []booking.BookingView `json:"bookings"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(resp.Bookings) != 1 || resp.Bookings[0].DisplayStatus != booking.DisplayPending {
		t.Errorf("views not round-tripped: %s", w.Body.String())
	}
}
