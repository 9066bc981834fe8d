package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-booking/internal/audit"
	domain "github.com/BruksfildServices01/clinic-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-booking/internal/dto"
	"github.com/BruksfildServices01/clinic-booking/internal/httperr"
	infraRepo "github.com/BruksfildServices01/clinic-booking/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-booking/internal/models"
)

const (
	base   = "/api/v1/appointments"
	doctor = "Dr. John Smith"
)

type testServer struct {
	router *gin.Engine
	repo   *infraRepo.AppointmentMemoryRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zap.NewNop()
	dispatcher := audit.NewDispatcher(audit.NewLogSink(log), log)
	t.Cleanup(dispatcher.Close)

	repo := infraRepo.NewAppointmentMemoryRepository()
	r := gin.New()
	RegisterRoutes(r, Deps{
		Repo:   repo,
		Roster: domain.DefaultRoster(),
		Audit:  dispatcher,
		Logger: log,
	})

	return &testServer{router: r, repo: repo}
}

func (s *testServer) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func bookBody(first, email, slot string) map[string]string {
	return map[string]string{
		"firstName":  first,
		"lastName":   "Doe",
		"email":      email,
		"timeSlot":   slot,
		"doctorName": doctor,
	}
}

func query(path string, params map[string]string) string {
	v := url.Values{}
	for k, val := range params {
		v.Set(k, val)
	}
	return path + "?" + v.Encode()
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) httperr.HTTPError {
	t.Helper()
	var body httperr.HTTPError
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestBookAppointment(t *testing.T) {
	t.Run("books successfully", func(t *testing.T) {
		s := newTestServer(t)

		rr := s.do(t, http.MethodPost, base+"/book", bookBody("John", "john@example.com", "10:00 AM - 11:00 AM"))
		require.Equal(t, http.StatusCreated, rr.Code)

		var body dto.AppointmentResultDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "Appointment booked", body.Message)
		assert.Equal(t, models.Appointment{
			FirstName:  "John",
			LastName:   "Doe",
			Email:      "john@example.com",
			TimeSlot:   "10:00 AM - 11:00 AM",
			DoctorName: doctor,
		}, body.Appointment)
		assert.NotContains(t, rr.Body.String(), `"id"`)
	})

	t.Run("missing fields", func(t *testing.T) {
		s := newTestServer(t)

		rr := s.do(t, http.MethodPost, base+"/book", map[string]string{"email": "john@example.com"})
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Missing fields: firstName, lastName, timeSlot, doctorName", decodeError(t, rr).Message)
	})

	t.Run("empty body", func(t *testing.T) {
		s := newTestServer(t)

		rr := s.do(t, http.MethodPost, base+"/book", nil)
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "missing_fields", decodeError(t, rr).Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		s := newTestServer(t)

		rr := s.do(t, http.MethodPost, base+"/book", `{"firstName":`)
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "invalid_request", decodeError(t, rr).Code)
	})

	t.Run("unknown doctor", func(t *testing.T) {
		s := newTestServer(t)
		body := bookBody("John", "john@example.com", "10-11")
		body["doctorName"] = "Dr. Who"

		rr := s.do(t, http.MethodPost, base+"/book", body)
		require.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "Doctor not found", decodeError(t, rr).Message)
	})

	t.Run("slot already booked", func(t *testing.T) {
		s := newTestServer(t)
		s.do(t, http.MethodPost, base+"/book", bookBody("John", "john@example.com", "10:00 AM - 11:00 AM"))

		rr := s.do(t, http.MethodPost, base+"/book", bookBody("Jane", "jane@example.com", "10:00 AM - 11:00 AM"))
		require.Equal(t, http.StatusConflict, rr.Code)

		e := decodeError(t, rr)
		assert.Equal(t, "Time slot already booked", e.Message)
		assert.Equal(t, domain.CodeSlotConflict, e.Code)
	})
}

func TestViewAppointment(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		s := newTestServer(t)
		s.do(t, http.MethodPost, base+"/book", bookBody("John", "john@example.com", "10:00 AM - 11:00 AM"))

		rr := s.do(t, http.MethodGet, query(base+"/appointment", map[string]string{"email": "john@example.com"}), nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var ap models.Appointment
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ap))
		assert.Equal(t, "John", ap.FirstName)
		assert.Equal(t, "10:00 AM - 11:00 AM", ap.TimeSlot)
		assert.Equal(t, doctor, ap.DoctorName)
	})

	t.Run("not found", func(t *testing.T) {
		s := newTestServer(t)

		rr := s.do(t, http.MethodGet, query(base+"/appointment", map[string]string{"email": "nonexistent@example.com"}), nil)
		require.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "Appointment not found", decodeError(t, rr).Message)
	})

	t.Run("email missing", func(t *testing.T) {
		s := newTestServer(t)

		rr := s.do(t, http.MethodGet, base+"/appointment", nil)
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Missing query parameters: email", decodeError(t, rr).Message)
	})
}

func TestListByDoctor(t *testing.T) {
	t.Run("returns the doctor's appointments", func(t *testing.T) {
		s := newTestServer(t)
		s.do(t, http.MethodPost, base+"/book", bookBody("John", "john@example.com", "10:00 AM - 11:00 AM"))
		s.do(t, http.MethodPost, base+"/book", bookBody("Jane", "jane@example.com", "11:00 AM - 12:00 PM"))

		rr := s.do(t, http.MethodGet, base+"/"+url.PathEscape(doctor), nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var body dto.DoctorAppointmentsDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		require.Len(t, body.Appointments, 2)
		assert.Equal(t, "John", body.Appointments[0].FirstName)
		assert.Equal(t, "Jane", body.Appointments[1].FirstName)
	})

	t.Run("known doctor without appointments", func(t *testing.T) {
		s := newTestServer(t)

		rr := s.do(t, http.MethodGet, base+"/"+url.PathEscape("Dr. Sarah Davis"), nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"appointments":[]}`, rr.Body.String())
	})

	t.Run("unknown doctor", func(t *testing.T) {
		s := newTestServer(t)

		rr := s.do(t, http.MethodGet, base+"/test", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestCancelAppointment(t *testing.T) {
	t.Run("cancels", func(t *testing.T) {
		s := newTestServer(t)
		s.do(t, http.MethodPost, base+"/book", bookBody("John", "john@example.com", "10:00 AM - 11:00 AM"))

		rr := s.do(t, http.MethodDelete, query(base+"/cancel", map[string]string{
			"email":    "john@example.com",
			"timeSlot": "10:00 AM - 11:00 AM",
		}), nil)
		require.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, rr.Body.String())

		all, err := s.repo.ListAppointments(context.Background())
		require.NoError(t, err)
		assert.Empty(t, all)

		rr = s.do(t, http.MethodGet, query(base+"/appointment", map[string]string{"email": "john@example.com"}), nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("no match", func(t *testing.T) {
		s := newTestServer(t)

		rr := s.do(t, http.MethodDelete, query(base+"/cancel", map[string]string{
			"email":    "nonexistent@example.com",
			"timeSlot": "10:00 AM - 11:00 AM",
		}), nil)
		require.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "Appointment not found", decodeError(t, rr).Message)
	})

	t.Run("time slot missing", func(t *testing.T) {
		s := newTestServer(t)

		rr := s.do(t, http.MethodDelete, query(base+"/cancel", map[string]string{"email": "john@example.com"}), nil)
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Missing query parameters: timeSlot", decodeError(t, rr).Message)
	})
}

func TestModifyAppointment(t *testing.T) {
	t.Run("modifies", func(t *testing.T) {
		s := newTestServer(t)
		s.do(t, http.MethodPost, base+"/book", bookBody("John", "john@example.com", "10:00 AM - 11:00 AM"))

		rr := s.do(t, http.MethodPatch, base+"/modify", map[string]string{
			"email":            "john@example.com",
			"originalTimeSlot": "10:00 AM - 11:00 AM",
			"newTimeSlot":      "09:00 AM - 10:00 AM",
		})
		require.Equal(t, http.StatusOK, rr.Code)

		var body dto.AppointmentResultDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "Appointment updated", body.Message)
		assert.Equal(t, "09:00 AM - 10:00 AM", body.Appointment.TimeSlot)
		assert.Equal(t, "John", body.Appointment.FirstName)
	})

	t.Run("original not found", func(t *testing.T) {
		s := newTestServer(t)

		rr := s.do(t, http.MethodPatch, base+"/modify", map[string]string{
			"email":            "nonexistent@example.com",
			"originalTimeSlot": "10:00 AM - 11:00 AM",
			"newTimeSlot":      "11:00 AM - 12:00 PM",
		})
		require.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "Original appointment not found", decodeError(t, rr).Message)
	})

	t.Run("new slot taken", func(t *testing.T) {
		s := newTestServer(t)
		s.do(t, http.MethodPost, base+"/book", bookBody("John", "john@example.com", "10:00 AM - 11:00 AM"))
		s.do(t, http.MethodPost, base+"/book", bookBody("Jane", "jane@example.com", "11:00 AM - 12:00 PM"))

		rr := s.do(t, http.MethodPatch, base+"/modify", map[string]string{
			"email":            "john@example.com",
			"originalTimeSlot": "10:00 AM - 11:00 AM",
			"newTimeSlot":      "11:00 AM - 12:00 PM",
		})
		require.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, "New time slot already booked", decodeError(t, rr).Message)
	})

	t.Run("missing fields", func(t *testing.T) {
		s := newTestServer(t)

		rr := s.do(t, http.MethodPatch, base+"/modify", map[string]string{"email": "john@example.com"})
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Missing fields: originalTimeSlot, newTimeSlot", decodeError(t, rr).Message)
	})
}
