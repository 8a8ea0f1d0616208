package get_area_bookings

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoworkingService/internal/api/middleware"
	"github.com/m04kA/SMC-CoworkingService/internal/service/bookings"
	"github.com/m04kA/SMC-CoworkingService/internal/service/bookings/models"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetAreaBookings(ctx context.Context, req *models.GetAreaBookingsRequest) (*models.BookingListResponse, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*models.BookingListResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(t *testing.T, svc *mockService, target string, userID int64) *httptest.ResponseRecorder {
	t.Helper()

	r := mux.NewRouter()
	r.HandleFunc("/areas/{areaId}/bookings", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_PendingQueue(t *testing.T) {
	svc := &mockService{}
	svc.On("GetAreaBookings", mock.Anything, mock.MatchedBy(func(req *models.GetAreaBookingsRequest) bool {
		return req.AreaID == 3 && req.UserID == 40 && req.Status != nil && *req.Status == "pending" &&
			req.From != nil && req.From.Hour() == 6 && req.To == nil && !req.IncludeInactive
	})).Return(&models.BookingListResponse{Bookings: []models.BookingResponse{{ID: 11, AreaID: 3, Status: "pending"}}}, nil)

	rec := serve(t, svc, "/areas/3/bookings?status=pending&from=2026-05-04T09:00:00%2B03:00", 40)

	require.Equal(t, http.StatusOK, rec.Code)
	var body []models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, int64(11), body[0].ID)
	assert.Equal(t, "pending", body[0].Status)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		userID     int64
		serviceErr error
		wantStatus int
	}{
		{name: "bad area id", target: "/areas/abc/bookings", userID: 40, wantStatus: http.StatusBadRequest},
		{name: "no user", target: "/areas/3/bookings", wantStatus: http.StatusUnauthorized},
		{name: "bad from", target: "/areas/3/bookings?from=yesterday", userID: 40, wantStatus: http.StatusBadRequest},
		{name: "bad includeInactive", target: "/areas/3/bookings?includeInactive=maybe", userID: 40, wantStatus: http.StatusBadRequest},
		{name: "not a host", target: "/areas/3/bookings", userID: 7, serviceErr: bookings.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "unknown status", target: "/areas/3/bookings?status=lost", userID: 40, serviceErr: fmt.Errorf("%w: invalid status", bookings.ErrInvalidInput), wantStatus: http.StatusBadRequest},
		{name: "internal", target: "/areas/3/bookings", userID: 40, serviceErr: bookings.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			if tt.serviceErr != nil {
				svc.On("GetAreaBookings", mock.Anything, mock.Anything).Return(nil, tt.serviceErr)
			}

			rec := serve(t, svc, tt.target, tt.userID)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.serviceErr == nil {
				svc.AssertNotCalled(t, "GetAreaBookings", mock.Anything, mock.Anything)
			}
		})
	}
}
