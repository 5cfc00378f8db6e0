package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smartewaste/ewaste-backend/internal/services"
)

// Unparseable bodies must fail with the {"error": msg} envelope before any
// service is reached.
func TestHandlersRejectInvalidJSON(t *testing.T) {
	ah := NewAuthHandler(&services.UserService{})
	rh := NewRequestHandler(&services.RequestService{})
	adh := NewAdminHandler(&services.UserService{}, nil, nil)

	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"register", ah.Register},
		{"login", ah.Login},
		{"forgot password", ah.ForgotPassword},
		{"patch profile", ah.PatchProfile},
		{"create request", rh.Create},
		{"patch request", rh.Patch},
		{"assign", rh.Assign},
		{"update status", rh.UpdateStatus},
		{"register collector", adh.RegisterCollector},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))
			rec := httptest.NewRecorder()
			tc.handler(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"error":"Invalid JSON payload"}`, rec.Body.String())
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		})
	}
}
