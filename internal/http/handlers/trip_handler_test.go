// README: Handler tests for plan synthesis, quota metering and error mapping.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"tripsmith/internal/http/handlers"
	httpmiddleware "tripsmith/internal/http/middleware"
	"tripsmith/internal/infra"
	"tripsmith/internal/modules/quota"
	"tripsmith/internal/service"
	"tripsmith/internal/types"
	"tripsmith/internal/weather"
)

type stubTokenVerifier struct {
	token *infra.FirebaseToken
	err   error
}

func (s *stubTokenVerifier) VerifyIDToken(_ context.Context, _ string) (*infra.FirebaseToken, error) {
	return s.token, s.err
}

type stubPlanner struct {
	calls int
	err   error
}

func (s *stubPlanner) SynthesizeTrip(_ context.Context, req types.TripRequest) (*service.TripPlan, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &service.TripPlan{ID: "plan-1", Destination: req.Destination, Summary: fmt.Sprintf("%d days", req.Days)}, nil
}

type stubQuota struct {
	uids      []string
	err       error
	remaining int
}

func (s *stubQuota) Use(_ context.Context, uid string) error {
	s.uids = append(s.uids, uid)
	return s.err
}

func (s *stubQuota) Remaining(_ context.Context, _ string) (int, error) {
	return s.remaining, s.err
}

type stubWeather struct{}

func (stubWeather) GetWeather(_ context.Context, city string) weather.Snapshot {
	return weather.Snapshot{Location: city, TemperatureCelsius: 18, Condition: "clear sky", APISuccess: true}
}

// buildTestRouter wires a minimal Gin engine with the handlers under test.
// A nil verifier leaves the plan route anonymous.
func buildTestRouter(planner handlers.TripSynthesizer, q handlers.QuotaUser, verifier infra.TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if verifier != nil {
		r.Use(httpmiddleware.Auth(verifier))
	}
	h := handlers.NewTripHandler(planner, q, 0, nil)
	r.POST("/api/trips/plan", h.Plan)
	r.GET("/api/trips/quota", h.Quota)
	r.GET("/api/weather", handlers.NewWeatherHandler(stubWeather{}).Get)
	return r
}

func doRequest(r *gin.Engine, method, path string, body interface{}, authHeader string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validBody() map[string]any {
	return map[string]any{"destination": "Paris", "days": 3, "budget": 30000, "travelers": 2}
}

func TestPlan_Anonymous(t *testing.T) {
	planner, q := &stubPlanner{}, &stubQuota{}
	r := buildTestRouter(planner, q, nil)

	w := doRequest(r, http.MethodPost, "/api/trips/plan", validBody(), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var plan service.TripPlan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))
	assert.Equal(t, "plan-1", plan.ID)
	assert.Equal(t, "3 days", plan.Summary)
	assert.Empty(t, q.uids, "anonymous callers are not metered")
}

func TestPlan_AuthenticatedCallerIsMetered(t *testing.T) {
	planner, q := &stubPlanner{}, &stubQuota{}
	verifier := &stubTokenVerifier{token: &infra.FirebaseToken{UID: "traveler-9"}}
	r := buildTestRouter(planner, q, verifier)

	w := doRequest(r, http.MethodPost, "/api/trips/plan", validBody(), "Bearer ok")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"traveler-9"}, q.uids)
	assert.Equal(t, 1, planner.calls)
}

func TestPlan_Unauthenticated(t *testing.T) {
	planner := &stubPlanner{}
	r := buildTestRouter(planner, &stubQuota{}, &stubTokenVerifier{err: errors.New("expired")})

	w := doRequest(r, http.MethodPost, "/api/trips/plan", validBody(), "Bearer expired")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, planner.calls)
}

func TestPlan_QuotaExceeded(t *testing.T) {
	planner := &stubPlanner{}
	q := &stubQuota{err: quota.ErrQuotaExceeded}
	r := buildTestRouter(planner, q, &stubTokenVerifier{token: &infra.FirebaseToken{UID: "u1"}})

	w := doRequest(r, http.MethodPost, "/api/trips/plan", validBody(), "Bearer ok")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Zero(t, planner.calls)
}

func TestPlan_RefusalLogsCaller(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)
	verifier := &stubTokenVerifier{token: &infra.FirebaseToken{UID: "u1", Email: "ada@example.com"}}
	r := gin.New()
	r.Use(httpmiddleware.Auth(verifier))
	r.POST("/api/trips/plan", handlers.NewTripHandler(&stubPlanner{}, &stubQuota{err: quota.ErrQuotaExceeded}, 0, zap.New(core)).Plan)

	w := doRequest(r, http.MethodPost, "/api/trips/plan", validBody(), "Bearer ok")
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	entries := logs.FilterMessage("plan refused").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "u1", fields["uid"])
	assert.Equal(t, "ada@example.com", fields["email"])
}

func TestPlan_BadInput(t *testing.T) {
	planner, q := &stubPlanner{}, &stubQuota{}
	r := buildTestRouter(planner, q, &stubTokenVerifier{token: &infra.FirebaseToken{UID: "u1"}})

	cases := map[string]interface{}{
		"malformed json":  `{"destination":`,
		"missing dest":    map[string]any{"days": 3, "travelers": 1},
		"zero days":       map[string]any{"destination": "Rome", "days": 0, "travelers": 1},
		"negative budget": map[string]any{"destination": "Rome", "days": 2, "travelers": 1, "budget": -5},
		"bad date":        map[string]any{"destination": "Rome", "days": 2, "travelers": 1, "travelDates": map[string]any{"startDate": "05/01/2026"}},
	}
	for name, body := range cases {
		w := doRequest(r, http.MethodPost, "/api/trips/plan", body, "Bearer ok")
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
	}
	assert.Zero(t, planner.calls)
	assert.Empty(t, q.uids, "invalid requests do not consume quota")
}

func TestPlan_ServiceErrorsMapped(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: days", types.ErrBadRequest), http.StatusBadRequest},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		r := buildTestRouter(&stubPlanner{err: tc.err}, nil, nil)
		w := doRequest(r, http.MethodPost, "/api/trips/plan", validBody(), "")
		assert.Equal(t, tc.want, w.Code, tc.err.Error())
	}
}

func TestQuota(t *testing.T) {
	verifier := &stubTokenVerifier{token: &infra.FirebaseToken{UID: "traveler-9"}}

	r := buildTestRouter(&stubPlanner{}, &stubQuota{remaining: 12}, verifier)
	w := doRequest(r, http.MethodGet, "/api/trips/quota", nil, "Bearer ok")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"uid":"traveler-9","plansRemaining":12}`, w.Body.String())

	r = buildTestRouter(&stubPlanner{}, &stubQuota{}, nil)
	w = doRequest(r, http.MethodGet, "/api/trips/quota", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code, "anonymous callers have no allowance")

	r = buildTestRouter(&stubPlanner{}, nil, verifier)
	w = doRequest(r, http.MethodGet, "/api/trips/quota", nil, "Bearer ok")
	assert.Equal(t, http.StatusNotFound, w.Code, "metering disabled")

	r = buildTestRouter(&stubPlanner{}, &stubQuota{err: errors.New("db down")}, verifier)
	w = doRequest(r, http.MethodGet, "/api/trips/quota", nil, "Bearer ok")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestWeather(t *testing.T) {
	r := buildTestRouter(&stubPlanner{}, nil, nil)

	w := doRequest(r, http.MethodGet, "/api/weather?city=Kyoto", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var snap weather.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, "Kyoto", snap.Location)

	w = doRequest(r, http.MethodGet, "/api/weather?city=%20", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
