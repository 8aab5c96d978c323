package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyzahq/fyza/internal/app"
	"github.com/fyzahq/fyza/internal/config"
	"github.com/fyzahq/fyza/internal/db/dbtest"
	"github.com/fyzahq/fyza/internal/model"
)

func setup(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		AppEnv:         "test",
		CORSOrigins:    []string{"http://localhost:3000"},
		RateLimitRPS:   100,
		RateLimitBurst: 100,
	}
	h, _ := SetupRoutes(app.NewWithDB(cfg, dbtest.New(t)))
	return h
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func detail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Detail
}

func TestHealth(t *testing.T) {
	rec := do(t, setup(t), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestGoalRoutes(t *testing.T) {
	h := setup(t)

	rec := do(t, h, http.MethodPost, "/api/profile", `{"first_name":"Asha","last_name":"Rao","age":31}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var profile model.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	require.NotZero(t, profile.ID)

	rec = do(t, h, http.MethodGet, "/api/financial-goals/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/financial-goals/",
		`{"user_id":1,"goal_name":"Emergency Fund","target_amount":500000,"target_date":"2099-12-31","priority":"High"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created model.FinancialGoal
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.GoalID)
	assert.Equal(t, "2099-12-31", created.TargetDate.String())
	assert.False(t, created.CreatedAt.IsZero())

	// the path without a trailing slash creates too
	rec = do(t, h, http.MethodPost, "/api/financial-goals",
		`{"user_id":1,"goal_name":"House","target_amount":1,"target_date":"2099-01-01","priority":"Low"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// unknown fields such as user_id in an update body are ignored
	rec = do(t, h, http.MethodPut, "/api/financial-goals/"+created.GoalID, `{"user_id":1,"priority":"Medium"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated model.FinancialGoal
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, model.PriorityMedium, updated.Priority)
	assert.Equal(t, "Emergency Fund", updated.GoalName)

	rec = do(t, h, http.MethodGet, "/api/financial-goals/1", "")
	var list []model.FinancialGoal
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, created.GoalID, list[0].GoalID)

	rec = do(t, h, http.MethodDelete, "/api/financial-goals/"+created.GoalID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = do(t, h, http.MethodDelete, "/api/financial-goals/"+created.GoalID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Financial goal not found", detail(t, rec))
}

func TestGoalRouteErrors(t *testing.T) {
	h := setup(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"list with bad owner", http.MethodGet, "/api/financial-goals/abc", "", http.StatusUnprocessableEntity},
		{"create for unknown owner", http.MethodPost, "/api/financial-goals/",
			`{"user_id":42,"goal_name":"Car","target_amount":10,"target_date":"2099-01-01","priority":"Low"}`, http.StatusNotFound},
		{"create with past date", http.MethodPost, "/api/financial-goals/",
			`{"user_id":1,"goal_name":"Car","target_amount":10,"target_date":"2001-01-01","priority":"Low"}`, http.StatusUnprocessableEntity},
		{"create with bad priority", http.MethodPost, "/api/financial-goals/",
			`{"user_id":1,"goal_name":"Car","target_amount":10,"target_date":"2099-01-01","priority":"Urgent"}`, http.StatusUnprocessableEntity},
		{"create with broken json", http.MethodPost, "/api/financial-goals/", `{`, http.StatusUnprocessableEntity},
		{"update with non uuid", http.MethodPut, "/api/financial-goals/temp_123", `{}`, http.StatusUnprocessableEntity},
		{"update missing goal", http.MethodPut, "/api/financial-goals/00000000-0000-0000-0000-000000000000", `{"priority":"Low"}`, http.StatusNotFound},
		{"missing profile", http.MethodGet, "/api/profile/5", "", http.StatusNotFound},
		{"wrong method", http.MethodPatch, "/api/financial-goals/1", `{}`, http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestProfileRoutes(t *testing.T) {
	h := setup(t)

	rec := do(t, h, http.MethodPost, "/api/profile/", `{"first_name":"Asha","last_name":"Rao","risk_profile":"Aggressive"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPut, "/api/profile/1", `{"first_name":"Asha","last_name":"Rao","city":"Pune","dependents":1}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/profile/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var p model.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, "Pune", p.City)
	assert.Equal(t, 1, p.Dependents)

	rec = do(t, h, http.MethodPut, "/api/profile/1", `{"first_name":"","last_name":"Rao"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, detail(t, rec), "first_name")
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/financial-goals/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	setup(t).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
