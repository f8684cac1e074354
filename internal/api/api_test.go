package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cmw1990/quitopia-support-sub008/internal"
	"github.com/cmw1990/quitopia-support-sub008/internal/auth"
	"github.com/cmw1990/quitopia-support-sub008/internal/config"
	"github.com/cmw1990/quitopia-support-sub008/internal/storage"
)

type testApp struct {
	logger      internal.Logger
	eventRepo   storage.EventRepository
	profileRepo storage.ProfileRepository
}

func (a *testApp) Logger() internal.Logger                { return a.logger }
func (a *testApp) EventRepo() storage.EventRepository     { return a.eventRepo }
func (a *testApp) ProfileRepo() storage.ProfileRepository { return a.profileRepo }

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	logger := internal.NewZapLogger(zap.NewNop().Sugar())
	eventRepo, profileRepo, err := storage.NewFileRepositories(
		filepath.Join(dir, "events.json"),
		filepath.Join(dir, "profiles.json"),
		logger,
	)
	require.NoError(t, err)

	app := &testApp{logger: logger, eventRepo: eventRepo, profileRepo: profileRepo}
	cfg := &config.Config{Env: "development"}
	provider := auth.NewLocalAuthProvider("MOCK-TOKEN", logger)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.Use(auth.AuthMiddleware(provider, cfg))
	RegisterRoutes(r, app)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, path, nil)
	} else {
		req, _ = http.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer MOCK-TOKEN")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	r := setupRouter(t)
	req, _ := http.NewRequest("GET", "/api/events", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, 401, w.Code)
}

func TestPostEvent_ValidAndInvalid(t *testing.T) {
	r := setupRouter(t)

	body := `{"product_type":"cigarette","quantity":1,"unit":"cigarette","consumption_timestamp":"2025-06-01T08:00:00Z","trigger":"coffee","mood":"stressed"}`
	w := doJSON(r, "POST", "/api/events", body)
	assert.Equal(t, 201, w.Code)

	// Unknown product type.
	body = `{"product_type":"banana","quantity":1,"unit":"x","consumption_timestamp":"2025-06-01T08:00:00Z"}`
	w = doJSON(r, "POST", "/api/events", body)
	assert.Equal(t, 400, w.Code)

	// Missing timestamp.
	body = `{"product_type":"cigarette","quantity":1,"unit":"cigarette"}`
	w = doJSON(r, "POST", "/api/events", body)
	assert.Equal(t, 400, w.Code)

	w = doJSON(r, "GET", "/api/events", "")
	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data []internal.ConsumptionEvent `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
}

func TestEventUpdateAndDelete(t *testing.T) {
	r := setupRouter(t)

	body := `{"product_type":"vape","quantity":1,"unit":"puff","consumption_timestamp":"2025-06-01T08:00:00Z"}`
	w := doJSON(r, "POST", "/api/events", body)
	require.Equal(t, 201, w.Code)
	var created struct {
		Data internal.ConsumptionEvent `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	update := `{"product_type":"vape","quantity":2,"unit":"puff","consumption_timestamp":"2025-06-01T09:00:00Z"}`
	w = doJSON(r, "PUT", "/api/events/"+created.Data.ID, update)
	assert.Equal(t, 200, w.Code)

	w = doJSON(r, "DELETE", "/api/events/"+created.Data.ID, "")
	assert.Equal(t, 200, w.Code)

	w = doJSON(r, "DELETE", "/api/events/"+created.Data.ID, "")
	assert.Equal(t, 404, w.Code)
}

func TestProfileRoundTrip(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(r, "GET", "/api/profile", "")
	assert.Equal(t, 404, w.Code)

	body := `{"quit_anchor_timestamp":"2025-05-01T00:00:00Z","baseline_daily_consumption":20,"cost_per_pack":10,"units_per_pack":20}`
	w = doJSON(r, "PUT", "/api/profile", body)
	assert.Equal(t, 200, w.Code)

	w = doJSON(r, "GET", "/api/profile", "")
	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data internal.QuitProfile `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 20.0, resp.Data.BaselineDailyConsumption)
}

func TestMilestonesWithoutProfileReportsDiagnostic(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(r, "GET", "/api/stats/milestones", "")
	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data []struct {
			Achieved        bool    `json:"achieved"`
			ProgressPercent float64 `json:"progress_percent"`
		} `json:"data"`
		Meta map[string]any `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data)
	for _, p := range resp.Data {
		assert.False(t, p.Achieved)
	}
	assert.Contains(t, resp.Meta, "diagnostics")
}

func TestStatsEndToEnd(t *testing.T) {
	r := setupRouter(t)

	anchor := time.Now().UTC().AddDate(0, 0, -10).Format(time.RFC3339)
	profile := `{"quit_anchor_timestamp":"` + anchor + `","baseline_daily_consumption":20,"cost_per_pack":10,"units_per_pack":20}`
	w := doJSON(r, "PUT", "/api/profile", profile)
	require.Equal(t, 200, w.Code)

	eventTS := time.Now().UTC().AddDate(0, 0, -3).Format(time.RFC3339)
	body := `{"product_type":"cigarette","quantity":1,"unit":"cigarette","consumption_timestamp":"` + eventTS + `","trigger":"coffee"}`
	w = doJSON(r, "POST", "/api/events", body)
	require.Equal(t, 201, w.Code)

	w = doJSON(r, "GET", "/api/stats/financials", "")
	assert.Equal(t, 200, w.Code)
	var fin struct {
		Data struct {
			UnitsAvoided int     `json:"units_avoided"`
			MoneySaved   float64 `json:"money_saved"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fin))
	assert.Equal(t, 200, fin.Data.UnitsAvoided)
	assert.Equal(t, 100.0, fin.Data.MoneySaved)

	w = doJSON(r, "GET", "/api/stats/streaks", "")
	assert.Equal(t, 200, w.Code)

	w = doJSON(r, "GET", "/api/stats/distributions", "")
	assert.Equal(t, 200, w.Code)

	w = doJSON(r, "GET", "/api/insights", "")
	assert.Equal(t, 200, w.Code)
	var insights struct {
		Data struct {
			Insights []struct {
				Category string `json:"category"`
				Rank     int    `json:"rank"`
			} `json:"insights"`
			Tips []string `json:"tips"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &insights))
	require.NotEmpty(t, insights.Data.Tips)
	assert.NotEmpty(t, insights.Data.Insights)
}
