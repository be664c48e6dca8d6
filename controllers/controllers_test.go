package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"diettracker/config"
	"diettracker/models"
	"diettracker/routes"
	"diettracker/services"
)

// fakeStore implements services.Store in memory, including the user-only
// upsert match of the real sheet client.
type fakeStore struct {
	mu        sync.Mutex
	logs      []models.LogEntry
	settings  []models.Setting
	failFetch bool
	failWrite bool
	fetches   int
}

func (f *fakeStore) FetchAll(context.Context) (*models.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFetch {
		return nil, fmt.Errorf("%w: fake outage", models.ErrStoreUnavailable)
	}
	f.fetches++
	snap := &models.Snapshot{FetchedAt: time.Now()}
	snap.Logs = append(snap.Logs, f.logs...)
	snap.Settings = append(snap.Settings, f.settings...)
	return snap, nil
}

func (f *fakeStore) AppendLog(_ context.Context, entry models.LogEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrite {
		return fmt.Errorf("%w: fake outage", models.ErrStoreWrite)
	}
	f.logs = append(f.logs, entry)
	return nil
}

func (f *fakeStore) UpsertSetting(_ context.Context, user, name string, value float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrite {
		return fmt.Errorf("%w: fake outage", models.ErrStoreWrite)
	}
	for i, s := range f.settings {
		if s.User == user { // match on user alone, like the sheet client
			f.settings[i].Value = value
			return nil
		}
	}
	f.settings = append(f.settings, models.Setting{User: user, Name: name, Value: value})
	return nil
}

type fakeEstimator struct {
	mu    sync.Mutex
	calls int
	fail  bool
}

var cannedTotals = models.NutritionTotals{Calories: 360.5, Protein: 13.2, Carbs: 58, Fat: 8.5, Fiber: 7.2}

func (f *fakeEstimator) Estimate(_ context.Context, mealName string, items []string) (*models.NutritionBreakdown, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.fail {
		return nil, "", fmt.Errorf("%w: fake outage", models.ErrEstimation)
	}
	return &models.NutritionBreakdown{Meal: mealName, Totals: cannedTotals},
		fmt.Sprintf(`{"meal":%q}`, mealName), nil
}

// client drives the router while carrying cookies across requests, the way
// a browser session would.
type client struct {
	r       *gin.Engine
	cookies []*http.Cookie
}

func newTestApp(t *testing.T) (*client, *fakeStore, *fakeEstimator) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Env: "prod", Users: []string{"Suyash", "Divyanshi"}}
	fs := &fakeStore{}
	fe := &fakeEstimator{}
	cache := services.NewSnapshotCache(fs)
	mgr := services.NewSessionManager(cfg.Users)
	hub := services.NewRealtimeHub()
	r := routes.SetupRouter(cfg, fs, fe, cache, mgr, hub)
	return &client{r: r}, fs, fe
}

func (cl *client) do(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cl.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	cl.r.ServeHTTP(w, req)
	cl.cookies = append(cl.cookies, w.Result().Cookies()...)

	var out map[string]any
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &out)
	}
	return w.Code, out
}

func TestBootstrapDefaults(t *testing.T) {
	cl, _, _ := newTestApp(t)
	code, resp := cl.do(t, http.MethodGet, "/api/session", nil)
	if code != http.StatusOK {
		t.Fatalf("status=%d body=%v", code, resp)
	}
	if resp["user"] != "Suyash" {
		t.Fatalf("user=%v want first enumerated user", resp["user"])
	}
	if resp["goal"] != float64(2000) {
		t.Fatalf("goal=%v want default 2000", resp["goal"])
	}
	users, _ := resp["users"].([]any)
	if len(users) != 2 {
		t.Fatalf("users=%v", resp["users"])
	}
}

func TestBootstrapHonorsLastUserCookie(t *testing.T) {
	cl, _, _ := newTestApp(t)
	cl.cookies = append(cl.cookies, &http.Cookie{Name: "last_user", Value: "Divyanshi"})
	_, resp := cl.do(t, http.MethodGet, "/api/session", nil)
	if resp["user"] != "Divyanshi" {
		t.Fatalf("user=%v want cookie value", resp["user"])
	}
}

func TestBootstrapStoreDownIsFatal(t *testing.T) {
	cl, fs, _ := newTestApp(t)
	fs.failFetch = true
	code, _ := cl.do(t, http.MethodGet, "/api/session", nil)
	if code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d want=503", code)
	}
}

func TestSaveGoalUpsertIsIdempotent(t *testing.T) {
	cl, fs, _ := newTestApp(t)
	cl.do(t, http.MethodGet, "/api/session", nil)

	for i := 0; i < 2; i++ {
		code, resp := cl.do(t, http.MethodPost, "/api/goal", gin.H{"goal": 2200})
		if code != http.StatusOK {
			t.Fatalf("status=%d body=%v", code, resp)
		}
	}
	if len(fs.settings) != 1 {
		t.Fatalf("settings rows=%d want exactly 1", len(fs.settings))
	}
	if fs.settings[0].Value != 2200 {
		t.Fatalf("value=%v want=2200", fs.settings[0].Value)
	}

	// after the invalidation a real refetch sees the stored goal
	code, resp := cl.do(t, http.MethodPost, "/api/refresh", nil)
	if code != http.StatusOK || resp["goal"] != float64(2200) {
		t.Fatalf("refresh status=%d goal=%v want=2200", code, resp["goal"])
	}
}

func TestSaveGoalRejectsNegative(t *testing.T) {
	cl, fs, _ := newTestApp(t)
	cl.do(t, http.MethodGet, "/api/session", nil)
	code, _ := cl.do(t, http.MethodPost, "/api/goal", gin.H{"goal": -50})
	if code != http.StatusBadRequest {
		t.Fatalf("status=%d want=400", code)
	}
	if len(fs.settings) != 0 {
		t.Fatal("rejected goal must not be persisted")
	}
}

func TestLogMealRoundTrip(t *testing.T) {
	cl, fs, _ := newTestApp(t)
	cl.do(t, http.MethodGet, "/api/session", nil)

	code, resp := cl.do(t, http.MethodPost, "/api/meals", gin.H{
		"meal":  "Breakfast",
		"date":  "2025-03-14",
		"items": []string{"2 idli", "", "  1 cup sambar  "},
	})
	if code != http.StatusCreated {
		t.Fatalf("status=%d body=%v", code, resp)
	}
	if resp["items_text"] != "2 idli; 1 cup sambar" {
		t.Fatalf("items_text=%v", resp["items_text"])
	}
	// totals come from the estimator verbatim, no recomputation
	if resp["calories_kcal"] != 360.5 || resp["fiber_g"] != 7.2 {
		t.Fatalf("totals not verbatim: %v", resp)
	}
	if len(fs.logs) != 1 || fs.logs[0].Calories != cannedTotals.Calories {
		t.Fatalf("store rows=%+v", fs.logs)
	}

	_, summary := cl.do(t, http.MethodGet, "/api/summary?date=2025-03-14", nil)
	totals, _ := summary["totals"].(map[string]any)
	if totals["calories_kcal"] != 360.5 {
		t.Fatalf("summary totals=%v", totals)
	}
	meals, _ := summary["meals"].([]any)
	if len(meals) != 1 {
		t.Fatalf("summary meals=%v", meals)
	}
}

func TestLogMealEstimationFailurePersistsNothing(t *testing.T) {
	cl, fs, fe := newTestApp(t)
	cl.do(t, http.MethodGet, "/api/session", nil)
	fe.fail = true

	code, _ := cl.do(t, http.MethodPost, "/api/meals", gin.H{
		"meal": "Dinner", "date": "2025-03-14", "items": []string{"2 roti"},
	})
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d want=422", code)
	}
	if len(fs.logs) != 0 {
		t.Fatal("no LogEntry may be created on estimation failure")
	}

	_, summary := cl.do(t, http.MethodGet, "/api/summary?date=2025-03-14", nil)
	if meals, _ := summary["meals"].([]any); len(meals) != 0 {
		t.Fatalf("summary should be unchanged: %v", meals)
	}
}

func TestLogMealEmptyItemsRejectedBeforeEstimate(t *testing.T) {
	cl, _, fe := newTestApp(t)
	cl.do(t, http.MethodGet, "/api/session", nil)

	code, _ := cl.do(t, http.MethodPost, "/api/meals", gin.H{
		"meal": "Lunch", "items": []string{"   ", ""},
	})
	if code != http.StatusBadRequest {
		t.Fatalf("status=%d want=400", code)
	}
	if fe.calls != 0 {
		t.Fatal("estimator must not be called for empty input")
	}
}

func TestLogMealUnknownMeal(t *testing.T) {
	cl, _, _ := newTestApp(t)
	cl.do(t, http.MethodGet, "/api/session", nil)
	code, _ := cl.do(t, http.MethodPost, "/api/meals", gin.H{
		"meal": "Brunch", "items": []string{"toast"},
	})
	if code != http.StatusBadRequest {
		t.Fatalf("status=%d want=400", code)
	}
}

func TestLogMealStoreFailureKeepsOptimisticEntry(t *testing.T) {
	cl, fs, _ := newTestApp(t)
	cl.do(t, http.MethodGet, "/api/session", nil)
	fs.failWrite = true

	code, _ := cl.do(t, http.MethodPost, "/api/meals", gin.H{
		"meal": "Breakfast", "date": "2025-03-14", "items": []string{"2 idli"},
	})
	if code != http.StatusBadGateway {
		t.Fatalf("status=%d want=502", code)
	}
	if len(fs.logs) != 0 {
		t.Fatal("store write failed, nothing should be in the store")
	}

	// the optimistic entry is still visible in this session
	_, summary := cl.do(t, http.MethodGet, "/api/summary?date=2025-03-14", nil)
	if meals, _ := summary["meals"].([]any); len(meals) != 1 {
		t.Fatalf("optimistic entry missing: %v", summary)
	}

	// an explicit refresh drops it and goes back to the store's truth
	fs.failWrite = false
	cl.do(t, http.MethodPost, "/api/refresh", nil)
	_, summary = cl.do(t, http.MethodGet, "/api/summary?date=2025-03-14", nil)
	if meals, _ := summary["meals"].([]any); len(meals) != 0 {
		t.Fatalf("refresh should drop optimistic state: %v", summary)
	}
}

func TestTrendWeekWindow(t *testing.T) {
	cl, fs, _ := newTestApp(t)
	fs.logs = []models.LogEntry{
		{User: "Suyash", Date: "2025-03-12", Meal: "Lunch", Calories: 300},
		{User: "Suyash", Date: "2025-03-14", Meal: "Dinner", Calories: 500},
		{User: "Suyash", Date: "2025-03-01", Meal: "Lunch", Calories: 900},
	}
	cl.do(t, http.MethodGet, "/api/session", nil)

	code, resp := cl.do(t, http.MethodGet, "/api/trend?date=2025-03-14", nil)
	if code != http.StatusOK {
		t.Fatalf("status=%d", code)
	}
	points, _ := resp["points"].([]any)
	if len(points) != 2 {
		t.Fatalf("points=%v want 2 days", points)
	}
	if resp["average_calories"] != float64(400) {
		t.Fatalf("average=%v want=400 (mean over present days)", resp["average_calories"])
	}
}

func TestSwitchUserRecomputesGoalWithoutRefetch(t *testing.T) {
	cl, fs, _ := newTestApp(t)
	fs.settings = []models.Setting{{User: "Divyanshi", Name: models.SettingCalorieGoal, Value: 1800}}
	cl.do(t, http.MethodGet, "/api/session", nil)
	fetchesAfterBootstrap := fs.fetches

	code, resp := cl.do(t, http.MethodPost, "/api/session/user", gin.H{"user": "Divyanshi"})
	if code != http.StatusOK {
		t.Fatalf("status=%d body=%v", code, resp)
	}
	if resp["goal"] != float64(1800) {
		t.Fatalf("goal=%v want=1800 from the snapshot in hand", resp["goal"])
	}
	if fs.fetches != fetchesAfterBootstrap {
		t.Fatalf("fetches=%d, user switch must not refetch", fs.fetches)
	}

	var found bool
	for _, c := range cl.cookies {
		if c.Name == "last_user" && c.Value == "Divyanshi" {
			found = true
			if c.MaxAge < 364*24*60*60 {
				t.Fatalf("last_user max-age=%d want about a year", c.MaxAge)
			}
		}
	}
	if !found {
		t.Fatal("last_user preference cookie not set")
	}
}

func TestSwitchUserUnknown(t *testing.T) {
	cl, _, _ := newTestApp(t)
	cl.do(t, http.MethodGet, "/api/session", nil)
	code, _ := cl.do(t, http.MethodPost, "/api/session/user", gin.H{"user": "Stranger"})
	if code != http.StatusBadRequest {
		t.Fatalf("status=%d want=400", code)
	}
}
