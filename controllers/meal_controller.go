package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"diettracker/middlewares"
	"diettracker/models"
	"diettracker/services"
)

type MealController struct {
	Store     services.Store
	Estimator services.Estimator
	Cache     *services.SnapshotCache
	Hub       *services.RealtimeHub
}

func NewMealController(store services.Store, est services.Estimator, cache *services.SnapshotCache, hub *services.RealtimeHub) *MealController {
	return &MealController{Store: store, Estimator: est, Cache: cache, Hub: hub}
}

// LogMeal is the core pipeline: free-text items go to the estimator, the
// returned totals become a LogEntry verbatim, the entry is appended to the
// store and optimistically to the session's snapshot. An estimation failure
// stops everything before any write; a store write failure keeps the
// optimistic entry and is reported as a warning.
func (mc *MealController) LogMeal(c *gin.Context) {
	var req struct {
		Meal  string   `json:"meal" binding:"required"`
		Date  string   `json:"date"`
		Items []string `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidMeal(req.Meal) {
		c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrUnknownMeal.Error()})
		return
	}

	items := make([]string, 0, len(req.Items))
	for _, it := range req.Items {
		if it = strings.TrimSpace(it); it != "" {
			items = append(items, it)
		}
	}
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrEmptyItems.Error()})
		return
	}

	date := req.Date
	if date == "" {
		date = time.Now().Format(models.DateLayout)
	} else if _, err := time.Parse(models.DateLayout, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
		return
	}

	s := middlewares.Session(c)
	s.Lock()
	user := s.User
	s.Unlock()

	breakdown, raw, err := mc.Estimator.Estimate(c.Request.Context(), req.Meal, items)
	if err != nil {
		// Nothing is persisted and no cache state changes on this path.
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	entry := models.LogEntry{
		User:      user,
		Timestamp: time.Now().UTC(),
		Date:      date,
		Meal:      req.Meal,
		ItemsText: strings.Join(items, "; "),
		Calories:  breakdown.Totals.Calories,
		Protein:   breakdown.Totals.Protein,
		Carbs:     breakdown.Totals.Carbs,
		Fat:       breakdown.Totals.Fat,
		Fiber:     breakdown.Totals.Fiber,
		RawJSON:   raw,
	}

	writeErr := mc.Store.AppendLog(c.Request.Context(), entry)

	// The optimistic append stands even when the store write failed; the
	// user is warned but keeps seeing the entry they just logged.
	s.Lock()
	if s.Snapshot != nil {
		s.Snapshot = s.Snapshot.WithLog(entry)
	}
	s.Unlock()
	mc.Cache.Invalidate()

	if writeErr != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": writeErr.Error(), "entry": entry})
		return
	}

	mc.Hub.Broadcast("logs.appended", entry)
	c.JSON(http.StatusCreated, entry)
}
