package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"diettracker/middlewares"
	"diettracker/models"
	"diettracker/services"
)

type GoalController struct {
	Store services.Store
	Cache *services.SnapshotCache
	Hub   *services.RealtimeHub
}

func NewGoalController(store services.Store, cache *services.SnapshotCache, hub *services.RealtimeHub) *GoalController {
	return &GoalController{Store: store, Cache: cache, Hub: hub}
}

// SaveGoal upserts the user's calorie goal and invalidates the cache so the
// next real fetch sees the write. A store failure leaves everything as it
// was and is reported to the user.
func (gc *GoalController) SaveGoal(c *gin.Context) {
	var req struct {
		Goal *int `json:"goal" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if *req.Goal < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "goal must be non-negative"})
		return
	}

	s := middlewares.Session(c)
	s.Lock()
	user := s.User
	s.Unlock()

	if err := gc.Store.UpsertSetting(c.Request.Context(), user, models.SettingCalorieGoal, float64(*req.Goal)); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	s.Lock()
	s.Goal = *req.Goal
	s.Unlock()
	gc.Cache.Invalidate()
	gc.Hub.Broadcast("settings.updated", gin.H{"user": user, "goal": *req.Goal})

	c.JSON(http.StatusOK, gin.H{"user": user, "goal": *req.Goal})
}
