package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"diettracker/middlewares"
	"diettracker/models"
	"diettracker/services"
)

// currentSnapshot returns the session and its working snapshot, fetching
// through the cache when the session has none yet. A store failure here is
// fatal for the render cycle: the handler has already answered 503 when
// ok is false.
func currentSnapshot(c *gin.Context, cache *services.SnapshotCache) (*models.SessionState, *models.Snapshot, bool) {
	s := middlewares.Session(c)

	s.Lock()
	snap := s.Snapshot
	s.Unlock()
	if snap != nil {
		return s, snap, true
	}

	snap, err := cache.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return nil, nil, false
	}
	s.Lock()
	s.Snapshot = snap
	s.Unlock()
	return s, snap, true
}

// queryDate reads the ?date= parameter, defaulting to today. The second
// return is false when the parameter is present but malformed (the handler
// has already answered 400).
func queryDate(c *gin.Context) (string, time.Time, bool) {
	raw := c.DefaultQuery("date", time.Now().Format(models.DateLayout))
	d, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
		return "", time.Time{}, false
	}
	return raw, d, true
}
