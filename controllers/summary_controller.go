package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"diettracker/services"
)

type SummaryController struct {
	Cache *services.SnapshotCache
}

func NewSummaryController(cache *services.SnapshotCache) *SummaryController {
	return &SummaryController{Cache: cache}
}

// GetSummary renders one day: the user's entries, their component-wise
// totals and progress against the goal.
func (sc *SummaryController) GetSummary(c *gin.Context) {
	date, _, ok := queryDate(c)
	if !ok {
		return
	}
	s, snap, ok := currentSnapshot(c, sc.Cache)
	if !ok {
		return
	}

	s.Lock()
	user := s.User
	if s.Goal == 0 {
		s.Goal = services.CalorieGoal(snap, user)
	}
	goal := s.Goal
	s.Date = date
	s.Unlock()

	logs := services.DailyLogs(snap, user, date)
	totals := services.DailyTotals(logs)

	// Progress caps at 100%; a zero goal shows no progress at all.
	progress := 0.0
	if goal > 0 {
		progress = totals.Calories / float64(goal)
		if progress > 1 {
			progress = 1
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"date":             date,
		"user":             user,
		"goal":             goal,
		"totals":           totals,
		"progress_percent": int(progress * 100),
		"meals":            logs,
	})
}

// GetTrend renders the 7-day calorie trend ending at ?date= inclusive.
// Days without entries are absent from the points, and the average is the
// mean over the days that are present.
func (sc *SummaryController) GetTrend(c *gin.Context) {
	date, end, ok := queryDate(c)
	if !ok {
		return
	}
	s, snap, ok := currentSnapshot(c, sc.Cache)
	if !ok {
		return
	}

	s.Lock()
	user := s.User
	s.Unlock()

	points, avg := services.WeeklyTrend(snap, user, end)
	c.JSON(http.StatusOK, gin.H{
		"end_date":         date,
		"user":             user,
		"points":           points,
		"average_calories": avg,
	})
}
