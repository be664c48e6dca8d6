package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"diettracker/middlewares"
	"diettracker/models"
	"diettracker/services"
)

type SessionController struct {
	Cache *services.SnapshotCache
	Mgr   *services.SessionManager
}

func NewSessionController(cache *services.SnapshotCache, mgr *services.SessionManager) *SessionController {
	return &SessionController{Cache: cache, Mgr: mgr}
}

// Bootstrap is the first call a client makes: it pins the session's user,
// loads the initial snapshot and computes the active goal.
func (sc *SessionController) Bootstrap(c *gin.Context) {
	s, snap, ok := currentSnapshot(c, sc.Cache)
	if !ok {
		return
	}

	s.Lock()
	s.Goal = services.CalorieGoal(snap, s.User)
	if s.Date == "" {
		s.Date = time.Now().Format(models.DateLayout)
	}
	resp := gin.H{
		"users": sc.Mgr.Users(),
		"user":  s.User,
		"goal":  s.Goal,
		"date":  s.Date,
	}
	s.Unlock()

	c.JSON(http.StatusOK, resp)
}

// SwitchUser changes the active user, persists the preference cookie and
// recomputes the goal from the snapshot already in hand — no refetch.
func (sc *SessionController) SwitchUser(c *gin.Context) {
	var req struct {
		User string `json:"user" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !sc.Mgr.KnownUser(req.User) {
		c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrUnknownUser.Error()})
		return
	}

	s, snap, ok := currentSnapshot(c, sc.Cache)
	if !ok {
		return
	}

	middlewares.PersistLastUser(c, req.User)

	s.Lock()
	s.User = req.User
	s.Goal = services.CalorieGoal(snap, req.User)
	resp := gin.H{"user": s.User, "goal": s.Goal}
	s.Unlock()

	c.JSON(http.StatusOK, resp)
}

// Refresh is the manual re-sync: drop the session's working snapshot
// (optimistic appends included), invalidate the shared cache and refetch.
func (sc *SessionController) Refresh(c *gin.Context) {
	s := middlewares.Session(c)

	s.Lock()
	s.Snapshot = nil
	s.Unlock()
	sc.Cache.Invalidate()

	snap, err := sc.Cache.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	s.Lock()
	s.Snapshot = snap
	s.Goal = services.CalorieGoal(snap, s.User)
	resp := gin.H{"user": s.User, "goal": s.Goal, "fetched_at": snap.FetchedAt}
	s.Unlock()

	c.JSON(http.StatusOK, resp)
}
