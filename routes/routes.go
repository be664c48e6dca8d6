package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"diettracker/config"
	"diettracker/controllers"
	"diettracker/middlewares"
	"diettracker/services"
)

func SetupRouter(
	cfg *config.Config,
	store services.Store,
	estimator services.Estimator,
	cache *services.SnapshotCache,
	mgr *services.SessionManager,
	hub *services.RealtimeHub,
) *gin.Engine {
	r := gin.Default()

	// Cookies carry the session, so the frontend needs credentialed CORS.
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowCredentials = true
	corsCfg.AllowOriginFunc = func(string) bool { return true }
	r.Use(cors.New(corsCfg))

	r.Use(middlewares.SessionMiddleware(mgr))

	api := r.Group("/api")
	{
		sess := controllers.NewSessionController(cache, mgr)
		api.GET("/session", sess.Bootstrap)
		api.POST("/session/user", sess.SwitchUser)
		api.POST("/refresh", sess.Refresh)

		sum := controllers.NewSummaryController(cache)
		api.GET("/summary", sum.GetSummary)
		api.GET("/trend", sum.GetTrend)

		goal := controllers.NewGoalController(store, cache, hub)
		api.POST("/goal", goal.SaveGoal)

		meal := controllers.NewMealController(store, estimator, cache, hub)
		api.POST("/meals", meal.LogMeal)

		if cfg.Env == "dev" {
			if seeder, ok := store.(services.Seeder); ok {
				dev := controllers.NewDevController(seeder)
				api.POST("/dev/seed", dev.Seed)
			}
		}
	}

	rt := controllers.NewRealtimeController(hub)
	r.GET("/ws", rt.UpdatesWS)

	return r
}
