package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"diettracker/services"
)

type DevController struct {
	Seeder services.Seeder
}

func NewDevController(seeder services.Seeder) *DevController {
	return &DevController{Seeder: seeder}
}

// Seed writes the Logs/Settings header rows into a blank spreadsheet so a
// fresh sheet works without manual setup. Dev-only route.
func (d *DevController) Seed(c *gin.Context) {
	if err := d.Seeder.SeedTables(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
