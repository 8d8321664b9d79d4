package handlers

import (
	"net/http"

	"go-attackboard/views"

	"github.com/gin-gonic/gin"
)

// RenderDashboard serves the tabbed HTML page.
func RenderDashboard(c *gin.Context, d *views.Dashboard) {
	c.HTML(http.StatusOK, "dashboard.html", d)
}

func GetSummary(c *gin.Context, d *views.Dashboard) {
	c.JSON(http.StatusOK, gin.H{
		"title":    d.Title,
		"subtitle": d.Subtitle,
		"summary":  d.Summary,
	})
}

func GetTargetChart(c *gin.Context, d *views.Dashboard) {
	c.JSON(http.StatusOK, d.TargetChart)
}

func GetWeaponChart(c *gin.Context, d *views.Dashboard) {
	c.JSON(http.StatusOK, d.WeaponChart)
}

func GetMap(c *gin.Context, d *views.Dashboard) {
	c.JSON(http.StatusOK, d.Map)
}

// GetBreakdowns returns the unsorted aggregation rows behind both charts.
func GetBreakdowns(c *gin.Context, d *views.Dashboard) {
	c.JSON(http.StatusOK, gin.H{
		"targetType":    d.TargetBreakdown,
		"weaponSubtype": d.WeaponBreakdown,
		"mergedEvents":  d.MergedEvents,
	})
}
