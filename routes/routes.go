package routes

import (
	"net/http"

	"go-attackboard/handlers"
	"go-attackboard/metrics"
	"go-attackboard/summarization"
	"go-attackboard/views"
	"go-attackboard/web"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func SetupRouter(d *views.Dashboard, briefer *summarization.Briefer, m *metrics.Metrics, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(logger))
	if m != nil {
		r.Use(Metrics(m))
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	r.SetHTMLTemplate(web.Templates())
	r.StaticFS("/static", http.FS(web.Static()))

	r.GET("/", func(c *gin.Context) {
		handlers.RenderDashboard(c, d)
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "records": d.Summary.TotalAttacks})
	})

	// api routes
	api := r.Group("/api/attackboard")
	{
		api.GET("/summary", func(c *gin.Context) { handlers.GetSummary(c, d) })
		api.GET("/charts/targets", func(c *gin.Context) { handlers.GetTargetChart(c, d) })
		api.GET("/charts/weapons", func(c *gin.Context) { handlers.GetWeaponChart(c, d) })
		api.GET("/breakdowns", func(c *gin.Context) { handlers.GetBreakdowns(c, d) })
		api.GET("/map", func(c *gin.Context) { handlers.GetMap(c, d) })
		api.GET("/records", func(c *gin.Context) { handlers.QueryRecords(c, d) })
		api.GET("/briefing", func(c *gin.Context) { handlers.GetBriefing(c, d, briefer) })
	}

	return r
}
