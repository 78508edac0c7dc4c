package server

import (
	"net/http"
	"time"

	httpHandler "channel-stats/interfaces/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// InitiateRouter wires the read-only report endpoints.
func InitiateRouter(reportHandler httpHandler.IReportHandler, allowOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(allowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = allowOrigins
	}
	router.Use(cors.New(corsConfig))

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("api")
	report := api.Group("/report")
	{
		report.GET("/channels", reportHandler.GetChannels)
		report.GET("/playlist", reportHandler.GetPlaylist)
		report.GET("/charts", reportHandler.ListCharts)
		report.GET("/charts/:name", reportHandler.GetChart)
	}

	return router
}
