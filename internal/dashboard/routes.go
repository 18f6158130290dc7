package dashboard

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/zulandar/cave/internal/models"
	"github.com/zulandar/cave/internal/view"
)

// registerRoutes sets up all dashboard routes on the Gin router.
func registerRoutes(router *gin.Engine, loader *view.Loader, reg *prometheus.Registry) {
	api := router.Group("/api")
	api.GET("/logs", handleLogs(loader))
	api.POST("/logs/clear", handleClearLogs(loader))
	api.GET("/challenges/:type", handleChallenges(loader))
	api.GET("/responses", handleResponses(loader, false))
	api.GET("/responses/:type", handleResponses(loader, false))
	api.GET("/pending", handleResponses(loader, true))
	api.GET("/availability", handleAvailability(loader))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))
}

// httpStatus maps a view status to a response code. Empty results and
// missing selections are successful responses.
func httpStatus(s view.Status) int {
	switch s {
	case view.StatusUnavailable:
		return http.StatusServiceUnavailable
	case view.StatusConfigMissing:
		return http.StatusInternalServerError
	}
	return http.StatusOK
}

// body flattens the notice into the top level of a response body.
func body(n view.Notice, fields gin.H) gin.H {
	fields["status"] = n.Status
	if n.Message != "" {
		fields["message"] = n.Message
	}
	if len(n.Hints) > 0 {
		fields["hints"] = n.Hints
	}
	return fields
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func handleLogs(loader *view.Loader) gin.HandlerFunc {
	return func(c *gin.Context) {
		sel, err := logSelection(c)
		if err != nil {
			badRequest(c, err)
			return
		}
		v := loader.Logs(c.Request.Context(), sel)
		c.JSON(httpStatus(v.Status), body(v.Notice, gin.H{
			"logs":      v.Lines,
			"displayed": v.Displayed,
			"total":     v.Total,
			"summary":   v.Summary,
			"filters":   v.Filters,
			"selection": v.Selection,
			"options":   v.Options,
		}))
	}
}

func handleClearLogs(loader *view.Loader) gin.HandlerFunc {
	return func(c *gin.Context) {
		n := loader.ClearLogs(c.Request.Context())
		c.JSON(httpStatus(n.Status), body(n, gin.H{}))
	}
}

func handleChallenges(loader *view.Loader) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, err := models.ParseChallengeType(c.Param("type"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		v := loader.Challenges(c.Request.Context(), t, c.Query("selected"))

		rows := make([]map[string]any, len(v.Challenges))
		for i, ch := range v.Challenges {
			rows[i] = ch.ToMap()
		}
		fields := gin.H{
			"type":       v.Type,
			"challenges": rows,
			"total":      v.Total,
			"detail":     v.Detail,
		}
		if v.Selected != nil {
			fields["selected"] = v.Selected.ToMap()
		}
		c.JSON(httpStatus(v.Status), body(v.Notice, fields))
	}
}

func handleResponses(loader *view.Loader, pending bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, err := responsesQuery(c, pending)
		if err != nil {
			if errors.Is(err, errUnknownType) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			badRequest(c, err)
			return
		}
		v := loader.Responses(c.Request.Context(), q)

		rows := make([]map[string]any, len(v.Responses))
		for i, r := range v.Responses {
			rows[i] = r.ToMap()
		}
		fields := gin.H{
			"pending":   v.Pending,
			"responses": rows,
			"displayed": v.Displayed,
			"total":     v.Total,
			"filters":   v.Filters,
			"selection": v.Selection,
			"options":   v.Options,
			"detail":    v.Detail,
		}
		if v.Type != "" {
			fields["type"] = v.Type
		}
		if v.Selected != nil {
			fields["selected"] = v.Selected.ToMap()
		}
		c.JSON(httpStatus(v.Status), body(v.Notice, fields))
	}
}

func handleAvailability(loader *view.Loader) gin.HandlerFunc {
	return func(c *gin.Context) {
		v := loader.Availability(c.Request.Context())

		rows := make([]map[string]any, len(v.Checks))
		for i, ch := range v.Checks {
			rows[i] = ch.ToMap()
		}
		c.JSON(httpStatus(v.Status), body(v.Notice, gin.H{
			"checks":  rows,
			"summary": v.Summary,
		}))
	}
}
