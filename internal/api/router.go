package api

import "github.com/gin-gonic/gin"

// RegisterRoutes attaches all protected routes to the router group.
// Auth and request middlewares are the caller's responsibility.
func RegisterRoutes(r gin.IRoutes, app App) {
	r.POST("/api/events", PostEvent(app))
	r.GET("/api/events", GetEvents(app))
	r.PUT("/api/events/:id", PutEvent(app))
	r.DELETE("/api/events/:id", DeleteEvent(app))

	r.PUT("/api/profile", PutProfile(app))
	r.GET("/api/profile", GetProfile(app))

	r.GET("/api/stats/milestones", GetMilestones(app))
	r.GET("/api/stats/distributions", GetDistributions(app))
	r.GET("/api/stats/streaks", GetStreaks(app))
	r.GET("/api/stats/financials", GetFinancials(app))
	r.GET("/api/insights", GetInsights(app))
}
