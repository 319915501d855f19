package handler

import (
	"net/http"

	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/middleware"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/role"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the REST API. Reads are open to any authenticated
// account; running analyses and applying recommendations need the
// operator or admin role.
func (h *APIHandler) RegisterRoutes(r *gin.Engine, auth *middleware.AuthMiddleware) {
	r.GET("/ping", h.Ping)

	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", h.AuthHandler.Register)
			authGroup.POST("/login", h.AuthHandler.Login)
			authGroup.POST("/logout", auth.WithAuthCheck(), h.AuthHandler.Logout)
			authGroup.GET("/profile", auth.WithAuthCheck(), h.AuthHandler.GetProfile)
		}

		tenants := api.Group("/tenants", auth.WithAuthCheck())
		{
			tenants.GET("", h.GetTenants)
			tenants.GET("/:id/users", h.GetTenantOrgUsers)
		}

		catalogGroup := api.Group("/catalog")
		{
			catalogGroup.GET("/tiers", auth.WithAuthCheck(), h.GetTiers)
			catalogGroup.POST("/quotations", auth.WithAuthCheck(role.Admin), h.CreateQuotation)
		}

		analyses := api.Group("/analyses")
		{
			analyses.POST("/tenants/:tenant_id", auth.WithAuthCheck(role.Operator, role.Admin), h.RunAnalysis)
			analyses.GET("", auth.WithAuthCheck(), h.GetAnalyses)
			analyses.GET("/:id", auth.WithAuthCheck(), h.GetAnalysis)
		}

		recommendations := api.Group("/recommendations")
		{
			recommendations.PUT("/:id/apply", auth.WithAuthCheck(role.Operator, role.Admin), h.ApplyRecommendation)
		}
	}
}

// Ping is the liveness probe
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *APIHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
