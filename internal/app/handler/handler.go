package handler

import (
	"encoding/json"
	"fmt"

	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/analysis"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/config"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/ds"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/dto"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/redis"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/repository"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/role"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// APIHandler contains the REST API handlers.
type APIHandler struct {
	Repository   *repository.Repository
	RedisClient  *redis.Client
	MinIOClient  *storage.MinIOClient
	Config       *config.Config
	Orchestrator *analysis.Orchestrator
	AuthHandler  *AuthHandler
}

func NewAPIHandler(r *repository.Repository, redisClient *redis.Client, minioClient *storage.MinIOClient,
	cfg *config.Config, orchestrator *analysis.Orchestrator, authHandler *AuthHandler) *APIHandler {
	return &APIHandler{
		Repository:   r,
		RedisClient:  redisClient,
		MinIOClient:  minioClient,
		Config:       cfg,
		Orchestrator: orchestrator,
		AuthHandler:  authHandler,
	}
}

// ============ Helpers ============

func (h *APIHandler) errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{
		Status:  "fail",
		Message: message,
	})
}

func (h *APIHandler) successResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	response := dto.SuccessResponse{
		Status:  "success",
		Message: message,
	}
	if data != nil {
		response.Data = data
	}
	c.JSON(statusCode, response)
}

func (h *APIHandler) getUserFromContext(c *gin.Context) (uint, role.Role, error) {
	userID, exists := c.Get("userID")
	if !exists {
		logrus.Warn("userID not found in context")
		return 0, role.Viewer, fmt.Errorf("user not authenticated")
	}

	userRole, _ := c.Get("userRole")
	r, _ := userRole.(role.Role)

	id, ok := userID.(uint)
	if !ok {
		logrus.Errorf("getUserFromContext: invalid userID type: %T", userID)
		return 0, r, fmt.Errorf("invalid user ID")
	}

	return id, r, nil
}

// ============ DTO mapping ============

func toRecommendationResponse(rec ds.Recommendation) dto.RecommendationResponse {
	return dto.RecommendationResponse{
		ID:               rec.ID,
		OrgUserID:        rec.OrgUserID,
		CurrentSkuID:     rec.CurrentSkuID,
		RecommendedSkuID: rec.RecommendedSkuID,
		MonthlySavings:   rec.MonthlySavings,
		Reason:           rec.Reason,
		Category:         rec.Category,
		Status:           string(rec.Status),
	}
}

func toAnalysisResponse(a ds.Analysis, recs []ds.Recommendation) dto.AnalysisResponse {
	breakdown := make(map[string]int)
	if a.CategoryBreakdown != "" {
		if err := json.Unmarshal([]byte(a.CategoryBreakdown), &breakdown); err != nil {
			logrus.Warnf("analysis %d carries a malformed category breakdown: %v", a.ID, err)
		}
	}

	resp := dto.AnalysisResponse{
		ID:           a.ID,
		TenantID:     a.TenantID,
		Status:       string(a.Status),
		StartedAt:    a.StartedAt,
		FinishedAt:   a.FinishedAt,
		ErrorMessage: a.ErrorMessage,
		Summary: dto.AnalysisSummaryResponse{
			TotalUsers:        a.TotalUsers,
			LicensedUsers:     a.LicensedUsers,
			TotalMonthlyCost:  a.TotalMonthlyCost,
			TargetMonthlyCost: a.TargetMonthlyCost,
			MonthlySavings:    a.MonthlySavings,
			AnnualSavings:     a.AnnualSavings,
			CategoryBreakdown: breakdown,
		},
	}

	for _, rec := range recs {
		resp.Recommendations = append(resp.Recommendations, toRecommendationResponse(rec))
	}

	return resp
}
