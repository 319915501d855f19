package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/ds"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/dto"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/redis"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ============ Analysis runs ============

// RunAnalysis triggers an analysis run for a tenant
// @Summary Run an analysis for a tenant
// @Description Runs the recommendation engine over every user of the tenant and returns the terminal analysis. Only one run per tenant may be active at a time.
// @Tags Analyses
// @Produce json
// @Security BearerAuth
// @Param tenant_id path string true "Tenant UUID"
// @Success 201 {object} dto.AnalysisResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/analyses/tenants/{tenant_id} [post]
func (h *APIHandler) RunAnalysis(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("tenant_id"))
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Invalid tenant ID")
		return
	}

	tenant, err := h.Repository.GetTenantByID(c.Request.Context(), tenantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.errorResponse(c, http.StatusNotFound, "Tenant not found")
			return
		}
		logrus.Error("Error loading tenant: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Error loading tenant")
		return
	}

	// Serialize runs per tenant so "current license/cost" reads stay
	// consistent within a run.
	if err := h.RedisClient.AcquireRunLock(c.Request.Context(), tenant.ID, h.Config.RunLockTTL); err != nil {
		if errors.Is(err, redis.ErrRunActive) {
			h.errorResponse(c, http.StatusConflict, "An analysis run is already active for this tenant")
			return
		}
		logrus.Error("Error acquiring run lock: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Error acquiring run lock")
		return
	}
	defer func() {
		if err := h.RedisClient.ReleaseRunLock(c.Request.Context(), tenant.ID); err != nil {
			logrus.Warnf("Failed to release run lock for tenant %s: %v", tenant.ID, err)
		}
	}()

	a, err := h.Orchestrator.Run(c.Request.Context(), *tenant)
	if err != nil {
		logrus.Error("Error running analysis: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Error running analysis")
		return
	}

	recs, err := h.Repository.GetRecommendationsByAnalysis(c.Request.Context(), a.ID)
	if err != nil {
		logrus.Error("Error loading recommendations: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Error loading recommendations")
		return
	}

	response := toAnalysisResponse(*a, recs)

	// Archival of the snapshot is best effort and never fails the run.
	if a.Status == ds.AnalysisCompleted && h.MinIOClient != nil {
		if data, err := json.Marshal(response); err == nil {
			if _, err := h.MinIOClient.UploadAnalysisExport(c.Request.Context(), a.ID, data); err != nil {
				logrus.Warnf("Failed to archive export of analysis %d: %v", a.ID, err)
			}
		}
	}

	c.JSON(http.StatusCreated, response)
}

// GetAnalysis returns one analysis with its recommendations
// @Summary Get an analysis by ID
// @Description Returns the analysis, its summary and all recommendations
// @Tags Analyses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Analysis ID"
// @Success 200 {object} dto.AnalysisResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/analyses/{id} [get]
func (h *APIHandler) GetAnalysis(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Invalid analysis ID")
		return
	}

	a, err := h.Repository.GetAnalysisByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.errorResponse(c, http.StatusNotFound, "Analysis not found")
			return
		}
		logrus.Error("Error loading analysis: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Error loading analysis")
		return
	}

	recs, err := h.Repository.GetRecommendationsByAnalysis(c.Request.Context(), a.ID)
	if err != nil {
		logrus.Error("Error loading recommendations: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Error loading recommendations")
		return
	}

	c.JSON(http.StatusOK, toAnalysisResponse(*a, recs))
}

// GetAnalyses lists the analysis runs of a tenant
// @Summary List analyses of a tenant
// @Description Returns every analysis run of the tenant, newest first, without recommendations
// @Tags Analyses
// @Produce json
// @Security BearerAuth
// @Param tenant_id query string true "Tenant UUID"
// @Success 200 {object} dto.AnalysisListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/analyses [get]
func (h *APIHandler) GetAnalyses(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Query("tenant_id"))
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Invalid tenant ID")
		return
	}

	analyses, err := h.Repository.GetAnalysesByTenant(c.Request.Context(), tenantID)
	if err != nil {
		logrus.Error("Error loading analyses: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Error loading analyses")
		return
	}

	response := dto.AnalysisListResponse{Total: len(analyses)}
	for _, a := range analyses {
		response.Analyses = append(response.Analyses, toAnalysisResponse(a, nil))
	}

	c.JSON(http.StatusOK, response)
}

// ============ Recommendations ============

// ApplyRecommendation accepts or rejects a pending recommendation
// @Summary Accept or reject a recommendation
// @Description Moves a pending recommendation to accepted or rejected. The status change is the only side effect; the tenant's real license assignment is not touched.
// @Tags Recommendations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recommendation ID"
// @Param request body dto.ApplyRecommendationRequest true "accept or reject"
// @Success 200 {object} dto.RecommendationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/recommendations/{id}/apply [put]
func (h *APIHandler) ApplyRecommendation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Invalid recommendation ID")
		return
	}

	var req dto.ApplyRecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Invalid action: must be accept or reject")
		return
	}

	next := ds.RecommendationAccepted
	if req.Action == "reject" {
		next = ds.RecommendationRejected
	}

	rec, err := h.Repository.ApplyRecommendation(c.Request.Context(), uint(id), next)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			h.errorResponse(c, http.StatusNotFound, "Recommendation not found")
		case errors.Is(err, repository.ErrNotPending):
			h.errorResponse(c, http.StatusConflict, "Recommendation is no longer pending")
		default:
			logrus.Error("Error applying recommendation: ", err)
			h.errorResponse(c, http.StatusInternalServerError, "Error applying recommendation")
		}
		return
	}

	c.JSON(http.StatusOK, toRecommendationResponse(*rec))
}
