package handler

import (
	"errors"
	"net/http"

	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/dto"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ============ Tenants ============

// GetTenants lists every onboarded tenant
// @Summary List tenants
// @Description Returns every tenant the service knows about
// @Tags Tenants
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.TenantListResponse
// @Router /api/tenants [get]
func (h *APIHandler) GetTenants(c *gin.Context) {
	tenants, err := h.Repository.GetTenants(c.Request.Context())
	if err != nil {
		logrus.Error("Error loading tenants: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Error loading tenants")
		return
	}

	response := dto.TenantListResponse{Total: len(tenants)}
	for _, t := range tenants {
		response.Tenants = append(response.Tenants, dto.TenantResponse{
			ID:       t.ID,
			Name:     t.Name,
			Market:   t.Market,
			Currency: t.Currency,
			Segment:  t.Segment,
		})
	}

	c.JSON(http.StatusOK, response)
}

// GetTenantOrgUsers lists the directory of a tenant
// @Summary List users of a tenant
// @Description Returns the tenant's directory with the currently assigned SKU of each user
// @Tags Tenants
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tenant UUID"
// @Success 200 {object} dto.OrgUserListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/tenants/{id}/users [get]
func (h *APIHandler) GetTenantOrgUsers(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Invalid tenant ID")
		return
	}

	if _, err := h.Repository.GetTenantByID(c.Request.Context(), tenantID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.errorResponse(c, http.StatusNotFound, "Tenant not found")
			return
		}
		logrus.Error("Error loading tenant: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Error loading tenant")
		return
	}

	users, err := h.Repository.ListOrgUsers(c.Request.Context(), tenantID)
	if err != nil {
		logrus.Error("Error loading users: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Error loading users")
		return
	}

	response := dto.OrgUserListResponse{Total: len(users)}
	for _, u := range users {
		sku, err := h.Repository.CurrentSku(c.Request.Context(), u.ID)
		if err != nil {
			logrus.Error("Error loading license assignment: ", err)
			h.errorResponse(c, http.StatusInternalServerError, "Error loading license assignment")
			return
		}
		response.Users = append(response.Users, dto.OrgUserResponse{
			ID:                u.ID,
			UserPrincipalName: u.UserPrincipalName,
			DisplayName:       u.DisplayName,
			AccountEnabled:    u.AccountEnabled,
			CurrentSkuID:      sku,
		})
	}

	c.JSON(http.StatusOK, response)
}
