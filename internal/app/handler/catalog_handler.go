package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/catalog"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/ds"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/dto"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/pricing"
	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ============ Tier catalog ============

// GetTiers returns the license tier catalog
// @Summary List license tiers
// @Description Returns the ordered tier catalog. With a tenant_id query the response carries the unit price effective right now in that tenant's pricing scope; tiers with no effective quotation come back without a price.
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param tenant_id query string false "Tenant UUID for price resolution"
// @Success 200 {object} dto.TierListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/catalog/tiers [get]
func (h *APIHandler) GetTiers(c *gin.Context) {
	var scope *pricing.Scope

	if raw := c.Query("tenant_id"); raw != "" {
		tenantID, err := uuid.Parse(raw)
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

		scope = &pricing.Scope{
			Market:   tenant.Market,
			Currency: tenant.Currency,
			Segment:  tenant.Segment,
		}
	}

	resolver := pricing.NewCatalogResolver(h.Repository)
	asOf := time.Now()

	response := dto.TierListResponse{}
	for _, t := range catalog.Tiers() {
		tier := dto.TierResponse{
			SkuID: t.SkuID,
			Name:  t.Name,
			Rank:  t.Rank,
		}

		if scope != nil {
			price, err := resolver.Effective(c.Request.Context(), t.SkuID, *scope, asOf)
			switch {
			case err == nil:
				tier.UnitPrice = &price
			case errors.As(err, new(*pricing.ErrNoQuotation)):
				// no effective quotation, price stays omitted
			default:
				logrus.Error("Error resolving tier price: ", err)
				h.errorResponse(c, http.StatusInternalServerError, "Error resolving tier price")
				return
			}
		}

		response.Tiers = append(response.Tiers, tier)
	}

	c.JSON(http.StatusOK, response)
}

// CreateQuotation adds a price catalog row
// @Summary Add a price quotation
// @Description Inserts a new temporal price row for a SKU. The validity window is half open: the price is effective from effective_start inclusive to effective_end exclusive.
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateQuotationRequest true "Quotation data"
// @Success 201 {object} dto.QuotationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/catalog/quotations [post]
func (h *APIHandler) CreateQuotation(c *gin.Context) {
	var req dto.CreateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Invalid quotation data")
		return
	}

	if !req.EffectiveStart.Before(req.EffectiveEnd) {
		h.errorResponse(c, http.StatusBadRequest, "effective_start must be before effective_end")
		return
	}
	if req.UnitPrice.Sign() < 0 {
		h.errorResponse(c, http.StatusBadRequest, "unit_price must not be negative")
		return
	}

	q := ds.PriceQuotation{
		SkuID:          req.SkuID,
		Market:         req.Market,
		Currency:       req.Currency,
		Segment:        req.Segment,
		UnitPrice:      req.UnitPrice,
		EffectiveStart: req.EffectiveStart,
		EffectiveEnd:   req.EffectiveEnd,
	}
	if err := h.Repository.CreateQuotation(c.Request.Context(), &q); err != nil {
		logrus.Error("Error creating quotation: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Error creating quotation")
		return
	}

	c.JSON(http.StatusCreated, dto.QuotationResponse{
		ID:             q.ID,
		SkuID:          q.SkuID,
		Market:         q.Market,
		Currency:       q.Currency,
		Segment:        q.Segment,
		UnitPrice:      q.UnitPrice,
		EffectiveStart: q.EffectiveStart,
		EffectiveEnd:   q.EffectiveEnd,
	})
}
