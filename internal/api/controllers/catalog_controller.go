package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vipgate/internal/models/request_models"
	"vipgate/internal/services"
	"vipgate/pkg/utils"
)

type CatalogController struct {
	catalogService services.CatalogService
}

func NewCatalogController(catalogService services.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

// CreatePlan godoc
// @Summary Create a subscription plan under a bot
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Bot ID"
// @Param request body request_models.PlanRequest true "Plan Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /bots/{id}/plans [post]
func (ct *CatalogController) CreatePlan(c *gin.Context) {
	var request request_models.PlanRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	plan, err := ct.catalogService.CreatePlan(c.Request.Context(), c.GetString("operator_id"), c.Param("id"), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Plan created successfully")
}

// ListPlans godoc
// @Summary List all plans of a bot
// @Tags Catalog
// @Produce json
// @Param id path string true "Bot ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /bots/{id}/plans [get]
func (ct *CatalogController) ListPlans(c *gin.Context) {
	plans, err := ct.catalogService.ListPlans(c.Request.Context(), c.GetString("operator_id"), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plans, "")
}

// UpdatePlan godoc
// @Summary Update a plan
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Bot ID"
// @Param planId path string true "Plan ID"
// @Param request body request_models.PlanRequest true "Plan Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /bots/{id}/plans/{planId} [put]
func (ct *CatalogController) UpdatePlan(c *gin.Context) {
	var request request_models.PlanRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	plan, err := ct.catalogService.UpdatePlan(c.Request.Context(), c.GetString("operator_id"), c.Param("id"), c.Param("planId"), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Plan updated successfully")
}

// DeletePlan godoc
// @Summary Delete a plan
// @Tags Catalog
// @Produce json
// @Param id path string true "Bot ID"
// @Param planId path string true "Plan ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /bots/{id}/plans/{planId} [delete]
func (ct *CatalogController) DeletePlan(c *gin.Context) {
	if err := ct.catalogService.DeletePlan(c.Request.Context(), c.GetString("operator_id"), c.Param("id"), c.Param("planId")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Plan deleted successfully")
}

// CreatePackage godoc
// @Summary Create a one-time package under a bot
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Bot ID"
// @Param request body request_models.PackageRequest true "Package Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /bots/{id}/packages [post]
func (ct *CatalogController) CreatePackage(c *gin.Context) {
	var request request_models.PackageRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	pkg, err := ct.catalogService.CreatePackage(c.Request.Context(), c.GetString("operator_id"), c.Param("id"), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, pkg, "Package created successfully")
}

// ListPackages godoc
// @Summary List all packages of a bot
// @Tags Catalog
// @Produce json
// @Param id path string true "Bot ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /bots/{id}/packages [get]
func (ct *CatalogController) ListPackages(c *gin.Context) {
	pkgs, err := ct.catalogService.ListPackages(c.Request.Context(), c.GetString("operator_id"), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, pkgs, "")
}

// UpdatePackage godoc
// @Summary Update a package
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Bot ID"
// @Param packageId path string true "Package ID"
// @Param request body request_models.PackageRequest true "Package Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /bots/{id}/packages/{packageId} [put]
func (ct *CatalogController) UpdatePackage(c *gin.Context) {
	var request request_models.PackageRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	pkg, err := ct.catalogService.UpdatePackage(c.Request.Context(), c.GetString("operator_id"), c.Param("id"), c.Param("packageId"), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, pkg, "Package updated successfully")
}

// DeletePackage godoc
// @Summary Delete a package
// @Tags Catalog
// @Produce json
// @Param id path string true "Bot ID"
// @Param packageId path string true "Package ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /bots/{id}/packages/{packageId} [delete]
func (ct *CatalogController) DeletePackage(c *gin.Context) {
	if err := ct.catalogService.DeletePackage(c.Request.Context(), c.GetString("operator_id"), c.Param("id"), c.Param("packageId")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Package deleted successfully")
}
