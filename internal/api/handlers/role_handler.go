package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillatlas/skillatlas/internal/models"
	pgrepo "github.com/skillatlas/skillatlas/internal/repositories/postgres"
	"github.com/skillatlas/skillatlas/internal/services"
)

type RoleHandler struct {
	catalog services.CatalogService
}

func NewRoleHandler(catalog services.CatalogService) *RoleHandler {
	return &RoleHandler{catalog: catalog}
}

func (h *RoleHandler) List(c *gin.Context) {
	roles, err := h.catalog.Roles(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, roles)
}

// RoleDetail is a Role plus the skills it requires, so the detail page
// needs a single round trip.
type RoleDetail struct {
	models.Role
	RequiredSkills []pgrepo.RequiredSkill `json:"requiredSkills"`
}

func (h *RoleHandler) Get(c *gin.Context) {
	role, err := h.catalog.RoleByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	required, err := h.catalog.RequiredSkills(c.Request.Context(), role.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, RoleDetail{Role: *role, RequiredSkills: required})
}

func (h *RoleHandler) Categories(c *gin.Context) {
	categories, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *RoleHandler) Skills(c *gin.Context) {
	skills, err := h.catalog.Skills(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, skills)
}
