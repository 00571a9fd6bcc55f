package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fleet-scheduler-backend/internal/model"
	"fleet-scheduler-backend/internal/store"
)

// ListProjects handles the GET /api/projects request. Archived projects
// only appear with ?include_archived=true; ?status may repeat and ?q
// searches names, client, notes and deployment venues.
func (h *Handler) ListProjects(c *gin.Context) {
	filter := store.ProjectFilter{
		IncludeArchived: c.Query("include_archived") == "true",
		Statuses:        c.QueryArray("status"),
		Query:           c.Query("q"),
	}

	projects, err := h.store.ListProjects(c.Request.Context(), filter)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// GetProject handles the GET /api/projects/{id} request.
func (h *Handler) GetProject(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	p, err := h.store.GetProject(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type createProjectRequest struct {
	Name   string `json:"name" binding:"required"`
	NameEn string `json:"name_en"`
	Client string `json:"client"`
	Status string `json:"status"`
	Entity string `json:"entity"`
	Notes  string `json:"notes"`
}

// CreateProject handles the POST /api/projects request.
func (h *Handler) CreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p := model.Project{
		Name:   req.Name,
		NameEn: req.NameEn,
		Client: req.Client,
		Status: req.Status,
		Entity: req.Entity,
		Notes:  req.Notes,
	}
	if err := h.store.CreateProject(c.Request.Context(), &p); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

type updateProjectRequest struct {
	Name     *string `json:"name"`
	NameEn   *string `json:"name_en"`
	Client   *string `json:"client"`
	Status   *string `json:"status"`
	Entity   *string `json:"entity"`
	Notes    *string `json:"notes"`
	Archived *bool   `json:"archived"`
}

// UpdateProject handles the PATCH /api/projects/{id} request.
func (h *Handler) UpdateProject(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.store.UpdateProject(c.Request.Context(), id, store.ProjectPatch{
		Name:     req.Name,
		NameEn:   req.NameEn,
		Client:   req.Client,
		Status:   req.Status,
		Entity:   req.Entity,
		Notes:    req.Notes,
		Archived: req.Archived,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteProject handles the DELETE /api/projects/{id} request. The
// project's deployments and their allocations go with it.
func (h *Handler) DeleteProject(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	if err := h.store.DeleteProject(c.Request.Context(), id); err != nil {
		respondStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
