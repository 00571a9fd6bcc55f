package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fleet-scheduler-backend/internal/model"
	"fleet-scheduler-backend/internal/store"
)

// ListDeviceTypes handles the GET /api/device_types request.
func (h *Handler) ListDeviceTypes(c *gin.Context) {
	types, err := h.store.ListDeviceTypes(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, types)
}

type createDeviceTypeRequest struct {
	Name        string `json:"name" binding:"required"`
	TotalFleet  int    `json:"total_fleet"`
	UnderRepair int    `json:"under_repair"`
	Color       string `json:"color"`
}

// CreateDeviceType handles the POST /api/device_types request.
func (h *Handler) CreateDeviceType(c *gin.Context) {
	var req createDeviceTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dt := model.DeviceType{
		Name:        req.Name,
		TotalFleet:  req.TotalFleet,
		UnderRepair: req.UnderRepair,
		Color:       req.Color,
	}
	if err := h.store.CreateDeviceType(c.Request.Context(), &dt); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dt)
}

type updateDeviceTypeRequest struct {
	Name        *string `json:"name"`
	TotalFleet  *int    `json:"total_fleet"`
	UnderRepair *int    `json:"under_repair"`
	Color       *string `json:"color"`
}

// UpdateDeviceType handles the PATCH /api/device_types/{id} request.
func (h *Handler) UpdateDeviceType(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid device type ID"})
		return
	}

	var req updateDeviceTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dt, err := h.store.UpdateDeviceType(c.Request.Context(), id, store.DeviceTypePatch{
		Name:        req.Name,
		TotalFleet:  req.TotalFleet,
		UnderRepair: req.UnderRepair,
		Color:       req.Color,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, dt)
}

// DeleteDeviceType handles the DELETE /api/device_types/{id} request.
func (h *Handler) DeleteDeviceType(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid device type ID"})
		return
	}

	if err := h.store.DeleteDeviceType(c.Request.Context(), id); err != nil {
		respondStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
