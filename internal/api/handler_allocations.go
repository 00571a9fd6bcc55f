package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fleet-scheduler-backend/internal/model"
)

// allocationResponse is the flattened structure for one allocation week.
type allocationResponse struct {
	model.WeeklyAllocation
	WeekStart string `json:"week_start"`
}

func newAllocationResponse(a model.WeeklyAllocation) allocationResponse {
	return allocationResponse{
		WeeklyAllocation: a,
		WeekStart:        formatDate(a.WeekStart),
	}
}

func newAllocationResponses(allocs []model.WeeklyAllocation) []allocationResponse {
	out := make([]allocationResponse, 0, len(allocs))
	for _, a := range allocs {
		out = append(out, newAllocationResponse(a))
	}
	return out
}

// ListAllocations handles the GET /api/deployments/{id}/allocations
// request, ordered by week.
func (h *Handler) ListAllocations(c *gin.Context) {
	deploymentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid deployment ID"})
		return
	}

	allocs, err := h.store.ListAllocations(c.Request.Context(), deploymentID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, newAllocationResponses(allocs))
}

type setAllocationRequest struct {
	DeviceCount *int `json:"device_count" binding:"required"`
}

// SetAllocation handles the PATCH /api/allocations/{id} request,
// overriding the device count of a single week.
func (h *Handler) SetAllocation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid allocation ID"})
		return
	}

	var req setAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	alloc, err := h.store.SetAllocation(c.Request.Context(), id, *req.DeviceCount)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, newAllocationResponse(*alloc))
}

type bulkSetAllocationsRequest struct {
	DeviceCount *int   `json:"device_count" binding:"required"`
	FromWeek    string `json:"from_week" binding:"required"`
}

// BulkSetAllocations handles the POST
// /api/deployments/{id}/allocations/bulk_set request, overriding every
// week of the deployment from the given week onward.
func (h *Handler) BulkSetAllocations(c *gin.Context) {
	deploymentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid deployment ID"})
		return
	}

	var req bulkSetAllocationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	from, ok := parseDate(c, "from_week", req.FromWeek)
	if !ok {
		return
	}

	changed, err := h.store.BulkSetAllocationsFrom(c.Request.Context(), deploymentID, *req.DeviceCount, from)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": changed})
}

type regenerateAllocationsRequest struct {
	StartDate          string `json:"start_date" binding:"required"`
	EndDate            string `json:"end_date" binding:"required"`
	DefaultDeviceCount int    `json:"default_device_count" binding:"required"`
}

// RegenerateAllocations handles the POST
// /api/deployments/{id}/allocations/regenerate request, replacing the
// whole grid with a fresh seed over the given range.
func (h *Handler) RegenerateAllocations(c *gin.Context) {
	deploymentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid deployment ID"})
		return
	}

	var req regenerateAllocationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, ok := parseDate(c, "start_date", req.StartDate)
	if !ok {
		return
	}
	end, ok := parseDate(c, "end_date", req.EndDate)
	if !ok {
		return
	}

	allocs, err := h.store.RegenerateAllocations(c.Request.Context(), deploymentID, start, end, req.DefaultDeviceCount)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, newAllocationResponses(allocs))
}
