package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"fleet-scheduler-backend/internal/model"
	"fleet-scheduler-backend/internal/store"
	"fleet-scheduler-backend/internal/week"
)

// deploymentResponse is the flattened structure for a single deployment,
// with dates rendered as YYYY-MM-DD. Allocations appear only on the
// paths that load them (get, create).
type deploymentResponse struct {
	model.Deployment
	StartDate   string               `json:"start_date"`
	EndDate     string               `json:"end_date"`
	Allocations []allocationResponse `json:"allocations,omitempty"`
}

func newDeploymentResponse(d *model.Deployment) deploymentResponse {
	resp := deploymentResponse{
		Deployment:  *d,
		StartDate:   formatDate(d.StartDate),
		EndDate:     formatDate(d.EndDate),
		Allocations: make([]allocationResponse, 0, len(d.Allocations)),
	}
	for _, a := range d.Allocations {
		resp.Allocations = append(resp.Allocations, newAllocationResponse(a))
	}
	return resp
}

// deploymentRowResponse is one row of the deployment timeline, joined
// with its project and device type display fields.
type deploymentRowResponse struct {
	ID                 int64  `json:"id"`
	ProjectID          int64  `json:"project_id"`
	Venue              string `json:"venue"`
	Location           string `json:"location"`
	StartDate          string `json:"start_date"`
	EndDate            string `json:"end_date"`
	DeviceTypeID       int64  `json:"device_type_id"`
	DefaultDeviceCount int    `json:"default_device_count"`
	AppType            string `json:"app_type"`
	Notes              string `json:"notes"`
	ProjectName        string `json:"project_name"`
	ProjectNameEn      string `json:"project_name_en"`
	ProjectStatus      string `json:"project_status"`
	Client             string `json:"client"`
	DeviceTypeName     string `json:"device_type_name"`
	DeviceTypeColor    string `json:"device_type_color"`
}

func newDeploymentRowResponses(rows []store.DeploymentRow) []deploymentRowResponse {
	out := make([]deploymentRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, deploymentRowResponse{
			ID:                 r.ID,
			ProjectID:          r.ProjectID,
			Venue:              r.Venue,
			Location:           r.Location,
			StartDate:          formatDate(r.StartDate),
			EndDate:            formatDate(r.EndDate),
			DeviceTypeID:       r.DeviceTypeID,
			DefaultDeviceCount: r.DefaultDeviceCount,
			AppType:            r.AppType,
			Notes:              r.Notes,
			ProjectName:        r.ProjectName,
			ProjectNameEn:      r.ProjectNameEn,
			ProjectStatus:      r.ProjectStatus,
			Client:             r.Client,
			DeviceTypeName:     r.DeviceTypeName,
			DeviceTypeColor:    r.DeviceTypeColor,
		})
	}
	return out
}

func deploymentFilterFromQuery(c *gin.Context) (store.DeploymentFilter, bool) {
	filter := store.DeploymentFilter{
		IncludeArchived: c.Query("include_archived") == "true",
		Statuses:        c.QueryArray("status"),
		Query:           c.Query("q"),
	}
	if v := c.Query("project_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project_id"})
			return filter, false
		}
		filter.ProjectID = id
	}
	if v := c.Query("device_type_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid device_type_id"})
			return filter, false
		}
		filter.DeviceTypeID = id
	}
	if v := c.Query("from"); v != "" {
		d, ok := parseDate(c, "from", v)
		if !ok {
			return filter, false
		}
		filter.From = d
	}
	if v := c.Query("to"); v != "" {
		d, ok := parseDate(c, "to", v)
		if !ok {
			return filter, false
		}
		filter.To = d
	}
	return filter, true
}

// ListDeployments handles the GET /api/deployments request.
func (h *Handler) ListDeployments(c *gin.Context) {
	filter, ok := deploymentFilterFromQuery(c)
	if !ok {
		return
	}

	rows, err := h.store.ListDeployments(c.Request.Context(), filter)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, newDeploymentRowResponses(rows))
}

// ListActiveDeployments handles the GET /api/deployments/active request,
// returning the deployments whose date range covers today.
func (h *Handler) ListActiveDeployments(c *gin.Context) {
	today := week.Truncate(time.Now().UTC())
	rows, err := h.store.ListDeployments(c.Request.Context(), store.DeploymentFilter{
		From: today,
		To:   today,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, newDeploymentRowResponses(rows))
}

// GetDeployment handles the GET /api/deployments/{id} request.
func (h *Handler) GetDeployment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid deployment ID"})
		return
	}

	d, err := h.store.GetDeployment(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, newDeploymentResponse(d))
}

type createDeploymentRequest struct {
	ProjectID          int64  `json:"project_id" binding:"required"`
	Venue              string `json:"venue" binding:"required"`
	Location           string `json:"location"`
	StartDate          string `json:"start_date" binding:"required"`
	EndDate            string `json:"end_date" binding:"required"`
	DeviceTypeID       int64  `json:"device_type_id" binding:"required"`
	DefaultDeviceCount int    `json:"default_device_count" binding:"required"`
	AppType            string `json:"app_type"`
	Notes              string `json:"notes"`
}

// CreateDeployment handles the POST /api/deployments request. The
// deployment's weekly allocations are seeded in the same transaction and
// returned with it.
func (h *Handler) CreateDeployment(c *gin.Context) {
	var req createDeploymentRequest
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

	d := model.Deployment{
		ProjectID:          req.ProjectID,
		Venue:              req.Venue,
		Location:           req.Location,
		StartDate:          start,
		EndDate:            end,
		DeviceTypeID:       req.DeviceTypeID,
		DefaultDeviceCount: req.DefaultDeviceCount,
		AppType:            req.AppType,
		Notes:              req.Notes,
	}
	if err := h.store.CreateDeployment(c.Request.Context(), &d); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newDeploymentResponse(&d))
}

type updateDeploymentRequest struct {
	Venue              *string `json:"venue"`
	Location           *string `json:"location"`
	StartDate          *string `json:"start_date"`
	EndDate            *string `json:"end_date"`
	DeviceTypeID       *int64  `json:"device_type_id"`
	DefaultDeviceCount *int    `json:"default_device_count"`
	AppType            *string `json:"app_type"`
	Notes              *string `json:"notes"`
}

// UpdateDeployment handles the PATCH /api/deployments/{id} request. Only
// the deployment row changes; the allocation grid keeps its values until
// a regenerate is requested explicitly.
func (h *Handler) UpdateDeployment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid deployment ID"})
		return
	}

	var req updateDeploymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := store.DeploymentPatch{
		Venue:              req.Venue,
		Location:           req.Location,
		DeviceTypeID:       req.DeviceTypeID,
		DefaultDeviceCount: req.DefaultDeviceCount,
		AppType:            req.AppType,
		Notes:              req.Notes,
	}
	if req.StartDate != nil {
		d, ok := parseDate(c, "start_date", *req.StartDate)
		if !ok {
			return
		}
		patch.StartDate = &d
	}
	if req.EndDate != nil {
		d, ok := parseDate(c, "end_date", *req.EndDate)
		if !ok {
			return
		}
		patch.EndDate = &d
	}

	d, err := h.store.UpdateDeployment(c.Request.Context(), id, patch)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, newDeploymentResponse(d))
}

// DeleteDeployment handles the DELETE /api/deployments/{id} request.
func (h *Handler) DeleteDeployment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid deployment ID"})
		return
	}

	if err := h.store.DeleteDeployment(c.Request.Context(), id); err != nil {
		respondStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
