package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"fleet-scheduler-backend/internal/store"
	"fleet-scheduler-backend/internal/week"
)

// usageRowResponse is one (week, device type) cell of the usage grid.
type usageRowResponse struct {
	WeekStart      string         `json:"week_start"`
	DeviceTypeID   int64          `json:"device_type_id"`
	DeviceTypeName string         `json:"device_type_name"`
	TotalFleet     int            `json:"total_fleet"`
	UnderRepair    int            `json:"under_repair"`
	TotalInUse     int            `json:"total_in_use"`
	Available      int            `json:"available"`
	Severity       store.Severity `json:"severity"`
}

func newUsageRowResponse(r store.UsageRow) usageRowResponse {
	return usageRowResponse{
		WeekStart:      formatDate(r.WeekStart),
		DeviceTypeID:   r.DeviceTypeID,
		DeviceTypeName: r.DeviceTypeName,
		TotalFleet:     r.TotalFleet,
		UnderRepair:    r.UnderRepair,
		TotalInUse:     r.TotalInUse,
		Available:      r.Available,
		Severity:       r.Severity(),
	}
}

func newUsageRowResponses(rows []store.UsageRow) []usageRowResponse {
	out := make([]usageRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, newUsageRowResponse(r))
	}
	return out
}

// GetUsage handles the GET /api/usage request. Both window bounds are
// required; device_type_id narrows to one type.
func (h *Handler) GetUsage(c *gin.Context) {
	fromParam, toParam := c.Query("from"), c.Query("to")
	if fromParam == "" || toParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to are required (YYYY-MM-DD)"})
		return
	}
	from, ok := parseDate(c, "from", fromParam)
	if !ok {
		return
	}
	to, ok := parseDate(c, "to", toParam)
	if !ok {
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must not precede from"})
		return
	}

	var deviceTypeID int64
	if v := c.Query("device_type_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid device_type_id"})
			return
		}
		deviceTypeID = id
	}

	rows, err := h.store.UsageByWeek(c.Request.Context(), from, to, deviceTypeID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUsageRowResponses(rows))
}

// GetDashboard handles the GET /api/dashboard request: the current
// week's position for every device type, including the ones with
// nothing out, plus the next four weeks of scheduled usage.
func (h *Handler) GetDashboard(c *gin.Context) {
	monday := week.MondayOf(time.Now().UTC())

	types, err := h.store.ListDeviceTypes(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	rows, err := h.store.UsageByWeek(c.Request.Context(), monday, monday, 0)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	rowMap := make(map[int64]store.UsageRow, len(rows))
	for _, r := range rows {
		rowMap[r.DeviceTypeID] = r
	}

	responses := make([]usageRowResponse, 0, len(types))
	for _, dt := range types {
		r, ok := rowMap[dt.ID]
		if !ok {
			// Nothing allocated this week, the whole workable fleet is free.
			r = store.UsageRow{
				WeekStart:      monday,
				DeviceTypeID:   dt.ID,
				DeviceTypeName: dt.Name,
				TotalFleet:     dt.TotalFleet,
				UnderRepair:    dt.UnderRepair,
				Available:      dt.TotalFleet - dt.UnderRepair,
			}
		}
		responses = append(responses, newUsageRowResponse(r))
	}

	upcoming, err := h.store.UsageByWeek(c.Request.Context(), monday, monday.AddDate(0, 0, 21), 0)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"week_start": formatDate(monday),
		"fleet":      responses,
		"upcoming":   newUsageRowResponses(upcoming),
	})
}

// GetForecast handles the GET /api/forecast request: every warning or
// shortage cell in the coming weeks, the same scan the background
// monitor alerts on.
func (h *Handler) GetForecast(c *gin.Context) {
	weeks := 12
	if v := c.Query("weeks"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 104 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "weeks must be between 1 and 104"})
			return
		}
		weeks = n
	}

	from := week.MondayOf(time.Now().UTC())
	to := from.AddDate(0, 0, 7*(weeks-1))

	rows, err := h.store.UsageByWeek(c.Request.Context(), from, to, 0)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	flagged := make([]usageRowResponse, 0)
	for _, r := range rows {
		if r.Severity() != store.SeverityOK {
			flagged = append(flagged, newUsageRowResponse(r))
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"from":  formatDate(from),
		"to":    formatDate(to),
		"rows":  flagged,
		"total": len(flagged),
	})
}
