package store

import "time"

// ProjectFilter narrows ListProjects. Zero value lists every live project.
type ProjectFilter struct {
	// IncludeArchived keeps archived projects in the result.
	IncludeArchived bool
	// Statuses restricts to the given status codes when non-empty.
	Statuses []string
	// Query is a case-insensitive substring match over project name,
	// English name, client, notes and the venues of the project's
	// deployments.
	Query string
}

// DeploymentFilter narrows ListDeployments. Zero value lists every
// deployment of every live project.
type DeploymentFilter struct {
	ProjectID    int64
	DeviceTypeID int64
	// IncludeArchived keeps deployments of archived projects in the
	// result.
	IncludeArchived bool
	// Statuses restricts by the owning project's status code.
	Statuses []string
	// Query is a case-insensitive substring match over venue, location
	// and the owning project's names.
	Query string
	// From and To select deployments whose date range overlaps
	// [From, To]. Either bound may be zero to leave that side open.
	From time.Time
	To   time.Time
}

// DeploymentRow is a deployment joined with the display fields of its
// project and device type, as the timeline views consume it.
type DeploymentRow struct {
	ID                 int64
	ProjectID          int64
	Venue              string
	Location           string
	StartDate          time.Time
	EndDate            time.Time
	DeviceTypeID       int64
	DefaultDeviceCount int
	AppType            string
	Notes              string
	ProjectName        string
	ProjectNameEn      string
	ProjectStatus      string
	Client             string
	DeviceTypeName     string
	DeviceTypeColor    string
}

// DeviceTypePatch is a partial update for a device type. Nil fields are
// left untouched.
type DeviceTypePatch struct {
	Name        *string
	TotalFleet  *int
	UnderRepair *int
	Color       *string
}

// ProjectPatch is a partial update for a project. Nil fields are left
// untouched.
type ProjectPatch struct {
	Name     *string
	NameEn   *string
	Client   *string
	Status   *string
	Entity   *string
	Notes    *string
	Archived *bool
}

// DeploymentPatch is a partial update for a deployment. The owning
// project cannot be changed. Nil fields are left untouched. Applying a
// patch never rewrites the deployment's weekly allocations; operators
// resync explicitly via RegenerateAllocations when that is what they
// want.
type DeploymentPatch struct {
	Venue              *string
	Location           *string
	StartDate          *time.Time
	EndDate            *time.Time
	DeviceTypeID       *int64
	DefaultDeviceCount *int
	AppType            *string
	Notes              *string
}

// UsageRow is one (week, device type) cell of the fleet usage grid.
// Available may be negative when the fleet is overcommitted.
type UsageRow struct {
	WeekStart      time.Time
	DeviceTypeID   int64
	DeviceTypeName string
	TotalFleet     int
	UnderRepair    int
	TotalInUse     int
	Available      int
}

// Deficit returns how many devices the week is short, zero when none.
func (r UsageRow) Deficit() int {
	if r.Available < 0 {
		return -r.Available
	}
	return 0
}

// Severity classifies a usage row for alerting and display.
type Severity string

const (
	// SeverityOK means the week has comfortable headroom.
	SeverityOK Severity = "ok"
	// SeverityWarning means availability dropped below a tenth of the
	// total fleet but nothing is missing yet.
	SeverityWarning Severity = "warning"
	// SeverityShortage means more devices are committed than exist.
	SeverityShortage Severity = "shortage"
)

// Severity classifies the row. Shortage wins over warning.
func (r UsageRow) Severity() Severity {
	switch {
	case r.Available < 0:
		return SeverityShortage
	case r.Available*10 < r.TotalFleet:
		return SeverityWarning
	default:
		return SeverityOK
	}
}
