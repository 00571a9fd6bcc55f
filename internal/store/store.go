// Package store persists the planning data (device types, projects,
// deployments, weekly allocations) and computes the fleet usage grid.
// All multi-row mutations run inside a single transaction.
package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fleet-scheduler-backend/internal/model"
)

// Store is the persistence interface the API handlers and the shortage
// monitor talk to.
type Store interface {
	// DB exposes the underlying handle for the parts of the system that
	// need raw access, such as the push subscription handlers.
	DB() *gorm.DB

	// Device types.
	ListDeviceTypes(ctx context.Context) ([]model.DeviceType, error)
	GetDeviceType(ctx context.Context, id int64) (*model.DeviceType, error)
	CreateDeviceType(ctx context.Context, dt *model.DeviceType) error
	UpdateDeviceType(ctx context.Context, id int64, patch DeviceTypePatch) (*model.DeviceType, error)
	DeleteDeviceType(ctx context.Context, id int64) error

	// Projects.
	ListProjects(ctx context.Context, f ProjectFilter) ([]model.Project, error)
	GetProject(ctx context.Context, id int64) (*model.Project, error)
	CreateProject(ctx context.Context, p *model.Project) error
	UpdateProject(ctx context.Context, id int64, patch ProjectPatch) (*model.Project, error)
	// DeleteProject removes the project together with its deployments
	// and their weekly allocations.
	DeleteProject(ctx context.Context, id int64) error

	// Deployments.
	ListDeployments(ctx context.Context, f DeploymentFilter) ([]DeploymentRow, error)
	GetDeployment(ctx context.Context, id int64) (*model.Deployment, error)
	// CreateDeployment validates the deployment, inserts it and seeds
	// one weekly allocation per Monday of its date range, all in one
	// transaction. On success d carries the assigned ID and the seeded
	// allocations.
	CreateDeployment(ctx context.Context, d *model.Deployment) error
	// UpdateDeployment applies the patch to the deployment row only.
	// Existing weekly allocations are deliberately left untouched, even
	// when the date range moves.
	UpdateDeployment(ctx context.Context, id int64, patch DeploymentPatch) (*model.Deployment, error)
	// DeleteDeployment removes the deployment and its allocations.
	DeleteDeployment(ctx context.Context, id int64) error

	// Weekly allocations.
	ListAllocations(ctx context.Context, deploymentID int64) ([]model.WeeklyAllocation, error)
	// SetAllocation overrides the device count of a single week.
	SetAllocation(ctx context.Context, id int64, count int) (*model.WeeklyAllocation, error)
	// BulkSetAllocationsFrom overrides the count of every allocation of
	// the deployment whose week starts on or after from. It returns the
	// number of rows changed.
	BulkSetAllocationsFrom(ctx context.Context, deploymentID int64, count int, from time.Time) (int64, error)
	// RegenerateAllocations drops the deployment's allocations and
	// seeds a fresh set covering [start, end] at defaultCount per week.
	RegenerateAllocations(ctx context.Context, deploymentID int64, start, end time.Time, defaultCount int) ([]model.WeeklyAllocation, error)

	// UsageByWeek aggregates allocations per (week, device type) over
	// [from, to] and joins in the fleet counts. Rows are ordered by
	// week then device type name. Pass deviceTypeID = 0 for all types.
	UsageByWeek(ctx context.Context, from, to time.Time, deviceTypeID int64) ([]UsageRow, error)
}

type gormStore struct {
	db *gorm.DB
}

// NewGormStore wraps a gorm handle in the Store interface.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}
