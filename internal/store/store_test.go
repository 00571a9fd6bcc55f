package store

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"fleet-scheduler-backend/internal/model"
)

// newTestStore opens a private in-memory SQLite database for the test,
// migrates the schema and returns the store plus the raw handle for
// direct assertions. Naming the database after the test keeps parallel
// tests from sharing state through the shared cache.
func newTestStore(t *testing.T) (Store, *gorm.DB) {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&model.DeviceType{},
		&model.Project{},
		&model.Deployment{},
		&model.WeeklyAllocation{},
		&model.PushSubscription{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return NewGormStore(db), db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func strp(s string) *string    { return &s }
func intp(n int) *int          { return &n }
func i64p(n int64) *int64      { return &n }
func boolp(b bool) *bool       { return &b }
func timep(t time.Time) *time.Time { return &t }

func mustDeviceType(t *testing.T, s Store, name string, total, repair int) model.DeviceType {
	t.Helper()
	dt := model.DeviceType{Name: name, TotalFleet: total, UnderRepair: repair}
	require.NoError(t, s.CreateDeviceType(context.Background(), &dt))
	return dt
}

func mustProject(t *testing.T, s Store, name string) model.Project {
	t.Helper()
	p := model.Project{Name: name}
	require.NoError(t, s.CreateProject(context.Background(), &p))
	return p
}

func mustDeployment(t *testing.T, s Store, projectID, deviceTypeID int64, venue string, start, end time.Time, count int) model.Deployment {
	t.Helper()
	d := model.Deployment{
		ProjectID:          projectID,
		DeviceTypeID:       deviceTypeID,
		Venue:              venue,
		StartDate:          start,
		EndDate:            end,
		DefaultDeviceCount: count,
	}
	require.NoError(t, s.CreateDeployment(context.Background(), &d))
	return d
}
