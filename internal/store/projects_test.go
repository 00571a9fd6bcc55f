package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-scheduler-backend/internal/model"
)

func TestCreateProjectDefaultsAndValidation(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	p := model.Project{Name: "Expo Pavilion"}
	require.NoError(t, s.CreateProject(ctx, &p))
	assert.Equal(t, model.StatusConfirmed, p.Status)
	assert.Equal(t, model.EntityAGJ, p.Entity)
	assert.False(t, p.Archived)

	err := s.CreateProject(ctx, &model.Project{Name: "  "})
	assert.True(t, IsValidation(err))

	err = s.CreateProject(ctx, &model.Project{Name: "Bad Status", Status: "!!"})
	assert.True(t, IsValidation(err))

	err = s.CreateProject(ctx, &model.Project{Name: "Bad Entity", Entity: "XX"})
	assert.True(t, IsValidation(err))
}

func TestUpdateProject(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	p := mustProject(t, s, "Expo Pavilion")

	updated, err := s.UpdateProject(ctx, p.ID, ProjectPatch{
		NameEn: strp("Expo Pavilion EN"),
		Client: strp("Expo Committee"),
		Status: strp(model.StatusNiceToHave),
		Entity: strp(model.EntityAP),
		Notes:  strp("second round of talks"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Expo Pavilion EN", updated.NameEn)
	assert.Equal(t, "Expo Committee", updated.Client)
	assert.Equal(t, model.StatusNiceToHave, updated.Status)
	assert.Equal(t, model.EntityAP, updated.Entity)

	_, err = s.UpdateProject(ctx, p.ID, ProjectPatch{Status: strp("??")})
	assert.True(t, IsValidation(err))

	_, err = s.UpdateProject(ctx, p.ID, ProjectPatch{Name: strp("")})
	assert.True(t, IsValidation(err))

	_, err = s.UpdateProject(ctx, 9999, ProjectPatch{Notes: strp("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListProjectsFilters(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	expo := mustProject(t, s, "Expo Pavilion")
	_, err := s.UpdateProject(ctx, expo.ID, ProjectPatch{NameEn: strp("World Expo")})
	require.NoError(t, err)
	museum := mustProject(t, s, "City Museum")
	_, err = s.UpdateProject(ctx, museum.ID, ProjectPatch{Status: strp(model.StatusMustWin)})
	require.NoError(t, err)
	retired := mustProject(t, s, "Old Castle Tour")
	_, err = s.UpdateProject(ctx, retired.ID, ProjectPatch{Archived: boolp(true)})
	require.NoError(t, err)

	// Archived projects stay out of the default listing.
	projects, err := s.ListProjects(ctx, ProjectFilter{})
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "City Museum", projects[0].Name)
	assert.Equal(t, "Expo Pavilion", projects[1].Name)

	projects, err = s.ListProjects(ctx, ProjectFilter{IncludeArchived: true})
	require.NoError(t, err)
	assert.Len(t, projects, 3)

	projects, err = s.ListProjects(ctx, ProjectFilter{Statuses: []string{model.StatusMustWin}})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "City Museum", projects[0].Name)

	// Search is case-insensitive and covers the English name.
	projects, err = s.ListProjects(ctx, ProjectFilter{Query: "world EXPO"})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Expo Pavilion", projects[0].Name)

	// Venues of a project's deployments are searchable too.
	dt := mustDeviceType(t, s, "Audio Guide", 100, 0)
	mustDeployment(t, s, museum.ID, dt.ID, "Impressionist Hall", date(2024, 1, 1), date(2024, 1, 7), 3)
	projects, err = s.ListProjects(ctx, ProjectFilter{Query: "impressionist"})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "City Museum", projects[0].Name)
}

func TestDeleteProjectCascades(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()

	dt := mustDeviceType(t, s, "Audio Guide", 100, 0)
	doomed := mustProject(t, s, "Expo Pavilion")
	kept := mustProject(t, s, "City Museum")

	mustDeployment(t, s, doomed.ID, dt.ID, "Pavilion A", date(2024, 1, 1), date(2024, 1, 21), 5)
	mustDeployment(t, s, doomed.ID, dt.ID, "Pavilion B", date(2024, 2, 5), date(2024, 2, 18), 3)
	survivor := mustDeployment(t, s, kept.ID, dt.ID, "West Wing", date(2024, 1, 1), date(2024, 1, 7), 2)

	require.NoError(t, s.DeleteProject(ctx, doomed.ID))

	_, err := s.GetProject(ctx, doomed.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var deployments, allocations int64
	db.Model(&model.Deployment{}).Where("project_id = ?", doomed.ID).Count(&deployments)
	assert.Zero(t, deployments)
	db.Model(&model.WeeklyAllocation{}).Count(&allocations)
	assert.Equal(t, int64(1), allocations, "only the surviving deployment's week remains")

	allocs, err := s.ListAllocations(ctx, survivor.ID)
	require.NoError(t, err)
	assert.Len(t, allocs, 1)

	assert.ErrorIs(t, s.DeleteProject(ctx, doomed.ID), ErrNotFound)
}
