package store

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"fleet-scheduler-backend/internal/model"
)

func (s *gormStore) ListProjects(ctx context.Context, f ProjectFilter) ([]model.Project, error) {
	q := s.db.WithContext(ctx).Model(&model.Project{})
	if !f.IncludeArchived {
		q = q.Where("archived = ?", false)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}
	if needle := searchNeedle(f.Query); needle != "" {
		venues := s.db.Model(&model.Deployment{}).Select("project_id").
			Where("LOWER(venue) LIKE ? OR LOWER(location) LIKE ?", needle, needle)
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(name_en) LIKE ? OR LOWER(client) LIKE ? OR LOWER(notes) LIKE ? OR id IN (?)",
			needle, needle, needle, needle, venues,
		)
	}
	var projects []model.Project
	if err := q.Order("name").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func searchNeedle(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return ""
	}
	return "%" + strings.ToLower(query) + "%"
}

func (s *gormStore) GetProject(ctx context.Context, id int64) (*model.Project, error) {
	var p model.Project
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *gormStore) CreateProject(ctx context.Context, p *model.Project) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return invalidf("name", "must not be empty")
	}
	if p.Status == "" {
		p.Status = model.StatusConfirmed
	}
	if !model.ValidStatus(p.Status) {
		return invalidf("status", "unknown status code %q", p.Status)
	}
	if p.Entity == "" {
		p.Entity = model.EntityAGJ
	}
	if !model.ValidEntity(p.Entity) {
		return invalidf("entity", "unknown entity %q", p.Entity)
	}
	return translate(s.db.WithContext(ctx).Create(p).Error)
}

func (s *gormStore) UpdateProject(ctx context.Context, id int64, patch ProjectPatch) (*model.Project, error) {
	var p model.Project
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, id).Error; err != nil {
			return translate(err)
		}
		if patch.Name != nil {
			name := strings.TrimSpace(*patch.Name)
			if name == "" {
				return invalidf("name", "must not be empty")
			}
			p.Name = name
		}
		if patch.NameEn != nil {
			p.NameEn = *patch.NameEn
		}
		if patch.Client != nil {
			p.Client = *patch.Client
		}
		if patch.Status != nil {
			if !model.ValidStatus(*patch.Status) {
				return invalidf("status", "unknown status code %q", *patch.Status)
			}
			p.Status = *patch.Status
		}
		if patch.Entity != nil {
			if !model.ValidEntity(*patch.Entity) {
				return invalidf("entity", "unknown entity %q", *patch.Entity)
			}
			p.Entity = *patch.Entity
		}
		if patch.Notes != nil {
			p.Notes = *patch.Notes
		}
		if patch.Archived != nil {
			p.Archived = *patch.Archived
		}
		return translate(tx.Save(&p).Error)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProject cascades over the project's deployments and their weekly
// allocations so no orphan rows survive, regardless of whether the
// backing database enforces foreign keys.
func (s *gormStore) DeleteProject(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		deployments := tx.Model(&model.Deployment{}).Select("id").Where("project_id = ?", id)
		if err := tx.Where("deployment_id IN (?)", deployments).Delete(&model.WeeklyAllocation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.Deployment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Project{}, id)
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
