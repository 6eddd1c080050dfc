package repositories

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/apperr"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/models"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/services/projects"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/services/search"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/utils"
)

const projectNotFound = "Project not found"

type ProjectRepository struct {
	DB *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{DB: db}
}

func ownerSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "user_name", "email", "first_name", "last_name", "full_name", "profile_pic", "company_name")
}

func (r *ProjectRepository) live(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).Model(&models.Project{}).Where("projects.is_deleted = ?", false)
}

// Create stores the project and links its skills. Skills must already exist.
func (r *ProjectRepository) Create(ctx context.Context, p *models.Project) error {
	err := r.DB.WithContext(ctx).Omit("Skills.*").Create(p).Error
	if isForeignKeyViolation(err) {
		return apperr.NewValidation("Unknown skill or owner", map[string]string{"skills": "exists"})
	}
	return translate(err, "create project", projectNotFound)
}

func (r *ProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var p models.Project
	err := r.live(ctx).
		Preload("Owner", ownerSummary).
		Preload("Skills").
		Preload("Hired", ownerSummary).
		First(&p, "projects.id = ?", id).Error
	if err != nil {
		return nil, translate(err, "find project", projectNotFound)
	}
	return &p, nil
}

func (r *ProjectRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Project, error) {
	var list []models.Project
	err := r.live(ctx).
		Where("owner_id = ?", ownerID).
		Preload("Skills").
		Order("created_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, translate(err, "list owner projects", projectNotFound)
	}
	return list, nil
}

func withSkills(q *gorm.DB, ids []uuid.UUID) *gorm.DB {
	return q.Where("projects.id IN (?)",
		q.Session(&gorm.Session{NewDB: true}).Table("project_skills").Select("project_id").Where("category_id IN ?", ids))
}

func (r *ProjectRepository) List(ctx context.Context, f projects.ListFilter, page utils.PageInfo) ([]models.Project, int64, error) {
	q := r.live(ctx)
	if f.OwnerID != nil {
		q = q.Where("owner_id = ?", *f.OwnerID)
	}
	if f.Progress != "" {
		q = q.Where("progress = ?", f.Progress)
	}
	if f.IsRemote != nil {
		q = q.Where("is_remote = ?", *f.IsRemote)
	}
	if len(f.SkillIDs) > 0 {
		q = withSkills(q, f.SkillIDs)
	}
	return r.page(q, page)
}

func (r *ProjectRepository) page(q *gorm.DB, page utils.PageInfo) ([]models.Project, int64, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err, "count projects", projectNotFound)
	}

	var list []models.Project
	err := q.Preload("Owner", ownerSummary).
		Preload("Skills").
		Order("projects.created_at DESC").
		Limit(page.Limit()).Offset(page.Offset()).
		Find(&list).Error
	if err != nil {
		return nil, 0, translate(err, "list projects", projectNotFound)
	}
	return list, total, nil
}

// Search applies the text-resolved skill ids plus the optional filters.
func (r *ProjectRepository) Search(ctx context.Context, sq search.Query, page utils.PageInfo) ([]models.Project, int64, error) {
	q := withSkills(r.live(ctx), sq.SkillIDs)
	if sq.BudgetMin != nil {
		q = q.Where("budget_max >= ?", *sq.BudgetMin)
	}
	if sq.BudgetMax != nil {
		q = q.Where("budget_min <= ?", *sq.BudgetMax)
	}
	if sq.Duration != "" {
		q = q.Where("duration = ?", sq.Duration)
	}
	if sq.Location != "" {
		q = q.Where("work_location ILIKE ?", "%"+sq.Location+"%")
	}
	if sq.IsRemote != nil {
		q = q.Where("is_remote = ?", *sq.IsRemote)
	}
	return r.page(q, page)
}

func (r *ProjectRepository) Update(ctx context.Context, id uuid.UUID, c projects.Changes) error {
	fields := map[string]any{}
	if c.Title != nil {
		fields["title"] = *c.Title
	}
	if c.Description != nil {
		fields["description"] = *c.Description
	}
	if c.BudgetMin != nil {
		fields["budget_min"] = *c.BudgetMin
	}
	if c.BudgetMax != nil {
		fields["budget_max"] = *c.BudgetMax
	}
	if c.Duration != nil {
		fields["duration"] = *c.Duration
	}
	if c.WorkLocation != nil {
		fields["work_location"] = *c.WorkLocation
	}
	if c.IsRemote != nil {
		fields["is_remote"] = *c.IsRemote
	}
	if c.FreelancersCount != nil {
		fields["freelancers_count"] = *c.FreelancersCount
	}
	if c.Education != nil {
		fields["education"] = pq.StringArray(*c.Education)
	}
	if c.Visibility != nil {
		fields["visibility"] = pq.StringArray(*c.Visibility)
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(fields) > 0 {
			res := tx.Model(&models.Project{}).Where("id = ? AND is_deleted = ?", id, false).Updates(fields)
			if res.Error != nil {
				return translate(res.Error, "update project", projectNotFound)
			}
			if res.RowsAffected == 0 {
				return apperr.NewNotFound(projectNotFound)
			}
		}
		if c.SkillIDs != nil {
			return replaceLinks(tx, "project_skills", "project_id", "category_id", id, *c.SkillIDs)
		}
		return nil
	})
}

func (r *ProjectRepository) SoftDelete(ctx context.Context, id, owner uuid.UUID) error {
	res := r.DB.WithContext(ctx).Model(&models.Project{}).
		Where("id = ? AND owner_id = ? AND is_deleted = ?", id, owner, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return translate(res.Error, "delete project", projectNotFound)
	}
	if res.RowsAffected == 0 {
		return apperr.NewNotFound(projectNotFound)
	}
	return nil
}

func (r *ProjectRepository) ValidForHire(ctx context.Context, clientID, freelancerID uuid.UUID) ([]models.Project, error) {
	var list []models.Project
	err := r.live(ctx).
		Where("owner_id = ?", clientID).
		Where("NOT EXISTS (SELECT 1 FROM project_hires ph WHERE ph.project_id = projects.id AND ph.user_id = ?)", freelancerID).
		Preload("Skills").
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, translate(err, "list projects for hire", projectNotFound)
	}
	return list, nil
}

func (r *ProjectRepository) IsHired(ctx context.Context, projectID, freelancerID uuid.UUID) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Table("project_hires").
		Where("project_id = ? AND user_id = ?", projectID, freelancerID).
		Count(&n).Error
	if err != nil {
		return false, translate(err, "check hired", projectNotFound)
	}
	return n > 0, nil
}

type HireRepository struct {
	DB *gorm.DB
}

func NewHireRepository(db *gorm.DB) *HireRepository {
	return &HireRepository{DB: db}
}

func (r *HireRepository) Create(ctx context.Context, h *models.HireRequest) error {
	return translate(r.DB.WithContext(ctx).Create(h).Error, "create hire request", projectNotFound)
}

func (r *HireRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.HireRequest, error) {
	var h models.HireRequest
	if err := r.DB.WithContext(ctx).First(&h, "id = ?", id).Error; err != nil {
		return nil, translate(err, "find hire request", "Hire request not found")
	}
	return &h, nil
}

func (r *HireRepository) FindPending(ctx context.Context, projectID, freelancerID uuid.UUID) (*models.HireRequest, error) {
	var h models.HireRequest
	err := r.DB.WithContext(ctx).
		Where("project_id = ? AND freelancer_id = ? AND status = ?", projectID, freelancerID, models.HireRequestPending).
		Take(&h).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translate(err, "find pending hire request", "Hire request not found")
	}
	return &h, nil
}

func (r *HireRepository) setStatus(tx *gorm.DB, id uuid.UUID, status models.HireRequestStatus) error {
	res := tx.Model(&models.HireRequest{}).
		Where("id = ? AND status = ?", id, models.HireRequestPending).
		Update("status", status)
	if res.Error != nil {
		return translate(res.Error, "update hire request", "Hire request not found")
	}
	if res.RowsAffected == 0 {
		return apperr.NewValidation("Hire request was already answered", map[string]string{"hireRequestId": "answered"})
	}
	return nil
}

func (r *HireRepository) Reject(ctx context.Context, id uuid.UUID) error {
	return r.setStatus(r.DB.WithContext(ctx), id, models.HireRequestRejected)
}

func (r *HireRepository) Accept(ctx context.Context, h *models.HireRequest) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.setStatus(tx, h.ID, models.HireRequestAccepted); err != nil {
			return err
		}
		err := tx.Table("project_hires").
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(map[string]any{"project_id": h.ProjectID, "user_id": h.FreelancerID}).Error
		if err != nil {
			return translate(err, "hire freelancer", projectNotFound)
		}
		res := tx.Model(&models.Project{}).
			Where("id = ? AND is_deleted = ?", h.ProjectID, false).
			Update("progress", models.ProgressWorking)
		if res.Error != nil {
			return translate(res.Error, "start project", projectNotFound)
		}
		if res.RowsAffected == 0 {
			return apperr.NewNotFound(projectNotFound)
		}
		return nil
	})
}
