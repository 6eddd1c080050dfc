package repositories

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/apperr"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/models"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/services/users"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/utils"
)

const userNotFound = "User not found"

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	err := r.DB.WithContext(ctx).Create(u).Error
	if isUniqueViolation(err) {
		return apperr.Wrap(apperr.Conflict, "User already exists", err)
	}
	return translate(err, "create user", userNotFound)
}

func (r *UserRepository) FindConflict(ctx context.Context, userName, email, companyName string) (*models.User, error) {
	q := r.DB.WithContext(ctx).Where("user_name = ?", userName).Or("email = ?", email)
	if companyName != "" {
		q = q.Or("company_name = ?", companyName)
	}

	// prefer the user-name match so it is reported first
	var u models.User
	err := q.Clauses(clause.OrderBy{Expression: clause.Expr{
		SQL:                "CASE WHEN user_name = ? THEN 0 WHEN email = ? THEN 1 ELSE 2 END",
		Vars:               []any{userName, email},
		WithoutParentheses: true,
	}}).Take(&u).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translate(err, "find user conflict", userNotFound)
	}
	return &u, nil
}

// detailed preloads what profile pages show.
func (r *UserRepository) detailed(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Preload("Skills").
		Preload("Contacted", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "user_name", "full_name", "profile_pic", "role")
		})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.detailed(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err, "find user by email", userNotFound)
	}
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := r.detailed(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err, "find user", userNotFound)
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context, f users.ListFilter, page utils.PageInfo) ([]models.User, int64, error) {
	q := r.DB.WithContext(ctx).Model(&models.User{})
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.IsVerified != nil {
		q = q.Where("is_verified = ?", *f.IsVerified)
	}
	if len(f.SkillIDs) > 0 {
		q = q.Where("id IN (?)", r.DB.Table("user_skills").Select("user_id").Where("category_id IN ?", f.SkillIDs))
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err, "count users", userNotFound)
	}

	var list []models.User
	err := q.Preload("Skills").
		Order("created_at DESC").
		Limit(page.Limit()).Offset(page.Offset()).
		Find(&list).Error
	if err != nil {
		return nil, 0, translate(err, "list users", userNotFound)
	}
	return list, total, nil
}

// FindBySkills returns every other user that has at least one of skillIDs.
func (r *UserRepository) FindBySkills(ctx context.Context, skillIDs []uuid.UUID, exclude uuid.UUID) ([]models.User, error) {
	var list []models.User
	err := r.DB.WithContext(ctx).
		Where("id <> ? AND is_active", exclude).
		Where("id IN (?)", r.DB.Table("user_skills").Select("user_id").Where("category_id IN ?", skillIDs)).
		Preload("Skills").
		Order("created_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, translate(err, "find users by skills", userNotFound)
	}
	return list, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, c users.ProfileChanges) error {
	fields := map[string]any{}
	set := func(col string, v *string) {
		if v != nil {
			fields[col] = *v
		}
	}
	set("first_name", c.FirstName)
	set("last_name", c.LastName)
	set("full_name", c.FullName)
	set("company_name", c.CompanyName)
	set("occupation", c.Occupation)
	set("intro", c.Intro)
	set("profile_pic", c.ProfilePic)
	set("phone_number", c.PhoneNumber)
	set("address", c.Address)
	set("website", c.Website)
	if c.SocialProfiles != nil {
		fields["social_profiles"] = pq.StringArray(*c.SocialProfiles)
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u := models.User{ID: id}
		if len(fields) > 0 {
			res := tx.Model(&u).Updates(fields)
			if res.Error != nil {
				if isUniqueViolation(res.Error) {
					return apperr.Wrap(apperr.Conflict, "User already exists with the same company name", res.Error)
				}
				return translate(res.Error, "update user", userNotFound)
			}
			if res.RowsAffected == 0 {
				return apperr.NewNotFound(userNotFound)
			}
		}
		if c.SkillIDs != nil {
			return replaceLinks(tx, "user_skills", "user_id", "category_id", id, *c.SkillIDs)
		}
		return nil
	})
}

func (r *UserRepository) updateColumn(ctx context.Context, id uuid.UUID, col string, v any) error {
	res := r.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update(col, v)
	if res.Error != nil {
		return translate(res.Error, "update "+col, userNotFound)
	}
	if res.RowsAffected == 0 {
		return apperr.NewNotFound(userNotFound)
	}
	return nil
}

func (r *UserRepository) SetVerified(ctx context.Context, id uuid.UUID) error {
	return r.updateColumn(ctx, id, "is_verified", true)
}

func (r *UserRepository) SetPassword(ctx context.Context, id uuid.UUID, hash string) error {
	return r.updateColumn(ctx, id, "password", hash)
}

func (r *UserRepository) SetProfileCompletion(ctx context.Context, id uuid.UUID, pct float64) error {
	return r.updateColumn(ctx, id, "profile_completion", pct)
}

// AddReview inserts the review and updates the reviewee's counters with one
// UPDATE, so concurrent reviews never lose an increment.
func (r *UserRepository) AddReview(ctx context.Context, rv *models.Review) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ?", rv.UserID).
			Updates(map[string]any{
				"review_count":   gorm.Expr("review_count + 1"),
				"rating_sum":     gorm.Expr("rating_sum + ?", rv.Rating),
				"average_rating": gorm.Expr("(rating_sum + ?)::float / (review_count + 1)", rv.Rating),
			})
		if res.Error != nil {
			return translate(res.Error, "update review aggregates", userNotFound)
		}
		if res.RowsAffected == 0 {
			return apperr.NewNotFound(userNotFound)
		}
		if err := tx.Create(rv).Error; err != nil {
			return apperr.NewInternal("create review", errors.Wrap(err, "create review"))
		}
		return nil
	})
}

func (r *UserRepository) Reviews(ctx context.Context, userID uuid.UUID) ([]models.Review, error) {
	var list []models.Review
	err := r.DB.WithContext(ctx).
		Preload("Reviewer", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "user_name", "full_name", "profile_pic")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, translate(err, "list reviews", userNotFound)
	}
	return list, nil
}

// AddContact is idempotent; existing pairs are left alone.
func (r *UserRepository) AddContact(ctx context.Context, a, b uuid.UUID) error {
	rows := []map[string]any{
		{"user_id": a, "contacted_id": b},
		{"user_id": b, "contacted_id": a},
	}
	err := r.DB.WithContext(ctx).Table("user_contacts").
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(rows).Error
	return translate(err, "add contact", userNotFound)
}
