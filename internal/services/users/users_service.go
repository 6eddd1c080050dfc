package users

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/apperr"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/models"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/response"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/services/mailer"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/services/otp"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/services/profile"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/utils"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/validation"
)

type Config struct {
	JWTSecret     string
	JWTExpiresMin int
	OTPTTL        time.Duration
}

type Service struct {
	store    Store
	otp      OTPIssuer
	mail     mailer.Mailer
	profiles ProfileScorer
	notifier Notifier
	cfg      Config
}

func NewService(store Store, otp OTPIssuer, mail mailer.Mailer, profiles ProfileScorer, notifier Notifier, cfg Config) *Service {
	return &Service{
		store:    store,
		otp:      otp,
		mail:     mail,
		profiles: profiles,
		notifier: notifier,
		cfg:      cfg,
	}
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

func isNotFound(err error) bool {
	return errors.Is(err, apperr.ErrNotFound)
}

// Register creates an account. A taken user name is reported before a taken
// email, then a taken company name.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	req.Email = normalizeEmail(req.Email)
	req.UserName = strings.TrimSpace(req.UserName)
	req.CompanyName = strings.TrimSpace(req.CompanyName)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	existing, err := s.store.FindConflict(ctx, req.UserName, req.Email, req.CompanyName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		switch {
		case existing.UserName == req.UserName:
			return nil, apperr.NewConflict("User already exists with the same username")
		case existing.Email == req.Email:
			return nil, apperr.NewConflict("User already exists with the same email")
		default:
			return nil, apperr.NewConflict("User already exists with the same company name")
		}
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.NewInternal("hash password", err)
	}

	u := &models.User{
		UserName:    req.UserName,
		Email:       req.Email,
		Password:    hash,
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		CompanyName: req.CompanyName,
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		Role:        req.Role,
		IsActive:    true,
	}
	u.FullName = strings.TrimSpace(u.FirstName + " " + u.LastName)
	u.ProfileCompletion = profile.Completion(*u)

	if err := s.store.Create(ctx, u); err != nil {
		return nil, err
	}

	s.sendCode(ctx, otp.PurposeVerify, u)
	return u, nil
}

// sendCode issues a code and mails it in the background. Failures only get
// logged; the user can ask for another code.
func (s *Service) sendCode(ctx context.Context, p otp.Purpose, u *models.User) {
	if s.otp == nil || s.mail == nil {
		return
	}
	code, err := s.otp.Issue(ctx, p, u.Email)
	if err != nil {
		slog.Warn("could not issue otp", "email", u.Email, "purpose", p, "err", err)
		return
	}
	s.mailCode(p, u, code)
}

func (s *Service) mailCode(p otp.Purpose, u *models.User, code string) {
	name := u.FullName
	if name == "" {
		name = u.UserName
	}
	ttl := int(s.cfg.OTPTTL.Minutes())
	subject, body := mailer.VerificationEmail(name, code, ttl)
	if p == otp.PurposeReset {
		subject, body = mailer.ResetPasswordEmail(name, code, ttl)
	}
	mailer.SendAsync(s.mail, u.Email, subject, body)
}

// Login checks credentials and returns the user and a signed token.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*models.User, string, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validation.Struct(req); err != nil {
		return nil, "", err
	}

	u, err := s.store.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", err
	}
	if !utils.CheckPassword(u.Password, req.Password) {
		return nil, "", apperr.ErrInvalidCredentials
	}

	token, err := utils.SignJWT(s.cfg.JWTSecret, u.ID.String(), string(u.Role), s.cfg.JWTExpiresMin)
	if err != nil {
		return nil, "", apperr.NewInternal("sign token", err)
	}
	return u, token, nil
}

// SignInExternal logs in a user whose email an identity provider already
// verified, creating a client account on first sign-in.
func (s *Service) SignInExternal(ctx context.Context, email, name, picture string) (*models.User, string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, "", apperr.NewValidation("Email is required", map[string]string{"email": "required"})
	}

	u, err := s.store.FindByEmail(ctx, email)
	switch {
	case isNotFound(err):
		u, err = s.createExternal(ctx, email, name, picture)
		if err != nil {
			return nil, "", err
		}
	case err != nil:
		return nil, "", err
	}
	if !u.IsActive {
		return nil, "", apperr.NewValidation("Account is not active", nil)
	}

	token, err := utils.SignJWT(s.cfg.JWTSecret, u.ID.String(), string(u.Role), s.cfg.JWTExpiresMin)
	if err != nil {
		return nil, "", apperr.NewInternal("sign token", err)
	}
	return u, token, nil
}

func (s *Service) createExternal(ctx context.Context, email, name, picture string) (*models.User, error) {
	// the account never logs in with a password, it only has to be unguessable
	hash, err := utils.HashPassword(uuid.NewString())
	if err != nil {
		return nil, apperr.NewInternal("hash password", err)
	}

	local, _, _ := strings.Cut(email, "@")
	first, last, _ := strings.Cut(strings.TrimSpace(name), " ")
	u := &models.User{
		UserName:   local + "-" + uuid.NewString()[:8],
		Email:      email,
		Password:   hash,
		FirstName:  first,
		LastName:   strings.TrimSpace(last),
		FullName:   strings.TrimSpace(name),
		ProfilePic: picture,
		Role:       models.RoleClient,
		IsVerified: true,
		IsActive:   true,
	}
	u.ProfileCompletion = profile.Completion(*u)
	if err := s.store.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) Verify(ctx context.Context, req VerifyRequest) error {
	req.Email = normalizeEmail(req.Email)
	if err := validation.Struct(req); err != nil {
		return err
	}
	u, err := s.store.FindByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if err := s.checkCode(ctx, otp.PurposeVerify, req.Email, req.Code); err != nil {
		return err
	}
	return s.store.SetVerified(ctx, u.ID)
}

func (s *Service) checkCode(ctx context.Context, p otp.Purpose, email, code string) error {
	ok, err := s.otp.Verify(ctx, p, email, code)
	if err != nil {
		return apperr.NewInternal("verify otp", err)
	}
	if !ok {
		return apperr.NewValidation("Invalid or expired code", map[string]string{"otp": "invalid"})
	}
	return nil
}

// issue reports rate limiting to the caller, unlike sendCode.
func (s *Service) issue(ctx context.Context, p otp.Purpose, email string) error {
	email = normalizeEmail(email)
	if err := validation.Struct(EmailRequest{Email: email}); err != nil {
		return err
	}
	u, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if p == otp.PurposeVerify && u.IsVerified {
		return apperr.NewValidation("User already verified", nil)
	}

	code, err := s.otp.Issue(ctx, p, u.Email)
	if errors.Is(err, otp.ErrRateLimited) {
		return apperr.ErrRateLimited
	}
	if err != nil {
		return apperr.NewInternal("issue otp", err)
	}

	s.mailCode(p, u, code)
	return nil
}

func (s *Service) ResendOTP(ctx context.Context, email string) error {
	return s.issue(ctx, otp.PurposeVerify, email)
}

func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	return s.issue(ctx, otp.PurposeReset, email)
}

func (s *Service) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	req.Email = normalizeEmail(req.Email)
	if err := validation.Struct(req); err != nil {
		return err
	}
	u, err := s.store.FindByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if err := s.checkCode(ctx, otp.PurposeReset, req.Email, req.Code); err != nil {
		return err
	}
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return apperr.NewInternal("hash password", err)
	}
	return s.store.SetPassword(ctx, u.ID, hash)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.store.FindByEmail(ctx, normalizeEmail(email))
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.store.FindByID(ctx, id)
}

// Update applies the non-nil fields of req to the user with req.Email and
// recomputes the profile completion.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*models.User, float64, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validation.Struct(req); err != nil {
		return nil, 0, err
	}
	u, err := s.store.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, 0, err
	}

	c := ProfileChanges{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		CompanyName:    req.CompanyName,
		Occupation:     req.Occupation,
		Intro:          req.Intro,
		ProfilePic:     req.ProfilePic,
		PhoneNumber:    req.PhoneNumber,
		Address:        req.Address,
		Website:        req.Website,
		SocialProfiles: req.SocialProfiles,
		SkillIDs:       req.Skills,
	}
	if req.FirstName != nil || req.LastName != nil {
		first, last := u.FirstName, u.LastName
		if req.FirstName != nil {
			first = *req.FirstName
		}
		if req.LastName != nil {
			last = *req.LastName
		}
		full := strings.TrimSpace(first + " " + last)
		c.FullName = &full
	}

	if err := s.store.UpdateProfile(ctx, u.ID, c); err != nil {
		return nil, 0, err
	}
	pct, err := s.profiles.Recompute(ctx, u.ID)
	if err != nil {
		return nil, 0, err
	}
	updated, err := s.store.FindByID(ctx, u.ID)
	if err != nil {
		return nil, 0, err
	}
	return updated, pct, nil
}

// List returns a page of users plus the distinct skills and roles seen on
// that page.
func (s *Service) List(ctx context.Context, f ListFilter, page utils.PageInfo) ([]models.User, int64, Facets, error) {
	list, total, err := s.store.List(ctx, f, page)
	if err != nil {
		return nil, 0, Facets{}, err
	}
	if list == nil {
		list = []models.User{}
	}
	return list, total, facetsOf(list), nil
}

type Facets struct {
	Skills   []string      `json:"skills"`
	UserType []models.Role `json:"userType"`
}

func facetsOf(list []models.User) Facets {
	f := Facets{Skills: []string{}, UserType: []models.Role{}}
	seenSkill := map[string]bool{}
	seenRole := map[models.Role]bool{}
	for _, u := range list {
		for _, sk := range u.Skills {
			if !seenSkill[sk.Title] {
				seenSkill[sk.Title] = true
				f.Skills = append(f.Skills, sk.Title)
			}
		}
		if !seenRole[u.Role] {
			seenRole[u.Role] = true
			f.UserType = append(f.UserType, u.Role)
		}
	}
	return f
}

// SetReview stores a review of req.UserID and notifies them. The reviewee's
// counters move in the same transaction as the insert.
func (s *Service) SetReview(ctx context.Context, req ReviewRequest) (*models.Review, *models.User, error) {
	if err := validation.Struct(req); err != nil {
		return nil, nil, err
	}
	if req.UserID == req.ReviewedBy {
		return nil, nil, apperr.NewValidation("Users cannot review themselves", map[string]string{"reviewedBy": "ne userId"})
	}
	reviewer, err := s.store.FindByID(ctx, req.ReviewedBy)
	if err != nil {
		if isNotFound(err) {
			return nil, nil, apperr.NewNotFound("Reviewer not found")
		}
		return nil, nil, err
	}

	r := &models.Review{
		UserID:       req.UserID,
		ReviewedByID: req.ReviewedBy,
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		Rating:       *req.Rating,
	}
	if err := s.store.AddReview(ctx, r); err != nil {
		return nil, nil, err
	}
	r.Reviewer = reviewer

	if s.notifier != nil {
		s.notifier.Notify(ctx, req.ReviewedBy, req.UserID, "Got a Review", models.NotificationReview,
			map[string]any{"reviewId": r.ID, "rating": r.Rating})
	}

	u, err := s.store.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, nil, err
	}
	return r, u, nil
}

func (s *Service) Reviews(ctx context.Context, userID uuid.UUID) ([]models.Review, error) {
	if _, err := s.store.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	list, err := s.store.Reviews(ctx, userID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.Review{}
	}
	return list, nil
}

func (s *Service) SetContacted(ctx context.Context, req ContactRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}
	if req.SenderUserID == req.ReceiverUserID {
		return apperr.NewValidation("Users cannot contact themselves", map[string]string{"receiverUserId": "ne senderUserId"})
	}
	for _, id := range []uuid.UUID{req.SenderUserID, req.ReceiverUserID} {
		if _, err := s.store.FindByID(ctx, id); err != nil {
			return err
		}
	}
	return s.store.AddContact(ctx, req.SenderUserID, req.ReceiverUserID)
}

// Envelope variants used by the HTTP layer.

func (s *Service) RegisterUser(ctx context.Context, req RegisterRequest) response.Result {
	u, err := s.Register(ctx, req)
	if err != nil {
		return response.FromError(err)
	}
	return response.OK("User registered", response.Payload{"userDetails": u})
}

func (s *Service) GetAllUsers(ctx context.Context, f ListFilter, page utils.PageInfo) response.Result {
	list, total, facets, err := s.List(ctx, f, page)
	if err != nil {
		return response.FromError(err)
	}
	return response.OK("Users List", response.Payload{
		"users":      list,
		"page":       page.Page,
		"size":       page.Size,
		"total":      total,
		"totalPages": page.TotalPages(total),
		"filter":     facets,
	})
}

func (s *Service) GetUserByEmail(ctx context.Context, email string) response.Result {
	u, err := s.GetByEmail(ctx, email)
	if err != nil {
		return response.FromError(err)
	}
	return response.OK("User Found", response.Payload{"user": u})
}

func (s *Service) GetUserByID(ctx context.Context, id uuid.UUID) response.Result {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return response.FromError(err)
	}
	return response.OK("User Found", response.Payload{"user": u})
}

func (s *Service) UpdateUser(ctx context.Context, req UpdateRequest) response.Result {
	u, pct, err := s.Update(ctx, req)
	if err != nil {
		return response.FromError(err)
	}
	return response.OK("User updated successfully", response.Payload{
		"userDetails":       u,
		"profileCompletion": pct,
	})
}

func (s *Service) SetUserReview(ctx context.Context, req ReviewRequest) response.Result {
	r, u, err := s.SetReview(ctx, req)
	if err != nil {
		return response.FromError(err)
	}
	return response.OK("Review added", response.Payload{
		"review":     r,
		"reviewedBy": r.Reviewer.Email,
		"user":       u,
	})
}

func (s *Service) GetUserReviews(ctx context.Context, userID uuid.UUID) response.Result {
	list, err := s.Reviews(ctx, userID)
	if err != nil {
		return response.FromError(err)
	}
	return response.OK("Reviews of User", response.Payload{"reviews": list, "userId": userID})
}

func (s *Service) SetUserContacted(ctx context.Context, req ContactRequest) response.Result {
	if err := s.SetContacted(ctx, req); err != nil {
		return response.FromError(err)
	}
	return response.OK("Contacted user added to set", response.Payload{
		"senderUser":   req.SenderUserID,
		"receiverUser": req.ReceiverUserID,
	})
}

func (s *Service) VerifyUser(ctx context.Context, req VerifyRequest) response.Result {
	if err := s.Verify(ctx, req); err != nil {
		return response.FromError(err)
	}
	return response.OK("User verified", nil)
}

func (s *Service) ResendUserOTP(ctx context.Context, email string) response.Result {
	if err := s.ResendOTP(ctx, email); err != nil {
		return response.FromError(err)
	}
	return response.OK("OTP sent", nil)
}

func (s *Service) ForgotUserPassword(ctx context.Context, email string) response.Result {
	if err := s.ForgotPassword(ctx, email); err != nil {
		return response.FromError(err)
	}
	return response.OK("OTP sent", nil)
}

func (s *Service) ResetUserPassword(ctx context.Context, req ResetPasswordRequest) response.Result {
	if err := s.ResetPassword(ctx, req); err != nil {
		return response.FromError(err)
	}
	return response.OK("Password updated", nil)
}
