package projects

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/apperr"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/models"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/response"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/utils"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/validation"
)

type Service struct {
	projects     Store
	applications ApplicationStore
	hires        HireStore
	users        UserLookup
	notifier     Notifier
}

func NewService(projects Store, applications ApplicationStore, hires HireStore, users UserLookup, notifier Notifier) *Service {
	return &Service{
		projects:     projects,
		applications: applications,
		hires:        hires,
		users:        users,
		notifier:     notifier,
	}
}

func (s *Service) notify(ctx context.Context, from, to uuid.UUID, msg string, typ models.NotificationType, meta any) {
	if s.notifier != nil {
		s.notifier.Notify(ctx, from, to, msg, typ, meta)
	}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*models.Project, *models.User, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validation.Struct(req); err != nil {
		return nil, nil, err
	}
	owner, err := s.users.FindByID(ctx, req.PostedBy)
	if err != nil {
		return nil, nil, err
	}

	p := &models.Project{
		Title:            req.Title,
		Description:      req.Description,
		BudgetMin:        req.BudgetMin,
		BudgetMax:        req.BudgetMax,
		Duration:         req.Duration,
		WorkLocation:     req.WorkLocation,
		IsRemote:         req.IsRemote,
		FreelancersCount: req.FreelancersCount,
		Education:        req.Education,
		Visibility:       req.Visibility,
		OwnerID:          owner.ID,
		Progress:         models.ProgressPosted,
		Skills:           models.CategoryRefs(req.Skills),
	}
	if p.FreelancersCount == 0 {
		p.FreelancersCount = 1
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, nil, err
	}
	return p, owner, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return s.projects.FindByID(ctx, id)
}

type Facets struct {
	Skills     []string `json:"skills"`
	Education  []string `json:"education"`
	Visibility []string `json:"visibility"`
}

func facetsOf(list []models.Project) Facets {
	f := Facets{Skills: []string{}, Education: []string{}, Visibility: []string{}}
	seen := map[string]bool{}
	add := func(dst *[]string, kind, v string) {
		if !seen[kind+v] {
			seen[kind+v] = true
			*dst = append(*dst, v)
		}
	}
	for _, p := range list {
		for _, sk := range p.Skills {
			add(&f.Skills, "s", sk.Title)
		}
		for _, e := range p.Education {
			add(&f.Education, "e", e)
		}
		for _, v := range p.Visibility {
			add(&f.Visibility, "v", v)
		}
	}
	return f
}

func (s *Service) List(ctx context.Context, f ListFilter, page utils.PageInfo) ([]models.Project, int64, Facets, error) {
	list, total, err := s.projects.List(ctx, f, page)
	if err != nil {
		return nil, 0, Facets{}, err
	}
	return list, total, facetsOf(list), nil
}

func (s *Service) Edit(ctx context.Context, req EditRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}
	p, err := s.projects.FindByID(ctx, req.ProjectID)
	if err != nil {
		return err
	}
	if req.EditorID != uuid.Nil && p.OwnerID != req.EditorID {
		return apperr.NewNotFound("Project not found")
	}

	lo, hi := p.BudgetMin, p.BudgetMax
	if req.BudgetMin != nil {
		lo = *req.BudgetMin
	}
	if req.BudgetMax != nil {
		hi = *req.BudgetMax
	}
	if lo > hi {
		return apperr.NewValidation("budgetMin must not exceed budgetMax", map[string]string{"budgetMax": "gtefield=budgetMin"})
	}

	return s.projects.Update(ctx, req.ProjectID, Changes{
		Title:            req.Title,
		Description:      req.Description,
		BudgetMin:        req.BudgetMin,
		BudgetMax:        req.BudgetMax,
		Duration:         req.Duration,
		WorkLocation:     req.WorkLocation,
		IsRemote:         req.IsRemote,
		FreelancersCount: req.FreelancersCount,
		Education:        req.Education,
		Visibility:       req.Visibility,
		SkillIDs:         req.Skills,
	})
}

func (s *Service) Delete(ctx context.Context, id, owner uuid.UUID) error {
	return s.projects.SoftDelete(ctx, id, owner)
}

// Apply records a bid. A user may hold several active applications on the
// same project.
func (s *Service) Apply(ctx context.Context, req ApplyRequest) (*models.Application, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	p, err := s.projects.FindByID(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID == req.UserID {
		return nil, apperr.NewValidation("Owners cannot apply to their own project", map[string]string{"userId": "owner"})
	}
	if p.Progress != models.ProgressPosted {
		return nil, apperr.NewValidation("Project is not accepting applications", map[string]string{"projectId": "closed"})
	}
	if _, err := s.users.FindByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	a := &models.Application{ProjectID: p.ID, UserID: req.UserID, Bid: req.Bid, IsActive: true}
	if err := s.applications.Create(ctx, a); err != nil {
		return nil, err
	}
	s.notify(ctx, req.UserID, p.OwnerID, "New application on "+p.Title, models.NotificationApplication,
		map[string]any{"projectId": p.ID, "applicationId": a.ID, "bid": a.Bid})
	return a, nil
}

func (s *Service) ValidForHire(ctx context.Context, clientID, freelancerID uuid.UUID) ([]models.Project, error) {
	if clientID == uuid.Nil || freelancerID == uuid.Nil {
		return nil, apperr.NewValidation("clientId and freelancerId are required", nil)
	}
	list, err := s.projects.ValidForHire(ctx, clientID, freelancerID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.Project{}
	}
	return list, nil
}

// SendHireRequest lets a client offer one of their projects to a freelancer.
func (s *Service) SendHireRequest(ctx context.Context, req HireRequestInput) (*models.HireRequest, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	p, err := s.projects.FindByID(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != req.ClientID {
		return nil, apperr.NewNotFound("Project not found")
	}
	if _, err := s.users.FindByID(ctx, req.FreelancerID); err != nil {
		return nil, err
	}
	hired, err := s.projects.IsHired(ctx, p.ID, req.FreelancerID)
	if err != nil {
		return nil, err
	}
	if hired {
		return nil, apperr.NewValidation("Freelancer is already hired on this project", nil)
	}
	if pending, err := s.hires.FindPending(ctx, p.ID, req.FreelancerID); err != nil {
		return nil, err
	} else if pending != nil {
		return pending, nil
	}

	h := &models.HireRequest{
		ProjectID:    p.ID,
		ClientID:     req.ClientID,
		FreelancerID: req.FreelancerID,
		Status:       models.HireRequestPending,
	}
	if err := s.hires.Create(ctx, h); err != nil {
		return nil, err
	}
	s.notify(ctx, req.ClientID, req.FreelancerID, "New hire request for "+p.Title, models.NotificationHireRequest,
		map[string]any{"projectId": p.ID, "hireRequestId": h.ID})
	return h, nil
}

func (s *Service) RespondHireRequest(ctx context.Context, req RespondRequest) (*models.HireRequest, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	h, err := s.hires.FindByID(ctx, req.HireRequestID)
	if err != nil {
		return nil, err
	}
	if h.FreelancerID != req.FreelancerID {
		return nil, apperr.NewNotFound("Hire request not found")
	}
	if h.Status != models.HireRequestPending {
		return nil, apperr.NewValidation("Hire request was already answered", map[string]string{"hireRequestId": "answered"})
	}

	if !req.Accept {
		if err := s.hires.Reject(ctx, h.ID); err != nil {
			return nil, err
		}
		h.Status = models.HireRequestRejected
		return h, nil
	}

	if err := s.hires.Accept(ctx, h); err != nil {
		return nil, err
	}
	h.Status = models.HireRequestAccepted
	s.notify(ctx, h.FreelancerID, h.ClientID, "Your hire request was accepted", models.NotificationHired,
		map[string]any{"projectId": h.ProjectID, "hireRequestId": h.ID})
	return h, nil
}

func (s *Service) CreateProject(ctx context.Context, req CreateRequest) response.Result {
	p, owner, err := s.Create(ctx, req)
	if err != nil {
		return response.FromError(err)
	}
	return response.OK("Project added", response.Payload{
		"projectId": p.ID,
		"title":     p.Title,
		"user":      owner.UserName,
	})
}

// GetAllProjects answers 400 for an empty page, which existing clients treat
// as the end of the list.
func (s *Service) GetAllProjects(ctx context.Context, f ListFilter, page utils.PageInfo) response.Result {
	list, total, facets, err := s.List(ctx, f, page)
	if err != nil {
		return response.FromError(err)
	}
	if len(list) == 0 {
		return response.New(http.StatusBadRequest, "Bad Request", nil)
	}
	return response.OK("Projects List", response.Payload{
		"projects":   list,
		"page":       page.Page,
		"total":      total,
		"totalPages": page.TotalPages(total),
		"filter":     facets,
	})
}

func (s *Service) GetProjectByID(ctx context.Context, id uuid.UUID) response.Result {
	p, err := s.Get(ctx, id)
	if err != nil {
		return response.FromError(err)
	}
	return response.OK("Project found", response.Payload{"project": p})
}

func (s *Service) EditProject(ctx context.Context, req EditRequest) response.Result {
	if err := s.Edit(ctx, req); err != nil {
		return response.FromError(err)
	}
	return response.OK("Project updated successfully", nil)
}

func (s *Service) DeleteProject(ctx context.Context, id, owner uuid.UUID) response.Result {
	if err := s.Delete(ctx, id, owner); err != nil {
		return response.FromError(err)
	}
	return response.OK("Project deleted", response.Payload{"projectId": id})
}

func (s *Service) ApplyToProject(ctx context.Context, req ApplyRequest) response.Result {
	a, err := s.Apply(ctx, req)
	if err != nil {
		return response.FromError(err)
	}
	return response.OK("Applied to project", response.Payload{"application": a})
}

func (s *Service) GetValidProjectsForHire(ctx context.Context, clientID, freelancerID uuid.UUID) response.Result {
	list, err := s.ValidForHire(ctx, clientID, freelancerID)
	if err != nil {
		return response.FromError(err)
	}
	return response.OK("Valid projects", response.Payload{"projects": list})
}

func (s *Service) SendHire(ctx context.Context, req HireRequestInput) response.Result {
	h, err := s.SendHireRequest(ctx, req)
	if err != nil {
		return response.FromError(err)
	}
	return response.OK("Hire request sent", response.Payload{"hireRequest": h})
}

func (s *Service) RespondHire(ctx context.Context, req RespondRequest) response.Result {
	h, err := s.RespondHireRequest(ctx, req)
	if err != nil {
		return response.FromError(err)
	}
	return response.OK("Hire request "+string(h.Status), response.Payload{"hireRequest": h})
}
