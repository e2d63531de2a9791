package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/crewplan/internal/calc"
	"github.com/alexanderramin/crewplan/internal/db"
	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/alexanderramin/crewplan/internal/repository"
	"github.com/google/uuid"
)

type templateService struct {
	templates    repository.TemplateRepo
	projects     repository.ProjectRepo
	requirements repository.RequirementRepo
	uow          db.UnitOfWork
	observer     UseCaseObserver
}

func NewTemplateService(
	templates repository.TemplateRepo,
	projects repository.ProjectRepo,
	requirements repository.RequirementRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) TemplateService {
	return &templateService{
		templates:    templates,
		projects:     projects,
		requirements: requirements,
		uow:          uow,
		observer:     useCaseObserverOrNoop(observers),
	}
}

func (s *templateService) Create(ctx context.Context, t *domain.ProjectTemplate) error {
	if err := validateRequired("name", t.Name); err != nil {
		return err
	}
	if t.DurationWeeks < calc.MinTimelineWeeks || t.DurationWeeks > calc.MaxTimelineWeeks {
		return validationErrorf("durationWeeks", "must be between %d and %d, got %d",
			calc.MinTimelineWeeks, calc.MaxTimelineWeeks, t.DurationWeeks)
	}
	for _, wh := range t.WeekHours {
		if wh.WeekOffset < 0 || wh.WeekOffset >= t.DurationWeeks {
			return validationErrorf("weekHours", "offset %d outside template duration %d", wh.WeekOffset, t.DurationWeeks)
		}
		if err := validateRequirementHours(wh.Hours); err != nil {
			return err
		}
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}
	t.Active = true
	t.CreatedAt = time.Now().UTC()
	return s.templates.Create(ctx, t)
}

// CreateFromProject captures a project's labor requirements as a reusable
// template. Week offsets are relative to the project's earliest requirement
// week.
func (s *templateService) CreateFromProject(ctx context.Context, projectID, name, description string) (*domain.ProjectTemplate, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	reqs, err := s.requirements.ListByProject(ctx, projectID, nil)
	if err != nil {
		return nil, err
	}
	if len(reqs) == 0 {
		return nil, fmt.Errorf("project %s has no labor requirements to capture", project.Name)
	}

	first := reqs[0].WeekStart
	last := reqs[0].WeekStart
	for _, req := range reqs {
		if req.WeekStart.Before(first) {
			first = req.WeekStart
		}
		if req.WeekStart.After(last) {
			last = req.WeekStart
		}
	}

	t := &domain.ProjectTemplate{
		Name:          name,
		Description:   description,
		Priority:      project.Priority,
		DurationWeeks: domain.WeekCount(first, last),
		DepartmentIDs: project.DepartmentIDs,
	}
	for _, req := range reqs {
		t.WeekHours = append(t.WeekHours, domain.TemplateHours{
			DepartmentID: req.DepartmentID,
			WeekOffset:   domain.WeekCount(first, req.WeekStart) - 1,
			Hours:        req.RequiredHours,
		})
	}
	if err := s.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *templateService) List(ctx context.Context) ([]*domain.ProjectTemplate, error) {
	return s.templates.List(ctx)
}

func (s *templateService) GetByID(ctx context.Context, id string) (*domain.ProjectTemplate, error) {
	return s.templates.GetByID(ctx, id)
}

func (s *templateService) Deactivate(ctx context.Context, id string) error {
	return s.templates.Deactivate(ctx, id)
}

// Instantiate creates a project and its labor requirements from a template
// in one transaction; a failure partway leaves nothing behind.
func (s *templateService) Instantiate(ctx context.Context, templateID, projectName string, startWeek time.Time) (project *domain.Project, err error) {
	if err := validateRequired("projectName", projectName); err != nil {
		return nil, err
	}
	if err := validateNotZero("startWeek", startWeek); err != nil {
		return nil, err
	}

	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "instantiate-template",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"template": templateID, "project": projectName},
		})
	}()

	t, err := s.templates.GetByID(ctx, templateID)
	if err != nil {
		return nil, err
	}

	start := domain.WeekStart(startWeek)
	now := time.Now().UTC()
	project = &domain.Project{
		ID:            uuid.New().String(),
		Name:          projectName,
		Description:   t.Description,
		Priority:      t.Priority,
		Status:        domain.ProjectPlanning,
		DepartmentIDs: t.DepartmentIDs,
		StartDate:     start,
		EndDate:       domain.WeekEnd(start.AddDate(0, 0, 7*(t.DurationWeeks-1))),
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txRequirements := repository.NewSQLiteRequirementRepo(tx)

		if err := txProjects.Create(ctx, project); err != nil {
			return fmt.Errorf("creating project: %w", err)
		}
		for _, wh := range t.WeekHours {
			req := &domain.LaborRequirement{
				ID:            uuid.New().String(),
				ProjectID:     project.ID,
				DepartmentID:  wh.DepartmentID,
				WeekStart:     start.AddDate(0, 0, 7*wh.WeekOffset),
				RequiredHours: wh.Hours,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if _, err := txRequirements.Upsert(ctx, req); err != nil {
				return fmt.Errorf("creating requirement for %s: %w", wh.DepartmentID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}
