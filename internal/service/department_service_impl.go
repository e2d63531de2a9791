package service

import (
	"context"
	"time"

	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/alexanderramin/crewplan/internal/repository"
	"github.com/google/uuid"
)

type departmentService struct {
	departments repository.DepartmentRepo
}

func NewDepartmentService(departments repository.DepartmentRepo) DepartmentService {
	return &departmentService{departments: departments}
}

func (s *departmentService) Create(ctx context.Context, d *domain.Department) error {
	if err := validateRequired("name", d.Name); err != nil {
		return err
	}
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	d.Active = true
	d.CreatedAt = time.Now().UTC()
	return s.departments.Create(ctx, d)
}

func (s *departmentService) GetByID(ctx context.Context, id string) (*domain.Department, error) {
	return s.departments.GetByID(ctx, id)
}

func (s *departmentService) List(ctx context.Context, includeInactive bool) ([]*domain.Department, error) {
	return s.departments.List(ctx, includeInactive)
}

func (s *departmentService) Update(ctx context.Context, d *domain.Department) error {
	if err := validateRequired("name", d.Name); err != nil {
		return err
	}
	return s.departments.Update(ctx, d)
}

func (s *departmentService) Deactivate(ctx context.Context, id string) error {
	return s.departments.Deactivate(ctx, id)
}
