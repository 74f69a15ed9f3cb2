package doctor

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	doctors Repository
}

func NewService(doctors Repository) *Service {
	return &Service{doctors: doctors}
}

func (s *Service) Create(ctx context.Context, d *Doctor) error {
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}
	if d.Department == "" {
		return fmt.Errorf("department is required")
	}
	d.Active = true
	return s.doctors.Create(ctx, d)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, d *Doctor) error {
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}
	return s.doctors.Update(ctx, d)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.doctors.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, department string, limit, offset int) ([]*Doctor, int, error) {
	if department != "" {
		return s.doctors.ListByDepartment(ctx, department, limit, offset)
	}
	return s.doctors.List(ctx, limit, offset)
}

// ResolveName maps a doctor id (or free-text name) to a display name. Used by
// the dashboard aggregation instead of a module-level lookup cache; unknown
// ids pass through unchanged so free-text entries keep working.
func (s *Service) ResolveName(ctx context.Context) func(string) string {
	return func(id string) string {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return id
		}
		d, err := s.doctors.GetByID(ctx, parsed)
		if err != nil {
			return id
		}
		return d.Name
	}
}
