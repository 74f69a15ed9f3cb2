package patient

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	items map[uuid.UUID]*Patient
	seq   int
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: make(map[uuid.UUID]*Patient)}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	m.seq++
	p.UHID = fmt.Sprintf("MF%06d", m.seq)
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	m.items[p.ID] = p
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return p, nil
}

func (m *mockRepo) GetByUHID(_ context.Context, uhid string) (*Patient, error) {
	for _, p := range m.items {
		if p.UHID == uhid {
			return p, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockRepo) Update(_ context.Context, p *Patient) error {
	m.items[p.ID] = p
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.items, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Patient, int, error) {
	var result []*Patient
	for _, p := range m.items {
		result = append(result, p)
	}
	return result, len(result), nil
}

func (m *mockRepo) Search(_ context.Context, query string, limit, offset int) ([]*Patient, int, error) {
	var result []*Patient
	for _, p := range m.items {
		if strings.HasPrefix(strings.ToLower(p.Name), strings.ToLower(query)) {
			result = append(result, p)
		}
	}
	return result, len(result), nil
}

func newTestService() *Service {
	return NewService(newMockRepo())
}

func TestRegister(t *testing.T) {
	svc := newTestService()
	p := &Patient{Name: "Asha Verma", Gender: "female"}
	if err := svc.Register(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.UHID == "" {
		t.Error("expected a UHID to be assigned")
	}
}

func TestRegister_NameRequired(t *testing.T) {
	svc := newTestService()
	if err := svc.Register(context.Background(), &Patient{}); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestRegister_DefaultGender(t *testing.T) {
	svc := newTestService()
	p := &Patient{Name: "Ravi"}
	if err := svc.Register(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Gender != "other" {
		t.Errorf("expected default gender 'other', got %s", p.Gender)
	}
}

func TestRegister_InvalidGender(t *testing.T) {
	svc := newTestService()
	if err := svc.Register(context.Background(), &Patient{Name: "X", Gender: "unknown"}); err == nil {
		t.Error("expected error for invalid gender")
	}
}

func TestRegister_InvalidAge(t *testing.T) {
	svc := newTestService()
	age := -3
	if err := svc.Register(context.Background(), &Patient{Name: "X", AgeYears: &age}); err == nil {
		t.Error("expected error for negative age")
	}
}

func TestGetByUHID(t *testing.T) {
	svc := newTestService()
	p := &Patient{Name: "Asha"}
	svc.Register(context.Background(), p)

	fetched, err := svc.GetByUHID(context.Background(), p.UHID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fetched.ID != p.ID {
		t.Error("unexpected ID mismatch")
	}
}

func TestSearchFallsBackToList(t *testing.T) {
	svc := newTestService()
	svc.Register(context.Background(), &Patient{Name: "Asha"})
	items, total, err := svc.Search(context.Background(), "", 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Errorf("expected 1 patient, got %d", total)
	}
}
