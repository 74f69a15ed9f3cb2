package mortality

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	items map[uuid.UUID]*Report
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: make(map[uuid.UUID]*Report)}
}

func (m *mockRepo) Create(_ context.Context, r *Report) error {
	r.ID = uuid.New()
	r.CreatedAt = time.Now()
	r.UpdatedAt = time.Now()
	m.items[r.ID] = r
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Report, error) {
	r, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return r, nil
}

func (m *mockRepo) Update(_ context.Context, r *Report) error {
	m.items[r.ID] = r
	return nil
}

func (m *mockRepo) ListByRange(_ context.Context, from, to time.Time, limit, offset int) ([]*Report, int, error) {
	var result []*Report
	for _, r := range m.items {
		if !r.DiedAt.Before(from) && r.DiedAt.Before(to) {
			result = append(result, r)
		}
	}
	return result, len(result), nil
}

func TestFile(t *testing.T) {
	svc := NewService(newMockRepo())
	r := &Report{PatientID: uuid.New(), Cause: "cardiac arrest", Place: "ICU"}
	if err := svc.File(context.Background(), r); err != nil {
		t.Fatalf("file: %v", err)
	}
	if r.DiedAt.IsZero() {
		t.Error("expected time of death to default to now")
	}
}

func TestFile_CauseRequired(t *testing.T) {
	svc := NewService(newMockRepo())
	if err := svc.File(context.Background(), &Report{PatientID: uuid.New()}); err == nil {
		t.Error("expected error for missing cause")
	}
}

func TestFile_FutureDeath(t *testing.T) {
	svc := NewService(newMockRepo())
	r := &Report{PatientID: uuid.New(), Cause: "x", DiedAt: time.Now().Add(24 * time.Hour)}
	if err := svc.File(context.Background(), r); err == nil {
		t.Error("expected error for future time of death")
	}
}

func TestListByRange(t *testing.T) {
	svc := NewService(newMockRepo())
	old := &Report{PatientID: uuid.New(), Cause: "a", DiedAt: time.Now().Add(-72 * time.Hour)}
	recent := &Report{PatientID: uuid.New(), Cause: "b", DiedAt: time.Now().Add(-2 * time.Hour)}
	svc.File(context.Background(), old)
	svc.File(context.Background(), recent)

	items, total, err := svc.ListByRange(context.Background(), time.Now().Add(-24*time.Hour), time.Time{}, 20, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Fatalf("expected 1 report in range, got %d", total)
	}
	if items[0].ID != recent.ID {
		t.Error("expected the recent report")
	}
}

func TestListByRange_Inverted(t *testing.T) {
	svc := NewService(newMockRepo())
	_, _, err := svc.ListByRange(context.Background(), time.Now(), time.Now().Add(-time.Hour), 20, 0)
	if err == nil {
		t.Error("expected error for inverted range")
	}
}
