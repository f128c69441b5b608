package databases

import (
	"context"
	"sort"
	"time"

	"github.com/bluelinehq/police-records-api/models"
)

const reportCollection = "reports"

// ReportDatabase contains the methods to use with the report database
type ReportDatabase interface {
	CreateReport(ctx context.Context, r models.Report) (models.Report, error)
	GetReport(ctx context.Context, id int) (models.Report, error)
	UpdateReport(ctx context.Context, id int, patch map[string]interface{}) (models.Report, error)
	DeleteReport(ctx context.Context, id int) error
	ListReports(ctx context.Context) ([]models.Report, error)
}

func (s *MemoryStore) CreateReport(_ context.Context, r models.Report) (models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = s.nextReportID
	s.nextReportID++
	now := time.Now()
	r.ReportNumber = reportNumber(now.Year(), r.ID)
	if r.Status == "" {
		r.Status = "pending"
	}
	if r.Priority == "" {
		r.Priority = "medium"
	}
	r.CreatedAt = now
	r.UpdatedAt = now
	s.reports[r.ID] = r
	return r, nil
}

func (s *MemoryStore) GetReport(_ context.Context, id int) (models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[id]
	if !ok {
		return models.Report{}, ErrNotFound
	}
	return r, nil
}

func (s *MemoryStore) UpdateReport(_ context.Context, id int, patch map[string]interface{}) (models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[id]
	if !ok {
		return models.Report{}, ErrNotFound
	}
	if err := applyPatch(&r, patch, "id", "reportNumber", "createdAt", "updatedAt"); err != nil {
		return models.Report{}, err
	}
	r.UpdatedAt = bump(r.UpdatedAt)
	s.reports[id] = r
	return r, nil
}

func (s *MemoryStore) DeleteReport(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reports[id]; !ok {
		return ErrNotFound
	}
	delete(s.reports, id)
	return nil
}

func (s *MemoryStore) ListReports(_ context.Context) ([]models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Report, 0, len(s.reports))
	for _, r := range s.reports {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Mongo implementation

func (m *MongoStore) CreateReport(ctx context.Context, r models.Report) (models.Report, error) {
	id, err := m.nextID(ctx, reportCollection)
	if err != nil {
		return models.Report{}, err
	}
	r.ID = id
	now := time.Now()
	r.ReportNumber = reportNumber(now.Year(), r.ID)
	if r.Status == "" {
		r.Status = "pending"
	}
	if r.Priority == "" {
		r.Priority = "medium"
	}
	r.CreatedAt = now
	r.UpdatedAt = now
	if _, err := m.db.Collection(reportCollection).InsertOne(ctx, r); err != nil {
		return models.Report{}, err
	}
	return r, nil
}

func (m *MongoStore) GetReport(ctx context.Context, id int) (models.Report, error) {
	var r models.Report
	err := m.findByID(ctx, reportCollection, id, &r)
	return r, err
}

func (m *MongoStore) UpdateReport(ctx context.Context, id int, patch map[string]interface{}) (models.Report, error) {
	var r models.Report
	if err := m.findByID(ctx, reportCollection, id, &r); err != nil {
		return models.Report{}, err
	}
	if err := applyPatch(&r, patch, "id", "reportNumber", "createdAt", "updatedAt"); err != nil {
		return models.Report{}, err
	}
	r.UpdatedAt = bump(r.UpdatedAt)
	if err := m.replace(ctx, reportCollection, id, r); err != nil {
		return models.Report{}, err
	}
	return r, nil
}

func (m *MongoStore) DeleteReport(ctx context.Context, id int) error {
	return m.remove(ctx, reportCollection, id)
}

func (m *MongoStore) ListReports(ctx context.Context) ([]models.Report, error) {
	out := []models.Report{}
	err := m.listAll(ctx, reportCollection, &out)
	return out, err
}
