package store

import (
	"citizens-link/internal/model"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// Memory 进程内存储，用于演示和测试，重启后数据丢失
type Memory struct {
	mu      sync.RWMutex
	types   map[uint]model.ActivityType
	reports map[uint]model.ActivityReport
	nextID  uint
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		types:   make(map[uint]model.ActivityType),
		reports: make(map[uint]model.ActivityReport),
		now:     time.Now,
	}
}

func (s *Memory) id() uint {
	s.nextID++
	return s.nextID
}

func (s *Memory) ListActivityTypes(_ context.Context) ([]model.ActivityType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	types := make([]model.ActivityType, 0, len(s.types))
	for _, t := range s.types {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i].ID < types[j].ID })
	return types, nil
}

func (s *Memory) GetActivityType(_ context.Context, id uint) (*model.ActivityType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.types[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "activity type %d", id)
	}
	return &t, nil
}

func (s *Memory) CreateActivityType(_ context.Context, activity *model.ActivityType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.nameTaken(activity.Name, 0) {
		return errors.Wrapf(ErrDuplicate, "activity type %q", activity.Name)
	}
	activity.ID = s.id()
	activity.CreatedAt = s.now()
	activity.UpdatedAt = activity.CreatedAt
	s.types[activity.ID] = *activity
	return nil
}

func (s *Memory) UpdateActivityType(_ context.Context, id uint, update ActivityTypeUpdate) (*model.ActivityType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.types[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "activity type %d", id)
	}
	if update.Name != nil {
		if s.nameTaken(*update.Name, id) {
			return nil, errors.Wrapf(ErrDuplicate, "activity type %q", *update.Name)
		}
		t.Name = *update.Name
	}
	if update.BasePoints != nil {
		t.BasePoints = *update.BasePoints
	}
	t.UpdatedAt = s.now()
	s.types[id] = t
	return &t, nil
}

func (s *Memory) nameTaken(name string, except uint) bool {
	for id, t := range s.types {
		if id != except && t.Name == name {
			return true
		}
	}
	return false
}

func (s *Memory) ListPendingReports(_ context.Context) ([]model.ActivityReport, error) {
	reports := s.reportsWithStatus(model.ReportPending)
	sort.SliceStable(reports, func(i, j int) bool {
		if !reports[i].CreatedAt.Equal(reports[j].CreatedAt) {
			return reports[i].CreatedAt.After(reports[j].CreatedAt)
		}
		return reports[i].ID > reports[j].ID
	})
	return reports, nil
}

func (s *Memory) ListApprovedReports(_ context.Context) ([]model.ActivityReport, error) {
	return s.reportsWithStatus(model.ReportApproved), nil
}

func (s *Memory) reportsWithStatus(status model.ReportStatus) []model.ActivityReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reports := make([]model.ActivityReport, 0)
	for _, r := range s.reports {
		if r.Status != status {
			continue
		}
		// 与数据库关联查询一致：活动被删除时没有关联
		if t, ok := s.types[r.ActivityID]; ok {
			r.ActivityType = &t
		} else {
			r.ActivityType = nil
		}
		reports = append(reports, r)
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].ID < reports[j].ID })
	return reports
}

func (s *Memory) GetReport(_ context.Context, id uint) (*model.ActivityReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "report %d", id)
	}
	if t, ok := s.types[r.ActivityID]; ok {
		r.ActivityType = &t
	}
	return &r, nil
}

func (s *Memory) InsertReport(_ context.Context, report *model.ActivityReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	report.ID = s.id()
	if report.CreatedAt.IsZero() {
		report.CreatedAt = s.now()
	}
	report.UpdatedAt = report.CreatedAt
	stored := *report
	stored.ActivityType = nil
	s.reports[report.ID] = stored
	return nil
}

func (s *Memory) ApproveReport(_ context.Context, id uint, approval Approval) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[id]
	if !ok {
		return errors.Wrapf(ErrNotFound, "report %d", id)
	}
	if r.Status != model.ReportPending {
		return errors.Wrapf(ErrAlreadyApproved, "report %d", id)
	}
	approvedAt := approval.ApprovedAt
	approvedBy := approval.ApprovedBy
	r.Status = model.ReportApproved
	r.ApprovedAt = &approvedAt
	r.ApprovedBy = &approvedBy
	r.AwardedPoints = approval.AwardedPoints
	r.UpdatedAt = s.now()
	s.reports[id] = r
	return nil
}
