package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/attendance"
)

// AttendanceRepository keeps records in insertion order. Records are
// append-only apart from Resolve and Delete.
type AttendanceRepository struct {
	mu      sync.RWMutex
	records map[string]attendance.Record
	order   []string
}

func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{records: make(map[string]attendance.Record)}
}

func (r *AttendanceRepository) Create(_ context.Context, record attendance.Record) (attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[record.ID]; !exists {
		r.order = append(r.order, record.ID)
	}
	r.records[record.ID] = record
	return record, nil
}

func (r *AttendanceRepository) GetByID(_ context.Context, id string) (attendance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		return attendance.Record{}, attendance.ErrAttendanceNotFound
	}
	return rec, nil
}

func (r *AttendanceRepository) List(_ context.Context, filter attendance.AttendanceFilter) ([]attendance.Record, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []attendance.Record
	for _, id := range r.order {
		rec := r.records[id]
		if filter.EmployeeID != nil && rec.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && string(rec.Status) != *filter.Status {
			continue
		}
		if filter.Type != nil && string(rec.Type) != *filter.Type {
			continue
		}
		if filter.From != nil && rec.Timestamp.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !rec.Timestamp.Before(*filter.To) {
			continue
		}
		matched = append(matched, rec)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})

	total := int64(len(matched))
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		start := (page - 1) * filter.Limit
		if start >= len(matched) {
			return []attendance.Record{}, total, nil
		}
		end := start + filter.Limit
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[start:end]
	}
	return matched, total, nil
}

func (r *AttendanceRepository) Resolve(_ context.Context, id string, res attendance.Resolution) (attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return attendance.Record{}, attendance.ErrAttendanceNotFound
	}
	if !rec.IsPending() {
		return rec, attendance.ErrNotPending
	}

	validatedAt := res.ValidatedAt
	validatedBy := res.ValidatedBy
	rec.Status = res.Status
	rec.ValidatedAt = &validatedAt
	rec.ValidatedBy = &validatedBy
	rec.RejectionReason = res.RejectionReason
	r.records[id] = rec
	return rec, nil
}

func (r *AttendanceRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	delete(r.records, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
