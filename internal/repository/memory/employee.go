package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/employee"
)

type EmployeeRepository struct {
	mu        sync.RWMutex
	employees map[string]employee.Employee
}

func NewEmployeeRepository(seed ...employee.Employee) *EmployeeRepository {
	r := &EmployeeRepository{employees: make(map[string]employee.Employee)}
	for _, e := range seed {
		r.employees[e.ID] = e
	}
	return r
}

func (r *EmployeeRepository) GetByID(_ context.Context, id string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *EmployeeRepository) List(_ context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]employee.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		if filter.Status != nil && string(e.Status) != *filter.Status {
			continue
		}
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].FullName != result[j].FullName {
			return result[i].FullName < result[j].FullName
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *EmployeeRepository) FindActiveByPIN(_ context.Context, pin string) ([]employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []employee.Employee
	for _, e := range r.employees {
		if e.IsActive() && e.PIN == pin {
			result = append(result, e)
		}
	}
	return result, nil
}

func (r *EmployeeRepository) Create(_ context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pinTakenLocked(newEmployee) {
		return employee.Employee{}, employee.ErrPINInUse
	}
	r.employees[newEmployee.ID] = newEmployee
	return newEmployee, nil
}

func (r *EmployeeRepository) Replace(_ context.Context, e employee.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.employees[e.ID]; !ok {
		return employee.ErrEmployeeNotFound
	}
	if r.pinTakenLocked(e) {
		return employee.ErrPINInUse
	}
	r.employees[e.ID] = e
	return nil
}

// pinTakenLocked mirrors the partial unique index on active PINs.
func (r *EmployeeRepository) pinTakenLocked(e employee.Employee) bool {
	if !e.IsActive() {
		return false
	}
	for id, other := range r.employees {
		if id != e.ID && other.IsActive() && other.PIN == e.PIN {
			return true
		}
	}
	return false
}
