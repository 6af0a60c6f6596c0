package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/employee"
)

type employeeRepository struct {
	s *Store
}

func NewEmployeeRepository(s *Store) employee.EmployeeRepository {
	return &employeeRepository{s: s}
}

func (r *employeeRepository) GetByID(_ context.Context, id string) (employee.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.data.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *employeeRepository) GetByCode(_ context.Context, code string) (employee.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, e := range r.s.data.employees {
		if e.Code == code {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *employeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.data.employees {
		if existing.Code == e.Code {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
	}
	if e.ID == "" {
		id, err := newID()
		if err != nil {
			return employee.Employee{}, err
		}
		e.ID = id
	}
	put(ctx, r.s.data.employees, e.ID, e)
	return e, nil
}

func (r *employeeRepository) Update(ctx context.Context, e employee.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.data.employees[e.ID]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.Code = existing.Code
	e.PasswordHash = existing.PasswordHash
	e.CreatedAt = existing.CreatedAt
	put(ctx, r.s.data.employees, e.ID, e)
	return nil
}

func (r *employeeRepository) ListActive(_ context.Context) ([]employee.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []employee.Employee
	for _, e := range r.s.data.employees {
		if e.Status == employee.StatusActive {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}
