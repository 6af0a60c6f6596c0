// Package memory provides in-process repositories for tests and local development.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/request"
	"github.com/google/uuid"
)

// Store holds every table. Repositories created from the same Store share data.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	data tables
}

type tables struct {
	employees   map[string]employee.Employee
	records     map[string]attendance.Record
	submissions map[string]attendance.MonthlySubmission
	leaves      map[string]request.LeaveRequest
	adjustments map[string]request.AdjustmentRequest
}

func NewStore() *Store {
	return &Store{data: tables{
		employees:   make(map[string]employee.Employee),
		records:     make(map[string]attendance.Record),
		submissions: make(map[string]attendance.MonthlySubmission),
		leaves:      make(map[string]request.LeaveRequest),
		adjustments: make(map[string]request.AdjustmentRequest),
	}}
}

type txKey struct{}

// undoLog records how to revert each write made inside one transaction.
type undoLog struct {
	steps []func()
}

// put stores v under k. Inside a transaction it also records the previous value
// so a rollback reverts only the keys the transaction wrote. Callers hold s.mu.
func put[V any](ctx context.Context, m map[string]V, k string, v V) {
	if log, ok := ctx.Value(txKey{}).(*undoLog); ok {
		old, existed := m[k]
		log.steps = append(log.steps, func() {
			if existed {
				m[k] = old
			} else {
				delete(m, k)
			}
		})
	}
	m[k] = v
}

// WithinTransaction serializes transactions and undoes the writes of fn when it fails.
// Writes made outside the transaction are left in place.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*undoLog); ok {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	log := &undoLog{}
	if err := fn(context.WithValue(ctx, txKey{}, log)); err != nil {
		s.mu.Lock()
		for i := len(log.steps) - 1; i >= 0; i-- {
			log.steps[i]()
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return id.String(), nil
}
