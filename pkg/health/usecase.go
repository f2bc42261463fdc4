package health

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

const StatusOK = "ok"

// Checker represents a dependency health check.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// Report maps a checker name to "ok" or its error text.
type Report map[string]string

// ReadinessUseCase describes readiness verification.
type ReadinessUseCase interface {
	// Ready runs all checks concurrently. The error joins every failed check.
	Ready(ctx context.Context) (Report, error)
}

type service struct {
	checkers []Checker
}

// NewService aggregates dependency checkers.
func NewService(checkers ...Checker) ReadinessUseCase {
	return &service{checkers: checkers}
}

func (s *service) Ready(ctx context.Context) (Report, error) {
	report := make(Report, len(s.checkers))
	var (
		mu   sync.Mutex
		errs []error
	)
	var g errgroup.Group
	for _, ch := range s.checkers {
		g.Go(func() error {
			err := ch.Check(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report[ch.Name()] = err.Error()
				errs = append(errs, fmt.Errorf("%s: %w", ch.Name(), err))
				return nil
			}
			report[ch.Name()] = StatusOK
			return nil
		})
	}
	_ = g.Wait()
	return report, errors.Join(errs...)
}
