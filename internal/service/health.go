package service

import (
	"context"
	"fmt"
	"time"

	"fks-execution/internal/dto"
)

const (
	ServiceName   = "fks-execution"
	StatusHealthy = "healthy"
)

// AppState is created once at startup and never mutated, so handlers read it without locks.
type AppState struct {
	Start time.Time
}

func NewAppState() AppState {
	return AppState{Start: time.Now()}
}

type HealthService interface {
	Health(ctx context.Context) dto.Health
	Uptime() time.Duration
}

type healthService struct {
	state AppState
	now   func() time.Time
}

func NewHealthService(state AppState) HealthService {
	return &healthService{
		state: state,
		now:   time.Now,
	}
}

func (s *healthService) Uptime() time.Duration {
	// Start carries a monotonic reading, so the difference never goes negative.
	uptime := s.now().Sub(s.state.Start)
	if uptime < 0 {
		return 0
	}
	return uptime
}

func (s *healthService) Health(ctx context.Context) dto.Health {
	return dto.Health{
		Service: fmt.Sprintf("%s|uptime=%ds", ServiceName, int64(s.Uptime()/time.Second)),
		Status:  StatusHealthy,
	}
}
