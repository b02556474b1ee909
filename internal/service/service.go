package service

import (
	"fks-execution/pkg/logger"
)

type Service struct {
	SignalService SignalService
	HealthService HealthService
}

func NewService(
	log *logger.Logger,
	state AppState,
) *Service {
	return &Service{
		SignalService: NewSignalService(log),
		HealthService: NewHealthService(state),
	}
}
