package service

import (
	"context"
	"time"

	"fks-execution/internal/dto"
	"fks-execution/pkg/logger"
)

const (
	DefaultSymbol = "ES"

	// placeholderRSI stands in for a real RSI until indicator math is in scope.
	placeholderRSI = 55.0

	riskNotional = 150000.0
	riskFraction = 0.01

	processingDelay = 5 * time.Millisecond
)

// DefaultPrices is the sample series used when a request carries no usable input.
var DefaultPrices = []float64{4420.0, 4422.0, 4419.5, 4425.0, 4424.0}

type SignalService interface {
	// BuildSignal never fails: a nil input or an empty series falls back to the
	// default symbol and prices as a pair.
	BuildSignal(ctx context.Context, input *dto.SignalInput) dto.Signal
}

type signalService struct {
	log   *logger.Logger
	delay time.Duration
}

func NewSignalService(log *logger.Logger) SignalService {
	return &signalService{
		log:   log,
		delay: processingDelay,
	}
}

func (s *signalService) BuildSignal(ctx context.Context, input *dto.SignalInput) dto.Signal {
	start := time.Now()

	symbol, prices := DefaultSymbol, DefaultPrices
	if input != nil && len(input.Prices) > 0 {
		symbol, prices = input.Symbol, input.Prices
	}

	signal := dto.Signal{
		Symbol:        symbol,
		RSI:           placeholderRSI,
		EMA:           Mean(prices),
		RiskAllowance: RiskAllowance(),
	}

	s.simulateLatency(ctx)

	signal.LatencyMS = uint64(time.Since(start).Milliseconds())
	s.log.DebugContext(ctx, "Signal built",
		logger.StringField("symbol", signal.Symbol),
		logger.IntField("prices", len(prices)),
		logger.Field("latency_ms", signal.LatencyMS),
	)
	return signal
}

func (s *signalService) simulateLatency(ctx context.Context) {
	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// Mean is the arithmetic mean of prices. Callers guarantee a non-empty series.
func Mean(prices []float64) float64 {
	var sum float64
	for _, p := range prices {
		sum += p
	}
	return sum / float64(len(prices))
}

// RiskAllowance is the fixed fraction of the notional a single signal may risk.
func RiskAllowance() float64 {
	return riskNotional * riskFraction
}
