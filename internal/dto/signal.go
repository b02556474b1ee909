package dto

import (
	"encoding/json"
	"math"
)

// SignalRequest is the optional body of POST /execute/signal.
type SignalRequest struct {
	Symbol *string   `json:"symbol"`
	Prices []float64 `json:"prices"`
}

// SignalInput is a symbol with the price series to evaluate it on.
type SignalInput struct {
	Symbol string
	Prices []float64
}

// Input pairs symbol and prices. It returns nil unless both were sent; an empty series is
// left for the signal builder to reject.
func (r *SignalRequest) Input() *SignalInput {
	if r == nil || r.Symbol == nil || r.Prices == nil {
		return nil
	}
	return &SignalInput{
		Symbol: *r.Symbol,
		Prices: r.Prices,
	}
}

// Signal is the placeholder indicator set. RSI is a constant and EMA is the plain mean of
// the series; both keep their names for API compatibility.
type Signal struct {
	Symbol        string  `json:"symbol"`
	RSI           float64 `json:"rsi"`
	EMA           float64 `json:"ema"`
	RiskAllowance float64 `json:"risk_allowance"`
	LatencyMS     uint64  `json:"latency_ms"`
}

// MarshalJSON writes a non-finite ema as null; a mean that overflows is still a signal.
func (s Signal) MarshalJSON() ([]byte, error) {
	type signal Signal
	out := struct {
		signal
		EMA *float64 `json:"ema"`
	}{signal: signal(s)}
	if !math.IsInf(s.EMA, 0) && !math.IsNaN(s.EMA) {
		out.EMA = &s.EMA
	}
	return json.Marshal(out)
}

type Health struct {
	Service string `json:"service"`
	Status  string `json:"status"`
}
