package dto

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignal_MarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		ema     float64
		wantEMA string
	}{
		{name: "finite", ema: 4422.1, wantEMA: `"ema":4422.1`},
		{name: "zero", ema: 0, wantEMA: `"ema":0`},
		{name: "positive infinity", ema: math.Inf(1), wantEMA: `"ema":null`},
		{name: "negative infinity", ema: math.Inf(-1), wantEMA: `"ema":null`},
		{name: "nan", ema: math.NaN(), wantEMA: `"ema":null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(Signal{Symbol: "NQ", RSI: 55, EMA: tt.ema, RiskAllowance: 1500, LatencyMS: 5})
			require.NoError(t, err)
			assert.Contains(t, string(got), tt.wantEMA)

			var raw map[string]interface{}
			require.NoError(t, json.Unmarshal(got, &raw))
			assert.Len(t, raw, 5)
			assert.Equal(t, "NQ", raw["symbol"])
			assert.Equal(t, 55.0, raw["rsi"])
			assert.Equal(t, 1500.0, raw["risk_allowance"])
			assert.Equal(t, 5.0, raw["latency_ms"])
		})
	}
}

func TestSignal_MarshalJSONPointer(t *testing.T) {
	got, err := json.Marshal(&Signal{Symbol: "ES", EMA: math.Inf(1)})
	require.NoError(t, err)
	assert.Contains(t, string(got), `"ema":null`)
}
