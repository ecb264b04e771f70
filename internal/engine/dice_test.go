package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thundergore/damage-calc/internal/engine"
	calcerr "github.com/thundergore/damage-calc/internal/errors"
)

func TestExpectedValue(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		want    float64
		wantErr bool
	}{
		{
			name: "plain integer",
			expr: "2",
			want: 2.0,
		},
		{
			name: "plain decimal",
			expr: "2.5",
			want: 2.5,
		},
		{
			name: "bare d3",
			expr: "D3",
			want: 2.0,
		},
		{
			name: "bare d6",
			expr: "D6",
			want: 3.5,
		},
		{
			name: "two d3 plus one",
			expr: "2D3+1",
			want: 5.0, // 2*2 + 1
		},
		{
			name: "d6 doubled",
			expr: "D6*2",
			want: 7.0,
		},
		{
			name: "two d6",
			expr: "2d6",
			want: 7.0,
		},
		{
			name: "multiplied term plus constant",
			expr: "1d3*2+4",
			want: 8.0, // 2*2 + 4
		},
		{
			name: "sum of dice terms",
			expr: "d6+d3",
			want: 5.5,
		},
		{
			name: "subtraction",
			expr: "d6-1",
			want: 2.5,
		},
		{
			name: "mixed case with spaces",
			expr: " 2 D 3 + 1 ",
			want: 5.0,
		},
		{
			name: "leading plus",
			expr: "+3",
			want: 3.0,
		},
		{
			name: "negative constant",
			expr: "-2",
			want: -2.0,
		},
		{
			name: "empty expression",
			expr: "",
			want: 0.0,
		},
		{
			name:    "garbage",
			expr:    "bogus",
			wantErr: true,
		},
		{
			name:    "unsupported die size",
			expr:    "2d8",
			wantErr: true,
		},
		{
			name:    "d4 term inside sum",
			expr:    "d6+1d4",
			wantErr: true,
		},
		{
			name:    "lone d",
			expr:    "d",
			wantErr: true,
		},
		{
			name:    "multiplier without dice",
			expr:    "3*2",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.ExpectedValue(tt.expr)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, calcerr.IsUnsupportedExpression(err), "expected unsupported_expression, got %v", err)
				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}
