package stock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/StockLedger-api/internal/domain/entity"
	"github.com/jhoicas/StockLedger-api/internal/domain/stock"
)

func ptr(n int64) *int64 { return &n }

func TestRecompute(t *testing.T) {
	cases := []struct {
		name         string
		totalStock   int64
		reorderPoint *int64
		want         string
	}{
		{"stock cero", 0, ptr(5), entity.ProductStatusOutOfStock},
		{"stock cero sin umbral", 0, nil, entity.ProductStatusOutOfStock},
		{"bajo el umbral", 3, ptr(5), entity.ProductStatusLowStock},
		{"exactamente el umbral", 5, ptr(5), entity.ProductStatusLowStock},
		{"sobre el umbral", 6, ptr(5), entity.ProductStatusActive},
		{"sin umbral nunca low_stock", 1, nil, entity.ProductStatusActive},
		{"umbral explicito en cero", 1, ptr(0), entity.ProductStatusActive},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stock.Recompute(tc.totalStock, tc.reorderPoint))
		})
	}
}

func TestSignedDelta(t *testing.T) {
	cases := []struct {
		name      string
		movType   string
		magnitude int64
		want      int64
	}{
		{"received suma", entity.MovementTypeReceived, 5, 5},
		{"received con magnitud negativa suma igual", entity.MovementTypeReceived, -5, 5},
		{"returned suma", entity.MovementTypeReturned, 3, 3},
		{"dispatched resta", entity.MovementTypeDispatched, 4, -4},
		{"dispatched con magnitud negativa resta igual", entity.MovementTypeDispatched, -4, -4},
		{"adjusted conserva signo positivo", entity.MovementTypeAdjusted, 7, 7},
		{"adjusted conserva signo negativo", entity.MovementTypeAdjusted, -7, -7},
		{"transferred conserva signo", entity.MovementTypeTransferred, -2, -2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stock.SignedDelta(tc.movType, tc.magnitude))
		})
	}
}
