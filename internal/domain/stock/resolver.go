// Package stock contiene la lógica pura del libro de stock: resolución de
// variantes y política de estado. Sin dependencias de infraestructura; la
// usan por igual ventas, recepción de compras y movimientos manuales para
// que los tres puntos de entrada se comporten idéntico.
package stock

import (
	"github.com/jhoicas/StockLedger-api/internal/domain"
	"github.com/jhoicas/StockLedger-api/internal/domain/entity"
)

// Resolve elige la variante destino de una mutación de stock.
//
// Reglas, en orden:
//  1. Producto sin variantes → ErrNoVariants.
//  2. Con skuHint: coincidencia por SKU normalizado (trim + mayúsculas);
//     si hay duplicados en catálogo gana la primera coincidencia.
//  3. Sin coincidencia (o sin hint) y exactamente una variante → esa variante.
//  4. Sin hint y varias variantes → ErrAmbiguousVariant.
//  5. Con hint sin coincidencia y varias variantes → ErrVariantNotFound.
func Resolve(product *entity.Product, skuHint string) (*entity.Variant, error) {
	if len(product.Variants) == 0 {
		return nil, domain.ErrNoVariants
	}
	hinted := entity.NormalizeSKU(skuHint) != ""
	if hinted {
		if v := product.FindVariant(skuHint); v != nil {
			return v, nil
		}
	}
	if len(product.Variants) == 1 {
		return &product.Variants[0], nil
	}
	if hinted {
		return nil, domain.ErrVariantNotFound
	}
	return nil, domain.ErrAmbiguousVariant
}
