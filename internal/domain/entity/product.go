package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Estados agregados de un producto, derivados del stock total y el punto de reorden.
// DISCONTINUED solo lo asigna una acción explícita de catálogo; la política de
// stock nunca lo sobreescribe.
const (
	ProductStatusActive       = "active"
	ProductStatusLowStock     = "low_stock"
	ProductStatusOutOfStock   = "out_of_stock"
	ProductStatusDiscontinued = "discontinued"
)

// Variant es una configuración vendible de un producto (talla, color, etc.)
// con su propio stock y precios. Se identifica dentro del producto por su SKU,
// único por producto; nunca por índice posicional.
type Variant struct {
	SKU        string
	Attributes map[string]string
	UnitPrice  decimal.Decimal
	CostPrice  decimal.Decimal
	Stock      int64 // invariante: >= 0 en todo estado observable
	Barcode    string
	Weight     *float64
	Dimensions string
}

// Product es la raíz del agregado de inventario (multi-tenant por organización).
// Status es derivado: solo el motor de mutaciones lo recalcula al cambiar stock.
type Product struct {
	ID             string
	OrganizationID string
	Name           string
	Category       string
	Description    string
	ReorderPoint   *int64 // umbral de "low stock"; nil = sin configurar
	Status         string
	Variants       []Variant
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NormalizeSKU normaliza un SKU para comparación: sin espacios y en mayúsculas.
func NormalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}

// TotalStock suma el stock de todas las variantes del producto.
func (p *Product) TotalStock() int64 {
	var total int64
	for i := range p.Variants {
		total += p.Variants[i].Stock
	}
	return total
}

// FindVariant busca una variante por SKU normalizado. Devuelve nil si no existe.
// Si el catálogo violara la unicidad de SKU, gana la primera coincidencia.
func (p *Product) FindVariant(sku string) *Variant {
	norm := NormalizeSKU(sku)
	for i := range p.Variants {
		if NormalizeSKU(p.Variants[i].SKU) == norm {
			return &p.Variants[i]
		}
	}
	return nil
}
