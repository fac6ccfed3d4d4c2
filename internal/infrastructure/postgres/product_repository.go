package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/StockLedger-api/internal/domain"
	"github.com/jhoicas/StockLedger-api/internal/domain/entity"
	"github.com/jhoicas/StockLedger-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con
// pool o tx). Las variantes viven en product_variants con PK (product_id, sku
// normalizado); nunca se direccionan por índice posicional.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste el producto y sus variantes.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, organization_id, name, category, description, reorder_point, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.OrganizationID, product.Name, product.Category,
		product.Description, product.ReorderPoint, product.Status,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	for i := range product.Variants {
		if err := r.insertVariant(product.ID, &product.Variants[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *ProductRepo) insertVariant(productID string, v *entity.Variant) error {
	attrs, err := json.Marshal(v.Attributes)
	if err != nil {
		return fmt.Errorf("marshal variant attributes: %w", err)
	}
	query := `
		INSERT INTO product_variants (product_id, sku, attributes, unit_price, cost_price, stock, barcode, weight, dimensions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = r.q.Exec(context.Background(), query,
		productID, v.SKU, attrs, v.UnitPrice, v.CostPrice, v.Stock,
		v.Barcode, v.Weight, v.Dimensions,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert variant: %w", err)
	}
	return nil
}

// GetByID obtiene un producto con sus variantes dentro de la organización.
func (r *ProductRepo) GetByID(organizationID, id string) (*entity.Product, error) {
	return r.get(organizationID, id, false)
}

// GetForUpdate obtiene el producto bloqueando su fila (SELECT FOR UPDATE):
// exclusión mutua por producto mientras dura la transacción del caller.
func (r *ProductRepo) GetForUpdate(organizationID, id string) (*entity.Product, error) {
	return r.get(organizationID, id, true)
}

func (r *ProductRepo) get(organizationID, id string, forUpdate bool) (*entity.Product, error) {
	query := `
		SELECT id, organization_id, name, category, description, reorder_point, status, created_at, updated_at
		FROM products WHERE organization_id = $1 AND id = $2`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, organizationID, id).Scan(
		&p.ID, &p.OrganizationID, &p.Name, &p.Category, &p.Description,
		&p.ReorderPoint, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	variants, err := r.loadVariants(p.ID)
	if err != nil {
		return nil, err
	}
	p.Variants = variants
	return &p, nil
}

func (r *ProductRepo) loadVariants(productID string) ([]entity.Variant, error) {
	query := `
		SELECT sku, attributes, unit_price, cost_price, stock, barcode, weight, dimensions
		FROM product_variants WHERE product_id = $1 ORDER BY sku`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("load variants: %w", err)
	}
	defer rows.Close()
	var variants []entity.Variant
	for rows.Next() {
		var v entity.Variant
		var attrs []byte
		if err := rows.Scan(&v.SKU, &attrs, &v.UnitPrice, &v.CostPrice, &v.Stock,
			&v.Barcode, &v.Weight, &v.Dimensions); err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		if len(attrs) > 0 {
			if err := json.Unmarshal(attrs, &v.Attributes); err != nil {
				return nil, fmt.Errorf("unmarshal variant attributes: %w", err)
			}
		}
		variants = append(variants, v)
	}
	return variants, rows.Err()
}

// Update actualiza los atributos de cabecera del producto (incluido el estado
// derivado). El stock de variantes va por UpdateVariantStock.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $1, category = $2, description = $3, reorder_point = $4, status = $5, updated_at = $6
		WHERE id = $7`
	_, err := r.q.Exec(context.Background(), query,
		product.Name, product.Category, product.Description,
		product.ReorderPoint, product.Status, product.UpdatedAt, product.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateVariantStock escribe la cantidad de una variante (SKU normalizado).
// El CHECK (stock >= 0) del esquema respalda el invariante que el motor ya
// validó con la fila del producto bloqueada.
func (r *ProductRepo) UpdateVariantStock(productID, sku string, stockQty int64) error {
	query := `
		UPDATE product_variants SET stock = $1
		WHERE product_id = $2 AND upper(btrim(sku)) = upper(btrim($3))`
	tag, err := r.q.Exec(context.Background(), query, stockQty, productID, sku)
	if err != nil {
		return fmt.Errorf("update variant stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVariantNotFound
	}
	return nil
}

// ListByOrganization lista productos de la organización con sus variantes.
func (r *ProductRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT id, organization_id, name, category, description, reorder_point, status, created_at, updated_at
		FROM products WHERE organization_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.OrganizationID, &p.Name, &p.Category, &p.Description,
			&p.ReorderPoint, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, p := range list {
		variants, err := r.loadVariants(p.ID)
		if err != nil {
			return nil, err
		}
		p.Variants = variants
	}
	return list, nil
}

// Delete elimina el producto; las variantes caen por ON DELETE CASCADE.
// El libro de movimientos se conserva como registro histórico.
func (r *ProductRepo) Delete(organizationID, id string) error {
	query := `DELETE FROM products WHERE organization_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query, organizationID, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
