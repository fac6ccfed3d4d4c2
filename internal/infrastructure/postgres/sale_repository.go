package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/StockLedger-api/internal/domain"
	"github.com/jhoicas/StockLedger-api/internal/domain/entity"
	"github.com/jhoicas/StockLedger-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool
// o tx). La constraint única (organization_id, sale_number) respalda el
// rechazo de números duplicados bajo carrera.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la venta y sus líneas.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, organization_id, sale_number, client_name, client_email, subtotal, tax, discount, total, payment_method, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.OrganizationID, sale.SaleNumber, sale.ClientName, sale.ClientEmail,
		sale.Subtotal, sale.Tax, sale.Discount, sale.Total,
		sale.PaymentMethod, sale.Status, sale.Notes, sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	for i := range sale.Items {
		item := &sale.Items[i]
		itemQuery := `
			INSERT INTO sale_items (sale_id, line_no, product_id, product_name, sku, quantity, unit_price, total)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
		if _, err := r.q.Exec(context.Background(), itemQuery,
			sale.ID, i, item.ProductID, item.ProductName, item.SKU,
			item.Quantity, item.UnitPrice, item.Total,
		); err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

const saleColumns = `id, organization_id, sale_number, client_name, client_email, subtotal, tax, discount, total, payment_method, status, notes, created_at, updated_at`

// GetByID obtiene una venta con sus líneas.
func (r *SaleRepo) GetByID(organizationID, id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE organization_id = $1 AND id = $2`
	return r.getOne(query, organizationID, id)
}

// GetByNumber obtiene una venta por número dentro de la organización.
func (r *SaleRepo) GetByNumber(organizationID, saleNumber string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE organization_id = $1 AND sale_number = $2`
	return r.getOne(query, organizationID, saleNumber)
}

func (r *SaleRepo) getOne(query string, args ...any) (*entity.Sale, error) {
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&s.ID, &s.OrganizationID, &s.SaleNumber, &s.ClientName, &s.ClientEmail,
		&s.Subtotal, &s.Tax, &s.Discount, &s.Total,
		&s.PaymentMethod, &s.Status, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	items, err := r.loadItems(s.ID)
	if err != nil {
		return nil, err
	}
	s.Items = items
	return &s, nil
}

func (r *SaleRepo) loadItems(saleID string) ([]entity.SaleItem, error) {
	query := `
		SELECT product_id, product_name, sku, quantity, unit_price, total
		FROM sale_items WHERE sale_id = $1 ORDER BY line_no`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("load sale items: %w", err)
	}
	defer rows.Close()
	var items []entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ProductID, &it.ProductName, &it.SKU,
			&it.Quantity, &it.UnitPrice, &it.Total); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ListByOrganization lista ventas de la organización, más recientes primero.
func (r *SaleRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + ` FROM sales WHERE organization_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.OrganizationID, &s.SaleNumber, &s.ClientName, &s.ClientEmail,
			&s.Subtotal, &s.Tax, &s.Discount, &s.Total,
			&s.PaymentMethod, &s.Status, &s.Notes, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, s := range list {
		items, err := r.loadItems(s.ID)
		if err != nil {
			return nil, err
		}
		s.Items = items
	}
	return list, nil
}
