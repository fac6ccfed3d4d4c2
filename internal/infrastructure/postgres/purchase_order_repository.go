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

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de PurchaseOrderRepository sobre PostgreSQL
// (usable con pool o tx). Constraint única (organization_id, po_number).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste la OC y sus líneas.
func (r *PurchaseOrderRepo) Create(po *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, organization_id, po_number, supplier_id, supplier_name, status, subtotal, tax, shipping, total, expected_date, received_date, notes, approved_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		po.ID, po.OrganizationID, po.PONumber, po.SupplierID, po.SupplierName, po.Status,
		po.Subtotal, po.Tax, po.Shipping, po.Total,
		po.ExpectedDate, po.ReceivedDate, po.Notes, po.ApprovedBy, po.CreatedAt, po.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	for i := range po.Items {
		item := &po.Items[i]
		itemQuery := `
			INSERT INTO purchase_order_items (po_id, line_no, product_id, sku, product_name, quantity_ordered, quantity_received, unit_cost, total)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
		if _, err := r.q.Exec(context.Background(), itemQuery,
			po.ID, i, item.ProductID, item.SKU, item.ProductName,
			item.QuantityOrdered, item.QuantityReceived, item.UnitCost, item.Total,
		); err != nil {
			return fmt.Errorf("insert purchase order item: %w", err)
		}
	}
	return nil
}

const poColumns = `id, organization_id, po_number, supplier_id, supplier_name, status, subtotal, tax, shipping, total, expected_date, received_date, notes, approved_by, created_at, updated_at`

// GetByID obtiene una OC con sus líneas.
func (r *PurchaseOrderRepo) GetByID(organizationID, id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + ` FROM purchase_orders WHERE organization_id = $1 AND id = $2`
	return r.getOne(query, organizationID, id)
}

// GetForUpdate obtiene la OC bloqueando su fila (FOR UPDATE). Llamarlo solo
// dentro del TxRunner: la recepción y las transiciones de estado validan
// sobre la fila bloqueada para que dos llamadas concurrentes no pasen ambas
// el chequeo de estado.
func (r *PurchaseOrderRepo) GetForUpdate(organizationID, id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + ` FROM purchase_orders WHERE organization_id = $1 AND id = $2 FOR UPDATE`
	return r.getOne(query, organizationID, id)
}

// GetByNumber obtiene una OC por número dentro de la organización.
func (r *PurchaseOrderRepo) GetByNumber(organizationID, poNumber string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + ` FROM purchase_orders WHERE organization_id = $1 AND po_number = $2`
	return r.getOne(query, organizationID, poNumber)
}

func (r *PurchaseOrderRepo) getOne(query string, args ...any) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&po.ID, &po.OrganizationID, &po.PONumber, &po.SupplierID, &po.SupplierName, &po.Status,
		&po.Subtotal, &po.Tax, &po.Shipping, &po.Total,
		&po.ExpectedDate, &po.ReceivedDate, &po.Notes, &po.ApprovedBy, &po.CreatedAt, &po.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	items, err := r.loadItems(po.ID)
	if err != nil {
		return nil, err
	}
	po.Items = items
	return &po, nil
}

func (r *PurchaseOrderRepo) loadItems(poID string) ([]entity.POItem, error) {
	query := `
		SELECT product_id, sku, product_name, quantity_ordered, quantity_received, unit_cost, total
		FROM purchase_order_items WHERE po_id = $1 ORDER BY line_no`
	rows, err := r.q.Query(context.Background(), query, poID)
	if err != nil {
		return nil, fmt.Errorf("load purchase order items: %w", err)
	}
	defer rows.Close()
	var items []entity.POItem
	for rows.Next() {
		var it entity.POItem
		if err := rows.Scan(&it.ProductID, &it.SKU, &it.ProductName,
			&it.QuantityOrdered, &it.QuantityReceived, &it.UnitCost, &it.Total); err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Update actualiza la cabecera y las cantidades recibidas de las líneas.
// Llamarlo dentro del TxRunner cuando acompaña mutaciones de stock.
func (r *PurchaseOrderRepo) Update(po *entity.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders
		SET status = $1, received_date = $2, approved_by = $3, notes = $4, updated_at = $5
		WHERE id = $6`
	_, err := r.q.Exec(context.Background(), query,
		po.Status, po.ReceivedDate, po.ApprovedBy, po.Notes, po.UpdatedAt, po.ID,
	)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	for i := range po.Items {
		itemQuery := `
			UPDATE purchase_order_items SET quantity_received = $1
			WHERE po_id = $2 AND line_no = $3`
		if _, err := r.q.Exec(context.Background(), itemQuery,
			po.Items[i].QuantityReceived, po.ID, i,
		); err != nil {
			return fmt.Errorf("update purchase order item: %w", err)
		}
	}
	return nil
}

// ListByOrganization lista OCs con filtro opcional por estado.
func (r *PurchaseOrderRepo) ListByOrganization(organizationID, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + ` FROM purchase_orders WHERE organization_id = $1`
	args := []any{organizationID}
	pos := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		var po entity.PurchaseOrder
		if err := rows.Scan(&po.ID, &po.OrganizationID, &po.PONumber, &po.SupplierID, &po.SupplierName, &po.Status,
			&po.Subtotal, &po.Tax, &po.Shipping, &po.Total,
			&po.ExpectedDate, &po.ReceivedDate, &po.Notes, &po.ApprovedBy, &po.CreatedAt, &po.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, &po)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, po := range list {
		items, err := r.loadItems(po.ID)
		if err != nil {
			return nil, err
		}
		po.Items = items
	}
	return list, nil
}
