package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/StockLedger-api/internal/domain/entity"
)

func TestCanTransition(t *testing.T) {
	legal := []struct{ from, to string }{
		{entity.POStatusDraft, entity.POStatusPendingApproval},
		{entity.POStatusDraft, entity.POStatusCancelled},
		{entity.POStatusPendingApproval, entity.POStatusApproved},
		{entity.POStatusPendingApproval, entity.POStatusCancelled},
		{entity.POStatusApproved, entity.POStatusOrdered},
		{entity.POStatusApproved, entity.POStatusCancelled},
		{entity.POStatusOrdered, entity.POStatusPartiallyReceived},
		{entity.POStatusOrdered, entity.POStatusReceived},
		{entity.POStatusOrdered, entity.POStatusCancelled},
		{entity.POStatusPartiallyReceived, entity.POStatusPartiallyReceived},
		{entity.POStatusPartiallyReceived, entity.POStatusReceived},
	}
	for _, tc := range legal {
		assert.True(t, entity.CanTransition(tc.from, tc.to), "%s → %s debe ser legal", tc.from, tc.to)
	}

	illegal := []struct{ from, to string }{
		{entity.POStatusDraft, entity.POStatusApproved},
		{entity.POStatusDraft, entity.POStatusOrdered},
		{entity.POStatusDraft, entity.POStatusReceived},
		{entity.POStatusPendingApproval, entity.POStatusOrdered},
		{entity.POStatusApproved, entity.POStatusReceived},
		{entity.POStatusReceived, entity.POStatusCancelled},
		{entity.POStatusReceived, entity.POStatusOrdered},
		{entity.POStatusCancelled, entity.POStatusDraft},
		{entity.POStatusPartiallyReceived, entity.POStatusCancelled},
		{"desconocido", entity.POStatusDraft},
	}
	for _, tc := range illegal {
		assert.False(t, entity.CanTransition(tc.from, tc.to), "%s → %s debe ser ilegal", tc.from, tc.to)
	}
}

func TestPOItemRemaining(t *testing.T) {
	item := entity.POItem{QuantityOrdered: 10, QuantityReceived: 4}
	assert.Equal(t, int64(6), item.Remaining())

	item.QuantityReceived = 10
	assert.Equal(t, int64(0), item.Remaining())
}

func TestFullyReceived(t *testing.T) {
	po := &entity.PurchaseOrder{Items: []entity.POItem{
		{QuantityOrdered: 10, QuantityReceived: 10},
		{QuantityOrdered: 5, QuantityReceived: 4},
	}}
	assert.False(t, po.FullyReceived())

	po.Items[1].QuantityReceived = 5
	assert.True(t, po.FullyReceived())
}
