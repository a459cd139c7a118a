package db

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func createTestProductWithStock(t *testing.T, quantity int32) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	var productID uuid.UUID
	err := testDBPool.QueryRow(ctx,
		`INSERT INTO products (name, price_cents) VALUES ('test-product', 450) RETURNING id`).
		Scan(&productID)
	require.NoError(t, err)

	_, err = testDBPool.Exec(ctx,
		`INSERT INTO inventory (product_id, quantity, reorder_level, reorder_quantity)
		 VALUES ($1, $2, 5, 10)`, productID, quantity)
	require.NoError(t, err)

	t.Cleanup(func() {
		testDBPool.Exec(ctx, `DELETE FROM inventory WHERE product_id = $1`, productID)
		testDBPool.Exec(ctx, `DELETE FROM products WHERE id = $1`, productID)
	})

	return productID
}

func TestReserveInTx(t *testing.T) {
	ctx := context.Background()
	productID := createTestProductWithStock(t, 10)

	err := testStore.ExecTx(ctx, func(q Querier) error {
		inv, err := q.GetInventoryForUpdate(ctx, productID)
		require.NoError(t, err)
		require.Equal(t, int32(10), inv.Quantity)

		return q.DecrementInventory(ctx, productID, 3)
	})
	require.NoError(t, err)

	inv, err := testStore.GetInventory(ctx, productID)
	require.NoError(t, err)
	require.Equal(t, int32(7), inv.Quantity)
}

func TestTxRollback(t *testing.T) {
	ctx := context.Background()
	productID := createTestProductWithStock(t, 10)

	injected := require.New(t)
	err := testStore.ExecTx(ctx, func(q Querier) error {
		injected.NoError(q.DecrementInventory(ctx, productID, 3))
		return context.Canceled
	})
	require.Error(t, err)

	//交易失敗後扣減不留痕跡
	inv, err := testStore.GetInventory(ctx, productID)
	require.NoError(t, err)
	require.Equal(t, int32(10), inv.Quantity)
}

func TestRestockStampsTimestamp(t *testing.T) {
	ctx := context.Background()
	productID := createTestProductWithStock(t, 2)

	inv, err := testStore.RestockInventory(ctx, productID, 20)
	require.NoError(t, err)
	require.Equal(t, int32(22), inv.Quantity)
	require.NotNil(t, inv.LastRestockedAt)
}
