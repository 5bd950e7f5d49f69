package orders

import (
	"context"
	"testing"
	"time"

	"github.com/mvillalba/verduleria-backend/pkg/db/models"
	"github.com/mvillalba/verduleria-backend/pkg/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:orders_repo_test?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	conjuntos := `
CREATE TABLE IF NOT EXISTS conjuntos (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  numero_conjunto INTEGER NOT NULL UNIQUE,
  equipo_id INTEGER
);`
	ordersTable := `
CREATE TABLE IF NOT EXISTS orders (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  cart_id INTEGER NOT NULL,
  telegram_id TEXT NOT NULL,
  confirmation_code TEXT NOT NULL UNIQUE,
  status TEXT NOT NULL DEFAULT 'pending',
  conjunto_id INTEGER NOT NULL,
  order_date DATETIME,
  entrega_date DATETIME
);`
	require.NoError(t, db.Exec(conjuntos).Error)
	require.NoError(t, db.Exec(ordersTable).Error)
	t.Cleanup(func() {
		db.Exec("DELETE FROM orders")
		db.Exec("DELETE FROM conjuntos")
	})
	return db
}

func createTestBatch(t *testing.T, db *gorm.DB, number int64) *models.Batch {
	t.Helper()
	batch := &models.Batch{Number: number}
	require.NoError(t, db.Create(batch).Error)
	return batch
}

func createTestOrder(t *testing.T, db *gorm.DB, batchID int64, telegramID, code string, status enums.OrderStatus, placed time.Time) *models.Order {
	t.Helper()
	order := &models.Order{
		CartID:           1,
		TelegramID:       telegramID,
		ConfirmationCode: code,
		Status:           status,
		BatchID:          batchID,
		OrderDate:        placed,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestRepositoryCountPendingByBatch(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	batch := createTestBatch(t, db, 1)
	now := time.Now().UTC()
	createTestOrder(t, db, batch.ID, "100", "111111", enums.OrderStatusPending, now)
	createTestOrder(t, db, batch.ID, "200", "222222", enums.OrderStatusPending, now)
	createTestOrder(t, db, batch.ID, "300", "333333", enums.OrderStatusDelivered, now)

	count, err := repo.CountPendingByBatch(ctx, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestRepositoryFindPendingByCode(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	batch := createTestBatch(t, db, 1)
	now := time.Now().UTC()
	createTestOrder(t, db, batch.ID, "100", "445566", enums.OrderStatusPending, now)
	createTestOrder(t, db, batch.ID, "200", "778899", enums.OrderStatusDelivered, now)

	found, err := repo.FindPendingByCode(ctx, "445566")
	require.NoError(t, err)
	assert.Equal(t, "100", found.TelegramID)

	_, err = repo.FindPendingByCode(ctx, "778899")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.FindPendingByCode(ctx, "000000")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryMarkDelivered(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	batch := createTestBatch(t, db, 1)
	order := createTestOrder(t, db, batch.ID, "100", "123123", enums.OrderStatusPending, time.Now().UTC())

	delivered := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.MarkDelivered(ctx, order.ID, delivered))

	reloaded, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusDelivered, reloaded.Status)
	require.NotNil(t, reloaded.DeliveredAt)
	assert.WithinDuration(t, delivered, *reloaded.DeliveredAt, time.Second)
}

func TestRepositoryListByCustomer(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	batch := createTestBatch(t, db, 1)
	now := time.Now().UTC()
	createTestOrder(t, db, batch.ID, "100", "100001", enums.OrderStatusPending, now.Add(-2*time.Hour))
	createTestOrder(t, db, batch.ID, "100", "100002", enums.OrderStatusDelivered, now.Add(-time.Hour))
	createTestOrder(t, db, batch.ID, "100", "100003", enums.OrderStatusPending, now)
	createTestOrder(t, db, batch.ID, "999", "999001", enums.OrderStatusPending, now)

	all, err := repo.ListByCustomer(ctx, "100", nil, 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "100003", all[0].ConfirmationCode)
	assert.Equal(t, "100001", all[2].ConfirmationCode)

	pending := enums.OrderStatusPending
	filtered, err := repo.ListByCustomer(ctx, "100", &pending, 10)
	require.NoError(t, err)
	require.Len(t, filtered, 2)

	limited, err := repo.ListByCustomer(ctx, "100", nil, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "100003", limited[0].ConfirmationCode)
}

func TestRepositoryListByBatchOrdersAscending(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	batch := createTestBatch(t, db, 1)
	other := createTestBatch(t, db, 2)
	now := time.Now().UTC()
	createTestOrder(t, db, batch.ID, "200", "200002", enums.OrderStatusPending, now)
	createTestOrder(t, db, batch.ID, "100", "200001", enums.OrderStatusPending, now.Add(-time.Hour))
	createTestOrder(t, db, other.ID, "300", "300001", enums.OrderStatusPending, now)

	rows, err := repo.ListByBatch(ctx, batch.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "200001", rows[0].ConfirmationCode)
	assert.Equal(t, "200002", rows[1].ConfirmationCode)
}
