package carts

import (
	"context"
	"testing"

	"github.com/mvillalba/verduleria-backend/pkg/db/models"
	"github.com/mvillalba/verduleria-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCartsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:carts_repo_test?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  nombre TEXT NOT NULL,
  precio NUMERIC NOT NULL,
  unidad TEXT NOT NULL DEFAULT 'kg'
);`
	cartsTable := `
CREATE TABLE IF NOT EXISTS carts (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  telegram_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'open',
  created_at DATETIME
);`
	cartItems := `
CREATE TABLE IF NOT EXISTS cart_items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  cart_id INTEGER NOT NULL,
  product_id INTEGER NOT NULL,
  cantidad NUMERIC NOT NULL
);`
	require.NoError(t, db.Exec(products).Error)
	require.NoError(t, db.Exec(cartsTable).Error)
	require.NoError(t, db.Exec(cartItems).Error)
	t.Cleanup(func() {
		db.Exec("DELETE FROM cart_items")
		db.Exec("DELETE FROM carts")
		db.Exec("DELETE FROM products")
	})
	return db
}

func TestRepositoryFindByIDPreloadsItems(t *testing.T) {
	db := setupCartsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	tomato := &models.Product{Name: "Tomate", Price: decimal.RequireFromString("2.50"), Unit: "kg"}
	require.NoError(t, db.Create(tomato).Error)

	cart := &models.Cart{TelegramID: "100", Status: enums.CartStatusPaid}
	require.NoError(t, db.Create(cart).Error)
	item := &models.CartItem{CartID: cart.ID, ProductID: tomato.ID, Quantity: decimal.RequireFromString("1.5")}
	require.NoError(t, db.Create(item).Error)

	found, err := repo.FindByID(ctx, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, "100", found.TelegramID)
	require.Len(t, found.Items, 1)
	require.NotNil(t, found.Items[0].Product)
	assert.Equal(t, "Tomate", found.Items[0].Product.Name)

	_, err = repo.FindByID(ctx, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
