package database_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"printshop-backend/internal/database"
	"printshop-backend/internal/database/databasetest"
	"printshop-backend/internal/models"
)

func newOrder(id string, createdAt time.Time) *models.Order {
	return &models.Order{
		ID:           id,
		CustomerName: "Ada",
		PhoneNumber:  "555-0100",
		PrintType:    "document",
		Copies:       2,
		PaperSize:    "A4",
		SubmittedAt:  createdAt,
		Status:       models.StatusPending,
		TotalCost:    12.5,
		CreatedAt:    createdAt,
	}
}

func newFile(name string) models.OrderFile {
	return models.OrderFile{
		ID:           uuid.NewString(),
		OriginalName: name,
		FileName:     "1700000000000-" + uuid.NewString() + "-" + name,
		FilePath:     "uploads/" + name,
		FileSize:     1024,
		MimeType:     "application/pdf",
		PageCount:    3,
		CreatedAt:    time.Now().UTC(),
	}
}

func TestMigrator_Idempotent(t *testing.T) {
	store := databasetest.NewStore(t)

	applied, err := database.NewMigrator(store.DB(), nil).Run()
	require.NoError(t, err)
	assert.Empty(t, applied, "second run must not reapply migrations")
}

func TestCreateOrderWithFiles(t *testing.T) {
	ctx := context.Background()
	store := databasetest.NewStore(t)

	order := newOrder("ORD-1", time.Now().UTC())
	files := []models.OrderFile{newFile("a.pdf"), newFile("b.pdf"), newFile("c.pdf")}
	require.NoError(t, store.CreateOrderWithFiles(ctx, order, files))

	got, err := store.GetOrder(ctx, "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.CustomerName)
	assert.Equal(t, 2, got.Copies)
	assert.Equal(t, 12.5, got.TotalCost)
	assert.Equal(t, models.StatusPending, got.Status)
	require.Len(t, got.Files, 3)
	for _, f := range got.Files {
		assert.Equal(t, "ORD-1", f.OrderID)
		assert.Equal(t, 3, f.PageCount)
	}
}

func TestCreateOrderWithFiles_RollsBack(t *testing.T) {
	ctx := context.Background()
	store := databasetest.NewStore(t)

	dup := newFile("a.pdf")
	files := []models.OrderFile{dup, newFile("b.pdf"), dup}
	err := store.CreateOrderWithFiles(ctx, newOrder("ORD-2", time.Now().UTC()), files)
	require.Error(t, err)

	_, err = store.GetOrder(ctx, "ORD-2")
	assert.ErrorIs(t, err, database.ErrNotFound)

	all, err := store.ListOrderFiles(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGetOrder_NotFound(t *testing.T) {
	store := databasetest.NewStore(t)

	_, err := store.GetOrder(context.Background(), "ORD-missing")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestGetOrder_NoFilesIsEmptySlice(t *testing.T) {
	ctx := context.Background()
	store := databasetest.NewStore(t)

	require.NoError(t, store.CreateOrderWithFiles(ctx, newOrder("ORD-3", time.Now().UTC()), nil))

	got, err := store.GetOrder(ctx, "ORD-3")
	require.NoError(t, err)
	assert.NotNil(t, got.Files)
	assert.Empty(t, got.Files)
}

func TestListOrders_NewestFirst(t *testing.T) {
	ctx := context.Background()
	store := databasetest.NewStore(t)

	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		id := fmt.Sprintf("ORD-%d", i)
		order := newOrder(id, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, store.CreateOrderWithFiles(ctx, order, []models.OrderFile{newFile(id + ".pdf")}))
	}

	orders, err := store.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, "ORD-2", orders[0].ID)
	assert.Equal(t, "ORD-1", orders[1].ID)
	assert.Equal(t, "ORD-0", orders[2].ID)
	for _, o := range orders {
		require.Len(t, o.Files, 1)
		assert.Equal(t, o.ID+".pdf", o.Files[0].OriginalName)
	}
}

func TestListOrders_MalformedFileRowDegradesOneOrder(t *testing.T) {
	ctx := context.Background()
	store := databasetest.NewStore(t)

	now := time.Now().UTC()
	require.NoError(t, store.CreateOrderWithFiles(ctx, newOrder("ORD-good", now), []models.OrderFile{newFile("good.pdf")}))
	require.NoError(t, store.CreateOrderWithFiles(ctx, newOrder("ORD-bad", now.Add(time.Second)), []models.OrderFile{newFile("ok.pdf")}))

	err := store.DB().Exec(
		"INSERT INTO order_files (id, order_id, original_name, file_name, file_path, file_size, mime_type, page_count, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		"broken", "ORD-bad", "x.pdf", "broken-x.pdf", "uploads/broken-x.pdf", "abc", "application/pdf", 0, now,
	).Error
	require.NoError(t, err)

	orders, err := store.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	byID := map[string]models.Order{}
	for _, o := range orders {
		byID[o.ID] = o
	}
	assert.Len(t, byID["ORD-good"].Files, 1)
	assert.NotNil(t, byID["ORD-bad"].Files)
	assert.Empty(t, byID["ORD-bad"].Files)
}

func TestUpdateOrderStatus(t *testing.T) {
	ctx := context.Background()
	store := databasetest.NewStore(t)

	require.NoError(t, store.CreateOrderWithFiles(ctx, newOrder("ORD-4", time.Now().UTC()), nil))

	require.NoError(t, store.UpdateOrderStatus(ctx, "ORD-4", "completed"))
	// Writing the same value again still matches the row.
	require.NoError(t, store.UpdateOrderStatus(ctx, "ORD-4", "completed"))

	got, err := store.GetOrder(ctx, "ORD-4")
	require.NoError(t, err)
	assert.Equal(t, "completed", got.Status)

	err = store.UpdateOrderStatus(ctx, "ORD-none", "completed")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestGetOrderFileByName(t *testing.T) {
	ctx := context.Background()
	store := databasetest.NewStore(t)

	f := newFile("report.pdf")
	require.NoError(t, store.CreateOrderWithFiles(ctx, newOrder("ORD-5", time.Now().UTC()), []models.OrderFile{f}))

	got, err := store.GetOrderFileByName(ctx, f.FileName)
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", got.OriginalName)
	assert.Equal(t, "ORD-5", got.OrderID)

	_, err = store.GetOrderFileByName(ctx, "nope")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestDeleteAllOrders(t *testing.T) {
	ctx := context.Background()
	store := databasetest.NewStore(t)

	// Clearing an empty database is fine.
	require.NoError(t, store.DeleteAllOrders(ctx))

	require.NoError(t, store.CreateOrderWithFiles(ctx, newOrder("ORD-6", time.Now().UTC()), []models.OrderFile{newFile("a.pdf"), newFile("b.pdf")}))
	require.NoError(t, store.DeleteAllOrders(ctx))

	orders, err := store.ListOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)

	files, err := store.ListOrderFiles(ctx)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestSessions(t *testing.T) {
	ctx := context.Background()
	store := databasetest.NewStore(t)

	now := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	live := models.AdminSession{Token: "live", CreatedAt: now, ExpiresAt: now.Add(24 * time.Hour)}
	dead := models.AdminSession{Token: "dead", CreatedAt: now.Add(-48 * time.Hour), ExpiresAt: now.Add(-24 * time.Hour)}
	require.NoError(t, store.CreateSession(ctx, live))
	require.NoError(t, store.CreateSession(ctx, dead))

	got, err := store.GetSession(ctx, "live")
	require.NoError(t, err)
	assert.True(t, got.ExpiresAt.Equal(live.ExpiresAt))

	removed, err := store.PruneExpiredSessions(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = store.GetSession(ctx, "dead")
	assert.ErrorIs(t, err, database.ErrNotFound)
}
