package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"printshop-backend/internal/models"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

const orderFileColumns = "id, order_id, original_name, file_name, file_path, file_size, mime_type, page_count, created_at"

// Store owns the database handle for the lifetime of the process. It is
// opened once at start-up, injected into the services and closed at shutdown.
type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewStore(db *gorm.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{db: db, logger: logger}
}

// DB exposes the underlying handle for migrations and tests.
func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// CreateOrderWithFiles inserts the order and all of its file rows in a
// single transaction: either every row is written or none is.
func (s *Store) CreateOrderWithFiles(ctx context.Context, order *models.Order, files []models.OrderFile) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		for i := range files {
			files[i].OrderID = order.ID
			if err := tx.Create(&files[i]).Error; err != nil {
				return fmt.Errorf("failed to create order file %s: %w", files[i].FileName, err)
			}
		}
		return nil
	})
}

func (s *Store) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Where("id = ?", orderID).Take(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	grouped, err := s.loadFiles(ctx, "WHERE order_id = ?", orderID)
	if err != nil {
		return nil, err
	}
	order.Files = grouped.filesFor(order.ID)

	return &order, nil
}

// ListOrders returns every order, newest first, each with its files.
func (s *Store) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	grouped, err := s.loadFiles(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Files = grouped.filesFor(orders[i].ID)
	}

	return orders, nil
}

// UpdateOrderStatus overwrites the status unconditionally. It returns
// ErrNotFound when no order has the given identifier.
func (s *Store) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	result := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListOrderFiles returns every file row regardless of order.
func (s *Store) ListOrderFiles(ctx context.Context) ([]models.OrderFile, error) {
	var files []models.OrderFile
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&files).Error; err != nil {
		return nil, fmt.Errorf("failed to list order files: %w", err)
	}
	return files, nil
}

func (s *Store) GetOrderFileByName(ctx context.Context, fileName string) (*models.OrderFile, error) {
	var file models.OrderFile
	err := s.db.WithContext(ctx).Where("file_name = ?", fileName).Take(&file).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order file: %w", err)
	}
	return &file, nil
}

// DeleteAllOrders removes every file row and then every order row.
func (s *Store) DeleteAllOrders(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM order_files").Error; err != nil {
			return fmt.Errorf("failed to delete order files: %w", err)
		}
		if err := tx.Exec("DELETE FROM orders").Error; err != nil {
			return fmt.Errorf("failed to delete orders: %w", err)
		}
		return nil
	})
}

func (s *Store) CreateSession(ctx context.Context, session models.AdminSession) error {
	if err := s.db.WithContext(ctx).Create(&session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (s *Store) GetSession(ctx context.Context, token string) (*models.AdminSession, error) {
	var session models.AdminSession
	err := s.db.WithContext(ctx).Where("token = ?", token).Take(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

// PruneExpiredSessions deletes sessions whose expiry is at or before now.
func (s *Store) PruneExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("expires_at <= ?", now.UTC()).
		Delete(&models.AdminSession{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to prune sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// groupedFiles maps order ids to their files. Orders listed in degraded had
// at least one row that could not be decoded and report no files at all.
type groupedFiles struct {
	byOrder  map[string][]models.OrderFile
	degraded map[string]bool
}

func (g groupedFiles) filesFor(orderID string) []models.OrderFile {
	if g.degraded[orderID] {
		return []models.OrderFile{}
	}
	if files := g.byOrder[orderID]; files != nil {
		return files
	}
	return []models.OrderFile{}
}

// loadFiles reads file rows column by column so that one malformed row only
// degrades its own order rather than failing the whole query.
func (s *Store) loadFiles(ctx context.Context, where string, args ...any) (groupedFiles, error) {
	grouped := groupedFiles{
		byOrder:  make(map[string][]models.OrderFile),
		degraded: make(map[string]bool),
	}

	query := "SELECT " + orderFileColumns + " FROM order_files " + where + " ORDER BY created_at ASC, id ASC"
	rows, err := s.db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return grouped, fmt.Errorf("failed to get order files: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		raw := make([]any, 9)
		ptrs := make([]any, len(raw))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return grouped, fmt.Errorf("failed to scan order file: %w", err)
		}

		file, err := decodeFileRow(raw)
		if err != nil {
			orderID, _ := asString(raw[1])
			s.logger.Warn("dropping files of order with malformed file row",
				"order_id", orderID, "error", err)
			grouped.degraded[orderID] = true
			continue
		}
		grouped.byOrder[file.OrderID] = append(grouped.byOrder[file.OrderID], file)
	}
	if err := rows.Err(); err != nil {
		return grouped, fmt.Errorf("failed to iterate order files: %w", err)
	}

	return grouped, nil
}

func decodeFileRow(raw []any) (models.OrderFile, error) {
	var (
		f   models.OrderFile
		ok  bool
		err error
	)
	if f.ID, ok = asString(raw[0]); !ok {
		return f, fmt.Errorf("bad id %v", raw[0])
	}
	if f.OrderID, ok = asString(raw[1]); !ok {
		return f, fmt.Errorf("bad order_id %v", raw[1])
	}
	if f.OriginalName, ok = asString(raw[2]); !ok {
		return f, fmt.Errorf("bad original_name %v", raw[2])
	}
	if f.FileName, ok = asString(raw[3]); !ok {
		return f, fmt.Errorf("bad file_name %v", raw[3])
	}
	if f.FilePath, ok = asString(raw[4]); !ok {
		return f, fmt.Errorf("bad file_path %v", raw[4])
	}
	if f.FileSize, ok = asInt64(raw[5]); !ok {
		return f, fmt.Errorf("bad file_size %v", raw[5])
	}
	if f.MimeType, ok = asString(raw[6]); !ok {
		return f, fmt.Errorf("bad mime_type %v", raw[6])
	}
	pages, ok := asInt64(raw[7])
	if !ok {
		return f, fmt.Errorf("bad page_count %v", raw[7])
	}
	f.PageCount = int(pages)
	if f.CreatedAt, err = asTime(raw[8]); err != nil {
		return f, err
	}
	return f, nil
}

func asString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case []byte:
		return string(x), true
	default:
		return "", false
	}
}

func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int32:
		return int64(x), true
	case int:
		return int64(x), true
	default:
		return 0, false
	}
}

var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
}

func asTime(v any) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return x.UTC(), nil
	case sql.NullTime:
		if x.Valid {
			return x.Time.UTC(), nil
		}
	case string, []byte:
		s, _ := asString(x)
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("bad created_at %v", v)
}
