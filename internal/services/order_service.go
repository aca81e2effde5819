package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"printshop-backend/internal/database"
	"printshop-backend/internal/export"
	"printshop-backend/internal/models"
	"printshop-backend/internal/storage"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrFileNotFound  = errors.New("file not found")
	ErrInvalidOrder  = errors.New("invalid order")
)

// clearConcurrency bounds parallel blob removals during ClearAll.
const clearConcurrency = 10

// OrderRepository is the persistence the order service needs.
// *database.Store implements it.
type OrderRepository interface {
	CreateOrderWithFiles(ctx context.Context, order *models.Order, files []models.OrderFile) error
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID, status string) error
	ListOrderFiles(ctx context.Context) ([]models.OrderFile, error)
	GetOrderFileByName(ctx context.Context, fileName string) (*models.OrderFile, error)
	DeleteAllOrders(ctx context.Context) error
}

type OrderService struct {
	repo    OrderRepository
	uploads *UploadService
	files   storage.FileStore
	ids     *OrderIDGenerator
	logger  *slog.Logger
}

func NewOrderService(repo OrderRepository, files storage.FileStore, logger *slog.Logger) *OrderService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &OrderService{
		repo:    repo,
		uploads: NewUploadService(files, logger),
		files:   files,
		ids:     NewOrderIDGenerator(time.Now),
		logger:  logger,
	}
}

// WithIDGenerator swaps the identifier source, for tests.
func (s *OrderService) WithIDGenerator(ids *OrderIDGenerator) *OrderService {
	s.ids = ids
	return s
}

// Submit stores the uploads, then writes the order and its file rows in one
// transaction. If the transaction fails the stored uploads are removed.
func (s *OrderService) Submit(ctx context.Context, input models.OrderInput, uploads []Upload) (string, error) {
	orderID, at := s.ids.Next()

	files, err := s.uploads.StoreAll(ctx, at, uploads)
	if err != nil {
		return "", err
	}

	order := newOrder(orderID, at, input)
	if err := s.repo.CreateOrderWithFiles(ctx, order, files); err != nil {
		s.uploads.Discard(ctx, files)
		return "", fmt.Errorf("failed to save order %s: %w", orderID, err)
	}

	s.logger.Info("order submitted", "order_id", orderID, "files", len(files))
	return orderID, nil
}

func newOrder(id string, at time.Time, in models.OrderInput) *models.Order {
	submittedAt := at
	if in.SubmittedAt != "" {
		if t, err := time.Parse(time.RFC3339, in.SubmittedAt); err == nil {
			submittedAt = t.UTC()
		}
	}

	return &models.Order{
		ID:                  id,
		CustomerName:        in.CustomerName,
		PhoneNumber:         in.PhoneNumber,
		PrintType:           in.PrintType,
		BindingColorType:    in.BindingColorType,
		Copies:              in.Copies.Int(),
		PaperSize:           in.PaperSize,
		PrintSide:           in.PrintSide,
		SelectedPages:       in.SelectedPages,
		ColorPages:          in.ColorPages,
		BWPages:             in.BWPages,
		SpecialInstructions: in.SpecialInstructions,
		SubmittedAt:         submittedAt,
		Status:              models.StatusPending,
		TotalCost:           in.TotalCost.Float(),
		CreatedAt:           at,
	}
}

// ListAll returns every order, newest first.
func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	return order, err
}

// UpdateStatus overwrites the status of one order. Any non-empty status is
// accepted.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, status string) error {
	status = strings.TrimSpace(status)
	if status == "" {
		return fmt.Errorf("%w: status is required", ErrInvalidOrder)
	}

	err := s.repo.UpdateOrderStatus(ctx, orderID, status)
	if errors.Is(err, database.ErrNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}

	s.logger.Info("order status updated", "order_id", orderID, "status", status)
	return nil
}

// ClearAll removes every stored upload and then every order. Removal
// failures are logged and do not stop the clear; missing files are skipped.
func (s *OrderService) ClearAll(ctx context.Context) error {
	files, err := s.repo.ListOrderFiles(ctx)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(clearConcurrency)
	for _, f := range files {
		g.Go(func() error {
			err := s.files.Remove(gctx, f.FileName)
			if err != nil && !errors.Is(err, storage.ErrNotExist) {
				s.logger.Error("failed to remove stored file", "file", f.FileName, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := s.repo.DeleteAllOrders(ctx); err != nil {
		return err
	}

	s.logger.Info("all orders cleared", "files", len(files))
	return nil
}

// OpenFile opens a stored upload by its storage name. The file row is
// returned when one exists so callers can restore the original name; it is
// nil for files on disk that no order references.
func (s *OrderService) OpenFile(ctx context.Context, fileName string) (io.ReadCloser, *models.OrderFile, error) {
	if !validStorageName(fileName) {
		return nil, nil, ErrFileNotFound
	}

	meta, err := s.repo.GetOrderFileByName(ctx, fileName)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return nil, nil, err
	}

	rc, err := s.files.Open(ctx, fileName)
	if errors.Is(err, storage.ErrNotExist) {
		return nil, nil, ErrFileNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	return rc, meta, nil
}

func validStorageName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}

// Export renders all orders in the given format.
func (s *OrderService) Export(ctx context.Context, w io.Writer, format string) error {
	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return err
	}
	return export.Write(w, format, orders)
}
