package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"printshop-backend/internal/models"
	"printshop-backend/internal/storage"
)

// Upload is one file part of an order submission.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.ReadSeeker
}

// UploadService writes submitted files to the configured FileStore and
// describes them as OrderFile rows.
type UploadService struct {
	files  storage.FileStore
	logger *slog.Logger
}

func NewUploadService(files storage.FileStore, logger *slog.Logger) *UploadService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &UploadService{files: files, logger: logger}
}

// StorageName builds `<epoch-millis>-<uuid>-<base name>` for an upload
// received at the given time.
func StorageName(at time.Time, original string) string {
	return fmt.Sprintf("%d-%s-%s", at.UnixMilli(), uuid.NewString(), baseName(original))
}

// baseName strips any client supplied directories, including Windows ones.
func baseName(name string) string {
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "." || name == "/" || name == "" {
		return "file"
	}
	return name
}

// StoreAll saves every upload. If one fails, the ones already saved are
// removed again and the error is returned.
func (s *UploadService) StoreAll(ctx context.Context, at time.Time, uploads []Upload) ([]models.OrderFile, error) {
	files := make([]models.OrderFile, 0, len(uploads))
	for _, u := range uploads {
		f, err := s.Store(ctx, at, u)
		if err != nil {
			s.Discard(ctx, files)
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

func (s *UploadService) Store(ctx context.Context, at time.Time, u Upload) (models.OrderFile, error) {
	name := StorageName(at, u.Filename)

	pages := s.pageCount(u)
	if _, err := u.Content.Seek(0, io.SeekStart); err != nil {
		return models.OrderFile{}, fmt.Errorf("failed to rewind upload %s: %w", u.Filename, err)
	}

	filePath, err := s.files.Save(ctx, name, u.Content, u.Size, u.ContentType)
	if err != nil {
		return models.OrderFile{}, fmt.Errorf("failed to store upload %s: %w", u.Filename, err)
	}

	return models.OrderFile{
		ID:           uuid.NewString(),
		OriginalName: u.Filename,
		FileName:     name,
		FilePath:     filePath,
		FileSize:     u.Size,
		MimeType:     u.ContentType,
		PageCount:    pages,
		CreatedAt:    at.UTC(),
	}, nil
}

// Discard removes stored files, logging failures.
func (s *UploadService) Discard(ctx context.Context, files []models.OrderFile) {
	for _, f := range files {
		if err := s.files.Remove(ctx, f.FileName); err != nil && !errors.Is(err, storage.ErrNotExist) {
			s.logger.Error("failed to remove stored file", "file", f.FileName, "error", err)
		}
	}
}

// pageCount returns the number of pages of a PDF upload, or 0 for anything
// else or a PDF that cannot be read.
func (s *UploadService) pageCount(u Upload) int {
	if !isPDF(u) {
		return 0
	}

	cfg := model.NewDefaultConfiguration()
	cfg.ValidationMode = model.ValidationRelaxed

	n, err := api.PageCount(u.Content, cfg)
	if err != nil {
		s.logger.Warn("could not count pdf pages", "file", u.Filename, "error", err)
		return 0
	}
	return n
}

func isPDF(u Upload) bool {
	if strings.EqualFold(u.ContentType, "application/pdf") {
		return true
	}
	return strings.EqualFold(path.Ext(baseName(u.Filename)), ".pdf")
}
