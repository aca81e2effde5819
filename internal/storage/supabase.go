package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	storagego "github.com/supabase-community/storage-go"
	"github.com/supabase-community/supabase-go"
)

// SupabaseStore keeps files as objects in a Supabase Storage bucket, keyed
// by storage filename under an "orders/" prefix.
type SupabaseStore struct {
	client  *storagego.Client
	bucket string
}

func NewSupabaseStore(supabaseURL, key, bucket string) (*SupabaseStore, error) {
	baseURL := strings.TrimRight(supabaseURL, "/")

	client, err := supabase.NewClient(baseURL, key, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}
	if client.Storage == nil {
		return nil, fmt.Errorf("supabase client has no storage endpoint")
	}

	return &SupabaseStore{
		client: client.Storage,
		bucket: bucket,
	}, nil
}

func objectKey(name string) string {
	return "orders/" + name
}

func (s *SupabaseStore) Save(_ context.Context, name string, r io.Reader, _ int64, contentType string) (string, error) {
	key := objectKey(name)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	upsert := false

	_, err := s.client.UploadFile(s.bucket, key, r, storagego.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return key, nil
}

// Open downloads the whole object; Supabase has no streaming download in
// the storage-go client.
func (s *SupabaseStore) Open(_ context.Context, name string) (io.ReadCloser, error) {
	data, err := s.client.DownloadFile(s.bucket, objectKey(name))
	if err != nil {
		if isSupabaseNotFound(err) {
			return nil, ErrNotExist
		}
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *SupabaseStore) Remove(_ context.Context, name string) error {
	removed, err := s.client.RemoveFile(s.bucket, []string{objectKey(name)})
	if err != nil {
		if isSupabaseNotFound(err) {
			return ErrNotExist
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	// Supabase answers 200 with an empty list when nothing matched.
	if len(removed) == 0 {
		return ErrNotExist
	}
	return nil
}

func isSupabaseNotFound(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") || strings.Contains(msg, "404")
}
