package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// StorageService stores photo evidence and report attachments. With a minio
// client configured objects go to the bucket; otherwise files land on local
// disk under baseDir. Either way they are read back through Open, behind the
// /uploads download route. Returned filenames are timestamp-prefixed so they
// are not guessable.
type StorageService struct {
	minioClient *minio.Client
	bucketName  string
	baseDir     string
}

// NewStorageService creates the storage service. minioClient may be nil.
func NewStorageService(minioClient *minio.Client, bucketName, baseDir string) *StorageService {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	return &StorageService{
		minioClient: minioClient,
		bucketName:  bucketName,
		baseDir:     baseDir,
	}
}

// Store writes an uploaded file and returns the stored filename. fieldName
// keys the file in its report row (foto_panjang, foto, lampiran, ...). The
// write happens before the owning database row is inserted; a failed insert
// leaves an orphaned file.
func (s *StorageService) Store(ctx context.Context, fieldName string, fileHeader *multipart.FileHeader) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := storedName(fieldName, fileHeader.Filename)

	if s.minioClient != nil {
		_, err = s.minioClient.PutObject(ctx, s.bucketName, name, src, fileHeader.Size, minio.PutObjectOptions{
			ContentType: fileHeader.Header.Get("Content-Type"),
		})
		if err != nil {
			return "", fmt.Errorf("store object: %w", err)
		}
		return name, nil
	}

	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	dst, err := os.Create(filepath.Join(s.baseDir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return name, nil
}

// Open returns the stored file for download.
func (s *StorageService) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if s.minioClient != nil {
		// GetObject is lazy; stat first so a missing object fails here.
		if _, err := s.minioClient.StatObject(ctx, s.bucketName, name, minio.StatObjectOptions{}); err != nil {
			return nil, fmt.Errorf("stat object: %w", err)
		}
		object, err := s.minioClient.GetObject(ctx, s.bucketName, name, minio.GetObjectOptions{})
		if err != nil {
			return nil, fmt.Errorf("get object: %w", err)
		}
		return object, nil
	}
	f, err := os.Open(filepath.Join(s.baseDir, filepath.Base(name)))
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	return f, nil
}

func storedName(fieldName, original string) string {
	ext := filepath.Ext(original)
	return fmt.Sprintf("%d_%s_%s%s",
		time.Now().UnixMilli(), fieldName, uuid.New().String()[:8], ext)
}
