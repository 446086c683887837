package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/config"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/repository"
)

// Services is the service collection wired once at startup.
type Services struct {
	Auth      *AuthService
	Project   *ProjectService
	Progress  *ProgressService
	Dimension *DimensionService
	Method    *MethodService
	Report    *ReportService
	Export    *ExportService
	Storage   *StorageService
}

// NewServices creates the service collection. rdb may be nil (no refresh
// token tracking) and minio is optional (local-disk uploads).
func NewServices(repos *repository.Repositories, rdb *redis.Client, cfg *config.Config) *Services {
	var minioClient *minio.Client
	if cfg.MinIO.Endpoint != "" {
		var err error
		minioClient, err = minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			// Fall back to local-disk uploads.
			minioClient = nil
		}
	}

	storage := NewStorageService(minioClient, cfg.MinIO.Bucket, cfg.Storage.UploadDir)

	return &Services{
		Auth:      NewAuthService(repos.User, rdb, cfg),
		Project:   NewProjectService(repos.Project),
		Progress:  NewProgressService(repos.Progress, repos.Project),
		Dimension: NewDimensionService(repos.Dimension, repos.Progress, repos.Project, storage),
		Method:    NewMethodService(repos.Method, repos.Project),
		Report:    NewReportService(repos.Compaction, repos.Lab, repos.TrialMix, repos.Project, storage),
		Export:    NewExportService(repos.Project, repos.Progress),
		Storage:   storage,
	}
}
