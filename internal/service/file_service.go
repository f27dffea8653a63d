package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"astro_class_backend/internal/config"
	"astro_class_backend/internal/repository"
	"astro_class_backend/internal/util"
	"astro_class_backend/pkg/logger"
	"astro_class_backend/pkg/notion"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StagedFile 스테이징 결과. 노션 업로드면 ID, 외부 스토리지면 URL 이 채워진다.
type StagedFile struct {
	ID  string `json:"fileId"`
	URL string `json:"fileUrl,omitempty"`
}

// StagingProvider 파일 스테이징 공급자 인터페이스
type StagingProvider interface {
	Stage(ctx context.Context, fileName string, file io.Reader, size int64, contentType string) (*StagedFile, error)
}

// NotionStagingProvider 노션 file_uploads API 로 스테이징한다.
// 공간 예약과 바이트 전송 두 단계이며, 어느 쪽이 실패해도 같은 업로드 오류로 취급한다.
type NotionStagingProvider struct {
	Client *notion.Client
}

func (p *NotionStagingProvider) Stage(ctx context.Context, fileName string, file io.Reader, size int64, contentType string) (*StagedFile, error) {
	upload, err := p.Client.CreateFileUpload(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrUploadReserve, err)
	}

	fileID, err := p.Client.SendFileUpload(ctx, upload, fileName, file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrUploadTransfer, err)
	}

	return &StagedFile{ID: fileID}, nil
}

// MinioStagingProvider 제출 파일을 MinIO 버킷에 올리고 외부 URL 로 연결한다.
type MinioStagingProvider struct {
	Config *config.StorageConfig
	Client *minio.Client
}

func NewMinioStagingProvider(cfg *config.StorageConfig) (*MinioStagingProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStagingProvider{Config: cfg, Client: client}, nil
}

func (p *MinioStagingProvider) Stage(ctx context.Context, fileName string, file io.Reader, size int64, contentType string) (*StagedFile, error) {
	objectName := fmt.Sprintf("submissions/%d_%s", time.Now().UnixNano(), fileName)

	_, err := p.Client.PutObject(ctx, p.Config.MinioBucket, objectName, file, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrUploadTransfer, err)
	}

	return &StagedFile{ID: objectName, URL: p.publicURL(objectName)}, nil
}

func (p *MinioStagingProvider) publicURL(objectName string) string {
	base := p.Config.PublicBaseURL
	if base == "" {
		scheme := "http"
		if p.Config.MinioUseSSL {
			scheme = "https"
		}
		base = scheme + "://" + p.Config.MinioEndpoint
	}
	return strings.TrimRight(base, "/") + "/" + p.Config.MinioBucket + "/" + objectName
}

// FileService 과제 제출의 2단계 플로우: 스테이징 후 학생 페이지 속성에 연결.
// 두 단계는 독립된 호출이라 중간에 끊기면 연결되지 않은 스테이징 파일이 남을 수 있다.
type FileService struct {
	Staging     StagingProvider
	StudentRepo *repository.StudentRepository
}

func NewFileService(cfg *config.Config, client *notion.Client, studentRepo *repository.StudentRepository) *FileService {
	var provider StagingProvider
	if cfg.Storage.Type == "minio" {
		p, err := NewMinioStagingProvider(&cfg.Storage)
		if err != nil {
			logger.Log.Warn("minio staging unavailable, falling back to notion uploads")
		} else {
			provider = p
		}
	}
	if provider == nil {
		provider = &NotionStagingProvider{Client: client}
	}

	return &FileService{Staging: provider, StudentRepo: studentRepo}
}

func (s *FileService) Stage(ctx context.Context, fileName string, file io.Reader, size int64, contentType string) (*StagedFile, error) {
	return s.Staging.Stage(ctx, fileName, file, size, contentType)
}

// Attach 스테이징된 파일을 지정한 속성에 연결한다. 속성 이름이 과제 속성인지는 확인하지 않으므로
// 올바른 이름을 넘기는 책임은 호출자에게 있다.
func (s *FileService) Attach(ctx context.Context, pageID, fieldName, fileID, fileName, fileURL string) error {
	if fileURL != "" {
		return s.StudentRepo.AttachExternalFile(ctx, pageID, fieldName, fileURL, fileName)
	}
	return s.StudentRepo.AttachUploadedFile(ctx, pageID, fieldName, fileID, fileName)
}
