package tools

import (
	"context"
	"io"
	"net/url"
	"time"

	"github.com/codelieche/blog/pkg/utils/logger"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// MinIOConfig MinIO配置结构
type MinIOConfig struct {
	Endpoint        string // MinIO服务端点
	AccessKeyID     string // 访问密钥ID
	SecretAccessKey string // 秘密访问密钥
	UseSSL          bool   // 是否使用SSL
	BucketName      string // 存储桶名称
}

// MinIOClient MinIO客户端封装，实现core.ObjectStorage
type MinIOClient struct {
	client     *minio.Client
	bucketName string
}

// NewMinIOClient 创建MinIO客户端，存储桶不存在时自动创建
func NewMinIOClient(ctx context.Context, config *MinIOConfig) (*MinIOClient, error) {
	client, err := minio.New(config.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.AccessKeyID, config.SecretAccessKey, ""),
		Secure: config.UseSSL,
	})
	if err != nil {
		logger.Error("创建MinIO客户端失败", zap.Error(err))
		return nil, err
	}

	bucketName := config.BucketName
	if bucketName == "" {
		bucketName = "blog"
	}

	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		logger.Error("检查存储桶是否存在失败", zap.Error(err), zap.String("bucket", bucketName))
		return nil, err
	}
	if !exists {
		if err = client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			logger.Error("创建存储桶失败", zap.Error(err), zap.String("bucket", bucketName))
			return nil, err
		}
		logger.Info("创建存储桶成功", zap.String("bucket", bucketName))
	}

	return &MinIOClient{
		client:     client,
		bucketName: bucketName,
	}, nil
}

// PutObject 上传对象
func (m *MinIOClient) PutObject(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) error {
	_, err := m.client.PutObject(ctx, m.bucketName, objectKey, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		logger.Error("上传对象到MinIO失败", zap.Error(err),
			zap.String("object", objectKey), zap.String("contentType", contentType))
		return err
	}
	return nil
}

// PresignedURL 生成临时下载地址
func (m *MinIOClient) PresignedURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.bucketName, objectKey, expires, url.Values{})
	if err != nil {
		logger.Error("生成MinIO下载地址失败", zap.Error(err), zap.String("object", objectKey))
		return "", err
	}
	return u.String(), nil
}
