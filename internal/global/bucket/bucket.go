// Package bucket 把排行榜快照归档到 S3 兼容的对象存储
package bucket

import (
	"citizens-link/config"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
)

var ErrNotConfigured = errors.New("S3 未配置")

type Bucket struct {
	Endpoint        string
	Bucket          string
	Region          string
	AccessKey       string
	SecretAccessKey string
	Prefix          string
	UsePathStyle    bool
	PresignExpire   int64 // 秒

	s3Client *s3.Client
}

// Archived 上传后的对象
type Archived struct {
	Key         string    `json:"key"`
	DownloadURL string    `json:"download_url"` // 预签名下载 URL
	ExpiresAt   time.Time `json:"expires_at"`
}

// FromConfig 未配置 bucket 或密钥时返回 nil
func FromConfig(cfg config.S3) *Bucket {
	if !cfg.Enabled() {
		return nil
	}
	return &Bucket{
		Endpoint:        cfg.Endpoint,
		Bucket:          cfg.Bucket,
		Region:          cfg.Region,
		AccessKey:       cfg.AccessKey,
		SecretAccessKey: cfg.SecretAccessKey,
		Prefix:          cfg.Prefix,
		UsePathStyle:    cfg.UsePathStyle,
		PresignExpire:   cfg.PresignExpire,
	}
}

// InitS3 创建 S3 客户端，Endpoint 非空时指向兼容服务（MinIO、R2 等）
func (b *Bucket) InitS3(ctx context.Context) error {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(b.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(b.AccessKey, b.SecretAccessKey, "")),
	)
	if err != nil {
		return errors.Wrap(err, "加载 AWS 配置失败")
	}
	b.s3Client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if b.Endpoint != "" {
			o.BaseEndpoint = aws.String(b.Endpoint)
		}
		o.UsePathStyle = b.UsePathStyle
	})
	return nil
}

// Key 对象 key：前缀/日期/文件名
func (b *Bucket) Key(filename string, at time.Time) string {
	key := path.Join(strings.Trim(b.Prefix, "/"), at.Format("2006/01/02"), filename)
	return strings.TrimLeft(key, "/")
}

// Archive 上传文件并返回预签名下载地址
func (b *Bucket) Archive(ctx context.Context, filename, contentType string, body io.Reader) (*Archived, error) {
	if b == nil {
		return nil, ErrNotConfigured
	}
	if b.s3Client == nil {
		if err := b.InitS3(ctx); err != nil {
			return nil, err
		}
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := b.Key(filename, time.Now())

	uploader := manager.NewUploader(b.s3Client)
	if _, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}); err != nil {
		return nil, errors.Wrapf(err, "上传 %s 失败", key)
	}

	url, expiresAt, err := b.PresignedDownloadURL(ctx, key)
	if err != nil {
		return nil, err
	}
	return &Archived{Key: key, DownloadURL: url, ExpiresAt: expiresAt}, nil
}

// PresignedDownloadURL 生成预签名下载 URL，归档对象是私有的
func (b *Bucket) PresignedDownloadURL(ctx context.Context, key string) (string, time.Time, error) {
	if b.s3Client == nil {
		if err := b.InitS3(ctx); err != nil {
			return "", time.Time{}, err
		}
	}
	expiresIn := b.PresignExpire
	if expiresIn <= 0 {
		expiresIn = 900 // 15 分钟
	}
	expire := time.Duration(expiresIn) * time.Second

	presignClient := s3.NewPresignClient(b.s3Client)
	presignedReq, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.Bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = expire
	})
	if err != nil {
		return "", time.Time{}, fmt.Errorf("生成预签名下载 URL 失败: %w", err)
	}
	return presignedReq.URL, time.Now().Add(expire), nil
}
