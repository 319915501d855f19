package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

// MinIOClient archives JSON exports of completed analyses. The export
// is a snapshot of the persisted result for later download, not a
// rendered report.
type MinIOClient struct {
	client     *minio.Client
	bucketName string
}

// NewMinIOClient creates the client and ensures the bucket exists.
func NewMinIOClient(endpoint, accessKey, secretKey, bucketName string, useSSL bool) (*MinIOClient, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		err = client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logrus.Infof("Bucket %s created successfully", bucketName)
	}

	return &MinIOClient{
		client:     client,
		bucketName: bucketName,
	}, nil
}

// UploadAnalysisExport stores the JSON snapshot of one analysis and
// returns the object name.
func (m *MinIOClient) UploadAnalysisExport(ctx context.Context, analysisID uint, data []byte) (string, error) {
	objectName := fmt.Sprintf("analysis_%d_%d.json", analysisID, time.Now().Unix())

	reader := bytes.NewReader(data)
	_, err := m.client.PutObject(ctx, m.bucketName, objectName, reader, int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload export: %w", err)
	}

	logrus.Infof("Analysis export %s uploaded successfully", objectName)
	return objectName, nil
}

// GetExportURL returns a temporary download URL for an export (1 hour).
func (m *MinIOClient) GetExportURL(ctx context.Context, objectName string) (string, error) {
	url, err := m.client.PresignedGetObject(ctx, m.bucketName, objectName, time.Hour, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return url.String(), nil
}

// DeleteExport removes an archived export.
func (m *MinIOClient) DeleteExport(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.bucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete export: %w", err)
	}

	logrus.Infof("Analysis export %s deleted successfully", objectName)
	return nil
}
