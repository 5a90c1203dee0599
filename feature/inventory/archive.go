package inventory

import (
	"context"
	"fmt"
	"io"
	"strings"

	"stock-manager/core/reconcile"
	"stock-manager/core/storage"

	"github.com/minio/minio-go/v7"
)

// ArchivePrefix is the object prefix raw receipt payloads are stored under.
const ArchivePrefix = "receipts/"

// Archive stores raw receipt payloads in object storage.
type Archive struct {
	client storage.Client
	bucket string
}

// NewArchive creates an archive writing to bucket.
func NewArchive(client storage.Client, bucket string) *Archive {
	return &Archive{client: client, bucket: bucket}
}

// ObjectName returns the object key of a receipt's payload.
func ObjectName(id fmt.Stringer) string {
	return ArchivePrefix + id.String() + ".txt"
}

// Store uploads the raw payload of a receipt.
func (a *Archive) Store(ctx context.Context, receipt *reconcile.Receipt) error {
	opts := minio.PutObjectOptions{
		ContentType: "text/plain; charset=utf-8",
		UserMetadata: map[string]string{
			"purchase-date": receipt.PurchaseDate.Format("2006-01-02"),
			"items":         fmt.Sprint(len(receipt.Items)),
		},
	}
	payload := strings.NewReader(receipt.RawPayload)
	if _, err := a.client.PutObject(ctx, a.bucket, ObjectName(receipt.ID), payload, int64(payload.Len()), opts); err != nil {
		return fmt.Errorf("failed to archive receipt %s: %w", receipt.ID, err)
	}
	return nil
}

// Fetch downloads the raw payload of a receipt.
func (a *Archive) Fetch(ctx context.Context, id fmt.Stringer) (string, error) {
	obj, err := a.client.GetObject(ctx, a.bucket, ObjectName(id), minio.GetObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return "", fmt.Errorf("%w: %s", ErrReceiptNotFound, id)
		}
		return "", fmt.Errorf("failed to fetch receipt %s: %w", id, err)
	}
	defer obj.Close()

	// minio only reports a missing object on the first read.
	data, err := io.ReadAll(obj)
	if err != nil {
		if isNoSuchKey(err) {
			return "", fmt.Errorf("%w: %s", ErrReceiptNotFound, id)
		}
		return "", fmt.Errorf("failed to read receipt %s: %w", id, err)
	}
	return string(data), nil
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}
