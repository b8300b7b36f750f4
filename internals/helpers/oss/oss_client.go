package oss

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"

	"kursusku_backend/internals/configs"
)

// Client tipis di atas Aliyun OSS: seluruh artefak media (gambar course,
// video, sertifikat) disimpan di sini dan hanya URL publiknya yang dicatat
// di database.
type Client struct {
	bucket   *oss.Bucket
	bucketNm string
	endpoint string
}

func NewClientFromEnv() (*Client, error) {
	endpoint := configs.GetEnv("OSS_ENDPOINT")
	keyID := configs.GetEnv("OSS_ACCESS_KEY_ID")
	keySecret := configs.GetEnv("OSS_ACCESS_KEY_SECRET")
	bucketName := configs.GetEnv("OSS_BUCKET")

	if endpoint == "" || keyID == "" || keySecret == "" || bucketName == "" {
		return nil, fmt.Errorf("konfigurasi OSS belum lengkap (OSS_ENDPOINT/OSS_ACCESS_KEY_ID/OSS_ACCESS_KEY_SECRET/OSS_BUCKET)")
	}

	cli, err := oss.New(endpoint, keyID, keySecret)
	if err != nil {
		return nil, fmt.Errorf("gagal init OSS client: %w", err)
	}
	bucket, err := cli.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("gagal membuka bucket %s: %w", bucketName, err)
	}

	return &Client{bucket: bucket, bucketNm: bucketName, endpoint: endpoint}, nil
}

// UploadBytes menaruh payload di <dir>/<uuid><ext> dan mengembalikan URL publik.
func (c *Client) UploadBytes(dir string, ext string, contentType string, payload []byte) (string, error) {
	key := fmt.Sprintf("%s/%d-%s%s", strings.Trim(dir, "/"), time.Now().Unix(), uuid.NewString(), ext)

	if err := c.bucket.PutObject(key, bytes.NewReader(payload),
		oss.ContentType(contentType),
		oss.ObjectACL(oss.ACLPublicRead),
	); err != nil {
		return "", fmt.Errorf("upload ke OSS gagal: %w", err)
	}

	return c.publicURL(key), nil
}

// virtual-host style: https://<bucket>.<endpoint>/<key>
func (c *Client) publicURL(key string) string {
	host := strings.TrimPrefix(strings.TrimPrefix(c.endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", c.bucketNm, host, url.PathEscape(key))
}
