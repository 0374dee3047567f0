package bucket

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"

	"github.com/minio/minio-go/v7"
)

// UploadProductImage decodes a base64 encoded image and uploads it to the
// product images folder. Returns the public URL of the stored object.
func (b *Bucket) UploadProductImage(ctx context.Context, rawB64Image, imageName string) (string, error) {
	img, err := getB64ImageFromString(rawB64Image)
	if err != nil {
		return "", err
	}

	data, err := base64.StdEncoding.DecodeString(string(img.Content))
	if err != nil {
		return "", fmt.Errorf("can't decode base64 image: %w", err)
	}

	contentType := contentTypeFromDataPrefix(img.ContentType)
	ext := fileExtensionFromContentType(contentType)
	fp := b.constructFullPath(b.BaseFolder, imageName, ext)

	r := bytes.NewReader(data)
	_, err = b.Client.PutObject(ctx, b.Config.S3BucketName, fp, r, int64(r.Len()),
		minio.PutObjectOptions{
			ContentType:  contentType,
			CacheControl: "max-age=31536000",
			UserMetadata: map[string]string{"x-amz-acl": "public-read"},
		},
	)
	if err != nil {
		return "", fmt.Errorf("error putting object: %w", err)
	}

	return b.getCDNURL(fp), nil
}
