package bucket

import (
	"fmt"
	"path"
	"strings"
)

const (
	contentTypeJPEG = "image/jpeg"
	contentTypePNG  = "image/png"
	contentTypeWEBP = "image/webp"
)

func fileExtensionFromContentType(contentType string) string {
	switch contentType {
	case contentTypeJPEG:
		return "jpg"
	case contentTypePNG:
		return "png"
	case contentTypeWEBP:
		return "webp"
	default:
		parts := strings.Split(contentType, "/")
		if len(parts) > 1 {
			return parts[1]
		}
		return contentType
	}
}

// contentTypeFromDataPrefix strips the "data:" scheme from the media type
// part of a data URL.
func contentTypeFromDataPrefix(dataPrefix string) string {
	return strings.TrimPrefix(dataPrefix, "data:")
}

// getB64ImageFromString splits a raw base64 image string of the form
// "data:[<mediatype>];base64,[<base64-data>]".
func getB64ImageFromString(rawB64Image string) (*B64Image, error) {
	const base64Prefix = ";base64,"
	parts := strings.Split(rawB64Image, base64Prefix)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid base64 image format: expected 'data:[mediatype];base64,[data]'")
	}
	return &B64Image{
		ContentType: parts[0],
		Content:     []byte(parts[1]),
	}, nil
}

func (b *Bucket) constructFullPath(folder, fileName, ext string) string {
	return path.Clean(path.Join(folder, fileName) + "." + ext)
}

func (b *Bucket) getCDNURL(filePath string) string {
	return fmt.Sprintf("https://%s.%s/%s", b.S3BucketName, b.S3Endpoint, filePath)
}
