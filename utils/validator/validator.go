package validator

import (
	"io"

	"github.com/teolier/asset-office/utils"
)

// allowedImageMimeTypes Allowed image types
var allowedImageMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/bmp":  true,
}

// IsImageMime Verify if a sniffed MIME type is an allowed image type.
func IsImageMime(mimeType string) bool {
	return allowedImageMimeTypes[mimeType]
}

// IsImage Verify if the file content is an allowed image type.
// Returns the sniffed MIME type so callers can persist it.
func IsImage(file io.ReadSeeker) (bool, string, error) {
	mimeType, err := utils.SniffContentType(file)
	if err != nil {
		return false, "", err
	}
	return IsImageMime(mimeType), mimeType, nil
}
