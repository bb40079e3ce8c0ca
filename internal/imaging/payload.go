package imaging

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
)

var (
	// ErrNotDataURI is returned for payloads that are not base64 image
	// data-URIs.
	ErrNotDataURI = errors.New("payload is not an image data-URI")
	// ErrBadBase64 is returned when the base64 segment cannot be decoded.
	ErrBadBase64 = errors.New("invalid base64 image data")
)

// ParseDataURI decodes a "data:image/<fmt>;base64,<data>" payload and returns
// the raw bytes plus a file extension derived from the declared format.
func ParseDataURI(payload string) ([]byte, string, error) {
	if !strings.HasPrefix(payload, "data:image") {
		return nil, "", ErrNotDataURI
	}

	head, b64, found := strings.Cut(payload, ";base64,")
	if !found {
		return nil, "", ErrNotDataURI
	}

	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, "", ErrBadBase64
	}

	// "data:image/png" -> ".png"
	format := head[strings.LastIndex(head, "/")+1:]
	ext := "." + strings.ToLower(format)

	return data, ext, nil
}

// DetectContentType sniffs the MIME type of raw image bytes.
func DetectContentType(data []byte) string {
	contentType := http.DetectContentType(data)
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	return contentType
}
