package groupshare

import (
	"bytes"
	"io"
	"mime"
	"net/http"
)

// allowedMediaTypes is the fixed upload allow-list spanning image,
// video, audio, document and archive types.
var allowedMediaTypes = map[string]struct{}{
	// Images
	"image/jpeg": {}, "image/png": {}, "image/gif": {}, "image/webp": {},
	"image/bmp": {}, "image/tiff": {}, "image/svg+xml": {}, "image/x-icon": {},
	"image/heif": {}, "image/heic": {},

	// Videos
	"video/mp4": {}, "video/webm": {}, "video/x-msvideo": {}, "video/x-matroska": {},
	"video/quicktime": {}, "video/mpeg": {}, "video/3gpp": {}, "video/3gpp2": {},
	"video/x-flv": {}, "video/ogg": {}, "video/x-ms-wmv": {},

	// Audio
	"audio/mpeg": {}, "audio/wav": {}, "audio/ogg": {}, "audio/webm": {},
	"audio/aac": {}, "audio/flac": {}, "audio/3gpp": {}, "audio/3gpp2": {},
	"audio/mp4": {}, "audio/x-ms-wma": {}, "audio/amr": {}, "audio/opus": {},

	// Documents
	"application/pdf": {}, "text/plain": {}, "text/html": {}, "text/csv": {},
	"text/rtf": {}, "application/msword": {}, "application/epub+zip": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   {},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         {},
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": {},
	"application/vnd.ms-excel": {}, "application/vnd.ms-powerpoint": {},
	"application/vnd.oasis.opendocument.text":         {},
	"application/vnd.oasis.opendocument.spreadsheet":  {},
	"application/vnd.oasis.opendocument.presentation": {},

	// Archives
	"application/zip": {}, "application/x-7z-compressed": {},
	"application/x-rar-compressed": {}, "application/x-tar": {},
	"application/gzip": {}, "application/x-bzip2": {},
}

// sniffLen is the prefix http.DetectContentType inspects.
const sniffLen = 512

// DetectMediaType sniffs the stream's actual media type from its leading
// bytes. The returned reader replays the consumed prefix followed by the
// remainder of r, so the full payload is still readable afterwards.
func DetectMediaType(r io.Reader) (string, io.Reader, error) {
	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", nil, err
	}

	mediaType := http.DetectContentType(buf[:n])
	return mediaType, io.MultiReader(bytes.NewReader(buf[:n]), r), nil
}

// IsAllowedMediaType reports whether t is in the upload allow-list.
// Parameters are stripped first: http.DetectContentType reports text
// types with a charset suffix ("text/plain; charset=utf-8").
func IsAllowedMediaType(t string) bool {
	if _, ok := allowedMediaTypes[t]; ok {
		return true
	}
	bare, _, err := mime.ParseMediaType(t)
	if err != nil {
		return false
	}
	_, ok := allowedMediaTypes[bare]
	return ok
}
