package groupshare

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectMediaType(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected string
	}{
		{
			name:     "png magic bytes",
			data:     append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 16)...),
			expected: "image/png",
		},
		{
			name:     "jpeg magic bytes",
			data:     append([]byte{0xff, 0xd8, 0xff, 0xe0}, make([]byte, 16)...),
			expected: "image/jpeg",
		},
		{
			name:     "plain text",
			data:     []byte("just some words"),
			expected: "text/plain; charset=utf-8",
		},
		{
			name:     "arbitrary binary",
			data:     []byte{0x00, 0x01, 0x02, 0x03},
			expected: "application/octet-stream",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mediaType, replay, err := DetectMediaType(bytes.NewReader(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, mediaType)

			// The full payload must still be readable afterwards.
			data, err := io.ReadAll(replay)
			require.NoError(t, err)
			assert.Equal(t, tt.data, data)
		})
	}
}

func TestDetectMediaTypeLargeStream(t *testing.T) {
	// Payload larger than the sniff window round-trips intact.
	payload := strings.Repeat("abcdefgh", 1024)

	mediaType, replay, err := DetectMediaType(strings.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, "text/plain; charset=utf-8", mediaType)

	data, err := io.ReadAll(replay)
	require.NoError(t, err)
	assert.Equal(t, payload, string(data))
}

func TestIsAllowedMediaType(t *testing.T) {
	allowed := []string{
		"image/jpeg",
		"video/mp4",
		"audio/flac",
		"application/pdf",
		"application/zip",
		"text/plain",
		"text/plain; charset=utf-8", // sniffed form
	}
	for _, mt := range allowed {
		assert.True(t, IsAllowedMediaType(mt), mt)
	}

	denied := []string{
		"application/octet-stream",
		"application/x-msdownload",
		"application/javascript",
		"",
		"not a media type",
	}
	for _, mt := range denied {
		assert.False(t, IsAllowedMediaType(mt), mt)
	}
}
