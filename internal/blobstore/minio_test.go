package blobstore

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	testCases := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "endpoint",
			cfg:  Config{Endpoint: "localhost:9000", Bucket: "images"},
			want: "http://localhost:9000/images/1/abc.png",
		},
		{
			name: "ssl endpoint",
			cfg:  Config{Endpoint: "s3.example.com", Bucket: "images", UseSSL: true},
			want: "https://s3.example.com/images/1/abc.png",
		},
		{
			name: "public url",
			cfg:  Config{Endpoint: "minio:9000", Bucket: "media", PublicURL: "https://cdn.example.com/"},
			want: "https://cdn.example.com/media/1/abc.png",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store, err := New(log, tc.cfg)
			require.NoError(t, err)
			assert.Equal(t, tc.want, store.URL("1/abc.png"))
		})
	}
}
