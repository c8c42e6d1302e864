package objstore

import (
	"testing"

	"github.com/pdiddy/podcast-engine/pkg/types"
)

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  types.StorageConfig
		key  string
		want string
	}{
		{
			name: "standard S3 URL",
			cfg:  types.StorageConfig{Bucket: "podcast-episodes", Region: "ap-northeast-1"},
			key:  "episodes/2301.07041.wav",
			want: "https://podcast-episodes.s3.ap-northeast-1.amazonaws.com/episodes/2301.07041.wav",
		},
		{
			name: "default region",
			cfg:  types.StorageConfig{Bucket: "podcast-episodes"},
			key:  "2301.07041.wav",
			want: "https://podcast-episodes.s3.us-east-1.amazonaws.com/2301.07041.wav",
		},
		{
			name: "public base URL override",
			cfg:  types.StorageConfig{Bucket: "podcast-episodes", PublicBaseURL: "https://cdn.example.com/"},
			key:  "2301.07041.wav",
			want: "https://cdn.example.com/2301.07041.wav",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &S3Store{cfg: tt.cfg}
			if got := s.PublicURL(tt.key); got != tt.want {
				t.Errorf("PublicURL(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}
