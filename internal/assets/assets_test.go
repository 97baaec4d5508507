package assets

import (
	"testing"

	"chriscakes/internal/models"
)

func TestCDNImageURL(t *testing.T) {
	cdn := CDN{ProjectID: "abc123", Dataset: "production"}

	tests := []struct {
		name  string
		ref   string
		width int
		want  string
	}{
		{
			name:  "standard ref",
			ref:   "image-Tb9Ew8CXIwaY6R1kjMvI0uRR-2000x3000-jpg",
			width: 800,
			want:  "https://cdn.sanity.io/images/abc123/production/Tb9Ew8CXIwaY6R1kjMvI0uRR-2000x3000.jpg?w=800&auto=format",
		},
		{
			name: "no width",
			ref:  "image-abc-10x20-png",
			want: "https://cdn.sanity.io/images/abc123/production/abc-10x20.png",
		},
		{name: "not an image ref", ref: "file-abc-pdf", want: ""},
		{name: "missing dimensions", ref: "image-abc-png", want: ""},
		{name: "empty", ref: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cdn.ImageURL(tt.ref, tt.width); got != tt.want {
				t.Errorf("ImageURL(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}

func TestURL(t *testing.T) {
	static := Static{Prefix: "/static/images/"}

	if got := URL(static, nil, 800); got != "" {
		t.Errorf("nil image: got %q", got)
	}
	if got := URL(static, &models.Image{Alt: "no asset"}, 800); got != "" {
		t.Errorf("image without asset: got %q", got)
	}

	img := &models.Image{Asset: &models.AssetRef{Ref: "pancakes.jpg"}}
	if got := URL(static, img, 800); got != "/static/images/pancakes.jpg" {
		t.Errorf("static: got %q", got)
	}

	abs := &models.Image{Asset: &models.AssetRef{Ref: "https://cdn.example.com/a.png"}}
	if got := URL(nil, abs, 800); got != "https://cdn.example.com/a.png" {
		t.Errorf("absolute: got %q", got)
	}
	if got := URL(nil, img, 800); got != "" {
		t.Errorf("nil resolver: got %q", got)
	}
}
