package media_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"fiche_client/internal/adapters/media"
	"fiche_client/internal/domain"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// mp4 is the smallest header mimetype recognises as video/mp4.
var mp4 = []byte{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p', 'm', 'p', '4', '2', 0x00, 0x00, 0x00, 0x00, 'm', 'p', '4', '2', 'i', 's', 'o', 'm'}

func TestSave_Image(t *testing.T) {
	ctx := context.Background()
	s := media.NewStore(0)

	item, err := s.Save(ctx, domain.Upload{Name: "salon.png", Data: pngBytes(t, 800, 400)})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if item.Kind != domain.MediaImage || item.Name != "salon.png" {
		t.Fatalf("item %+v", item)
	}
	if item.URL != media.URLPrefix+item.ID {
		t.Fatalf("url %q", item.URL)
	}

	obj, err := s.Get(ctx, item.ID)
	if err != nil || obj.ContentType != "image/png" {
		t.Fatalf("get: %v %+v", err, obj)
	}

	thumb, ct, err := s.Thumbnail(ctx, item.ID)
	if err != nil || ct != "image/jpeg" {
		t.Fatalf("thumbnail: %v %q", err, ct)
	}
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(thumb))
	if err != nil {
		t.Fatalf("thumbnail is not a jpeg: %v", err)
	}
	if cfg.Width != 320 || cfg.Height != 160 {
		t.Fatalf("thumbnail %dx%d, want 320x160", cfg.Width, cfg.Height)
	}
}

func TestSave_VideoHasNoThumbnail(t *testing.T) {
	ctx := context.Background()
	s := media.NewStore(0)

	item, err := s.Save(ctx, domain.Upload{Name: "visite.mp4", Data: mp4})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if item.Kind != domain.MediaVideo {
		t.Fatalf("kind %s", item.Kind)
	}
	if _, _, err := s.Thumbnail(ctx, item.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestSave_Rejects(t *testing.T) {
	s := media.NewStore(64)
	cases := map[string][]byte{
		"empty": nil,
		"text":  []byte("bonjour"),
		"large": bytes.Repeat([]byte{0}, 65),
	}
	for name, data := range cases {
		if _, err := s.Save(context.Background(), domain.Upload{Name: name, Data: data}); !errors.Is(err, domain.ErrUnsupportedMedia) {
			t.Errorf("%s: want ErrUnsupportedMedia, got %v", name, err)
		}
	}
}

func TestSave_RejectsSVG(t *testing.T) {
	s := media.NewStore(0)
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg"><script>alert(document.cookie)</script></svg>`)
	if _, err := s.Save(context.Background(), domain.Upload{Name: "logo.svg", Data: svg}); !errors.Is(err, domain.ErrUnsupportedMedia) {
		t.Fatalf("want ErrUnsupportedMedia, got %v", err)
	}
}

func TestSave_UniqueIDs(t *testing.T) {
	s := media.NewStore(0)
	data := pngBytes(t, 4, 4)
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		item, err := s.Save(context.Background(), domain.Upload{Name: "a.png", Data: data})
		if err != nil {
			t.Fatal(err)
		}
		if seen[item.ID] {
			t.Fatalf("duplicate id %s", item.ID)
		}
		seen[item.ID] = true
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := media.NewStore(0)
	item, _ := s.Save(ctx, domain.Upload{Name: "a.png", Data: pngBytes(t, 4, 4)})

	if err := s.Delete(ctx, item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, item.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("get after delete: %v", err)
	}
	if err := s.Delete(ctx, item.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete: %v", err)
	}
	if !strings.HasPrefix(item.URL, "/v1/media/") {
		t.Fatalf("url %q", item.URL)
	}
}

func TestThumbnail_FallsBackToOriginal(t *testing.T) {
	ctx := context.Background()
	s := media.NewStore(0)

	// a PNG signature followed by garbage sniffs as PNG but does not decode
	broken := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0xAB}, 64)...)
	item, err := s.Save(ctx, domain.Upload{Name: "scan.png", Data: broken})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if item.Kind != domain.MediaImage {
		t.Fatalf("kind %s", item.Kind)
	}

	data, ct, err := s.Thumbnail(ctx, item.ID)
	if err != nil {
		t.Fatalf("thumbnail: %v", err)
	}
	if ct != "image/png" || !bytes.Equal(data, broken) {
		t.Fatalf("fallback %q, %d bytes", ct, len(data))
	}
}
