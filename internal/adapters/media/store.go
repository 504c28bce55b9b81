package media

import (
	"bytes"
	"context"
	"fmt"
	"image/jpeg"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"

	"fiche_client/internal/adapters/observability"
	"fiche_client/internal/domain"
)

// URLPrefix is where the HTTP layer serves stored files.
const URLPrefix = "/v1/media/"

const thumbSize = 320

// Object is one stored upload.
type Object struct {
	Item        domain.MediaItem
	ContentType string
	Data        []byte
	thumb       []byte
}

// Store keeps uploads in memory for the lifetime of the process.
type Store struct {
	mu      sync.RWMutex
	objects map[string]*Object
	maxSize int64
}

// NewStore returns an empty store. maxSize bounds a single upload in bytes;
// zero means unbounded.
func NewStore(maxSize int64) *Store {
	return &Store{objects: map[string]*Object{}, maxSize: maxSize}
}

// Save sniffs the upload, keeps it if it is an image or a video and returns
// the item the profile should reference.
func (s *Store) Save(_ context.Context, up domain.Upload) (domain.MediaItem, error) {
	if len(up.Data) == 0 {
		return domain.MediaItem{}, fmt.Errorf("%w: empty file", domain.ErrUnsupportedMedia)
	}
	if s.maxSize > 0 && int64(len(up.Data)) > s.maxSize {
		return domain.MediaItem{}, fmt.Errorf("%w: %d bytes over limit", domain.ErrUnsupportedMedia, len(up.Data))
	}

	mt := mimetype.Detect(up.Data)
	kind, ok := kindOf(mt.String())
	if !ok {
		observability.ObserveMedia("other", "reject")
		return domain.MediaItem{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedMedia, mt.String())
	}

	id := ulid.Make().String()
	obj := &Object{
		Item: domain.MediaItem{
			ID:   id,
			URL:  URLPrefix + id,
			Kind: kind,
			Name: up.Name,
		},
		ContentType: mt.String(),
		Data:        up.Data,
	}
	if kind == domain.MediaImage {
		thumb, err := thumbnail(up.Data)
		if err != nil {
			log.Warn().Err(err).Str("name", up.Name).Msg("thumbnail failed, serving original")
		}
		obj.thumb = thumb
	}

	s.mu.Lock()
	s.objects[id] = obj
	s.mu.Unlock()

	observability.ObserveMedia(string(kind), "save")
	log.Debug().Str("id", id).Str("type", mt.String()).Int("bytes", len(up.Data)).Msg("media stored")
	return obj.Item, nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	obj, ok := s.objects[id]
	delete(s.objects, id)
	s.mu.Unlock()
	if !ok {
		return domain.ErrNotFound
	}
	observability.ObserveMedia(string(obj.Item.Kind), "delete")
	return nil
}

func (s *Store) Get(_ context.Context, id string) (*Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return obj, nil
}

// Thumbnail returns a JPEG preview for images and its content type. Images
// that could not be decoded fall back to the original bytes; videos have none.
func (s *Store) Thumbnail(ctx context.Context, id string) ([]byte, string, error) {
	obj, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	switch {
	case obj.thumb != nil:
		return obj.thumb, "image/jpeg", nil
	case obj.Item.Kind == domain.MediaImage:
		return obj.Data, obj.ContentType, nil
	}
	return nil, "", domain.ErrNotFound
}

// rasterImages are the image types served back to browsers. Vector and
// document formats such as SVG can carry scripts and are refused.
var rasterImages = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/bmp":  true,
	"image/tiff": true,
	"image/heic": true,
	"image/heif": true,
	"image/avif": true,
}

func kindOf(contentType string) (domain.MediaKind, bool) {
	switch {
	case rasterImages[contentType]:
		return domain.MediaImage, true
	case strings.HasPrefix(contentType, "video/"):
		return domain.MediaVideo, true
	}
	return "", false
}

func thumbnail(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}
	img = imaging.Fit(img, thumbSize, thumbSize, imaging.Lanczos)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
