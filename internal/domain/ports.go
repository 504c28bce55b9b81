package domain

import "context"

// TextGenerator sends one prompt to a generative-text endpoint.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Upload is one file received from the form's file input.
type Upload struct {
	Name string
	Data []byte
}

// MediaStore keeps uploaded bytes and hands out locally-resolvable preview URLs.
type MediaStore interface {
	Save(ctx context.Context, up Upload) (MediaItem, error)
	Delete(ctx context.Context, id string) error
}
