package domain

import "errors"

// MissingCredentialNotice is the user-facing text for ErrMissingCredential.
const MissingCredentialNotice = "API Key manquante. L'IA ne peut pas fonctionner."

var (
	ErrMissingCredential = errors.New("missing API credential")
	ErrUnknownField      = errors.New("unknown field")
	ErrInvalidValue      = errors.New("invalid value")
	ErrUnsupportedMedia  = errors.New("unsupported media type")
	ErrNotFound          = errors.New("not found")
	ErrEmptyResponse     = errors.New("empty response")
)
