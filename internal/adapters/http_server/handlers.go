package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"fiche_client/internal/adapters/media"
	"fiche_client/internal/app"
	"fiche_client/internal/domain"
)

// MediaReader serves stored uploads back to the browser.
type MediaReader interface {
	Get(ctx context.Context, id string) (*media.Object, error)
	Thumbnail(ctx context.Context, id string) ([]byte, string, error)
}

type Handlers struct {
	Form      *app.FormController
	Media     MediaReader
	MaxUpload int64 // bytes per multipart request
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1", func(r chi.Router) {
		r.Get("/options", h.options)
		r.Get("/form", h.form)

		r.Get("/profile", h.getProfile)
		r.Patch("/profile", h.updateField)
		r.Post("/profile/reset", h.reset)
		r.Post("/profile/media", h.addMedia)
		r.Delete("/profile/media/{id}", h.removeMedia)

		r.Get("/media/{id}", h.getMedia)
		r.Get("/media/{id}/thumb", h.getThumbnail)

		r.Post("/insights", h.triggerInsights)
		r.Get("/insights", h.getInsights)

		r.Get("/card", h.getCard)
		r.Get("/card/print", h.printCard)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps domain errors to problem responses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingCredential):
		writeProblem(w, http.StatusServiceUnavailable, "AI Unavailable", domain.MissingCredentialNotice)
	case errors.Is(err, domain.ErrUnknownField):
		writeProblem(w, http.StatusBadRequest, "Unknown Field", err.Error())
	case errors.Is(err, domain.ErrInvalidValue):
		writeProblem(w, http.StatusBadRequest, "Invalid Value", err.Error())
	case errors.Is(err, domain.ErrUnsupportedMedia):
		writeProblem(w, http.StatusUnsupportedMediaType, "Unsupported Media", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	default:
		log.Error().Err(err).Msg("unhandled error")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

type optionsResponse struct {
	TransactionTypes []domain.TransactionType `json:"transactionTypes"`
	PropertyTypes    []domain.PropertyType    `json:"propertyTypes"`
	Cities           []string                 `json:"cities"`
}

func (h *Handlers) options(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, optionsResponse{
		TransactionTypes: domain.TransactionTypes,
		PropertyTypes:    domain.PropertyTypes,
		Cities:           domain.Cities,
	})
}

type formResponse struct {
	Categories domain.Categories `json:"categories"`
	Category   domain.Category   `json:"category"`
	Groups     []app.FormGroup   `json:"groups"`
}

func (h *Handlers) form(w http.ResponseWriter, r *http.Request) {
	p := h.Form.Profile()
	cat := domain.Classify(p.PropertyType)
	writeJSON(w, http.StatusOK, formResponse{Categories: cat, Category: cat.Kind(), Groups: app.FormSchema(p)})
}

func (h *Handlers) getProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Form.Snapshot())
}

type fieldUpdate struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

func (h *Handlers) updateField(w http.ResponseWriter, r *http.Request) {
	var in fieldUpdate
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "expected {\"field\": ..., \"value\": ...}")
		return
	}
	if err := h.Form.UpdateField(in.Field, in.Value); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.Form.Snapshot())
}

func (h *Handlers) reset(w http.ResponseWriter, r *http.Request) {
	h.Form.Reset(r.Context())
	writeJSON(w, http.StatusOK, h.Form.Snapshot())
}

type mediaResponse struct {
	Added []domain.MediaItem `json:"added"`
	Media []domain.MediaItem `json:"media"`
	Error string             `json:"error,omitempty"`
}

func (h *Handlers) addMedia(w http.ResponseWriter, r *http.Request) {
	if h.MaxUpload > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxUpload)
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Upload", err.Error())
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	uploads := make([]domain.Upload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid Upload", err.Error())
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid Upload", err.Error())
			return
		}
		uploads = append(uploads, domain.Upload{Name: fh.Filename, Data: data})
	}

	added, err := h.Form.AddMedia(r.Context(), uploads)
	if err != nil && len(added) == 0 {
		writeError(w, err)
		return
	}
	resp := mediaResponse{Added: added, Media: h.Form.Profile().Media}
	if err != nil {
		resp.Error = err.Error()
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handlers) removeMedia(w http.ResponseWriter, r *http.Request) {
	h.Form.RemoveMedia(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) getMedia(w http.ResponseWriter, r *http.Request) {
	obj, err := h.Media.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	mediaHeaders(w, obj.ContentType)
	if _, err := w.Write(obj.Data); err != nil {
		log.Error().Err(err).Msg("failed to write media body")
	}
}

func (h *Handlers) getThumbnail(w http.ResponseWriter, r *http.Request) {
	b, contentType, err := h.Media.Thumbnail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	mediaHeaders(w, contentType)
	if _, err := w.Write(b); err != nil {
		log.Error().Err(err).Msg("failed to write thumbnail body")
	}
}

// mediaHeaders pins the sniffed type so browsers never reinterpret an upload.
func mediaHeaders(w http.ResponseWriter, contentType string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Content-Security-Policy", "default-src 'none'; sandbox")
	w.Header().Set("Cache-Control", "private, max-age=3600")
}

func (h *Handlers) triggerInsights(w http.ResponseWriter, r *http.Request) {
	if err := h.Form.TriggerGeneration(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, h.Form.Snapshot().Insights)
}

func (h *Handlers) getInsights(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Form.Snapshot().Insights)
}

func (h *Handlers) getCard(w http.ResponseWriter, r *http.Request) {
	card := app.RenderCard(h.Form.Profile())

	etag, body := calcETagAndBody(card)
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write card body")
	}
}
