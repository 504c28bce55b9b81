package httpserver

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"

	"fiche_client/internal/app"
	"fiche_client/internal/domain"
)

//go:embed templates/card.html
var templateFS embed.FS

var cardTmpl = template.Must(template.New("card.html").Funcs(template.FuncMap{
	"recommendations": func(s string) template.HTML {
		return template.HTML(app.RecommendationsHTML(template.HTMLEscapeString(s)))
	},
}).ParseFS(templateFS, "templates/card.html"))

type printView struct {
	Card            app.Card
	Summary         string
	Recommendations string
}

// printCard renders only the card as a standalone page for the browser's print dialog.
func (h *Handlers) printCard(w http.ResponseWriter, r *http.Request) {
	st := h.Form.Snapshot()
	view := printView{
		Card:            app.RenderCard(st.Profile),
		Summary:         settled(st.Insights.Summary),
		Recommendations: settled(st.Insights.Recommendations),
	}

	var buf bytes.Buffer
	if err := cardTmpl.Execute(&buf, view); err != nil {
		log.Error().Err(err).Msg("render print card failed")
		writeProblem(w, http.StatusInternalServerError, "Render Failed", "")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		log.Error().Err(err).Msg("failed to write print card")
	}
}

func settled(p domain.Panel) string {
	if p.Loading {
		return ""
	}
	return p.Text
}
