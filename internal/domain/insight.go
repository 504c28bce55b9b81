package domain

type InsightKind string

const (
	InsightSummary         InsightKind = "summary"
	InsightRecommendations InsightKind = "recommendations"
	InsightDraft           InsightKind = "draft"
)

// InsightKinds is the dispatch order of a generation; completion order is undefined.
var InsightKinds = []InsightKind{InsightSummary, InsightRecommendations, InsightDraft}

// ErrorFallback is shown when the request for k failed.
func (k InsightKind) ErrorFallback() string {
	switch k {
	case InsightSummary:
		return "Erreur lors de la génération du résumé IA."
	case InsightRecommendations:
		return "Erreur lors de l'analyse du marché."
	default:
		return "Erreur de génération du message."
	}
}

// EmptyFallback is shown when the request for k succeeded without text.
func (k InsightKind) EmptyFallback() string {
	switch k {
	case InsightSummary:
		return "Impossible de générer le résumé."
	case InsightRecommendations:
		return "Pas de recommandations disponibles."
	default:
		return "Erreur de rédaction."
	}
}

type Panel struct {
	Text    string `json:"text"`
	Loading bool   `json:"loading"`
}

// Insights is the per-panel display state of the three generated texts.
type Insights struct {
	Summary         Panel `json:"summary"`
	Recommendations Panel `json:"recommendations"`
	Draft           Panel `json:"draft"`
}

func (in *Insights) Panel(k InsightKind) *Panel {
	switch k {
	case InsightSummary:
		return &in.Summary
	case InsightRecommendations:
		return &in.Recommendations
	default:
		return &in.Draft
	}
}
