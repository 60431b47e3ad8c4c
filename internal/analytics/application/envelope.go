package application

import (
	"time"

	"github.com/google/uuid"

	"insights/internal/analytics/domain"
)

// Version version du contrat de réponse
const Version = "v1"

// Envelope enveloppe versionnée assemblée par le Response Formatter.
// filter_echo reflète exactement le filtre normalisé appliqué;
// excluded_rows compte les lignes écartées pour violation d'intégrité.
// Aucune couche en dessous ne connaît le format de transport.
type Envelope struct {
	Version      string            `json:"version"`
	GeneratedAt  time.Time         `json:"generated_at"`
	RequestID    string            `json:"request_id"`
	FilterEcho   domain.FilterEcho `json:"filter_echo"`
	ExcludedRows int               `json:"excluded_rows"`
	Data         interface{}       `json:"data"`
}

// NewEnvelope assemble l'enveloppe de réponse pour un résultat d'agrégation
func NewEnvelope(filter domain.Filter, data interface{}, excludedRows int) *Envelope {
	return &Envelope{
		Version:      Version,
		GeneratedAt:  time.Now().UTC(),
		RequestID:    uuid.NewString(),
		FilterEcho:   filter.Echo(),
		ExcludedRows: excludedRows,
		Data:         data,
	}
}
