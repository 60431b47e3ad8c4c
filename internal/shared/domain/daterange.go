package domain

import (
	"errors"
	"time"
)

// DateRange représente une fenêtre temporelle fermée avec validation
// Value Object immuable: les bornes sont fixées à la création et les deux
// extrémités sont incluses. Les fenêtres de churn (précédente/courante) et les
// exports utilisent ce type; jamais de fenêtre implicite "N derniers jours".
type DateRange struct {
	start time.Time
	end   time.Time
}

// NewDateRange crée un DateRange à partir de bornes explicites
func NewDateRange(start, end time.Time) (DateRange, error) {
	if start.After(end) {
		return DateRange{}, errors.New("start date must not be after end date")
	}
	return DateRange{start: start.UTC(), end: end.UTC()}, nil
}

// Start retourne la date de début
func (dr DateRange) Start() time.Time {
	return dr.start
}

// End retourne la date de fin
func (dr DateRange) End() time.Time {
	return dr.end
}

// Contains vérifie si un instant tombe dans la fenêtre (bornes incluses)
func (dr DateRange) Contains(t time.Time) bool {
	t = t.UTC()
	return !t.Before(dr.start) && !t.After(dr.end)
}
