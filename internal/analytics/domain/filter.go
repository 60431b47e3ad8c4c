package domain

import (
	"fmt"
	"strings"
	"time"

	shareddomain "insights/internal/shared/domain"
	txdomain "insights/internal/transactions/domain"
)

// dateLayout format ISO-8601 des dates de requête
const dateLayout = "2006-01-02"

// FilterParams paramètres bruts d'une requête d'analytics, tels que reçus
// de la couche transport. Toute la validation se fait dans NewFilter.
type FilterParams struct {
	StartDate  string
	EndDate    string
	Region     string
	Channel    string
	Category   string
	CustomerID string
}

// Filter représente un prédicat normalisé et immuable, construit une seule
// fois puis passé tel quel à travers le pipeline. Sans dates, la fenêtre par
// défaut est tout l'historique disponible: les agrégateurs ne rétrécissent
// jamais la portée silencieusement.
type Filter struct {
	start      *time.Time // minuit UTC du premier jour
	end        *time.Time // dernier jour civil, inclus
	region     string
	channel    txdomain.Channel
	category   string
	customerID txdomain.CustomerID
}

// NewFilter construit un filtre normalisé avec validation complète
func NewFilter(p FilterParams) (Filter, error) {
	var f Filter

	if p.StartDate != "" {
		t, err := time.ParseInLocation(dateLayout, p.StartDate, time.UTC)
		if err != nil {
			return Filter{}, shareddomain.NewValidationError("start_date", "must be a YYYY-MM-DD date")
		}
		f.start = &t
	}
	if p.EndDate != "" {
		t, err := time.ParseInLocation(dateLayout, p.EndDate, time.UTC)
		if err != nil {
			return Filter{}, shareddomain.NewValidationError("end_date", "must be a YYYY-MM-DD date")
		}
		f.end = &t
	}
	if f.start != nil && f.end != nil && f.start.After(*f.end) {
		return Filter{}, shareddomain.NewValidationError("start_date", "must not be after end_date")
	}

	if p.Channel != "" {
		ch, err := txdomain.ParseChannel(p.Channel)
		if err != nil {
			return Filter{}, shareddomain.NewValidationError("channel", "must be one of online, store, mobile")
		}
		f.channel = ch
	}

	f.region = strings.TrimSpace(p.Region)
	f.category = strings.TrimSpace(p.Category)
	f.customerID = txdomain.CustomerID(strings.TrimSpace(p.CustomerID))

	return f, nil
}

// Start retourne la borne basse (minuit UTC), nil si non bornée
func (f Filter) Start() *time.Time {
	return f.start
}

// End retourne le dernier jour civil inclus, nil si non borné
func (f Filter) End() *time.Time {
	return f.end
}

// endExclusive borne haute exclusive: lendemain du dernier jour inclus
func (f Filter) endExclusive() *time.Time {
	if f.end == nil {
		return nil
	}
	e := f.end.AddDate(0, 0, 1)
	return &e
}

// Region retourne le filtre de région ("" = toutes)
func (f Filter) Region() string {
	return f.region
}

// Channel retourne le filtre de canal ("" = tous)
func (f Filter) Channel() txdomain.Channel {
	return f.channel
}

// Category retourne le filtre de catégorie ("" = toutes)
func (f Filter) Category() string {
	return f.category
}

// CustomerID retourne le filtre de client ("" = tous)
func (f Filter) CustomerID() txdomain.CustomerID {
	return f.customerID
}

// Matches évalue le prédicat en mémoire sur une transaction
func (f Filter) Matches(t *txdomain.Transaction) bool {
	if f.start != nil && t.Date().Before(*f.start) {
		return false
	}
	if e := f.endExclusive(); e != nil && !t.Date().Before(*e) {
		return false
	}
	if f.region != "" && t.Region() != f.region {
		return false
	}
	if f.channel != "" && t.Channel() != f.channel {
		return false
	}
	if f.category != "" && t.Category() != f.category {
		return false
	}
	if f.customerID != "" && t.CustomerID() != f.customerID {
		return false
	}
	return true
}

// MatchesCustomer évalue le prédicat sur un résumé client: la fenêtre de dates
// s'applique à last_purchase_date (client vu dans la fenêtre)
func (f Filter) MatchesCustomer(c *txdomain.CustomerMetric) bool {
	if f.start != nil && c.LastPurchase().Before(*f.start) {
		return false
	}
	if e := f.endExclusive(); e != nil && !c.LastPurchase().Before(*e) {
		return false
	}
	if f.customerID != "" && c.CustomerID() != f.customerID {
		return false
	}
	return true
}

// ToSQL produit la clause WHERE et ses arguments pour sales_transactions
// (implémentation du pattern Specification du repository partagé)
func (f Filter) ToSQL() (string, []interface{}) {
	var conds []string
	var args []interface{}

	if f.start != nil {
		args = append(args, *f.start)
		conds = append(conds, fmt.Sprintf("transaction_date >= $%d", len(args)))
	}
	if e := f.endExclusive(); e != nil {
		args = append(args, *e)
		conds = append(conds, fmt.Sprintf("transaction_date < $%d", len(args)))
	}
	if f.region != "" {
		args = append(args, f.region)
		conds = append(conds, fmt.Sprintf("region = $%d", len(args)))
	}
	if f.channel != "" {
		args = append(args, string(f.channel))
		conds = append(conds, fmt.Sprintf("channel = $%d", len(args)))
	}
	if f.category != "" {
		args = append(args, f.category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.customerID != "" {
		args = append(args, string(f.customerID))
		conds = append(conds, fmt.Sprintf("customer_id = $%d", len(args)))
	}

	return strings.Join(conds, " AND "), args
}

// ToCustomerSQL produit la clause WHERE pour customer_metrics
func (f Filter) ToCustomerSQL() (string, []interface{}) {
	var conds []string
	var args []interface{}

	if f.start != nil {
		args = append(args, *f.start)
		conds = append(conds, fmt.Sprintf("last_purchase_date >= $%d", len(args)))
	}
	if e := f.endExclusive(); e != nil {
		args = append(args, *e)
		conds = append(conds, fmt.Sprintf("last_purchase_date < $%d", len(args)))
	}
	if f.customerID != "" {
		args = append(args, string(f.customerID))
		conds = append(conds, fmt.Sprintf("customer_id = $%d", len(args)))
	}

	return strings.Join(conds, " AND "), args
}

// Key retourne le fragment canonique de clé de cache du filtre normalisé
func (f Filter) Key() string {
	parts := make([]string, 0, 6)
	if f.start != nil {
		parts = append(parts, f.start.Format(dateLayout))
	} else {
		parts = append(parts, "-")
	}
	if f.end != nil {
		parts = append(parts, f.end.Format(dateLayout))
	} else {
		parts = append(parts, "-")
	}
	for _, s := range []string{f.region, string(f.channel), f.category, string(f.customerID)} {
		if s == "" {
			s = "-"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "|")
}

// FilterEcho reflète exactement le filtre normalisé appliqué, renvoyé dans
// l'enveloppe pour que l'appelant vérifie qu'aucun rétrécissement implicite
// de portée n'a eu lieu
type FilterEcho struct {
	StartDate  *string `json:"start_date"`
	EndDate    *string `json:"end_date"`
	Region     *string `json:"region"`
	Channel    *string `json:"channel"`
	Category   *string `json:"category"`
	CustomerID *string `json:"customer_id"`
}

// Echo construit le reflet sérialisable du filtre
func (f Filter) Echo() FilterEcho {
	var echo FilterEcho
	if f.start != nil {
		s := f.start.Format(dateLayout)
		echo.StartDate = &s
	}
	if f.end != nil {
		s := f.end.Format(dateLayout)
		echo.EndDate = &s
	}
	if f.region != "" {
		s := f.region
		echo.Region = &s
	}
	if f.channel != "" {
		s := string(f.channel)
		echo.Channel = &s
	}
	if f.category != "" {
		s := f.category
		echo.Category = &s
	}
	if f.customerID != "" {
		s := string(f.customerID)
		echo.CustomerID = &s
	}
	return echo
}
