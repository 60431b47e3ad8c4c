package v1

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	analyticsapp "insights/internal/analytics/application"
	analyticsdomain "insights/internal/analytics/domain"
	shareddomain "insights/internal/shared/domain"
	txdomain "insights/internal/transactions/domain"
)

// SalesReporter rapport de ventes derrière l'enveloppe
type SalesReporter interface {
	Report(q analyticsapp.SalesQuery) (*analyticsapp.SalesReport, int, error)
}

// CustomerReporter rapport clients et lecture de CLV
type CustomerReporter interface {
	Report(q analyticsapp.CustomerQuery) (*analyticsapp.CustomerReport, int, error)
	LifetimeValue(id txdomain.CustomerID) (shareddomain.Money, error)
}

// ProductReporter rapport produits
type ProductReporter interface {
	Report(q analyticsapp.ProductQuery) (*analyticsapp.ProductReport, int, error)
}

// TransactionExporter exports CSV et Parquet
type TransactionExporter interface {
	ExportTransactionsToCSV(filter analyticsdomain.Filter) ([]byte, error)
	ExportTransactionsToParquet(filter analyticsdomain.Filter) ([]byte, error)
}

// Pinger sonde de disponibilité du store
type Pinger interface {
	Ping() error
}

// Handlers contient tous les handlers de l'API V1
type Handlers struct {
	sales       SalesReporter
	customers   CustomerReporter
	products    ProductReporter
	exporter    TransactionExporter
	store       Pinger
	environment string
}

// NewHandlers crée une nouvelle instance des handlers V1
func NewHandlers(
	sales SalesReporter,
	customers CustomerReporter,
	products ProductReporter,
	exporter TransactionExporter,
	store Pinger,
	environment string,
) *Handlers {
	return &Handlers{
		sales:       sales,
		customers:   customers,
		products:    products,
		exporter:    exporter,
		store:       store,
		environment: environment,
	}
}

// GetSales handler pour GET /api/v1/analytics/sales
func (h *Handlers) GetSales(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	q := analyticsapp.SalesQuery{
		Filter: filter,
		Dense:  r.URL.Query().Get("dense") == "true",
		TopN:   parseTop(r),
	}
	if b := r.URL.Query().Get("bucket"); b != "" {
		bucket, err := analyticsdomain.ParseBucket(b)
		if err != nil {
			writeError(w, err)
			return
		}
		q.Bucket = bucket
	}

	report, excluded, err := h.sales.Report(q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeEnvelope(w, filter, report, excluded)
}

// GetCustomers handler pour GET /api/v1/analytics/customers
func (h *Handlers) GetCustomers(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	q := analyticsapp.CustomerQuery{
		Filter: filter,
		TopN:   parseTop(r),
	}
	previous, current, err := churnWindows(r)
	if err != nil {
		writeError(w, err)
		return
	}
	q.Previous, q.Current = previous, current

	report, excluded, err := h.customers.Report(q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeEnvelope(w, filter, report, excluded)
}

// GetCustomerLifetimeValue handler pour GET /api/v1/analytics/customers/clv
func (h *Handlers) GetCustomerLifetimeValue(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("customer_id")
	if id == "" {
		writeError(w, shareddomain.NewValidationError("customer_id", "is required"))
		return
	}

	clv, err := h.customers.LifetimeValue(txdomain.CustomerID(id))
	if err != nil {
		writeError(w, err)
		return
	}

	filter, err := analyticsdomain.NewFilter(analyticsdomain.FilterParams{CustomerID: id})
	if err != nil {
		writeError(w, err)
		return
	}
	data := map[string]interface{}{
		"customer_id":             id,
		"customer_lifetime_value": clv,
	}
	writeEnvelope(w, filter, data, 0)
}

// GetProducts handler pour GET /api/v1/analytics/products
func (h *Handlers) GetProducts(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	q := analyticsapp.ProductQuery{
		Filter: filter,
		TopN:   parseTop(r),
	}
	if m := r.URL.Query().Get("metric"); m != "" {
		metric, err := analyticsdomain.ParseRankingMetric(m)
		if err != nil {
			writeError(w, err)
			return
		}
		q.Metric = metric
	}

	report, excluded, err := h.products.Report(q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeEnvelope(w, filter, report, excluded)
}

// ExportCSV handler pour GET /api/v1/export/transactions.csv
func (h *Handlers) ExportCSV(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	data, err := h.exporter.ExportTransactionsToCSV(filter)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=transactions.csv")
	w.Write(data)
}

// ExportParquet handler pour GET /api/v1/export/transactions.parquet
func (h *Handlers) ExportParquet(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	data, err := h.exporter.ExportTransactionsToParquet(filter)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", "attachment; filename=transactions.parquet")
	w.Write(data)
}

// Health handler pour GET /health
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	dbStatus := "ok"
	code := http.StatusOK
	if err := h.store.Ping(); err != nil {
		status = "degraded"
		dbStatus = "unavailable"
		code = http.StatusServiceUnavailable
		log.Printf("health check: database ping failed: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":          status,
		"database_status": dbStatus,
		"environment":     h.environment,
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
	})
}

// filterFromQuery construit le filtre normalisé depuis les paramètres de requête
func filterFromQuery(r *http.Request) (analyticsdomain.Filter, error) {
	q := r.URL.Query()
	return analyticsdomain.NewFilter(analyticsdomain.FilterParams{
		StartDate:  q.Get("start_date"),
		EndDate:    q.Get("end_date"),
		Region:     q.Get("region"),
		Channel:    q.Get("channel"),
		Category:   q.Get("category"),
		CustomerID: q.Get("customer_id"),
	})
}

// churnWindows lit les fenêtres explicites previous/current si fournies
func churnWindows(r *http.Request) (*shareddomain.DateRange, *shareddomain.DateRange, error) {
	q := r.URL.Query()
	ps, pe := q.Get("previous_start"), q.Get("previous_end")
	cs, ce := q.Get("current_start"), q.Get("current_end")
	if ps == "" && pe == "" && cs == "" && ce == "" {
		return nil, nil, nil
	}
	if ps == "" || pe == "" || cs == "" || ce == "" {
		return nil, nil, shareddomain.NewValidationError("previous_start",
			"churn windows require previous_start, previous_end, current_start and current_end")
	}

	previous, err := parseRange(ps, pe)
	if err != nil {
		return nil, nil, err
	}
	current, err := parseRange(cs, ce)
	if err != nil {
		return nil, nil, err
	}
	return previous, current, nil
}

func parseRange(start, end string) (*shareddomain.DateRange, error) {
	s, err := time.ParseInLocation("2006-01-02", start, time.UTC)
	if err != nil {
		return nil, shareddomain.NewValidationError("date", "must use YYYY-MM-DD format")
	}
	e, err := time.ParseInLocation("2006-01-02", end, time.UTC)
	if err != nil {
		return nil, shareddomain.NewValidationError("date", "must use YYYY-MM-DD format")
	}
	dr, err := shareddomain.NewDateRange(s, e)
	if err != nil {
		return nil, err
	}
	return &dr, nil
}

// parseTop lit le paramètre top, 0 signifie la valeur par défaut du service
func parseTop(r *http.Request) int {
	top, err := strconv.Atoi(r.URL.Query().Get("top"))
	if err != nil || top <= 0 {
		return 0
	}
	return top
}

// writeEnvelope sérialise la réponse dans l'enveloppe versionnée
func writeEnvelope(w http.ResponseWriter, filter analyticsdomain.Filter, data interface{}, excluded int) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(analyticsapp.NewEnvelope(filter, data, excluded))
}

// writeError traduit la taxonomie d'erreurs en codes HTTP
func writeError(w http.ResponseWriter, err error) {
	var code int
	switch {
	case shareddomain.IsValidation(err):
		code = http.StatusBadRequest
	case shareddomain.IsNotFound(err):
		code = http.StatusNotFound
	case shareddomain.IsStoreUnavailable(err):
		code = http.StatusServiceUnavailable
		log.Printf("store unavailable: %v", err)
	default:
		code = http.StatusInternalServerError
		log.Printf("internal error: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
