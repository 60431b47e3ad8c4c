package application

import (
	"time"

	"insights/internal/analytics/domain"
	shareddomain "insights/internal/shared/domain"
	txdomain "insights/internal/transactions/domain"
)

// CustomerQuery paramètres d'un rapport clients. Les fenêtres de churn sont
// fournies explicitement par l'appelant; sans fenêtre précédente, le rapport
// omet la section acquisition/churn.
type CustomerQuery struct {
	Filter   domain.Filter
	TopN     int
	Previous *shareddomain.DateRange
	Current  *shareddomain.DateRange
}

// CustomerReport résultat de l'analytique clients
type CustomerReport struct {
	TotalCustomers   int                      `json:"total_customers"`
	ActiveCustomers  int                      `json:"active_customers"`
	AvgLifetimeValue shareddomain.Money       `json:"avg_customer_lifetime_value"`
	Retention        domain.RetentionSummary  `json:"retention"`
	TopCustomers     []domain.CustomerRank    `json:"top_customers"`
	AcquisitionChurn *domain.AcquisitionChurn `json:"acquisition_churn,omitempty"`
}

// CustomerService analytique clients sur les snapshots de customer_metrics.
// La customer_lifetime_value est lue telle quelle (champ opaque calculé par
// un batch externe); le statut actif est toujours dérivé en direct.
type CustomerService struct {
	store   CustomerReader
	recency time.Duration
	now     func() time.Time
}

// NewCustomerService crée une nouvelle instance de CustomerService
// avec la fenêtre de récence configurée (ex: 90 jours)
func NewCustomerService(store CustomerReader, recency time.Duration) *CustomerService {
	return &CustomerService{
		store:   store,
		recency: recency,
		now:     time.Now,
	}
}

// Report calcule le rapport clients complet pour un filtre
func (s *CustomerService) Report(q CustomerQuery) (*CustomerReport, int, error) {
	metrics, err := s.store.FindCustomerMetrics(q.Filter)
	if err != nil {
		return nil, 0, err
	}

	topN := q.TopN
	if topN == 0 {
		topN = defaultTopN
	}
	asOf := s.now().UTC()

	retention := domain.Retention(metrics, asOf, s.recency)
	report := &CustomerReport{
		TotalCustomers:   retention.TotalCustomers,
		ActiveCustomers:  retention.ActiveCustomers,
		AvgLifetimeValue: domain.AvgLifetimeValue(metrics),
		Retention:        retention,
		TopCustomers:     domain.TopCustomers(metrics, topN, asOf, s.recency),
	}
	if q.Previous != nil && q.Current != nil {
		churn := domain.AcquisitionChurnCounts(metrics, *q.Previous, *q.Current)
		report.AcquisitionChurn = &churn
	}
	return report, 0, nil
}

// TopCustomers classement des clients par customer_lifetime_value
func (s *CustomerService) TopCustomers(filter domain.Filter, n int) ([]domain.CustomerRank, error) {
	metrics, err := s.store.FindCustomerMetrics(filter)
	if err != nil {
		return nil, err
	}
	return domain.TopCustomers(metrics, n, s.now().UTC(), s.recency), nil
}

// RetentionSummary partition actifs/inactifs à un instant de référence donné
func (s *CustomerService) RetentionSummary(asOf time.Time, recency time.Duration) (domain.RetentionSummary, error) {
	metrics, err := s.store.FindCustomerMetrics(domain.Filter{})
	if err != nil {
		return domain.RetentionSummary{}, err
	}
	return domain.Retention(metrics, asOf, recency), nil
}

// AcquisitionChurn acquisitions et départs entre deux fenêtres explicites
func (s *CustomerService) AcquisitionChurn(filter domain.Filter, previous, current shareddomain.DateRange) (domain.AcquisitionChurn, error) {
	metrics, err := s.store.FindCustomerMetrics(filter)
	if err != nil {
		return domain.AcquisitionChurn{}, err
	}
	return domain.AcquisitionChurnCounts(metrics, previous, current), nil
}

// LifetimeValue retourne la CLV stockée d'un client; NotFound si absent
func (s *CustomerService) LifetimeValue(id txdomain.CustomerID) (shareddomain.Money, error) {
	metric, err := s.store.FindCustomerMetric(id)
	if err != nil {
		return shareddomain.Money{}, err
	}
	return metric.LifetimeValue().Rounded(), nil
}
