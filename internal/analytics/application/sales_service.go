package application

import (
	"log"

	"insights/internal/analytics/domain"
	shareddomain "insights/internal/shared/domain"
	txdomain "insights/internal/transactions/domain"
)

// defaultTopN taille par défaut des classements
const defaultTopN = 10

// SalesQuery paramètres d'un rapport de ventes
type SalesQuery struct {
	Filter domain.Filter
	Bucket domain.Bucket
	Dense  bool
	TopN   int
}

// SalesReport résultat de l'agrégateur de ventes
type SalesReport struct {
	TotalRevenue        shareddomain.Money        `json:"total_revenue"`
	TransactionCount    int                       `json:"total_transactions"`
	AvgTransactionValue shareddomain.Money        `json:"avg_transaction_value"`
	TopProducts         []domain.ProductRevenue   `json:"top_selling_products"`
	RevenueByRegion     []domain.DimensionRevenue `json:"revenue_by_region"`
	RevenueByChannel    []domain.DimensionRevenue `json:"revenue_by_channel"`
	Trend               []domain.TrendPoint       `json:"trend"`
}

// SalesService agrégateur de ventes: lit les lignes à travers le store,
// écarte et signale les violations d'intégrité, puis agrège en mémoire.
// Sans état, appelable en parallèle sans coordination.
type SalesService struct {
	store TransactionReader
}

// NewSalesService crée une nouvelle instance de SalesService
func NewSalesService(store TransactionReader) *SalesService {
	return &SalesService{store: store}
}

// fetch lit et partitionne les lignes; les lignes corrompues sont loguées
func (s *SalesService) fetch(filter domain.Filter) (valid []*txdomain.Transaction, excluded int, err error) {
	txs, err := s.store.FindTransactions(filter)
	if err != nil {
		return nil, 0, err
	}
	valid, bad := domain.PartitionByIntegrity(txs)
	for _, t := range bad {
		log.Printf("data integrity warning: transaction %s fails total_amount invariant (excluded)", t.ID())
	}
	return valid, len(bad), nil
}

// Report calcule le rapport complet des ventes pour un filtre
func (s *SalesService) Report(q SalesQuery) (*SalesReport, int, error) {
	valid, excluded, err := s.fetch(q.Filter)
	if err != nil {
		return nil, 0, err
	}

	topN := q.TopN
	if topN == 0 {
		topN = defaultTopN
	}
	bucket := q.Bucket
	if bucket == "" {
		bucket = domain.BucketDay
	}

	report := &SalesReport{
		TotalRevenue:        domain.TotalRevenue(valid),
		TransactionCount:    domain.TransactionCount(valid),
		AvgTransactionValue: domain.AvgTransactionValue(valid),
		TopProducts:         domain.TopProducts(valid, topN),
		RevenueByRegion:     domain.RevenueByDimension(valid, domain.DimensionRegion),
		RevenueByChannel:    domain.RevenueByDimension(valid, domain.DimensionChannel),
		Trend:               domain.Trend(valid, bucket, q.Dense),
	}
	return report, excluded, nil
}

// TotalRevenue somme du chiffre d'affaires pour un filtre; zéro sans lignes
func (s *SalesService) TotalRevenue(filter domain.Filter) (shareddomain.Money, error) {
	valid, _, err := s.fetch(filter)
	if err != nil {
		return shareddomain.Money{}, err
	}
	return domain.TotalRevenue(valid), nil
}

// TransactionCount nombre de transactions pour un filtre
func (s *SalesService) TransactionCount(filter domain.Filter) (int, error) {
	valid, _, err := s.fetch(filter)
	if err != nil {
		return 0, err
	}
	return domain.TransactionCount(valid), nil
}

// TopProducts classement des produits par chiffre d'affaires
func (s *SalesService) TopProducts(filter domain.Filter, n int) ([]domain.ProductRevenue, error) {
	valid, _, err := s.fetch(filter)
	if err != nil {
		return nil, err
	}
	return domain.TopProducts(valid, n), nil
}

// RevenueByDimension ventilation du chiffre d'affaires par région ou canal
func (s *SalesService) RevenueByDimension(filter domain.Filter, dim domain.Dimension) ([]domain.DimensionRevenue, error) {
	valid, _, err := s.fetch(filter)
	if err != nil {
		return nil, err
	}
	return domain.RevenueByDimension(valid, dim), nil
}

// Trend série temporelle du chiffre d'affaires par intervalle tronqué
func (s *SalesService) Trend(filter domain.Filter, bucket domain.Bucket, dense bool) ([]domain.TrendPoint, error) {
	valid, _, err := s.fetch(filter)
	if err != nil {
		return nil, err
	}
	return domain.Trend(valid, bucket, dense), nil
}
