package application

import (
	"log"

	"insights/internal/analytics/domain"
	txdomain "insights/internal/transactions/domain"
)

// InventoryInsights synthèse par catégorie du rapport produits
type InventoryInsights struct {
	TotalCategories         int     `json:"total_categories"`
	MostProfitableCategory  *string `json:"most_profitable_category"`
	LeastProfitableCategory *string `json:"least_profitable_category"`
}

// ProductQuery paramètres d'un rapport produits
type ProductQuery struct {
	Filter domain.Filter
	Metric domain.RankingMetric
	TopN   int
}

// ProductReport résultat de l'agrégateur produits
type ProductReport struct {
	TotalProducts     int                        `json:"total_products"`
	TopProducts       []domain.ProductRollupRow  `json:"top_performing_products"`
	CategoryRollup    []domain.CategoryRollupRow `json:"category_performance"`
	InventoryInsights InventoryInsights          `json:"inventory_insights"`
}

/// ProductService agrégateur produits: rollups par produit et par catégorie
// sur les lignes valides, avec prix unitaire moyen pondéré par les quantités
type ProductService struct {
	store TransactionReader
}

// NewProductService crée une nouvelle instance de ProductService
func NewProductService(store TransactionReader) *ProductService {
	return &ProductService{store: store}
}

func (s *ProductService) fetch(filter domain.Filter) ([]*txdomain.Transaction, int, error) {
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

// Report calcule le rapport produits complet pour un filtre
func (s *ProductService) Report(q ProductQuery) (*ProductReport, int, error) {
	valid, excluded, err := s.fetch(q.Filter)
	if err != nil {
		return nil, 0, err
	}

	topN := q.TopN
	if topN == 0 {
		topN = defaultTopN
	}
	metric := q.Metric
	if metric == "" {
		metric = domain.RankByRevenue
	}

	rollup := domain.ProductRollup(valid)
	categories := domain.CategoryRollup(valid)

	insights := InventoryInsights{TotalCategories: len(categories)}
	if len(categories) > 0 {
		most := categories[0].Category
		least := categories[len(categories)-1].Category
		insights.MostProfitableCategory = &most
		insights.LeastProfitableCategory = &least
	}

	report := &ProductReport{
		TotalProducts:     len(rollup),
		TopProducts:       domain.RankProducts(valid, metric, topN),
		CategoryRollup:    categories,
		InventoryInsights: insights,
	}
	return report, excluded, nil
}

// ProductRollup rollup par produit trié par revenu décroissant
func (s *ProductService) ProductRollup(filter domain.Filter) ([]domain.ProductRollupRow, error) {
	valid, _, err := s.fetch(filter)
	if err != nil {
		return nil, err
	}
	return domain.ProductRollup(valid), nil
}

// CategoryRollup rollup par catégorie trié par revenu décroissant
func (s *ProductService) CategoryRollup(filter domain.Filter) ([]domain.CategoryRollupRow, error) {
	valid, _, err := s.fetch(filter)
	if err != nil {
		return nil, err
	}
	return domain.CategoryRollup(valid), nil
}

// Ranking classement des produits selon la métrique choisie
func (s *ProductService) Ranking(filter domain.Filter, metric domain.RankingMetric, n int) ([]domain.ProductRollupRow, error) {
	valid, _, err := s.fetch(filter)
	if err != nil {
		return nil, err
	}
	return domain.RankProducts(valid, metric, n), nil
}
