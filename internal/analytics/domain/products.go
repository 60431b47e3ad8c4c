package domain

import (
	"sort"

	shareddomain "insights/internal/shared/domain"
	txdomain "insights/internal/transactions/domain"
)

// RankingMetric représente la métrique de classement des produits
type RankingMetric string

const (
	RankByRevenue RankingMetric = "revenue"
	RankByUnits   RankingMetric = "units"
)

// ParseRankingMetric valide une métrique de classement
func ParseRankingMetric(s string) (RankingMetric, error) {
	switch RankingMetric(s) {
	case RankByRevenue, RankByUnits:
		return RankingMetric(s), nil
	}
	return "", shareddomain.NewValidationError("metric", "must be revenue or units")
}

// ProductRollupRow représente le rollup d'un produit
type ProductRollupRow struct {
	ProductID    txdomain.ProductID `json:"product_id"`
	ProductName  string             `json:"product_name"`
	Category     string             `json:"category"`
	Revenue      shareddomain.Money `json:"total_revenue"`
	UnitsSold    int                `json:"units_sold"`
	AvgUnitPrice shareddomain.Money `json:"avg_unit_price"`
	Count        int                `json:"transaction_count"`
}

// CategoryRollupRow représente le rollup d'une catégorie
type CategoryRollupRow struct {
	Category     string             `json:"category"`
	Revenue      shareddomain.Money `json:"total_revenue"`
	UnitsSold    int                `json:"units_sold"`
	AvgUnitPrice shareddomain.Money `json:"avg_unit_price"`
	Count        int                `json:"transaction_count"`
}

type rollupAcc struct {
	name    string
	revenue shareddomain.Money
	units   int
	count   int
}

// ProductRollup agrège chiffre d'affaires, unités vendues, prix unitaire moyen
// pondéré par les quantités et nombre de transactions, par produit. Tri par
// revenu décroissant, égalités par product_id croissant.
func ProductRollup(txs []*txdomain.Transaction) []ProductRollupRow {
	byProduct := make(map[txdomain.ProductID]*rollupAcc)
	category := make(map[txdomain.ProductID]string)
	for _, t := range txs {
		a, ok := byProduct[t.ProductID()]
		if !ok {
			a = &rollupAcc{name: t.ProductName()}
			byProduct[t.ProductID()] = a
			category[t.ProductID()] = t.Category()
		}
		a.revenue = a.revenue.Add(t.TotalAmount())
		a.units += t.Quantity().Value()
		a.count++
	}

	out := make([]ProductRollupRow, 0, len(byProduct))
	for id, a := range byProduct {
		out = append(out, ProductRollupRow{
			ProductID:    id,
			ProductName:  a.name,
			Category:     category[id],
			Revenue:      a.revenue.Rounded(),
			UnitsSold:    a.units,
			AvgUnitPrice: a.revenue.DivInt(a.units).Rounded(),
			Count:        a.count,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Revenue.Cmp(out[j].Revenue); c != 0 {
			return c > 0
		}
		return out[i].ProductID < out[j].ProductID
	})
	return out
}

// CategoryRollup agrège les mêmes métriques par catégorie. Tri par revenu
// décroissant, égalités par catégorie croissante.
func CategoryRollup(txs []*txdomain.Transaction) []CategoryRollupRow {
	byCategory := make(map[string]*rollupAcc)
	for _, t := range txs {
		a, ok := byCategory[t.Category()]
		if !ok {
			a = &rollupAcc{}
			byCategory[t.Category()] = a
		}
		a.revenue = a.revenue.Add(t.TotalAmount())
		a.units += t.Quantity().Value()
		a.count++
	}

	out := make([]CategoryRollupRow, 0, len(byCategory))
	for cat, a := range byCategory {
		out = append(out, CategoryRollupRow{
			Category:     cat,
			Revenue:      a.revenue.Rounded(),
			UnitsSold:    a.units,
			AvgUnitPrice: a.revenue.DivInt(a.units).Rounded(),
			Count:        a.count,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Revenue.Cmp(out[j].Revenue); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// RankProducts classe les produits selon la métrique choisie (revenu ou
// unités), égalités départagées par product_id croissant. Au plus n entrées.
func RankProducts(txs []*txdomain.Transaction, metric RankingMetric, n int) []ProductRollupRow {
	rollup := ProductRollup(txs)
	if metric == RankByUnits {
		sort.Slice(rollup, func(i, j int) bool {
			if rollup[i].UnitsSold != rollup[j].UnitsSold {
				return rollup[i].UnitsSold > rollup[j].UnitsSold
			}
			return rollup[i].ProductID < rollup[j].ProductID
		})
	}
	if n >= 0 && len(rollup) > n {
		rollup = rollup[:n]
	}
	return rollup
}
