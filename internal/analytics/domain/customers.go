package domain

import (
	"sort"
	"time"

	shareddomain "insights/internal/shared/domain"
	txdomain "insights/internal/transactions/domain"
)

// CustomerRank représente une entrée du classement des clients
type CustomerRank struct {
	CustomerID    txdomain.CustomerID `json:"customer_id"`
	TotalOrders   int                 `json:"total_orders"`
	TotalSpent    shareddomain.Money  `json:"total_spent"`
	LifetimeValue shareddomain.Money  `json:"customer_lifetime_value"`
	Active        bool                `json:"is_active"`
}

// RetentionSummary représente la partition actifs/inactifs des clients
type RetentionSummary struct {
	TotalCustomers    int     `json:"total_customers"`
	ActiveCustomers   int     `json:"active_customers"`
	InactiveCustomers int     `json:"inactive_customers"`
	ActiveRatio       float64 `json:"active_ratio"`
}

// AcquisitionChurn représente les acquisitions et départs entre deux fenêtres
type AcquisitionChurn struct {
	NewCustomers     int `json:"new_customers"`
	ChurnedCustomers int `json:"churned_customers"`
}

// TopCustomers classe les clients par customer_lifetime_value décroissante,
// égalités départagées par customer_id croissant. Le statut actif est dérivé
// en direct à l'instant de référence, jamais lu depuis le flag stocké.
func TopCustomers(metrics []*txdomain.CustomerMetric, n int, asOf time.Time, recency time.Duration) []CustomerRank {
	ranked := make([]CustomerRank, 0, len(metrics))
	for _, m := range metrics {
		ranked = append(ranked, CustomerRank{
			CustomerID:    m.CustomerID(),
			TotalOrders:   m.TotalOrders(),
			TotalSpent:    m.TotalSpent().Rounded(),
			LifetimeValue: m.LifetimeValue().Rounded(),
			Active:        m.IsActiveAt(asOf, recency),
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if c := ranked[i].LifetimeValue.Cmp(ranked[j].LifetimeValue); c != 0 {
			return c > 0
		}
		return ranked[i].CustomerID < ranked[j].CustomerID
	})

	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Retention partitionne les clients en actifs/inactifs selon la règle de
// dérivation (dernier achat dans la fenêtre de récence, borne incluse).
// Le ratio actif vaut zéro quand il n'y a aucun client.
func Retention(metrics []*txdomain.CustomerMetric, asOf time.Time, recency time.Duration) RetentionSummary {
	summary := RetentionSummary{TotalCustomers: len(metrics)}
	for _, m := range metrics {
		if m.IsActiveAt(asOf, recency) {
			summary.ActiveCustomers++
		}
	}
	summary.InactiveCustomers = summary.TotalCustomers - summary.ActiveCustomers
	if summary.TotalCustomers > 0 {
		summary.ActiveRatio = float64(summary.ActiveCustomers) / float64(summary.TotalCustomers)
	}
	return summary
}

// AcquisitionChurnCounts compte les clients acquis dans la fenêtre courante
// et les clients partis: dernier achat tombé dans la fenêtre précédente (un
// achat plus récent aurait déplacé last_purchase_date dans la fenêtre
// courante). Les deux fenêtres sont fournies explicitement par l'appelant;
// le moteur n'infère jamais de "période précédente".
func AcquisitionChurnCounts(metrics []*txdomain.CustomerMetric, previous, current shareddomain.DateRange) AcquisitionChurn {
	var result AcquisitionChurn
	for _, m := range metrics {
		if current.Contains(m.AcquisitionDate()) {
			result.NewCustomers++
		}
		if previous.Contains(m.LastPurchase()) {
			result.ChurnedCustomers++
		}
	}
	return result
}

// AvgLifetimeValue calcule la CLV moyenne sur les clients fournis
func AvgLifetimeValue(metrics []*txdomain.CustomerMetric) shareddomain.Money {
	if len(metrics) == 0 {
		return shareddomain.Money{}
	}
	var sum shareddomain.Money
	for _, m := range metrics {
		sum = sum.Add(m.LifetimeValue())
	}
	return sum.DivInt(len(metrics)).Rounded()
}
