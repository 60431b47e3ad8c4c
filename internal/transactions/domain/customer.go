package domain

import (
	"errors"
	"time"

	"insights/internal/shared/domain"
)

// CustomerMetric représente le résumé pré-agrégé d'un client
// Snapshot recalculé périodiquement par un batch externe; le moteur le lit,
// ne l'écrit jamais. customer_lifetime_value est un champ opaque fourni par
// ce batch: sa formule n'est pas recalculée ici.
type CustomerMetric struct {
	customerID      CustomerID
	totalOrders     int
	totalSpent      domain.Money
	avgOrderValue   domain.Money
	lastPurchase    time.Time
	lifetimeValue   domain.Money
	acquisitionDate time.Time
}

// NewCustomerMetric crée une nouvelle instance de CustomerMetric avec validation
func NewCustomerMetric(
	customerID CustomerID,
	totalOrders int,
	totalSpent domain.Money,
	avgOrderValue domain.Money,
	lastPurchase time.Time,
	lifetimeValue domain.Money,
	acquisitionDate time.Time,
) (*CustomerMetric, error) {
	if customerID == "" {
		return nil, errors.New("customer ID cannot be empty")
	}
	if totalOrders < 0 {
		return nil, errors.New("total orders cannot be negative")
	}

	return &CustomerMetric{
		customerID:      customerID,
		totalOrders:     totalOrders,
		totalSpent:      totalSpent,
		avgOrderValue:   avgOrderValue,
		lastPurchase:    lastPurchase.UTC(),
		lifetimeValue:   lifetimeValue,
		acquisitionDate: acquisitionDate.UTC(),
	}, nil
}

// CustomerID retourne l'identifiant du client
func (c *CustomerMetric) CustomerID() CustomerID {
	return c.customerID
}

// TotalOrders retourne le nombre total de commandes
func (c *CustomerMetric) TotalOrders() int {
	return c.totalOrders
}

// TotalSpent retourne le montant total dépensé
func (c *CustomerMetric) TotalSpent() domain.Money {
	return c.totalSpent
}

// AvgOrderValue retourne la valeur moyenne d'une commande
func (c *CustomerMetric) AvgOrderValue() domain.Money {
	return c.avgOrderValue
}

// LastPurchase retourne la date du dernier achat (UTC)
func (c *CustomerMetric) LastPurchase() time.Time {
	return c.lastPurchase
}

// LifetimeValue retourne la customer lifetime value stockée (champ opaque)
func (c *CustomerMetric) LifetimeValue() domain.Money {
	return c.lifetimeValue
}

// AcquisitionDate retourne la date d'acquisition du client (UTC)
func (c *CustomerMetric) AcquisitionDate() time.Time {
	return c.acquisitionDate
}

// IsActiveAt dérive le statut actif: dernier achat dans la fenêtre de récence
// par rapport à l'instant de référence, borne incluse (exactement 90 jours
// d'ancienneté avec une fenêtre de 90 jours = actif). Le flag stocké en base
// est ignoré; la dérivation est toujours faite en direct pour le déterminisme.
func (c *CustomerMetric) IsActiveAt(asOf time.Time, recency time.Duration) bool {
	cutoff := asOf.UTC().Add(-recency)
	return !c.lastPurchase.Before(cutoff)
}

// AvgOrderValueOK vérifie l'invariant avg_order_value == total_spent / total_orders
// (arrondi bancaire à 2 décimales quand total_orders > 0, zéro sinon)
func (c *CustomerMetric) AvgOrderValueOK() bool {
	if c.totalOrders == 0 {
		return c.avgOrderValue.IsZero()
	}
	expected := c.totalSpent.DivInt(c.totalOrders).Rounded()
	return c.avgOrderValue.Equal(expected)
}
