package application

import (
	"insights/internal/analytics/domain"
	txdomain "insights/internal/transactions/domain"
)

// TransactionReader accès en lecture aux transactions, potentiellement
// bloquant (aller-retour base de données). Implémenté par le store SQL;
// les tests fournissent un lecteur en mémoire.
type TransactionReader interface {
	FindTransactions(filter domain.Filter) ([]*txdomain.Transaction, error)
}

// CustomerReader accès en lecture aux résumés clients
type CustomerReader interface {
	FindCustomerMetrics(filter domain.Filter) ([]*txdomain.CustomerMetric, error)
	FindCustomerMetric(id txdomain.CustomerID) (*txdomain.CustomerMetric, error)
}
