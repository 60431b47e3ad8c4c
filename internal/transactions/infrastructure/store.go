package infrastructure

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	analyticsdomain "insights/internal/analytics/domain"
	shareddomain "insights/internal/shared/domain"
	sharedinfra "insights/internal/shared/infrastructure"
	"insights/internal/transactions/domain"
)

// Store accès en lecture seule aux enregistrements de transactions et de
// métriques clients, exposés comme séquences filtrables. Le store ne calcule
// aucun agrégat: le prédicat (Specification) est poussé en SQL, l'agrégation
// reste dans le moteur. Aucun retry interne: une erreur d'accès est remontée
// telle quelle, enveloppée en StoreUnavailable.
type Store struct {
	sharedinfra.BaseRepository
}

// NewStore crée un nouveau store sur un handle de base explicite
func NewStore(db *sql.DB) *Store {
	return &Store{
		BaseRepository: sharedinfra.NewBaseRepository(db),
	}
}

// FindTransactions retourne les transactions satisfaisant le filtre,
// ordonnées par transaction_id pour un parcours déterministe
func (s *Store) FindTransactions(filter analyticsdomain.Filter) ([]*domain.Transaction, error) {
	query := `
		SELECT transaction_id, customer_id, product_id, product_name, category,
		       quantity, unit_price, total_amount, transaction_date, region, channel
		FROM sales_transactions
	`
	where, args := filter.ToSQL()
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY transaction_id"

	rows, err := s.Query(query, args...)
	if err != nil {
		return nil, shareddomain.NewStoreUnavailableError(err)
	}
	defer rows.Close()

	var txs []*domain.Transaction
	for rows.Next() {
		var (
			id, customerID, productID string
			productName, category     string
			quantity                  int
			unitPrice, totalAmount    string
			date                      time.Time
			region, channel           string
		)
		if err := rows.Scan(
			&id, &customerID, &productID, &productName, &category,
			&quantity, &unitPrice, &totalAmount, &date, &region, &channel,
		); err != nil {
			return nil, shareddomain.NewStoreUnavailableError(err)
		}

		t, err := scanTransaction(id, customerID, productID, productName, category,
			quantity, unitPrice, totalAmount, date, region, channel)
		if err != nil {
			return nil, fmt.Errorf("corrupt transaction row %s: %w", id, err)
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, shareddomain.NewStoreUnavailableError(err)
	}

	return txs, nil
}

// FindCustomerMetrics retourne les résumés clients satisfaisant le filtre,
// ordonnés par customer_id
func (s *Store) FindCustomerMetrics(filter analyticsdomain.Filter) ([]*domain.CustomerMetric, error) {
	query := `
		SELECT customer_id, total_orders, total_spent, avg_order_value,
		       last_purchase_date, customer_lifetime_value, acquisition_date
		FROM customer_metrics
	`
	where, args := filter.ToCustomerSQL()
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY customer_id"

	rows, err := s.Query(query, args...)
	if err != nil {
		return nil, shareddomain.NewStoreUnavailableError(err)
	}
	defer rows.Close()

	var metrics []*domain.CustomerMetric
	for rows.Next() {
		m, err := scanCustomerMetric(rows)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	if err := rows.Err(); err != nil {
		return nil, shareddomain.NewStoreUnavailableError(err)
	}

	return metrics, nil
}

// FindCustomerMetric retourne le résumé d'un client précis; NotFound si
// aucun enregistrement n'existe pour cet identifiant (distinct d'un agrégat
// vide, qui est un résultat valide à zéro)
func (s *Store) FindCustomerMetric(id domain.CustomerID) (*domain.CustomerMetric, error) {
	query := `
		SELECT customer_id, total_orders, total_spent, avg_order_value,
		       last_purchase_date, customer_lifetime_value, acquisition_date
		FROM customer_metrics
		WHERE customer_id = $1
	`

	row := s.QueryRow(query, string(id))

	var (
		customerID                          string
		totalOrders                         int
		totalSpent, avgOrder, lifetimeValue string
		lastPurchase, acquisitionDate       time.Time
	)
	err := row.Scan(&customerID, &totalOrders, &totalSpent, &avgOrder,
		&lastPurchase, &lifetimeValue, &acquisitionDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shareddomain.NewNotFoundError("customer", string(id))
	}
	if err != nil {
		return nil, shareddomain.NewStoreUnavailableError(err)
	}

	return buildCustomerMetric(customerID, totalOrders, totalSpent, avgOrder,
		lastPurchase, lifetimeValue, acquisitionDate)
}

func scanTransaction(
	id, customerID, productID, productName, category string,
	quantity int,
	unitPrice, totalAmount string,
	date time.Time,
	region, channel string,
) (*domain.Transaction, error) {
	qty, err := shareddomain.NewQuantity(quantity)
	if err != nil {
		return nil, err
	}
	unit, err := shareddomain.NewMoneyFromString(unitPrice)
	if err != nil {
		return nil, err
	}
	total, err := shareddomain.NewMoneyFromString(totalAmount)
	if err != nil {
		return nil, err
	}
	ch, err := domain.ParseChannel(channel)
	if err != nil {
		return nil, err
	}

	return domain.NewTransaction(
		domain.TransactionID(id),
		domain.CustomerID(customerID),
		domain.ProductID(productID),
		productName,
		category,
		qty,
		unit,
		total,
		date,
		region,
		ch,
	)
}

func scanCustomerMetric(rows *sql.Rows) (*domain.CustomerMetric, error) {
	var (
		customerID                          string
		totalOrders                         int
		totalSpent, avgOrder, lifetimeValue string
		lastPurchase, acquisitionDate       time.Time
	)
	if err := rows.Scan(&customerID, &totalOrders, &totalSpent, &avgOrder,
		&lastPurchase, &lifetimeValue, &acquisitionDate); err != nil {
		return nil, shareddomain.NewStoreUnavailableError(err)
	}
	return buildCustomerMetric(customerID, totalOrders, totalSpent, avgOrder,
		lastPurchase, lifetimeValue, acquisitionDate)
}

func buildCustomerMetric(
	customerID string,
	totalOrders int,
	totalSpent, avgOrder string,
	lastPurchase time.Time,
	lifetimeValue string,
	acquisitionDate time.Time,
) (*domain.CustomerMetric, error) {
	spent, err := shareddomain.NewMoneyFromString(totalSpent)
	if err != nil {
		return nil, fmt.Errorf("corrupt customer row %s: %w", customerID, err)
	}
	avg, err := shareddomain.NewMoneyFromString(avgOrder)
	if err != nil {
		return nil, fmt.Errorf("corrupt customer row %s: %w", customerID, err)
	}
	clv, err := shareddomain.NewMoneyFromString(lifetimeValue)
	if err != nil {
		return nil, fmt.Errorf("corrupt customer row %s: %w", customerID, err)
	}

	return domain.NewCustomerMetric(
		domain.CustomerID(customerID),
		totalOrders,
		spent,
		avg,
		lastPurchase,
		clv,
		acquisitionDate,
	)
}
