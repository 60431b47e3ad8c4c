package database

import "database/sql"

// schemaStatements tables et index du moteur analytique. Les deux tables sont
// alimentées par des processus externes (ingestion et batch de métriques);
// l'API ne fait que les lire.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS sales_transactions (
		transaction_id   VARCHAR(64) PRIMARY KEY,
		customer_id      VARCHAR(64) NOT NULL,
		product_id       VARCHAR(64) NOT NULL,
		product_name     VARCHAR(255) NOT NULL,
		category         VARCHAR(128) NOT NULL,
		quantity         INTEGER NOT NULL CHECK (quantity > 0),
		unit_price       NUMERIC(12,2) NOT NULL CHECK (unit_price >= 0),
		total_amount     NUMERIC(12,2) NOT NULL,
		transaction_date TIMESTAMPTZ NOT NULL,
		region           VARCHAR(64) NOT NULL,
		channel          VARCHAR(32) NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_transactions_date ON sales_transactions(transaction_date)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_transactions_region ON sales_transactions(region)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_transactions_channel ON sales_transactions(channel)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_transactions_category ON sales_transactions(category)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_transactions_customer ON sales_transactions(customer_id)`,
	`CREATE TABLE IF NOT EXISTS customer_metrics (
		customer_id             VARCHAR(64) PRIMARY KEY,
		total_orders            INTEGER NOT NULL DEFAULT 0,
		total_spent             NUMERIC(12,2) NOT NULL DEFAULT 0,
		avg_order_value         NUMERIC(12,2) NOT NULL DEFAULT 0,
		last_purchase_date      TIMESTAMPTZ NOT NULL,
		customer_lifetime_value NUMERIC(12,2) NOT NULL DEFAULT 0,
		is_active               BOOLEAN NOT NULL DEFAULT FALSE,
		acquisition_date        TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_customer_metrics_last_purchase ON customer_metrics(last_purchase_date)`,
}

// EnsureSchema crée les tables et index si nécessaire
func EnsureSchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
