package database

import (
	"database/sql"
	"fmt"
	"math/rand"
	"time"

	sharedinfra "insights/internal/shared/infrastructure"
)

// fixtureTransaction ligne du jeu de données de démonstration
type fixtureTransaction struct {
	ID          string
	CustomerID  string
	ProductID   string
	ProductName string
	Category    string
	Quantity    int
	UnitPrice   string
	TotalAmount string
	Date        string
	Region      string
	Channel     string
}

// fixtureTransactions jeu de démonstration: 10 transactions, 5 clients,
// 8 produits, montants cohérents avec total_amount = quantité × prix unitaire
var fixtureTransactions = []fixtureTransaction{
	{"TXN001", "CUST001", "PROD001", "Wireless Earbuds", "Electronics", 2, "59.99", "119.98", "2024-01-15", "north-america", "online"},
	{"TXN002", "CUST002", "PROD002", "Smart Watch", "Electronics", 1, "299.99", "299.99", "2024-01-15", "europe", "store"},
	{"TXN003", "CUST003", "PROD003", "Coffee Maker", "Home", 1, "129.99", "129.99", "2024-01-16", "north-america", "online"},
	{"TXN004", "CUST001", "PROD004", "Running Shoes", "Sports", 1, "89.99", "89.99", "2024-01-16", "asia-pacific", "mobile"},
	{"TXN005", "CUST004", "PROD002", "Smart Watch", "Electronics", 1, "299.99", "299.99", "2024-01-17", "north-america", "online"},
	{"TXN006", "CUST002", "PROD005", "Yoga Mat", "Sports", 3, "24.99", "74.97", "2024-01-17", "europe", "online"},
	{"TXN007", "CUST005", "PROD006", "Desk Lamp", "Home", 2, "39.99", "79.98", "2024-01-18", "north-america", "store"},
	{"TXN008", "CUST003", "PROD001", "Wireless Earbuds", "Electronics", 1, "59.99", "59.99", "2024-01-18", "europe", "mobile"},
	{"TXN009", "CUST004", "PROD007", "Water Bottle", "Sports", 4, "12.49", "49.96", "2024-01-19", "asia-pacific", "online"},
	{"TXN010", "CUST005", "PROD008", "Air Fryer", "Home", 1, "155.05", "155.05", "2024-01-19", "asia-pacific", "store"},
}

// fixtureCustomer résumé client pré-agrégé, cohérent avec les transactions
type fixtureCustomer struct {
	CustomerID      string
	TotalOrders     int
	TotalSpent      string
	AvgOrderValue   string
	LastPurchase    string
	LifetimeValue   string
	IsActive        bool
	AcquisitionDate string
}

var fixtureCustomers = []fixtureCustomer{
	{"CUST001", 2, "209.97", "104.98", "2024-01-16", "1049.85", true, "2023-03-10"},
	{"CUST002", 2, "374.96", "187.48", "2024-01-17", "1874.80", true, "2022-11-05"},
	{"CUST003", 2, "189.98", "94.99", "2024-01-18", "949.90", true, "2023-07-22"},
	{"CUST004", 2, "349.95", "174.98", "2024-01-19", "1749.75", true, "2023-01-30"},
	{"CUST005", 2, "235.03", "117.52", "2024-01-19", "1175.15", true, "2023-09-14"},
}

// SeedDatabase peuple les deux tables: le jeu de démonstration puis un
// volume de transactions générées pour les tests de charge
func SeedDatabase(db *sql.DB, generated int) error {
	fmt.Println("🌱 Insertion du jeu de démonstration...")
	if err := seedFixture(db); err != nil {
		return fmt.Errorf("erreur insertion fixture: %w", err)
	}

	if generated > 0 {
		fmt.Printf("🌱 Génération de %d transactions supplémentaires...\n", generated)
		if err := seedGenerated(db, generated); err != nil {
			return fmt.Errorf("erreur génération transactions: %w", err)
		}
	}

	fmt.Println("🔍 Analyse des tables...")
	if _, err := db.Exec("ANALYZE"); err != nil {
		fmt.Println("⚠️ Attention: échec de l'analyse:", err)
	}
	return nil
}

// seedFixture insère les transactions et métriques de démonstration
func seedFixture(db *sql.DB) error {
	for _, t := range fixtureTransactions {
		_, err := db.Exec(`
			INSERT INTO sales_transactions
				(transaction_id, customer_id, product_id, product_name, category,
				 quantity, unit_price, total_amount, transaction_date, region, channel)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (transaction_id) DO NOTHING
		`, t.ID, t.CustomerID, t.ProductID, t.ProductName, t.Category,
			t.Quantity, t.UnitPrice, t.TotalAmount, t.Date, t.Region, t.Channel)
		if err != nil {
			return err
		}
	}

	for _, c := range fixtureCustomers {
		_, err := db.Exec(`
			INSERT INTO customer_metrics
				(customer_id, total_orders, total_spent, avg_order_value,
				 last_purchase_date, customer_lifetime_value, is_active, acquisition_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (customer_id) DO UPDATE SET
				total_orders = EXCLUDED.total_orders,
				total_spent = EXCLUDED.total_spent,
				avg_order_value = EXCLUDED.avg_order_value,
				last_purchase_date = EXCLUDED.last_purchase_date,
				customer_lifetime_value = EXCLUDED.customer_lifetime_value,
				is_active = EXCLUDED.is_active,
				acquisition_date = EXCLUDED.acquisition_date
		`, c.CustomerID, c.TotalOrders, c.TotalSpent, c.AvgOrderValue,
			c.LastPurchase, c.LifetimeValue, c.IsActive, c.AcquisitionDate)
		if err != nil {
			return err
		}
	}

	fmt.Printf("   ✅ %d transactions et %d clients de démonstration\n",
		len(fixtureTransactions), len(fixtureCustomers))
	return nil
}

var (
	seedRegions    = []string{"north-america", "europe", "asia-pacific", "latin-america"}
	seedChannels   = []string{"online", "store", "mobile"}
	seedCategories = []string{"Electronics", "Home", "Sports", "Books", "Beauty"}
)

// seedGenerated insère des transactions aléatoires par batches parallèles.
// Les prix sont tirés en centimes entiers pour garder l'invariant
// total_amount = quantité × prix unitaire exact en base.
func seedGenerated(db *sql.DB, count int) error {
	const batchSize = 500

	wp := sharedinfra.NewWorkerPool(4)
	wp.Start()
	defer wp.Stop()

	numBatches := (count + batchSize - 1) / batchSize
	start := time.Now()

	for b := 0; b < numBatches; b++ {
		first := b*batchSize + 1
		last := (b + 1) * batchSize
		if last > count {
			last = count
		}
		batchFirst, batchLast := first, last

		if err := wp.Submit(func() error {
			return insertGeneratedBatch(db, batchFirst, batchLast)
		}); err != nil {
			return err
		}
	}

	wp.Wait()
	for {
		select {
		case err := <-wp.Errors():
			if err != nil {
				return err
			}
		default:
			fmt.Printf("   ✅ %d transactions générées en %v (%d batches)\n",
				count, time.Since(start), numBatches)
			return nil
		}
	}
}

// insertGeneratedBatch insère les lignes [first, last] dans une transaction SQL
func insertGeneratedBatch(db *sql.DB, first, last int) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO sales_transactions
			(transaction_id, customer_id, product_id, product_name, category,
			 quantity, unit_price, total_amount, transaction_date, region, channel)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (transaction_id) DO NOTHING
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	rng := rand.New(rand.NewSource(int64(first)))
	for i := first; i <= last; i++ {
		quantity := 1 + rng.Intn(5)
		priceCents := 199 + rng.Intn(49801) // 1.99 à 499.99
		totalCents := priceCents * quantity
		productNum := 100 + rng.Intn(400)
		date := time.Now().UTC().AddDate(0, 0, -rng.Intn(730))

		_, err := stmt.Exec(
			fmt.Sprintf("GEN%08d", i),
			fmt.Sprintf("CUST%04d", 100+rng.Intn(900)),
			fmt.Sprintf("PROD%04d", productNum),
			fmt.Sprintf("Product %d", productNum),
			seedCategories[rng.Intn(len(seedCategories))],
			quantity,
			fmt.Sprintf("%d.%02d", priceCents/100, priceCents%100),
			fmt.Sprintf("%d.%02d", totalCents/100, totalCents%100),
			date,
			seedRegions[rng.Intn(len(seedRegions))],
			seedChannels[rng.Intn(len(seedChannels))],
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}
