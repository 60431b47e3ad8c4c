package main

import (
	"log"
	"net/http"
	_ "net/http/pprof"

	v1 "insights/api/v1"
	"insights/config"
	"insights/database"
	analyticsapp "insights/internal/analytics/application"
	exportapp "insights/internal/export/application"
	sharedinfra "insights/internal/shared/infrastructure"
	txinfra "insights/internal/transactions/infrastructure"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("❌ Erreur configuration:", err)
	}

	db, err := database.Open(cfg.ConnString())
	if err != nil {
		log.Fatal("❌ Erreur connexion DB:", err)
	}
	defer db.Close()

	log.Println("✅ Connexion PostgreSQL établie")

	store := txinfra.NewStore(db)
	cache := sharedinfra.NewShardedCache(16)

	sales := analyticsapp.NewCachedSalesService(
		analyticsapp.NewSalesService(store), cache, cfg.CacheTTL)
	customers := analyticsapp.NewCachedCustomerService(
		analyticsapp.NewCustomerService(store, cfg.RecencyWindow()), cache, cfg.CacheTTL)
	products := analyticsapp.NewCachedProductService(
		analyticsapp.NewProductService(store), cache, cfg.CacheTTL)
	exporter := exportapp.NewExportService(store)

	handlers := v1.NewHandlers(sales, customers, products, exporter, store, cfg.Environment)

	http.HandleFunc("/health", handlers.Health)
	http.HandleFunc("/api/v1/analytics/sales", handlers.GetSales)
	http.HandleFunc("/api/v1/analytics/customers", handlers.GetCustomers)
	http.HandleFunc("/api/v1/analytics/customers/clv", handlers.GetCustomerLifetimeValue)
	http.HandleFunc("/api/v1/analytics/products", handlers.GetProducts)
	http.HandleFunc("/api/v1/export/transactions.csv", handlers.ExportCSV)
	http.HandleFunc("/api/v1/export/transactions.parquet", handlers.ExportParquet)

	log.Printf("🚀 API analytique démarrée sur :%s (%s)", cfg.Port, cfg.Environment)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, nil))
}
