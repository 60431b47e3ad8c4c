package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"insights/config"
	"insights/database"
)

func main() {
	// Charge .env et l'environnement
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("❌ Erreur configuration:", err)
	}

	db, err := database.Open(cfg.ConnString())
	if err != nil {
		log.Fatal("❌ Erreur connexion DB:", err)
	}
	defer db.Close()

	fmt.Println("✅ Connexion PostgreSQL établie")

	if err := database.EnsureSchema(db); err != nil {
		log.Fatal("❌ Erreur création du schéma:", err)
	}

	generated, _ := strconv.Atoi(getEnv("SEED_GENERATED", "10000"))

	fmt.Println("🌱 Démarrage du seed de la base de données...")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	if err := database.SeedDatabase(db, generated); err != nil {
		log.Fatal("❌ Erreur lors du seed:", err)
	}

	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println("✅ Seed terminé avec succès!")
	fmt.Println()
	fmt.Println("Vous pouvez maintenant démarrer l'application avec:")
	fmt.Println("  go run main.go")
	fmt.Println()
	fmt.Println("Et tester les endpoints:")
	fmt.Println("  http://localhost:8080/api/v1/analytics/sales?start_date=2024-01-01&end_date=2024-12-31")
	fmt.Println("  http://localhost:8080/api/v1/analytics/customers")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
