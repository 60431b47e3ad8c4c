package domain

import (
	"testing"

	shareddomain "insights/internal/shared/domain"
	txdomain "insights/internal/transactions/domain"
)

func TestProductRollup(t *testing.T) {
	txs := salesFixture(t)

	rollup := ProductRollup(txs)
	if len(rollup) != 8 {
		t.Fatalf("Expected 8 products, got %d", len(rollup))
	}

	// PROD002 en tête: 2 transactions de 1 unité à 299.99
	first := rollup[0]
	if first.ProductID != "PROD002" {
		t.Fatalf("Expected PROD002 first, got %s", first.ProductID)
	}
	if !first.Revenue.Equal(shareddomain.MustMoney("599.98")) {
		t.Errorf("Expected revenue 599.98, got %s", first.Revenue.StringFixed())
	}
	if first.UnitsSold != 2 || first.Count != 2 {
		t.Errorf("Expected 2 units over 2 transactions, got %d over %d",
			first.UnitsSold, first.Count)
	}
	if !first.AvgUnitPrice.Equal(shareddomain.MustMoney("299.99")) {
		t.Errorf("Expected avg unit price 299.99, got %s", first.AvgUnitPrice.StringFixed())
	}
	if first.Category != "Electronics" {
		t.Errorf("Expected category Electronics, got %s", first.Category)
	}
}

func TestProductRollupWeightedAvgPrice(t *testing.T) {
	// Prix unitaire moyen pondéré par les quantités, pas par les transactions:
	// 2×10.00 + 1×40.00 = 60.00 sur 3 unités → 20.00 (et non (10+40)/2 = 25.00)
	txs := []*txdomain.Transaction{
		testTransaction(t, "TXN001", "CUST001", "PROD001", "Item", "Electronics", 2, "10.00", "20.00", "2024-01-15", "europe", "online"),
		testTransaction(t, "TXN002", "CUST001", "PROD001", "Item", "Electronics", 1, "40.00", "40.00", "2024-01-16", "europe", "online"),
	}

	rollup := ProductRollup(txs)
	if len(rollup) != 1 {
		t.Fatalf("Expected 1 product, got %d", len(rollup))
	}
	if !rollup[0].AvgUnitPrice.Equal(shareddomain.MustMoney("20.00")) {
		t.Errorf("Expected quantity-weighted avg 20.00, got %s",
			rollup[0].AvgUnitPrice.StringFixed())
	}
}

func TestCategoryRollup(t *testing.T) {
	txs := salesFixture(t)

	rollup := CategoryRollup(txs)
	if len(rollup) != 3 {
		t.Fatalf("Expected 3 categories, got %d", len(rollup))
	}

	expected := []struct {
		category string
		revenue  string
		units    int
		avgPrice string
	}{
		{"Electronics", "779.95", 5, "155.99"},
		{"Home", "365.02", 4, "91.26"},
		{"Sports", "214.92", 8, "26.86"},
	}
	for i, want := range expected {
		got := rollup[i]
		if got.Category != want.category {
			t.Errorf("Position %d: expected %s, got %s", i, want.category, got.Category)
		}
		if !got.Revenue.Equal(shareddomain.MustMoney(want.revenue)) {
			t.Errorf("%s: expected revenue %s, got %s",
				want.category, want.revenue, got.Revenue.StringFixed())
		}
		if got.UnitsSold != want.units {
			t.Errorf("%s: expected %d units, got %d", want.category, want.units, got.UnitsSold)
		}
		// 214.92/8 = 26.865: l'arrondi bancaire retient 26.86, pas 26.87
		if !got.AvgUnitPrice.Equal(shareddomain.MustMoney(want.avgPrice)) {
			t.Errorf("%s: expected avg unit price %s, got %s",
				want.category, want.avgPrice, got.AvgUnitPrice.StringFixed())
		}
	}
}

func TestRankProductsByRevenue(t *testing.T) {
	txs := salesFixture(t)

	ranked := RankProducts(txs, RankByRevenue, 2)
	if len(ranked) != 2 {
		t.Fatalf("Expected 2 products, got %d", len(ranked))
	}
	if ranked[0].ProductID != "PROD002" || ranked[1].ProductID != "PROD001" {
		t.Errorf("Expected PROD002 then PROD001, got %s then %s",
			ranked[0].ProductID, ranked[1].ProductID)
	}
}

func TestRankProductsByUnits(t *testing.T) {
	txs := salesFixture(t)

	ranked := RankProducts(txs, RankByUnits, 3)
	if len(ranked) != 3 {
		t.Fatalf("Expected 3 products, got %d", len(ranked))
	}

	// PROD007: 4 unités; puis égalité à 3 unités entre PROD001 et PROD005,
	// départagée par product_id croissant
	if ranked[0].ProductID != "PROD007" {
		t.Errorf("Expected PROD007 first by units, got %s", ranked[0].ProductID)
	}
	if ranked[1].ProductID != "PROD001" || ranked[2].ProductID != "PROD005" {
		t.Errorf("Units tie must break by product_id: got %s then %s",
			ranked[1].ProductID, ranked[2].ProductID)
	}
}

func TestParseRankingMetric(t *testing.T) {
	for _, valid := range []string{"revenue", "units"} {
		if _, err := ParseRankingMetric(valid); err != nil {
			t.Errorf("Expected %q to be valid, got %v", valid, err)
		}
	}
	if _, err := ParseRankingMetric("margin"); !shareddomain.IsValidation(err) {
		t.Errorf("Expected validation error for unknown metric, got %v", err)
	}
}
