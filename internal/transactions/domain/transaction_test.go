package domain

import (
	"testing"
	"time"

	shareddomain "insights/internal/shared/domain"
)

func newTestTransaction(t *testing.T, qty int, unit, total string) *Transaction {
	t.Helper()
	tx, err := NewTransaction(
		"TXN001", "CUST001", "PROD001", "Wireless Earbuds", "Electronics",
		shareddomain.MustNewQuantity(qty),
		shareddomain.MustMoney(unit),
		shareddomain.MustMoney(total),
		time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		"north-america", ChannelOnline,
	)
	if err != nil {
		t.Fatalf("Expected valid transaction, got %v", err)
	}
	return tx
}

func TestNewTransactionValidation(t *testing.T) {
	price := shareddomain.MustMoney("59.99")
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		id       TransactionID
		customer CustomerID
		product  ProductID
		qty      int
		channel  Channel
	}{
		{"empty transaction id", "", "CUST001", "PROD001", 1, ChannelOnline},
		{"empty customer id", "TXN001", "", "PROD001", 1, ChannelOnline},
		{"empty product id", "TXN001", "CUST001", "", 1, ChannelOnline},
		{"zero quantity", "TXN001", "CUST001", "PROD001", 0, ChannelOnline},
		{"unknown channel", "TXN001", "CUST001", "PROD001", 1, "fax"},
	}
	for _, c := range cases {
		q, _ := shareddomain.NewQuantity(c.qty)
		_, err := NewTransaction(c.id, c.customer, c.product, "Item", "Electronics",
			q, price, price, date, "europe", c.channel)
		if err == nil {
			t.Errorf("%s: expected error", c.name)
		}
	}
}

func TestTransactionIntegrityOK(t *testing.T) {
	// 2 × 59.99 = 119.98
	tx := newTestTransaction(t, 2, "59.99", "119.98")
	if !tx.IntegrityOK() {
		t.Error("Consistent total must pass the integrity check")
	}
}

func TestTransactionIntegrityViolation(t *testing.T) {
	// Le total corrompu n'empêche pas la construction: il doit traverser le
	// constructeur pour être signalé par l'agrégation, jamais corrigé
	tx := newTestTransaction(t, 2, "59.99", "999.99")
	if tx.IntegrityOK() {
		t.Error("Corrupt total must fail the integrity check")
	}
	if tx.TotalAmount().StringFixed() != "999.99" {
		t.Error("Corrupt total must not be silently corrected")
	}
}

func TestTransactionDateNormalizedUTC(t *testing.T) {
	paris := time.FixedZone("CET", 3600)
	tx, err := NewTransaction(
		"TXN001", "CUST001", "PROD001", "Item", "Electronics",
		shareddomain.MustNewQuantity(1),
		shareddomain.MustMoney("10.00"),
		shareddomain.MustMoney("10.00"),
		time.Date(2024, 1, 15, 0, 30, 0, 0, paris),
		"europe", ChannelStore,
	)
	if err != nil {
		t.Fatal(err)
	}
	if tx.Date().Location() != time.UTC {
		t.Error("Transaction date must be normalized to UTC")
	}
	if tx.Date().Day() != 14 {
		t.Errorf("00:30 CET is 23:30 UTC the previous day, got day %d", tx.Date().Day())
	}
}

func TestParseChannel(t *testing.T) {
	for _, valid := range []string{"online", "store", "mobile"} {
		if _, err := ParseChannel(valid); err != nil {
			t.Errorf("Expected %q to be valid, got %v", valid, err)
		}
	}
	if _, err := ParseChannel("drone"); err == nil {
		t.Error("Expected error for unknown channel")
	}
}
