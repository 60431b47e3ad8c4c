package application

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	analyticsdomain "insights/internal/analytics/domain"
	shareddomain "insights/internal/shared/domain"
	txdomain "insights/internal/transactions/domain"
)

type stubReader struct {
	txs []*txdomain.Transaction
	err error
}

func (s *stubReader) FindTransactions(filter analyticsdomain.Filter) ([]*txdomain.Transaction, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.txs, nil
}

func exportFixture(t testing.TB) []*txdomain.Transaction {
	t.Helper()
	rows := []struct {
		id, product, name, category string
		qty                         int
		unit, total, date           string
	}{
		{"TXN001", "PROD001", "Wireless Earbuds", "Electronics", 2, "59.99", "119.98", "2024-01-15"},
		{"TXN002", "PROD002", "Smart Watch", "Electronics", 1, "299.99", "299.99", "2024-01-15"},
		{"TXN003", "PROD003", "Coffee Maker", "Home", 1, "129.99", "129.99", "2024-01-16"},
	}
	txs := make([]*txdomain.Transaction, 0, len(rows))
	for _, r := range rows {
		d, _ := time.ParseInLocation("2006-01-02", r.date, time.UTC)
		tx, err := txdomain.NewTransaction(
			txdomain.TransactionID(r.id), "CUST001", txdomain.ProductID(r.product),
			r.name, r.category,
			shareddomain.MustNewQuantity(r.qty),
			shareddomain.MustMoney(r.unit),
			shareddomain.MustMoney(r.total),
			d, "europe", txdomain.ChannelOnline,
		)
		if err != nil {
			t.Fatalf("bad fixture row %s: %v", r.id, err)
		}
		txs = append(txs, tx)
	}
	return txs
}

func TestExportTransactionsToCSV(t *testing.T) {
	service := NewExportService(&stubReader{txs: exportFixture(t)})
	filter, _ := analyticsdomain.NewFilter(analyticsdomain.FilterParams{})

	data, err := service.ExportTransactionsToCSV(filter)
	if err != nil {
		t.Fatalf("Expected CSV output, got %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("Output is not valid CSV: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("Expected header + 3 rows, got %d records", len(records))
	}
	if records[0][0] != "transaction_id" {
		t.Errorf("Expected header row, got %v", records[0])
	}
	if records[1][0] != "TXN001" || records[1][7] != "119.98" {
		t.Errorf("Unexpected first data row: %v", records[1])
	}
}

func TestExportTransactionsToCSVEmpty(t *testing.T) {
	service := NewExportService(&stubReader{})
	filter, _ := analyticsdomain.NewFilter(analyticsdomain.FilterParams{})

	data, err := service.ExportTransactionsToCSV(filter)
	if err != nil {
		t.Fatal(err)
	}

	// Un résultat vide produit quand même la ligne d'en-têtes
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "transaction_id,") {
		t.Errorf("Expected header-only CSV, got %q", string(data))
	}
}

func TestExportTransactionsToCSVStoreError(t *testing.T) {
	cause := shareddomain.NewStoreUnavailableError(nil)
	service := NewExportService(&stubReader{err: cause})
	filter, _ := analyticsdomain.NewFilter(analyticsdomain.FilterParams{})

	if _, err := service.ExportTransactionsToCSV(filter); !shareddomain.IsStoreUnavailable(err) {
		t.Errorf("Expected store unavailable error, got %v", err)
	}
}

func TestExportTransactionsToParquet(t *testing.T) {
	service := NewExportService(&stubReader{txs: exportFixture(t)})
	filter, _ := analyticsdomain.NewFilter(analyticsdomain.FilterParams{})

	data, err := service.ExportTransactionsToParquet(filter)
	if err != nil {
		t.Fatalf("Expected Parquet output, got %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Expected non-empty Parquet output")
	}
	// Nombre magique du format Parquet, en tête et en queue de fichier
	if !bytes.HasPrefix(data, []byte("PAR1")) || !bytes.HasSuffix(data, []byte("PAR1")) {
		t.Error("Output does not carry the Parquet magic number")
	}
}
