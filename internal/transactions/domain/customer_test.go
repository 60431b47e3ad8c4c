package domain

import (
	"testing"
	"time"

	shareddomain "insights/internal/shared/domain"
)

func newTestMetric(t *testing.T, orders int, spent, avg string, lastPurchase time.Time) *CustomerMetric {
	t.Helper()
	m, err := NewCustomerMetric(
		"CUST001", orders,
		shareddomain.MustMoney(spent),
		shareddomain.MustMoney(avg),
		lastPurchase,
		shareddomain.MustMoney("1049.85"),
		time.Date(2023, 3, 10, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("Expected valid metric, got %v", err)
	}
	return m
}

func TestNewCustomerMetricValidation(t *testing.T) {
	spent := shareddomain.MustMoney("100.00")
	now := time.Now().UTC()

	if _, err := NewCustomerMetric("", 1, spent, spent, now, spent, now); err == nil {
		t.Error("Expected error for empty customer id")
	}
	if _, err := NewCustomerMetric("CUST001", -1, spent, spent, now, spent, now); err == nil {
		t.Error("Expected error for negative order count")
	}
}

func TestIsActiveAtInclusiveBoundary(t *testing.T) {
	recency := 90 * 24 * time.Hour
	last := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	m := newTestMetric(t, 2, "209.97", "104.98", last)

	// Exactement 90 jours d'ancienneté avec une fenêtre de 90 jours = actif
	boundary := last.Add(recency)
	if !m.IsActiveAt(boundary, recency) {
		t.Error("Customer at the exact recency boundary must be active")
	}
	if m.IsActiveAt(boundary.Add(time.Nanosecond), recency) {
		t.Error("Customer just past the boundary must be inactive")
	}
	if !m.IsActiveAt(last, recency) {
		t.Error("Customer purchasing at the reference instant must be active")
	}
}

func TestAvgOrderValueOK(t *testing.T) {
	last := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)

	// 209.97 / 2 = 104.985 → arrondi bancaire 104.98
	consistent := newTestMetric(t, 2, "209.97", "104.98", last)
	if !consistent.AvgOrderValueOK() {
		t.Error("Consistent average must pass the invariant check")
	}

	inconsistent := newTestMetric(t, 2, "209.97", "150.00", last)
	if inconsistent.AvgOrderValueOK() {
		t.Error("Inconsistent average must fail the invariant check")
	}
}

func TestAvgOrderValueOKZeroOrders(t *testing.T) {
	last := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)

	zero := newTestMetric(t, 0, "0.00", "0.00", last)
	if !zero.AvgOrderValueOK() {
		t.Error("Zero orders with zero average must pass")
	}

	nonZeroAvg := newTestMetric(t, 0, "0.00", "10.00", last)
	if nonZeroAvg.AvgOrderValueOK() {
		t.Error("Zero orders with non-zero average must fail")
	}
}
