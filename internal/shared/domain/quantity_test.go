package domain

import "testing"

func TestNewQuantityRejectsNegative(t *testing.T) {
	if _, err := NewQuantity(-1); err == nil {
		t.Error("Expected error for negative quantity")
	}
	if q, err := NewQuantity(0); err != nil || !q.IsZero() {
		t.Error("Zero is a valid quantity")
	}
}

func TestQuantityAdd(t *testing.T) {
	sum := MustNewQuantity(3).Add(MustNewQuantity(4))
	if sum.Value() != 7 {
		t.Errorf("Expected 7, got %d", sum.Value())
	}
}
