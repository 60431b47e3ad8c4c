package domain

import (
	"testing"
	"time"
)

func TestNewDateRange(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	dr, err := NewDateRange(start, end)
	if err != nil {
		t.Fatalf("Expected valid range, got %v", err)
	}
	if !dr.Start().Equal(start) || !dr.End().Equal(end) {
		t.Error("Bounds not carried through")
	}

	if _, err := NewDateRange(end, start); err == nil {
		t.Error("Expected error when start is after end")
	}
}

func TestDateRangeContainsInclusive(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	dr, _ := NewDateRange(start, end)

	// Les deux bornes sont incluses
	if !dr.Contains(start) {
		t.Error("Start bound must be included")
	}
	if !dr.Contains(end) {
		t.Error("End bound must be included")
	}
	if dr.Contains(start.Add(-time.Second)) {
		t.Error("Instant before start must be excluded")
	}
	if dr.Contains(end.Add(time.Second)) {
		t.Error("Instant after end must be excluded")
	}
}

func TestDateRangeSinglePoint(t *testing.T) {
	point := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	dr, err := NewDateRange(point, point)
	if err != nil {
		t.Fatalf("Expected valid single-point range, got %v", err)
	}
	if !dr.Contains(point) {
		t.Error("Single-point range must contain its bound")
	}
}
