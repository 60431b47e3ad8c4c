package application

import (
	"errors"
	"testing"
	"time"

	"insights/internal/analytics/domain"
	shareddomain "insights/internal/shared/domain"
	sharedinfra "insights/internal/shared/infrastructure"
	txdomain "insights/internal/transactions/domain"
)

func TestCachedSalesServiceHit(t *testing.T) {
	store := &stubTransactionReader{txs: []*txdomain.Transaction{
		buildTx(t, "TXN001", "PROD001", "Earbuds", "Electronics", 2, "59.99", "119.98", "2024-01-15"),
	}}
	cache := sharedinfra.NewInMemoryCache()
	service := NewCachedSalesService(NewSalesService(store), cache, time.Minute)

	filter, _ := domain.NewFilter(domain.FilterParams{})
	q := SalesQuery{Filter: filter}

	first, excluded, err := service.Report(q)
	if err != nil {
		t.Fatal(err)
	}
	second, excluded2, err := service.Report(q)
	if err != nil {
		t.Fatal(err)
	}

	if store.calls != 1 {
		t.Errorf("Expected a single store read for identical queries, got %d", store.calls)
	}
	if !first.TotalRevenue.Equal(second.TotalRevenue) || excluded != excluded2 {
		t.Error("Cached report must match the computed one")
	}
}

func TestCachedSalesServiceKeyedByQuery(t *testing.T) {
	store := &stubTransactionReader{}
	cache := sharedinfra.NewInMemoryCache()
	service := NewCachedSalesService(NewSalesService(store), cache, time.Minute)

	europe, _ := domain.NewFilter(domain.FilterParams{Region: "europe"})
	asia, _ := domain.NewFilter(domain.FilterParams{Region: "asia-pacific"})

	service.Report(SalesQuery{Filter: europe})
	service.Report(SalesQuery{Filter: asia})
	if store.calls != 2 {
		t.Errorf("Distinct filters must not share a cache entry, got %d reads", store.calls)
	}

	// Même filtre, granularité différente: entrée distincte
	service.Report(SalesQuery{Filter: europe, Bucket: domain.BucketWeek})
	if store.calls != 3 {
		t.Errorf("Bucket must be part of the cache key, got %d reads", store.calls)
	}
}

func TestCachedSalesServiceErrorNotCached(t *testing.T) {
	store := &stubTransactionReader{err: shareddomain.NewStoreUnavailableError(errors.New("connection reset"))}
	cache := sharedinfra.NewInMemoryCache()
	service := NewCachedSalesService(NewSalesService(store), cache, time.Minute)

	filter, _ := domain.NewFilter(domain.FilterParams{})
	if _, _, err := service.Report(SalesQuery{Filter: filter}); err == nil {
		t.Fatal("Expected error from store")
	}

	// Le store redevient joignable: la requête suivante doit recalculer
	store.err = nil
	if _, _, err := service.Report(SalesQuery{Filter: filter}); err != nil {
		t.Errorf("Expected recovery after store error, got %v", err)
	}
	if store.calls != 2 {
		t.Errorf("Errors must not be cached, got %d reads", store.calls)
	}
}

func TestCachedSalesServiceInvalidate(t *testing.T) {
	store := &stubTransactionReader{}
	cache := sharedinfra.NewInMemoryCache()
	service := NewCachedSalesService(NewSalesService(store), cache, time.Minute)

	filter, _ := domain.NewFilter(domain.FilterParams{})
	service.Report(SalesQuery{Filter: filter})
	service.Invalidate()
	service.Report(SalesQuery{Filter: filter})

	if store.calls != 2 {
		t.Errorf("Expected recompute after invalidation, got %d reads", store.calls)
	}
}

func TestCachedCustomerServiceHit(t *testing.T) {
	store := &stubCustomerReader{metrics: []*txdomain.CustomerMetric{
		buildMetric(t, "CUST001", 2, "209.97", "104.98", "1049.85", "2024-01-16", "2023-03-10"),
	}}
	cache := sharedinfra.NewInMemoryCache()
	service := NewCachedCustomerService(NewCustomerService(store, 90*24*time.Hour), cache, time.Minute)

	filter, _ := domain.NewFilter(domain.FilterParams{})
	service.Report(CustomerQuery{Filter: filter})
	service.Report(CustomerQuery{Filter: filter})
	if store.calls != 1 {
		t.Errorf("Expected a single store read, got %d", store.calls)
	}

	// CLV unitaire: passe-plat volontaire, jamais en cache
	service.LifetimeValue("CUST001")
	service.LifetimeValue("CUST001")
	if store.calls != 3 {
		t.Errorf("Lifetime value lookups must bypass the cache, got %d reads", store.calls)
	}
}

func TestCachedProductServiceKeyedByMetric(t *testing.T) {
	store := &stubTransactionReader{}
	cache := sharedinfra.NewInMemoryCache()
	service := NewCachedProductService(NewProductService(store), cache, time.Minute)

	filter, _ := domain.NewFilter(domain.FilterParams{})
	service.Report(ProductQuery{Filter: filter, Metric: domain.RankByRevenue})
	service.Report(ProductQuery{Filter: filter, Metric: domain.RankByUnits})
	service.Report(ProductQuery{Filter: filter, Metric: domain.RankByRevenue})

	if store.calls != 2 {
		t.Errorf("Ranking metric must be part of the cache key, got %d reads", store.calls)
	}
}
