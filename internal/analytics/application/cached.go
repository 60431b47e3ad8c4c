package application

import (
	"time"

	shareddomain "insights/internal/shared/domain"
	sharedinfra "insights/internal/shared/infrastructure"
	txdomain "insights/internal/transactions/domain"
)

// cachedSales paire (rapport, lignes exclues) mise en cache ensemble pour
// que l'enveloppe reconstruite reste cohérente avec le calcul d'origine
type cachedSales struct {
	report   *SalesReport
	excluded int
}

type cachedCustomers struct {
	report   *CustomerReport
	excluded int
}

type cachedProducts struct {
	report   *ProductReport
	excluded int
}

// CachedSalesService décore SalesService avec un cache à clé de filtre
// normalisée. Seul le calcul est mis en cache, jamais l'enveloppe: chaque
// réponse garde son generated_at et son request_id propres.
type CachedSalesService struct {
	inner *SalesService
	cache sharedinfra.Cache
	ttl   time.Duration
}

// NewCachedSalesService crée une nouvelle instance de CachedSalesService
func NewCachedSalesService(inner *SalesService, cache sharedinfra.Cache, ttl time.Duration) *CachedSalesService {
	return &CachedSalesService{inner: inner, cache: cache, ttl: ttl}
}

func salesKey(q SalesQuery) string {
	return sharedinfra.NewCacheKeyBuilder().
		Add("sales").
		Add(q.Filter.Key()).
		Add(string(q.Bucket)).
		AddInt(q.TopN).
		Add(boolKey(q.Dense)).
		Build()
}

// Report retourne le rapport en cache s'il est frais, sinon délègue
func (s *CachedSalesService) Report(q SalesQuery) (*SalesReport, int, error) {
	key := salesKey(q)
	if v, ok := s.cache.Get(key); ok {
		hit := v.(cachedSales)
		return hit.report, hit.excluded, nil
	}
	report, excluded, err := s.inner.Report(q)
	if err != nil {
		return nil, 0, err
	}
	s.cache.Set(key, cachedSales{report: report, excluded: excluded}, s.ttl)
	return report, excluded, nil
}

// Invalidate purge toutes les entrées du cache
func (s *CachedSalesService) Invalidate() {
	s.cache.Clear()
}

// CachedCustomerService décore CustomerService avec le même cache partagé
type CachedCustomerService struct {
	inner *CustomerService
	cache sharedinfra.Cache
	ttl   time.Duration
}

// NewCachedCustomerService crée une nouvelle instance de CachedCustomerService
func NewCachedCustomerService(inner *CustomerService, cache sharedinfra.Cache, ttl time.Duration) *CachedCustomerService {
	return &CachedCustomerService{inner: inner, cache: cache, ttl: ttl}
}

func customerKey(q CustomerQuery) string {
	b := sharedinfra.NewCacheKeyBuilder().
		Add("customers").
		Add(q.Filter.Key()).
		AddInt(q.TopN)
	if q.Previous != nil && q.Current != nil {
		b.Add(rangeKey(*q.Previous)).Add(rangeKey(*q.Current))
	}
	return b.Build()
}

// Report retourne le rapport clients en cache s'il est frais, sinon délègue
func (s *CachedCustomerService) Report(q CustomerQuery) (*CustomerReport, int, error) {
	key := customerKey(q)
	if v, ok := s.cache.Get(key); ok {
		hit := v.(cachedCustomers)
		return hit.report, hit.excluded, nil
	}
	report, excluded, err := s.inner.Report(q)
	if err != nil {
		return nil, 0, err
	}
	s.cache.Set(key, cachedCustomers{report: report, excluded: excluded}, s.ttl)
	return report, excluded, nil
}

// LifetimeValue délègue sans cache: lecture d'une seule ligne
func (s *CachedCustomerService) LifetimeValue(id txdomain.CustomerID) (shareddomain.Money, error) {
	return s.inner.LifetimeValue(id)
}

// Invalidate purge toutes les entrées du cache
func (s *CachedCustomerService) Invalidate() {
	s.cache.Clear()
}

// CachedProductService décore ProductService avec le même cache partagé
type CachedProductService struct {
	inner *ProductService
	cache sharedinfra.Cache
	ttl   time.Duration
}

// NewCachedProductService crée une nouvelle instance de CachedProductService
func NewCachedProductService(inner *ProductService, cache sharedinfra.Cache, ttl time.Duration) *CachedProductService {
	return &CachedProductService{inner: inner, cache: cache, ttl: ttl}
}

func productKey(q ProductQuery) string {
	return sharedinfra.NewCacheKeyBuilder().
		Add("products").
		Add(q.Filter.Key()).
		Add(string(q.Metric)).
		AddInt(q.TopN).
		Build()
}

// Report retourne le rapport produits en cache s'il est frais, sinon délègue
func (s *CachedProductService) Report(q ProductQuery) (*ProductReport, int, error) {
	key := productKey(q)
	if v, ok := s.cache.Get(key); ok {
		hit := v.(cachedProducts)
		return hit.report, hit.excluded, nil
	}
	report, excluded, err := s.inner.Report(q)
	if err != nil {
		return nil, 0, err
	}
	s.cache.Set(key, cachedProducts{report: report, excluded: excluded}, s.ttl)
	return report, excluded, nil
}

// Invalidate purge toutes les entrées du cache
func (s *CachedProductService) Invalidate() {
	s.cache.Clear()
}

func boolKey(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func rangeKey(r shareddomain.DateRange) string {
	return r.Start().Format("2006-01-02") + ".." + r.End().Format("2006-01-02")
}
