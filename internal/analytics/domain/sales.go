package domain

import (
	"sort"
	"time"

	shareddomain "insights/internal/shared/domain"
	txdomain "insights/internal/transactions/domain"
)

// Dimension représente un axe de ventilation du chiffre d'affaires
type Dimension string

const (
	DimensionRegion  Dimension = "region"
	DimensionChannel Dimension = "channel"
)

// ParseDimension valide une dimension de ventilation
func ParseDimension(s string) (Dimension, error) {
	switch Dimension(s) {
	case DimensionRegion, DimensionChannel:
		return Dimension(s), nil
	}
	return "", shareddomain.NewValidationError("dimension", "must be region or channel")
}

// Bucket représente l'intervalle de troncature d'une série temporelle
type Bucket string

const (
	BucketDay   Bucket = "day"
	BucketWeek  Bucket = "week"
	BucketMonth Bucket = "month"
)

// ParseBucket valide un intervalle de troncature
func ParseBucket(s string) (Bucket, error) {
	switch Bucket(s) {
	case BucketDay, BucketWeek, BucketMonth:
		return Bucket(s), nil
	}
	return "", shareddomain.NewValidationError("bucket", "must be day, week or month")
}

// ProductRevenue représente une entrée du classement des produits
type ProductRevenue struct {
	ProductID   txdomain.ProductID `json:"product_id"`
	ProductName string             `json:"product_name"`
	Quantity    int                `json:"total_quantity"`
	Revenue     shareddomain.Money `json:"total_revenue"`
}

// DimensionRevenue représente le chiffre d'affaires d'une valeur de dimension
type DimensionRevenue struct {
	Value   string             `json:"value"`
	Revenue shareddomain.Money `json:"revenue"`
	Count   int                `json:"transaction_count"`
}

// TrendPoint représente un point de la série temporelle de revenus
type TrendPoint struct {
	Bucket  string             `json:"bucket"`
	Revenue shareddomain.Money `json:"revenue"`
	Count   int                `json:"transaction_count"`
}

// PartitionByIntegrity sépare les lignes valides des lignes violant
// l'invariant total_amount. Les lignes corrompues sont exclues de toutes les
// sommes et leur compte est remonté dans l'enveloppe; la requête n'échoue pas.
func PartitionByIntegrity(txs []*txdomain.Transaction) (valid, excluded []*txdomain.Transaction) {
	for _, t := range txs {
		if t.IntegrityOK() {
			valid = append(valid, t)
		} else {
			excluded = append(excluded, t)
		}
	}
	return valid, excluded
}

// TotalRevenue somme total_amount sur les lignes fournies; zéro sans lignes,
// jamais une erreur. Arrondi bancaire appliqué une seule fois, en sortie.
func TotalRevenue(txs []*txdomain.Transaction) shareddomain.Money {
	var sum shareddomain.Money
	for _, t := range txs {
		sum = sum.Add(t.TotalAmount())
	}
	return sum.Rounded()
}

// TransactionCount compte les lignes fournies
func TransactionCount(txs []*txdomain.Transaction) int {
	return len(txs)
}

// AvgTransactionValue calcule la valeur moyenne d'une transaction
func AvgTransactionValue(txs []*txdomain.Transaction) shareddomain.Money {
	if len(txs) == 0 {
		return shareddomain.Money{}
	}
	var sum shareddomain.Money
	for _, t := range txs {
		sum = sum.Add(t.TotalAmount())
	}
	return sum.DivInt(len(txs)).Rounded()
}

// TopProducts classe les produits par chiffre d'affaires décroissant,
// égalités départagées par product_id croissant pour le déterminisme.
// Retourne au plus n entrées.
func TopProducts(txs []*txdomain.Transaction, n int) []ProductRevenue {
	type acc struct {
		name     string
		quantity int
		revenue  shareddomain.Money
	}
	byProduct := make(map[txdomain.ProductID]*acc)
	for _, t := range txs {
		a, ok := byProduct[t.ProductID()]
		if !ok {
			a = &acc{name: t.ProductName()}
			byProduct[t.ProductID()] = a
		}
		a.quantity += t.Quantity().Value()
		a.revenue = a.revenue.Add(t.TotalAmount())
	}

	ranked := make([]ProductRevenue, 0, len(byProduct))
	for id, a := range byProduct {
		ranked = append(ranked, ProductRevenue{
			ProductID:   id,
			ProductName: a.name,
			Quantity:    a.quantity,
			Revenue:     a.revenue.Rounded(),
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if c := ranked[i].Revenue.Cmp(ranked[j].Revenue); c != 0 {
			return c > 0
		}
		return ranked[i].ProductID < ranked[j].ProductID
	})

	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// RevenueByDimension ventile le chiffre d'affaires par région ou canal,
// trié par revenu décroissant (égalités par valeur croissante)
func RevenueByDimension(txs []*txdomain.Transaction, dim Dimension) []DimensionRevenue {
	type acc struct {
		revenue shareddomain.Money
		count   int
	}
	byValue := make(map[string]*acc)
	for _, t := range txs {
		var key string
		switch dim {
		case DimensionChannel:
			key = string(t.Channel())
		default:
			key = t.Region()
		}
		a, ok := byValue[key]
		if !ok {
			a = &acc{}
			byValue[key] = a
		}
		a.revenue = a.revenue.Add(t.TotalAmount())
		a.count++
	}

	out := make([]DimensionRevenue, 0, len(byValue))
	for v, a := range byValue {
		out = append(out, DimensionRevenue{
			Value:   v,
			Revenue: a.revenue.Rounded(),
			Count:   a.count,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Revenue.Cmp(out[j].Revenue); c != 0 {
			return c > 0
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// Trend agrège le chiffre d'affaires par intervalle tronqué (jour, semaine ISO
// débutant le lundi, ou mois), en UTC. Les intervalles sans transaction sont
// omis, sauf si dense est vrai: la série est alors remplie de zéros entre le
// premier et le dernier intervalle observés, jamais au-delà.
func Trend(txs []*txdomain.Transaction, bucket Bucket, dense bool) []TrendPoint {
	type acc struct {
		revenue shareddomain.Money
		count   int
	}
	byBucket := make(map[time.Time]*acc)
	for _, t := range txs {
		b := truncateToBucket(t.Date(), bucket)
		a, ok := byBucket[b]
		if !ok {
			a = &acc{}
			byBucket[b] = a
		}
		a.revenue = a.revenue.Add(t.TotalAmount())
		a.count++
	}
	if len(byBucket) == 0 {
		return nil
	}

	keys := make([]time.Time, 0, len(byBucket))
	for k := range byBucket {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	if dense {
		filled := make([]time.Time, 0, len(keys))
		for b := keys[0]; !b.After(keys[len(keys)-1]); b = nextBucket(b, bucket) {
			filled = append(filled, b)
		}
		keys = filled
	}

	out := make([]TrendPoint, 0, len(keys))
	for _, k := range keys {
		point := TrendPoint{Bucket: k.Format(dateLayout)}
		if a, ok := byBucket[k]; ok {
			point.Revenue = a.revenue.Rounded()
			point.Count = a.count
		}
		out = append(out, point)
	}
	return out
}

// truncateToBucket tronque un instant au début de son intervalle (UTC)
func truncateToBucket(t time.Time, bucket Bucket) time.Time {
	t = t.UTC()
	switch bucket {
	case BucketWeek:
		// Lundi 00:00 UTC de la semaine ISO
		offset := (int(t.Weekday()) + 6) % 7
		t = t.AddDate(0, 0, -offset)
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	case BucketMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
}

// nextBucket retourne le début de l'intervalle suivant
func nextBucket(t time.Time, bucket Bucket) time.Time {
	switch bucket {
	case BucketWeek:
		return t.AddDate(0, 0, 7)
	case BucketMonth:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}