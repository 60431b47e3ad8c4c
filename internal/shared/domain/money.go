package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money représente une valeur monétaire en point fixe avec garanties d'invariants
// Les montants circulent sans arrondi intermédiaire; l'arrondi bancaire (half
// to even, 2 décimales) n'est appliqué qu'une fois, via Rounded, au moment de
// l'agrégation finale.
type Money struct {
	amount decimal.Decimal
}

// NewMoney crée une nouvelle instance de Money avec validation
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errors.New("amount cannot be negative")
	}
	return Money{amount: amount}, nil
}

// NewMoneyFromString crée un Money depuis une représentation décimale ("299.99")
func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid money amount %q: %w", s, err)
	}
	return NewMoney(d)
}

// MustMoney crée un Money en paniquant si invalide (fixtures et seed)
func MustMoney(s string) Money {
	m, err := NewMoneyFromString(s)
	if err != nil {
		panic(fmt.Sprintf("invalid money: %v", err))
	}
	return m
}

// Amount retourne le montant décimal
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Add additionne deux Money
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// MulInt multiplie le montant par un entier (quantité)
func (m Money) MulInt(n int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(n)))}
}

// DivInt divise le montant par un entier, sans arrondi de présentation
func (m Money) DivInt(n int) Money {
	if n == 0 {
		return Money{}
	}
	return Money{amount: m.amount.Div(decimal.NewFromInt(int64(n)))}
}

// Rounded retourne le montant arrondi à 2 décimales (arrondi bancaire)
func (m Money) Rounded() Money {
	return Money{amount: m.amount.RoundBank(2)}
}

// Cmp compare deux montants (-1, 0, 1)
func (m Money) Cmp(other Money) int {
	return m.amount.Cmp(other.amount)
}

// Equal vérifie l'égalité de deux montants
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// IsZero vérifie si le montant est zéro
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// StringFixed retourne la représentation à 2 décimales
func (m Money) StringFixed() string {
	return m.amount.StringFixed(2)
}

// MarshalJSON sérialise en chaîne décimale à point fixe, jamais en flottant
// binaire, pour éviter toute dérive d'arrondi à la frontière de transport.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed() + `"`), nil
}
