package domain

import (
	"errors"
	"fmt"
	"time"

	"insights/internal/shared/domain"
)

// TransactionID représente l'identifiant unique d'une transaction
type TransactionID string

// CustomerID représente l'identifiant unique d'un client
type CustomerID string

// ProductID représente l'identifiant unique d'un produit
type ProductID string

// Channel représente le canal de vente
type Channel string

const (
	ChannelOnline Channel = "online"
	ChannelStore  Channel = "store"
	ChannelMobile Channel = "mobile"
)

// ParseChannel valide et convertit un canal de vente
func ParseChannel(s string) (Channel, error) {
	switch Channel(s) {
	case ChannelOnline, ChannelStore, ChannelMobile:
		return Channel(s), nil
	}
	return "", fmt.Errorf("unknown channel %q", s)
}

// Transaction représente une ligne d'achat, immuable une fois stockée
// Le moteur ne fait que la lire; l'ingestion est un collaborateur externe.
type Transaction struct {
	id          TransactionID
	customerID  CustomerID
	productID   ProductID
	productName string
	category    string
	quantity    domain.Quantity
	unitPrice   domain.Money
	totalAmount domain.Money
	date        time.Time
	region      string
	channel     Channel
}

// NewTransaction crée une nouvelle instance de Transaction avec validation
// L'invariant total_amount n'est PAS vérifié ici: une ligne corrompue doit
// traverser le constructeur pour être signalée à l'agrégation, jamais corrigée
// silencieusement.
func NewTransaction(
	id TransactionID,
	customerID CustomerID,
	productID ProductID,
	productName string,
	category string,
	quantity domain.Quantity,
	unitPrice domain.Money,
	totalAmount domain.Money,
	date time.Time,
	region string,
	channel Channel,
) (*Transaction, error) {
	if id == "" {
		return nil, errors.New("transaction ID cannot be empty")
	}
	if customerID == "" {
		return nil, errors.New("customer ID cannot be empty")
	}
	if productID == "" {
		return nil, errors.New("product ID cannot be empty")
	}
	if quantity.Value() <= 0 {
		return nil, errors.New("quantity must be positive")
	}
	if _, err := ParseChannel(string(channel)); err != nil {
		return nil, err
	}

	return &Transaction{
		id:          id,
		customerID:  customerID,
		productID:   productID,
		productName: productName,
		category:    category,
		quantity:    quantity,
		unitPrice:   unitPrice,
		totalAmount: totalAmount,
		date:        date.UTC(),
		region:      region,
		channel:     channel,
	}, nil
}

// ID retourne l'identifiant de la transaction
func (t *Transaction) ID() TransactionID {
	return t.id
}

// CustomerID retourne l'identifiant du client
func (t *Transaction) CustomerID() CustomerID {
	return t.customerID
}

// ProductID retourne l'identifiant du produit
func (t *Transaction) ProductID() ProductID {
	return t.productID
}

// ProductName retourne le nom du produit
func (t *Transaction) ProductName() string {
	return t.productName
}

// Category retourne la catégorie du produit
func (t *Transaction) Category() string {
	return t.category
}

// Quantity retourne la quantité achetée
func (t *Transaction) Quantity() domain.Quantity {
	return t.quantity
}

// UnitPrice retourne le prix unitaire
func (t *Transaction) UnitPrice() domain.Money {
	return t.unitPrice
}

// TotalAmount retourne le montant total de la ligne
func (t *Transaction) TotalAmount() domain.Money {
	return t.totalAmount
}

// Date retourne la date de la transaction (UTC)
func (t *Transaction) Date() time.Time {
	return t.date
}

// Region retourne la région de la vente
func (t *Transaction) Region() string {
	return t.region
}

// Channel retourne le canal de vente
func (t *Transaction) Channel() Channel {
	return t.channel
}

// IntegrityOK vérifie l'invariant total_amount == round(quantity * unit_price, 2)
// Une violation indique une corruption amont: la ligne est exclue des sommes
// et comptée, jamais "corrigée".
func (t *Transaction) IntegrityOK() bool {
	expected := t.unitPrice.MulInt(t.quantity.Value()).Rounded()
	return t.totalAmount.Equal(expected)
}
