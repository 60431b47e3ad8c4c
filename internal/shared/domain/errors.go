package domain

import (
	"errors"
	"fmt"
)

// Taxonomie des erreurs du moteur d'agrégation. Toutes les erreurs au-dessus
// de la frontière du store sont typées et distinguables; une indisponibilité
// du store n'est jamais masquée en résultat vide.

// ValidationError signale des paramètres de filtre malformés ou contradictoires
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError crée une erreur de validation pour un champ donné
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError signale une entité absente (distinct d'un agrégat vide)
type NotFoundError struct {
	Entity string
	ID     string
}

// NewNotFoundError crée une erreur d'entité introuvable
func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// StoreUnavailableError signale que le store de transactions est injoignable
type StoreUnavailableError struct {
	Err error
}

// NewStoreUnavailableError enveloppe une erreur d'accès au store
func NewStoreUnavailableError(err error) *StoreUnavailableError {
	return &StoreUnavailableError{Err: err}
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("transaction store unavailable: %v", e.Err)
}

// Unwrap expose l'erreur d'origine du driver
func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

// IsValidation vérifie si une erreur est une erreur de validation
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound vérifie si une erreur est une absence d'entité
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsStoreUnavailable vérifie si une erreur est une indisponibilité du store
func IsStoreUnavailable(err error) bool {
	var su *StoreUnavailableError
	return errors.As(err, &su)
}
