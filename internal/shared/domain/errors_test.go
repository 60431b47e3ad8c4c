package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorTaxonomy(t *testing.T) {
	validation := NewValidationError("start_date", "must be a YYYY-MM-DD date")
	notFound := NewNotFoundError("customer", "CUST999")
	unavailable := NewStoreUnavailableError(errors.New("connection refused"))

	if !IsValidation(validation) || IsValidation(notFound) || IsValidation(unavailable) {
		t.Error("IsValidation must match only validation errors")
	}
	if !IsNotFound(notFound) || IsNotFound(validation) {
		t.Error("IsNotFound must match only not-found errors")
	}
	if !IsStoreUnavailable(unavailable) || IsStoreUnavailable(validation) {
		t.Error("IsStoreUnavailable must match only store errors")
	}
}

func TestErrorTaxonomyThroughWrapping(t *testing.T) {
	// La taxonomie survit à l'enveloppement par fmt.Errorf
	wrapped := fmt.Errorf("handling request: %w", NewNotFoundError("customer", "CUST999"))
	if !IsNotFound(wrapped) {
		t.Error("IsNotFound must see through wrapped errors")
	}
}

func TestStoreUnavailableUnwrap(t *testing.T) {
	cause := errors.New("driver: bad connection")
	err := NewStoreUnavailableError(cause)
	if !errors.Is(err, cause) {
		t.Error("Expected Unwrap to expose the driver error")
	}
}

func TestErrorMessages(t *testing.T) {
	if got := NewValidationError("channel", "must be one of online, store, mobile").Error(); got != "invalid channel: must be one of online, store, mobile" {
		t.Errorf("Unexpected validation message %q", got)
	}
	if got := NewNotFoundError("customer", "CUST999").Error(); got != `customer "CUST999" not found` {
		t.Errorf("Unexpected not-found message %q", got)
	}
}
