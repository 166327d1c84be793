package handlers

import (
	"strings"
	"testing"

	apperrors "github.com/spec-kit/makeup-booking/pkg/util"
)

func TestValidateStructReportsMissingFields(t *testing.T) {
	payload := struct {
		Account  string `json:"account" validate:"required"`
		Password string `json:"password" validate:"required"`
	}{Account: "student01"}

	err := validateStruct(payload)
	domainErr := apperrors.ToDomainError(err)
	if domainErr.Code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %s", domainErr.Code)
	}
	if !strings.Contains(domainErr.Message, "password") {
		t.Fatalf("expected the missing field named, got %q", domainErr.Message)
	}
	if _, ok := domainErr.Details["password"]; !ok {
		t.Fatalf("expected per-field details, got %v", domainErr.Details)
	}
}

func TestValidateStructAcceptsValidPayload(t *testing.T) {
	payload := struct {
		Account string `json:"account" validate:"required"`
	}{Account: "student01"}

	if err := validateStruct(payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateStructNonStructPayload(t *testing.T) {
	err := validateStruct(42)
	domainErr := apperrors.ToDomainError(err)
	if domainErr.Code != "VALIDATION_FAILED" || domainErr.Message != "invalid payload" {
		t.Fatalf("expected generic validation error, got %+v", domainErr)
	}
}
