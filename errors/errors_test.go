package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeServiceNotFound, "missing")
	if err.Code != ErrCodeServiceNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeServiceNotFound, err.Code)
	}
	if err.Message != "missing" {
		t.Errorf("expected message 'missing', got %q", err.Message)
	}
	if err.Error() != "SERVICE_NOT_FOUND: missing" {
		t.Errorf("unexpected Error(): %q", err.Error())
	}
}

func TestAppError_DuplicateRegistration_Success(t *testing.T) {
	err := DuplicateRegistration("service", "*app.Mailer", "di.GlobalModule")
	if err.Code != ErrCodeDuplicateRegistration {
		t.Errorf("expected DUPLICATE_REGISTRATION, got %s", err.Code)
	}
	if err.Details["key"] != "*app.Mailer" {
		t.Errorf("expected key=*app.Mailer, got %v", err.Details["key"])
	}
	if err.Details["module"] != "di.GlobalModule" {
		t.Errorf("expected module=di.GlobalModule, got %v", err.Details["module"])
	}
	if !strings.Contains(err.Message, "already registered") {
		t.Errorf("expected 'already registered' in message, got %q", err.Message)
	}
}

func TestAppError_DuplicateRegistration_NoModule(t *testing.T) {
	err := DuplicateRegistration("module", "app.Billing", "")
	if _, ok := err.Details["module"]; ok {
		t.Error("expected no 'module' key in details when module is empty")
	}
}

func TestAppError_ProducerFailed_Unwrap(t *testing.T) {
	cause := fmt.Errorf("dial tcp: refused")
	err := ProducerFailed("*app.DB", "di.GlobalModule", cause)
	if err.Code != ErrCodeProducerFailed {
		t.Errorf("expected PRODUCER_FAILED, got %s", err.Code)
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if !strings.Contains(err.Error(), "dial tcp") {
		t.Errorf("Error() should contain cause, got %q", err.Error())
	}
}

func TestAppError_WithDetails_Merge(t *testing.T) {
	err := InvalidProducer("func()", "no results").WithDetails(map[string]any{
		"extra": "info",
	})
	if err.Details["extra"] != "info" {
		t.Errorf("expected extra=info in details")
	}
	if err.Details["producer"] != "func()" {
		t.Errorf("expected original details preserved")
	}
}

func TestAppError_WithDetail_NilDetails(t *testing.T) {
	err := New(ErrCodeInvalidConfig, "bad")
	err.WithDetail("field", "logging.level")
	if err.Details["field"] != "logging.level" {
		t.Errorf("expected field detail, got %v", err.Details["field"])
	}
}

func TestHasCode(t *testing.T) {
	inner := InvalidArgs("app.MailerConfig", fmt.Errorf("unknown key 'hots'"))
	outer := ProducerFailed("*app.Mailer", "di.GlobalModule", inner)
	wrapped := fmt.Errorf("resolving: %w", outer)

	tests := []struct {
		name string
		err  error
		code ErrorCode
		want bool
	}{
		{"outer code", outer, ErrCodeProducerFailed, true},
		{"cause code", outer, ErrCodeInvalidArgs, true},
		{"through fmt wrap", wrapped, ErrCodeInvalidArgs, true},
		{"absent code", outer, ErrCodeDuplicateRegistration, false},
		{"plain error", fmt.Errorf("plain"), ErrCodeProducerFailed, false},
		{"nil error", nil, ErrCodeProducerFailed, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := HasCode(tc.err, tc.code); got != tc.want {
				t.Errorf("HasCode() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAsAppError(t *testing.T) {
	err := fmt.Errorf("wrap: %w", ServiceNotFound("*app.Cache", "app.Tenant"))
	appErr, ok := AsAppError(err)
	if !ok {
		t.Fatal("expected AsAppError to succeed")
	}
	if appErr.Code != ErrCodeServiceNotFound {
		t.Errorf("expected SERVICE_NOT_FOUND, got %s", appErr.Code)
	}
	if !IsAppError(err) {
		t.Error("expected IsAppError to be true")
	}
	if IsAppError(fmt.Errorf("plain")) {
		t.Error("expected IsAppError to be false for plain error")
	}
}

func TestDependencyCycle(t *testing.T) {
	err := DependencyCycle([]string{"*app.A", "*app.B", "*app.A"})
	if err.Code != ErrCodeDependencyCycle {
		t.Errorf("expected DEPENDENCY_CYCLE, got %s", err.Code)
	}
	if err.Error() != "DEPENDENCY_CYCLE: dependency cycle: *app.A -> *app.B -> *app.A" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
