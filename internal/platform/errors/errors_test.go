package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"testing"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := WithMetadata(CodeGiverInvalid, "giver not in roster", map[string]string{"Giver": "Aaron"})
	if !stderrors.Is(err, New(CodeGiverInvalid, "")) {
		t.Fatal("expected errors.Is to match by code")
	}
	if stderrors.Is(err, New(CodeNoCandidates, "")) {
		t.Fatal("expected different codes not to match")
	}
}

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(CodeStorageFailure, "load state", io.ErrUnexpectedEOF)
	if !stderrors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatal("expected wrapped cause to be reachable")
	}
	if got, want := err.Error(), "load state: unexpected EOF"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestGetCodeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("resolve: %w", New(CodeNoCandidates, "no candidates"))
	if got := GetCode(err); got != CodeNoCandidates {
		t.Fatalf("GetCode() = %q, want %q", got, CodeNoCandidates)
	}
	if got := GetCode(io.EOF); got != CodeUnknown {
		t.Fatalf("GetCode(plain) = %q, want %q", got, CodeUnknown)
	}
	if !IsCode(err, CodeNoCandidates) {
		t.Fatal("expected IsCode to match")
	}
}

func TestGetMetadata(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", WithMetadata(CodeReceiverTaken, "taken", map[string]string{"Receiver": "Karla"}))
	if got := GetMetadata(err)["Receiver"]; got != "Karla" {
		t.Fatalf("metadata receiver = %q, want %q", got, "Karla")
	}
	if GetMetadata(io.EOF) != nil {
		t.Fatal("expected nil metadata for plain errors")
	}
}

func TestCodeClassification(t *testing.T) {
	tests := []struct {
		code       Code
		userFacing bool
		status     int
	}{
		{code: CodeGiverInvalid, userFacing: true, status: http.StatusOK},
		{code: CodeNoCandidates, userFacing: true, status: http.StatusOK},
		{code: CodeReceiverTaken, userFacing: true, status: http.StatusOK},
		{code: CodeStorageFailure, userFacing: false, status: http.StatusInternalServerError},
		{code: CodeUnknown, userFacing: false, status: http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := tc.code.UserFacing(); got != tc.userFacing {
			t.Fatalf("%s.UserFacing() = %t, want %t", tc.code, got, tc.userFacing)
		}
		if got := tc.code.HTTPStatus(); got != tc.status {
			t.Fatalf("%s.HTTPStatus() = %d, want %d", tc.code, got, tc.status)
		}
	}
	if got := CodeNoCandidates.MessageKey(); got != "errors.NO_CANDIDATES" {
		t.Fatalf("MessageKey() = %q, want %q", got, "errors.NO_CANDIDATES")
	}
}
