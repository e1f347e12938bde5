package transport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shelfd/shelfd/pkg/api"
)

func TestHTTPStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  *api.APIError
		want int
	}{
		{"invalid request", api.NewInvalidRequestError("", "bad"), http.StatusBadRequest},
		{"conflict maps to bad request", api.NewConflictError("id", "dup"), http.StatusBadRequest},
		{"unauthenticated", api.NewUnauthenticatedError("who"), http.StatusUnauthorized},
		{"forbidden", api.NewForbiddenError("no"), http.StatusForbidden},
		{"not found", api.NewNotFoundError("gone"), http.StatusNotFound},
		{"too many requests", api.NewTooManyRequestsError("slow"), http.StatusTooManyRequests},
		{"server error", api.NewServerError("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatusFromError(tt.err); got != tt.want {
				t.Errorf("HTTPStatusFromError() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWriteAPIError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteAPIError(rec, api.NewNotFoundError("Book not found"))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var body api.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body.Error == nil {
		t.Fatal("expected an error object in the body")
	}
	if body.Error.Message != "Book not found" {
		t.Errorf("message = %q, want %q", body.Error.Message, "Book not found")
	}
	if body.Error.Type != api.ErrorTypeNotFound {
		t.Errorf("type = %q, want %q", body.Error.Type, api.ErrorTypeNotFound)
	}
}

func TestWriteErrorResponseExplicitStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteErrorResponse(rec, api.NewServerError("disk on fire"), http.StatusBadGateway)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadGateway)
	}
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, api.MessageResponse{Message: "Book created"})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	var body api.MessageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body.Message != "Book created" {
		t.Errorf("message = %q, want %q", body.Message, "Book created")
	}
}
