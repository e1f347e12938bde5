package api

import (
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }

func intPtr(n int) *Integer {
	v := Integer(n)
	return &v
}

func validCreateRequest() *CreateBookRequest {
	return &CreateBookRequest{
		ID:        strPtr("BK004"),
		Title:     strPtr("The Go Programming Language"),
		Author:    strPtr("Donovan"),
		Publisher: strPtr("Addison-Wesley"),
		Year:      intPtr(2015),
		Genre:     strPtr("Technical"),
		Stock:     intPtr(4),
	}
}

func TestValidateCreateBookValid(t *testing.T) {
	if err := ValidateCreateBook(validCreateRequest()); err != nil {
		t.Errorf("ValidateCreateBook = %v, want nil", err)
	}
}

func TestValidateCreateBookMissingID(t *testing.T) {
	req := validCreateRequest()
	req.ID = nil
	err := ValidateCreateBook(req)
	if err == nil {
		t.Fatal("ValidateCreateBook = nil, want error")
	}
	if err.Param != "id" {
		t.Errorf("Param = %q, want %q", err.Param, "id")
	}

	// Empty id is treated the same as absent.
	req.ID = strPtr("")
	if err := ValidateCreateBook(req); err == nil {
		t.Error("ValidateCreateBook(empty id) = nil, want error")
	}
}

func TestValidateCreateBookMissingFields(t *testing.T) {
	req := validCreateRequest()
	req.Author = nil
	req.Stock = nil

	err := ValidateCreateBook(req)
	if err == nil {
		t.Fatal("ValidateCreateBook = nil, want error")
	}
	if err.Type != ErrorTypeInvalidRequest {
		t.Errorf("Type = %q, want %q", err.Type, ErrorTypeInvalidRequest)
	}
	// All missing fields are reported in one message.
	if !strings.Contains(err.Message, "author") || !strings.Contains(err.Message, "stock") {
		t.Errorf("Message = %q, want both missing fields listed", err.Message)
	}
}

func TestValidateCreateBookEmptyStringsAllowed(t *testing.T) {
	req := validCreateRequest()
	req.Title = strPtr("")
	if err := ValidateCreateBook(req); err != nil {
		t.Errorf("ValidateCreateBook(empty title) = %v, want nil", err)
	}
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		username string
		wantErr  bool
	}{
		{"ab", true},
		{"", true},
		{"bob", false},
		{"Carol", false},
	}
	for _, tt := range tests {
		err := ValidateUsername(tt.username)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateUsername(%q) = %v, wantErr %v", tt.username, err, tt.wantErr)
		}
	}
}
