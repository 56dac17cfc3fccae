// Hitparade - Artists and Hits REST API
// Copyright 2026 P. Milosz (pmilosz)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pmilosz/hitparade

package validation

import (
	"strings"
	"testing"
)

type artistPayload struct {
	FirstName string `json:"first_name" validate:"required,min=1,max=255"`
	LastName  string `json:"last_name" validate:"required,min=1,max=255"`
}

type hitPayload struct {
	Title    string `json:"title" validate:"required,min=1,max=255"`
	ArtistID string `json:"artist_id" validate:"omitempty,uuid4"`
}

func TestValidateStructPasses(t *testing.T) {
	t.Parallel()

	payload := artistPayload{FirstName: "Freddie", LastName: "Mercury"}
	if err := ValidateStruct(&payload); err != nil {
		t.Fatalf("expected valid payload, got: %v", err)
	}
}

func TestValidateStructUsesJSONFieldNames(t *testing.T) {
	t.Parallel()

	payload := artistPayload{LastName: "Mercury"}
	err := ValidateStruct(&payload)
	if err == nil {
		t.Fatal("expected validation error for missing first_name")
	}

	errs := err.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if errs[0].Field() != "first_name" {
		t.Errorf("expected wire field name 'first_name', got %q", errs[0].Field())
	}
	if errs[0].Tag() != "required" {
		t.Errorf("expected tag 'required', got %q", errs[0].Tag())
	}
	if !strings.Contains(errs[0].Error(), "first_name is required") {
		t.Errorf("unexpected message: %s", errs[0].Error())
	}
}

func TestValidateStructMaxLength(t *testing.T) {
	t.Parallel()

	payload := hitPayload{Title: strings.Repeat("x", 256)}
	err := ValidateStruct(&payload)
	if err == nil {
		t.Fatal("expected validation error for overlong title")
	}
	if !strings.Contains(err.Error(), "title must be at most 255 characters") {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestValidateStructUUID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		artistID string
		wantErr  bool
	}{
		{"valid uuid4", "7c9e6679-7425-40de-944b-e07fc1f90ae7", false},
		{"empty allowed by omitempty", "", false},
		{"not a uuid", "not-a-uuid", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			payload := hitPayload{Title: "Song", ArtistID: tt.artistID}
			err := ValidateStruct(&payload)
			if tt.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("expected valid payload, got: %v", err)
			}
			if tt.wantErr && !strings.Contains(err.Error(), "artist_id must be a valid UUID") {
				t.Errorf("unexpected message: %s", err.Error())
			}
		})
	}
}

func TestToAPIErrorSingle(t *testing.T) {
	t.Parallel()

	payload := artistPayload{FirstName: "Freddie"}
	err := ValidateStruct(&payload)
	if err == nil {
		t.Fatal("expected validation error")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("expected VALIDATION_ERROR code, got %s", apiErr.Code)
	}
	if apiErr.Details["field"] != "last_name" {
		t.Errorf("expected field detail 'last_name', got %v", apiErr.Details["field"])
	}
}

func TestToAPIErrorMultiple(t *testing.T) {
	t.Parallel()

	payload := artistPayload{}
	err := ValidateStruct(&payload)
	if err == nil {
		t.Fatal("expected validation errors")
	}
	if len(err.Errors()) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(err.Errors()))
	}

	apiErr := err.ToAPIError()
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok {
		t.Fatalf("expected fields detail, got %T", apiErr.Details["fields"])
	}
	if len(fields) != 2 {
		t.Errorf("expected 2 field entries, got %d", len(fields))
	}
	if !strings.Contains(apiErr.Message, "first_name") || !strings.Contains(apiErr.Message, "last_name") {
		t.Errorf("expected both fields in message: %s", apiErr.Message)
	}
}
