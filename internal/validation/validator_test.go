package validation

import (
	"errors"
	"strings"
	"testing"
)

type ratingPayload struct {
	UserID int64 `json:"userId" validate:"gt=0"`
	Score  int   `json:"score" validate:"min=1,max=100"`
}

type userPayload struct {
	Name       string  `json:"name" validate:"required,max=200"`
	Categories []int64 `json:"interestedCategories" validate:"omitempty,unique,dive,gt=0"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name      string
		input     interface{}
		wantField string
		wantMsg   string
	}{
		{"valid rating", ratingPayload{UserID: 1, Score: 100}, "", ""},
		{"score too high", ratingPayload{UserID: 1, Score: 101}, "score", "score must be at most 100"},
		{"score too low", ratingPayload{UserID: 1, Score: 0}, "score", "score must be at least 1"},
		{"missing user", ratingPayload{Score: 5}, "userId", "userId must be greater than 0"},
		{"valid user", userPayload{Name: "Ann", Categories: []int64{1, 2}}, "", ""},
		{"missing name", userPayload{}, "name", "name is required"},
		{"duplicate categories", userPayload{Name: "Ann", Categories: []int64{1, 1}}, "interestedCategories", "must not contain duplicates"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.input)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Struct() unexpected error: %v", err)
				}
				return
			}
			var verr *Error
			if !errors.As(err, &verr) {
				t.Fatalf("Struct() error = %v, want *Error", err)
			}
			if verr.Fields[0].Field != tt.wantField {
				t.Fatalf("field = %s, want %s", verr.Fields[0].Field, tt.wantField)
			}
			if !strings.Contains(verr.Error(), tt.wantMsg) {
				t.Fatalf("message = %q, want contains %q", verr.Error(), tt.wantMsg)
			}
		})
	}
}
