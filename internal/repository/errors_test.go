package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Clark-Hu/movies-catalog/internal/domain"
)

func TestTranslateError(t *testing.T) {
	other := errors.New("other")
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", pgx.ErrNoRows, domain.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), domain.ErrNotFound},
		{"serialization", &pgconn.PgError{Code: codeSerializationFailure}, domain.ErrConflict},
		{"deadlock", &pgconn.PgError{Code: codeDeadlockDetected}, domain.ErrConflict},
		{"foreign key", &pgconn.PgError{Code: codeForeignKeyViolation}, domain.ErrNotFound},
		{"passthrough", other, other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.in)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("translateError(nil) = %v", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Fatalf("translateError(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
