package seed

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/Clark-Hu/movies-catalog/internal/catalog"
	"github.com/Clark-Hu/movies-catalog/internal/logging"
	"github.com/Clark-Hu/movies-catalog/internal/memstore"
)

func sampleFile(t *testing.T) string {
	t.Helper()
	_, currentFile, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(currentFile), "..", "..", "db", "seed", "catalog.json")
}

func TestApplySampleFile(t *testing.T) {
	ctx := context.Background()
	data, err := ReadFile(sampleFile(t))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	svc := catalog.NewService(memstore.New(), catalog.DefaultMaxAttempts, logging.Nop())
	res, err := Apply(ctx, svc, data, logging.Nop())
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	want := Result{Categories: 6, Movies: 3, Users: 2, Comments: 2, Ratings: 2}
	if res != want {
		t.Fatalf("result = %+v, want %+v", res, want)
	}

	movies, err := svc.Search(ctx, "Shawshank", 1)
	if err != nil || len(movies) != 1 {
		t.Fatalf("search = %+v, %v", movies, err)
	}
	detail, err := svc.Detail(ctx, movies[0].ID)
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	if detail.AverageRating != 92.5 || detail.Category != "Drama" || len(detail.Comments) != 2 {
		t.Fatalf("detail = %+v", detail)
	}

	again, err := Apply(ctx, svc, data, logging.Nop())
	if err != nil || !again.Skipped {
		t.Fatalf("second Apply = %+v, %v; want skipped", again, err)
	}
}

func TestApplyRejectsUnknownReferences(t *testing.T) {
	tests := []struct {
		name    string
		data    Data
		wantErr string
	}{
		{
			name:    "movie category",
			data:    Data{Categories: []string{"Drama"}, Movies: []Movie{{Title: "x", Category: "Action", ReleaseDate: "2000-01-01"}}},
			wantErr: `unknown category "Action"`,
		},
		{
			name:    "release date",
			data:    Data{Categories: []string{"Drama"}, Movies: []Movie{{Title: "x", Category: "Drama", ReleaseDate: "01/01/2000"}}},
			wantErr: "release date",
		},
		{
			name:    "rating user",
			data:    Data{Categories: []string{"Drama"}, Movies: []Movie{{Title: "x", Category: "Drama", ReleaseDate: "2000-01-01"}}, Ratings: []Rating{{User: "ghost", Movie: "x", Score: 5}}},
			wantErr: `unknown user "ghost"`,
		},
		{
			name:    "comment movie",
			data:    Data{Users: []User{{Name: "u"}}, Comments: []Comment{{User: "u", Movie: "missing", Text: "hi"}}},
			wantErr: `unknown movie "missing"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := catalog.NewService(memstore.New(), catalog.DefaultMaxAttempts, logging.Nop())
			_, err := Apply(context.Background(), svc, tt.data, logging.Nop())
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Apply error = %v, want contains %q", err, tt.wantErr)
			}
		})
	}
}

func TestReadFileErrors(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := ReadFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}
