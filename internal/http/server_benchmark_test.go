package httpserver

import (
	"fmt"
	"net/http"
	"testing"
)

func BenchmarkHandleRateMovie(b *testing.B) {
	ts := buildTestServer(b)
	movieID := ts.addMovie(b, "Benchmark Movie", ts.drama)
	target := fmt.Sprintf("/api/movies/%d/rating", movieID)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rec := ts.do(http.MethodPost, target, fmt.Sprintf(`{"userId":%d,"score":%d}`, ts.userID, i%100+1))
		if rec.Code != http.StatusCreated {
			b.Fatalf("unexpected status %d", rec.Code)
		}
	}
}

func BenchmarkHandleSearchMovies(b *testing.B) {
	ts := buildTestServer(b)
	for i := 0; i < 50; i++ {
		ts.addMovie(b, fmt.Sprintf("Bench Movie %d", i), ts.drama)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rec := ts.do(http.MethodGet, fmt.Sprintf("/api/movies?title=Bench&page=%d", i%5+1), "")
		if rec.Code != http.StatusOK {
			b.Fatalf("unexpected status %d", rec.Code)
		}
	}
}
