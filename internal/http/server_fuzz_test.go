package httpserver

import (
	"net/url"
	"testing"
)

func FuzzParseSearchQuery(f *testing.F) {
	seeds := []string{
		"title=Inception&page=1",
		"page=abc",
		"title=%25&page=99999999999999999999",
		"",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, raw string) {
		values, err := url.ParseQuery(raw)
		if err != nil {
			return
		}
		title, _, err := parseSearchQuery(values)
		if err == nil && title != values.Get("title") {
			t.Fatalf("title altered: %q vs %q", title, values.Get("title"))
		}
	})
}
