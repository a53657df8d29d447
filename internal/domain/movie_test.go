package domain

import "testing"

func TestMeanScore(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		want   float64
	}{
		{"empty", nil, 0},
		{"single", []int{42}, 42},
		{"pair", []int{1, 100}, 50.5},
		{"repeat", []int{7, 7, 7}, 7},
		{"thirds", []int{1, 1, 2}, 4.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ratings := make([]Rating, 0, len(tt.scores))
			for _, s := range tt.scores {
				ratings = append(ratings, Rating{Score: s})
			}
			if got := MeanScore(ratings); got != tt.want {
				t.Fatalf("MeanScore(%v) = %v, want %v", tt.scores, got, tt.want)
			}
		})
	}
}

func TestUserInterestSet(t *testing.T) {
	u := User{InterestedCategoryIDs: []int64{3, 1, 3}}
	set := u.InterestSet()
	if len(set) != 2 {
		t.Fatalf("len(set) = %d, want 2", len(set))
	}
	if _, ok := set[1]; !ok {
		t.Fatalf("expected category 1 in set")
	}
	if len((User{}).InterestSet()) != 0 {
		t.Fatalf("empty user should have empty interest set")
	}
}
