package spatial

import (
	"math/rand"
	"sort"
	"testing"
)

func TestBoxContainsEdges(t *testing.T) {
	b := Box{X: -1, Y: 1, W: 2, H: 2}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"center", 0, 0, true},
		{"left edge", -1, 0, true},
		{"right edge", 1, 0, true},
		{"top edge", 0, 1, true},
		{"bottom edge", 0, -1, true},
		{"above", 0, 1.01, false},
		{"below", 0, -1.01, false},
		{"left", -1.01, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestBoxAround(t *testing.T) {
	b := BoxAround(3, 4, 10)
	if b.X != -2 || b.Y != 9 || b.W != 10 || b.H != 10 {
		t.Errorf("BoxAround(3, 4, 10) = %+v", b)
	}
	if !b.Contains(3, 4) {
		t.Error("box should contain its center")
	}
}

func TestInsertOutsideBounds(t *testing.T) {
	q := NewQuadtree(Box{X: 0, Y: 10, W: 10, H: 10}, 4, 8)

	if q.Insert(1, -0.5, 5) {
		t.Error("insert left of bounds should fail")
	}
	if q.Insert(2, 5, 10.5) {
		t.Error("insert above bounds should fail")
	}
	if !q.Insert(3, 0, 0) {
		t.Error("insert on bottom-left corner should succeed")
	}
	if q.Len() != 1 {
		t.Errorf("Len() = %d, want 1", q.Len())
	}
}

func TestQueryCompleteness(t *testing.T) {
	bounds := Box{X: -50, Y: 50, W: 100, H: 100}
	q := NewQuadtree(bounds, 4, 16)
	rng := rand.New(rand.NewSource(7))

	const n = 500
	for i := 0; i < n; i++ {
		x := rng.Float64()*100 - 50
		y := rng.Float64()*100 - 50
		if !q.Insert(i, x, y) {
			t.Fatalf("insert %d at (%v, %v) failed", i, x, y)
		}
	}

	got := q.Query(bounds, nil)
	if len(got) != n {
		t.Fatalf("full query returned %d results, want %d", len(got), n)
	}

	sort.Ints(got)
	for i, id := range got {
		if id != i {
			t.Fatalf("result %d = %d, want %d (duplicate or missing id)", i, id, i)
		}
	}
}

func TestQuerySoundness(t *testing.T) {
	q := NewQuadtree(Box{X: 0, Y: 10, W: 10, H: 10}, 2, 16)
	for i := 0; i < 50; i++ {
		q.Insert(i, float64(i%10), float64(i/10))
	}

	outside := Box{X: 20, Y: 40, W: 5, H: 5}
	if got := q.Query(outside, nil); len(got) != 0 {
		t.Errorf("query outside bounds returned %d results", len(got))
	}

	// Row y=0 is the only one inside this box.
	strip := Box{X: -1, Y: 0.5, W: 20, H: 1}
	got := q.Query(strip, nil)
	if len(got) != 10 {
		t.Fatalf("strip query returned %d results, want 10", len(got))
	}
	for _, id := range got {
		if id/10 != 0 {
			t.Errorf("id %d is outside the strip", id)
		}
	}
}

func TestCoincidentPointsStopAtMaxDepth(t *testing.T) {
	q := NewQuadtree(Box{X: 0, Y: 1, W: 1, H: 1}, 1, 6)
	for i := 0; i < 100; i++ {
		if !q.Insert(i, 0.25, 0.75) {
			t.Fatalf("insert %d failed", i)
		}
	}
	if got := q.Query(q.Bounds(), nil); len(got) != 100 {
		t.Errorf("query returned %d results, want 100", len(got))
	}
}

func TestClear(t *testing.T) {
	q := NewQuadtree(Box{X: 0, Y: 10, W: 10, H: 10}, 1, 8)
	for i := 0; i < 20; i++ {
		q.Insert(i, float64(i)/2, float64(i)/2)
	}
	q.Clear()

	if q.Len() != 0 {
		t.Errorf("Len() after Clear = %d", q.Len())
	}
	if got := q.Query(q.Bounds(), nil); len(got) != 0 {
		t.Errorf("query after Clear returned %d results", len(got))
	}
}

func TestNewQuadtreePanicsOnBadBounds(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for zero-width bounds")
		}
	}()
	NewQuadtree(Box{X: 0, Y: 0, W: 0, H: 1}, 4, 8)
}
