package lattice

import (
	"errors"
	"math"
	"testing"

	"github.com/gonum/matrix/mat64"
)

func TestReuseMatrixCache_DeterminantMatchesColorCount(t *testing.T) {
	cache := NewReuseMatrixCache(nil)

	for _, kind := range []Kind{Square, Triangular} {
		for colors := 1; colors <= 12; colors++ {
			rm, err := cache.Matrix(kind, colors, 0)
			if err != nil {
				t.Fatalf("%v/%d colors: %v", kind, colors, err)
			}
			det := mat64.Det(rm.F)
			if math.Abs(det-float64(colors)) > 1e-9 {
				t.Errorf("%v/%d colors: det = %v, want %d", kind, colors, det, colors)
			}
			if rm.MinDist2 <= 0 {
				t.Errorf("%v/%d colors: min distance^2 = %v, want > 0", kind, colors, rm.MinDist2)
			}
		}
	}
}

func TestReuseMatrixCache_EntriesAreSmallIntegers(t *testing.T) {
	cache := NewReuseMatrixCache(nil)

	rm, err := cache.Matrix(Square, 7, 0)
	if err != nil {
		t.Fatalf("Matrix: %v", err)
	}
	bound := math.Ceil(math.Sqrt(7)) + 3
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			v := rm.F.At(i, j)
			if v != math.Trunc(v) {
				t.Errorf("F[%d][%d] = %v, want an integer value", i, j, v)
			}
			if math.Abs(v) > bound {
				t.Errorf("F[%d][%d] = %v exceeds entry bound %v", i, j, v, bound)
			}
		}
	}
}

func TestReuseMatrixCache_GrowsMonotonically(t *testing.T) {
	cache := NewReuseMatrixCache(nil)

	if err := cache.EnsureComputed(Square, 5, 0); err != nil {
		t.Fatalf("EnsureComputed(5): %v", err)
	}
	before, err := cache.Matrix(Square, 3, 0)
	if err != nil {
		t.Fatalf("Matrix(3): %v", err)
	}

	if err := cache.EnsureComputed(Square, 9, 0); err != nil {
		t.Fatalf("EnsureComputed(9): %v", err)
	}
	after, err := cache.Matrix(Square, 3, 0)
	if err != nil {
		t.Fatalf("Matrix(3) after extension: %v", err)
	}

	// Extension must not recompute cached lower counts: same object.
	if before.F != after.F {
		t.Errorf("entry for 3 colors was recomputed during extension")
	}

	// Shrinking requests are no-ops.
	if err := cache.EnsureComputed(Square, 2, 0); err != nil {
		t.Fatalf("EnsureComputed(2): %v", err)
	}
	if _, err := cache.Matrix(Square, 9, 0); err != nil {
		t.Errorf("entry for 9 colors lost after lower request: %v", err)
	}
}

func TestReuseMatrixCache_RejectsUnknownKind(t *testing.T) {
	cache := NewReuseMatrixCache(nil)

	if err := cache.EnsureComputed(Kind(42), 4, 0); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("unknown kind: err = %v, want ErrInvalidParameter", err)
	}
}

func TestNearPerpendicular_FiltersAcuteCells(t *testing.T) {
	if !nearPerpendicular(1, 0, 0, 1) {
		t.Errorf("orthogonal generators rejected")
	}
	if nearPerpendicular(1, 0, 5, 1) {
		t.Errorf("nearly parallel generators accepted")
	}
}

type recordingMetrics struct {
	searches int
	sizes    map[string]int
}

func (r *recordingMetrics) ObserveReuseSearch(kind string, maxColors int, seconds float64) {
	r.searches++
}

func (r *recordingMetrics) SetReuseCacheSize(kind string, colors int) {
	if r.sizes == nil {
		r.sizes = make(map[string]int)
	}
	r.sizes[kind] = colors
}

func TestReuseMatrixCache_ReportsMetrics(t *testing.T) {
	rec := &recordingMetrics{}
	cache := NewReuseMatrixCache(rec)

	if err := cache.EnsureComputed(Triangular, 4, 0); err != nil {
		t.Fatalf("EnsureComputed: %v", err)
	}
	if err := cache.EnsureComputed(Triangular, 4, 0); err != nil {
		t.Fatalf("EnsureComputed (cached): %v", err)
	}

	if rec.searches != 1 {
		t.Errorf("search ran %d times, want 1 (second call must hit the cache)", rec.searches)
	}
	if rec.sizes["triangular"] != 4 {
		t.Errorf("reported cache size = %d, want 4", rec.sizes["triangular"])
	}
}
