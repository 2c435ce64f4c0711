package lattice

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gonum/matrix/mat64"
)

// DefaultGridMax bounds the integer entries explored by the reuse-matrix
// search. 25 keeps the brute force under a million candidate matrices.
const DefaultGridMax = 25

// ReuseMatrix is the best integer sublattice generating matrix found for a
// given color count: the rows of F generate the sublattice of lattice
// indices that share a frequency color.
type ReuseMatrix struct {
	Colors int
	F      *mat64.Dense
	// MinDist2 is the squared minimum distance between sublattice points
	// in the (basis-transformed) plane; larger is better isolation.
	MinDist2 float64
	// Frob2 is the squared Frobenius norm, the tie-breaker.
	Frob2 float64
}

// found reports whether the search produced a matrix for this color count.
func (r ReuseMatrix) found() bool { return r.F != nil }

// SearchMetrics receives instrumentation from the reuse-matrix search.
// Implementations must tolerate being called from any goroutine holding
// the cache lock; a nil SearchMetrics disables instrumentation.
type SearchMetrics interface {
	ObserveReuseSearch(kind string, maxColors int, seconds float64)
	SetReuseCacheSize(kind string, colors int)
}

// ReuseMatrixCache memoizes reuse-matrix searches per lattice kind. The
// table grows monotonically: extending to a higher color count never
// recomputes or invalidates entries already cached. It is the only shared
// mutable state in this package and is safe for concurrent use.
type ReuseMatrixCache struct {
	mu      sync.Mutex
	entries map[Kind][]ReuseMatrix // index i holds the matrix for i+1 colors
	metrics SearchMetrics
}

// NewReuseMatrixCache creates an empty cache. metrics may be nil.
func NewReuseMatrixCache(metrics SearchMetrics) *ReuseMatrixCache {
	return &ReuseMatrixCache{
		entries: make(map[Kind][]ReuseMatrix),
		metrics: metrics,
	}
}

// EnsureComputed extends the cached table for kind up to maxColors,
// searching only the color counts not yet cached.
func (c *ReuseMatrixCache) EnsureComputed(kind Kind, maxColors, gridMax int) error {
	if !kind.valid() {
		return fmt.Errorf("%w: unknown lattice kind %v", ErrInvalidParameter, kind)
	}
	if maxColors < 1 {
		return fmt.Errorf("%w: max colors %d must be at least 1", ErrInvalidParameter, maxColors)
	}
	if gridMax < 1 {
		gridMax = DefaultGridMax
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	cached := len(c.entries[kind])
	if maxColors <= cached {
		return nil
	}

	start := time.Now()
	extension := searchReuseMatrices(kind, cached+1, maxColors, gridMax)
	c.entries[kind] = append(c.entries[kind], extension...)

	if c.metrics != nil {
		c.metrics.ObserveReuseSearch(kind.String(), maxColors, time.Since(start).Seconds())
		c.metrics.SetReuseCacheSize(kind.String(), len(c.entries[kind]))
	}
	return nil
}

// Matrix returns the cached reuse matrix for exactly colors colors,
// computing the table first if needed. It fails when no integer matrix
// within the search bounds achieves the requested count.
func (c *ReuseMatrixCache) Matrix(kind Kind, colors, gridMax int) (ReuseMatrix, error) {
	if err := c.EnsureComputed(kind, colors, gridMax); err != nil {
		return ReuseMatrix{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry := c.entries[kind][colors-1]
	if !entry.found() {
		return ReuseMatrix{}, fmt.Errorf("%w: no reuse matrix achieves %d colors", ErrInvalidParameter, colors)
	}
	return entry, nil
}

// searchReuseMatrices brute-forces integer 2x2 candidates and keeps, per
// achievable color count in [minColors, maxColors], the candidate with the
// best (max min-distance, min Frobenius norm) score. Candidate sublattice
// cells far from square are pruned early: near-perpendicular generating
// vectors give better minimum-distance reuse patterns.
func searchReuseMatrices(kind Kind, minColors, maxColors, gridMax int) []ReuseMatrix {
	best := make([]ReuseMatrix, maxColors-minColors+1)

	for x1 := 0; x1 <= gridMax; x1++ {
		for y1 := 0; y1 <= gridMax; y1++ {
			for x2 := -gridMax; x2 <= gridMax; x2++ {
				for y2 := 0; y2 <= gridMax; y2++ {
					det := x1*y2 - y1*x2
					if det < minColors || det > maxColors || det > gridMax*gridMax {
						continue
					}
					bound := int(math.Ceil(math.Sqrt(float64(det)))) + 3
					if x1 > bound || y1 > bound || abs(x2) > bound || y2 > bound {
						continue
					}
					if !nearPerpendicular(x1, y1, x2, y2) {
						continue
					}

					dmin2, frob2 := scoreCandidate(kind, x1, y1, x2, y2)

					slot := &best[det-minColors]
					if slot.found() && !betterScore(dmin2, frob2, slot.MinDist2, slot.Frob2) {
						continue
					}
					*slot = ReuseMatrix{
						Colors: det,
						F: mat64.NewDense(2, 2, []float64{
							float64(x1), float64(y1),
							float64(x2), float64(y2),
						}),
						MinDist2: dmin2,
						Frob2:    frob2,
					}
				}
			}
		}
	}
	return best
}

// nearPerpendicular reports whether the angle between the two generating
// vectors is within 45 degrees of a right angle.
func nearPerpendicular(x1, y1, x2, y2 int) bool {
	n1 := math.Hypot(float64(x1), float64(y1))
	n2 := math.Hypot(float64(x2), float64(y2))
	if n1 == 0 || n2 == 0 {
		return false
	}
	cosA := (float64(x1)*float64(x2) + float64(y1)*float64(y2)) / (n1 * n2)
	if cosA > 1 {
		cosA = 1
	} else if cosA < -1 {
		cosA = -1
	}
	angle := math.Acos(cosA)
	return math.Abs(math.Pi/2-angle) <= math.Pi/4
}

// scoreCandidate evaluates a candidate after mapping its rows through the
// lattice basis: identity for square lattices, the 60-degree skew basis
// for triangular ones.
func scoreCandidate(kind Kind, x1, y1, x2, y2 int) (dmin2, frob2 float64) {
	r1x, r1y := basisRow(kind, x1, y1)
	r2x, r2y := basisRow(kind, x2, y2)

	n1 := r1x*r1x + r1y*r1y
	n2 := r2x*r2x + r2y*r2y
	sum := (r1x+r2x)*(r1x+r2x) + (r1y+r2y)*(r1y+r2y)
	diff := (r1x-r2x)*(r1x-r2x) + (r1y-r2y)*(r1y-r2y)

	dmin2 = math.Min(math.Min(n1, n2), math.Min(sum, diff))
	frob2 = n1 + n2
	return dmin2, frob2
}

func basisRow(kind Kind, x, y int) (float64, float64) {
	if kind == Triangular {
		// Skew basis u1=(1,0), u2=(1/2, sqrt(3)/2).
		return float64(x) + float64(y)/2, float64(y) * math.Sqrt(3) / 2
	}
	return float64(x), float64(y)
}

// betterScore compares candidates by the lexicographic key
// (-minDist2, frob2): maximal minimum distance first, smaller Frobenius
// norm on ties.
func betterScore(dmin2, frob2, incumbentDMin2, incumbentFrob2 float64) bool {
	if dmin2 != incumbentDMin2 {
		return dmin2 > incumbentDMin2
	}
	return frob2 < incumbentFrob2
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
