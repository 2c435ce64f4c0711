package lattice

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/gonum/matrix/mat64"

	"github.com/signalsfoundry/satview/internal/logging"
)

// DefaultPrecisionDigits is the decimal precision used to deduplicate
// coordinate projections and to stabilise the coset reduction against
// floating-point noise.
const DefaultPrecisionDigits = 6

// AssignOptions tunes color assignment. The zero value selects a square
// lattice, index 0 as the first-color seed, and default precision.
type AssignOptions struct {
	Kind Kind
	// PrecisionDigits rounds coordinates before spacing detection and
	// coset reduction; 0 means DefaultPrecisionDigits.
	PrecisionDigits int
	// FirstColorIdx designates the point that receives color 1.
	FirstColorIdx int
	// FirstColorCoord designates the first-color point by coordinates
	// instead; when both are supplied the coordinate wins and the index
	// is ignored with a warning.
	FirstColorCoord *Point
	// GridMax overrides the reuse-search entry bound; 0 means
	// DefaultGridMax.
	GridMax int
}

// Colorer assigns frequency-reuse colors to lattice points. It owns no
// state of its own; the reuse-matrix cache is an injected dependency so
// tests and callers control memoization scope.
type Colorer struct {
	cache *ReuseMatrixCache
	log   logging.Logger
}

// NewColorer builds a coloring engine around the given cache. log may be
// nil, which drops warnings.
func NewColorer(cache *ReuseMatrixCache, log logging.Logger) *Colorer {
	if log == nil {
		log = logging.Noop()
	}
	return &Colorer{cache: cache, log: log}
}

// Assign labels every point with a color in [1, nColors] such that points
// sharing a color form a periodic sublattice with good minimum-distance
// separation. Colors are numbered by first occurrence in input order, then
// relabeled so the designated first-color point receives color 1.
func (c *Colorer) Assign(points []Point, nColors int, opts AssignOptions) ([]int, error) {
	if !opts.Kind.valid() {
		return nil, fmt.Errorf("%w: unknown lattice kind %v", ErrInvalidParameter, opts.Kind)
	}
	if nColors < 1 {
		return nil, fmt.Errorf("%w: color count %d must be at least 1", ErrInvalidParameter, nColors)
	}

	colors := make([]int, len(points))
	if nColors == 1 {
		for i := range colors {
			colors[i] = 1
		}
		return colors, nil
	}
	if len(points) == 0 {
		return colors, nil
	}

	digits := opts.PrecisionDigits
	if digits <= 0 {
		digits = DefaultPrecisionDigits
	}

	reuse, err := c.cache.Matrix(opts.Kind, nColors, opts.GridMax)
	if err != nil {
		return nil, err
	}

	// Spacing detection runs on the skew-corrected U projection: for a
	// triangular lattice the raw x values of alternate rows interleave at
	// half the pitch, which would halve the detected spacing and break
	// the integer index mapping.
	du := minSpacing(points, func(p Point) float64 { return uProjection(p, opts.Kind) }, digits)
	dv := minSpacing(points, func(p Point) float64 { return p.Y }, digits)

	f := reuse.F
	fInv, ok := invert2x2(f)
	if !ok {
		return nil, fmt.Errorf("%w: reuse matrix for %d colors is singular", ErrInvalidParameter, nColors)
	}

	next := 1
	byRep := make(map[[2]int]int, nColors)
	for i, p := range points {
		rep := cosetRepresentative(latticeIndex(p, du, dv, opts.Kind), f, fInv, digits)
		color, ok := byRep[rep]
		if !ok {
			color = next
			next++
			byRep[rep] = color
		}
		colors[i] = color
	}

	seed, err := c.firstColorSeed(points, opts, digits)
	if err != nil {
		return nil, err
	}
	relabelFirst(colors, seed)
	return colors, nil
}

// firstColorSeed resolves which point should carry color 1, preferring an
// explicit coordinate over an index when both are supplied.
func (c *Colorer) firstColorSeed(points []Point, opts AssignOptions, digits int) (int, error) {
	if opts.FirstColorCoord != nil {
		if opts.FirstColorIdx != 0 {
			c.log.Warn(context.Background(), "both first-color index and coordinate supplied; using coordinate",
				logging.Int("first_color_idx", opts.FirstColorIdx))
		}
		want := *opts.FirstColorCoord
		for i, p := range points {
			if roundTo(p.X, digits) == roundTo(want.X, digits) &&
				roundTo(p.Y, digits) == roundTo(want.Y, digits) {
				return i, nil
			}
		}
		return 0, fmt.Errorf("%w: first-color coordinate (%v, %v) matches no point",
			ErrInvalidParameter, want.X, want.Y)
	}
	if opts.FirstColorIdx < 0 || opts.FirstColorIdx >= len(points) {
		return 0, fmt.Errorf("%w: first-color index %d out of range [0, %d)",
			ErrInvalidParameter, opts.FirstColorIdx, len(points))
	}
	return opts.FirstColorIdx, nil
}

// relabelFirst swaps color labels so the seed point carries color 1.
func relabelFirst(colors []int, seed int) {
	old := colors[seed]
	if old == 1 {
		return
	}
	for i, c := range colors {
		switch c {
		case old:
			colors[i] = 1
		case 1:
			colors[i] = old
		}
	}
}

// uProjection is the horizontal coordinate with the lattice skew removed:
// identity for square lattices, x - y/sqrt(3) for triangular ones (each
// row step of sqrt(3)/2 in y carries a half-pitch shift in x).
func uProjection(p Point, kind Kind) float64 {
	if kind == Triangular {
		return p.X - p.Y/math.Sqrt(3)
	}
	return p.X
}

// latticeIndex maps a point to its integer lattice coordinates: normalize
// by the per-axis spacing, apply D = [[1, -1/2], [0, 1]] to undo the
// 60-degree skew for triangular lattices, round.
func latticeIndex(p Point, du, dv float64, kind Kind) [2]float64 {
	u := p.X / du
	v := p.Y / dv
	if kind == Triangular {
		u -= v / 2
	}
	return [2]float64{math.Round(u), math.Round(v)}
}

// invert2x2 inverts a 2x2 matrix by its adjugate. mat64's LU-based
// Dense.Inverse rejects matrices that need pivoting (a zero in a natural
// pivot position), which reuse matrices like [[1,1],[-3,0]] routinely
// have, so the closed form is used instead. Reports false when the
// matrix is singular.
func invert2x2(f *mat64.Dense) (*mat64.Dense, bool) {
	det := f.At(0, 0)*f.At(1, 1) - f.At(0, 1)*f.At(1, 0)
	if det == 0 {
		return nil, false
	}
	return mat64.NewDense(2, 2, []float64{
		f.At(1, 1) / det, -f.At(0, 1) / det,
		-f.At(1, 0) / det, f.At(0, 0) / det,
	}), true
}

// cosetRepresentative reduces an integer lattice index into the
// fundamental parallelepiped of the sublattice generated by f:
// rep = idx - F*floor(round(F^-1*idx)). Rounding before the floor keeps
// indices that sit exactly on a cell boundary from flipping cosets.
func cosetRepresentative(idx [2]float64, f *mat64.Dense, fInv *mat64.Dense, digits int) [2]int {
	w0 := fInv.At(0, 0)*idx[0] + fInv.At(0, 1)*idx[1]
	w1 := fInv.At(1, 0)*idx[0] + fInv.At(1, 1)*idx[1]
	w0 = math.Floor(roundTo(w0, digits))
	w1 = math.Floor(roundTo(w1, digits))

	r0 := idx[0] - (f.At(0, 0)*w0 + f.At(0, 1)*w1)
	r1 := idx[1] - (f.At(1, 0)*w0 + f.At(1, 1)*w1)
	return [2]int{int(math.Round(r0)), int(math.Round(r1))}
}

// minSpacing finds the smallest gap between distinct projected
// coordinates, rounded to the given precision. Degenerate inputs (all
// projections equal) fall back to unit spacing.
func minSpacing(points []Point, project func(Point) float64, digits int) float64 {
	seen := make(map[float64]struct{}, len(points))
	vals := make([]float64, 0, len(points))
	for _, p := range points {
		v := roundTo(project(p), digits)
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			vals = append(vals, v)
		}
	}
	if len(vals) < 2 {
		return 1
	}
	sort.Float64s(vals)

	min := math.Inf(1)
	for i := 1; i < len(vals); i++ {
		if d := vals[i] - vals[i-1]; d < min {
			min = d
		}
	}
	return min
}

func roundTo(v float64, digits int) float64 {
	scale := math.Pow10(digits)
	return math.Round(v*scale) / scale
}
