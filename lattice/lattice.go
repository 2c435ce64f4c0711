// Package lattice generates regular planar point lattices for antenna and
// beam grids and partitions them into frequency-reuse color groups via
// periodic sublattices.
package lattice

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidParameter is the base error for validation failures in
	// this package.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// Kind identifies the lattice geometry a reuse pattern is built for.
type Kind int

const (
	// Square is a rectangular lattice with orthogonal axes.
	Square Kind = iota
	// Triangular is a hexagonal-packing lattice with a 60-degree skew
	// between axes.
	Triangular
)

// String returns the lattice kind name.
func (k Kind) String() string {
	switch k {
	case Square:
		return "square"
	case Triangular:
		return "triangular"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) valid() bool {
	return k == Square || k == Triangular
}

// Point is a planar lattice point.
type Point struct {
	X, Y float64
}

// Predicate filters generated points; nil accepts everything.
type Predicate func(x, y float64) bool

// Generate produces the points of a skewed regular grid:
//
//	x(m,n) = m*dx + n*ds + x0 - round(n*ds/dx)*dx
//	y(n)   = n*dy + y0
//
// for m in [-m,m] and n in [-n,n], filtered by keep. The subtraction
// re-centres each row so the window stays centred at x ~ 0 regardless of
// skew. Points are emitted in row-major scan order (n outer, m inner);
// the ordering is deterministic because color assignment indexes by
// position.
func Generate(dx, dy, ds, x0, y0 float64, m, n int, keep Predicate) []Point {
	points := make([]Point, 0, Count(dx, dy, ds, x0, y0, m, n, keep))
	appendLattice(dx, dy, ds, x0, y0, m, n, keep, func(x, y float64) {
		points = append(points, Point{X: x, Y: y})
	})
	return points
}

// Count runs the same enumeration as Generate but only counts matches.
// Used for pre-sizing.
func Count(dx, dy, ds, x0, y0 float64, m, n int, keep Predicate) int {
	total := 0
	appendLattice(dx, dy, ds, x0, y0, m, n, keep, func(x, y float64) {
		total++
	})
	return total
}

func appendLattice(dx, dy, ds, x0, y0 float64, m, n int, keep Predicate, emit func(x, y float64)) {
	for ni := -n; ni <= n; ni++ {
		shift := float64(ni) * ds
		recentre := 0.0
		if ds != 0 {
			recentre = math.Round(shift/dx) * dx
		}
		y := float64(ni)*dy + y0
		for mi := -m; mi <= m; mi++ {
			x := float64(mi)*dx + shift + x0 - recentre
			if keep == nil || keep(x, y) {
				emit(x, y)
			}
		}
	}
}

// GenerateSquare produces a square lattice with pitch d.
func GenerateSquare(d float64, m, n int, keep Predicate) []Point {
	return Generate(d, d, 0, 0, 0, m, n, keep)
}

// GenerateRect produces a rectangular lattice with independent pitches.
func GenerateRect(dx, dy float64, m, n int, keep Predicate) []Point {
	return Generate(dx, dy, 0, 0, 0, m, n, keep)
}

// GenerateHex produces a hexagonal-packing (triangular) lattice with
// nearest-neighbour distance d: rows d*sqrt(3)/2 apart, alternate rows
// offset by half a pitch.
func GenerateHex(d float64, m, n int, keep Predicate) []Point {
	return Generate(d, d*math.Sqrt(3)/2, d/2, 0, 0, m, n, keep)
}
