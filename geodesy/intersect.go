package geodesy

import "math"

// IntersectRay returns the point where the ray from src along dir first
// meets the ellipsoid surface offset outward by height metres. dir need
// not be normalized. When the ray misses the surface the result is the
// NaN sentinel: a miss is an expected geometric outcome (looking past the
// limb), not an error.
//
// Of the two quadratic roots the one with the smaller absolute parameter
// is chosen, which picks the near intersection and handles candidates
// behind the source consistently.
func (e Ellipsoid) IntersectRay(src, dir Vec3, height float64) Vec3 {
	a := e.A + height
	b := e.B + height

	// Scaling by [b, b, a] turns the ellipsoid equation
	// x^2/a^2 + y^2/a^2 + z^2/b^2 = 1 into a quadratic in the ray
	// parameter with constant term (a*b)^2.
	c := Vec3{X: b, Y: b, Z: a}
	d := dir.mulEach(c)
	s := src.mulEach(c)

	alpha := d.Dot(d)
	beta := 2 * d.Dot(s)
	gamma := s.Dot(s) - (a*b)*(a*b)

	disc := beta*beta - 4*alpha*gamma
	if disc < 0 {
		return NaN3()
	}

	sq := math.Sqrt(disc)
	t1 := (-beta - sq) / (2 * alpha)
	t2 := (-beta + sq) / (2 * alpha)

	t := t1
	if math.Abs(t2) < math.Abs(t1) {
		t = t2
	}
	return src.Add(dir.Scale(t))
}
