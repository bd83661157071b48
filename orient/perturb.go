package orient

import (
	"math/big"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
)

// RobustSign is like Sign, but resolves exact collinearity of three distinct
// points with a symbolic perturbation: every point is displaced by an
// infinitesimal amount that is larger for points that sort lower in
// lexicographic (x, y, z) order. The result is therefore never Indeterminate
// unless two of the points are identical.
//
// RobustSign keeps the antisymmetry and rotation invariance of Sign, so it
// can be used as a consistent tie-break wherever a degenerate orientation
// must be turned into a decision.
func RobustSign(a, b, c s2.Point) Direction {
	if d := triageSign(a, b, c); d != Indeterminate {
		return d
	}
	if a == b || b == c || c == a {
		return Indeterminate
	}
	return perturbedSign(a, b, c)
}

// OrderedCCW returns true if the edges OA, OB, and OC are encountered in
// that order while sweeping counter-clockwise around O. If a == b or b == c
// the result is true, otherwise if a == c it is false.
func OrderedCCW(a, b, c, o s2.Point) bool {
	sum := 0
	if RobustSign(b, o, a) != Clockwise {
		sum++
	}
	if RobustSign(c, o, b) != Clockwise {
		sum++
	}
	if RobustSign(a, o, c) == CounterClockwise {
		sum++
	}
	return sum >= 2
}

func perturbedSign(a, b, c s2.Point) Direction {
	// sort the points, tracking the parity of the permutation
	perm := CounterClockwise
	pa, pb, pc := a.Vector, b.Vector, c.Vector
	if lexLess(pb, pa) {
		pa, pb = pb, pa
		perm = -perm
	}
	if lexLess(pc, pb) {
		pb, pc = pc, pb
		perm = -perm
	}
	if lexLess(pb, pa) {
		pa, pb = pb, pa
		perm = -perm
	}

	xa := r3.PreciseVectorFromVector(pa)
	xb := r3.PreciseVectorFromVector(pb)
	xc := r3.PreciseVectorFromVector(pc)
	bc := xb.Cross(xc)
	if d := Direction(xa.Dot(bc).Sign()); d != Indeterminate {
		return perm * d
	}
	return perm * symbolicSign(xa, xb, xc, bc)
}

// symbolicSign expands the perturbed determinant as a polynomial in the
// perturbation and returns the sign of its first non-zero coefficient. The
// inputs must be sorted lexicographically and bc must equal b×c.
func symbolicSign(a, b, c, bc r3.PreciseVector) Direction {
	steps := []func() int{
		func() int { return bc.Z.Sign() },
		func() int { return bc.Y.Sign() },
		func() int { return bc.X.Sign() },
		func() int { return det2(c.X, a.Y, c.Y, a.X) },
		func() int { return c.X.Sign() },
		func() int { return -c.Y.Sign() },
		func() int { return det2(c.Z, a.X, c.X, a.Z) },
		func() int { return c.Z.Sign() },
		func() int { return det2(a.X, b.Y, a.Y, b.X) },
		func() int { return -b.X.Sign() },
		func() int { return b.Y.Sign() },
		func() int { return a.X.Sign() },
	}
	for _, step := range steps {
		if s := step(); s != 0 {
			return Direction(s)
		}
	}
	return CounterClockwise
}

// det2 returns the sign of p*q - r*s.
func det2(p, q, r, s *big.Float) int {
	lhs := new(big.Float).SetPrec(big.MaxPrec).Mul(p, q)
	rhs := new(big.Float).SetPrec(big.MaxPrec).Mul(r, s)
	return lhs.Cmp(rhs)
}

func lexLess(a, b r3.Vector) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}
