package vmath

import "math"

// Quat is a rotation quaternion. All functions assume (and preserve) unit
// length; callers that compose incrementally should renormalize each tick.
type Quat struct {
	X, Y, Z, W float64
}

// QIdentity returns the no-rotation quaternion.
func QIdentity() Quat {
	return Quat{0, 0, 0, 1}
}

// QFromAxisAngle builds a rotation of angle radians about a unit axis.
func QFromAxisAngle(axis Vec3, angle float64) Quat {
	half := angle * 0.5
	s := math.Sin(half)
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: math.Cos(half),
	}
}

// QMul composes two rotations; applying the result equals applying b then a
// in world space, or a then b in a's local frame.
func QMul(a, b Quat) Quat {
	return Quat{
		X: a.W*b.X + a.X*b.W + a.Y*b.Z - a.Z*b.Y,
		Y: a.W*b.Y - a.X*b.Z + a.Y*b.W + a.Z*b.X,
		Z: a.W*b.Z + a.X*b.Y - a.Y*b.X + a.Z*b.W,
		W: a.W*b.W - a.X*b.X - a.Y*b.Y - a.Z*b.Z,
	}
}

func QDot(a, b Quat) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W
}

func QMag(q Quat) float64 {
	return math.Sqrt(QDot(q, q))
}

// QNormalize rescales to unit length; identity for degenerate input.
func QNormalize(q Quat) Quat {
	mag := QMag(q)
	if mag == 0 {
		return QIdentity()
	}
	inv := 1.0 / mag
	return Quat{q.X * inv, q.Y * inv, q.Z * inv, q.W * inv}
}

func QConjugate(q Quat) Quat {
	return Quat{-q.X, -q.Y, -q.Z, q.W}
}

// QRotate applies rotation q to vector v.
func QRotate(q Quat, v Vec3) Vec3 {
	// v' = v + 2*cross(q.xyz, cross(q.xyz, v) + w*v)
	u := Vec3{q.X, q.Y, q.Z}
	t := V3Scale(V3Cross(u, v), 2)
	return V3Add(v, V3Add(V3Scale(t, q.W), V3Cross(u, t)))
}

// QAngle returns the rotation angle in radians between two orientations.
func QAngle(a, b Quat) float64 {
	dot := math.Abs(QDot(a, b))
	if dot > 1 {
		dot = 1
	}
	return 2 * math.Acos(dot)
}

// QSlerp spherically interpolates from a to b; t in [0,1].
func QSlerp(a, b Quat, t float64) Quat {
	dot := QDot(a, b)
	// Take the short arc.
	if dot < 0 {
		b = Quat{-b.X, -b.Y, -b.Z, -b.W}
		dot = -dot
	}
	if dot > 0.9995 {
		// Nearly parallel; lerp and renormalize to avoid division blowup.
		return QNormalize(Quat{
			a.X + (b.X-a.X)*t,
			a.Y + (b.Y-a.Y)*t,
			a.Z + (b.Z-a.Z)*t,
			a.W + (b.W-a.W)*t,
		})
	}

	theta := math.Acos(dot)
	sinTheta := math.Sin(theta)
	wa := math.Sin((1-t)*theta) / sinTheta
	wb := math.Sin(t*theta) / sinTheta
	return Quat{
		a.X*wa + b.X*wb,
		a.Y*wa + b.Y*wb,
		a.Z*wa + b.Z*wb,
		a.W*wa + b.W*wb,
	}
}

// QRotateToward turns orientation cur toward want by at most maxAngle
// radians. This is the shared "can't snap-turn" primitive used by both the
// chase camera and the enemy pilot.
func QRotateToward(cur, want Quat, maxAngle float64) Quat {
	angle := QAngle(cur, want)
	if angle <= maxAngle || angle == 0 {
		return want
	}
	return QSlerp(cur, want, maxAngle/angle)
}

// QLookRotation builds an orientation whose local -Z axis points along dir.
// up disambiguates roll; dir need not be normalized.
func QLookRotation(dir, up Vec3) Quat {
	fwd := V3Normalize(dir)
	if V3MagSq(fwd) == 0 {
		return QIdentity()
	}
	right := V3Cross(up, V3Neg(fwd))
	if V3MagSq(right) < 1e-12 {
		// dir is parallel to up; pick an arbitrary horizon.
		right = V3Cross(Vec3{0, 0, 1}, V3Neg(fwd))
	}
	right = V3Normalize(right)
	newUp := V3Cross(V3Neg(fwd), right)

	// Column-major rotation basis: right, newUp, -fwd (local -Z faces dir).
	m00, m01, m02 := right.X, newUp.X, -fwd.X
	m10, m11, m12 := right.Y, newUp.Y, -fwd.Y
	m20, m21, m22 := right.Z, newUp.Z, -fwd.Z

	trace := m00 + m11 + m22
	var q Quat
	switch {
	case trace > 0:
		s := math.Sqrt(trace+1) * 2
		q = Quat{
			X: (m21 - m12) / s,
			Y: (m02 - m20) / s,
			Z: (m10 - m01) / s,
			W: 0.25 * s,
		}
	case m00 > m11 && m00 > m22:
		s := math.Sqrt(1+m00-m11-m22) * 2
		q = Quat{
			X: 0.25 * s,
			Y: (m01 + m10) / s,
			Z: (m02 + m20) / s,
			W: (m21 - m12) / s,
		}
	case m11 > m22:
		s := math.Sqrt(1+m11-m00-m22) * 2
		q = Quat{
			X: (m01 + m10) / s,
			Y: 0.25 * s,
			Z: (m12 + m21) / s,
			W: (m02 - m20) / s,
		}
	default:
		s := math.Sqrt(1+m22-m00-m11) * 2
		q = Quat{
			X: (m02 + m20) / s,
			Y: (m12 + m21) / s,
			Z: 0.25 * s,
			W: (m10 - m01) / s,
		}
	}
	return QNormalize(q)
}
