package vmath

import "math"

// Vec3 is a 3D vector in float64 world units.
type Vec3 struct {
	X, Y, Z float64
}

func V3Add(a, b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3Sub(a, b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3Scale(v Vec3, s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func V3Neg(v Vec3) Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

func V3Dot(a, b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func V3Cross(a, b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func V3MagSq(v Vec3) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3Mag(v Vec3) float64 {
	return math.Sqrt(V3MagSq(v))
}

func V3Dist(a, b Vec3) float64 {
	return V3Mag(V3Sub(a, b))
}

// V3Normalize returns the unit vector, or the zero vector for zero input.
func V3Normalize(v Vec3) Vec3 {
	mag := V3Mag(v)
	if mag == 0 {
		return Vec3{}
	}
	inv := 1.0 / mag
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

// V3Lerp interpolates linearly between a and b; t is not clamped.
func V3Lerp(a, b Vec3, t float64) Vec3 {
	return Vec3{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
	}
}

// V3ClampMag limits vector magnitude to maxMag.
func V3ClampMag(v Vec3, maxMag float64) Vec3 {
	magSq := V3MagSq(v)
	if magSq <= maxMag*maxMag {
		return v
	}
	return V3Scale(V3Normalize(v), maxMag)
}

// V3RotateToward rotates unit vector cur toward unit vector want by at most
// maxAngle radians, preserving unit length. Used for homing steer.
func V3RotateToward(cur, want Vec3, maxAngle float64) Vec3 {
	dot := V3Dot(cur, want)
	if dot > 1 {
		dot = 1
	} else if dot < -1 {
		dot = -1
	}
	angle := math.Acos(dot)
	if angle <= maxAngle {
		return want
	}

	axis := V3Cross(cur, want)
	if V3MagSq(axis) < 1e-12 {
		// Opposed or parallel; pick any perpendicular axis.
		axis = V3Cross(cur, Vec3{0, 1, 0})
		if V3MagSq(axis) < 1e-12 {
			axis = V3Cross(cur, Vec3{1, 0, 0})
		}
	}
	q := QFromAxisAngle(V3Normalize(axis), maxAngle)
	return QRotate(q, cur)
}
