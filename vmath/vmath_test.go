package vmath

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func vecNear(a, b Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) < tol && math.Abs(a.Y-b.Y) < tol && math.Abs(a.Z-b.Z) < tol
}

func TestV3Normalize(t *testing.T) {
	v := V3Normalize(Vec3{X: 3, Y: 4})
	if math.Abs(V3Mag(v)-1) > epsilon {
		t.Fatalf("normalized magnitude = %v, want 1", V3Mag(v))
	}
	zero := V3Normalize(Vec3{})
	if zero != (Vec3{}) {
		t.Fatalf("normalizing zero vector = %+v, want zero", zero)
	}
}

func TestV3ClampMag(t *testing.T) {
	v := V3ClampMag(Vec3{X: 10}, 3)
	if math.Abs(V3Mag(v)-3) > epsilon {
		t.Fatalf("clamped magnitude = %v, want 3", V3Mag(v))
	}
	v = V3ClampMag(Vec3{X: 1}, 3)
	if v != (Vec3{X: 1}) {
		t.Fatalf("under-limit vector changed: %+v", v)
	}
}

func TestQRotateAxes(t *testing.T) {
	// Quarter turn about Y sends -Z to -X.
	q := QFromAxisAngle(Vec3{Y: 1}, math.Pi/2)
	got := QRotate(q, Vec3{Z: -1})
	if !vecNear(got, Vec3{X: -1}, 1e-9) {
		t.Fatalf("rotated -Z about Y by 90deg = %+v, want -X", got)
	}
}

func TestQMulComposition(t *testing.T) {
	// Two quarter turns equal one half turn.
	quarter := QFromAxisAngle(Vec3{Y: 1}, math.Pi/2)
	half := QFromAxisAngle(Vec3{Y: 1}, math.Pi)
	composed := QMul(quarter, quarter)
	a := QRotate(composed, Vec3{X: 1})
	b := QRotate(half, Vec3{X: 1})
	if !vecNear(a, b, 1e-9) {
		t.Fatalf("composed rotation %+v != direct half turn %+v", a, b)
	}
}

func TestQNormalizeDegenerate(t *testing.T) {
	q := QNormalize(Quat{})
	if q != QIdentity() {
		t.Fatalf("normalizing zero quat = %+v, want identity", q)
	}
}

func TestQSlerpEndpoints(t *testing.T) {
	a := QIdentity()
	b := QFromAxisAngle(Vec3{Y: 1}, math.Pi/3)
	if ang := QAngle(QSlerp(a, b, 0), a); ang > 1e-6 {
		t.Fatalf("slerp t=0 deviates by %v", ang)
	}
	if ang := QAngle(QSlerp(a, b, 1), b); ang > 1e-6 {
		t.Fatalf("slerp t=1 deviates by %v", ang)
	}
	mid := QSlerp(a, b, 0.5)
	if ang := QAngle(a, mid); math.Abs(ang-math.Pi/6) > 1e-6 {
		t.Fatalf("slerp midpoint angle = %v, want %v", ang, math.Pi/6)
	}
}

func TestQRotateTowardBounded(t *testing.T) {
	a := QIdentity()
	b := QFromAxisAngle(Vec3{Y: 1}, math.Pi/2)

	step := QRotateToward(a, b, 0.1)
	if ang := QAngle(a, step); ang > 0.1+1e-6 {
		t.Fatalf("step exceeded bound: %v", ang)
	}

	// A bound larger than the gap lands exactly on the target.
	full := QRotateToward(a, b, math.Pi)
	if ang := QAngle(full, b); ang > 1e-6 {
		t.Fatalf("oversized step missed target by %v", ang)
	}
}

func TestQLookRotation(t *testing.T) {
	dirs := []Vec3{
		{Z: -1}, {Z: 1}, {X: 1}, {X: -1, Y: 0.3, Z: 0.2},
	}
	for _, dir := range dirs {
		q := QLookRotation(dir, Vec3{Y: 1})
		fwd := QRotate(q, Vec3{Z: -1})
		want := V3Normalize(dir)
		if !vecNear(fwd, want, 1e-6) {
			t.Errorf("look rotation for %+v faces %+v", dir, fwd)
		}
	}
}

func TestV3RotateTowardBounded(t *testing.T) {
	cur := Vec3{Z: -1}
	want := Vec3{X: 1}

	step := V3RotateToward(cur, want, 0.2)
	angle := math.Acos(V3Dot(V3Normalize(cur), V3Normalize(step)))
	if angle > 0.2+1e-6 {
		t.Fatalf("rotation step %v exceeds bound", angle)
	}
	if math.Abs(V3Mag(step)-1) > 1e-9 {
		t.Fatalf("rotation changed magnitude: %v", V3Mag(step))
	}

	full := V3RotateToward(cur, want, math.Pi)
	if !vecNear(full, V3Normalize(want), 1e-6) {
		t.Fatalf("oversized step = %+v, want %+v", full, want)
	}
}
