package math

import (
	m "math"
	"testing"
)

func TestMat4MulComposesTranslationAndScale(t *testing.T) {
	tr := NewMat4Translation(NewVec3(1, 2, 3))
	sc := NewMat4Scale(NewVec3(2, 2, 2))

	// Translation on the left: scale first, then translate.
	world := tr.Mul(sc)
	got := NewVec3(1, 1, 1).Transform(world)
	want := NewVec3(3, 4, 5)
	if !got.Compare(want, K_FLOAT_EPSILON) {
		t.Errorf("translate*scale transform = %+v, want %+v", got, want)
	}

	// Scale on the left: translate first, then scale.
	world = sc.Mul(tr)
	got = NewVec3(1, 1, 1).Transform(world)
	want = NewVec3(4, 6, 8)
	if !got.Compare(want, K_FLOAT_EPSILON) {
		t.Errorf("scale*translate transform = %+v, want %+v", got, want)
	}
}

func TestMat4MulIdentity(t *testing.T) {
	a := NewMat4Translation(NewVec3(5, -1, 2)).Mul(NewMat4Scale(NewVec3(3, 1, 0.5)))
	got := a.Mul(NewMat4Identity())
	if got != a {
		t.Errorf("a*I = %+v, want %+v", got, a)
	}
	got = NewMat4Identity().Mul(a)
	if got != a {
		t.Errorf("I*a = %+v, want %+v", got, a)
	}
}

func TestQuaternionToMat4RotatesAboutZ(t *testing.T) {
	// 90 degrees about +Z: X axis maps to Y.
	half := DegToRad(90) / 2
	q := Quaternion{0, 0, float32(m.Sin(float64(half))), float32(m.Cos(float64(half)))}
	got := NewVec3(1, 0, 0).Transform(q.ToMat4())
	want := NewVec3(0, 1, 0)
	if !got.Compare(want, 1e-6) {
		t.Errorf("rotated X axis = %+v, want %+v", got, want)
	}
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	world := NewMat4Translation(NewVec3(10, 20, 30)).Mul(NewMat4Scale(NewVec3(2, 2, 2)))
	got := NewVec3(0, 0, 1).TransformDirection(world)
	want := NewVec3(0, 0, 2)
	if !got.Compare(want, K_FLOAT_EPSILON) {
		t.Errorf("direction transform = %+v, want %+v", got, want)
	}
}

func TestNormalizeZeroVectorYieldsNaN(t *testing.T) {
	n := NewVec3Zero().Normalize()
	if !m.IsNaN(float64(n.X)) || !m.IsNaN(float64(n.Y)) || !m.IsNaN(float64(n.Z)) {
		t.Errorf("normalize of zero vector = %+v, want NaN components", n)
	}
}

func TestTransposed(t *testing.T) {
	a := NewMat4Translation(NewVec3(1, 2, 3))
	tp := a.Transposed()
	if tp.Data[3] != 1 || tp.Data[7] != 2 || tp.Data[11] != 3 {
		t.Errorf("transposed translation row = %v %v %v, want 1 2 3", tp.Data[3], tp.Data[7], tp.Data[11])
	}
	if a.Transposed().Transposed() != a {
		t.Error("double transpose should round-trip")
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 3); got != 3 {
		t.Errorf("Clamp(5,0,3) = %d, want 3", got)
	}
	if got := Clamp(-1.0, 0.0, 3.0); got != 0.0 {
		t.Errorf("Clamp(-1,0,3) = %f, want 0", got)
	}
	if got := Clamp(2, 0, 3); got != 2 {
		t.Errorf("Clamp(2,0,3) = %d, want 2", got)
	}
}
