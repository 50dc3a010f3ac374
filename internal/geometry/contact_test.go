package geometry

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

func mustBox(t *testing.T, hx, hy, hz float32) Shape {
	t.Helper()
	s, err := NewBox(rl.Vector3{X: hx, Y: hy, Z: hz})
	if err != nil {
		t.Fatalf("NewBox failed: %v", err)
	}
	return s
}

// groundQuad is a 10x10 quad in the XZ plane at y = 0.
func groundQuad(t *testing.T) Shape {
	t.Helper()
	mesh, err := NewTriangleMesh(MeshData{
		Positions: []rl.Vector3{
			{X: -5, Z: -5}, {X: 5, Z: -5}, {X: 5, Z: 5}, {X: -5, Z: 5},
		},
		Indices: [][3]uint32{{0, 2, 1}, {0, 3, 2}},
	})
	if err != nil {
		t.Fatalf("NewTriangleMesh failed: %v", err)
	}
	s, err := NewMeshShape(mesh)
	if err != nil {
		t.Fatalf("NewMeshShape failed: %v", err)
	}
	return s
}

func TestBoxBoxContact(t *testing.T) {
	cube := mustBox(t, 0.5, 0.5, 0.5)

	tests := []struct {
		name       string
		posB       rl.Vector3
		wantOK     bool
		wantNormal rl.Vector3
		wantDist   float32
	}{
		{"overlap along +X", rl.Vector3{X: 0.8}, true, rl.Vector3{X: 1}, -0.2},
		{"overlap along -Y", rl.Vector3{Y: -0.7}, true, rl.Vector3{Y: -1}, -0.3},
		{"touching faces", rl.Vector3{Z: 1}, true, rl.Vector3{Z: 1}, 0},
		{"separated", rl.Vector3{X: 1.5}, false, rl.Vector3{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok, err := ContactBetween(cube, NewTransform(rl.Vector3{}), cube, NewTransform(tt.posB), 0)
			if err != nil {
				t.Fatalf("ContactBetween failed: %v", err)
			}
			if ok != tt.wantOK {
				t.Fatalf("Expected ok = %v, got %v (contact %+v)", tt.wantOK, ok, c)
			}
			if !ok {
				return
			}
			if !approxVec(c.Normal, tt.wantNormal) {
				t.Errorf("Expected normal %v, got %v", tt.wantNormal, c.Normal)
			}
			if !approx(c.Distance, tt.wantDist) {
				t.Errorf("Expected distance %v, got %v", tt.wantDist, c.Distance)
			}
		})
	}
}

func TestBoxBoxContactTolerance(t *testing.T) {
	cube := mustBox(t, 0.5, 0.5, 0.5)
	ta := NewTransform(rl.Vector3{})
	tb := NewTransform(rl.Vector3{X: 1.05})

	if _, ok, _ := ContactBetween(cube, ta, cube, tb, 0); ok {
		t.Error("Expected no contact at zero tolerance for a 0.05 gap")
	}
	c, ok, err := ContactBetween(cube, ta, cube, tb, 0.1)
	if err != nil || !ok {
		t.Fatalf("Expected contact within tolerance, got ok=%v err=%v", ok, err)
	}
	if !approx(c.Distance, 0.05) {
		t.Errorf("Expected positive distance 0.05, got %v", c.Distance)
	}
}

func TestRotatedBoxContact(t *testing.T) {
	cube := mustBox(t, 0.5, 0.5, 0.5)
	ta := NewTransform(rl.Vector3{})

	near := NewTransformEuler(rl.Vector3{X: 1.2}, rl.Vector3{Y: 45})
	c, ok, err := ContactBetween(cube, ta, cube, near, 0)
	if err != nil || !ok {
		t.Fatalf("Expected rotated cube at x=1.2 to touch, got ok=%v err=%v", ok, err)
	}
	if !approxVec(c.Normal, rl.Vector3{X: 1}) {
		t.Errorf("Expected normal +X, got %v", c.Normal)
	}
	want := 1.2 - 0.5 - 0.5*math32.Sqrt(2)
	if !approx(c.Distance, want) {
		t.Errorf("Expected distance %v, got %v", want, c.Distance)
	}

	far := NewTransformEuler(rl.Vector3{X: 1.3}, rl.Vector3{Y: 45})
	if _, ok, _ := ContactBetween(cube, ta, cube, far, 0); ok {
		t.Error("Expected rotated cube at x=1.3 to be separated")
	}
}

func TestBoxMeshContact(t *testing.T) {
	cube := mustBox(t, 0.5, 0.5, 0.5)
	ground := groundQuad(t)
	boxAt := NewTransform(rl.Vector3{X: 1, Y: 0.4, Z: -2})
	groundAt := NewTransform(rl.Vector3{})

	c, ok, err := ContactBetween(cube, boxAt, ground, groundAt, 0)
	if err != nil || !ok {
		t.Fatalf("Expected box sunk into ground to collide, got ok=%v err=%v", ok, err)
	}
	if !approxVec(c.Normal, rl.Vector3{Y: -1}) {
		t.Errorf("Expected normal from box toward ground (-Y), got %v", c.Normal)
	}
	if !approx(c.Distance, -0.1) {
		t.Errorf("Expected distance -0.1, got %v", c.Distance)
	}

	// Swapping the order flips the normal, the distance stays.
	c2, ok, err := ContactBetween(ground, groundAt, cube, boxAt, 0)
	if err != nil || !ok {
		t.Fatalf("Expected swapped query to collide, got ok=%v err=%v", ok, err)
	}
	if !approxVec(c2.Normal, rl.Vector3{Y: 1}) {
		t.Errorf("Expected normal +Y from ground toward box, got %v", c2.Normal)
	}
	if !approx(c2.Distance, c.Distance) {
		t.Errorf("Expected distance %v, got %v", c.Distance, c2.Distance)
	}

	above := NewTransform(rl.Vector3{Y: 2})
	if _, ok, _ := ContactBetween(cube, above, ground, groundAt, 0); ok {
		t.Error("Expected box above ground not to collide")
	}

	offEdge := NewTransform(rl.Vector3{X: 7, Y: 0.4})
	if _, ok, _ := ContactBetween(cube, offEdge, ground, groundAt, 0); ok {
		t.Error("Expected box beside the quad not to collide")
	}
}

func TestBoxMeshContactMovedMesh(t *testing.T) {
	cube := mustBox(t, 0.5, 0.5, 0.5)
	ground := groundQuad(t)

	// Ground lifted to y = 10 and flipped upside down: the box below it still
	// gets pushed away along the world axis.
	groundAt := NewTransformEuler(rl.Vector3{Y: 10}, rl.Vector3{X: 180})
	boxAt := NewTransform(rl.Vector3{Y: 9.7})

	c, ok, err := ContactBetween(cube, boxAt, ground, groundAt, 0)
	if err != nil || !ok {
		t.Fatalf("Expected contact, got ok=%v err=%v", ok, err)
	}
	if !approxVec(c.Normal, rl.Vector3{Y: 1}) {
		t.Errorf("Expected normal +Y, got %v", c.Normal)
	}
	if !approx(c.Distance, -0.2) {
		t.Errorf("Expected distance -0.2, got %v", c.Distance)
	}
}

func TestMeshMeshUnsupported(t *testing.T) {
	ground := groundQuad(t)
	tr := NewTransform(rl.Vector3{})

	_, ok, err := ContactBetween(ground, tr, ground, tr, 0)
	if !errors.Is(err, ErrUnsupportedPair) {
		t.Errorf("Expected ErrUnsupportedPair, got %v", err)
	}
	if ok {
		t.Error("Expected no contact for unsupported pair")
	}
}

func TestContactDegenerateTransform(t *testing.T) {
	cube := mustBox(t, 0.5, 0.5, 0.5)
	bad := NewTransform(rl.Vector3{X: math32.NaN()})

	_, ok, err := ContactBetween(cube, bad, cube, NewTransform(rl.Vector3{}), 0)
	if !errors.Is(err, ErrDegenerate) || ok {
		t.Errorf("Expected ErrDegenerate and no contact, got ok=%v err=%v", ok, err)
	}

	_, _, err = ContactBetween(Shape{}, NewTransform(rl.Vector3{}), cube, NewTransform(rl.Vector3{}), 0)
	if !errors.Is(err, ErrDegenerate) {
		t.Errorf("Expected ErrDegenerate for zero Shape, got %v", err)
	}
}

func TestBoxAABBRotated(t *testing.T) {
	box := mustBox(t, 1, 0.5, 0.5)
	aabb := box.ComputeAABB(NewTransformEuler(rl.Vector3{X: 3}, rl.Vector3{Z: 90}))

	want := AABB{Min: rl.Vector3{X: 2.5, Y: -1, Z: -0.5}, Max: rl.Vector3{X: 3.5, Y: 1, Z: 0.5}}
	if !approxVec(aabb.Min, want.Min) || !approxVec(aabb.Max, want.Max) {
		t.Errorf("Expected %v, got %v", want, aabb)
	}
}

func TestNewBoxRejectsNegative(t *testing.T) {
	if _, err := NewBox(rl.Vector3{X: -1, Y: 1, Z: 1}); !errors.Is(err, ErrDegenerate) {
		t.Errorf("Expected ErrDegenerate, got %v", err)
	}
}

func TestZeroShapeComputeAABBPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic on zero Shape")
		}
	}()
	Shape{}.ComputeAABB(NewTransform(rl.Vector3{}))
}
