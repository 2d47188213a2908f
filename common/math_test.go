package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestSmoothstep(t *testing.T) {
	tests := []struct {
		name            string
		edge0, edge1, x float64
		expected        float64
	}{
		{"below rising edge", 0, 1, -1, 0},
		{"above rising edge", 0, 1, 2, 1},
		{"rising midpoint", 0, 1, 0.5, 0.5},
		{"falling edges start", 1, 0, 0, 1},
		{"falling edges end", 1, 0, 1, 0},
		{"falling midpoint", 14, 11, 12.5, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Smoothstep(tt.edge0, tt.edge1, tt.x)
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Smoothstep(%v, %v, %v) = %v, want %v", tt.edge0, tt.edge1, tt.x, got, tt.expected)
			}
		})
	}
}

func TestFractAndMod(t *testing.T) {
	if got := Fract(-0.25); math.Abs(got-0.75) > 1e-12 {
		t.Errorf("Fract(-0.25) = %v, want 0.75", got)
	}
	if got := Fract(3.5); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Fract(3.5) = %v, want 0.5", got)
	}
	if got := Mod(-0.1, 1); math.Abs(got-0.9) > 1e-12 {
		t.Errorf("Mod(-0.1, 1) = %v, want 0.9", got)
	}
	if got := Mod(1.3, 1); math.Abs(got-0.3) > 1e-12 {
		t.Errorf("Mod(1.3, 1) = %v, want 0.3", got)
	}
}

func TestClampIsIdempotent(t *testing.T) {
	for _, x := range []float64{-100, 0.05, 0.1, 1.5, 3.04, 1e9} {
		once := Clamp(x, 0.1, math.Pi-0.1)
		twice := Clamp(once, 0.1, math.Pi-0.1)
		if once != twice {
			t.Errorf("Clamp not idempotent for %v: %v then %v", x, once, twice)
		}
	}
}

func TestSphericalToCartesian(t *testing.T) {
	tests := []struct {
		name               string
		radius, theta, phi float64
		expected           mgl64.Vec3
	}{
		{"equator theta 0", 25, 0, math.Pi / 2, mgl64.Vec3{25, 0, 0}},
		{"equator quarter turn", 10, math.Pi / 2, math.Pi / 2, mgl64.Vec3{0, 0, 10}},
		{"north pole", 5, 1.2, 0, mgl64.Vec3{0, 5, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SphericalToCartesian(tt.radius, tt.theta, tt.phi)
			if !got.ApproxEqualThreshold(tt.expected, 1e-9) {
				t.Errorf("SphericalToCartesian = %v, want %v", got, tt.expected)
			}
		})
	}
}
