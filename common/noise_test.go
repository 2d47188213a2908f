package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestHashRange(t *testing.T) {
	for i := -50; i < 50; i++ {
		for j := -50; j < 50; j += 7 {
			h := Hash2(float64(i), float64(j))
			if h < 0 || h >= 1 {
				t.Fatalf("Hash2(%d, %d) = %v out of [0, 1)", i, j, h)
			}
			h3 := Hash31(mgl64.Vec3{float64(i), float64(j), float64(i - j)})
			if h3 < 0 || h3 >= 1 {
				t.Fatalf("Hash31(%d, %d, %d) = %v out of [0, 1)", i, j, i-j, h3)
			}
		}
	}
}

func TestValueNoiseMatchesLatticeCorners(t *testing.T) {
	for _, p := range [][2]float64{{0, 0}, {3, -2}, {-7, 11}} {
		if got, want := ValueNoise(p[0], p[1]), Hash2(p[0], p[1]); got != want {
			t.Errorf("ValueNoise at lattice point %v = %v, want %v", p, got, want)
		}
	}
}

func TestFBMDeterministicAndBounded(t *testing.T) {
	for i := 0; i < 200; i++ {
		x := float64(i)*0.37 - 20
		y := float64(i)*-0.53 + 11
		a := FBM(x, y, 1.5)
		b := FBM(x, y, 1.5)
		if a != b {
			t.Fatalf("FBM not deterministic at (%v, %v): %v vs %v", x, y, a, b)
		}
		if a < 0 || a >= 1 {
			t.Fatalf("FBM(%v, %v) = %v out of [0, 1)", x, y, a)
		}
	}
}
