package creature

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/critters/vecmath"
)

func testParams() Params {
	return Params{
		HeadPos:        r2.Vec{X: 100, Y: 200},
		HeadSize:       30,
		Phase:          0.7,
		TailLength:     10,
		MaxSizeRatio:   0.8,
		SegmentSpacing: 20,
		TailAmplitude:  100,
		TailWavelength: 8,
		FootReach:      2.5,
		FootAngle:      math.Pi / 8,
	}
}

func TestNewRejectsMalformed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Params)
		want   error
	}{
		{"zero head", func(p *Params) { p.HeadSize = 0 }, ErrInvalidSize},
		{"negative head", func(p *Params) { p.HeadSize = -4 }, ErrInvalidSize},
		{"zero ratio", func(p *Params) { p.MaxSizeRatio = 0 }, ErrInvalidSize},
		{"zero reach", func(p *Params) { p.FootReach = 0 }, ErrInvalidSize},
		{"NaN head", func(p *Params) { p.HeadSize = math.NaN() }, ErrInvalidSize},
		{"infinite head", func(p *Params) { p.HeadSize = math.Inf(1) }, ErrInvalidSize},
		{"NaN ratio", func(p *Params) { p.MaxSizeRatio = math.NaN() }, ErrInvalidSize},
		{"NaN reach", func(p *Params) { p.FootReach = math.NaN() }, ErrInvalidSize},
		{"zero wavelength", func(p *Params) { p.TailWavelength = 0 }, ErrInvalidSize},
		{"NaN wavelength", func(p *Params) { p.TailWavelength = math.NaN() }, ErrInvalidSize},
		{"NaN spacing", func(p *Params) { p.SegmentSpacing = math.NaN() }, ErrInvalidSize},
		{"infinite amplitude", func(p *Params) { p.TailAmplitude = math.Inf(-1) }, ErrInvalidSize},
		{"NaN foot angle", func(p *Params) { p.FootAngle = math.NaN() }, ErrInvalidSize},
		{"empty tail", func(p *Params) { p.TailLength = 0 }, ErrEmptyTail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParams()
			tt.mutate(&p)
			c, err := New(1, p)
			if !errors.Is(err, tt.want) {
				t.Errorf("New error = %v, want %v", err, tt.want)
			}
			if c != nil {
				t.Error("expected nil creature on error")
			}
		})
	}
}

func TestNewLayout(t *testing.T) {
	p := testParams()
	c, err := New(3, p)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if c.ID != 3 || c.Head.Pos != p.HeadPos || c.Head.Size != 30 {
		t.Errorf("head = %+v id=%d", c.Head, c.ID)
	}
	if len(c.Tail) != 10 {
		t.Fatalf("tail length = %d, want 10", len(c.Tail))
	}

	for i, seg := range c.Tail {
		want := r2.Vec{
			X: p.HeadPos.X + float64(i)*20,
			Y: p.HeadPos.Y + 100*math.Sin(p.Phase+float64(i)/8),
		}
		if vecmath.Dist(seg.Pos, want) > 1e-9 {
			t.Errorf("segment %d at %v, want %v", i, seg.Pos, want)
		}

		wantFeet := i == 1 || i == 5 || i == 9
		if wantFeet != (len(seg.Feet) > 0) {
			t.Errorf("segment %d has %d feet", i, len(seg.Feet))
			continue
		}
		if !wantFeet {
			continue
		}
		if len(seg.Feet) != 2 {
			t.Fatalf("segment %d has %d feet, want 2", i, len(seg.Feet))
		}
		if seg.Feet[0].Side.Sign()+seg.Feet[1].Side.Sign() != 0 {
			t.Errorf("segment %d feet sides %v, %v not complementary", i, seg.Feet[0].Side, seg.Feet[1].Side)
		}
		for _, f := range seg.Feet {
			if f.Size != seg.Size/2 {
				t.Errorf("foot size %v, want %v", f.Size, seg.Size/2)
			}
			ideal := IdealFootPos(&c.Tail[i], f.Side, p.FootReach, p.FootAngle)
			if vecmath.Dist(f.Pos, ideal) > 1e-9 {
				t.Errorf("foot not created at ideal position")
			}
		}
	}
}

func TestHasFeet(t *testing.T) {
	var got []int
	for i := 0; i < 12; i++ {
		if HasFeet(i) {
			got = append(got, i)
		}
	}
	want := []int{1, 5, 9}
	if len(got) != len(want) {
		t.Fatalf("HasFeet indices = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("HasFeet indices = %v, want %v", got, want)
		}
	}
}

func TestTaperProfile(t *testing.T) {
	const n, maxSize = 10, 24.0
	sizes := make([]float64, n)
	for i := range sizes {
		sizes[i] = Taper(i, n, maxSize)
		if sizes[i] <= 0 || sizes[i] > maxSize {
			t.Fatalf("Taper(%d) = %v out of (0, %v]", i, sizes[i], maxSize)
		}
	}

	// Rises to wide shoulders then narrows toward the tip
	if !(sizes[2] > sizes[0] && sizes[3] > sizes[9]) {
		t.Errorf("sizes do not rise then fall: %v", sizes)
	}
	if math.Abs(sizes[9]-0.3*maxSize) > 1e-9 {
		t.Errorf("tip size = %v, want %v", sizes[9], 0.3*maxSize)
	}
	if math.Abs(sizes[0]-(0.3+0.7*math.Sin(0.3*math.Pi))*maxSize) > 1e-9 {
		t.Errorf("first size = %v", sizes[0])
	}
	for i := 3; i < n-1; i++ {
		if sizes[i+1] > sizes[i] {
			t.Errorf("tail widens at %d: %v -> %v", i, sizes[i], sizes[i+1])
		}
	}
}

func TestTaperSingleSegment(t *testing.T) {
	got := Taper(0, 1, 10)
	if math.IsNaN(got) || got <= 0 {
		t.Errorf("Taper(0, 1, 10) = %v, want positive", got)
	}
}

func TestClone(t *testing.T) {
	c, err := New(1, testParams())
	if err != nil {
		t.Fatal(err)
	}
	cp := c.Clone()
	cp.Tail[1].Feet[0].Pos = r2.Vec{X: -1, Y: -1}
	cp.Tail[0].Pos = r2.Vec{}
	if c.Tail[1].Feet[0].Pos == (r2.Vec{X: -1, Y: -1}) || c.Tail[0].Pos == (r2.Vec{}) {
		t.Error("Clone shares storage with original")
	}
}

func TestRandomColour(t *testing.T) {
	a := RandomColour(rand.New(rand.NewSource(5)))
	b := RandomColour(rand.New(rand.NewSource(5)))
	if a != b {
		t.Errorf("colours differ for same seed: %v vs %v", a, b)
	}
	if a.A != 255 {
		t.Errorf("alpha = %d, want 255", a.A)
	}
	// Brightness is full, so the largest channel is saturated.
	if max(a.R, a.G, a.B) < 250 {
		t.Errorf("colour %v not at full brightness", a)
	}
}

func TestSideString(t *testing.T) {
	if Left.String() != "left" || Right.String() != "right" {
		t.Errorf("Side strings = %q, %q", Left, Right)
	}
}
