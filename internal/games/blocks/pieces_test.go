package blocks

import "testing"

func countCells(f Frame) int {
	n := 0
	for _, v := range f {
		if v {
			n++
		}
	}
	return n
}

func TestDefaultCatalogShapes(t *testing.T) {
	c := DefaultCatalog()

	wantFrames := map[string]int{"I": 2, "O": 1, "T": 4, "S": 2, "Z": 2, "J": 4, "L": 4}
	if c.TypeCount() != len(wantFrames) {
		t.Fatalf("TypeCount() = %d, expected %d", c.TypeCount(), len(wantFrames))
	}

	for kind := 0; kind < c.TypeCount(); kind++ {
		p := c.Piece(kind)
		if got := len(c.Frames(kind)); got != wantFrames[p.Name] {
			t.Errorf("%s has %d frames, expected %d", p.Name, got, wantFrames[p.Name])
		}
		for i, f := range p.Frames {
			if countCells(f) != 4 {
				t.Errorf("%s frame %d has %d cells, expected 4", p.Name, i, countCells(f))
			}
		}
	}
}

func TestSpawnFramesOccupyTopMaskRow(t *testing.T) {
	// Row 0 is painted at the spawn row, so every piece must be fully
	// visible when it appears.
	c := DefaultCatalog()
	for kind := 0; kind < c.TypeCount(); kind++ {
		f := c.Frames(kind)[0]
		top := false
		for col := 0; col < FrameSize; col++ {
			top = top || f.At(col, 0)
		}
		if !top {
			t.Errorf("%s spawn frame has an empty first row", c.Piece(kind).Name)
		}
	}
}

func TestMustFrame(t *testing.T) {
	f := mustFrame(".#\n##")
	if !f.At(1, 0) || !f.At(0, 1) || !f.At(1, 1) || f.At(0, 0) {
		t.Errorf("unexpected frame %v", f)
	}

	for _, bad := range []string{"#####", "#\n#\n#\n#\n#", "#x"} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("mustFrame(%q) should panic", bad)
				}
			}()
			mustFrame(bad)
		}()
	}
}

func TestCatalogNames(t *testing.T) {
	names := DefaultCatalog().Names()
	want := []string{"I", "O", "T", "S", "Z", "J", "L"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Names() = %v, expected %v", names, want)
		}
	}
}
