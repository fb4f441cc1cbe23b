package board

import "testing"

func TestBitboardSetClearIsSet(t *testing.T) {
	var bb Bitboard
	bb = bb.Set(E4)
	if !bb.IsSet(E4) {
		t.Errorf("expected E4 to be set")
	}
	bb = bb.Clear(E4)
	if bb.IsSet(E4) {
		t.Errorf("expected E4 to be cleared")
	}
}

func TestBitboardPopCount(t *testing.T) {
	bb := SquareBB(A1) | SquareBB(H8) | SquareBB(D4)
	if got := bb.PopCount(); got != 3 {
		t.Errorf("PopCount() = %d, want 3", got)
	}
	if Empty.PopCount() != 0 {
		t.Errorf("PopCount() of empty board should be 0")
	}
}

func TestBitboardLSBMSB(t *testing.T) {
	bb := SquareBB(C3) | SquareBB(F6)
	if got := bb.LSB(); got != C3 {
		t.Errorf("LSB() = %v, want C3", got)
	}
	if got := bb.MSB(); got != F6 {
		t.Errorf("MSB() = %v, want F6", got)
	}
	if Empty.LSB() != NoSquare {
		t.Errorf("LSB() of empty board should be NoSquare")
	}
}

func TestBitboardPopLSBConsumesCopy(t *testing.T) {
	original := SquareBB(A1) | SquareBB(B2)
	working := original
	sq := working.PopLSB()
	if sq != A1 {
		t.Errorf("PopLSB() = %v, want A1", sq)
	}
	if working.PopCount() != 1 {
		t.Errorf("working board should have 1 bit left, got %d", working.PopCount())
	}
	if original.PopCount() != 2 {
		t.Errorf("PopLSB should not mutate the original value, got popcount %d", original.PopCount())
	}
}

func TestBitboardForEachAscending(t *testing.T) {
	bb := SquareBB(H8) | SquareBB(A1) | SquareBB(D4)
	var seen []Square
	bb.ForEach(func(sq Square) { seen = append(seen, sq) })

	want := []Square{A1, D4, H8}
	if len(seen) != len(want) {
		t.Fatalf("ForEach visited %d squares, want %d", len(seen), len(want))
	}
	for i, sq := range want {
		if seen[i] != sq {
			t.Errorf("ForEach()[%d] = %v, want %v", i, seen[i], sq)
		}
	}
}

func TestBitboardShiftsRespectFileWrap(t *testing.T) {
	// An h-file bitboard shifted east should not wrap to the a file, and an
	// a-file bitboard shifted west should not wrap to the h file.
	hFile := FileH
	if hFile.East()&FileA != 0 {
		t.Errorf("East() of file-H bitboard should not wrap onto file A")
	}
	aFile := FileA
	if aFile.West()&FileH != 0 {
		t.Errorf("West() of file-A bitboard should not wrap onto file H")
	}
}

func TestBitboardDisjointMasks(t *testing.T) {
	union := Empty
	for _, f := range FileMask {
		if union&f != 0 {
			t.Errorf("file masks should be pairwise disjoint")
		}
		union |= f
	}
	if union != Universe {
		t.Errorf("union of all file masks should equal Universe")
	}

	union = Empty
	for _, r := range RankMask {
		if union&r != 0 {
			t.Errorf("rank masks should be pairwise disjoint")
		}
		union |= r
	}
	if union != Universe {
		t.Errorf("union of all rank masks should equal Universe")
	}
}
