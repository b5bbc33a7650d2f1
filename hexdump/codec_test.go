package hexdump

import (
	"bytes"
	"strings"
	"testing"
)

func TestRoundTripRandomImage(t *testing.T) {
	var image [imageWords]uint16
	seed := uint16(1)
	for i := range image {
		seed = seed*1103 + 7
		image[i] = seed
	}

	for _, e := range []Endianness{Big, Little} {
		var buf bytes.Buffer
		if err := Write(&buf, image, e); err != nil {
			t.Fatalf("write (%v): %v", e, err)
		}
		got, err := Read(&buf, e)
		if err != nil {
			t.Fatalf("read (%v): %v", e, err)
		}
		if got != image {
			t.Fatalf("round trip mismatch for endianness %v", e)
		}
	}
}

// S6 — Hex dump round-trip with duplicates.
func TestS6AllZeroImageCollapsesToSingleMarker(t *testing.T) {
	var image [imageWords]uint16

	var buf bytes.Buffer
	if err := Write(&buf, image, Big); err != nil {
		t.Fatalf("write: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines (row, marker, final row), got %d: %q", len(lines), lines)
	}
	if !strings.HasPrefix(lines[0], "0000:") {
		t.Fatalf("expected first line to be the 0x0000 row, got %q", lines[0])
	}
	if lines[1] != "*" {
		t.Fatalf("expected second line to be the repeat marker, got %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "FFF8:") {
		t.Fatalf("expected final line to be the 0xFFF8 row, got %q", lines[2])
	}

	got, err := Read(&buf, Big)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != image {
		t.Fatalf("expected all-zero image after round trip")
	}
}

func TestWriteLittleEndianSwapsBytes(t *testing.T) {
	var image [imageWords]uint16
	image[0] = 0xABCD

	var buf bytes.Buffer
	if err := Write(&buf, image, Little); err != nil {
		t.Fatalf("write: %v", err)
	}
	firstLine := strings.SplitN(buf.String(), "\n", 2)[0]
	if !strings.Contains(firstLine, "CDAB") {
		t.Fatalf("expected little-endian swapped word CDAB in %q", firstLine)
	}
}

func TestReadRejectsRepeatMarkerWithoutPriorRow(t *testing.T) {
	_, err := Read(strings.NewReader("*\n0008: 0000 0000 0000 0000 0000 0000 0000 0000\n"), Big)
	if err == nil {
		t.Fatal("expected an error for a leading repeat marker")
	}
}

func TestReadRejectsOutOfSequenceOffset(t *testing.T) {
	_, err := Read(strings.NewReader("0000: 0001 0000 0000 0000 0000 0000 0000 0000\n0FFF: 0002 0000 0000 0000 0000 0000 0000 0000\n"), Big)
	if err == nil {
		t.Fatal("expected an error for an out-of-sequence offset with no repeat marker")
	}
}
