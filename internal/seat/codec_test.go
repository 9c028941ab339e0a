package seat

import (
	"testing"

	"sahelbus/internal/domain"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for row := 0; row < 12; row++ {
		for column := 0; column < 4; column++ {
			label, err := Encode(row, column)
			if err != nil {
				t.Fatalf("encode (%d,%d): %v", row, column, err)
			}
			r, c, err := Decode(label)
			if err != nil {
				t.Fatalf("decode %q: %v", label, err)
			}
			if r != row || c != column {
				t.Fatalf("round trip %q: got (%d,%d) want (%d,%d)", label, r, c, row, column)
			}
		}
	}
}

func TestEncodeKnownLabels(t *testing.T) {
	cases := []struct {
		row, column int
		want        string
	}{
		{0, 0, "1A"},
		{0, 1, "1B"},
		{6, 1, "7B"},
		{11, 3, "12D"},
	}
	for _, tc := range cases {
		got, err := Encode(tc.row, tc.column)
		if err != nil {
			t.Fatalf("encode (%d,%d): %v", tc.row, tc.column, err)
		}
		if got != tc.want {
			t.Fatalf("encode (%d,%d): got %q want %q", tc.row, tc.column, got, tc.want)
		}
	}
}

func TestEncodeOutOfRange(t *testing.T) {
	for _, pos := range [][2]int{{-1, 0}, {0, -1}, {0, 26}, {-3, 30}} {
		if _, err := Encode(pos[0], pos[1]); !domain.IsOutOfRange(err) {
			t.Fatalf("encode (%d,%d): expected out-of-range, got %v", pos[0], pos[1], err)
		}
	}
}

func TestDecodeMalformed(t *testing.T) {
	for _, label := range []string{"", "A", "7", "A7", "1AB", "0A", "-1A", "+3A", "1 A", "siege"} {
		if _, _, err := Decode(label); !domain.IsMalformedLabel(err) {
			t.Fatalf("decode %q: expected malformed label, got %v", label, err)
		}
	}
}

func TestNormalize(t *testing.T) {
	got, err := Normalize(" 3a ")
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if got != "3A" {
		t.Fatalf("normalize: got %q want %q", got, "3A")
	}
	if _, err := Normalize("Z9"); !domain.IsMalformedLabel(err) {
		t.Fatalf("normalize Z9: expected malformed label, got %v", err)
	}
}
