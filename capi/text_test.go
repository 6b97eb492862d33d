package capi

import (
	"testing"

	temporalcapi "github.com/wippyai/temporal-capi"
	"github.com/wippyai/temporal-capi/errors"
)

func TestValidateText(t *testing.T) {
	tests := []struct {
		in     string
		offset int
	}{
		{"2024-03-15", -1},
		{"2024-03-15[Europe/Zürich]", -1},
		{"", -1},
		{"2024\xff-03", 4},
		{"\xc3", 0},
		{"ab\xed\xa0\x80", 2}, // surrogate
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			err := ValidateText(tt.in)
			if tt.offset < 0 {
				if err != nil {
					t.Fatal(err)
				}
				return
			}
			st := StatusOf(err)
			if st.Code != ParseFailure || st.Offset != int32(tt.offset) {
				t.Errorf("status = %+v, want parse failure at %d", st, tt.offset)
			}
		})
	}
}

func TestReadText(t *testing.T) {
	mem := temporalcapi.NewSliceMemory(32)
	copy(mem.Bytes()[4:], "P1D")

	if s, err := ReadText(mem, 4, 3); err != nil || s != "P1D" {
		t.Errorf("read = %q, %v", s, err)
	}
	if s, err := ReadText(mem, 0, 0); err != nil || s != "" {
		t.Errorf("empty = %q, %v", s, err)
	}
	if _, err := ReadText(mem, 0, 3); CodeOf(err) != InvalidArgument {
		t.Errorf("null with length: %v", err)
	}
	if _, err := ReadText(mem, 30, 4); CodeOf(err) != InvalidArgument {
		t.Errorf("past end: %v", err)
	}
	mem.Bytes()[10] = 0xfe
	if _, err := ReadText(mem, 8, 4); CodeOf(err) != ParseFailure {
		t.Errorf("invalid utf-8: %v", err)
	}
}

func TestPutTextNegotiation(t *testing.T) {
	const text = "2024-03-15T10:00:00+05:30[+05:30]"
	mem := temporalcapi.NewSliceMemory(128)
	const buf, lenOut = 16, 8

	mem.WriteU32(lenOut, 0xdeadbeef)
	err := PutText(mem, text, buf, uint32(len(text)-1), lenOut)
	st := StatusOf(err)
	if st.Code != BufferTooSmall || st.Required != uint32(len(text)) {
		t.Fatalf("short buffer status = %+v", st)
	}
	if n, _ := mem.ReadU32(lenOut); n != 0 {
		t.Errorf("length output = %d, want 0", n)
	}
	for i, b := range mem.Bytes()[buf : buf+len(text)] {
		if b != 0 {
			t.Fatalf("buffer byte %d written on failure", i)
		}
	}

	if err := PutText(mem, text, buf, st.Required, lenOut); err != nil {
		t.Fatal(err)
	}
	n, _ := mem.ReadU32(lenOut)
	if got := string(mem.Bytes()[buf : buf+n]); got != text {
		t.Errorf("retry = %q", got)
	}
}

func TestPutTextRejects(t *testing.T) {
	mem := temporalcapi.NewSliceMemory(64)
	tests := []struct {
		name string
		err  error
	}{
		{"null length output", PutText(mem, "x", 8, 4, 0)},
		{"null buffer", PutText(mem, "x", 0, 4, 8)},
		{"buffer past end", PutText(mem, "abcd", 62, 4, 8)},
		{"length output past end", PutText(mem, "abcd", 8, 4, 62)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if CodeOf(tt.err) != InvalidArgument {
				t.Errorf("err = %v", tt.err)
			}
		})
	}
	if err := PutText(mem, "", 0, 0, 8); err != nil {
		t.Errorf("empty text into empty buffer: %v", err)
	}
}

func TestCopyText(t *testing.T) {
	dst := make([]byte, 4)
	if n, err := CopyText(dst, "P1Y"); err != nil || n != 3 || string(dst[:n]) != "P1Y" {
		t.Errorf("fit = %d, %v", n, err)
	}
	_, err := CopyText(dst, "PT1.5S")
	if e, ok := errors.As(err); !ok || e.Kind != errors.KindBufferTooSmall || e.Required != 6 {
		t.Errorf("short = %v", err)
	}
}

func TestTextHandles(t *testing.T) {
	s := newTestSurface(t)

	h, err := s.TextNew("Europe/Paris")
	if err != nil {
		t.Fatal(err)
	}
	if n, err := s.TextLen(h); err != nil || n != 12 {
		t.Errorf("len = %d, %v", n, err)
	}
	view, err := s.TextView(h)
	if err != nil {
		t.Fatal(err)
	}
	if str, err := s.TextString(view); err != nil || str != "Europe/Paris" {
		t.Errorf("view = %q, %v", str, err)
	}
	dst := make([]byte, 6)
	if _, err := s.TextCopy(view, dst); CodeOf(err) != BufferTooSmall {
		t.Errorf("short copy: %v", err)
	}

	if err := s.TextRelease(h); err != nil {
		t.Fatal(err)
	}
	if _, err := s.TextString(view); CodeOf(err) != InvalidHandle {
		t.Errorf("view after owner release: %v", err)
	}
	if err := s.TextRelease(h); CodeOf(err) != InvalidHandle {
		t.Errorf("double release: %v", err)
	}
	if s.Live() != 0 {
		t.Errorf("live = %d", s.Live())
	}
}

func TestTextReleaseWrongType(t *testing.T) {
	s := newTestSurface(t)
	tz, err := s.TimeZoneFromIdentifier("UTC")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.TextRelease(tz); CodeOf(err) != InvalidHandle {
		t.Errorf("release zone as text: %v", err)
	}
	if _, err := s.TextString(tz); CodeOf(err) != InvalidHandle {
		t.Errorf("read zone as text: %v", err)
	}
	if err := s.TimeZoneRelease(tz); err != nil {
		t.Fatal(err)
	}
}
