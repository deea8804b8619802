package showcase

import (
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"page-2", "page-2"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.in)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnpremultiply(t *testing.T) {
	pixels := []byte{
		255, 0, 0, 255, // opaque red
		64, 32, 0, 128, // half-transparent, premultiplied
		0, 0, 0, 0, // transparent
	}
	img := unpremultiply(pixels, 3, 1)
	want := []byte{
		255, 0, 0, 255,
		127, 63, 0, 128,
		0, 0, 0, 0,
	}
	for i := range want {
		if img.Pix[i] != want[i] {
			t.Fatalf("Pix = %v, want %v", img.Pix, want)
		}
	}
}

func TestScreenshotterWrite(t *testing.T) {
	dir := t.TempDir()
	s := newScreenshotter(dir, NewLogger(io.Discard, false))
	s.now = func() time.Time { return time.Date(2024, 3, 1, 12, 30, 5, 0, time.UTC) }
	s.Queue("first page")
	s.Queue("")
	if s.Pending() != 2 {
		t.Fatalf("Pending = %d, want 2", s.Pending())
	}

	s.write(unpremultiply([]byte{10, 20, 30, 255}, 1, 1))

	want := []string{
		filepath.Join(dir, "20240301_123005_first_page.png"),
		filepath.Join(dir, "20240301_123005_unlabeled.png"),
	}
	if len(s.written) != len(want) {
		t.Fatalf("written = %v, want %v", s.written, want)
	}
	for i, path := range want {
		if s.written[i] != path {
			t.Errorf("written[%d] = %s, want %s", i, s.written[i], path)
		}
		f, err := os.Open(path)
		if err != nil {
			t.Fatal(err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
		r, g, b, _ := img.At(0, 0).RGBA()
		if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
			t.Errorf("pixel = %d,%d,%d, want 10,20,30", r>>8, g>>8, b>>8)
		}
	}
}

func TestScreenshotDirDefault(t *testing.T) {
	s := newScreenshotter("", NewLogger(io.Discard, false))
	if s.dir != "screenshots" {
		t.Errorf("dir = %q, want screenshots", s.dir)
	}
}
