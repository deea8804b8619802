package showcase

import (
	"strings"

	"github.com/phanxgames/starfield"
)

// bannerColumns is the wrap width for banner body text, in characters.
const bannerColumns = 72

var bannerShadow = starfield.Color{A: 0.8}

// drawBanner paints a centered title and wrapped body text around (cx, cy).
func drawBanner(s starfield.Surface, b *banner, cx, cy, width float64) {
	cols := bannerColumns
	if narrow := int(width / 11); narrow < cols {
		cols = max(narrow, 16)
	}
	lines := wrapText(b.body, cols)
	lineH := bodyFont.Size * 1.8
	bodyTop := cy - 10

	titleY := cy - 40
	s.Text(b.title, cx+2, titleY+2, titleFont, starfield.TextAlignCenter, starfield.BaselineBottom, bannerShadow)
	s.Text(b.title, cx, titleY, titleFont, starfield.TextAlignCenter, starfield.BaselineBottom, b.color)

	body := starfield.ColorWhite.WithAlpha(0.9)
	for i, ln := range lines {
		y := bodyTop + float64(i)*lineH
		s.Text(ln, cx, y, bodyFont, starfield.TextAlignCenter, starfield.BaselineTop, body)
	}
}

// wrapText breaks s on spaces into lines of at most cols runes. Words
// longer than cols get a line of their own.
func wrapText(s string, cols int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var (
		lines []string
		cur   strings.Builder
		n     int
	)
	for _, w := range words {
		wl := len([]rune(w))
		if n > 0 && n+1+wl > cols {
			lines = append(lines, cur.String())
			cur.Reset()
			n = 0
		}
		if n > 0 {
			cur.WriteByte(' ')
			n++
		}
		cur.WriteString(w)
		n += wl
	}
	return append(lines, cur.String())
}

// bounceOffset returns the scroll indicator's vertical offset at time t
// seconds. The bounce repeats every two seconds: up 10px at 40% of the
// cycle, up 5px at 60%, at rest otherwise.
func bounceOffset(t float64) float64 {
	const period = 2.0
	p := t/period - float64(int(t/period))
	if p < 0 {
		p++
	}
	keys := [...]struct{ at, y float64 }{
		{0, 0}, {0.2, 0}, {0.4, -10}, {0.5, 0}, {0.6, -5}, {0.8, 0}, {1, 0},
	}
	for i := 1; i < len(keys); i++ {
		if p <= keys[i].at {
			k0, k1 := keys[i-1], keys[i]
			f := (p - k0.at) / (k1.at - k0.at)
			return k0.y + (k1.y-k0.y)*f
		}
	}
	return 0
}
