package showcase

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ScrollDuration is how long a page change takes, in seconds.
const ScrollDuration float32 = 0.45

// Pager snaps a vertical stack of full-height pages. Page changes animate
// the scroll offset with a tween; the pager never rests between pages.
//
// Call Update(dt) each tick.
type Pager struct {
	count  int
	pageH  float64
	page   int
	offset float64
	tween  *gween.Tween
	ease   ease.TweenFunc
}

// NewPager returns a pager resting on start, clamped to [0, count).
func NewPager(count int, pageH float64, start int) *Pager {
	count = max(count, 1)
	start = min(max(start, 0), count-1)
	return &Pager{
		count:  count,
		pageH:  pageH,
		page:   start,
		offset: float64(start) * pageH,
		ease:   ease.InOutCubic,
	}
}

// Page returns the target page: the one being scrolled to, or the one at
// rest.
func (p *Pager) Page() int { return p.page }

// Count returns the number of pages.
func (p *Pager) Count() int { return p.count }

// Offset returns the current scroll offset in pixels.
func (p *Pager) Offset() float64 { return p.offset }

// Scrolling reports whether a page change is in progress.
func (p *Pager) Scrolling() bool { return p.tween != nil }

// GoTo starts scrolling to page. It returns false when page is out of
// range or already the target.
func (p *Pager) GoTo(page int) bool {
	if page < 0 || page >= p.count || page == p.page {
		return false
	}
	p.page = page
	p.tween = gween.New(float32(p.offset), float32(float64(page)*p.pageH), ScrollDuration, p.ease)
	return true
}

// Next scrolls one page down.
func (p *Pager) Next() bool { return p.GoTo(p.page + 1) }

// Prev scrolls one page up.
func (p *Pager) Prev() bool { return p.GoTo(p.page - 1) }

// Update advances the scroll animation by dt seconds.
func (p *Pager) Update(dt float32) {
	if p.tween == nil {
		return
	}
	val, done := p.tween.Update(dt)
	p.offset = float64(val)
	if done {
		p.offset = float64(p.page) * p.pageH
		p.tween = nil
	}
}

// PageY returns the on-screen y of the top of page at the current offset.
func (p *Pager) PageY(page int) float64 {
	return float64(page)*p.pageH - p.offset
}

// Visible reports whether any part of page is on screen.
func (p *Pager) Visible(page int) bool {
	y := p.PageY(page)
	return y < p.pageH && y+p.pageH > 0
}
