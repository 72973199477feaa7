// Package visibility reports when a row scrolls into view and turns that into
// page-load requests.
package visibility

// Observer notifies when an observed row becomes visible. Implementations invoke
// the callback once per transition from hidden to visible, including immediately
// when the row is already visible at Observe time.
type Observer interface {
	Observe(row int, onVisible func())
	Disconnect()
}

// Viewport is an Observer over a vertically scrolled list: rows [top, top+height)
// are on screen.
type Viewport struct {
	top       int
	height    int
	target    int
	observing bool
	visible   bool
	onVisible func()
}

// NewViewport returns a Viewport showing nothing until SetRange is called.
func NewViewport() *Viewport {
	return &Viewport{}
}

// Observe replaces any current observation with row.
func (v *Viewport) Observe(row int, onVisible func()) {
	v.target = row
	v.onVisible = onVisible
	v.observing = true
	v.visible = false
	v.check()
}

// Disconnect stops the current observation.
func (v *Viewport) Disconnect() {
	v.observing = false
	v.visible = false
	v.onVisible = nil
}

// SetRange records the rows currently on screen.
func (v *Viewport) SetRange(top, height int) {
	if height < 0 {
		height = 0
	}
	v.top = top
	v.height = height
	v.check()
}

// Contains reports whether row is on screen.
func (v *Viewport) Contains(row int) bool {
	return row >= v.top && row < v.top+v.height
}

// Observing returns the observed row, if any.
func (v *Viewport) Observing() (int, bool) {
	return v.target, v.observing
}

func (v *Viewport) check() {
	if !v.observing {
		return
	}
	if !v.Contains(v.target) {
		v.visible = false
		return
	}
	if v.visible {
		return
	}
	v.visible = true
	if fn := v.onVisible; fn != nil {
		fn()
	}
}

// Trigger keeps an Observer pointed at the last materialized row and calls load
// when that row enters view.
type Trigger struct {
	observer Observer
	load     func()
}

// NewTrigger wires load to observer.
func NewTrigger(observer Observer, load func()) *Trigger {
	return &Trigger{observer: observer, load: load}
}

// Attach drops the previous observation and, unless a load is in flight or there
// are no rows, observes lastRow. Call it whenever the materialized rows change.
func (t *Trigger) Attach(lastRow int, loading bool) {
	t.observer.Disconnect()
	if loading || lastRow < 0 {
		return
	}
	t.observer.Observe(lastRow, t.load)
}

// Detach drops the current observation.
func (t *Trigger) Detach() {
	t.observer.Disconnect()
}
