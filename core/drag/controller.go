// Package drag turns pointer gestures on a rendered chart into saved label positions.
package drag

import (
	"slices"
	"sync"

	"github.com/huangsam/hotelpulse/internal/contract"
	"github.com/huangsam/hotelpulse/schema"
	"go.uber.org/zap"
)

// State is the drag state of one chart.
type State int

// Drag states.
const (
	Idle State = iota
	Dragging
)

// String returns the state name.
func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Cursor is the pointer feedback shown over a chart.
type Cursor string

// Cursors shown while hovering and dragging.
const (
	DefaultCursor  Cursor = "default"
	GrabCursor     Cursor = "grab"
	GrabbingCursor Cursor = "grabbing"
)

// Deps holds what a controller needs from the outside world.
type Deps struct {
	Renderer contract.Renderer
	Axes     contract.AxisQuerier   // linear fallback
	Inverter contract.PixelInverter // preferred when set
	Store    contract.PositionStore
	Logger   *zap.Logger
}

// Controller is the drag session of one chart. It is created once per chart
// and rebound to fresh labels on every render.
type Controller struct {
	mu          sync.Mutex
	chartID     string
	deps        Deps
	state       State
	index       int
	cursor      Cursor
	annotations []schema.Annotation
}

// NewController creates an idle controller for chartID.
func NewController(chartID string, deps Deps) *Controller {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Inverter == nil {
		if inv, ok := deps.Renderer.(contract.PixelInverter); ok {
			deps.Inverter = inv
		}
	}
	if deps.Axes == nil {
		if aq, ok := deps.Renderer.(contract.AxisQuerier); ok {
			deps.Axes = aq
		}
	}
	return &Controller{chartID: chartID, deps: deps, cursor: DefaultCursor}
}

// ChartID returns the chart this controller is bound to.
func (c *Controller) ChartID() string {
	return c.chartID
}

// Bind replaces the live labels. A drag in progress survives only if its
// index still exists.
func (c *Controller) Bind(annotations []schema.Annotation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.annotations = slices.Clone(annotations)
	if c.state == Dragging && !c.valid(c.index) {
		c.state = Idle
		c.cursor = DefaultCursor
	}
}

// Annotations returns a copy of the live labels.
func (c *Controller) Annotations() []schema.Annotation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.annotations)
}

// State returns the current state and, while dragging, the dragged index.
func (c *Controller) State() (State, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Dragging {
		return Dragging, c.index
	}
	return Idle, -1
}

// Cursor returns the pointer feedback for the current state.
func (c *Controller) Cursor() Cursor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

// Hover shows the grab cursor over a draggable label.
func (c *Controller) Hover(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Idle && c.valid(index) {
		c.cursor = GrabCursor
	}
}

// Unhover restores the default cursor unless a drag is in progress.
func (c *Controller) Unhover() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Idle {
		c.cursor = DefaultCursor
	}
}

// Press starts dragging the label at index. Presses on a missing label are
// ignored and report false.
func (c *Controller) Press(index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid(index) {
		c.deps.Logger.Debug("press ignored", zap.String("chart", c.chartID), zap.Int("index", index))
		return false
	}
	c.state = Dragging
	c.index = index
	c.cursor = GrabbingCursor
	return true
}

// Move relocates the dragged label to the data position under p, redraws the
// labels and saves the override. It reports false when idle or when no axis
// information is available.
func (c *Controller) Move(p Point) (schema.Position, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Dragging {
		return schema.Position{}, false
	}

	x, y, ok := c.toData(p)
	if !ok {
		c.deps.Logger.Debug("no axes for chart", zap.String("chart", c.chartID))
		return schema.Position{}, false
	}

	c.annotations[c.index].X = x
	c.annotations[c.index].Y = y

	if c.deps.Renderer != nil {
		if err := c.deps.Renderer.UpdateAnnotations(c.chartID, slices.Clone(c.annotations)); err != nil {
			c.deps.Logger.Warn("redraw failed", zap.String("chart", c.chartID), zap.Error(err))
		}
	}
	if c.deps.Store != nil {
		if err := c.deps.Store.Save(c.chartID, c.index, x, y); err != nil {
			c.deps.Logger.Warn("save position failed",
				zap.String("chart", c.chartID), zap.Int("index", c.index), zap.Error(err))
		}
	}
	return schema.Position{X: x, Y: y}, true
}

// Release ends the drag.
func (c *Controller) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Idle
	c.cursor = DefaultCursor
}

// Gesture replays press, moves along path and release. It returns the last
// saved position and false if the press was ignored or no move landed.
func (c *Controller) Gesture(index int, path []Point) (schema.Position, bool) {
	if !c.Press(index) {
		return schema.Position{}, false
	}
	defer c.Release()

	var (
		last  schema.Position
		moved bool
	)
	for _, p := range path {
		if pos, ok := c.Move(p); ok {
			last, moved = pos, true
		}
	}
	return last, moved
}

// Screen converts a data position to plot pixels using the chart's current axes.
func (c *Controller) Screen(x, y float64) (Point, bool) {
	if c.deps.Axes == nil {
		return Point{}, false
	}
	xAxis, yAxis, ok := c.deps.Axes.Axes(c.chartID)
	if !ok {
		return Point{}, false
	}
	return DataToScreen(xAxis, yAxis, x, y)
}

func (c *Controller) toData(p Point) (float64, float64, bool) {
	if c.deps.Inverter != nil {
		if x, y, ok := c.deps.Inverter.PixelToData(c.chartID, p.X, p.Y); ok {
			return x, y, true
		}
	}
	if c.deps.Axes == nil {
		return 0, 0, false
	}
	xAxis, yAxis, ok := c.deps.Axes.Axes(c.chartID)
	if !ok {
		return 0, 0, false
	}
	return ScreenToData(xAxis, yAxis, p)
}

func (c *Controller) valid(index int) bool {
	return index >= 0 && index < len(c.annotations)
}
