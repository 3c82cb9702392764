package interaction

import (
	"github.com/park285/dragchess/internal/domain"
	"go.uber.org/zap"
)

// Point is a pointer position in screen units.
type Point struct {
	X int
	Y int
}

// Layout is the board geometry the renderer used for the current frame.
// It travels with every pointer event instead of living in shared fields.
type Layout struct {
	OriginX  int
	OriginY  int
	CellSize int
}

// ToBoardCoords maps a screen point to a board square. Row 0 is drawn at
// the bottom. Results are not clamped, so points outside the board give
// off-board squares.
func ToBoardCoords(l Layout, p Point) domain.Square {
	if l.CellSize <= 0 {
		return domain.Square{Col: -1, Row: -1}
	}
	col := floorDiv(p.X-l.OriginX, l.CellSize)
	row := domain.BoardSize - 1 - floorDiv(p.Y-l.OriginY, l.CellSize)
	return domain.Square{Col: col, Row: row}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// SquareCenter is the point in the middle of sq under l. It inverts
// ToBoardCoords for cells of two units or more.
func SquareCenter(l Layout, sq domain.Square) Point {
	return Point{
		X: l.OriginX + sq.Col*l.CellSize + l.CellSize/2,
		Y: l.OriginY + (domain.BoardSize-1-sq.Row)*l.CellSize + l.CellSize/2,
	}
}

// DragSession tracks one pick-up-to-drop gesture.
type DragSession struct {
	Origin     domain.Square
	Piece      *domain.Piece
	Pointer    Point
	HasPointer bool
}

// Controller turns press/drag/release events into at most one MovePiece
// call per gesture. Misclicks of any kind are absorbed silently.
type Controller struct {
	delegate domain.BoardDelegate
	session  *DragSession
	logger   *zap.Logger
}

// NewController returns an idle controller that sends moves to d. A nil
// logger is replaced by a no-op one.
func NewController(d domain.BoardDelegate, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{delegate: d, logger: logger}
}

// Press starts a drag when p lands on an occupied square.
func (c *Controller) Press(l Layout, p Point) {
	if c.session != nil {
		c.logger.Debug("drag_stale_session_dropped", zap.String("origin", c.session.Origin.String()))
		c.session = nil
	}
	sq := ToBoardCoords(l, p)
	piece := c.delegate.PieceAt(sq.Col, sq.Row)
	if piece == nil {
		return
	}
	c.session = &DragSession{Origin: sq, Piece: piece, Pointer: p, HasPointer: true}
	c.logger.Debug("drag_start", zap.String("origin", sq.String()), zap.String("piece", piece.Kind.String()))
}

// Drag records the pointer position for visual feedback only.
func (c *Controller) Drag(_ Layout, p Point) {
	if c.session == nil {
		return
	}
	c.session.Pointer = p
	c.session.HasPointer = true
}

// Release ends the gesture, asking the delegate to move the carried piece
// when the drop square differs from the origin.
func (c *Controller) Release(l Layout, p Point) {
	s := c.session
	if s == nil {
		return
	}
	c.session = nil
	dest := ToBoardCoords(l, p)
	if dest == s.Origin {
		c.logger.Debug("drag_abort", zap.String("origin", s.Origin.String()))
		return
	}
	c.logger.Debug("drag_release", zap.String("origin", s.Origin.String()), zap.String("dest", dest.String()))
	c.delegate.MovePiece(s.Origin.Col, s.Origin.Row, dest.Col, dest.Row)
}

// Cancel drops any open gesture without touching the board.
func (c *Controller) Cancel() {
	c.session = nil
}

// Session returns a copy of the open gesture, if any.
func (c *Controller) Session() (DragSession, bool) {
	if c.session == nil {
		return DragSession{}, false
	}
	return *c.session, true
}

// Dragging reports whether a gesture is open.
func (c *Controller) Dragging() bool { return c.session != nil }
