package tui

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/park285/dragchess/internal/config"
	"github.com/park285/dragchess/internal/domain"
	"github.com/park285/dragchess/internal/interaction"
	"github.com/park285/dragchess/internal/rules"
	"github.com/rivo/tview"
)

const (
	squareWidth    = 2 // terminal columns per square
	rankLabelWidth = 2
	headerRows     = 1

	// boardRows and boardCols are the inner size needed for header, ranks
	// and the file label row.
	boardRows = headerRows + domain.BoardSize + 1
	boardCols = rankLabelWidth + domain.BoardSize*squareWidth
)

// terminalLayout maps a square to 2×2 controller units: one per column and
// two per row, so terminal cells that are twice as tall as wide still land
// in square cells.
var terminalLayout = interaction.Layout{CellSize: squareWidth}

var glyphs = map[domain.Kind]rune{
	domain.King:   '♚',
	domain.Queen:  '♛',
	domain.Rook:   '♜',
	domain.Bishop: '♝',
	domain.Knight: '♞',
	domain.Pawn:   '♟',
}

// Players names the two sides in the header.
type Players struct {
	White string
	Black string
}

// For returns the name of the player on side.
func (p Players) For(side domain.Side) string {
	if side == domain.Second {
		return p.Black
	}
	return p.White
}

type turnReporter interface {
	Turn() domain.Side
}

type palette struct {
	light, dark, origin tcell.Color
	first, second       tcell.Color
	coords              tcell.Color
}

// BoardView is a tview primitive that draws the board and feeds mouse
// gestures to an interaction.Controller.
type BoardView struct {
	*tview.Box

	delegate domain.BoardDelegate
	ctrl     *interaction.Controller
	players  Players
	colors   palette
}

// NewBoardView returns a view over d whose mouse gestures drive c. It
// starts with DefaultTheme colours.
func NewBoardView(d domain.BoardDelegate, c *interaction.Controller, names Players) *BoardView {
	v := &BoardView{
		Box:      tview.NewBox(),
		delegate: d,
		ctrl:     c,
		players:  names,
	}
	return v.SetTheme(config.DefaultTheme)
}

// SetTheme maps the hex theme onto terminal colours.
func (v *BoardView) SetTheme(t config.Theme) *BoardView {
	v.colors = palette{
		light:  termColor(t.LightSquare),
		dark:   termColor(t.DarkSquare),
		origin: termColor(t.Origin),
		first:  termColor(t.FirstPiece),
		second: termColor(t.SecondPiece),
		coords: termColor(t.Coordinates),
	}
	return v
}

func termColor(hex string) tcell.Color {
	c := config.ColorOf(hex)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Draw paints the header, the board with rank and file labels, and the
// carried piece under the pointer.
func (v *BoardView) Draw(screen tcell.Screen) {
	v.Box.Draw(screen)
	x, y, width, height := v.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}

	tview.Print(screen, v.header(), x, y, width, tview.AlignLeft, v.colors.coords)
	if !v.fits() {
		return
	}

	bx, by := v.boardOrigin()
	drag, dragging := v.ctrl.Session()
	target, hasTarget := v.dropTarget(drag, dragging)
	labelStyle := tcell.StyleDefault.Foreground(v.colors.coords)
	for row := domain.BoardSize - 1; row >= 0; row-- {
		sy := by + domain.BoardSize - 1 - row
		for i, r := range strconv.Itoa(row + 1) {
			screen.SetContent(x+i, sy, r, nil, labelStyle)
		}
		for col := 0; col < domain.BoardSize; col++ {
			sq := domain.Square{Col: col, Row: row}
			bg := v.colors.light
			if (col+row)%2 == 0 {
				bg = v.colors.dark
			}
			if (dragging && drag.Origin == sq) || (hasTarget && target == sq) {
				bg = v.colors.origin
			}
			style := tcell.StyleDefault.Background(bg)
			glyph := ' '
			if p := v.delegate.PieceAt(col, row); p != nil && !(dragging && p == drag.Piece) {
				glyph = glyphs[p.Kind]
				style = style.Foreground(v.pieceColor(p.Side))
			}
			sx := bx + col*squareWidth
			screen.SetContent(sx, sy, glyph, nil, style)
			screen.SetContent(sx+1, sy, ' ', nil, style)
		}
	}
	for col := 0; col < domain.BoardSize; col++ {
		screen.SetContent(bx+col*squareWidth, by+domain.BoardSize, rune('a'+col), nil, labelStyle)
	}

	if dragging && drag.Piece != nil && drag.HasPointer {
		px, py := bx+drag.Pointer.X, by+drag.Pointer.Y/squareWidth
		if v.InRect(px, py) {
			_, _, style, _ := screen.GetContent(px, py)
			screen.SetContent(px, py, glyphs[drag.Piece.Kind], nil, style.Foreground(v.pieceColor(drag.Piece.Side)))
		}
	}
}

// fits reports whether the inner rect holds the whole board. A shorter or
// narrower box shows the header only and ignores presses.
func (v *BoardView) fits() bool {
	_, _, width, height := v.GetInnerRect()
	return width >= boardCols && height >= boardRows
}

// HoverSquare returns the square under the pointer of the open gesture.
// The square may be off the board.
func (v *BoardView) HoverSquare() (domain.Square, bool) {
	s, ok := v.ctrl.Session()
	if !ok || !s.HasPointer {
		return domain.Square{}, false
	}
	return interaction.ToBoardCoords(terminalLayout, s.Pointer), true
}

// DragIn returns a copy of the open gesture with its pointer moved to the
// centre of the hovered square under l, so pixel renderers can draw it.
// It returns nil when no gesture is open.
func (v *BoardView) DragIn(l interaction.Layout) *interaction.DragSession {
	s, ok := v.ctrl.Session()
	if !ok {
		return nil
	}
	if hover, ok := v.HoverSquare(); ok {
		s.Pointer = interaction.SquareCenter(l, hover)
	}
	return &s
}

// dropTarget is the hovered square when releasing there would move the
// carried piece. It needs a delegate that also reports the side to move.
func (v *BoardView) dropTarget(drag interaction.DragSession, dragging bool) (domain.Square, bool) {
	if !dragging || !drag.HasPointer {
		return domain.Square{}, false
	}
	rv, ok := v.delegate.(rules.View)
	if !ok {
		return domain.Square{}, false
	}
	hover := interaction.ToBoardCoords(terminalLayout, drag.Pointer)
	if !rules.CanMove(rv, drag.Origin, hover) {
		return domain.Square{}, false
	}
	return hover, true
}

func (v *BoardView) header() string {
	text := fmt.Sprintf("%s: %s  %s: %s",
		domain.First, tview.Escape(v.players.White),
		domain.Second, tview.Escape(v.players.Black))
	if t, ok := v.delegate.(turnReporter); ok {
		side := t.Turn()
		text += fmt.Sprintf("  | %s to move (%s)", side, tview.Escape(v.players.For(side)))
	}
	return text
}

func (v *BoardView) pieceColor(side domain.Side) tcell.Color {
	if side == domain.Second {
		return v.colors.second
	}
	return v.colors.first
}

// boardOrigin is the screen cell of the top-left square.
func (v *BoardView) boardOrigin() (int, int) {
	x, y, _, _ := v.GetInnerRect()
	return x + rankLabelWidth, y + headerRows
}

// pointerFor converts a screen cell into terminalLayout units.
func (v *BoardView) pointerFor(sx, sy int) interaction.Point {
	bx, by := v.boardOrigin()
	return interaction.Point{X: sx - bx, Y: (sy - by) * squareWidth}
}

// MouseHandler implements tview.Primitive.
func (v *BoardView) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	return v.WrapMouseHandler(v.handleMouse)
}

// handleMouse keeps mouse capture while a piece is carried so a release
// outside the box still ends the gesture.
func (v *BoardView) handleMouse(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (bool, tview.Primitive) {
	sx, sy := event.Position()
	p := v.pointerFor(sx, sy)
	switch action {
	case tview.MouseLeftDown:
		if !v.InRect(sx, sy) || !v.fits() {
			return false, nil
		}
		setFocus(v)
		v.ctrl.Press(terminalLayout, p)
		if v.ctrl.Dragging() {
			return true, v
		}
		return true, nil
	case tview.MouseMove:
		if !v.ctrl.Dragging() {
			return false, nil
		}
		v.ctrl.Drag(terminalLayout, p)
		return true, v
	case tview.MouseLeftUp:
		if !v.ctrl.Dragging() {
			return false, nil
		}
		v.ctrl.Release(terminalLayout, p)
		return true, nil
	}
	return false, nil
}

// Blur drops a half-finished gesture when focus moves away.
func (v *BoardView) Blur() {
	v.ctrl.Cancel()
	v.Box.Blur()
}
