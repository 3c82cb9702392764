package interaction

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/park285/dragchess/internal/board"
	"github.com/park285/dragchess/internal/domain"
)

type moveCall struct{ FromC, FromR, ToC, ToR int }

// recordingDelegate wraps a board and counts MovePiece calls.
type recordingDelegate struct {
	*board.State
	calls []moveCall
}

func (r *recordingDelegate) MovePiece(fromC, fromR, toC, toR int) {
	r.calls = append(r.calls, moveCall{fromC, fromR, toC, toR})
	r.State.MovePiece(fromC, fromR, toC, toR)
}

var testLayout = Layout{OriginX: 10, OriginY: 20, CellSize: 50}

// center returns the screen point at the middle of a square under testLayout.
func center(col, row int) Point {
	return Point{
		X: testLayout.OriginX + col*testLayout.CellSize + testLayout.CellSize/2,
		Y: testLayout.OriginY + (7-row)*testLayout.CellSize + testLayout.CellSize/2,
	}
}

func newRecorder(t *testing.T) (*recordingDelegate, *Controller) {
	t.Helper()
	d := &recordingDelegate{State: board.NewGame(nil)}
	return d, NewController(d, nil)
}

func TestToBoardCoords(t *testing.T) {
	l := Layout{OriginX: 10, OriginY: 10, CellSize: 60}
	cases := []struct {
		p    Point
		want domain.Square
	}{
		{Point{10, 10}, domain.Square{Col: 0, Row: 7}},
		{Point{69, 69}, domain.Square{Col: 0, Row: 7}},
		{Point{70, 70}, domain.Square{Col: 1, Row: 6}},
		{Point{489, 489}, domain.Square{Col: 7, Row: 0}},
		{Point{490, 490}, domain.Square{Col: 8, Row: -1}},
		{Point{9, 9}, domain.Square{Col: -1, Row: 8}},
		{Point{-200, 10}, domain.Square{Col: -4, Row: 7}},
	}
	for _, tc := range cases {
		if got := ToBoardCoords(l, tc.p); got != tc.want {
			t.Fatalf("ToBoardCoords(%v) = %v, want %v", tc.p, got, tc.want)
		}
	}
	if got := ToBoardCoords(Layout{}, Point{5, 5}); got.InBounds() {
		t.Fatalf("zero cell size must map off the board, got %v", got)
	}
}

func TestDragMovesPiece(t *testing.T) {
	d, c := newRecorder(t)
	c.Press(testLayout, center(0, 1))
	s, ok := c.Session()
	if !ok || s.Origin != (domain.Square{Col: 0, Row: 1}) || s.Piece == nil || s.Piece.Kind != domain.Pawn {
		t.Fatalf("expected drag of pawn from (0,1), got %+v ok=%v", s, ok)
	}
	c.Drag(testLayout, center(0, 2))
	c.Drag(testLayout, Point{X: 33, Y: 211})
	if s, _ := c.Session(); s.Pointer != (Point{X: 33, Y: 211}) {
		t.Fatalf("pointer not tracked: %+v", s.Pointer)
	}
	c.Release(testLayout, center(0, 3))

	if diff := cmp.Diff([]moveCall{{0, 1, 0, 3}}, d.calls); diff != "" {
		t.Fatalf("delegate calls (-want +got):\n%s", diff)
	}
	if c.Dragging() {
		t.Fatalf("session must be cleared after release")
	}
	if p := d.PieceAt(0, 3); p == nil || p.Kind != domain.Pawn {
		t.Fatalf("expected pawn on (0,3), got %v", p)
	}
}

func TestPressEmptySquare(t *testing.T) {
	d, c := newRecorder(t)
	c.Press(testLayout, center(4, 4))
	if c.Dragging() {
		t.Fatalf("press on empty square must not open a session")
	}
	c.Drag(testLayout, center(4, 5))
	c.Release(testLayout, center(4, 6))
	if len(d.calls) != 0 {
		t.Fatalf("expected no MovePiece calls, got %v", d.calls)
	}
}

func TestReleaseOnOrigin(t *testing.T) {
	d, c := newRecorder(t)
	c.Press(testLayout, center(1, 0))
	for _, p := range []Point{center(2, 2), center(5, 5), {X: -40, Y: 900}, center(1, 1)} {
		c.Drag(testLayout, p)
	}
	c.Release(testLayout, center(1, 0))
	if len(d.calls) != 0 {
		t.Fatalf("expected no MovePiece calls, got %v", d.calls)
	}
	if c.Dragging() {
		t.Fatalf("session must be cleared after release")
	}

	// A fresh gesture works normally.
	c.Press(testLayout, center(1, 0))
	if s, ok := c.Session(); !ok || s.Origin != (domain.Square{Col: 1, Row: 0}) {
		t.Fatalf("expected fresh session at (1,0), got %+v ok=%v", s, ok)
	}
	c.Release(testLayout, center(2, 2))
	if diff := cmp.Diff([]moveCall{{1, 0, 2, 2}}, d.calls); diff != "" {
		t.Fatalf("delegate calls (-want +got):\n%s", diff)
	}
	if p := d.PieceAt(2, 2); p == nil || p.Kind != domain.Knight {
		t.Fatalf("expected knight on (2,2), got %v", p)
	}
}

func TestReleaseOffBoard(t *testing.T) {
	d, c := newRecorder(t)
	before := d.Placement()
	c.Press(testLayout, center(3, 1))
	c.Release(testLayout, Point{X: 1000, Y: -1000})
	if len(d.calls) != 1 {
		t.Fatalf("expected the delegate to be asked once, got %v", d.calls)
	}
	if d.Placement() != before {
		t.Fatalf("off-board drop must not change the board: %s", d.Placement())
	}
	if c.Dragging() {
		t.Fatalf("session must be cleared after release")
	}
}

func TestOpponentPieceDragIsNoOp(t *testing.T) {
	d, c := newRecorder(t)
	c.Press(testLayout, center(0, 6))
	if !c.Dragging() {
		t.Fatalf("any occupied square starts a drag")
	}
	c.Release(testLayout, center(0, 4))
	if p := d.PieceAt(0, 6); p == nil || p.Side != domain.Second {
		t.Fatalf("Second pawn must stay while First is to move, got %v", p)
	}
	if d.Turn() != domain.First {
		t.Fatalf("turn must not change on a refused move")
	}
}

func TestIdleEventsIgnored(t *testing.T) {
	d, c := newRecorder(t)
	c.Drag(testLayout, center(0, 1))
	c.Release(testLayout, center(0, 3))
	if len(d.calls) != 0 {
		t.Fatalf("release without press must not call the delegate, got %v", d.calls)
	}
}

func TestCancel(t *testing.T) {
	d, c := newRecorder(t)
	c.Press(testLayout, center(6, 0))
	c.Cancel()
	c.Release(testLayout, center(5, 2))
	if len(d.calls) != 0 {
		t.Fatalf("cancelled gesture must not call the delegate, got %v", d.calls)
	}
}

func TestStalePressReplaced(t *testing.T) {
	d, c := newRecorder(t)
	c.Press(testLayout, center(0, 1))
	c.Press(testLayout, center(7, 1))
	c.Release(testLayout, center(7, 2))
	if diff := cmp.Diff([]moveCall{{7, 1, 7, 2}}, d.calls); diff != "" {
		t.Fatalf("delegate calls (-want +got):\n%s", diff)
	}
}

func TestSquareCenterRoundTrip(t *testing.T) {
	for _, l := range []Layout{testLayout, {CellSize: 2}, {OriginX: -7, OriginY: 3, CellSize: 77}} {
		for row := 0; row < domain.BoardSize; row++ {
			for col := 0; col < domain.BoardSize; col++ {
				sq := domain.Square{Col: col, Row: row}
				if got := ToBoardCoords(l, SquareCenter(l, sq)); got != sq {
					t.Fatalf("layout %+v: centre of %s maps to %s", l, sq, got)
				}
			}
		}
	}
	if got := SquareCenter(Layout{OriginX: 10, OriginY: 20, CellSize: 50}, domain.Square{Col: 0, Row: 7}); got != (Point{X: 35, Y: 45}) {
		t.Fatalf("a8 centre = %+v", got)
	}
}
