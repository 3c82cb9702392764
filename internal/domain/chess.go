package domain

import (
	"fmt"

	nchess "github.com/corentings/chess/v2"
)

// BoardSize is the number of columns and rows on the board.
const BoardSize = 8

// Side identifies one of the two players. First moves first and maps to white.
type Side int

const (
	First Side = iota
	Second
)

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == First {
		return Second
	}
	return First
}

func (s Side) String() string {
	switch s {
	case First:
		return "white"
	case Second:
		return "black"
	default:
		return "unknown"
	}
}

// Kind is the piece type. It is an identity and rendering key only;
// no move shape is attached to it.
type Kind int

const (
	King Kind = iota
	Queen
	Bishop
	Rook
	Knight
	Pawn
)

// Kinds lists every kind in declaration order.
var Kinds = []Kind{King, Queen, Bishop, Rook, Knight, Pawn}

func (k Kind) String() string {
	switch k {
	case King:
		return "king"
	case Queen:
		return "queen"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Knight:
		return "knight"
	case Pawn:
		return "pawn"
	default:
		return "unknown"
	}
}

// Letter returns the upper-case algebraic letter for the kind.
func (k Kind) Letter() string {
	switch k {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Bishop:
		return "B"
	case Rook:
		return "R"
	case Knight:
		return "N"
	case Pawn:
		return "P"
	default:
		return "?"
	}
}

// Square is a board coordinate. Row 0 is the First side's back rank.
type Square struct {
	Col int
	Row int
}

// InBounds reports whether sq lies on the 8×8 board.
func (sq Square) InBounds() bool {
	return sq.Col >= 0 && sq.Col < BoardSize && sq.Row >= 0 && sq.Row < BoardSize
}

// String returns the algebraic name ("e2") for squares on the board.
func (sq Square) String() string {
	if !sq.InBounds() {
		return fmt.Sprintf("(%d,%d)", sq.Col, sq.Row)
	}
	return nchess.NewSquare(nchess.File(sq.Col), nchess.Rank(sq.Row)).String()
}

// AssetKey names the image used for a (side, kind) pair.
type AssetKey string

// KeyFor returns the asset key for a (side, kind) pair: "w" or "b" followed
// by the kind letter, so "wK" or "bP".
func KeyFor(side Side, kind Kind) AssetKey {
	prefix := "w"
	if side == Second {
		prefix = "b"
	}
	return AssetKey(prefix + kind.Letter())
}

// AllAssetKeys returns the twelve keys in a stable order.
func AllAssetKeys() []AssetKey {
	keys := make([]AssetKey, 0, 2*len(Kinds))
	for _, side := range []Side{First, Second} {
		for _, k := range Kinds {
			keys = append(keys, KeyFor(side, k))
		}
	}
	return keys
}

// Piece is a piece on the board. Side, Kind and Asset never change;
// Col and Row follow the piece as it moves.
type Piece struct {
	Side  Side
	Kind  Kind
	Col   int
	Row   int
	Asset AssetKey
}

// NewPiece returns a piece of side and kind on (col, row) with its asset key
// filled in.
func NewPiece(side Side, kind Kind, col, row int) *Piece {
	return &Piece{Side: side, Kind: kind, Col: col, Row: row, Asset: KeyFor(side, kind)}
}

func (p *Piece) Square() Square { return Square{Col: p.Col, Row: p.Row} }

func (p *Piece) String() string {
	return fmt.Sprintf("%s %s@%s", p.Side, p.Kind, p.Square())
}

// BoardDelegate is everything the pointer controller and the renderers
// need from a game: occupancy lookups and move requests. MovePiece reports
// nothing; callers re-query PieceAt to see the outcome.
type BoardDelegate interface {
	PieceAt(col, row int) *Piece
	MovePiece(fromCol, fromRow, toCol, toRow int)
}
