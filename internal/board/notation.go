package board

import (
	"strconv"
	"strings"

	nchess "github.com/corentings/chess/v2"
	"github.com/park285/dragchess/internal/domain"
)

var pieceTable = map[domain.Side]map[domain.Kind]nchess.Piece{
	domain.First: {
		domain.King:   nchess.WhiteKing,
		domain.Queen:  nchess.WhiteQueen,
		domain.Bishop: nchess.WhiteBishop,
		domain.Rook:   nchess.WhiteRook,
		domain.Knight: nchess.WhiteKnight,
		domain.Pawn:   nchess.WhitePawn,
	},
	domain.Second: {
		domain.King:   nchess.BlackKing,
		domain.Queen:  nchess.BlackQueen,
		domain.Bishop: nchess.BlackBishop,
		domain.Rook:   nchess.BlackRook,
		domain.Knight: nchess.BlackKnight,
		domain.Pawn:   nchess.BlackPawn,
	},
}

// Placement returns the FEN piece-placement field followed by the side to
// move, e.g. "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w".
func (s *State) Placement() string {
	m := make(map[nchess.Square]nchess.Piece, len(s.pieces))
	for sq, p := range s.pieces {
		m[nchess.NewSquare(nchess.File(sq.Col), nchess.Rank(sq.Row))] = pieceTable[p.Side][p.Kind]
	}
	turn := "w"
	if s.turn == domain.Second {
		turn = "b"
	}
	return nchess.NewBoard(m).String() + " " + turn
}

// String draws the board from row 7 down to row 0. First side pieces are
// upper-case, Second side lower-case, empty squares are dots.
func (s *State) String() string {
	var b strings.Builder
	for row := domain.BoardSize - 1; row >= 0; row-- {
		b.WriteString(strconv.Itoa(row))
		for col := 0; col < domain.BoardSize; col++ {
			b.WriteByte(' ')
			b.WriteString(Glyph(s.PieceAt(col, row)))
		}
		b.WriteByte('\n')
	}
	b.WriteString(" ")
	for col := 0; col < domain.BoardSize; col++ {
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(col))
	}
	return b.String()
}

// Glyph returns the one-letter ASCII form of p, or "." for nil.
func Glyph(p *domain.Piece) string {
	if p == nil {
		return "."
	}
	if p.Side == domain.Second {
		return strings.ToLower(p.Kind.Letter())
	}
	return p.Kind.Letter()
}
