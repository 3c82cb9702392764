package tui

import (
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/park285/dragchess/internal/board"
	"github.com/park285/dragchess/internal/domain"
)

var (
	firstInk  = color.New(color.FgHiWhite, color.Bold)
	secondInk = color.New(color.FgHiRed, color.Bold)
	labelInk  = color.New(color.Faint)
)

// PrintBoard writes d as text with rank 8 on top, using FEN letters.
// Colour codes are dropped when color.NoColor is set.
func PrintBoard(w io.Writer, d domain.BoardDelegate) error {
	var b strings.Builder
	for row := domain.BoardSize - 1; row >= 0; row-- {
		b.WriteString(labelInk.Sprint(strconv.Itoa(row + 1)))
		for col := 0; col < domain.BoardSize; col++ {
			b.WriteByte(' ')
			p := d.PieceAt(col, row)
			switch {
			case p == nil:
				b.WriteString(labelInk.Sprint(board.Glyph(nil)))
			case p.Side == domain.Second:
				b.WriteString(secondInk.Sprint(board.Glyph(p)))
			default:
				b.WriteString(firstInk.Sprint(board.Glyph(p)))
			}
		}
		b.WriteByte('\n')
	}
	b.WriteByte(' ')
	for col := 0; col < domain.BoardSize; col++ {
		b.WriteByte(' ')
		b.WriteString(labelInk.Sprint(string(rune('a' + col))))
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}
