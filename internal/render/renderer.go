package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	imagedraw "image/draw"
	"image/png"
	"strconv"

	"github.com/park285/dragchess/internal/assets"
	"github.com/park285/dragchess/internal/config"
	"github.com/park285/dragchess/internal/domain"
	"github.com/park285/dragchess/internal/interaction"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// boardPadding is kept free on every side of the board.
const boardPadding = 10

// LayoutFor fits the board into a width×height panel: the largest square
// that leaves boardPadding on each side, cut into 8 cells and centered.
func LayoutFor(width, height int) interaction.Layout {
	boardSize := width
	if height < boardSize {
		boardSize = height
	}
	boardSize -= 2 * boardPadding
	if boardSize < domain.BoardSize {
		return interaction.Layout{}
	}
	cell := boardSize / domain.BoardSize
	used := cell * domain.BoardSize
	return interaction.Layout{
		OriginX:  (width - used) / 2,
		OriginY:  (height - used) / 2,
		CellSize: cell,
	}
}

// Renderer paints a board seen through a BoardDelegate, with the piece of an
// open drag session following the pointer.
type Renderer struct {
	assets *assets.Loader
	theme  config.Theme
	logger *zap.Logger
}

// NewRenderer returns a renderer drawing pieces from loader in theme
// colours. A nil loader falls back to the embedded pieces.
func NewRenderer(loader *assets.Loader, theme config.Theme, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loader == nil {
		loader = assets.NewLoader("", logger)
	}
	return &Renderer{assets: loader, theme: theme, logger: logger}
}

// Draw paints one frame and returns it with the layout used, which the
// caller hands to the pointer controller for the next events.
func (r *Renderer) Draw(d domain.BoardDelegate, drag *interaction.DragSession, width, height int) (*image.RGBA, interaction.Layout) {
	layout := LayoutFor(width, height)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	imagedraw.Draw(img, img.Bounds(), image.NewUniform(config.ColorOf(r.theme.Background)), image.Point{}, imagedraw.Src)
	if layout.CellSize == 0 {
		return img, layout
	}

	r.drawSquares(img, layout)
	if drag != nil && drag.Origin.InBounds() {
		imagedraw.Draw(img, squareRect(drag.Origin, layout), image.NewUniform(config.ColorOf(r.theme.Origin)), image.Point{}, imagedraw.Over)
	}
	r.drawPieces(img, d, drag, layout)
	r.drawCoordinates(img, layout)
	if drag != nil && drag.Piece != nil && drag.HasPointer {
		r.drawCarried(img, drag, layout)
	}
	return img, layout
}

// RenderPNG encodes Draw's frame as PNG.
func (r *Renderer) RenderPNG(ctx context.Context, d domain.BoardDelegate, drag *interaction.DragSession, width, height int) ([]byte, error) {
	if d == nil {
		return nil, fmt.Errorf("board is nil")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	img, _ := r.Draw(d, drag, width, height)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return pngBuf.Bytes(), nil
}

func (r *Renderer) drawSquares(dst imagedraw.Image, l interaction.Layout) {
	for row := 0; row < domain.BoardSize; row++ {
		for col := 0; col < domain.BoardSize; col++ {
			sq := domain.Square{Col: col, Row: row}
			imagedraw.Draw(dst, squareRect(sq, l), image.NewUniform(r.squareColor(sq)), image.Point{}, imagedraw.Src)
		}
	}
}

func (r *Renderer) drawPieces(dst imagedraw.Image, d domain.BoardDelegate, drag *interaction.DragSession, l interaction.Layout) {
	for row := 0; row < domain.BoardSize; row++ {
		for col := 0; col < domain.BoardSize; col++ {
			p := d.PieceAt(col, row)
			if p == nil {
				continue
			}
			if drag != nil && drag.Piece == p && drag.HasPointer {
				continue
			}
			img := r.assets.Image(p.Asset, l.CellSize)
			if img == nil {
				continue
			}
			imagedraw.Draw(dst, squareRect(p.Square(), l), img, image.Point{}, imagedraw.Over)
		}
	}
}

func (r *Renderer) drawCarried(dst imagedraw.Image, drag *interaction.DragSession, l interaction.Layout) {
	img := r.assets.Image(drag.Piece.Asset, l.CellSize)
	if img == nil {
		return
	}
	x := drag.Pointer.X - l.CellSize/2
	y := drag.Pointer.Y - l.CellSize/2
	imagedraw.Draw(dst, image.Rect(x, y, x+l.CellSize, y+l.CellSize), img, image.Point{}, imagedraw.Over)
}

// drawCoordinates labels the left column with rank digits and the bottom
// row with file letters, inside the squares.
func (r *Renderer) drawCoordinates(dst imagedraw.Image, l interaction.Layout) {
	face := basicfont.Face7x13
	if l.CellSize < 2*face.Height {
		return
	}
	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(config.ColorOf(r.theme.Coordinates)),
		Face: face,
	}
	ascent := face.Metrics().Ascent.Ceil()
	for row := 0; row < domain.BoardSize; row++ {
		rect := squareRect(domain.Square{Col: 0, Row: row}, l)
		drawer.Dot = fixed.P(rect.Min.X+2, rect.Min.Y+ascent+1)
		drawer.DrawString(strconv.Itoa(row + 1))
	}
	for col := 0; col < domain.BoardSize; col++ {
		rect := squareRect(domain.Square{Col: col, Row: 0}, l)
		label := string(rune('a' + col))
		width := drawer.MeasureString(label).Round()
		drawer.Dot = fixed.P(rect.Max.X-width-2, rect.Max.Y-3)
		drawer.DrawString(label)
	}
}

func (r *Renderer) squareColor(sq domain.Square) color.Color {
	if (sq.Col+sq.Row)%2 == 0 {
		return config.ColorOf(r.theme.DarkSquare)
	}
	return config.ColorOf(r.theme.LightSquare)
}

// squareRect is the screen rectangle of sq; row 0 is at the bottom.
func squareRect(sq domain.Square, l interaction.Layout) image.Rectangle {
	x := l.OriginX + sq.Col*l.CellSize
	y := l.OriginY + (domain.BoardSize-1-sq.Row)*l.CellSize
	return image.Rect(x, y, x+l.CellSize, y+l.CellSize)
}
