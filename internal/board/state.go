package board

import (
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/park285/dragchess/internal/domain"
	"github.com/park285/dragchess/internal/rules"
	"go.uber.org/zap"
)

// Errors returned by Place.
var (
	ErrOffBoard = errors.New("square is off the board")
	ErrOccupied = errors.New("square is already occupied")
)

// backRank lists the kinds on row 0 and row 7 from column 0 to 7.
var backRank = [domain.BoardSize]domain.Kind{
	domain.Rook, domain.Knight, domain.Bishop, domain.Queen,
	domain.King, domain.Bishop, domain.Knight, domain.Rook,
}

// State owns the pieces of one game and the side to move. It is not safe
// for concurrent use; all calls come from the single UI event thread.
type State struct {
	pieces  map[domain.Square]*domain.Piece
	turn    domain.Side
	session string
	logger  *zap.Logger
}

// New returns an empty board with First to move.
func New(logger *zap.Logger) *State {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &State{
		pieces: make(map[domain.Square]*domain.Piece),
		turn:   domain.First,
		logger: logger,
	}
}

// NewGame returns a board set up in the starting layout.
func NewGame(logger *zap.Logger) *State {
	s := New(logger)
	s.Reset()
	return s
}

// Reset clears the board and sets up the 32-piece starting layout with
// First to move. Every reset starts a new session ID.
func (s *State) Reset() {
	s.pieces = make(map[domain.Square]*domain.Piece, 32)
	for col, kind := range backRank {
		s.put(domain.NewPiece(domain.First, kind, col, 0))
		s.put(domain.NewPiece(domain.Second, kind, col, 7))
	}
	for col := 0; col < domain.BoardSize; col++ {
		s.put(domain.NewPiece(domain.First, domain.Pawn, col, 1))
		s.put(domain.NewPiece(domain.Second, domain.Pawn, col, 6))
	}
	s.turn = domain.First
	s.session = uuid.NewString()
	s.logger.Info("board_reset", zap.String("session", s.session), zap.Int("pieces", len(s.pieces)))
}

// PieceAt returns the piece on (col, row), or nil. Off-board coordinates
// are tolerated and always empty.
func (s *State) PieceAt(col, row int) *domain.Piece {
	sq := domain.Square{Col: col, Row: row}
	if !sq.InBounds() {
		return nil
	}
	return s.pieces[sq]
}

// MovePiece moves the piece on the origin square when the side to move owns
// it, capturing an opposing piece on the destination. Refused moves change
// nothing and are only logged.
func (s *State) MovePiece(fromCol, fromRow, toCol, toRow int) {
	from := domain.Square{Col: fromCol, Row: fromRow}
	to := domain.Square{Col: toCol, Row: toRow}
	if err := rules.Check(s, from, to); err != nil {
		s.logger.Debug("board_move_rejected",
			zap.String("session", s.session),
			zap.String("from", from.String()),
			zap.String("to", to.String()),
			zap.String("turn", s.turn.String()),
			zap.String("reason", err.Error()),
		)
		return
	}

	candidate := s.pieces[from]
	fields := []zap.Field{
		zap.String("session", s.session),
		zap.String("side", candidate.Side.String()),
		zap.String("kind", candidate.Kind.String()),
		zap.String("from", from.String()),
		zap.String("to", to.String()),
	}
	if target := s.pieces[to]; target != nil {
		delete(s.pieces, to)
		fields = append(fields, zap.String("captured", target.Kind.String()))
	}
	delete(s.pieces, from)
	candidate.Col, candidate.Row = to.Col, to.Row
	s.pieces[to] = candidate
	s.turn = s.turn.Other()

	s.logger.Info("board_move", append(fields, zap.String("next", s.turn.String()))...)
}

// Turn returns the side allowed to move next.
func (s *State) Turn() domain.Side { return s.turn }

// Len returns the number of pieces on the board.
func (s *State) Len() int { return len(s.pieces) }

// SessionID identifies the game since the last Reset. Empty before the first.
func (s *State) SessionID() string { return s.session }

// Pieces returns copies of every piece ordered by row, then column.
func (s *State) Pieces() []domain.Piece {
	out := make([]domain.Piece, 0, len(s.pieces))
	for _, p := range s.pieces {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

// Clear removes every piece without touching the turn.
func (s *State) Clear() {
	s.pieces = make(map[domain.Square]*domain.Piece)
}

// Place puts a new piece on an empty square. It is meant for setting up
// positions; games normally start from Reset.
func (s *State) Place(side domain.Side, kind domain.Kind, col, row int) error {
	sq := domain.Square{Col: col, Row: row}
	if !sq.InBounds() {
		return ErrOffBoard
	}
	if s.pieces[sq] != nil {
		return ErrOccupied
	}
	s.put(domain.NewPiece(side, kind, col, row))
	return nil
}

// SetTurn hands the move to side. It is meant for setting up positions.
func (s *State) SetTurn(side domain.Side) { s.turn = side }

func (s *State) put(p *domain.Piece) { s.pieces[p.Square()] = p }
