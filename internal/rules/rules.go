package rules

import (
	"errors"

	"github.com/park285/dragchess/internal/domain"
)

// Reasons returned by Check, in the order they are tested.
var (
	ErrNoPiece     = errors.New("no piece on origin square")
	ErrNotYourTurn = errors.New("piece does not belong to the side to move")
	ErrSameSquare  = errors.New("origin and destination are the same square")
	ErrOffBoard    = errors.New("destination is off the board")
	ErrOwnPiece    = errors.New("destination holds a piece of the same side")
)

// View is the read side of a board that move checks need.
type View interface {
	PieceAt(col, row int) *domain.Piece
	Turn() domain.Side
}

// Check reports why a move from one square to another would be refused, or
// nil when it is acceptable. Piece kind plays no part: any piece may go to
// any square on the board that is empty or holds an opposing piece.
func Check(v View, from, to domain.Square) error {
	candidate := v.PieceAt(from.Col, from.Row)
	if candidate == nil {
		return ErrNoPiece
	}
	if candidate.Side != v.Turn() {
		return ErrNotYourTurn
	}
	if from == to {
		return ErrSameSquare
	}
	if !to.InBounds() {
		return ErrOffBoard
	}
	if target := v.PieceAt(to.Col, to.Row); target != nil && target.Side == candidate.Side {
		return ErrOwnPiece
	}
	return nil
}

// CanMove is the yes/no form of Check for callers that do not need the
// reason, such as drop-target hints. board.State.MovePiece uses Check
// directly so refusals can be logged with their reason.
func CanMove(v View, from, to domain.Square) bool {
	return Check(v, from, to) == nil
}
