package game

import "fmt"

// neighborOffsets lists the Moore neighborhood deltas, row first.
var neighborOffsets = [8]Position{
	{Row: -1, Col: -1}, {Row: -1, Col: 0}, {Row: -1, Col: 1},
	{Row: 0, Col: -1}, {Row: 0, Col: 1},
	{Row: 1, Col: -1}, {Row: 1, Col: 0}, {Row: 1, Col: 1},
}

// Position is a grid coordinate. It is a plain value and compares with ==.
type Position struct {
	Row int `json:"row" bson:"row"` // Row index, zero based
	Col int `json:"col" bson:"col"` // Column index, zero based
}

// NewPosition validates and returns a position.
func NewPosition(row, col int) (Position, error) {
	if row < 0 || col < 0 {
		return Position{}, newError(ErrInvalidArgument, fmt.Sprintf("position (%d,%d) must not be negative", row, col))
	}
	return Position{Row: row, Col: col}, nil
}

// Adjacent returns the eight surrounding positions. The result is not bounds
// filtered and may contain negative coordinates.
func (p Position) Adjacent() []Position {
	adjacent := make([]Position, 0, len(neighborOffsets))
	for _, delta := range neighborOffsets {
		adjacent = append(adjacent, Position{Row: p.Row + delta.Row, Col: p.Col + delta.Col})
	}
	return adjacent
}

// InBounds reports whether p lies inside a rows x cols grid.
func (p Position) InBounds(rows, cols int) bool {
	return p.Row >= 0 && p.Row < rows && p.Col >= 0 && p.Col < cols
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}
