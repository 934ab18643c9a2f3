/*
Package game implements the Minesweeper board engine.

A Game owns one Board, a Board owns a flat buffer of Cells. Mines are placed
lazily on the first reveal so the first clicked cell and its neighbors are
always safe. Revealing a cell with no adjacent mines opens the surrounding
region with an iterative breadth first cascade.

The engine performs no I/O and no locking. Callers serialize operations on a
single game.
*/
package game

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Board is a rectangular grid of cells stored row-major in a flat slice.
type Board struct {
	difficulty  Difficulty // Dimensions and mine count
	cells       []Cell     // rows*cols cells, index row*cols+col
	initialized bool       // Set once mines are placed
	rng         *rand.Rand // Source for mine placement
}

// NewBoard builds an uninitialized board for a valid difficulty.
func NewBoard(d Difficulty, rng *rand.Rand) (*Board, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	cells := make([]Cell, d.CellCount())
	for row := 0; row < d.Rows; row++ {
		for col := 0; col < d.Cols; col++ {
			cells[row*d.Cols+col] = newCell(Position{Row: row, Col: col})
		}
	}

	return &Board{
		difficulty: d,
		cells:      cells,
		rng:        rng,
	}, nil
}

// Difficulty returns the board configuration.
func (b *Board) Difficulty() Difficulty {
	return b.difficulty
}

// Rows returns the number of rows.
func (b *Board) Rows() int {
	return b.difficulty.Rows
}

// Cols returns the number of columns.
func (b *Board) Cols() int {
	return b.difficulty.Cols
}

// IsInitialized reports whether mines have been placed.
func (b *Board) IsInitialized() bool {
	return b.initialized
}

// InBounds reports whether pos lies on the board.
func (b *Board) InBounds(pos Position) bool {
	return pos.InBounds(b.difficulty.Rows, b.difficulty.Cols)
}

// Cell returns a copy of the cell at pos.
func (b *Board) Cell(pos Position) (Cell, error) {
	if !b.InBounds(pos) {
		return Cell{}, b.outOfBounds(pos)
	}
	return b.cells[b.index(pos)], nil
}

// PlaceMines arms the board, keeping firstClick and its in-bounds neighbors
// clear. It can succeed only once per board.
func (b *Board) PlaceMines(firstClick Position) error {
	if b.initialized {
		return newError(ErrAlreadyInitialized, "mines have already been placed")
	}
	if !b.InBounds(firstClick) {
		return b.outOfBounds(firstClick)
	}

	excluded := make(map[int]struct{}, 9)
	excluded[b.index(firstClick)] = struct{}{}
	for _, n := range b.neighbors(firstClick) {
		excluded[b.index(n)] = struct{}{}
	}

	candidates := make([]int, 0, len(b.cells)-len(excluded))
	for i := range b.cells {
		if _, skip := excluded[i]; !skip {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) < b.difficulty.Mines {
		return newError(ErrInsufficientSpace, fmt.Sprintf(
			"cannot place %d mines: only %d cells lie outside the first click area", b.difficulty.Mines, len(candidates)))
	}

	b.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	for _, i := range candidates[:b.difficulty.Mines] {
		b.cells[i].PlaceMine()
	}

	for i := range b.cells {
		cell := &b.cells[i]
		if cell.hasMine {
			continue
		}
		// Eight neighbors at most, the count is always in range.
		_ = cell.SetAdjacentMines(b.countAdjacentMines(cell.position))
	}

	b.initialized = true
	return nil
}

// RevealCell opens the cell at pos and returns every position opened by this
// action. Opening a zero cell cascades over the connected zero region and its
// numbered border. A flagged or already revealed target yields an empty list.
func (b *Board) RevealCell(pos Position) ([]Position, error) {
	if !b.InBounds(pos) {
		return nil, b.outOfBounds(pos)
	}
	if !b.initialized {
		return nil, newError(ErrNotInitialized, "mines have not been placed yet")
	}

	start := b.index(pos)
	target := &b.cells[start]
	if !target.Reveal() {
		return []Position{}, nil
	}

	revealed := []Position{pos}
	if target.hasMine || target.adjacentMines != 0 {
		return revealed, nil
	}

	visited := make([]bool, len(b.cells))
	visited[start] = true
	queue := []int{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, n := range b.neighbors(b.cells[current].position) {
			i := b.index(n)
			if visited[i] {
				continue
			}
			visited[i] = true

			neighbor := &b.cells[i]
			if neighbor.hasMine || !neighbor.Reveal() {
				continue
			}
			revealed = append(revealed, n)
			if neighbor.adjacentMines == 0 {
				queue = append(queue, i)
			}
		}
	}

	return revealed, nil
}

// ToggleFlag cycles the flag on the cell at pos and returns its new state.
func (b *Board) ToggleFlag(pos Position) (CellState, error) {
	if !b.InBounds(pos) {
		return Hidden, b.outOfBounds(pos)
	}
	cell := &b.cells[b.index(pos)]
	if !cell.ToggleFlag() {
		return cell.state, newError(ErrCellRevealed, "Cannot flag a revealed cell")
	}
	return cell.state, nil
}

// ToggleQuestion cycles the question mark on the cell at pos and returns its
// new state.
func (b *Board) ToggleQuestion(pos Position) (CellState, error) {
	if !b.InBounds(pos) {
		return Hidden, b.outOfBounds(pos)
	}
	cell := &b.cells[b.index(pos)]
	if !cell.ToggleQuestion() {
		return cell.state, newError(ErrCellRevealed, "Cannot question a revealed cell")
	}
	return cell.state, nil
}

// RevealAllMines exposes every mine, flagged or not. Used when a game is lost.
func (b *Board) RevealAllMines() {
	for i := range b.cells {
		if b.cells[i].hasMine {
			b.cells[i].expose()
		}
	}
}

// AllSafeCellsRevealed is the win condition.
func (b *Board) AllSafeCellsRevealed() bool {
	if !b.initialized {
		return false
	}
	for i := range b.cells {
		if !b.cells[i].hasMine && b.cells[i].state != Revealed {
			return false
		}
	}
	return true
}

// AnyMineRevealed is the loss condition.
func (b *Board) AnyMineRevealed() bool {
	for i := range b.cells {
		if b.cells[i].hasMine && b.cells[i].state == Revealed {
			return true
		}
	}
	return false
}

// FlaggedCount returns the number of flagged cells.
func (b *Board) FlaggedCount() int {
	return b.countState(Flagged)
}

// RevealedCount returns the number of revealed cells, mines included.
func (b *Board) RevealedCount() int {
	return b.countState(Revealed)
}

// RevealedSafeCount returns the number of revealed cells without a mine.
func (b *Board) RevealedSafeCount() int {
	count := 0
	for i := range b.cells {
		if !b.cells[i].hasMine && b.cells[i].state == Revealed {
			count++
		}
	}
	return count
}

// SafeCellCount returns the number of cells that do not hold a mine.
func (b *Board) SafeCellCount() int {
	return b.difficulty.SafeCellCount()
}

// String renders the board the way the player sees it, one row per line.
func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < b.difficulty.Rows; row++ {
		for col := 0; col < b.difficulty.Cols; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(b.cells[row*b.difficulty.Cols+col].Glyph())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (b *Board) countState(state CellState) int {
	count := 0
	for i := range b.cells {
		if b.cells[i].state == state {
			count++
		}
	}
	return count
}

func (b *Board) countAdjacentMines(pos Position) int {
	count := 0
	for _, n := range b.neighbors(pos) {
		if b.cells[b.index(n)].hasMine {
			count++
		}
	}
	return count
}

// neighbors returns the adjacent positions that lie on the board.
func (b *Board) neighbors(pos Position) []Position {
	var result []Position
	for _, n := range pos.Adjacent() {
		if b.InBounds(n) {
			result = append(result, n)
		}
	}
	return result
}

func (b *Board) index(pos Position) int {
	return pos.Row*b.difficulty.Cols + pos.Col
}

func (b *Board) outOfBounds(pos Position) error {
	return newError(ErrInvalidPosition, fmt.Sprintf("position %s is outside the %dx%d board", pos, b.difficulty.Rows, b.difficulty.Cols))
}
