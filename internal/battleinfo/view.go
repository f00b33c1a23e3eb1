// Package battleinfo builds the read-only character-grid snapshot an
// engine hands to a tank's algorithm on GetBattleInfo (spec.md §4.8).
package battleinfo

import (
	"strings"

	"github.com/yaelsagi2/tanks-game3/internal/core"
)

const (
	CharEmpty   = ' '
	CharWall    = '#'
	CharMine    = '@'
	CharShell   = '*'
	CharEnemy1  = '1'
	CharEnemy2  = '2'
	CharSelf    = '%'
	CharOutside = '&'
)

// View is an immutable, fully-detached grid snapshot from one tank's
// vantage point. Built once per GetBattleInfo request; never mutated.
type View struct {
	Rows, Cols int
	grid       [][]byte
	ViewerPos  core.Point
}

// Build renders the entire board as seen by viewer (spec.md §4.8): every
// cell shows the board's contents, except the viewer's own cell which is
// always CharSelf, even if the viewer isn't there (tagged dead, by
// construction this never happens since dead tanks can't request info).
func Build(b *core.Board, viewerID core.EntityID) *View {
	v := &View{
		Rows: b.Rows,
		Cols: b.Cols,
		grid: make([][]byte, b.Rows),
	}
	for r := range v.grid {
		row := make([]byte, b.Cols)
		for c := range row {
			row[c] = CharEmpty
		}
		v.grid[r] = row
	}

	viewer, ok := b.Get(viewerID)
	if ok {
		v.ViewerPos = viewer.Pos
	}

	for _, id := range b.EachKind(core.KindWall) {
		e, _ := b.Get(id)
		v.set(e.Pos, CharWall)
	}
	for _, id := range b.EachKind(core.KindMine) {
		e, _ := b.Get(id)
		v.set(e.Pos, CharMine)
	}
	for _, id := range b.EachKind(core.KindTank) {
		e, _ := b.Get(id)
		if id == viewerID {
			continue
		}
		// The grid shows a tank's owning player number (1 or 2), not
		// ally/enemy — spec.md §4.8 leaves the ally/enemy distinction
		// to the algorithm decoding the grid.
		if e.Tank.PlayerID == 0 {
			v.set(e.Pos, CharEnemy1)
		} else {
			v.set(e.Pos, CharEnemy2)
		}
	}
	for _, id := range b.EachKind(core.KindShell) {
		e, _ := b.Get(id)
		v.set(e.Pos, CharShell)
	}
	if ok {
		v.set(viewer.Pos, CharSelf)
	}

	return v
}

func (v *View) set(p core.Point, ch byte) {
	if p.X < 0 || p.X >= v.Rows || p.Y < 0 || p.Y >= v.Cols {
		return
	}
	v.grid[p.X][p.Y] = ch
}

// At returns the character at (x, y), or CharOutside if out of bounds —
// this should never happen for a valid query (spec.md §4.8).
func (v *View) At(x, y int) byte {
	if x < 0 || x >= v.Rows || y < 0 || y >= v.Cols {
		return CharOutside
	}
	return v.grid[x][y]
}

// Row returns a copy of grid row r as a string, for rendering comparative
// results and demo output.
func (v *View) Row(r int) string {
	if r < 0 || r >= v.Rows {
		return ""
	}
	return string(v.grid[r])
}

// String renders the full grid, one row per line.
func (v *View) String() string {
	var sb strings.Builder
	for r := 0; r < v.Rows; r++ {
		sb.WriteString(v.Row(r))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Grid returns the underlying grid, copied, for algorithms that want to
// scan it directly rather than call At repeatedly.
func (v *View) Grid() [][]byte {
	out := make([][]byte, v.Rows)
	for i, row := range v.grid {
		cp := make([]byte, len(row))
		copy(cp, row)
		out[i] = cp
	}
	return out
}
