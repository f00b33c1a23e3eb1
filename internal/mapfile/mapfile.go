// Package mapfile parses the plain-text map format spec.md §6 and
// original_source/MapData.h describe: a title line, four positional
// headers, then a character grid. Grounded on
// original_source/Simulator/MapParser.cpp.
package mapfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/yaelsagi2/tanks-game3/internal/common"
	"github.com/yaelsagi2/tanks-game3/internal/core"
)

// Warning is a single recoverable defect found while parsing the grid
// body — an unrecognized character, or a line that had to be padded or
// truncated. Warnings never change the parsed result; they are written
// to input_errors.txt for a human to inspect.
type Warning struct {
	Line int
	Col  int
	Char byte
	Msg  string
}

// TankSpawn is a tank placement read from the grid, before Board
// assigns per-player tank ids.
type TankSpawn struct {
	PlayerID int
	Pos      core.Point
}

// MapData is the parsed, immutable result of Parse. It satisfies
// algorithm.SatelliteView (At(x, y int) byte). The engine does not take
// a SatelliteView: every match is built by copying MapData's walls,
// mines and tanks into a core.Board (buildBoard in cmd/tankgame and in
// internal/tournament).
type MapData struct {
	MaxSteps  int
	NumShells int
	Rows      int
	Cols      int

	tanks []TankSpawn
	walls []core.Point
	mines []core.Point
	grid  [][]byte
}

func (m *MapData) Tanks() []TankSpawn {
	out := make([]TankSpawn, len(m.tanks))
	copy(out, m.tanks)
	return out
}

func (m *MapData) Walls() []core.Point {
	out := make([]core.Point, len(m.walls))
	copy(out, m.walls)
	return out
}

func (m *MapData) Mines() []core.Point {
	out := make([]core.Point, len(m.mines))
	copy(out, m.mines)
	return out
}

// At satisfies algorithm.SatelliteView: x is the row, y is the column,
// matching core.Point's X=row/Y=col convention.
func (m *MapData) At(x, y int) byte {
	if x < 0 || x >= m.Rows || y < 0 || y >= m.Cols {
		return ' '
	}
	return m.grid[x][y]
}

const (
	charWall    = '#'
	charMine    = '@'
	charPlayer1 = '1'
	charPlayer2 = '2'
)

// Parse reads a map file body from r. Header errors (missing/unparsable
// keys, out-of-order keys, non-positive values) are fatal and returned
// as error; grid-body defects are collected as Warning and never fail
// the parse.
func Parse(r io.Reader) (*MapData, []Warning, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	if !scanner.Scan() {
		return nil, nil, fmt.Errorf("mapfile: line 1: %w", core.ErrInputMalformed)
	}
	// line 1 (map title) is ignored.

	maxSteps, err := readHeader(scanner, "MaxSteps", 2)
	if err != nil {
		return nil, nil, err
	}
	numShells, err := readHeader(scanner, "NumShells", 3)
	if err != nil {
		return nil, nil, err
	}
	rows, err := readHeader(scanner, "Rows", 4)
	if err != nil {
		return nil, nil, err
	}
	cols, err := readHeader(scanner, "Cols", 5)
	if err != nil {
		return nil, nil, err
	}

	m := &MapData{MaxSteps: maxSteps, NumShells: numShells, Rows: rows, Cols: cols}
	var warnings []Warning

	m.grid = make([][]byte, rows)
	for r := range m.grid {
		m.grid[r] = make([]byte, cols)
		for c := range m.grid[r] {
			m.grid[r][c] = ' '
		}
	}

	actualRow := 0
	for actualRow < rows && scanner.Scan() {
		line := normalizeLine(scanner.Text(), cols, actualRow+6, &warnings)
		for c := 0; c < cols; c++ {
			warnings = m.placeCell(line[c], actualRow, c, warnings)
		}
		actualRow++
	}
	for ; actualRow < rows; actualRow++ {
		warnings = append(warnings, Warning{
			Line: actualRow + 6, Msg: "missing line, padding with spaces.",
		})
	}
	if scanner.Scan() {
		warnings = append(warnings, Warning{Msg: "extra lines beyond declared Rows ignored."})
	}
	if err := scanner.Err(); err != nil {
		return nil, warnings, fmt.Errorf("mapfile: %w: %v", core.ErrInputMalformed, err)
	}

	return m, warnings, nil
}

// readHeader parses one "Key=value" line; a missing, misordered, or
// non-positive value is a fatal InputError, not a Warning — the engine
// cannot run without valid dimensions (spec.md §7).
func readHeader(scanner *bufio.Scanner, key string, line int) (int, error) {
	if !scanner.Scan() {
		return 0, fmt.Errorf("mapfile: line %d: expected header %q: %w", line, key+"=...", core.ErrInputMalformed)
	}
	raw := strings.TrimSpace(scanner.Text())
	k, v, found := strings.Cut(raw, "=")
	if !found || strings.TrimSpace(k) != key {
		return 0, fmt.Errorf("mapfile: line %d: expected header %q, found %q: %w", line, key, raw, core.ErrInputMalformed)
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("mapfile: line %d: invalid value for %q: %w", line, key, core.ErrInputMalformed)
	}
	if n <= 0 {
		return 0, fmt.Errorf("mapfile: line %d: %s must be positive: %w", line, key, core.ErrNonPositiveHeader)
	}
	return n, nil
}

// normalizeLine pads or truncates line to exactly cols runes, recording
// a Warning when it had to.
func normalizeLine(line string, cols, lineNum int, warnings *[]Warning) []byte {
	b := []byte(strings.TrimRight(line, "\r"))
	switch {
	case len(b) < cols:
		*warnings = append(*warnings, Warning{Line: lineNum, Msg: "line too short, padding with spaces."})
		padded := make([]byte, cols)
		copy(padded, b[:common.Min(len(b), cols)])
		for i := len(b); i < cols; i++ {
			padded[i] = ' '
		}
		b = padded
	case len(b) > cols:
		*warnings = append(*warnings, Warning{Line: lineNum, Msg: "line too long, trimming."})
		b = b[:common.Max(cols, 0)]
	}
	return b
}

func (m *MapData) placeCell(ch byte, row, col int, warnings []Warning) []Warning {
	pos := core.Point{X: row, Y: col}
	switch ch {
	case charWall:
		m.grid[row][col] = charWall
		m.walls = append(m.walls, pos)
	case charMine:
		m.grid[row][col] = charMine
		m.mines = append(m.mines, pos)
	case charPlayer1:
		m.grid[row][col] = charPlayer1
		m.tanks = append(m.tanks, TankSpawn{PlayerID: 0, Pos: pos})
	case charPlayer2:
		m.grid[row][col] = charPlayer2
		m.tanks = append(m.tanks, TankSpawn{PlayerID: 1, Pos: pos})
	case ' ', '\t':
		// already space-filled
	default:
		if ch > ' ' {
			warnings = append(warnings, Warning{
				Line: row + 6, Col: col, Char: ch,
				Msg: fmt.Sprintf("illegal character %q ignored.", ch),
			})
		}
	}
	return warnings
}

// WriteWarnings renders warnings to path, one line per warning,
// matching the teacher's advisory log-file convention. Never returns an
// error for an empty warning set without touching the filesystem.
func WriteWarnings(path string, warnings []Warning) error {
	if len(warnings) == 0 {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("mapfile: write warnings: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, warn := range warnings {
		if _, err := fmt.Fprintln(w, warn.String()); err != nil {
			return fmt.Errorf("mapfile: write warnings: %w", err)
		}
	}
	return w.Flush()
}

func (w Warning) String() string {
	if w.Line == 0 {
		return w.Msg
	}
	if w.Char != 0 {
		return fmt.Sprintf("Line %d: %s", w.Line, w.Msg)
	}
	return fmt.Sprintf("Line %d: %s", w.Line, w.Msg)
}
