// Package algorithm defines the tank-decision contract (spec.md §4.10)
// and the engine-side collaborators that deliver battle-info snapshots
// to it.
package algorithm

import (
	"github.com/yaelsagi2/tanks-game3/internal/battleinfo"
	"github.com/yaelsagi2/tanks-game3/internal/core"
)

// SatelliteView is a read-only grid snapshot, grounded on
// common/SatelliteView.h. Both battleinfo.View and a freshly parsed
// mapfile.MapData satisfy it. The engine does not accept one: a match
// starts from a core.Board built from the parsed map.
type SatelliteView interface {
	At(x, y int) byte
}

// TankAlgorithm is the opaque per-tank decision routine. It never
// mutates engine state directly; GetAction is called once per tick for
// every live tank, and UpdateBattleInfo is called whenever the engine
// honors that tank's GetBattleInfo request.
type TankAlgorithm interface {
	GetAction() core.Action
	UpdateBattleInfo(view *battleinfo.View)
}

// Factory constructs the TankAlgorithm for one (playerID, tankID) pair.
// Factories must be deterministic: the same sequence of views fed to
// algorithms built from the same factory must yield the same actions.
type Factory func(playerID, tankID int) TankAlgorithm

// PlayerController is the per-player collaborator the engine calls on
// GetBattleInfo, grounded on common/Player.h. It decodes the grid for
// the tank that requested it — in this reimplementation decoding is a
// pass-through, since TankAlgorithm already receives the grid directly.
type PlayerController struct {
	PlayerID int
	Rows     int
	Cols     int
	MaxSteps int
	NumShells int
}

func NewPlayerController(playerID, rows, cols, maxSteps, numShells int) *PlayerController {
	return &PlayerController{
		PlayerID:  playerID,
		Rows:      rows,
		Cols:      cols,
		MaxSteps:  maxSteps,
		NumShells: numShells,
	}
}

// UpdateTankWithBattleInfo forwards a freshly-built view to the tank
// that requested it.
func (p *PlayerController) UpdateTankWithBattleInfo(tank TankAlgorithm, view *battleinfo.View) {
	tank.UpdateBattleInfo(view)
}

// Registry resolves algorithm factories by name, standing in for the
// dynamic plug-in loading spec.md §1 puts out of scope: this
// reimplementation has no .so loader, so "algorithms_folder" becomes a
// list of names resolved here in-process.
type Registry struct {
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

func (r *Registry) Lookup(name string) (Factory, bool) {
	f, ok := r.factories[name]
	return f, ok
}

func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.factories))
	for name := range r.factories {
		out = append(out, name)
	}
	return out
}
