// Package fixture loads a colony tick's snapshot from a plain YAML
// document, for local development and the cmd/kernelctl CLI. It is not
// meant to be the host's real snapshot source: a production host builds
// snapshot.Snapshot directly from its own world state every tick.
package fixture

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/screeps-gpt/colonykernel/snapshot"
)

// Store is a plain energy store.
type Store struct {
	Energy   int `yaml:"energy"`
	Capacity int `yaml:"capacity"`
}

func (s Store) store() snapshot.Store { return store{s.Energy, s.Capacity - s.Energy} }

type store struct{ e, f int }

func (s store) Energy() int { return s.e }
func (s store) Free() int   { return s.f }

// Position is a room-local coordinate plus the owning room name.
type Position struct {
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
	Room string `yaml:"room"`
}

func (p Position) pos() snapshot.Position { return snapshot.Position{X: p.X, Y: p.Y, Room: p.Room} }

// Source describes one energy source.
type Source struct {
	ID          string   `yaml:"id"`
	Pos         Position `yaml:"pos"`
	Active      bool     `yaml:"active"`
	ContainerID string   `yaml:"container_id,omitempty"`
}

type sourceView struct{ s Source }

func (v sourceView) ID() string                 { return v.s.ID }
func (v sourceView) Position() snapshot.Position { return v.s.Pos.pos() }
func (v sourceView) Active() bool               { return v.s.Active }
func (v sourceView) AdjacentContainerID() (string, bool) {
	return v.s.ContainerID, v.s.ContainerID != ""
}

// Structure describes one placed structure.
type Structure struct {
	ID    string   `yaml:"id"`
	Kind  string   `yaml:"kind"`
	Pos   Position `yaml:"pos"`
	Hits  int      `yaml:"hits"`
	Max   int      `yaml:"hits_max"`
	Store Store    `yaml:"store"`
}

func parseKind(k string) snapshot.StructureKind {
	switch k {
	case "spawn":
		return snapshot.StructureSpawn
	case "extension":
		return snapshot.StructureExtension
	case "tower":
		return snapshot.StructureTower
	case "container":
		return snapshot.StructureContainer
	case "storage":
		return snapshot.StructureStorage
	case "road":
		return snapshot.StructureRoad
	case "rampart":
		return snapshot.StructureRampart
	case "wall":
		return snapshot.StructureWall
	case "controller":
		return snapshot.StructureController
	case "link":
		return snapshot.StructureLink
	default:
		return snapshot.StructureUnknown
	}
}

type structureView struct{ s Structure }

func (v structureView) ID() string                  { return v.s.ID }
func (v structureView) Kind() snapshot.StructureKind { return parseKind(v.s.Kind) }
func (v structureView) Position() snapshot.Position  { return v.s.Pos.pos() }
func (v structureView) Hits() int                    { return v.s.Hits }
func (v structureView) HitsMax() int                  { return v.s.Max }
func (v structureView) Store() snapshot.Store         { return v.s.Store.store() }

// Site describes a pending construction site.
type Site struct {
	ID   string   `yaml:"id"`
	Kind string   `yaml:"kind"`
	Pos  Position `yaml:"pos"`
}

type siteView struct{ s Site }

func (v siteView) ID() string                  { return v.s.ID }
func (v siteView) Kind() snapshot.StructureKind { return parseKind(v.s.Kind) }
func (v siteView) Position() snapshot.Position  { return v.s.Pos.pos() }

// Dropped describes energy lying on the ground.
type Dropped struct {
	ID     string   `yaml:"id"`
	Pos    Position `yaml:"pos"`
	Amount int      `yaml:"amount"`
}

type droppedView struct{ d Dropped }

func (v droppedView) ID() string                 { return v.d.ID }
func (v droppedView) Position() snapshot.Position { return v.d.Pos.pos() }
func (v droppedView) Amount() int                 { return v.d.Amount }

// RoomController describes a room's controller, if any.
type RoomController struct {
	ID    string   `yaml:"id"`
	Level int      `yaml:"level"`
	Pos   Position `yaml:"pos"`
}

type controllerView struct{ c RoomController }

func (v controllerView) ID() string                 { return v.c.ID }
func (v controllerView) Level() int                 { return v.c.Level }
func (v controllerView) Position() snapshot.Position { return v.c.Pos.pos() }

// Spawn describes one spawn structure.
type Spawn struct {
	ID            string `yaml:"id"`
	Pos           Position `yaml:"pos"`
	Spawning      bool   `yaml:"spawning"`
	CandidateName string `yaml:"candidate_name,omitempty"`
	RemainingTime int    `yaml:"remaining_time,omitempty"`
	Store         Store  `yaml:"store"`
}

type spawnView struct{ s *Spawn }

func (v spawnView) ID() string                 { return v.s.ID }
func (v spawnView) Room() string                { return v.s.Pos.Room }
func (v spawnView) Position() snapshot.Position { return v.s.Pos.pos() }
func (v spawnView) Spawning() bool              { return v.s.Spawning }
func (v spawnView) CandidateName() string       { return v.s.CandidateName }
func (v spawnView) RemainingTime() int          { return v.s.RemainingTime }
func (v spawnView) Store() snapshot.Store       { return v.s.Store.store() }

func (v spawnView) SpawnIntent(body []snapshot.BodyPart, name string, memoryInit map[string]any) (snapshot.SpawnStatus, error) {
	v.s.Spawning = true
	v.s.CandidateName = name
	v.s.RemainingTime = len(body) * 3
	return snapshot.SpawnOK, nil
}

// Room is one room's full fixture state.
type Room struct {
	Name              string      `yaml:"name"`
	Owned             bool        `yaml:"owned"`
	RCL               int         `yaml:"rcl"`
	EnergyAvailable   int         `yaml:"energy_available"`
	EnergyCapacity    int         `yaml:"energy_capacity"`
	Controller        *RoomController `yaml:"controller,omitempty"`
	Sources           []Source    `yaml:"sources,omitempty"`
	Structures        []Structure `yaml:"structures,omitempty"`
	ConstructionSites []Site      `yaml:"construction_sites,omitempty"`
	DroppedEnergy     []Dropped   `yaml:"dropped_energy,omitempty"`
	Spawns            []*Spawn    `yaml:"spawns,omitempty"`
}

type roomView struct{ r *Room }

func (v roomView) Name() string                { return v.r.Name }
func (v roomView) Owned() bool                 { return v.r.Owned }
func (v roomView) RCL() int                    { return v.r.RCL }
func (v roomView) EnergyAvailable() int         { return v.r.EnergyAvailable }
func (v roomView) EnergyCapacityAvailable() int { return v.r.EnergyCapacity }

func (v roomView) Controller() (snapshot.ControllerView, bool) {
	if v.r.Controller == nil {
		return nil, false
	}
	return controllerView{*v.r.Controller}, true
}

func (v roomView) Sources() []snapshot.SourceView {
	out := make([]snapshot.SourceView, len(v.r.Sources))
	for i, s := range v.r.Sources {
		out[i] = sourceView{s}
	}
	return out
}

func (v roomView) Structures() []snapshot.StructureView {
	out := make([]snapshot.StructureView, len(v.r.Structures))
	for i, s := range v.r.Structures {
		out[i] = structureView{s}
	}
	return out
}

func (v roomView) ConstructionSites() []snapshot.ConstructionSiteView {
	out := make([]snapshot.ConstructionSiteView, len(v.r.ConstructionSites))
	for i, s := range v.r.ConstructionSites {
		out[i] = siteView{s}
	}
	return out
}

func (v roomView) DroppedEnergy() []snapshot.DroppedResourceView {
	out := make([]snapshot.DroppedResourceView, len(v.r.DroppedEnergy))
	for i, d := range v.r.DroppedEnergy {
		out[i] = droppedView{d}
	}
	return out
}

func (v roomView) Spawns() []snapshot.SpawnView {
	out := make([]snapshot.SpawnView, len(v.r.Spawns))
	for i, s := range v.r.Spawns {
		out[i] = spawnView{s}
	}
	return out
}

// Unit describes one living creep.
type Unit struct {
	Name  string   `yaml:"name"`
	Role  string   `yaml:"role"`
	Pos   Position `yaml:"pos"`
	Carry Store    `yaml:"carry"`
}

type unitView struct{ u *Unit }

func (v unitView) Name() string                 { return v.u.Name }
func (v unitView) Role() string                 { return v.u.Role }
func (v unitView) Position() snapshot.Position  { return v.u.Pos.pos() }
func (v unitView) Room() string                 { return v.u.Pos.Room }
func (v unitView) Carry() snapshot.Store        { return v.u.Carry.store() }

// Every verb is a no-op that just drops the intent: a CLI fixture run
// doesn't simulate world mutation, it only reports what the kernel decided
// to do (see kernel.Summary.TasksByUnit).
func (v unitView) Harvest(string) error                 { return nil }
func (v unitView) Transfer(string, int) error            { return nil }
func (v unitView) Withdraw(string, int) error            { return nil }
func (v unitView) Pickup(string) error                   { return nil }
func (v unitView) Build(string) error                    { return nil }
func (v unitView) Repair(string) error                   { return nil }
func (v unitView) Upgrade(string) error                  { return nil }
func (v unitView) Claim(string) error                    { return nil }
func (v unitView) Attack(string) error                   { return nil }
func (v unitView) RangedAttack(string) error              { return nil }
func (v unitView) Heal(string) error                     { return nil }
func (v unitView) RangedHeal(string) error                { return nil }
func (v unitView) Dismantle(string) error                { return nil }
func (v unitView) Move(snapshot.Position, int) error     { return nil }

// CPU is the fixture's CPU accounting block.
type CPU struct {
	Used   float64 `yaml:"used"`
	Limit  float64 `yaml:"limit"`
	Bucket float64 `yaml:"bucket"`
}

func (c CPU) meter() snapshot.CPUMeter { return cpuMeter{c} }

type cpuMeter struct{ c CPU }

func (m cpuMeter) Used() float64   { return m.c.Used }
func (m cpuMeter) Limit() float64  { return m.c.Limit }
func (m cpuMeter) Bucket() float64 { return m.c.Bucket }

// Document is the top-level YAML shape a fixture file parses into.
type Document struct {
	Tick  uint64 `yaml:"tick"`
	CPU   CPU    `yaml:"cpu"`
	Rooms []*Room `yaml:"rooms"`
	Units []*Unit `yaml:"units"`
}

type snap struct {
	doc *Document
}

func (s snap) Tick() uint64     { return s.doc.Tick }
func (s snap) CPU() snapshot.CPUMeter { return s.doc.CPU.meter() }

func (s snap) Units() map[string]snapshot.UnitView {
	out := make(map[string]snapshot.UnitView, len(s.doc.Units))
	for _, u := range s.doc.Units {
		out[u.Name] = unitView{u}
	}
	return out
}

func (s snap) Spawns() map[string]snapshot.SpawnView {
	out := make(map[string]snapshot.SpawnView)
	for _, r := range s.doc.Rooms {
		for _, sp := range r.Spawns {
			out[sp.ID] = spawnView{sp}
		}
	}
	return out
}

func (s snap) Rooms() map[string]snapshot.RoomView {
	out := make(map[string]snapshot.RoomView, len(s.doc.Rooms))
	for _, r := range s.doc.Rooms {
		out[r.Name] = roomView{r}
	}
	return out
}

// Load reads a YAML fixture file and returns a ready-to-run snapshot.Snapshot.
func Load(path string) (snapshot.Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return snap{doc: &doc}, nil
}
