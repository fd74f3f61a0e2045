// Package testutil provides minimal, hand-rolled fakes for the snapshot
// interfaces so every package's tests can build a tick input without
// depending on a real host. Nothing here is exported production code; the
// demand, kernel, role, spawn and tasks tests all build their inputs from it.
package testutil

import "github.com/screeps-gpt/colonykernel/snapshot"

// Store is a plain value implementing snapshot.Store.
type Store struct {
	E, F int
}

func (s Store) Energy() int { return s.E }
func (s Store) Free() int   { return s.F }

// Structure implements snapshot.StructureView.
type Structure struct {
	IDV      string
	KindV    snapshot.StructureKind
	Pos      snapshot.Position
	HitsV    int
	HitsMaxV int
	StoreV   Store
}

func (s *Structure) ID() string                  { return s.IDV }
func (s *Structure) Kind() snapshot.StructureKind { return s.KindV }
func (s *Structure) Position() snapshot.Position  { return s.Pos }
func (s *Structure) Hits() int                    { return s.HitsV }
func (s *Structure) HitsMax() int                 { return s.HitsMaxV }
func (s *Structure) Store() snapshot.Store        { return s.StoreV }

// Source implements snapshot.SourceView.
type Source struct {
	IDV          string
	Pos          snapshot.Position
	ActiveV      bool
	ContainerID  string
	HasContainer bool
}

func (s *Source) ID() string                 { return s.IDV }
func (s *Source) Position() snapshot.Position { return s.Pos }
func (s *Source) Active() bool               { return s.ActiveV }
func (s *Source) AdjacentContainerID() (string, bool) {
	return s.ContainerID, s.HasContainer
}

// Site implements snapshot.ConstructionSiteView.
type Site struct {
	IDV   string
	KindV snapshot.StructureKind
	Pos   snapshot.Position
}

func (s *Site) ID() string                  { return s.IDV }
func (s *Site) Kind() snapshot.StructureKind { return s.KindV }
func (s *Site) Position() snapshot.Position  { return s.Pos }

// Dropped implements snapshot.DroppedResourceView.
type Dropped struct {
	IDV     string
	Pos     snapshot.Position
	AmountV int
}

func (d *Dropped) ID() string                 { return d.IDV }
func (d *Dropped) Position() snapshot.Position { return d.Pos }
func (d *Dropped) Amount() int                { return d.AmountV }

// Controller implements snapshot.ControllerView.
type Controller struct {
	IDV    string
	LevelV int
	Pos    snapshot.Position
}

func (c *Controller) ID() string                 { return c.IDV }
func (c *Controller) Level() int                 { return c.LevelV }
func (c *Controller) Position() snapshot.Position { return c.Pos }

// Call records one verb invocation made against a Unit, for assertions.
type Call struct {
	Verb   string
	Target string
	Amount int
}

// Unit implements snapshot.UnitView and records every verb call it receives.
type Unit struct {
	NameV string
	RoleV string
	Pos   snapshot.Position
	CarryV Store

	Calls    []Call
	MoveGoal snapshot.Position
	MovePrio int
	Err      error
}

func (u *Unit) Name() string            { return u.NameV }
func (u *Unit) Role() string            { return u.RoleV }
func (u *Unit) Position() snapshot.Position { return u.Pos }
func (u *Unit) Room() string            { return u.Pos.Room }
func (u *Unit) Carry() snapshot.Store   { return u.CarryV }

func (u *Unit) record(verb, target string, amount int) error {
	u.Calls = append(u.Calls, Call{Verb: verb, Target: target, Amount: amount})
	return u.Err
}

func (u *Unit) Harvest(id string) error                 { return u.record("harvest", id, 0) }
func (u *Unit) Transfer(id string, amount int) error     { return u.record("transfer", id, amount) }
func (u *Unit) Withdraw(id string, amount int) error     { return u.record("withdraw", id, amount) }
func (u *Unit) Pickup(id string) error                   { return u.record("pickup", id, 0) }
func (u *Unit) Build(id string) error                    { return u.record("build", id, 0) }
func (u *Unit) Repair(id string) error                   { return u.record("repair", id, 0) }
func (u *Unit) Upgrade(id string) error                  { return u.record("upgrade", id, 0) }
func (u *Unit) Claim(id string) error                    { return u.record("claim", id, 0) }
func (u *Unit) Attack(id string) error                   { return u.record("attack", id, 0) }
func (u *Unit) RangedAttack(id string) error             { return u.record("ranged_attack", id, 0) }
func (u *Unit) Heal(id string) error                     { return u.record("heal", id, 0) }
func (u *Unit) RangedHeal(id string) error                { return u.record("ranged_heal", id, 0) }
func (u *Unit) Dismantle(id string) error                { return u.record("dismantle", id, 0) }

func (u *Unit) Move(goal snapshot.Position, priority int) error {
	u.MoveGoal = goal
	u.MovePrio = priority
	return u.record("move", goal.Room, priority)
}

// SpawnIntentCall records one SpawnIntent invocation.
type SpawnIntentCall struct {
	Body       []snapshot.BodyPart
	Name       string
	MemoryInit map[string]any
}

// Spawn implements snapshot.SpawnView.
type Spawn struct {
	IDV            string
	RoomV          string
	Pos            snapshot.Position
	SpawningV      bool
	CandidateNameV string
	RemainingTimeV int
	NextStatus     snapshot.SpawnStatus
	NextErr        error
	IntentCalls    []SpawnIntentCall
	StoreV         Store
}

func (s *Spawn) ID() string                 { return s.IDV }
func (s *Spawn) Room() string                { return s.RoomV }
func (s *Spawn) Position() snapshot.Position { return s.Pos }
func (s *Spawn) Spawning() bool              { return s.SpawningV }
func (s *Spawn) CandidateName() string       { return s.CandidateNameV }
func (s *Spawn) RemainingTime() int          { return s.RemainingTimeV }
func (s *Spawn) Store() snapshot.Store       { return s.StoreV }

func (s *Spawn) SpawnIntent(body []snapshot.BodyPart, name string, memoryInit map[string]any) (snapshot.SpawnStatus, error) {
	s.IntentCalls = append(s.IntentCalls, SpawnIntentCall{Body: body, Name: name, MemoryInit: memoryInit})
	if s.NextErr != nil {
		return s.NextStatus, s.NextErr
	}
	s.SpawningV = true
	s.CandidateNameV = name
	return s.NextStatus, nil
}

// Room implements snapshot.RoomView.
type Room struct {
	NameV              string
	OwnedV             bool
	RCLV               int
	EnergyAvailableV   int
	EnergyCapacityV    int
	ControllerV        *Controller
	SourcesV           []snapshot.SourceView
	SpawnsV            []snapshot.SpawnView
	StructuresV        []snapshot.StructureView
	ConstructionSitesV []snapshot.ConstructionSiteView
	DroppedEnergyV     []snapshot.DroppedResourceView
}

func (r *Room) Name() string  { return r.NameV }
func (r *Room) Owned() bool   { return r.OwnedV }
func (r *Room) RCL() int      { return r.RCLV }
func (r *Room) EnergyAvailable() int         { return r.EnergyAvailableV }
func (r *Room) EnergyCapacityAvailable() int { return r.EnergyCapacityV }

func (r *Room) Controller() (snapshot.ControllerView, bool) {
	if r.ControllerV == nil {
		return nil, false
	}
	return r.ControllerV, true
}

func (r *Room) Sources() []snapshot.SourceView                     { return r.SourcesV }
func (r *Room) Spawns() []snapshot.SpawnView                       { return r.SpawnsV }
func (r *Room) Structures() []snapshot.StructureView                { return r.StructuresV }
func (r *Room) ConstructionSites() []snapshot.ConstructionSiteView { return r.ConstructionSitesV }
func (r *Room) DroppedEnergy() []snapshot.DroppedResourceView       { return r.DroppedEnergyV }

// CPU implements snapshot.CPUMeter.
type CPU struct {
	UsedV, LimitV, BucketV float64
}

func (c CPU) Used() float64   { return c.UsedV }
func (c CPU) Limit() float64  { return c.LimitV }
func (c CPU) Bucket() float64 { return c.BucketV }

// Snapshot implements snapshot.Snapshot.
type Snapshot struct {
	TickV   uint64
	CPUV    CPU
	UnitsV  map[string]snapshot.UnitView
	SpawnsV map[string]snapshot.SpawnView
	RoomsV  map[string]snapshot.RoomView
}

// NewSnapshot returns an empty, ready-to-populate Snapshot.
func NewSnapshot(tick uint64) *Snapshot {
	return &Snapshot{
		TickV:   tick,
		UnitsV:  make(map[string]snapshot.UnitView),
		SpawnsV: make(map[string]snapshot.SpawnView),
		RoomsV:  make(map[string]snapshot.RoomView),
	}
}

func (s *Snapshot) Tick() uint64                        { return s.TickV }
func (s *Snapshot) CPU() snapshot.CPUMeter               { return s.CPUV }
func (s *Snapshot) Units() map[string]snapshot.UnitView  { return s.UnitsV }
func (s *Snapshot) Spawns() map[string]snapshot.SpawnView { return s.SpawnsV }
func (s *Snapshot) Rooms() map[string]snapshot.RoomView  { return s.RoomsV }
