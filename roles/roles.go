// Package roles holds the closed set of role-tag constants shared by the
// demand, tasks, role, and spawn packages. It exists purely to avoid an
// import cycle between those packages; it contains no behaviour.
package roles

// Name is a role tag. The set is closed: adding a role means adding a
// constant here, a RoleController in package role, and demand/priority
// entries in package demand.
type Name = string

const (
	Harvester           Name = "harvester"
	Upgrader            Name = "upgrader"
	Builder             Name = "builder"
	Repairer            Name = "repairer"
	StationaryHarvester Name = "stationary_harvester"
	Hauler              Name = "hauler"
	RemoteMiner         Name = "remote_miner"
	RemoteHauler        Name = "remote_hauler"
	RemoteUpgrader      Name = "remote_upgrader"
	RemoteBuilder       Name = "remote_builder"
	Scout               Name = "scout"
	Attacker            Name = "attacker"
	Healer              Name = "healer"
	Dismantler          Name = "dismantler"
	Claimer             Name = "claimer"
)

// All lists every known role in a stable order, used where iteration order
// must be deterministic (e.g. building the default spawn priority list).
var All = []Name{
	Harvester, Upgrader, Builder, StationaryHarvester, Hauler, Repairer,
	RemoteMiner, RemoteHauler, RemoteUpgrader, RemoteBuilder,
	Scout, Attacker, Healer, Dismantler, Claimer,
}
