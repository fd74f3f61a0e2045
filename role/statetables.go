package role

// States and events for every multi-state role beyond the generic
// gather/work cycle in gatherwork.go. Each table is the static transition
// function a Machine is restored against every tick; see
// acquireTask/restoreMachine/commitMachine in helpers.go for how a
// Controller threads one through Execute.

const (
	StateHarvest State = "harvest"
	StateDeliver State = "deliver"
	StateUpgrade State = "upgrade"
)

const (
	EventNoDeliveryTarget Event = "no_delivery_target"
)

// harvesterTable implements the {harvest, deliver, upgrade} cycle: harvest
// until full, then deliver; if no owned structure wants energy, fall back
// to upgrading the controller directly rather than sit on a full carry.
var harvesterTable = Table{
	StateHarvest: {EventFull: {Next: StateDeliver}},
	StateDeliver: {
		EventEmpty:            {Next: StateHarvest},
		EventNoDeliveryTarget: {Next: StateUpgrade},
	},
	StateUpgrade: {EventEmpty: {Next: StateHarvest}},
}

const (
	StateGather   State = "gather"
	StateBuild    State = "build"
	StateMaintain State = "maintain"
)

const (
	EventNoSites    Event = "no_sites"
	EventSitesFound Event = "sites_found"
)

// builderTable implements the {gather, build, maintain} cycle: gather until
// it has energy to spend, build while sites exist, and fall back to
// maintain once the site list runs dry so the unit still reports something
// other than idle while waiting for new work.
var builderTable = Table{
	StateGather: {EventFull: {Next: StateBuild}},
	StateBuild: {
		EventEmpty:   {Next: StateGather},
		EventNoSites: {Next: StateMaintain},
	},
	StateMaintain: {
		EventEmpty:      {Next: StateGather},
		EventSitesFound: {Next: StateBuild},
	},
}

const (
	StateTravel State = "travel"
	StateWork   State = "work"
	StateReturn State = "return"
)

const (
	EventArrived        Event = "arrived"
	EventLostVisibility Event = "lost_visibility"
)

// remoteTable implements the full {travel, work, return} cycle used by
// remote_hauler: travel to the target room, work (gather) once arrived,
// and return home once carrying a full load.
var remoteTable = Table{
	StateTravel: {EventArrived: {Next: StateWork}},
	StateWork: {
		EventFull:           {Next: StateReturn},
		EventLostVisibility: {Next: StateTravel},
	},
	StateReturn: {
		EventEmpty:          {Next: StateTravel},
		EventLostVisibility: {Next: StateTravel},
	},
}

// remoteWorkerTable implements the {travel, work} half of the cycle for
// remote roles that consume energy in the target room instead of hauling it
// home (remote_miner drops it for a hauler; remote_upgrader/remote_builder
// spend it locally), so there is no return leg to model.
var remoteWorkerTable = Table{
	StateTravel: {EventArrived: {Next: StateWork}},
	StateWork:   {EventLostVisibility: {Next: StateTravel}},
}

// StateClaim is claimer's terminal state: once arrived, it claims every
// tick until the controller reports owned and the colony manager retires
// the unit's expansion request.
const StateClaim State = "claim"

var claimerTable = Table{
	StateTravel: {EventArrived: {Next: StateClaim}},
}
