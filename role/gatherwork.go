package role

// StateGathering and StateWorking are the two-state cycle shared by every
// self-supplying economy role: gather energy until full, then work until
// empty. Hauler reuses this table directly (gathering is pickup, working is
// deliver); harvester and builder embed the same full/empty events in their
// own larger tables.
const (
	StateGathering State = "gathering"
	StateWorking   State = "working"
)

const (
	EventFull  Event = "full"
	EventEmpty Event = "empty"
)

var gatherWorkTable = Table{
	StateGathering: {EventFull: {Next: StateWorking}},
	StateWorking:   {EventEmpty: {Next: StateGathering}},
}
