// Package role implements the RoleController registry and
// the table-driven StateMachine runtime shared by every
// role, plus one controller per role.
package role

import (
	"encoding/json"

	"github.com/screeps-gpt/colonykernel/blackboard"
)

// State and Event are pure descriptors, never tied to a particular role
// beyond the table that interprets them.
type State string
type Event string

// Context is the role-specific data a state machine instance carries
// between ticks. UnitName is re-injected every tick from the live snapshot
// and is never part of the serialized record.
type Context struct {
	UnitName string
	Data     map[string]any
}

// Effect mutates Context as a pure side effect of a transition.
type Effect func(*Context)

// Transition is the result of firing an Event from a State.
type Transition struct {
	Next   State
	Effect Effect
}

// Table is a role's static, table-driven transition function.
type Table map[State]map[Event]Transition

// Machine is one unit's state machine instance.
type Machine struct {
	table Table
	state State
	ctx   *Context
}

// NewMachine creates a fresh Machine at the table's initial state.
func NewMachine(table Table, initial State, unitName string) *Machine {
	return &Machine{table: table, state: initial, ctx: &Context{UnitName: unitName, Data: map[string]any{}}}
}

// State returns the machine's current state.
func (m *Machine) State() State { return m.state }

// Context returns the machine's mutable context.
func (m *Machine) Context() *Context { return m.ctx }

// Fire applies the transition for (state, event), if one is defined.
// Reports whether a transition occurred.
func (m *Machine) Fire(event Event) bool {
	row, ok := m.table[m.state]
	if !ok {
		return false
	}
	t, ok := row[event]
	if !ok {
		return false
	}
	if t.Effect != nil {
		t.Effect(m.ctx)
	}
	m.state = t.Next
	return true
}

// Goto forces the machine into state directly, bypassing the table. Used by
// controllers implementing their own pre-emption rules (e.g. the
// harvester's forced deliver-on-low-spawn override), which are explicitly
// allowed to override the current state.
func (m *Machine) Goto(state State) {
	m.state = state
}

// Serialize produces the persisted record assigned to
// blackboard.UnitMemory.StateMachine.
func Serialize(m *Machine) (*blackboard.StateRecord, error) {
	data, err := json.Marshal(m.ctx.Data)
	if err != nil {
		return nil, err
	}
	return &blackboard.StateRecord{State: string(m.state), Context: data}, nil
}

// Restore rebuilds a Machine from a persisted record using the role's
// static table, re-injecting the live unit name. restore(serialize(m)) is
// equal to m modulo the unit handle.
func Restore(table Table, initial State, unitName string, rec *blackboard.StateRecord) *Machine {
	m := NewMachine(table, initial, unitName)
	if rec == nil {
		return m
	}
	if rec.State != "" {
		m.state = State(rec.State)
	}
	if len(rec.Context) > 0 {
		var data map[string]any
		if err := json.Unmarshal(rec.Context, &data); err == nil {
			m.ctx.Data = data
		}
	}
	return m
}
