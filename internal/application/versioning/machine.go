package versioning

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// Stage is the progress of a calculation run.
type Stage string

// Run stages, in order. StageFailed is terminal and reachable from any
// non-final stage.
const (
	StagePending    Stage = "pending"
	StageDiscovered Stage = "discovered"
	StageWalked     Stage = "walked"
	StageCalculated Stage = "calculated"
	StageChecked    Stage = "checked"
	StageFailed     Stage = "failed"
)

// RunContext is the context carried by the run machine.
type RunContext struct {
	RunID string
}

// Event names for the run machine.
const (
	EventDiscover  statekit.EventType = "DISCOVER"
	EventWalk      statekit.EventType = "WALK"
	EventCalculate statekit.EventType = "CALCULATE"
	EventCheck     statekit.EventType = "CHECK"
	EventFail      statekit.EventType = "FAIL"
)

var (
	stateIDPending    = statekit.StateID(StagePending)
	stateIDDiscovered = statekit.StateID(StageDiscovered)
	stateIDWalked     = statekit.StateID(StageWalked)
	stateIDCalculated = statekit.StateID(StageCalculated)
	stateIDChecked    = statekit.StateID(StageChecked)
	stateIDFailed     = statekit.StateID(StageFailed)
)

// RunMachine tracks one calculation run through its stages.
type RunMachine struct {
	interpreter *statekit.Interpreter[RunContext]
}

// NewRunMachine builds and starts a run machine in StagePending.
func NewRunMachine() (*RunMachine, error) {
	machine, err := statekit.NewMachine[RunContext]("nextver-run").
		WithInitial(stateIDPending).
		State(stateIDPending).
		On(EventDiscover).Target(stateIDDiscovered).
		On(EventFail).Target(stateIDFailed).
		Done().
		State(stateIDDiscovered).
		On(EventWalk).Target(stateIDWalked).
		On(EventFail).Target(stateIDFailed).
		Done().
		State(stateIDWalked).
		On(EventCalculate).Target(stateIDCalculated).
		On(EventFail).Target(stateIDFailed).
		Done().
		State(stateIDCalculated).
		On(EventCheck).Target(stateIDChecked).
		On(EventFail).Target(stateIDFailed).
		Done().
		State(stateIDChecked).
		Final().
		Done().
		State(stateIDFailed).
		Final().
		Done().
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build run machine: %w", err)
	}

	m := &RunMachine{interpreter: statekit.NewInterpreter(machine)}
	m.interpreter.Start()
	return m, nil
}

// Send sends an event to the machine. Events with no transition from the
// current stage are ignored.
func (m *RunMachine) Send(event statekit.EventType) {
	m.interpreter.Send(statekit.Event{Type: event})
}

// Stage returns the current stage.
func (m *RunMachine) Stage() Stage {
	return Stage(m.interpreter.State().Value)
}

// IsDone returns true once the run has been checked or has failed.
func (m *RunMachine) IsDone() bool {
	return m.interpreter.Done()
}
