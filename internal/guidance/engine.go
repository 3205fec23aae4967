// Package guidance drives one topic's interactive checklist: completion
// tracking, derived trigger affordances (cooling timers, injection
// timestamps) and progress.
package guidance

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nafisahi/swiftaid/internal/models"
	"github.com/nafisahi/swiftaid/internal/timer"
)

// Error variables for checklist operations.
var (
	ErrUnknownStep        = fmt.Errorf("unknown step")
	ErrInstructionIndex   = fmt.Errorf("instruction index out of range")
	ErrNoTimerForStep     = fmt.Errorf("step has no armed timer")
	ErrUnsupportedTimerOp = fmt.Errorf("unsupported timer action")
)

// TimerAction names an operation on a step's armed countdown.
type TimerAction string

const (
	TimerActionStart   TimerAction = "start"
	TimerActionStop    TimerAction = "stop"
	TimerActionReset   TimerAction = "reset"
	TimerActionRestart TimerAction = "restart"
)

// Engine owns the checklist state for a single topic instance. State is
// discarded when the engine is closed; nothing is persisted.
//
// Completion is keyed on (stepID, instructionIndex) rather than instruction
// text, so identical wording across steps cannot collide.
type Engine struct {
	mu         sync.Mutex
	topic      *models.Topic
	steps      map[string]*models.Step
	completed  map[models.InstructionRef]struct{}
	timers     map[string]*timer.Countdown // stepID -> armed countdown
	timestamps map[string]time.Time        // stepID -> affordance timestamp
	closed     bool
	now        func() time.Time
}

// NewEngine creates the checklist engine for one topic.
func NewEngine(topic *models.Topic) *Engine {
	steps := make(map[string]*models.Step, len(topic.Steps))
	for i := range topic.Steps {
		steps[topic.Steps[i].ID] = &topic.Steps[i]
	}
	slog.Debug("Creating guidance engine", "topic", topic.ID, "steps", len(steps))
	return &Engine{
		topic:      topic,
		steps:      steps,
		completed:  make(map[models.InstructionRef]struct{}),
		timers:     make(map[string]*timer.Countdown),
		timestamps: make(map[string]time.Time),
		now:        time.Now,
	}
}

// Topic returns the topic this engine drives.
func (e *Engine) Topic() *models.Topic {
	return e.topic
}

// Toggle flips the completion state of one instruction and returns the new
// state. Toggling the step's trigger instruction ON arms its affordance
// (starts a timer or records a timestamp); toggling it OFF disarms it.
func (e *Engine) Toggle(ref models.InstructionRef) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	step, ok := e.steps[ref.StepID]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownStep, ref.StepID)
	}
	if ref.InstructionIndex < 0 || ref.InstructionIndex >= len(step.Instructions) {
		return false, fmt.Errorf("%w: step %s index %d", ErrInstructionIndex, ref.StepID, ref.InstructionIndex)
	}

	_, wasCompleted := e.completed[ref]
	if wasCompleted {
		delete(e.completed, ref)
	} else {
		e.completed[ref] = struct{}{}
	}
	nowCompleted := !wasCompleted

	if step.Trigger != nil && step.Trigger.InstructionIndex == ref.InstructionIndex {
		e.applyTriggerLocked(step, nowCompleted)
	}

	slog.Debug("Guidance Toggle", "topic", e.topic.ID, "step", ref.StepID, "index", ref.InstructionIndex, "completed", nowCompleted)
	return nowCompleted, nil
}

// applyTriggerLocked arms or disarms the step's declared affordance.
// Callers must hold e.mu.
func (e *Engine) applyTriggerLocked(step *models.Step, armed bool) {
	switch step.Trigger.Kind {
	case models.AffordanceTimer:
		if armed {
			cd := timer.NewCountdown(step.Trigger.DurationSeconds)
			cd.Start()
			e.timers[step.ID] = cd
			slog.Debug("Guidance timer armed", "topic", e.topic.ID, "step", step.ID, "seconds", step.Trigger.DurationSeconds)
		} else if cd, ok := e.timers[step.ID]; ok {
			cd.Stop()
			delete(e.timers, step.ID)
			slog.Debug("Guidance timer disarmed", "topic", e.topic.ID, "step", step.ID)
		}
	case models.AffordanceTimestamp:
		if armed {
			e.timestamps[step.ID] = e.now()
			slog.Debug("Guidance timestamp recorded", "topic", e.topic.ID, "step", step.ID)
		} else {
			delete(e.timestamps, step.ID)
			slog.Debug("Guidance timestamp cleared", "topic", e.topic.ID, "step", step.ID)
		}
	}
}

// IsCompleted reports whether the given instruction has been checked off.
func (e *Engine) IsCompleted(ref models.InstructionRef) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.completed[ref]
	return ok
}

// Progress returns the completed and total instruction counts for the topic.
func (e *Engine) Progress() models.Progress {
	e.mu.Lock()
	defer e.mu.Unlock()

	total := 0
	for _, step := range e.topic.Steps {
		total += len(step.Instructions)
	}
	return models.Progress{Completed: len(e.completed), Total: total}
}

// Timer returns the armed countdown for a step, or nil if none is armed.
func (e *Engine) Timer(stepID string) *timer.Countdown {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.timers[stepID]
}

// ControlTimer applies a start/stop/reset/restart action to a step's armed
// countdown.
func (e *Engine) ControlTimer(stepID string, action TimerAction) error {
	cd := e.Timer(stepID)
	if cd == nil {
		return fmt.Errorf("%w: %s", ErrNoTimerForStep, stepID)
	}

	switch action {
	case TimerActionStart:
		cd.Start()
	case TimerActionStop:
		cd.Stop()
	case TimerActionReset:
		cd.Reset()
	case TimerActionRestart:
		cd.Restart()
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedTimerOp, action)
	}
	slog.Debug("Guidance timer action", "topic", e.topic.ID, "step", stepID, "action", action)
	return nil
}

// TimestampAt returns the recorded affordance timestamp for a step.
func (e *Engine) TimestampAt(stepID string) (time.Time, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	ts, ok := e.timestamps[stepID]
	return ts, ok
}

// Close discards the checklist state and stops every armed countdown so no
// ticker outlives the session, however the dismissal happened.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.closed = true

	for stepID, cd := range e.timers {
		cd.Stop()
		delete(e.timers, stepID)
	}
	e.completed = make(map[models.InstructionRef]struct{})
	e.timestamps = make(map[string]time.Time)
	slog.Debug("Guidance engine closed", "topic", e.topic.ID)
}
