// Package models defines the core data structures for SwiftAid.
//
// It includes the emergency guidance content model (categories, topics,
// steps, instructions) and the API response types shared across modules.
package models

import (
	"errors"
	"fmt"
)

// EmergencyCategory groups topics by the kind of emergency they cover.
type EmergencyCategory string

const (
	// CategoryCritical covers life-threatening emergencies such as CPR and choking.
	CategoryCritical EmergencyCategory = "critical"
	// CategoryWounds covers bleeding, cuts and puncture wounds.
	CategoryWounds EmergencyCategory = "wounds"
	// CategoryBurns covers thermal, chemical and sun burns.
	CategoryBurns EmergencyCategory = "burns"
	// CategoryBones covers fractures, sprains and dislocations.
	CategoryBones EmergencyCategory = "bones"
	// CategoryBreathing covers asthma, hyperventilation and related emergencies.
	CategoryBreathing EmergencyCategory = "breathing"
	// CategoryHead covers head injuries and concussion.
	CategoryHead EmergencyCategory = "head"
	// CategoryMedical covers medical conditions such as stroke and anaphylaxis.
	CategoryMedical EmergencyCategory = "medical"
	// CategoryEnvironmental covers hypothermia, heatstroke and similar exposures.
	CategoryEnvironmental EmergencyCategory = "environmental"
)

// Validation constants shared across modules.
const (
	// VerificationCodeLength is the number of digits in an email verification code.
	VerificationCodeLength = 6
	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 6
	// MinNameLength is the minimum accepted first/last name length.
	MinNameLength = 2
)

// Error variables for content validation and lookups.
var (
	ErrUnknownCategory      = errors.New("unknown emergency category")
	ErrEmptyTopicID         = errors.New("topic id cannot be empty")
	ErrEmptyTopicTitle      = errors.New("topic title cannot be empty")
	ErrNoSteps              = errors.New("topic must contain at least one step")
	ErrEmptyStepID          = errors.New("step id cannot be empty")
	ErrEmptyStepTitle       = errors.New("step title cannot be empty")
	ErrNoInstructions       = errors.New("step must contain at least one instruction")
	ErrEmptyInstruction     = errors.New("instruction text cannot be empty")
	ErrBadStepSequence      = errors.New("step sequence numbers must be unique and increasing")
	ErrTriggerOutOfRange    = errors.New("trigger instruction index out of range")
	ErrTriggerNeedsDuration = errors.New("timer trigger requires a positive duration")
	ErrTopicNotFound        = errors.New("topic not found")
)

// IsValidCategory reports whether the given category is one of the known set.
func IsValidCategory(c EmergencyCategory) bool {
	switch c {
	case CategoryCritical, CategoryWounds, CategoryBurns, CategoryBones,
		CategoryBreathing, CategoryHead, CategoryMedical, CategoryEnvironmental:
		return true
	default:
		return false
	}
}

// AffordanceKind identifies the UI behavior armed when a trigger instruction
// is checked off.
type AffordanceKind string

const (
	// AffordanceTimer reveals a countdown timer (e.g. burn cooling periods).
	AffordanceTimer AffordanceKind = "timer"
	// AffordanceTimestamp records the time the instruction was completed
	// (e.g. time of an adrenaline injection).
	AffordanceTimestamp AffordanceKind = "timestamp"
)

// TriggerAffordance declares, at content-authoring time, that completing a
// specific instruction arms a derived UI affordance. This replaces fragile
// substring matching against instruction text.
type TriggerAffordance struct {
	Kind             AffordanceKind `json:"kind"`
	InstructionIndex int            `json:"instruction_index"`
	DurationSeconds  int            `json:"duration_seconds,omitempty"` // timers only
}

// Step is one ordered stage within a topic's guidance.
type Step struct {
	ID            string             `json:"id"`
	Sequence      int                `json:"sequence"` // 1-based, advisory display order
	Title         string             `json:"title"`
	Icon          string             `json:"icon,omitempty"`
	Instructions  []string           `json:"instructions"`
	Warning       string             `json:"warning,omitempty"`
	ImageRef      string             `json:"image_ref,omitempty"`
	EmergencyCall bool               `json:"emergency_call,omitempty"` // show the 999/112 call affordance
	Trigger       *TriggerAffordance `json:"trigger,omitempty"`
}

// Topic is a single emergency/condition guide.
type Topic struct {
	ID          string            `json:"id"`
	Category    EmergencyCategory `json:"category"`
	Title       string            `json:"title"`
	Subtitle    string            `json:"subtitle,omitempty"`
	Icon        string            `json:"icon,omitempty"`
	AccentColor string            `json:"accent_color,omitempty"`
	Steps       []Step            `json:"steps"`
	Symptoms    []string          `json:"symptoms,omitempty"`
	Keywords    []string          `json:"keywords,omitempty"`
}

// Validate checks the structural invariants of a topic's content.
// Malformed content is a build-time defect, so this runs at startup and
// under test rather than on user requests.
func (t *Topic) Validate() error {
	if t.ID == "" {
		return ErrEmptyTopicID
	}
	if t.Title == "" {
		return fmt.Errorf("topic %s: %w", t.ID, ErrEmptyTopicTitle)
	}
	if !IsValidCategory(t.Category) {
		return fmt.Errorf("topic %s: %w: %q", t.ID, ErrUnknownCategory, t.Category)
	}
	if len(t.Steps) == 0 {
		return fmt.Errorf("topic %s: %w", t.ID, ErrNoSteps)
	}
	lastSeq := 0
	for _, step := range t.Steps {
		if step.ID == "" {
			return fmt.Errorf("topic %s: %w", t.ID, ErrEmptyStepID)
		}
		if step.Title == "" {
			return fmt.Errorf("topic %s step %s: %w", t.ID, step.ID, ErrEmptyStepTitle)
		}
		if step.Sequence <= lastSeq {
			return fmt.Errorf("topic %s step %s: %w", t.ID, step.ID, ErrBadStepSequence)
		}
		lastSeq = step.Sequence
		if len(step.Instructions) == 0 {
			return fmt.Errorf("topic %s step %s: %w", t.ID, step.ID, ErrNoInstructions)
		}
		for i, instr := range step.Instructions {
			if instr == "" {
				return fmt.Errorf("topic %s step %s instruction %d: %w", t.ID, step.ID, i, ErrEmptyInstruction)
			}
		}
		if step.Trigger != nil {
			if step.Trigger.InstructionIndex < 0 || step.Trigger.InstructionIndex >= len(step.Instructions) {
				return fmt.Errorf("topic %s step %s: %w", t.ID, step.ID, ErrTriggerOutOfRange)
			}
			if step.Trigger.Kind == AffordanceTimer && step.Trigger.DurationSeconds <= 0 {
				return fmt.Errorf("topic %s step %s: %w", t.ID, step.ID, ErrTriggerNeedsDuration)
			}
		}
	}
	return nil
}

// InstructionRef identifies a single instruction by its step and position.
// Completion tracking keys on this pair rather than on instruction text,
// so identical wording across steps cannot collide.
type InstructionRef struct {
	StepID           string `json:"step_id"`
	InstructionIndex int    `json:"instruction_index"`
}

// Progress summarizes checklist completion for a guidance session.
type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// OpenSessionRequest starts a guidance session for a topic.
type OpenSessionRequest struct {
	TopicID string `json:"topic_id"`
}

// ToggleRequest flips completion of one instruction in a session.
type ToggleRequest struct {
	SessionID        string `json:"session_id"`
	StepID           string `json:"step_id"`
	InstructionIndex int    `json:"instruction_index"`
}

// TimerControlRequest drives a step's armed countdown timer.
type TimerControlRequest struct {
	SessionID string `json:"session_id"`
	StepID    string `json:"step_id"`
	Action    string `json:"action"` // start, stop, reset or restart
}

// TimerStatus reports a step timer's state for display.
type TimerStatus struct {
	State     string `json:"state"`
	Remaining int    `json:"remaining"`
	Total     int    `json:"total"`
	Formatted string `json:"formatted"`
}

// MatchKind describes what part of the content a search query matched.
type MatchKind string

const (
	// MatchedOnTitle indicates a substring match against a topic's title or subtitle.
	MatchedOnTitle MatchKind = "title"
	// MatchedOnKeyword indicates a keyword-set match against a step and its topic's keywords.
	MatchedOnKeyword MatchKind = "keyword"
)

// SearchResult is a single catalog search hit. StepID is empty for
// topic-level matches.
type SearchResult struct {
	TopicID   string    `json:"topic_id"`
	StepID    string    `json:"step_id,omitempty"`
	MatchedOn MatchKind `json:"matched_on"`
}

// APIStatus represents the status of an API response.
type APIStatus string

const (
	// APIStatusOK indicates an API request completed successfully.
	APIStatusOK APIStatus = "ok"
	// APIStatusError indicates an API request failed with an error.
	APIStatusError APIStatus = "error"
)

// APIResponse represents a standard API response with a status and optional data.
type APIResponse struct {
	Status  string      `json:"status"`            // status of the API response
	Message string      `json:"message,omitempty"` // optional message for error responses or additional info
	Result  interface{} `json:"result,omitempty"`  // optional result data for successful responses
}

// Success creates a successful API response with optional result data.
func Success(result interface{}) APIResponse {
	return APIResponse{Status: string(APIStatusOK), Result: result}
}

// SuccessWithMessage creates a successful API response with a message and optional result data.
func SuccessWithMessage(message string, result interface{}) APIResponse {
	return APIResponse{Status: string(APIStatusOK), Message: message, Result: result}
}

// Error creates an error API response with a message.
func Error(message string) APIResponse {
	return APIResponse{Status: string(APIStatusError), Message: message}
}
