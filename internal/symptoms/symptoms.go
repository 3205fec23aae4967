// Package symptoms provides the AI-assisted symptom checker.
//
// The checker is strictly advisory: its system prompt forbids diagnoses and
// always directs the user to emergency services for anything serious. It is
// the only network-dependent feature and refuses to run while the
// connectivity monitor reports offline.
package symptoms

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// systemPrompt constrains the model to first-aid guidance only.
const systemPrompt = `You are a first-aid assistant inside the SwiftAid app. ` +
	`Given a description of symptoms, suggest which first-aid topic the user should open and the immediate steps to take while waiting for help. ` +
	`Never give a medical diagnosis or medication dosages. ` +
	`If the symptoms could be life-threatening, your first line must tell the user to call 999 or 112 immediately.`

// Error variables for the symptom checker.
var (
	// ErrOffline is returned when the device has no internet connection.
	ErrOffline = errors.New("symptom checker requires an internet connection")
	// ErrEmptyDescription is returned for a blank symptom description.
	ErrEmptyDescription = errors.New("symptom description cannot be empty")
)

// connectionChecker reports whether the network is reachable. Satisfied by
// *connectivity.Monitor.
type connectionChecker interface {
	Online() bool
}

// completionService defines the minimal interface for chat completions.
type completionService interface {
	New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// Checker answers free-text symptom descriptions with first-aid guidance.
type Checker struct {
	completions completionService
	conn        connectionChecker
}

// NewChecker initializes a checker using the OPENAI_API_KEY environment
// variable. The connection checker gates every request.
func NewChecker(conn connectionChecker) (*Checker, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Checker{completions: &client.Chat.Completions, conn: conn}, nil
}

// Check returns guidance for the described symptoms.
func (c *Checker) Check(ctx context.Context, description string) (string, error) {
	if c.conn != nil && !c.conn.Online() {
		slog.Warn("Symptom check refused while offline")
		return "", ErrOffline
	}
	if strings.TrimSpace(description) == "" {
		return "", ErrEmptyDescription
	}

	slog.Debug("Symptom check requested", "description_len", len(description))
	resp, err := c.completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModelGPT4oMini,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(description),
		},
	})
	if err != nil {
		slog.Error("Symptom check completion failed", "error", err)
		return "", fmt.Errorf("symptom check failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	slog.Debug("Symptom check succeeded")
	return resp.Choices[0].Message.Content, nil
}
