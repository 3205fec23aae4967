// Package catalog supplies the static tree of emergency categories, topics,
// steps and instructions to the rest of the system.
//
// Content is bundled at build time; the catalog never changes at runtime and
// lookups cannot fail for reasons other than an unknown identifier.
package catalog

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/nafisahi/swiftaid/internal/models"
)

// Catalog is the immutable content registry.
type Catalog struct {
	topics []models.Topic
	byID   map[string]*models.Topic
}

// New assembles the bundled content and validates every topic. A validation
// failure means the content tables themselves are defective, so callers
// should treat an error here as fatal.
func New() (*Catalog, error) {
	topics := allTopics()

	c := &Catalog{
		topics: topics,
		byID:   make(map[string]*models.Topic, len(topics)),
	}
	for i := range c.topics {
		t := &c.topics[i]
		if err := t.Validate(); err != nil {
			slog.Error("Catalog content validation failed", "topic", t.ID, "error", err)
			return nil, fmt.Errorf("invalid catalog content: %w", err)
		}
		if _, exists := c.byID[t.ID]; exists {
			slog.Error("Catalog duplicate topic id", "topic", t.ID)
			return nil, fmt.Errorf("invalid catalog content: duplicate topic id %q", t.ID)
		}
		c.byID[t.ID] = t
	}

	slog.Debug("Catalog loaded", "topics", len(c.topics))
	return c, nil
}

// ListTopics returns the topics of a category in authored order.
func (c *Catalog) ListTopics(category models.EmergencyCategory) []models.Topic {
	var out []models.Topic
	for _, t := range c.topics {
		if t.Category == category {
			out = append(out, t)
		}
	}
	slog.Debug("Catalog ListTopics", "category", category, "count", len(out))
	return out
}

// AllTopics returns every topic in authored order.
func (c *Catalog) AllTopics() []models.Topic {
	out := make([]models.Topic, len(c.topics))
	copy(out, c.topics)
	return out
}

// GetTopic looks up a topic by identifier.
func (c *Catalog) GetTopic(id string) (*models.Topic, error) {
	t, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrTopicNotFound, id)
	}
	return t, nil
}

// GetSteps returns the ordered steps of a topic.
func (c *Catalog) GetSteps(topicID string) ([]models.Step, error) {
	t, err := c.GetTopic(topicID)
	if err != nil {
		return nil, err
	}
	return t.Steps, nil
}

// Search matches a free-text query against the catalog.
//
// Topic-level hits are case-insensitive substring matches of the whole query
// against the topic title or subtitle. Step-level hits require every
// whitespace-separated query term to match either the step title or at least
// one of the topic's keywords (AND across terms, OR within the keyword set
// per term).
func (c *Catalog) Search(query string) []models.SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	terms := strings.Fields(q)

	var results []models.SearchResult
	for i := range c.topics {
		t := &c.topics[i]

		if strings.Contains(strings.ToLower(t.Title), q) || strings.Contains(strings.ToLower(t.Subtitle), q) {
			results = append(results, models.SearchResult{TopicID: t.ID, MatchedOn: models.MatchedOnTitle})
		}

		for j := range t.Steps {
			step := &t.Steps[j]
			if stepMatches(step, t.Keywords, terms) {
				results = append(results, models.SearchResult{
					TopicID:   t.ID,
					StepID:    step.ID,
					MatchedOn: models.MatchedOnKeyword,
				})
			}
		}
	}

	slog.Debug("Catalog Search", "query", query, "hits", len(results))
	return results
}

// stepMatches reports whether every query term matches the step title or one
// of the topic keywords.
func stepMatches(step *models.Step, keywords []string, terms []string) bool {
	title := strings.ToLower(step.Title)
	for _, term := range terms {
		if strings.Contains(title, term) {
			continue
		}
		matched := false
		for _, kw := range keywords {
			if strings.Contains(strings.ToLower(kw), term) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}
