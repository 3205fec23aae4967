package catalog

import (
	"testing"

	"github.com/nafisahi/swiftaid/internal/models"
)

func mustCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := New()
	if err != nil {
		t.Fatalf("catalog failed to load: %v", err)
	}
	return c
}

func TestCatalogContentIsValid(t *testing.T) {
	c := mustCatalog(t)
	if len(c.AllTopics()) == 0 {
		t.Fatal("catalog loaded with no topics")
	}
}

func TestListTopicsFiltersByCategory(t *testing.T) {
	c := mustCatalog(t)

	burns := c.ListTopics(models.CategoryBurns)
	if len(burns) != 3 {
		t.Fatalf("expected 3 burn topics, got %d", len(burns))
	}
	for _, topic := range burns {
		if topic.Category != models.CategoryBurns {
			t.Errorf("topic %s has category %s", topic.ID, topic.Category)
		}
	}

	if got := c.ListTopics(models.EmergencyCategory("nonsense")); got != nil {
		t.Errorf("expected no topics for unknown category, got %d", len(got))
	}
}

func TestGetSteps(t *testing.T) {
	c := mustCatalog(t)

	steps, err := c.GetSteps("chemical-burns")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(steps))
	}
	for i, step := range steps {
		if step.Sequence != i+1 {
			t.Errorf("step %s has sequence %d at position %d", step.ID, step.Sequence, i)
		}
	}

	if _, err := c.GetSteps("no-such-topic"); err == nil {
		t.Error("expected error for unknown topic")
	}
}

func TestChemicalBurnsDeclaresCoolingTimer(t *testing.T) {
	c := mustCatalog(t)

	steps, err := c.GetSteps("chemical-burns")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var trigger *models.TriggerAffordance
	for _, step := range steps {
		if step.Trigger != nil && step.Trigger.Kind == models.AffordanceTimer {
			trigger = step.Trigger
		}
	}
	if trigger == nil {
		t.Fatal("chemical burns topic declares no timer trigger")
	}
	if trigger.DurationSeconds != 1200 {
		t.Errorf("expected a 20 minute (1200s) cooling timer, got %ds", trigger.DurationSeconds)
	}
}

func TestAnaphylaxisDeclaresTimestampAndRedoseTimer(t *testing.T) {
	c := mustCatalog(t)

	steps, err := c.GetSteps("anaphylaxis")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sawTimestamp, sawRedose bool
	for _, step := range steps {
		if step.Trigger == nil {
			continue
		}
		switch step.Trigger.Kind {
		case models.AffordanceTimestamp:
			sawTimestamp = true
		case models.AffordanceTimer:
			if step.Trigger.DurationSeconds == 300 {
				sawRedose = true
			}
		}
	}
	if !sawTimestamp {
		t.Error("anaphylaxis should declare an injection timestamp trigger")
	}
	if !sawRedose {
		t.Error("anaphylaxis should declare a 5 minute (300s) re-dose timer")
	}
}

func TestSearchMatchesTitle(t *testing.T) {
	c := mustCatalog(t)

	results := c.Search("Chemical")
	var found bool
	for _, r := range results {
		if r.TopicID == "chemical-burns" && r.StepID == "" && r.MatchedOn == models.MatchedOnTitle {
			found = true
		}
	}
	if !found {
		t.Errorf("expected topic-level title match for chemical burns, got %+v", results)
	}
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	c := mustCatalog(t)
	if len(c.Search("STROKE")) == 0 {
		t.Error("expected case-insensitive match for STROKE")
	}
}

func TestSearchKeywordRequiresAllTerms(t *testing.T) {
	c := mustCatalog(t)

	// Both terms match anaphylaxis keywords/steps.
	results := c.Search("adrenaline injector")
	var matched bool
	for _, r := range results {
		if r.TopicID == "anaphylaxis" && r.MatchedOn == models.MatchedOnKeyword {
			matched = true
		}
	}
	if !matched {
		t.Errorf("expected keyword match for anaphylaxis, got %+v", results)
	}

	// One matching and one non-matching term must not produce a keyword hit.
	for _, r := range c.Search("adrenaline zzzz") {
		if r.MatchedOn == models.MatchedOnKeyword {
			t.Errorf("unexpected keyword match with non-matching term: %+v", r)
		}
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	c := mustCatalog(t)
	if got := c.Search("   "); got != nil {
		t.Errorf("expected no results for blank query, got %d", len(got))
	}
}
