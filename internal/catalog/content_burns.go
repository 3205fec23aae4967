package catalog

import "github.com/nafisahi/swiftaid/internal/models"

// Cooling durations for burn topics, in seconds.
const (
	burnCoolingSeconds    = 20 * 60
	sunburnCoolingSeconds = 10 * 60
)

func burnTopics() []models.Topic {
	return []models.Topic{
		{
			ID:          "thermal-burns",
			Category:    models.CategoryBurns,
			Title:       "Burns and Scalds",
			Subtitle:    "Burns from heat, hot liquids or steam",
			Icon:        "flame.fill",
			AccentColor: "orange",
			Symptoms:    []string{"Red, peeling or blistered skin", "Severe pain", "White or charred skin"},
			Keywords:    []string{"burn", "scald", "blister", "cool water", "heat"},
			Steps: []models.Step{
				{
					ID:       "thermal-burns-cool",
					Sequence: 1,
					Title:    "Cool the burn",
					Icon:     "drop.fill",
					Instructions: []string{
						"Hold the burn under cool running water for at least 20 minutes",
						"Remove jewellery and loose clothing near the burn before it swells",
					},
					Warning: "Never use ice, creams or greasy substances on a burn.",
					Trigger: &models.TriggerAffordance{
						Kind:             models.AffordanceTimer,
						InstructionIndex: 0,
						DurationSeconds:  burnCoolingSeconds,
					},
				},
				{
					ID:       "thermal-burns-cover",
					Sequence: 2,
					Title:    "Cover the burn",
					Icon:     "bandage.fill",
					Instructions: []string{
						"Once cooled, cover the burn loosely with cling film or a clean plastic bag",
						"Do not burst any blisters",
					},
				},
				{
					ID:            "thermal-burns-help",
					Sequence:      3,
					Title:         "Get medical help",
					Icon:          "phone.fill",
					EmergencyCall: true,
					Instructions: []string{
						"Call 999 or 112 for large, deep or chemical burns, or burns to the face, hands or airway",
						"Treat for shock: lie the person down and raise their legs if possible",
					},
				},
			},
		},
		{
			ID:          "chemical-burns",
			Category:    models.CategoryBurns,
			Title:       "Chemical Burns",
			Subtitle:    "Burns caused by corrosive substances",
			Icon:        "testtube.2",
			AccentColor: "orange",
			Symptoms:    []string{"Stinging or burning skin", "Redness or blistering after contact with a chemical"},
			Keywords:    []string{"chemical", "burn", "acid", "alkali", "corrosive", "flood water"},
			Steps: []models.Step{
				{
					ID:       "chemical-burns-protect",
					Sequence: 1,
					Title:    "Protect yourself",
					Icon:     "hand.raised.fill",
					Instructions: []string{
						"Put on gloves if available and avoid contact with the chemical",
						"Brush off any dry powder chemical before rinsing",
					},
				},
				{
					ID:       "chemical-burns-flood",
					Sequence: 2,
					Title:    "Flood with water",
					Icon:     "drop.fill",
					Instructions: []string{
						"Flood the burn with cool running water for at least 20 minutes",
						"Carefully remove contaminated clothing while rinsing",
					},
					Warning: "Make sure the water runs off the body, not over unaffected skin.",
					Trigger: &models.TriggerAffordance{
						Kind:             models.AffordanceTimer,
						InstructionIndex: 0,
						DurationSeconds:  burnCoolingSeconds,
					},
				},
				{
					ID:            "chemical-burns-call",
					Sequence:      3,
					Title:         "Call for help",
					Icon:          "phone.fill",
					EmergencyCall: true,
					Instructions: []string{
						"Call 999 or 112 and tell them which chemical caused the burn if known",
						"Keep rinsing the burn until help arrives",
					},
				},
			},
		},
		{
			ID:          "sunburn",
			Category:    models.CategoryBurns,
			Title:       "Sunburn",
			Subtitle:    "Skin damage from sun exposure",
			Icon:        "sun.max.fill",
			AccentColor: "yellow",
			Symptoms:    []string{"Red, sore skin", "Skin hot to the touch", "Blistering in severe cases"},
			Keywords:    []string{"sunburn", "sun", "uv", "cool shower", "after sun"},
			Steps: []models.Step{
				{
					ID:       "sunburn-shade",
					Sequence: 1,
					Title:    "Move out of the sun",
					Icon:     "umbrella.fill",
					Instructions: []string{
						"Move indoors or into the shade",
						"Give the person sips of cold water to rehydrate",
					},
				},
				{
					ID:       "sunburn-cool",
					Sequence: 2,
					Title:    "Cool the skin",
					Icon:     "drop.fill",
					Instructions: []string{
						"Cool the affected skin with a cool shower, bath or damp towel for 10 minutes",
						"Apply after-sun lotion or calamine to soothe the skin",
					},
					Trigger: &models.TriggerAffordance{
						Kind:             models.AffordanceTimer,
						InstructionIndex: 0,
						DurationSeconds:  sunburnCoolingSeconds,
					},
				},
				{
					ID:       "sunburn-watch",
					Sequence: 3,
					Title:    "Watch for heat exhaustion",
					Icon:     "thermometer.sun.fill",
					Instructions: []string{
						"Seek medical advice for blistering, swelling or fever",
						"Watch for dizziness, headache or nausea, which may signal heat exhaustion",
					},
				},
			},
		},
	}
}
