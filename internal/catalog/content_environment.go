package catalog

import "github.com/nafisahi/swiftaid/internal/models"

func environmentalTopics() []models.Topic {
	return []models.Topic{
		{
			ID:          "hypothermia",
			Category:    models.CategoryEnvironmental,
			Title:       "Hypothermia",
			Subtitle:    "Dangerously low body temperature",
			Icon:        "thermometer.snowflake",
			AccentColor: "cyan",
			Symptoms:    []string{"Shivering", "Cold, pale skin", "Slurred speech", "Slow, shallow breathing"},
			Keywords:    []string{"hypothermia", "cold", "exposure", "shivering", "warm"},
			Steps: []models.Step{
				{
					ID:       "hypothermia-shelter",
					Sequence: 1,
					Title:    "Get them warm",
					Icon:     "house.fill",
					Instructions: []string{
						"Move the person indoors or to shelter",
						"Replace wet clothing with dry layers and wrap them in blankets, covering the head",
						"Give warm drinks and high-energy food if they are fully alert",
					},
					Warning: "Do not use hot water bottles or rub the skin; rapid re-warming is dangerous.",
				},
				{
					ID:            "hypothermia-call",
					Sequence:      2,
					Title:         "Get medical help",
					Icon:          "phone.fill",
					EmergencyCall: true,
					Instructions: []string{
						"Call 999 or 112 if they are drowsy, confused or stop shivering",
						"Monitor breathing and be ready to start CPR",
					},
				},
			},
		},
		{
			ID:          "heatstroke",
			Category:    models.CategoryEnvironmental,
			Title:       "Heatstroke",
			Subtitle:    "Dangerously high body temperature",
			Icon:        "thermometer.sun.fill",
			AccentColor: "orange",
			Symptoms:    []string{"Hot, flushed and dry skin", "Headache and dizziness", "Confusion", "Rapid deterioration"},
			Keywords:    []string{"heatstroke", "heat", "temperature", "cooling", "exhaustion"},
			Steps: []models.Step{
				{
					ID:       "heatstroke-cool",
					Sequence: 1,
					Title:    "Cool them quickly",
					Icon:     "snowflake",
					Instructions: []string{
						"Move the person somewhere cool and remove outer clothing",
						"Wrap them in a cold, wet sheet and keep it wet, or sponge them with cold water",
					},
				},
				{
					ID:            "heatstroke-call",
					Sequence:      2,
					Title:         "Call for help",
					Icon:          "phone.fill",
					EmergencyCall: true,
					Instructions: []string{
						"Call 999 or 112; heatstroke can become life-threatening quickly",
						"Keep cooling until their temperature appears normal, then replace the wet sheet with a dry one",
					},
				},
			},
		},
	}
}
