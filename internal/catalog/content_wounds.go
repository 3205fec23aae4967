package catalog

import "github.com/nafisahi/swiftaid/internal/models"

func woundTopics() []models.Topic {
	return []models.Topic{
		{
			ID:          "severe-bleeding",
			Category:    models.CategoryWounds,
			Title:       "Severe Bleeding",
			Subtitle:    "Heavy bleeding from a wound",
			Icon:        "drop.fill",
			AccentColor: "red",
			Symptoms:    []string{"Blood soaking through clothing or dressings", "Pale, cold and clammy skin", "Dizziness or confusion"},
			Keywords:    []string{"bleeding", "wound", "pressure", "haemorrhage", "dressing", "shock"},
			Steps: []models.Step{
				{
					ID:       "bleeding-pressure",
					Sequence: 1,
					Title:    "Apply direct pressure",
					Icon:     "hand.raised.fill",
					Instructions: []string{
						"Put on gloves if available",
						"Press firmly on the wound with a sterile dressing or clean cloth",
						"If an object is embedded, press around it, never on it",
					},
					Warning: "Do not remove embedded objects; they may be stemming the bleeding.",
				},
				{
					ID:            "bleeding-call",
					Sequence:      2,
					Title:         "Call for help",
					Icon:          "phone.fill",
					EmergencyCall: true,
					Instructions: []string{
						"Call 999 or 112 for severe bleeding",
						"Keep pressure on the wound while you wait",
					},
				},
				{
					ID:       "bleeding-shock",
					Sequence: 3,
					Title:    "Treat for shock",
					Icon:     "figure.fall",
					Instructions: []string{
						"Help the person lie down and raise their legs above heart level",
						"Keep them warm with a coat or blanket",
						"Secure the dressing with a bandage and add a second on top if blood soaks through",
					},
				},
			},
		},
		{
			ID:          "nosebleed",
			Category:    models.CategoryWounds,
			Title:       "Nosebleed",
			Subtitle:    "Bleeding from the nose",
			Icon:        "nose.fill",
			AccentColor: "pink",
			Symptoms:    []string{"Blood flowing from one or both nostrils"},
			Keywords:    []string{"nosebleed", "nose", "pinch", "epistaxis"},
			Steps: []models.Step{
				{
					ID:       "nosebleed-pinch",
					Sequence: 1,
					Title:    "Pinch and lean forward",
					Icon:     "hand.point.down.fill",
					Instructions: []string{
						"Sit the person down and lean them forward",
						"Pinch the soft part of the nose for 10 minutes without releasing",
					},
					Warning: "Do not tip the head back; swallowed blood can cause vomiting.",
				},
				{
					ID:       "nosebleed-after",
					Sequence: 2,
					Title:    "After the bleeding stops",
					Icon:     "checkmark.circle.fill",
					Instructions: []string{
						"Advise them not to blow their nose for several hours",
						"Seek medical help if bleeding continues beyond 30 minutes",
					},
				},
			},
		},
	}
}
