package catalog

import "github.com/nafisahi/swiftaid/internal/models"

func breathingTopics() []models.Topic {
	return []models.Topic{
		{
			ID:          "asthma-attack",
			Category:    models.CategoryBreathing,
			Title:       "Asthma Attack",
			Subtitle:    "Sudden worsening of asthma symptoms",
			Icon:        "lungs.fill",
			AccentColor: "blue",
			Symptoms:    []string{"Wheezing and coughing", "Difficulty speaking", "Tight chest", "Blue tinge to lips"},
			Keywords:    []string{"asthma", "inhaler", "wheezing", "reliever", "breathing"},
			Steps: []models.Step{
				{
					ID:       "asthma-inhaler",
					Sequence: 1,
					Title:    "Use the reliever inhaler",
					Icon:     "inhaler",
					Instructions: []string{
						"Sit the person upright and keep them calm",
						"Help them take one puff of their reliever inhaler every 30-60 seconds, up to 10 puffs",
					},
					Warning: "Do not lie the person down during an attack.",
				},
				{
					ID:            "asthma-call",
					Sequence:      2,
					Title:         "Call for help if it worsens",
					Icon:          "phone.fill",
					EmergencyCall: true,
					Instructions: []string{
						"Call 999 or 112 if the inhaler has no effect, they cannot speak, or you are worried",
						"Repeat 10 puffs of the inhaler every 10 minutes while waiting",
					},
				},
			},
		},
		{
			ID:          "hyperventilation",
			Category:    models.CategoryBreathing,
			Title:       "Hyperventilation",
			Subtitle:    "Over-breathing, often from panic",
			Icon:        "wind",
			AccentColor: "blue",
			Symptoms:    []string{"Unnaturally fast breathing", "Tingling in the hands", "Dizziness", "Trembling"},
			Keywords:    []string{"hyperventilation", "panic", "breathing", "anxiety"},
			Steps: []models.Step{
				{
					ID:       "hyperventilation-reassure",
					Sequence: 1,
					Title:    "Reassure and coach breathing",
					Icon:     "bubble.left.and.bubble.right.fill",
					Instructions: []string{
						"Speak calmly and lead them somewhere quiet",
						"Coach slow breathing: in through the nose for four counts, out through the mouth for four",
					},
					Warning: "Do not ask them to breathe into a paper bag.",
				},
				{
					ID:       "hyperventilation-monitor",
					Sequence: 2,
					Title:    "Monitor",
					Icon:     "waveform.path.ecg",
					Instructions: []string{
						"Seek medical advice if breathing does not return to normal or you are unsure of the cause",
					},
				},
			},
		},
	}
}
