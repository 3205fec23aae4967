package catalog

import "github.com/nafisahi/swiftaid/internal/models"

func headTopics() []models.Topic {
	return []models.Topic{
		{
			ID:          "head-injury",
			Category:    models.CategoryHead,
			Title:       "Head Injury",
			Subtitle:    "Bumps, concussion and skull injuries",
			Icon:        "brain.head.profile",
			AccentColor: "indigo",
			Symptoms:    []string{"Headache and dizziness", "Brief loss of consciousness", "Confusion or memory loss", "Nausea"},
			Keywords:    []string{"head", "concussion", "skull", "injury", "unconscious"},
			Steps: []models.Step{
				{
					ID:       "head-injury-sit",
					Sequence: 1,
					Title:    "Sit them down",
					Icon:     "chair.lounge.fill",
					Instructions: []string{
						"Sit the person down and apply a wrapped cold compress to the injury",
						"Treat any scalp wound by pressing a clean pad firmly around it",
					},
				},
				{
					ID:            "head-injury-assess",
					Sequence:      2,
					Title:         "Assess and get help",
					Icon:          "phone.fill",
					EmergencyCall: true,
					Instructions: []string{
						"Call 999 or 112 if they become drowsy, vomit, have a seizure, or were knocked out",
						"If they remain alert, have a responsible adult watch them for the next 24 hours",
					},
					Warning: "A person who has been knocked out, however briefly, needs medical assessment.",
				},
			},
		},
	}
}
