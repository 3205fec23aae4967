package catalog

import "github.com/nafisahi/swiftaid/internal/models"

func boneTopics() []models.Topic {
	return []models.Topic{
		{
			ID:          "broken-bones",
			Category:    models.CategoryBones,
			Title:       "Broken Bones",
			Subtitle:    "Suspected fractures",
			Icon:        "figure.walk",
			AccentColor: "purple",
			Symptoms:    []string{"Pain and swelling", "Limb at an odd angle", "Unable to bear weight", "Grating sensation"},
			Keywords:    []string{"fracture", "broken", "bone", "splint", "immobilise"},
			Steps: []models.Step{
				{
					ID:       "fracture-still",
					Sequence: 1,
					Title:    "Keep the injury still",
					Icon:     "hand.raised.fill",
					Instructions: []string{
						"Ask the person to keep the injured part still",
						"Support the limb above and below the injury with your hands or padding",
					},
					Warning: "Do not try to straighten a deformed limb.",
				},
				{
					ID:            "fracture-call",
					Sequence:      2,
					Title:         "Get help",
					Icon:          "phone.fill",
					EmergencyCall: true,
					Instructions: []string{
						"Call 999 or 112 for a suspected broken leg, back or neck, or if the bone has pierced the skin",
						"For smaller suspected fractures, arrange transport to hospital",
					},
				},
				{
					ID:       "fracture-comfort",
					Sequence: 3,
					Title:    "Make them comfortable",
					Icon:     "bandage.fill",
					Instructions: []string{
						"Cover any open wound with a sterile dressing",
						"Apply a wrapped ice pack near, not on, the injury to reduce swelling",
						"Watch for signs of shock while you wait",
					},
				},
			},
		},
		{
			ID:          "sprains-strains",
			Category:    models.CategoryBones,
			Title:       "Sprains and Strains",
			Subtitle:    "Joint and muscle injuries",
			Icon:        "figure.flexibility",
			AccentColor: "purple",
			Symptoms:    []string{"Pain and tenderness", "Swelling and bruising", "Difficulty moving the joint"},
			Keywords:    []string{"sprain", "strain", "rice", "ankle", "joint", "ice"},
			Steps: []models.Step{
				{
					ID:       "sprain-rice",
					Sequence: 1,
					Title:    "Follow RICE",
					Icon:     "snowflake",
					Instructions: []string{
						"Rest the injured part in a comfortable position",
						"Apply a wrapped ice pack for up to 20 minutes",
						"Provide comfortable support with soft padding and a bandage",
						"Elevate the injured part to reduce swelling",
					},
				},
				{
					ID:       "sprain-check",
					Sequence: 2,
					Title:    "Reassess",
					Icon:     "stethoscope",
					Instructions: []string{
						"If pain is severe or they cannot use the limb, treat as a fracture and seek help",
					},
				},
			},
		},
	}
}
