package catalog

import "github.com/nafisahi/swiftaid/internal/models"

func criticalTopics() []models.Topic {
	return []models.Topic{
		{
			ID:          "cpr-adult",
			Category:    models.CategoryCritical,
			Title:       "CPR (Adult)",
			Subtitle:    "Cardiopulmonary resuscitation for adults",
			Icon:        "heart.fill",
			AccentColor: "red",
			Symptoms:    []string{"Unresponsive", "Not breathing or only gasping", "No signs of life"},
			Keywords:    []string{"cpr", "cardiac arrest", "compressions", "rescue breaths", "unresponsive", "resuscitation"},
			Steps: []models.Step{
				{
					ID:       "cpr-adult-check",
					Sequence: 1,
					Title:    "Check for a response",
					Icon:     "person.fill.questionmark",
					Instructions: []string{
						"Shake the person's shoulders gently and ask loudly: are you alright?",
						"Tilt their head back and check for normal breathing for no more than 10 seconds",
					},
					Warning: "Gasping is not normal breathing. If in doubt, act as if breathing is absent.",
				},
				{
					ID:            "cpr-adult-call",
					Sequence:      2,
					Title:         "Call for help",
					Icon:          "phone.fill",
					EmergencyCall: true,
					Instructions: []string{
						"Call 999 or 112 and put the phone on speaker",
						"Ask a bystander to fetch a defibrillator (AED) if one is available",
					},
				},
				{
					ID:       "cpr-adult-compressions",
					Sequence: 3,
					Title:    "Start chest compressions",
					Icon:     "hands.sparkles.fill",
					Instructions: []string{
						"Kneel beside the person and place the heel of one hand on the centre of their chest",
						"Place your other hand on top and interlock your fingers",
						"Press down hard and fast, 5-6 cm deep, at 100-120 compressions per minute",
						"Give 30 compressions, then 2 rescue breaths if trained, and repeat",
					},
					Warning: "Do not stop until help arrives, a defibrillator is ready, or the person shows signs of life.",
				},
			},
		},
		{
			ID:          "cpr-child",
			Category:    models.CategoryCritical,
			Title:       "CPR (Child)",
			Subtitle:    "Cardiopulmonary resuscitation for children over one year",
			Icon:        "heart.fill",
			AccentColor: "red",
			Symptoms:    []string{"Unresponsive", "Not breathing normally"},
			Keywords:    []string{"cpr", "child", "compressions", "rescue breaths", "paediatric"},
			Steps: []models.Step{
				{
					ID:       "cpr-child-breaths",
					Sequence: 1,
					Title:    "Give five rescue breaths",
					Icon:     "wind",
					Instructions: []string{
						"Tilt the child's head back and lift the chin",
						"Pinch the nose, seal your mouth over theirs and give 5 initial rescue breaths",
					},
				},
				{
					ID:       "cpr-child-compressions",
					Sequence: 2,
					Title:    "Start chest compressions",
					Icon:     "hands.sparkles.fill",
					Instructions: []string{
						"Place the heel of one hand on the centre of the chest",
						"Press down by at least one third of the chest depth, 100-120 times per minute",
						"Give 30 compressions, then 2 rescue breaths, and repeat",
					},
				},
				{
					ID:            "cpr-child-call",
					Sequence:      3,
					Title:         "Call for help",
					Icon:          "phone.fill",
					EmergencyCall: true,
					Instructions: []string{
						"After one minute of CPR, call 999 or 112 if no one has already",
						"Continue CPR until help arrives or the child responds",
					},
				},
			},
		},
		{
			ID:          "choking-adult",
			Category:    models.CategoryCritical,
			Title:       "Choking (Adult)",
			Subtitle:    "Severe airway obstruction in adults and children over one year",
			Icon:        "lungs.fill",
			AccentColor: "red",
			Symptoms:    []string{"Clutching the throat", "Unable to speak or cough", "Face turning blue"},
			Keywords:    []string{"choking", "airway", "back blows", "abdominal thrusts", "heimlich", "obstruction"},
			Steps: []models.Step{
				{
					ID:       "choking-encourage",
					Sequence: 1,
					Title:    "Encourage coughing",
					Icon:     "bubble.left.fill",
					Instructions: []string{
						"Ask: are you choking? If they can speak or cough, encourage them to keep coughing",
					},
				},
				{
					ID:       "choking-back-blows",
					Sequence: 2,
					Title:    "Give back blows",
					Icon:     "hand.raised.fill",
					Instructions: []string{
						"Lean the person forwards, supporting their chest with one hand",
						"Give up to 5 sharp blows between the shoulder blades with the heel of your hand",
						"Check after each blow whether the obstruction has cleared",
					},
				},
				{
					ID:       "choking-thrusts",
					Sequence: 3,
					Title:    "Give abdominal thrusts",
					Icon:     "figure.stand",
					Instructions: []string{
						"Stand behind the person and put both arms around their upper abdomen",
						"Clench one fist above the navel, grasp it with the other hand and pull sharply inwards and upwards",
						"Repeat up to 5 times, checking after each thrust",
					},
					Warning: "Anyone who has received abdominal thrusts must be assessed by a doctor afterwards.",
				},
				{
					ID:            "choking-call",
					Sequence:      4,
					Title:         "Call for help",
					Icon:          "phone.fill",
					EmergencyCall: true,
					Instructions: []string{
						"If the obstruction has not cleared, call 999 or 112",
						"Alternate 5 back blows and 5 abdominal thrusts until help arrives",
						"If the person becomes unresponsive, start CPR",
					},
				},
			},
		},
	}
}
