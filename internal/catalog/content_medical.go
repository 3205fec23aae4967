package catalog

import "github.com/nafisahi/swiftaid/internal/models"

// redoseWindowSeconds is the wait before a second adrenaline dose may be given.
const redoseWindowSeconds = 5 * 60

func medicalTopics() []models.Topic {
	return []models.Topic{
		{
			ID:          "anaphylaxis",
			Category:    models.CategoryMedical,
			Title:       "Anaphylaxis",
			Subtitle:    "Severe allergic reaction",
			Icon:        "allergens",
			AccentColor: "red",
			Symptoms:    []string{"Swollen tongue or throat", "Difficulty breathing", "Widespread rash or hives", "Sudden collapse"},
			Keywords:    []string{"anaphylaxis", "allergy", "adrenaline", "epipen", "auto-injector", "allergic reaction"},
			Steps: []models.Step{
				{
					ID:            "anaphylaxis-call",
					Sequence:      1,
					Title:         "Call for help immediately",
					Icon:          "phone.fill",
					EmergencyCall: true,
					Instructions: []string{
						"Call 999 or 112 and say the person has anaphylaxis",
						"Remove the trigger if possible, such as a stinger",
					},
				},
				{
					ID:       "anaphylaxis-injector",
					Sequence: 2,
					Title:    "Use the adrenaline auto-injector",
					Icon:     "syringe.fill",
					Instructions: []string{
						"Help the person use their auto-injector against the outer thigh, or give it yourself if trained",
						"Note the time of the injection",
					},
					Warning: "Hold the injector in place for the count the device specifies before removing it.",
					Trigger: &models.TriggerAffordance{
						Kind:             models.AffordanceTimestamp,
						InstructionIndex: 1,
					},
				},
				{
					ID:       "anaphylaxis-position",
					Sequence: 3,
					Title:    "Position and monitor",
					Icon:     "figure.fall",
					Instructions: []string{
						"Lie the person flat with legs raised; sit them up if breathing is difficult",
						"If there is no improvement after 5 minutes, give a second dose with a new injector",
					},
					Trigger: &models.TriggerAffordance{
						Kind:             models.AffordanceTimer,
						InstructionIndex: 1,
						DurationSeconds:  redoseWindowSeconds,
					},
				},
			},
		},
		{
			ID:          "stroke",
			Category:    models.CategoryMedical,
			Title:       "Stroke",
			Subtitle:    "Interrupted blood supply to the brain",
			Icon:        "brain.fill",
			AccentColor: "red",
			Symptoms:    []string{"Face drooping on one side", "Unable to raise both arms", "Slurred speech", "Sudden confusion"},
			Keywords:    []string{"stroke", "fast", "face", "arms", "speech", "brain"},
			Steps: []models.Step{
				{
					ID:       "stroke-fast",
					Sequence: 1,
					Title:    "Do the FAST test",
					Icon:     "stopwatch.fill",
					Instructions: []string{
						"Face: ask them to smile and look for drooping on one side",
						"Arms: ask them to raise both arms and see if one drifts down",
						"Speech: ask them to repeat a simple phrase and listen for slurring",
						"Time: if any sign is present, call for help immediately",
					},
				},
				{
					ID:            "stroke-call",
					Sequence:      2,
					Title:         "Call for help",
					Icon:          "phone.fill",
					EmergencyCall: true,
					Instructions: []string{
						"Call 999 or 112 and say you suspect a stroke",
						"Keep the person comfortable and supported, and do not give them food or drink",
						"Note when the symptoms started",
					},
				},
			},
		},
		{
			ID:          "seizure",
			Category:    models.CategoryMedical,
			Title:       "Seizure",
			Subtitle:    "Epileptic and other convulsive seizures",
			Icon:        "bolt.fill",
			AccentColor: "teal",
			Symptoms:    []string{"Sudden collapse", "Rigid body and jerking movements", "Loss of awareness"},
			Keywords:    []string{"seizure", "epilepsy", "convulsion", "fit", "recovery position"},
			Steps: []models.Step{
				{
					ID:       "seizure-protect",
					Sequence: 1,
					Title:    "Protect from injury",
					Icon:     "shield.fill",
					Instructions: []string{
						"Clear away dangerous objects and cushion their head",
						"Note the time the seizure started",
					},
					Warning: "Do not restrain them or put anything in their mouth.",
				},
				{
					ID:       "seizure-after",
					Sequence: 2,
					Title:    "After the seizure",
					Icon:     "bed.double.fill",
					Instructions: []string{
						"Once jerking stops, open the airway and place them in the recovery position",
						"Stay with them until they are fully recovered",
					},
				},
				{
					ID:            "seizure-call",
					Sequence:      3,
					Title:         "When to call for help",
					Icon:          "phone.fill",
					EmergencyCall: true,
					Instructions: []string{
						"Call 999 or 112 if the seizure lasts more than 5 minutes, repeats, or it is their first seizure",
					},
				},
			},
		},
	}
}
