package catalog

import "github.com/nafisahi/swiftaid/internal/models"

// allTopics assembles the bundled content tables in display order.
// Each category's topics live in their own file.
func allTopics() []models.Topic {
	var topics []models.Topic
	topics = append(topics, criticalTopics()...)
	topics = append(topics, woundTopics()...)
	topics = append(topics, burnTopics()...)
	topics = append(topics, boneTopics()...)
	topics = append(topics, breathingTopics()...)
	topics = append(topics, headTopics()...)
	topics = append(topics, medicalTopics()...)
	topics = append(topics, environmentalTopics()...)
	return topics
}
