package lessons

import (
	"fmt"
	"sort"

	"progress-service/internal/models"
)

// Registry holds the lesson catalog: the cards whose audio counts as
// engagement, the practice activities, and each lesson's progress
// configuration. Content itself (templates, styling, audio assets) lives in
// the frontends; the service only needs the countable structure.
type Registry struct {
	lessons map[string]*models.Lesson
}

func NewRegistry(lessons []*models.Lesson) *Registry {
	m := make(map[string]*models.Lesson, len(lessons))
	for _, l := range lessons {
		m[l.ID] = l
	}
	return &Registry{lessons: m}
}

func (r *Registry) Get(lessonID string) (*models.Lesson, error) {
	lesson, ok := r.lessons[lessonID]
	if !ok {
		return nil, fmt.Errorf("unknown lesson: %s", lessonID)
	}
	return lesson, nil
}

func (r *Registry) All() []*models.Lesson {
	out := make([]*models.Lesson, 0, len(r.lessons))
	for _, l := range r.lessons {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Language != out[j].Language {
			return out[i].Language < out[j].Language
		}
		return out[i].Order < out[j].Order
	})
	return out
}

// standardConfig derives a lesson's progress configuration from its card
// count and practice section. Lessons with practice split the percentage
// 30/20/50; audio-only lessons split it 60/40.
func standardConfig(cardCount int, hasPractice bool, timeNormalizationMinutes int) models.ProgressConfig {
	weights := models.ProgressWeights{Engagement: 60, Time: 40, Practice: 0}
	if hasPractice {
		weights = models.ProgressWeights{Engagement: 30, Time: 20, Practice: 50}
	}
	return models.ProgressConfig{
		TotalEngagementUnits:     cardCount,
		HasPractice:              hasPractice,
		Weights:                  weights,
		PassThreshold:            models.DefaultPassThreshold,
		TimeNormalizationMinutes: timeNormalizationMinutes,
	}
}
