package models

// ProgressWeights splits the 100 points of a lesson's completion percentage
// across the three signals. The three values should sum to at most 100;
// Practice is 0 for lessons without a practice section.
type ProgressWeights struct {
	Engagement int `bson:"engagement" json:"engagement"`
	Time       int `bson:"time" json:"time"`
	Practice   int `bson:"practice" json:"practice"`
}

// ProgressConfig parameterizes the progress engine for one lesson. It is
// immutable for the lifetime of the lesson.
type ProgressConfig struct {
	TotalEngagementUnits     int             `bson:"total_engagement_units" json:"total_engagement_units"`
	HasPractice              bool            `bson:"has_practice" json:"has_practice"`
	Weights                  ProgressWeights `bson:"weights" json:"weights"`
	PassThreshold            int             `bson:"pass_threshold" json:"pass_threshold"`
	TimeNormalizationMinutes int             `bson:"time_normalization_minutes" json:"time_normalization_minutes"`
}

const DefaultPassThreshold = 70

// VocabCard is one word/phrase pair inside a lesson. The engine only cares
// about the audio key; source/target text are carried for the lesson catalog
// endpoints.
type VocabCard struct {
	AudioKey   string `bson:"audio_key" json:"audio_key"`
	SourceText string `bson:"source_text" json:"source_text"`
	TargetText string `bson:"target_text" json:"target_text"`
}

// Lesson is a catalog entry: the cards whose audio counts as engagement, the
// practice activities that must all report before a combined score exists, and
// the progress configuration derived from them.
type Lesson struct {
	ID          string         `bson:"_id,omitempty" json:"id"`
	Title       string         `bson:"title" json:"title"`
	Language    string         `bson:"language" json:"language"`
	Order       int            `bson:"order" json:"order"`
	Cards       []VocabCard    `bson:"cards" json:"cards"`
	ActivityIDs []string       `bson:"activity_ids" json:"activity_ids"`
	Config      ProgressConfig `bson:"config" json:"config"`
}

// HasAudioKey reports whether the key names one of the lesson's cards.
// Unknown keys earn no engagement credit.
func (l *Lesson) HasAudioKey(key string) bool {
	for _, c := range l.Cards {
		if c.AudioKey == key {
			return true
		}
	}
	return false
}
