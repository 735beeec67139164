package model

import "strings"

// Emotion is a tag the user attaches to a schedule.
type Emotion string

const (
	EmotionExcited     Emotion = "excited"
	EmotionTense       Emotion = "tense"
	EmotionAnxious     Emotion = "anxious"
	EmotionConfident   Emotion = "confident"
	EmotionTired       Emotion = "tired"
	EmotionMotivated   Emotion = "motivated"
	EmotionCalm        Emotion = "calm"
	EmotionOverwhelmed Emotion = "overwhelmed"
	EmotionHopeful     Emotion = "hopeful"
	EmotionWorried     Emotion = "worried"
)

// Emotions lists every known tag in the order the UI shows them.
func Emotions() []Emotion {
	return []Emotion{
		EmotionExcited, EmotionTense, EmotionAnxious, EmotionConfident, EmotionTired,
		EmotionMotivated, EmotionCalm, EmotionOverwhelmed, EmotionHopeful, EmotionWorried,
	}
}

// ParseEmotion normalizes s. The bool is false for unknown tags.
func ParseEmotion(s string) (Emotion, bool) {
	e := Emotion(strings.ToLower(strings.TrimSpace(s)))
	return e, e.Known()
}

// Known reports whether e is a recognised tag.
func (e Emotion) Known() bool {
	for _, known := range Emotions() {
		if e == known {
			return true
		}
	}
	return false
}

// HasEmotion reports whether tags contains e.
func HasEmotion(tags []Emotion, e Emotion) bool {
	for _, t := range tags {
		if t == e {
			return true
		}
	}
	return false
}
