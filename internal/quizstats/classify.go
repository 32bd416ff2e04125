package quizstats

// Classification thresholds, in percent.
const (
	masteredAvg  = 80
	masteredBest = 90
	learningAvg  = 60
	learningBest = 70
)

// Classify derives the mastery status from the running average and
// best session scores. Evaluation order matters: mastered requires
// both thresholds, learning either, so average=85 best=85 classifies
// as learning rather than mastered.
func Classify(average, best float64) Status {
	switch {
	case average >= masteredAvg && best >= masteredBest:
		return StatusMastered
	case average >= learningAvg || best >= learningBest:
		return StatusLearning
	default:
		return StatusNew
	}
}
