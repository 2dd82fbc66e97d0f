package triage

// Question is one item of the self-assessment questionnaire. Patients are
// asked how often, over the last two weeks, they have been bothered by it.
type Question struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Questions is the fixed, ordered questionnaire.
var Questions = []Question{
	{ID: "q1", Text: "Little interest or pleasure in doing things?"},
	{ID: "q2", Text: "Feeling down, depressed, or hopeless?"},
	{ID: "q3", Text: "Trouble falling or staying asleep, or sleeping too much?"},
	{ID: "q4", Text: "Feeling tired or having little energy?"},
	{ID: "q5", Text: "Feeling nervous, anxious, or on edge?"},
}

// AnswerOption is one of the frequency choices offered for every question.
type AnswerOption struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

var AnswerOptions = []AnswerOption{
	{Label: "Not at all", Value: 0},
	{Label: "Several days", Value: 1},
	{Label: "More than half the days", Value: 2},
	{Label: "Nearly every day", Value: 3},
}

const (
	// MinAnswerValue and MaxAnswerValue bound a single response.
	MinAnswerValue = 0
	MaxAnswerValue = 3

	// ScaleFactor maps the raw 0-15 questionnaire scale to a 0-27 clinical
	// scale approximation. Policy constant, not derived from question count.
	ScaleFactor = 1.8

	// CriticalThreshold is the scaled score at and above which the critical
	// pathway is recommended.
	CriticalThreshold = 20.0
)

// Answers maps question IDs to response values. Unanswered questions simply
// contribute nothing to the score.
type Answers map[string]int

// Pathway is the discrete triage outcome steering which provider flow is
// offered.
type Pathway string

const (
	PathwayModerate Pathway = "MODERATE"
	PathwayCritical Pathway = "CRITICAL"
)

// Result is the outcome of scoring a completed questionnaire.
type Result struct {
	RawScore    int     `json:"raw_score"`
	ScaledScore float64 `json:"scaled_score"`
	Pathway     Pathway `json:"pathway"`
}

// Score computes the triage result for a set of answers. It is pure and
// total: the empty map scores 0 and yields the moderate pathway.
func Score(answers Answers) Result {
	raw := 0
	for _, v := range answers {
		raw += v
	}
	scaled := float64(raw) * ScaleFactor

	pathway := PathwayModerate
	if scaled >= CriticalThreshold {
		pathway = PathwayCritical
	}

	return Result{RawScore: raw, ScaledScore: scaled, Pathway: pathway}
}

// Recommendation is the care-path text shown when the assessment completes.
type Recommendation struct {
	Pathway     Pathway `json:"pathway"`
	Label       string  `json:"label"`
	Description string  `json:"description"`
	IsCrisis    bool    `json:"is_crisis"`
}

var recommendations = map[Pathway]Recommendation{
	PathwayCritical: {
		Pathway:     PathwayCritical,
		Label:       "Crisis Support & Psychiatry",
		Description: "Your symptoms indicate a need for immediate, integrated care.",
		IsCrisis:    true,
	},
	PathwayModerate: {
		Pathway:     PathwayModerate,
		Label:       "Foundation Therapy",
		Description: "A psychologist will work with you to build strong mental health foundations.",
		IsCrisis:    false,
	},
}

// RecommendationFor returns the care-path recommendation for a pathway.
func RecommendationFor(p Pathway) Recommendation {
	return recommendations[p]
}
