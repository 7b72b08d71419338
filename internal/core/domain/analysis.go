package domain

// AnalysisProfile selects the instruction set used for a generation.
type AnalysisProfile string

const (
	ProfileEmotion AnalysisProfile = "emotion"
	ProfileExpense AnalysisProfile = "expense"
)

func (p AnalysisProfile) Valid() bool {
	return p == ProfileEmotion || p == ProfileExpense
}
