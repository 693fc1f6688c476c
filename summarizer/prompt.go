package summarizer

import "tubenotes/types"

// BaseInstruction is sent ahead of every transcript
const BaseInstruction = "You are a YouTube video summarizer. You will be taking the transcript text and " +
	"summarizing the entire video, providing the important points as a point-form summary " +
	"within roughly 500 words. Please summarize the text given here: "

// Difficulty clauses appended verbatim to BaseInstruction
const (
	simpleClause = "use simple, easy-to-understand language"
	mediumClause = "use moderate language complexity"
	hardClause   = "use advanced language and technical terms where applicable"
)

// BuildPrompt composes the instruction for d. Unknown levels add no clause.
func BuildPrompt(d types.Difficulty) string {
	switch d {
	case types.DifficultySimple:
		return BaseInstruction + simpleClause
	case types.DifficultyMedium:
		return BaseInstruction + mediumClause
	case types.DifficultyHard:
		return BaseInstruction + hardClause
	default:
		return BaseInstruction
	}
}
