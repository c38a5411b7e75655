package answer

// Verdict is the outcome of checking a submission.
type Verdict struct {
	IsCorrect  bool
	IsComplete bool // enough answers were selected to submit
}

// Validate checks selected against correct for a question that asks for
// required answers. Every selected answer must be correct: one wrong
// inclusion fails the whole submission, there is no partial credit.
// Completeness needs at least one selection, or at least required
// selections when required is greater than one. Matching is exact.
func Validate(selected, correct []string, required int) Verdict {
	need := 1
	if required > 1 {
		need = required
	}

	valid := make(map[string]struct{}, len(correct))
	for _, c := range correct {
		valid[c] = struct{}{}
	}

	allCorrect := len(selected) > 0
	for _, s := range selected {
		if _, ok := valid[s]; !ok {
			allCorrect = false
			break
		}
	}

	return Verdict{
		IsCorrect:  allCorrect,
		IsComplete: len(selected) >= need,
	}
}
