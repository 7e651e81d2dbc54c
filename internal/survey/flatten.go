package survey

// Flatten linearizes a survey definition into document order: sections first,
// questions within each section second. Every emitted question carries its
// section's full option list, title, and scale label.
//
// When progress is mid-survey (status IN_PROGRESS with a non-empty completed
// set) the already-answered questions are filtered out, preserving the
// relative order of the remainder. Any other status yields the full list.
//
// Flatten is pure and deterministic; it is safe to recompute on every render.
func Flatten(def *Definition, progress Progress) []FlattenedQuestion {
	if def == nil {
		return nil
	}

	list := make([]FlattenedQuestion, 0, def.QuestionCount())
	for _, section := range def.Sections {
		for _, q := range section.Content.Questions {
			list = append(list, FlattenedQuestion{
				QuestionID:   q.ID,
				Text:         q.Text,
				Options:      section.Content.Options,
				SectionTitle: section.Title,
				Scale:        section.Scale,
			})
		}
	}

	if progress.Status != StatusInProgress || len(progress.CompletedQuestionIDs) == 0 {
		return list
	}

	remaining := list[:0]
	for _, q := range list {
		if !progress.Completed(q.QuestionID) {
			remaining = append(remaining, q)
		}
	}
	return remaining
}

// ResumeIndex locates progress.CurrentQuestionID in a flattened list. A stale
// or empty reference resolves to 0 so resuming never fails.
func ResumeIndex(questions []FlattenedQuestion, progress Progress) int {
	if progress.Status != StatusInProgress || progress.CurrentQuestionID == "" {
		return 0
	}
	for i, q := range questions {
		if q.QuestionID == progress.CurrentQuestionID {
			return i
		}
	}
	return 0
}
