package models

// LessonSummary is an entry of the lesson list.
type LessonSummary struct {
	ID       int    `json:"id" yaml:"id"`
	Category string `json:"category" yaml:"category"`
	Title    string `json:"title" yaml:"title"`
}

// Lesson is a unit of instructional content with theory text and runnable examples.
type Lesson struct {
	ID       int           `json:"id" yaml:"id"`
	Category string        `json:"category" yaml:"category"`
	Title    string        `json:"title" yaml:"title"`
	Content  LessonContent `json:"content" yaml:"content"`
}

type LessonContent struct {
	Description string    `json:"description" yaml:"description"`
	Theory      string    `json:"theory" yaml:"theory"`
	Examples    []Example `json:"examples" yaml:"examples"`
}

// Example is a runnable query attached to a lesson.
//
// It has no identity of its own and is addressed by its index in
// LessonContent.Examples.
type Example struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Query       string `json:"query" yaml:"query"`
	Explanation string `json:"explanation" yaml:"explanation"`
}

// Summary returns the list entry of the lesson.
func (l Lesson) Summary() LessonSummary {
	return LessonSummary{
		ID:       l.ID,
		Category: l.Category,
		Title:    l.Title,
	}
}

// Example returns the example at index, if any.
func (l Lesson) Example(index int) (Example, bool) {
	if index < 0 || index >= len(l.Content.Examples) {
		return Example{}, false
	}

	return l.Content.Examples[index], true
}
