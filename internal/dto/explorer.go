package dto

// ExplorerSummary is the outcome of one explorer lookup. Text is always
// usable as AI context, including when OK is false.
type ExplorerSummary struct {
	ID   string
	URL  string
	Text string
	OK   bool
	Err  error
}
