package app

import "github.com/jsamuelsen/quote-widget/internal/domain"

// Placeholder is shown when there is no quote and nothing is loading.
const Placeholder = "No quote available."

// Branch is the rendering branch a WidgetState selects.
type Branch int

// Rendering branches, in order of precedence.
const (
	// BranchLoading shows the loading indicator, even over a previous quote.
	BranchLoading Branch = iota

	// BranchQuote shows the quote content and author.
	BranchQuote

	// BranchPlaceholder shows Placeholder.
	BranchPlaceholder
)

// String returns the branch name used in JSON and logs.
func (b Branch) String() string {
	switch b {
	case BranchLoading:
		return "loading"
	case BranchQuote:
		return "quote"
	case BranchPlaceholder:
		return "placeholder"
	default:
		return "unknown"
	}
}

// WidgetState is an immutable snapshot of the widget.
type WidgetState struct {
	Quote   *domain.Quotation
	Loading bool
}

// Branch selects what a renderer shows for s.
func (s WidgetState) Branch() Branch {
	switch {
	case s.Loading:
		return BranchLoading
	case s.Quote != nil:
		return BranchQuote
	default:
		return BranchPlaceholder
	}
}

// CanRefresh reports whether the refresh control is enabled.
// The control is always shown; it is disabled while loading.
func (s WidgetState) CanRefresh() bool {
	return !s.Loading
}
