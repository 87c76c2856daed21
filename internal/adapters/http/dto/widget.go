package dto

import "github.com/jsamuelsen/quote-widget/internal/app"

// QuoteResponse is the JSON form of a quotation.
type QuoteResponse struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

// WidgetResponse is the JSON form of the widget state.
type WidgetResponse struct {
	// Quote is null when no quote has been fetched yet.
	Quote *QuoteResponse `json:"quote"`

	// Loading is true while the latest refresh is in flight.
	Loading bool `json:"loading"`

	// CanRefresh mirrors the enabled state of the refresh control.
	CanRefresh bool `json:"canRefresh"`

	// View is what a renderer shows: "loading", "quote" or "placeholder".
	View string `json:"view"`
}

// NewWidgetResponse converts a widget snapshot.
func NewWidgetResponse(s app.WidgetState) *WidgetResponse {
	resp := &WidgetResponse{
		Loading:    s.Loading,
		CanRefresh: s.CanRefresh(),
		View:       s.Branch().String(),
	}

	if s.Quote != nil {
		resp.Quote = &QuoteResponse{
			Content: s.Quote.Content,
			Author:  s.Quote.Author,
		}
	}

	return resp
}
