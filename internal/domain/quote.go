// Package domain holds the quotation entity and the kinds of failure a
// quote fetch can end in.
package domain

// Quotation is a quoted text together with the person it is attributed to.
// It has no knowledge of the provider it was fetched from and is never
// mutated after construction; a newer Quotation replaces it wholesale.
type Quotation struct {
	// Content is the text of the quotation. Non-empty for a valid Quotation.
	Content string

	// Author is who said or wrote the quotation. May be empty when unknown.
	Author string
}

// HasAuthor reports whether the quotation carries an attribution.
func (q *Quotation) HasAuthor() bool {
	return q != nil && q.Author != ""
}
