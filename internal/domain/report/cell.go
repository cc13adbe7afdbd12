package report

// Cell is one rendered table cell: a display label and a secondary text,
// typically a completion description and a formatted date.
type Cell struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary,omitempty"`
}

// Group is one or more consecutive identical cells collapsed into a single
// column-spanning unit. Span is always >= 1.
type Group struct {
	Value Cell `json:"value"`
	Span  int  `json:"span"`
}

// Span is a header label with the number of columns it covers.
type Span struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}
