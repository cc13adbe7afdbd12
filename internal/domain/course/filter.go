package course

// SortField selects the user ordering of a report.
type SortField string

const (
	SortLastName  SortField = "lastname"
	SortFirstName SortField = "firstname"
)

// ParseSortField maps a raw sort parameter to a SortField. Anything other
// than "firstname" sorts by last name.
func ParseSortField(s string) SortField {
	if s == string(SortFirstName) {
		return SortFirstName
	}
	return SortLastName
}

// UserFilter narrows and windows the list of tracked users.
type UserFilter struct {
	FirstInitial string // case-insensitive prefix of the first name
	LastInitial  string // case-insensitive prefix of the last name
	Sort         SortField
	Offset       int
	Limit        int // 0 means no limit
}
