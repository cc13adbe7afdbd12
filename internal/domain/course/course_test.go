package course

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSectionDisplayName(t *testing.T) {
	assert.Equal(t, "General", Section{Number: 0}.DisplayName())
	assert.Equal(t, "Topic 3", Section{Number: 3, Name: "  "}.DisplayName())
	assert.Equal(t, "Week 1: Basics", Section{Number: 1, Name: "Week 1: Basics"}.DisplayName())
}

func TestUserFullNameAndIdentity(t *testing.T) {
	u := User{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.org", IDNumber: "A-1"}

	assert.Equal(t, "Ada Lovelace", u.FullName())
	assert.Equal(t, "ada@example.org", u.IdentityField("email"))
	assert.Equal(t, "A-1", u.IdentityField("idnumber"))
	assert.Equal(t, "", u.IdentityField("phone"))
	assert.Equal(t, "Ada", User{FirstName: "Ada"}.FullName())
}

func TestParseSortField(t *testing.T) {
	assert.Equal(t, SortFirstName, ParseSortField("firstname"))
	assert.Equal(t, SortLastName, ParseSortField("lastname"))
	assert.Equal(t, SortLastName, ParseSortField(""))
	assert.Equal(t, SortLastName, ParseSortField("bogus"))
}
