package lookup

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/therapistindex/directory-cli/internal/config"
)

func TestBuild(t *testing.T) {
	table := Build([]config.AliasEntry{
		{CanonicalName: "Blue Cross Blue Shield", Aliases: []string{"blue cross", " BCBS ", "CareFirst"}},
		{CanonicalName: "Aetna", Aliases: []string{"aetna"}},
	})

	assert.Equal(t, "Blue Cross Blue Shield", table["blue cross"])
	assert.Equal(t, "Blue Cross Blue Shield", table["bcbs"])
	assert.Equal(t, "Blue Cross Blue Shield", table["carefirst"])
	assert.Equal(t, "Aetna", table["aetna"])
	assert.Len(t, table, 4)
}

func TestBuildLastWriteWins(t *testing.T) {
	table := Build([]config.AliasEntry{
		{CanonicalName: "First", Aliases: []string{"shared"}},
		{CanonicalName: "Second", Aliases: []string{"Shared"}},
	})
	assert.Equal(t, "Second", table["shared"])
}

func TestCanonical(t *testing.T) {
	table := Table{"cbt": "CBT"}

	got, ok := table.Canonical(" CBT ")
	assert.True(t, ok)
	assert.Equal(t, "CBT", got)

	_, ok = table.Canonical("unknown")
	assert.False(t, ok)
}
