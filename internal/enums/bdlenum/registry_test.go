package bdlenum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	e, ok := Lookup("BOILER-TYPE")
	require.True(t, ok)
	assert.Equal(t, "BOILER-TYPE", e.Name())
	assert.True(t, e.Has(BoilerHWDraft))
	assert.False(t, e.Has("HW-BOILER-W/ DRAFT"))

	_, ok = Lookup("NOT-AN-ENUM")
	assert.False(t, ok)
}

func TestMembersIsCopy(t *testing.T) {
	members := LoopTypes.Members()
	require.NotEmpty(t, members)
	members[0] = "MUTATED"
	assert.Equal(t, LoopCHW, LoopTypes.Members()[0])
}

func TestCommandsCoverLibraryCommands(t *testing.T) {
	for _, cmd := range LibraryCommands.Members() {
		assert.True(t, Commands.Has(cmd), cmd)
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "UNITS")
}

func TestRegisterDuplicatePanics(t *testing.T) {
	assert.Panics(t, func() { register("COMMANDS", "X") })
}
