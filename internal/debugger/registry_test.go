package debugger

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	key := r.Register("ARM", "arm-linux-", "/opt/br")
	assert.Equal(t, Key("ARM", "/opt/br"), key)

	solib, ok := r.SolibPath(key)
	require.True(t, ok)
	assert.Equal(t, "/opt/br", solib)

	debug, ok := r.DebugName(key)
	require.True(t, ok)
	assert.Equal(t, "/opt/br/host/usr/bin/arm-linux-gdb", debug)

	cfg, ok := r.Lookup(key)
	require.True(t, ok)
	assert.Equal(t, "arm-linux-", cfg.Prefix)
}

func TestLookupUnknownToolchain(t *testing.T) {
	r := NewRegistry()
	r.Register("ARM", "arm-linux-", "/opt/br")

	_, ok := r.Lookup("Native GDB")
	assert.False(t, ok)
	_, ok = r.SolibPath(Key("MIPS", "/opt/br"))
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	r := NewRegistry()
	r.Register("ARM", "arm-linux-", "/opt/a")
	r.Register("MIPS", "mips-linux-", "/opt/b")
	require.Equal(t, 2, r.Len())
	assert.Equal(t, []string{"ARM (/opt/a)", "MIPS (/opt/b)"}, r.Names())

	r.Clear()
	assert.Equal(t, 0, r.Len())
	_, ok := r.Lookup("ARM (/opt/a)")
	assert.False(t, ok)
}

func TestZeroValueRegistry(t *testing.T) {
	var r Registry
	_, ok := r.Lookup("x")
	assert.False(t, ok)
	key := r.Register("ARM", "arm-", "/opt")
	_, ok = r.Lookup(key)
	assert.True(t, ok)
}

func TestConcurrentReaders(t *testing.T) {
	r := NewRegistry()
	key := r.Register("ARM", "arm-linux-", "/opt/br")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok := r.SolibPath(key)
			assert.True(t, ok)
		}()
	}
	wg.Wait()
}
