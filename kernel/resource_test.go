package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPriorityCeilingProtocol reproduces spec.md §8 scenario 2 verbatim:
// while L holds R (ceiling 3), activating M or H does not preempt it;
// releasing R lets H run, then M, then L resumes.
func TestPriorityCeilingProtocol(t *testing.T) {
	var order []string
	var l, m, h TaskID
	var r ResourceID

	cfg := Config{MaxPriority: 3}
	r = ResourceID(len(cfg.Resources))
	cfg.Resources = append(cfg.Resources, ResourceDescriptor{Name: "R", Ceiling: 3})

	lEntry := func(k *Kernel) {
		order = append(order, "L:start")
		require.Equal(t, E_OK, k.GetResource(r))
		order = append(order, "L:has-R")
		require.Equal(t, E_OK, k.ActivateTask(m))
		require.Equal(t, E_OK, k.ActivateTask(h))
		order = append(order, "L:still-running")
		require.Equal(t, E_OK, k.ReleaseResource(r))
		order = append(order, "L:resumed")
	}
	cfg.Tasks = append(cfg.Tasks, TaskDescriptor{
		Name: "L", Priority: 1, Kind: Basic, MaxActivations: 1,
		Resources: []ResourceID{r}, Entry: lEntry,
	})
	cfg.Tasks = append(cfg.Tasks, basicTask(2, 1, func(k *Kernel) { order = append(order, "M:ran") }))
	cfg.Tasks = append(cfg.Tasks, basicTask(3, 1, func(k *Kernel) { order = append(order, "H:ran") }))
	l, m, h = 0, 1, 2

	k, err := New(cfg, &testPlatform{})
	require.NoError(t, err)

	require.Equal(t, E_OK, k.ActivateTask(l))
	k.StartOS(0)

	assert.Equal(t, []string{
		"L:start", "L:has-R", "L:still-running",
		"H:ran", "M:ran", "L:resumed",
	}, order)
}

// TestReleaseResource_LIFOViolation reproduces spec.md §8 scenario 5:
// releasing resources out of acquisition order fails with E_OS_NOFUNC and
// leaves state unchanged (R1 stays held).
func TestReleaseResource_LIFOViolation(t *testing.T) {
	var r1, r2 ResourceID
	cfg := Config{
		MaxPriority: 0,
		Resources: []ResourceDescriptor{
			{Name: "R1", Ceiling: 0},
			{Name: "R2", Ceiling: 0},
		},
	}
	cfg.Tasks = []TaskDescriptor{
		{
			Name: "t", Priority: 0, Kind: Basic, MaxActivations: 1,
			Resources: []ResourceID{0, 1},
			Entry: func(k *Kernel) {
				require.Equal(t, E_OK, k.GetResource(r1))
				require.Equal(t, E_OK, k.GetResource(r2))
				assert.Equal(t, E_OS_NOFUNC, k.ReleaseResource(r1))
				// state unchanged: both still held, released in correct order now.
				require.Equal(t, E_OK, k.ReleaseResource(r2))
				require.Equal(t, E_OK, k.ReleaseResource(r1))
			},
		},
	}
	k, err := New(cfg, &testPlatform{})
	require.NoError(t, err)
	r1, r2 = 0, 1

	require.Equal(t, E_OK, k.ActivateTask(0))
	k.StartOS(0)
}

// TestGetResource_UnknownID verifies an out-of-range resource id is
// rejected with E_OS_ID rather than panicking or corrupting state.
func TestGetResource_UnknownID(t *testing.T) {
	var r ResourceID
	cfg := Config{
		MaxPriority: 2,
		Resources:   []ResourceDescriptor{{Name: "R", Ceiling: 2}},
	}
	cfg.Tasks = []TaskDescriptor{
		{
			Name: "t", Priority: 2, Kind: Basic, MaxActivations: 1,
			Resources: []ResourceID{0},
			Entry: func(k *Kernel) {
				assert.Equal(t, E_OS_ID, k.GetResource(ResourceID(99)))
				require.Equal(t, E_OK, k.GetResource(r))
				require.Equal(t, E_OK, k.ReleaseResource(r))
			},
		},
	}
	k, err := New(cfg, &testPlatform{})
	require.NoError(t, err)
	r = 0

	require.Equal(t, E_OK, k.ActivateTask(0))
	k.StartOS(0)
}
