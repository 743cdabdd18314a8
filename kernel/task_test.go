package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestActivateTask_QueuesUpToMaxActivations verifies ActivateTask's
// activation-count ceiling (spec.md §4.D): two activations queue and run
// back-to-back, a third is rejected once both slots are full.
func TestActivateTask_QueuesUpToMaxActivations(t *testing.T) {
	var ran int
	cfg := Config{
		MaxPriority: 1,
		Tasks: []TaskDescriptor{
			basicTask(1, 2, func(k *Kernel) { ran++ }),
		},
	}
	k, err := New(cfg, &testPlatform{})
	require.NoError(t, err)

	require.Equal(t, E_OK, k.ActivateTask(0))
	require.Equal(t, E_OK, k.ActivateTask(0))
	require.Equal(t, E_OS_LIMIT, k.ActivateTask(0))

	k.StartOS(0)

	assert.Equal(t, 2, ran, "both queued activations should have run back-to-back")
	state := Ready
	require.Equal(t, E_OK, k.GetTaskState(0, &state))
	assert.Equal(t, Suspended, state)
}

// TestChainTask_ReRequeues reproduces spec.md §8 scenario 4: a basic task
// with MaxActivations=2 that activates and chains to itself runs three
// times in total before finally going SUSPENDED.
func TestChainTask_ReRequeues(t *testing.T) {
	var runs int
	var self TaskID
	cfg := Config{
		MaxPriority: 1,
		Tasks: []TaskDescriptor{
			basicTask(1, 2, func(k *Kernel) {
				runs++
				if runs == 1 {
					require.Equal(t, E_OK, k.ActivateTask(self))
					require.Equal(t, E_OK, k.ChainTask(self))
				}
				// runs 2 and 3 simply terminate (implicit return).
			}),
		},
	}
	k, err := New(cfg, &testPlatform{})
	require.NoError(t, err)
	self = 0

	require.Equal(t, E_OK, k.ActivateTask(0))
	k.StartOS(0)

	assert.Equal(t, 3, runs)
	state := Ready
	require.Equal(t, E_OK, k.GetTaskState(0, &state))
	assert.Equal(t, Suspended, state)
}

// TestChainTask_LimitOnDifferentTarget verifies that ChainTask's E_OS_LIMIT
// arises when chaining to a different task already at its own activation
// ceiling, not when chaining to self (see DESIGN.md's resolution of the
// self-chain-at-max open question).
func TestChainTask_LimitOnDifferentTarget(t *testing.T) {
	var from, to TaskID
	cfg := Config{
		MaxPriority: 1,
		Tasks: []TaskDescriptor{
			basicTask(1, 1, func(k *Kernel) {
				require.Equal(t, E_OS_LIMIT, k.ChainTask(to))
				require.Equal(t, E_OK, k.TerminateTask())
			}),
			basicTask(1, 1, func(k *Kernel) {}),
		},
	}
	k, err := New(cfg, &testPlatform{})
	require.NoError(t, err)
	from, to = 0, 1

	require.Equal(t, E_OK, k.ActivateTask(from))
	require.Equal(t, E_OK, k.ActivateTask(to))
	k.StartOS(0)
}

// TestPriorityPreemption reproduces spec.md §8 scenario 2's ordering
// without resources: a higher-priority task activated from within a
// lower-priority one's body runs to completion before control returns.
func TestPriorityPreemption(t *testing.T) {
	var order []string
	var low, high TaskID
	cfg := Config{
		MaxPriority: 2,
		Tasks: []TaskDescriptor{
			basicTask(1, 1, func(k *Kernel) {
				order = append(order, "low:start")
				require.Equal(t, E_OK, k.ActivateTask(high))
				order = append(order, "low:end")
			}),
			basicTask(2, 1, func(k *Kernel) {
				order = append(order, "high:ran")
			}),
		},
	}
	k, err := New(cfg, &testPlatform{})
	require.NoError(t, err)
	low, high = 0, 1

	require.Equal(t, E_OK, k.ActivateTask(low))
	k.StartOS(0)

	assert.Equal(t, []string{"low:start", "high:ran", "low:end"}, order)
}

// TestTerminateTask_CallLevel verifies TerminateTask is rejected from ISR
// context.
func TestTerminateTask_CallLevel(t *testing.T) {
	cfg := Config{
		MaxPriority: 0,
		Tasks:       []TaskDescriptor{basicTask(0, 1, func(k *Kernel) {})},
	}
	k, err := New(cfg, &testPlatform{})
	require.NoError(t, err)

	k.EnterISR()
	defer k.ExitISR()
	assert.Equal(t, E_OS_CALLEVEL, k.TerminateTask())
}

// TestTerminateTask_HeldResource verifies TerminateTask refuses to end a
// task that still holds a resource.
func TestTerminateTask_HeldResource(t *testing.T) {
	var r ResourceID
	cfg := Config{
		MaxPriority: 0,
		Resources:   []ResourceDescriptor{{Name: "R", Ceiling: 0}},
	}
	cfg.Tasks = []TaskDescriptor{
		{
			Name: "t", Priority: 0, Kind: Basic, MaxActivations: 1,
			Resources: []ResourceID{0},
			Entry: func(k *Kernel) {
				require.Equal(t, E_OK, k.GetResource(r))
				assert.Equal(t, E_OS_RESOURCE, k.TerminateTask())
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
