package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validTaskCfg() Config {
	return Config{
		MaxPriority: 1,
		Tasks:       []TaskDescriptor{basicTask(1, 1, func(k *Kernel) {})},
	}
}

func TestValidate_RequiresAtLeastOneTask(t *testing.T) {
	assert.Error(t, Config{}.Validate())
}

func TestValidate_RejectsPriorityAboveMax(t *testing.T) {
	cfg := validTaskCfg()
	cfg.Tasks[0].Priority = 5
	assert.Error(t, cfg.Validate())
}

// TestValidate_RejectsMaxPriorityBeyondBitmapWidth verifies a MaxPriority
// of 64 or more is rejected, since scheduler.go's ready-queue bitmap is a
// uint64 and can only address 64 priority levels (0..63): a task declared
// at priority >= 64 would shift its bitmap bit clean off the end
// (`1 << priority` on a uint64 with priority >= 64 is 0, per the Go spec),
// leaving it queued but permanently invisible to the scheduler.
func TestValidate_RejectsMaxPriorityBeyondBitmapWidth(t *testing.T) {
	cfg := validTaskCfg()
	cfg.MaxPriority = 64
	cfg.Tasks[0].Priority = 64
	assert.Error(t, cfg.Validate())
}

func TestValidate_AcceptsMaxPriorityAtBitmapWidth(t *testing.T) {
	cfg := validTaskCfg()
	cfg.MaxPriority = 63
	cfg.Tasks[0].Priority = 63
	assert.NoError(t, cfg.Validate())
}

func TestValidate_RejectsExtendedTaskWithMultipleActivations(t *testing.T) {
	cfg := validTaskCfg()
	cfg.Tasks[0].Kind = Extended
	cfg.Tasks[0].MaxActivations = 2
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsBasicTaskWithEvents(t *testing.T) {
	cfg := validTaskCfg()
	cfg.Tasks[0].Events = 0x1
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsZeroMaxActivations(t *testing.T) {
	cfg := validTaskCfg()
	cfg.Tasks[0].MaxActivations = 0
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsNilEntry(t *testing.T) {
	cfg := validTaskCfg()
	cfg.Tasks[0].Entry = nil
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsUnknownResourceID(t *testing.T) {
	cfg := validTaskCfg()
	cfg.Tasks[0].Resources = []ResourceID{0}
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsCeilingBelowAccessorPriority(t *testing.T) {
	cfg := validTaskCfg()
	cfg.Resources = []ResourceDescriptor{{Name: "R", Ceiling: 0}}
	cfg.Tasks[0].Resources = []ResourceID{0}
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsResourceCeilingAboveMaxPriority(t *testing.T) {
	cfg := validTaskCfg()
	cfg.Resources = []ResourceDescriptor{{Name: "R", Ceiling: 9}}
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsZeroMaxAllowedValueCounter(t *testing.T) {
	cfg := validTaskCfg()
	cfg.Counters = []CounterDescriptor{{Name: "c", MaxAllowedValue: 0, TicksPerBase: 1, MinCycle: 1}}
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsMinCycleOutOfRange(t *testing.T) {
	cfg := validTaskCfg()
	cfg.Counters = []CounterDescriptor{{Name: "c", MaxAllowedValue: 10, TicksPerBase: 1, MinCycle: 20}}
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsAlarmWithUnknownCounter(t *testing.T) {
	cfg := validTaskCfg()
	cfg.Alarms = []AlarmDescriptor{{Name: "a", Counter: 0, Action: AlarmAction{Kind: ActionActivateTask, Task: 0}}}
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsSetEventActionOnBasicTask(t *testing.T) {
	cfg := validTaskCfg()
	cfg.Counters = []CounterDescriptor{counterCfg(9)}
	cfg.Alarms = []AlarmDescriptor{
		{Name: "a", Counter: 0, Action: AlarmAction{Kind: ActionSetEvent, Task: 0, Event: 0x1}},
	}
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsNilCallbackAction(t *testing.T) {
	cfg := validTaskCfg()
	cfg.Counters = []CounterDescriptor{counterCfg(9)}
	cfg.Alarms = []AlarmDescriptor{
		{Name: "a", Counter: 0, Action: AlarmAction{Kind: ActionCallback}},
	}
	assert.Error(t, cfg.Validate())
}

func TestValidate_AcceptsWellFormedConfig(t *testing.T) {
	cfg := validTaskCfg()
	cfg.Resources = []ResourceDescriptor{{Name: "R", Ceiling: 1}}
	cfg.Tasks[0].Resources = []ResourceID{0}
	cfg.Counters = []CounterDescriptor{counterCfg(99)}
	cfg.Alarms = []AlarmDescriptor{
		{Name: "a", Counter: 0, Action: AlarmAction{Kind: ActionActivateTask, Task: 0}},
	}
	assert.NoError(t, cfg.Validate())
}
