package kernel

import "fmt"

// taskDynamic is the mutable half of a task object (spec.md §3); the
// static half lives in Config.Tasks, indexed by the same TaskID.
type taskDynamic struct {
	state              TaskState
	currentPriority    uint8
	pendingActivations uint8
	currentEventMask   EventMaskType
	waitMask           EventMaskType
	holders            *ring[resourceHold] // LIFO resource holder stack
	ctx                *extendedContext    // non-nil only while an extended task's goroutine is alive
}

// resourceHold records one entry of a task's resource holder stack: which
// resource, and the priority to restore on release.
type resourceHold struct {
	resource      ResourceID
	savedPriority uint8
}

// resourceDynamic is the mutable half of a resource object.
type resourceDynamic struct {
	locked bool
	holder TaskID
}

// counterDynamic is the mutable half of a counter object.
type counterDynamic struct {
	value TickType
}

// alarmDynamic is the mutable half of an alarm object.
type alarmDynamic struct {
	armed  bool
	expiry TickType
	cycle  TickType
	heapIx int // index into its counter's Kernel.alarmHeaps entry, maintained by container/heap; -1 when not in a heap
}

// Kernel is the running instance of the object model plus scheduler
// described by spec.md. Construct one with New; drive it with StartOS.
type Kernel struct {
	cfg      Config
	platform Platform
	logger   *Log

	sched *scheduler

	tasks     []taskDynamic
	resources []resourceDynamic
	counters  []counterDynamic
	alarms     []alarmDynamic
	alarmHeaps []*counterAlarmHeap // one per counter, indexed by CounterID

	runningTask TaskID
	execContext ExecContext
	isrDepth    int

	criticalDepth int32

	appMode        AppMode
	appModeStarted bool
	extendedStatus bool

	// dispatchPending is raised by any service-call mutation that may
	// have changed Running ∪ Ready, and consumed by the next dispatch
	// point (spec.md §4.C "When rescheduling happens").
	dispatchPending bool

	// schedulerResourceHolder tracks which task (if any) currently holds
	// the implicit RES_SCHEDULER resource (ceiling == MaxPriority),
	// separately from the normal resource table since RES_SCHEDULER has
	// no ResourceID slot of its own.
	schedulerResourceHolder TaskID
	schedulerResourceSaved  uint8

	lastError OSError

	hooks Hooks
}

// Hooks is the set of application-provided entry points spec.md §6/§9
// names. A nil field is the documented "not configured" sentinel.
type Hooks struct {
	StartupHook  func(*Kernel)
	ShutdownHook func(*Kernel, StatusType)
	ErrorHook    func(*Kernel, OSError)
	PreTaskHook  func(*Kernel)
	PostTaskHook func(*Kernel)
}

// Option configures a Kernel at construction time, following the
// teacher's functional-option convention (eventloop.LoopOption).
type Option func(*Kernel)

// WithLogger attaches a structured diagnostic logger (see logging.go).
// The default is nil (no logging).
func WithLogger(l *Log) Option {
	return func(k *Kernel) { k.logger = l }
}

// WithHooks attaches the application hook set. Any zero-valued field
// leaves that hook unconfigured.
func WithHooks(h Hooks) Option {
	return func(k *Kernel) { k.hooks = h }
}

// New builds a Kernel from a validated Config and a Platform
// implementation. It does not start anything — call StartOS to boot.
func New(cfg Config, platform Platform, opts ...Option) (*Kernel, error) {
	if platform == nil {
		return nil, fmt.Errorf("kernel: New: platform must not be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	k := &Kernel{
		cfg:                     cfg,
		platform:                platform,
		extendedStatus:          cfg.ExtendedStatus,
		runningTask:             InvalidTaskID,
		execContext:             ContextTask,
		schedulerResourceHolder: InvalidTaskID,
	}
	for _, o := range opts {
		o(k)
	}

	k.sched = newScheduler(cfg)

	k.tasks = make([]taskDynamic, len(cfg.Tasks))
	for id, t := range cfg.Tasks {
		depth := len(t.Resources)
		if depth == 0 {
			depth = 1 // newRing requires a capacity of at least 1
		}
		k.tasks[id] = taskDynamic{
			state:           Suspended,
			currentPriority: t.Priority,
			holders:         newRing[resourceHold](depth + 1), // +1 spare slot; RES_SCHEDULER is tracked in schedulerResourceHolder, never on this stack
		}
	}

	k.resources = make([]resourceDynamic, len(cfg.Resources))
	for id := range k.resources {
		k.resources[id] = resourceDynamic{holder: InvalidTaskID}
	}

	k.counters = make([]counterDynamic, len(cfg.Counters))
	k.alarmHeaps = make([]*counterAlarmHeap, len(cfg.Counters))
	for id := range k.alarmHeaps {
		k.alarmHeaps[id] = &counterAlarmHeap{k: k}
	}
	k.alarms = make([]alarmDynamic, len(cfg.Alarms))
	for id := range k.alarms {
		k.alarms[id].heapIx = -1
	}

	return k, nil
}

// TaskDescriptor returns the static descriptor for t, or an error if t is
// not a valid id. Provided for introspection (logging, tests); not itself
// an OSEK service.
func (k *Kernel) TaskDescriptor(t TaskID) (TaskDescriptor, error) {
	if !k.validTask(t) {
		return TaskDescriptor{}, fmt.Errorf("kernel: invalid task id %d", t)
	}
	return k.cfg.Tasks[t], nil
}

func (k *Kernel) validTask(t TaskID) bool {
	return t >= 0 && int(t) < len(k.tasks)
}

func (k *Kernel) validResource(r ResourceID) bool {
	return r >= 0 && int(r) < len(k.resources)
}

func (k *Kernel) validCounter(c CounterID) bool {
	return c >= 0 && int(c) < len(k.counters)
}

func (k *Kernel) validAlarm(a AlarmID) bool {
	return a >= 0 && int(a) < len(k.alarms)
}
