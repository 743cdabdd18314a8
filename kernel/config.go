package kernel

import "fmt"

// AlarmActionKind distinguishes the three alarm actions spec.md §3/§4.G
// allows.
type AlarmActionKind uint8

const (
	ActionActivateTask AlarmActionKind = iota
	ActionSetEvent
	ActionCallback
)

// AlarmAction is the fired behaviour of an alarm: activate a task, set an
// event on a (necessarily extended) task, or invoke a user callback. Model
// it as a plain struct with a null-sentinel callback field, per the
// "hooks and alarm callbacks are configuration-time function pointers"
// design note — there is no dynamic dispatch beyond a single function
// value picked at config time.
type AlarmAction struct {
	Kind     AlarmActionKind
	Task     TaskID        // ActionActivateTask, ActionSetEvent
	Event    EventMaskType // ActionSetEvent
	Callback func(*Kernel) // ActionCallback; nil for the other two kinds
}

// TaskDescriptor is the static, build-time-generated description of one
// task. Immutable once a Config is built.
type TaskDescriptor struct {
	Name           string
	Priority       uint8
	Kind           TaskKind
	Schedulability Schedulability
	MaxActivations uint8 // basic tasks only; forced to 1 for extended
	// Resources is the task's statically declared ceiling set: every
	// resource it may call GetResource on. Used only for config
	// validation (ceiling >= every accessor's priority); the runtime
	// enforces the ceiling check per call, not via this list.
	Resources []ResourceID
	// Events is the extended task's declared event mask (the union of
	// every event bit it may wait on or have set). Basic tasks must leave
	// this zero.
	Events EventMaskType
	// AutoStart lists the application modes in which this task is
	// activated automatically by StartOS.
	AutoStart []AppMode
	// Entry is the task body. It must return normally to request an
	// implicit TerminateTask, or call Kernel.TerminateTask/ChainTask
	// itself (which never returns to the caller).
	Entry func(*Kernel)
}

// ResourceDescriptor is the static description of one priority-ceiling
// resource.
type ResourceDescriptor struct {
	Name string
	// Ceiling is the maximum static priority of any task that statically
	// accesses this resource (computed by the config generator from the
	// task table in a full OSEK toolchain; supplied directly here).
	Ceiling uint8
}

// CounterDescriptor is the static description of one counter.
type CounterDescriptor struct {
	Name            string
	MaxAllowedValue TickType
	TicksPerBase    TickType
	MinCycle        TickType
}

// AlarmDescriptor is the static description of one alarm.
type AlarmDescriptor struct {
	Name    string
	Counter CounterID
	Action  AlarmAction
	// AutoStart, when non-nil, arms the alarm at StartOS for the listed
	// application modes using the given relative increment and cycle
	// (cycle 0 = one-shot), matching §4.I "initializes counters and
	// auto-started alarms".
	AutoStart           []AppMode
	AutoStartIncrement  TickType
	AutoStartCycle      TickType
}

// Config is the complete, immutable static object table the kernel
// consumes: the build-time output of the (out-of-scope) OIL-like
// generator. Build one with kernelcfg.Builder.
type Config struct {
	Tasks          []TaskDescriptor
	Resources      []ResourceDescriptor
	Counters       []CounterDescriptor
	Alarms         []AlarmDescriptor
	Modes          []string
	ExtendedStatus bool
	// MaxPriority bounds every declared task priority and every resource
	// ceiling; it is also the priority RES_SCHEDULER raises a caller to.
	MaxPriority uint8
}

// Validate checks the declarative invariants spec.md leaves to the
// (out-of-scope) build-time generator: dense ids, ceilings within bounds,
// counter bounds, and sane auto-start references. It never mutates cfg.
func (cfg Config) Validate() error {
	if len(cfg.Tasks) == 0 {
		return fmt.Errorf("kernel: config: at least one task is required")
	}
	if cfg.MaxPriority > maxSchedulerPriority {
		return fmt.Errorf("kernel: config: MaxPriority %d exceeds the scheduler's %d-level bitmap", cfg.MaxPriority, maxSchedulerPriority+1)
	}
	for id, t := range cfg.Tasks {
		if t.Priority > cfg.MaxPriority {
			return fmt.Errorf("kernel: config: task %d (%s): priority %d exceeds MaxPriority %d", id, t.Name, t.Priority, cfg.MaxPriority)
		}
		if t.Kind == Extended {
			if t.MaxActivations > 1 {
				return fmt.Errorf("kernel: config: task %d (%s): extended tasks may not have MaxActivations > 1", id, t.Name)
			}
		} else if t.Events != 0 {
			return fmt.Errorf("kernel: config: task %d (%s): basic tasks may not declare events", id, t.Name)
		}
		if t.MaxActivations == 0 {
			return fmt.Errorf("kernel: config: task %d (%s): MaxActivations must be >= 1", id, t.Name)
		}
		if t.Entry == nil {
			return fmt.Errorf("kernel: config: task %d (%s): Entry must not be nil", id, t.Name)
		}
		for _, r := range t.Resources {
			if int(r) < 0 || int(r) >= len(cfg.Resources) {
				return fmt.Errorf("kernel: config: task %d (%s): unknown resource id %d", id, t.Name, r)
			}
			if ceil := cfg.Resources[r].Ceiling; ceil < t.Priority {
				return fmt.Errorf("kernel: config: task %d (%s): resource %d ceiling %d is below the task's own priority %d", id, t.Name, r, ceil, t.Priority)
			}
		}
	}
	for id, r := range cfg.Resources {
		if r.Ceiling > cfg.MaxPriority {
			return fmt.Errorf("kernel: config: resource %d (%s): ceiling %d exceeds MaxPriority %d", id, r.Name, r.Ceiling, cfg.MaxPriority)
		}
	}
	for id, c := range cfg.Counters {
		if c.MaxAllowedValue == 0 {
			return fmt.Errorf("kernel: config: counter %d (%s): MaxAllowedValue must be >= 1", id, c.Name)
		}
		if c.TicksPerBase == 0 {
			return fmt.Errorf("kernel: config: counter %d (%s): TicksPerBase must be >= 1", id, c.Name)
		}
		if c.MinCycle == 0 || c.MinCycle > c.MaxAllowedValue {
			return fmt.Errorf("kernel: config: counter %d (%s): MinCycle must be in [1, MaxAllowedValue]", id, c.Name)
		}
	}
	for id, a := range cfg.Alarms {
		if int(a.Counter) < 0 || int(a.Counter) >= len(cfg.Counters) {
			return fmt.Errorf("kernel: config: alarm %d (%s): unknown counter id %d", id, a.Name, a.Counter)
		}
		switch a.Action.Kind {
		case ActionActivateTask:
			if int(a.Action.Task) < 0 || int(a.Action.Task) >= len(cfg.Tasks) {
				return fmt.Errorf("kernel: config: alarm %d (%s): unknown task id %d", id, a.Name, a.Action.Task)
			}
		case ActionSetEvent:
			if int(a.Action.Task) < 0 || int(a.Action.Task) >= len(cfg.Tasks) {
				return fmt.Errorf("kernel: config: alarm %d (%s): unknown task id %d", id, a.Name, a.Action.Task)
			}
			if cfg.Tasks[a.Action.Task].Kind != Extended {
				return fmt.Errorf("kernel: config: alarm %d (%s): SetEvent action targets basic task %d", id, a.Name, a.Action.Task)
			}
		case ActionCallback:
			if a.Action.Callback == nil {
				return fmt.Errorf("kernel: config: alarm %d (%s): ActionCallback with nil Callback", id, a.Name)
			}
		default:
			return fmt.Errorf("kernel: config: alarm %d (%s): unknown action kind %d", id, a.Name, a.Action.Kind)
		}
		if len(a.AutoStart) > 0 {
			counter := cfg.Counters[a.Counter]
			if a.AutoStartIncrement < 1 || a.AutoStartIncrement > counter.MaxAllowedValue {
				return fmt.Errorf("kernel: config: alarm %d (%s): AutoStartIncrement out of range", id, a.Name)
			}
			if a.AutoStartCycle != 0 && (a.AutoStartCycle < counter.MinCycle || a.AutoStartCycle > counter.MaxAllowedValue) {
				return fmt.Errorf("kernel: config: alarm %d (%s): AutoStartCycle out of range", id, a.Name)
			}
		}
	}
	return nil
}
