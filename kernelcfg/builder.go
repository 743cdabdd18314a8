// Package kernelcfg provides a fluent builder for kernel.Config, standing
// in for the (deliberately out-of-scope) OIL-like static configuration
// generator a real OSEK toolchain would run at build time. It follows the
// teacher's functional-option convention (eventloop.LoopOption) applied
// to a builder object rather than a constructor, since a Config has many
// independent collections (tasks, resources, counters, alarms) rather
// than one flat option set.
package kernelcfg

import "github.com/sdvos/sdvos-sub001/kernel"

// Builder accumulates a kernel.Config across calls to Task, Resource,
// Counter, Alarm, and Mode, then produces an immutable kernel.Config with
// Build. It holds no defaults beyond MaxPriority and ExtendedStatus,
// which New and WithExtendedStatus set explicitly.
type Builder struct {
	cfg kernel.Config
}

// New starts a Builder with the given priority ceiling (inclusive) — the
// highest priority any task, resource ceiling, or RES_SCHEDULER boost may
// use.
func New(maxPriority uint8) *Builder {
	return &Builder{cfg: kernel.Config{MaxPriority: maxPriority}}
}

// WithExtendedStatus toggles extended-status error reporting (ErrorHook
// invocation and error logging) for the resulting Config. Argument
// validation runs the same way whether it is set or not.
func (b *Builder) WithExtendedStatus(v bool) *Builder {
	b.cfg.ExtendedStatus = v
	return b
}

// Mode declares an application mode name, for documentation purposes
// only — AutoStart fields reference modes by kernel.AppMode index, not by
// name; Mode just keeps the two in sync for callers that want names.
func (b *Builder) Mode(name string) *Builder {
	b.cfg.Modes = append(b.cfg.Modes, name)
	return b
}

// Task appends a task descriptor and returns its assigned TaskID.
func (b *Builder) Task(d kernel.TaskDescriptor) kernel.TaskID {
	id := kernel.TaskID(len(b.cfg.Tasks))
	b.cfg.Tasks = append(b.cfg.Tasks, d)
	return id
}

// Resource appends a resource descriptor and returns its assigned
// ResourceID.
func (b *Builder) Resource(d kernel.ResourceDescriptor) kernel.ResourceID {
	id := kernel.ResourceID(len(b.cfg.Resources))
	b.cfg.Resources = append(b.cfg.Resources, d)
	return id
}

// Counter appends a counter descriptor and returns its assigned
// CounterID.
func (b *Builder) Counter(d kernel.CounterDescriptor) kernel.CounterID {
	id := kernel.CounterID(len(b.cfg.Counters))
	b.cfg.Counters = append(b.cfg.Counters, d)
	return id
}

// Alarm appends an alarm descriptor and returns its assigned AlarmID.
func (b *Builder) Alarm(d kernel.AlarmDescriptor) kernel.AlarmID {
	id := kernel.AlarmID(len(b.cfg.Alarms))
	b.cfg.Alarms = append(b.cfg.Alarms, d)
	return id
}

// Build validates and returns the accumulated Config. Callers normally
// pass the result straight to kernel.New, which validates again — Build
// validates here too so configuration errors surface at the build-time
// call site rather than only at kernel construction.
func (b *Builder) Build() (kernel.Config, error) {
	if err := b.cfg.Validate(); err != nil {
		return kernel.Config{}, err
	}
	return b.cfg, nil
}
