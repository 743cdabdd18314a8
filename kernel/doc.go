// Package kernel implements the static, priority-preemptive real-time
// scheduling core of SDVOS: the OSEK/VDX OS and AUTOSAR OS service subset
// described by spec.md. It provides tasks, ISRs, priority-ceiling
// resources, event flags, and a counter/alarm subsystem driven by a
// periodic tick, on top of a single abstract [Platform] collaborator.
//
// # Scope
//
// Everything in this package is single-threaded by protocol: at most one
// task is ever logically running, and all bookkeeping happens with
// preemption disabled (see [Kernel.EnterCritical]). The package never
// spawns goroutines of its own accord except the one per currently-active
// extended task, used purely as the reference realization of the
// "opaque saved context" design note in spec.md's DESIGN NOTES section —
// a real target replaces [Platform] with architecture-specific
// context-save/restore trampolines and never needs goroutines at all.
//
// # Static objects
//
// Tasks, resources, counters, and alarms are declared once, via
// [github.com/sdvos/sdvos-sub001/kernelcfg], and consumed here as an
// immutable [Config]. The kernel holds only the dynamic half of each
// object (state, priority, pending counts, ...) in parallel arrays indexed
// by object id, per the arena-plus-index design note.
//
// # Error model
//
// Every exported service returns a [StatusType], matching the OSEK calling
// convention. [E_OK] is success; all other values are documented per
// service. Kernel-internal invariant violations call [Kernel.Panic]
// instead of returning a status.
package kernel
