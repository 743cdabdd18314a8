package kernel

// This file is the reference realization of spec.md §4.B's abstract
// Dispatch(prev, next) / ContextSwitch primitive, for the hosted Go
// environment. A real target replaces it entirely with architecture-
// specific assembly trampolines that save/restore a stack pointer; Go
// exposes no portable way to suspend and resume an arbitrary call stack,
// so this file uses the one mechanism Go does give us for that: a
// goroutine blocked on a channel receive IS an opaque saved context,
// exactly the "opaque per-task saved-SP word" the design notes call for.
//
// Basic tasks never block (spec.md glossary), so they need no such
// mechanism at all — they run inline, as an ordinary (possibly recursive)
// Go call on whichever goroutine is driving the kernel. Only extended
// tasks, which may suspend mid-body in WaitEvent, get a dedicated
// goroutine, parked on an unbuffered channel between scheduling
// decisions. Because every hand-off is a synchronous, unbuffered channel
// rendezvous, at most one of {driver goroutine, every extended task's
// goroutine} is ever actually running kernel or task code at a time —
// the single-CPU invariant holds even though multiple OS threads exist.
//
// ISRs (tick.go) are delivered the same way Go's own os/signal package
// delivers a real signal: as a value some goroutine receives and acts on
// at its convenience, never as a true asynchronous interruption of
// whatever code happens to be running. A pending tick is therefore
// applied at the next safe point (a service call's dispatch point, or
// idle), not instruction-accurately mid-task-body — a direct consequence
// of Go's scheduling model, not a shortcut particular to this kernel (see
// DESIGN.md).

// extendedContext is the opaque per-task saved-execution-context for an
// extended task: a real goroutine, parked between dispatch decisions.
type extendedContext struct {
	resume  chan struct{} // driver -> task: "you may continue"
	yielded chan struct{} // task -> driver: "I've stopped running"
}

type terminateSignal struct{}

// dispatch runs the scheduling loop described by spec.md §4.C: while the
// ready queue's head strictly outranks resumePrev's current priority (or,
// if resumePrev is InvalidTaskID, while anything at all is ready), pop and
// run it to its next suspension point. It returns once nothing left ready
// can preempt resumePrev, having restored k.runningTask to resumePrev —
// letting the Go call stack unwind back into resumePrev's own code
// exactly where it requested the dispatch.
func (k *Kernel) dispatch(resumePrev TaskID) {
	for {
		head, prio, ok := k.sched.PeekHighest()
		if !ok {
			break
		}
		if resumePrev != InvalidTaskID && prio <= k.tasks[resumePrev].currentPriority {
			break
		}
		k.sched.RemoveHead(prio)
		k.runOneInstance(head)
	}
	k.runningTask = resumePrev
}

// requestDispatch is called by every service that may have changed
// Running ∪ Ready while the caller remains (logically) the running task:
// ActivateTask, SetEvent, ReleaseResource, Schedule. From ISR context it
// only raises the flag for tick.go's ISR-exit trampoline to act on; from
// task context it recurses into dispatch immediately, per spec.md §4.C
// "(i) any service call ... returns through a dispatch point".
func (k *Kernel) requestDispatch() {
	k.dispatchPending = true
	if k.execContext == ContextTask {
		k.dispatchPending = false
		k.dispatch(k.runningTask)
	}
}

// yieldRunning is called by TerminateTask, ChainTask, and WaitEvent's
// blocking path: the caller is leaving RUNNING for good this instance (or
// indefinitely, for WaitEvent), so whoever is now highest in the ready
// queue becomes current unconditionally — there is no "resumePrev" to
// protect. It does not itself unwind the caller's stack; TerminateTask and
// ChainTask do that via panic(terminateSignal{}), and WaitEvent does it by
// parking on its own extendedContext.
func (k *Kernel) yieldRunning() {
	k.dispatchPending = false
	k.dispatch(InvalidTaskID)
}

// runOneInstance drives task t from "selected to run" to its next
// suspension point (termination or, for an extended task, WaitEvent).
// Nested preemptions (via requestDispatch recursing into dispatch from
// inside t's own service calls) are already resolved by the time this
// function returns — see dispatch's doc comment.
func (k *Kernel) runOneInstance(t TaskID) {
	k.runningTask = t
	k.tasks[t].state = Running
	if k.hooks.PreTaskHook != nil {
		k.hooks.PreTaskHook(k)
	}

	desc := k.cfg.Tasks[t]
	if desc.Schedulability == NonPreemptable {
		k.getResourceScheduler(t)
	}

	if desc.Kind == Basic {
		k.invokeBasic(t, desc)
	} else {
		k.invokeExtended(t, desc)
	}

	if k.schedulerResourceHolder == t {
		k.releaseResourceScheduler()
	}

	if k.hooks.PostTaskHook != nil {
		k.hooks.PostTaskHook(k)
	}
}

// invokeBasic runs (or re-enters, for chained self-activation) a basic
// task's entry function inline, catching the TerminateTask/ChainTask
// unwind sentinel the same way net/http catches its "abort handler" panic
// — the idiomatic Go stand-in for a service call that must never return
// control to its caller's remaining code.
func (k *Kernel) invokeBasic(t TaskID, desc TaskDescriptor) {
	func() {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(terminateSignal); ok {
					return
				}
				k.tasks[t].state = Suspended
				k.Panic("unhandled panic in basic task body")
			}
		}()
		desc.Entry(k)
		// Falling off the end of a basic task's body is an implicit
		// TerminateTask (common OSEK hosted-port behaviour).
		k.terminateRunningTask()
	}()
}

// invokeExtended starts (first activation) or resumes (after WaitEvent)
// an extended task's dedicated goroutine and blocks until it yields
// control back, i.e. until it parks in WaitEvent or terminates.
func (k *Kernel) invokeExtended(t TaskID, desc TaskDescriptor) {
	ctx := k.tasks[t].ctx
	if ctx == nil {
		ctx = &extendedContext{resume: make(chan struct{}), yielded: make(chan struct{})}
		k.tasks[t].ctx = ctx
		go k.runExtendedEntry(t, desc, ctx)
	} else {
		ctx.resume <- struct{}{}
	}
	<-ctx.yielded
}

// runExtendedEntry is the body of an extended task's dedicated goroutine.
func (k *Kernel) runExtendedEntry(t TaskID, desc TaskDescriptor, ctx *extendedContext) {
	func() {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(terminateSignal); ok {
					return
				}
				k.tasks[t].state = Suspended
				k.tasks[t].ctx = nil
				k.Panic("unhandled panic in extended task body")
				return
			}
		}()
		desc.Entry(k)
		k.terminateRunningTask()
	}()
	k.tasks[t].ctx = nil
	ctx.yielded <- struct{}{}
}
