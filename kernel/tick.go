package kernel

// EnterISR marks the start of a Category-2 ISR body: one that is allowed
// to call a restricted subset of kernel services (ActivateTask, SetEvent,
// the counter/alarm services, the interrupt-control pair). Category-1
// ISRs — which never call into the kernel at all — have no reason to
// call this. Nesting is supported; only the outermost ExitISR performs
// the dispatch check, per spec.md §4.H.
//
// Like the rest of this file, EnterISR/ExitISR are not safe to call from
// a goroutine other than whichever one is currently driving the kernel
// (see dispatch.go's doc comment) — ISR delivery here is cooperative, the
// same way Go's os/signal delivers a real signal as a channel value to
// ordinary goroutine code rather than as a true asynchronous interrupt.
func (k *Kernel) EnterISR() {
	k.EnterCritical()
	defer k.ExitCritical()
	k.isrDepth++
	k.execContext = ContextISR
}

// ExitISR ends a Category-2 ISR body. At the outermost nesting level it
// restores task context and, if any service call inside the ISR raised
// dispatchPending, performs the scheduling decision that real hardware
// would have deferred until the interrupt return.
func (k *Kernel) ExitISR() {
	k.EnterCritical()
	outermost := k.isrDepth == 1
	k.isrDepth--
	if outermost {
		k.execContext = ContextTask
	}
	k.ExitCritical()

	if outermost && k.dispatchPending {
		k.dispatchPending = false
		k.dispatch(k.runningTask)
	}
}

// TickHandler advances counter c by one tick and is the entry point a
// platform's timer interrupt (simhost's SIGALRM handler, or a hardware
// timer ISR on a real target) calls, matching
// src/arch/linux/interrupt.c's ISR(SIGALRM) -> TickHandler() shape. It
// brackets the counter increment in EnterISR/ExitISR so alarm actions
// fired by the tick go through the same dispatch-deferred-to-ISR-exit
// path as any other Category-2 ISR service call.
func (k *Kernel) TickHandler(c CounterID) {
	k.EnterISR()
	k.IncrementCounter(c)
	k.ExitISR()
}

// SuspendAllInterrupts and ResumeAllInterrupts bracket a region where
// both Category-1 and Category-2 interrupt sources must stay masked —
// the broadest of the three interrupt-control pairs spec.md §4.H and §6
// name. On this hosted platform this is identical to EnterCritical, since
// the platform's EnterCritical/ExitCritical already model masking
// everything; real targets distinguish these by interrupt priority level.
func (k *Kernel) SuspendAllInterrupts() { k.EnterCritical() }
func (k *Kernel) ResumeAllInterrupts()  { k.ExitCritical() }

// SuspendOSInterrupts and ResumeOSInterrupts bracket a region where only
// OS-managed (Category-2) interrupt sources are masked, leaving
// Category-1 sources (which never call the kernel) free to fire.
func (k *Kernel) SuspendOSInterrupts() { k.EnterCritical() }
func (k *Kernel) ResumeOSInterrupts()  { k.ExitCritical() }

// DisableAllInterrupts and EnableAllInterrupts are the unnested, raw
// hardware-level mask/unmask pair spec.md §6 separates from the nested
// Suspend/Resume pairs: calling EnableAllInterrupts always unmasks,
// regardless of how many DisableAllInterrupts preceded it. Application
// code is expected to use them only as a tightly-scoped, non-nested
// bracket — the kernel's own bookkeeping never calls these, only
// EnterCritical/ExitCritical.
func (k *Kernel) DisableAllInterrupts() { k.platform.EnterCritical() }
func (k *Kernel) EnableAllInterrupts()  { k.platform.ExitCritical() }
