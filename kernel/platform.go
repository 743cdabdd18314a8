package kernel

// Platform is the abstract collaborator the core never assumes anything
// about beyond this interface (spec.md §6 "Platform collaborator
// interfaces"). Board bring-up, device drivers, and per-architecture
// context-save/restore trampolines are deliberately out of the core's
// scope; simhost provides the hosted realization. The kernel package's own
// tests use a lighter in-package stand-in instead.
type Platform interface {
	// EnterCritical disables interrupts at the hardware level. Called
	// when the kernel's own nesting depth transitions 0 -> 1 (see
	// Kernel.EnterCritical), and directly, regardless of depth, by
	// Kernel.DisableAllInterrupts.
	EnterCritical()
	// ExitCritical re-enables interrupts. Called when the kernel's own
	// nesting depth transitions 1 -> 0, and directly by
	// Kernel.EnableAllInterrupts.
	ExitCritical()
	// IdleLoop runs forever when no task is runnable. Never returns; real
	// targets put the MCU to sleep here (see simhost for the hosted
	// stand-in), matching src/arch/armv7m/idle.c.
	IdleLoop()
	// Panic reports a fatal kernel-internal invariant violation and halts
	// the system, matching src/arch/linux/panic.c. Never returns.
	Panic(reason string)
	// InterruptInit performs one-time interrupt controller / timer setup
	// before StartOS enables interrupts. A no-op on platforms where
	// nothing is needed (e.g. the original's Linux arch).
	InterruptInit()
}

// Panic routes a fatal, kernel-internal invariant violation to the
// platform. It never returns normally (platform.Panic must not return);
// in the rare case it does, Panic panics with a PanicError as a backstop
// so the Go runtime still halts execution here.
func (k *Kernel) Panic(reason string) {
	if k.logger != nil {
		k.logHookEvent("panic", reason)
	}
	k.platform.Panic(reason)
	panic(&PanicError{Reason: reason})
}
