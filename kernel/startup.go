package kernel

// StartOS transitions the kernel from the pre-boot configuration state
// into mode: it runs InterruptInit, StartupHook, activates every task and
// arms every alarm whose AutoStart list includes mode, then performs the
// initial dispatch and hands control to the platform's idle loop. Like
// the original's StartOS, it never returns — IdleLoop is documented not
// to, and every subsequent tick/ISR re-enters the kernel through
// TickHandler/EnterISR rather than through a second call to StartOS.
func (k *Kernel) StartOS(mode AppMode) {
	k.appMode = mode
	k.appModeStarted = true

	k.platform.InterruptInit()

	if k.hooks.StartupHook != nil {
		k.hooks.StartupHook(k)
	}

	k.EnterCritical()
	for id, t := range k.cfg.Tasks {
		for _, m := range t.AutoStart {
			if m == mode {
				k.activateTaskLocked(TaskID(id))
				break
			}
		}
	}
	for id, a := range k.cfg.Alarms {
		for _, m := range a.AutoStart {
			if m == mode {
				now := k.counters[a.Counter].value
				max := k.cfg.Counters[a.Counter].MaxAllowedValue + 1
				k.armAlarm(AlarmID(id), (now+a.AutoStartIncrement)%max, a.AutoStartCycle)
				break
			}
		}
	}
	k.ExitCritical()

	k.dispatch(InvalidTaskID)

	k.platform.IdleLoop()
}

// ShutdownOS runs ShutdownHook with the given reason and then hands
// control to the platform's idle loop permanently — there is no
// orderly-shutdown state beyond "stop scheduling tasks", matching the
// original's halt-on-shutdown behaviour on a statically-configured
// single-application system. Like StartOS, it never returns.
func (k *Kernel) ShutdownOS(status StatusType) {
	if k.hooks.ShutdownHook != nil {
		k.hooks.ShutdownHook(k, status)
	}
	k.logHookEvent("shutdown", status.String())
	k.platform.IdleLoop()
}

// GetActiveApplicationMode reports the mode StartOS was called with.
func (k *Kernel) GetActiveApplicationMode(out *AppMode) StatusType {
	*out = k.appMode
	return E_OK
}
