package kernel

// setEventLocked performs SetEvent's bookkeeping assuming the caller
// already holds the critical section; shared between the public SetEvent
// service and alarm.go's fireAlarm.
func (k *Kernel) setEventLocked(t TaskID, mask EventMaskType) StatusType {
	if !k.validTask(t) {
		return E_OS_ID
	}
	if k.cfg.Tasks[t].Kind != Extended {
		return E_OS_ACCESS
	}
	if k.tasks[t].state == Suspended {
		return E_OS_STATE
	}
	td := &k.tasks[t]
	td.currentEventMask |= mask
	if td.state == Waiting && td.currentEventMask&td.waitMask != 0 {
		td.state = Ready
		td.waitMask = 0
		k.sched.Insert(td.currentPriority, t)
	}
	return E_OK
}

// SetEvent sets the bits in mask on extended task t, waking it if it is
// WAITING on any of them, per spec.md §4.F. Returns E_OS_STATE if t is
// SUSPENDED (never activated, or already terminated).
func (k *Kernel) SetEvent(t TaskID, mask EventMaskType) StatusType {
	k.EnterCritical()
	defer k.ExitCritical()

	status := k.setEventLocked(t, mask)
	if status != E_OK {
		return k.reportError(ServiceSetEvent, status)
	}
	k.requestDispatch()
	return E_OK
}

// ClearEvent clears the bits in mask on the calling (necessarily
// extended) task's own event mask. Only callable from task context.
func (k *Kernel) ClearEvent(mask EventMaskType) StatusType {
	k.EnterCritical()
	defer k.ExitCritical()

	if !k.requireTaskContext(ServiceClearEvent) {
		return E_OS_CALLEVEL
	}
	t := k.runningTask
	if k.cfg.Tasks[t].Kind != Extended {
		return k.reportError(ServiceClearEvent, E_OS_ACCESS)
	}
	k.tasks[t].currentEventMask &^= mask
	return E_OK
}

// GetEvent reports extended task t's current event mask, whichever task
// or ISR calls it. Returns E_OS_STATE if t is SUSPENDED, per spec.md
// §4.F.
func (k *Kernel) GetEvent(t TaskID, out *EventMaskType) StatusType {
	k.EnterCritical()
	defer k.ExitCritical()

	if !k.validTask(t) {
		return k.reportError(ServiceGetEvent, E_OS_ID)
	}
	if k.cfg.Tasks[t].Kind != Extended {
		return k.reportError(ServiceGetEvent, E_OS_ACCESS)
	}
	if k.tasks[t].state == Suspended {
		return k.reportError(ServiceGetEvent, E_OS_STATE)
	}
	*out = k.tasks[t].currentEventMask
	return E_OK
}

// WaitEvent blocks the calling extended task until at least one bit in
// mask is set, per spec.md §4.F. It must not be called holding any
// resource (E_OS_RESOURCE) or from ISR context (E_OS_CALLEVEL). If any
// requested bit is already set, it returns immediately without blocking.
func (k *Kernel) WaitEvent(mask EventMaskType) StatusType {
	k.EnterCritical()

	if !k.requireTaskContext(ServiceWaitEvent) {
		k.ExitCritical()
		return E_OS_CALLEVEL
	}
	t := k.runningTask
	if k.cfg.Tasks[t].Kind != Extended {
		status := k.reportError(ServiceWaitEvent, E_OS_ACCESS)
		k.ExitCritical()
		return status
	}
	if k.tasks[t].holders.Len() > 0 {
		status := k.reportError(ServiceWaitEvent, E_OS_RESOURCE)
		k.ExitCritical()
		return status
	}

	if k.tasks[t].currentEventMask&mask != 0 {
		k.ExitCritical()
		return E_OK
	}

	k.tasks[t].state = Waiting
	k.tasks[t].waitMask = mask
	ctx := k.tasks[t].ctx
	k.yieldRunning()
	k.ExitCritical()

	// Park this goroutine: invokeExtended is blocked on <-ctx.yielded on the
	// other end and is woken by the send below; its next ctx.resume send
	// (when this task is dispatched again) lets WaitEvent return.
	ctx.yielded <- struct{}{}
	<-ctx.resume

	return E_OK
}
