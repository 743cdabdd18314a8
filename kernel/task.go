package kernel

// activateTaskLocked performs ActivateTask's bookkeeping assuming the
// caller already holds the critical section and has validated nothing
// beyond the id. It is shared between the public ActivateTask service and
// alarm.go's fireAlarm, which runs inside IncrementCounter's own critical
// section.
func (k *Kernel) activateTaskLocked(t TaskID) StatusType {
	if !k.validTask(t) {
		return E_OS_ID
	}
	desc := k.cfg.Tasks[t]
	td := &k.tasks[t]
	if td.pendingActivations >= desc.MaxActivations {
		return E_OS_LIMIT
	}
	td.pendingActivations++
	if td.state == Suspended {
		td.state = Ready
		td.currentPriority = desc.Priority
		td.currentEventMask = 0
		td.waitMask = 0
		k.sched.Insert(desc.Priority, t)
	}
	return E_OK
}

// ActivateTask transitions t from SUSPENDED to READY, or queues another
// activation if it is already active (up to TaskDescriptor.MaxActivations),
// per spec.md §4.D.
func (k *Kernel) ActivateTask(t TaskID) StatusType {
	k.EnterCritical()
	defer k.ExitCritical()

	status := k.activateTaskLocked(t)
	if status != E_OK {
		return k.reportError(ServiceActivateTask, status)
	}
	k.requestDispatch()
	return E_OK
}

// terminateRunningTaskBookkeeping frees the calling task's current
// activation slot: re-queues it if another activation is already pending
// (the back-to-back re-entry a periodic basic task relies on), otherwise
// leaves it SUSPENDED. It does not itself trigger a dispatch decision —
// callers do that once, after any further mutation (ChainTask's
// subsequent ActivateTask) is also applied.
func (k *Kernel) terminateRunningTaskBookkeeping() {
	t := k.runningTask
	td := &k.tasks[t]
	desc := k.cfg.Tasks[t]
	td.currentPriority = desc.Priority
	td.pendingActivations--
	if td.pendingActivations > 0 {
		td.state = Ready
		k.sched.Insert(desc.Priority, t)
	} else {
		td.state = Suspended
	}
}

// terminateRunningTask is the combined bookkeeping + dispatch used both by
// an explicit TerminateTask call and by a task body that simply returns
// (dispatch.go's invokeBasic / runExtendedEntry).
func (k *Kernel) terminateRunningTask() {
	k.terminateRunningTaskBookkeeping()
	k.yieldRunning()
}

// TerminateTask ends the calling task's current activation. It never
// returns to its caller on success — the Go analogue is panicking with
// terminateSignal, caught by dispatch.go's task-entry wrappers.
func (k *Kernel) TerminateTask() StatusType {
	k.EnterCritical()
	defer k.ExitCritical()

	if !k.requireTaskContext(ServiceTerminateTask) {
		return E_OS_CALLEVEL
	}
	t := k.runningTask
	if k.tasks[t].holders.Len() > 0 {
		return k.reportError(ServiceTerminateTask, E_OS_RESOURCE)
	}
	k.terminateRunningTask()
	panic(terminateSignal{})
}

// ChainTask atomically terminates the calling task and activates next,
// skipping the intermediate SUSPENDED state a separate TerminateTask +
// ActivateTask pair would pass through. Chaining to itself — the common
// "reactivate every cycle" idiom — always succeeds, since this instance's
// activation slot is freed before the target's limit is checked; the
// limit can only be hit chaining to a *different* task already at its own
// ceiling.
func (k *Kernel) ChainTask(next TaskID) StatusType {
	k.EnterCritical()
	defer k.ExitCritical()

	if !k.requireTaskContext(ServiceChainTask) {
		return E_OS_CALLEVEL
	}
	if !k.validTask(next) {
		return k.reportError(ServiceChainTask, E_OS_ID)
	}
	t := k.runningTask
	if k.tasks[t].holders.Len() > 0 {
		return k.reportError(ServiceChainTask, E_OS_RESOURCE)
	}
	if next != t && k.tasks[next].pendingActivations >= k.cfg.Tasks[next].MaxActivations {
		return k.reportError(ServiceChainTask, E_OS_LIMIT)
	}

	k.terminateRunningTaskBookkeeping()
	if status := k.activateTaskLocked(next); status != E_OK {
		k.reportError(ServiceChainTask, status)
	}
	k.yieldRunning()
	panic(terminateSignal{})
}

// Schedule is a voluntary dispatch point for a NonPreemptable task, which
// holds the implicit scheduler resource for its whole run (see
// resource.go's getResourceScheduler): it briefly restores the task's
// static priority, lets a now-unblocked higher-priority task run, then
// re-raises the ceiling before returning. Preemptable tasks never hold
// that resource, and there is no other internal resource a task can hold;
// for them Schedule returns E_OK with no effect beyond the usual dispatch
// check.
func (k *Kernel) Schedule() StatusType {
	k.EnterCritical()
	defer k.ExitCritical()

	if !k.requireTaskContext(ServiceSchedule) {
		return E_OS_CALLEVEL
	}
	t := k.runningTask
	if k.schedulerResourceHolder == t {
		saved := k.tasks[t].currentPriority
		k.tasks[t].currentPriority = k.cfg.Tasks[t].Priority
		k.requestDispatch()
		k.tasks[t].currentPriority = saved
		return E_OK
	}
	k.requestDispatch()
	return E_OK
}

// GetTaskID reports the identity of the calling task, or InvalidTaskID
// from a context with no current task.
func (k *Kernel) GetTaskID(out *TaskID) StatusType {
	*out = k.runningTask
	return E_OK
}

// GetTaskState reports t's current scheduling state.
func (k *Kernel) GetTaskState(t TaskID, out *TaskState) StatusType {
	k.EnterCritical()
	defer k.ExitCritical()

	if !k.validTask(t) {
		return k.reportError(ServiceGetTaskState, E_OS_ID)
	}
	*out = k.tasks[t].state
	return E_OK
}
