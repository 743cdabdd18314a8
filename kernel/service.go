package kernel

// reportError is the single funnel every service uses to return a
// non-E_OK status (spec.md §4.J / §7). It always records lastError for
// OSErrorGetServiceId-style introspection; in extended-status
// configurations it additionally invokes ErrorHook and logs the failure,
// matching "in extended-status configurations, the dispatcher records ...
// and calls ErrorHook(e)". Standard-status configurations skip both. The
// services run the same argument checks in either configuration; this
// function is the only place extendedStatus is consulted.
func (k *Kernel) reportError(service ServiceID, status StatusType, args ...any) StatusType {
	if status == E_OK {
		return status
	}
	k.lastError = OSError{Service: service, Status: status, Task: k.runningTask, Args: args}
	if k.extendedStatus {
		if k.hooks.ErrorHook != nil {
			k.hooks.ErrorHook(k, k.lastError)
		}
		k.logServiceError(k.lastError)
	}
	return status
}

// LastError returns the most recently reported OSError, the Go analogue
// of OSErrorGetServiceId() and its companion parameter accessors.
func (k *Kernel) LastError() OSError {
	return k.lastError
}

// requireTaskContext rejects a service call made from ISR context,
// reporting E_OS_CALLEVEL the way spec.md §7 requires for TerminateTask,
// ChainTask, Schedule, and WaitEvent.
func (k *Kernel) requireTaskContext(service ServiceID) bool {
	if k.execContext != ContextTask {
		k.reportError(service, E_OS_CALLEVEL)
		return false
	}
	return true
}
