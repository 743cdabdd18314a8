package kernel

// GetResource raises the calling task's current priority to r's static
// ceiling and pushes r onto the task's LIFO holder stack, per spec.md
// §4.E. Nesting is required to unwind in strict LIFO order; this function
// only enforces that ReleaseResource later — GetResource itself just
// pushes.
func (k *Kernel) GetResource(r ResourceID) StatusType {
	k.EnterCritical()
	defer k.ExitCritical()

	if !k.requireTaskContext(ServiceGetResource) {
		return E_OS_CALLEVEL
	}
	if !k.validResource(r) {
		return k.reportError(ServiceGetResource, E_OS_ID)
	}
	t := k.runningTask
	ceiling := k.cfg.Resources[r].Ceiling
	if ceiling < k.tasks[t].currentPriority {
		return k.reportError(ServiceGetResource, E_OS_ACCESS)
	}
	if k.resources[r].locked {
		return k.reportError(ServiceGetResource, E_OS_RESOURCE)
	}

	k.resources[r].locked = true
	k.resources[r].holder = t
	k.tasks[t].holders.PushBack(resourceHold{resource: r, savedPriority: k.tasks[t].currentPriority})
	k.tasks[t].currentPriority = ceiling
	return E_OK
}

// ReleaseResource pops r from the calling task's holder stack and
// restores the priority in effect before the matching GetResource,
// rejecting anything but strict LIFO order (spec.md §4.E "must be
// released in the reverse order they were acquired").
func (k *Kernel) ReleaseResource(r ResourceID) StatusType {
	k.EnterCritical()
	defer k.ExitCritical()

	if !k.requireTaskContext(ServiceReleaseResource) {
		return E_OS_CALLEVEL
	}
	if !k.validResource(r) {
		return k.reportError(ServiceReleaseResource, E_OS_ID)
	}
	t := k.runningTask
	if !k.resources[r].locked || k.resources[r].holder != t {
		return k.reportError(ServiceReleaseResource, E_OS_NOFUNC)
	}
	if k.tasks[t].holders.Len() == 0 || k.tasks[t].holders.Back().resource != r {
		return k.reportError(ServiceReleaseResource, E_OS_NOFUNC)
	}

	hold := k.tasks[t].holders.PopBack()
	k.resources[r].locked = false
	k.resources[r].holder = InvalidTaskID
	k.tasks[t].currentPriority = hold.savedPriority
	k.requestDispatch()
	return E_OK
}

// getResourceScheduler and releaseResourceScheduler realize the implicit
// RES_SCHEDULER boost a NonPreemptable task carries for the whole of its
// run (dispatch.go's runOneInstance), and which Schedule() temporarily
// suspends/restores. Neither is part of the public service surface —
// there is no ResourceID for the implicit resource to pass to
// GetResource.
func (k *Kernel) getResourceScheduler(t TaskID) {
	k.schedulerResourceHolder = t
	k.schedulerResourceSaved = k.tasks[t].currentPriority
	k.tasks[t].currentPriority = k.cfg.MaxPriority
}

func (k *Kernel) releaseResourceScheduler() {
	t := k.schedulerResourceHolder
	if t == InvalidTaskID {
		return
	}
	k.tasks[t].currentPriority = k.schedulerResourceSaved
	k.schedulerResourceHolder = InvalidTaskID
}
