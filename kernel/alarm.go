package kernel

import "container/heap"

// counterAlarmHeap is a container/heap min-heap of armed alarms belonging
// to a single counter, ordered by expiry, grounded on the teacher's own
// timerHeap in eventloop/loop.go: same shape (index-tracking
// heap.Interface over an ordered key), adapted from nanosecond deadlines
// to tick counts. Alarms on different counters are never compared
// against one another — their expiry values live in unrelated spaces —
// so the kernel keeps one heap per counter rather than a single global
// one.
//
// Less breaks ties on equal expiry by AlarmID, not merely by Push order:
// container/heap's Remove and Fix reshuffle the backing slice on every
// call (Swap(i, len-1) followed by down/up), so insertion order alone is
// not preserved across the Remove a firing alarm triggers. Ordering by
// AlarmID — which kernelcfg.Builder assigns in declaration order — gives
// a stable, reproducible tie-break that satisfies spec.md §4.G's
// "multiple alarms with the same expiry fire in declaration order"
// regardless of how many other alarms on the same counter have already
// fired or been removed.
type counterAlarmHeap struct {
	k     *Kernel
	order []AlarmID
}

func (h *counterAlarmHeap) Len() int { return len(h.order) }

func (h *counterAlarmHeap) Less(i, j int) bool {
	ai, aj := h.order[i], h.order[j]
	ei, ej := h.k.alarms[ai].expiry, h.k.alarms[aj].expiry
	if ei != ej {
		return ei < ej
	}
	return ai < aj
}

func (h *counterAlarmHeap) Swap(i, j int) {
	h.order[i], h.order[j] = h.order[j], h.order[i]
	h.k.alarms[h.order[i]].heapIx = i
	h.k.alarms[h.order[j]].heapIx = j
}

func (h *counterAlarmHeap) Push(x any) {
	a := x.(AlarmID)
	h.k.alarms[a].heapIx = len(h.order)
	h.order = append(h.order, a)
}

func (h *counterAlarmHeap) Pop() any {
	n := len(h.order)
	a := h.order[n-1]
	h.order = h.order[:n-1]
	h.k.alarms[a].heapIx = -1
	return a
}

func (k *Kernel) armAlarm(a AlarmID, expiry, cycle TickType) {
	h := k.alarmHeaps[k.cfg.Alarms[a].Counter]
	k.alarms[a].armed = true
	k.alarms[a].expiry = expiry
	k.alarms[a].cycle = cycle
	if k.alarms[a].heapIx < 0 {
		heap.Push(h, a)
	} else {
		heap.Fix(h, k.alarms[a].heapIx)
	}
}

func (k *Kernel) disarmAlarm(a AlarmID) {
	h := k.alarmHeaps[k.cfg.Alarms[a].Counter]
	if k.alarms[a].heapIx >= 0 {
		heap.Remove(h, k.alarms[a].heapIx)
	}
	k.alarms[a].armed = false
}

// SetRelAlarm arms alarm a to first expire increment ticks from the
// current value of its counter, per spec.md §4.G. cycle == 0 requests a
// one-shot alarm; a non-zero cycle re-arms it every cycle ticks after it
// fires.
func (k *Kernel) SetRelAlarm(a AlarmID, increment, cycle TickType) StatusType {
	k.EnterCritical()
	defer k.ExitCritical()

	if !k.validAlarm(a) {
		return k.reportError(ServiceSetRelAlarm, E_OS_ID)
	}
	desc := k.cfg.Alarms[a]
	if increment == 0 || increment > k.cfg.Counters[desc.Counter].MaxAllowedValue {
		return k.reportError(ServiceSetRelAlarm, E_OS_VALUE)
	}
	if cycle != 0 && (cycle < k.cfg.Counters[desc.Counter].MinCycle || cycle > k.cfg.Counters[desc.Counter].MaxAllowedValue) {
		return k.reportError(ServiceSetRelAlarm, E_OS_VALUE)
	}
	if k.alarms[a].armed {
		return k.reportError(ServiceSetRelAlarm, E_OS_STATE)
	}

	now := k.counters[desc.Counter].value
	k.armAlarm(a, (now+increment)%(k.cfg.Counters[desc.Counter].MaxAllowedValue+1), cycle)
	return E_OK
}

// SetAbsAlarm arms alarm a to expire when its counter reaches exactly
// start (wrapping semantics per the counter's MaxAllowedValue).
func (k *Kernel) SetAbsAlarm(a AlarmID, start, cycle TickType) StatusType {
	k.EnterCritical()
	defer k.ExitCritical()

	if !k.validAlarm(a) {
		return k.reportError(ServiceSetAbsAlarm, E_OS_ID)
	}
	desc := k.cfg.Alarms[a]
	if start > k.cfg.Counters[desc.Counter].MaxAllowedValue {
		return k.reportError(ServiceSetAbsAlarm, E_OS_VALUE)
	}
	if cycle != 0 && (cycle < k.cfg.Counters[desc.Counter].MinCycle || cycle > k.cfg.Counters[desc.Counter].MaxAllowedValue) {
		return k.reportError(ServiceSetAbsAlarm, E_OS_VALUE)
	}
	if k.alarms[a].armed {
		return k.reportError(ServiceSetAbsAlarm, E_OS_STATE)
	}

	k.armAlarm(a, start, cycle)
	return E_OK
}

// CancelAlarm disarms a, dropping any cyclic re-arm.
func (k *Kernel) CancelAlarm(a AlarmID) StatusType {
	k.EnterCritical()
	defer k.ExitCritical()

	if !k.validAlarm(a) {
		return k.reportError(ServiceCancelAlarm, E_OS_ID)
	}
	if !k.alarms[a].armed {
		return k.reportError(ServiceCancelAlarm, E_OS_NOFUNC)
	}
	k.disarmAlarm(a)
	return E_OK
}

// GetAlarm reports the number of ticks remaining before a next fires.
func (k *Kernel) GetAlarm(a AlarmID, tick *TickType) StatusType {
	k.EnterCritical()
	defer k.ExitCritical()

	if !k.validAlarm(a) {
		return k.reportError(ServiceGetAlarm, E_OS_ID)
	}
	if !k.alarms[a].armed {
		return k.reportError(ServiceGetAlarm, E_OS_NOFUNC)
	}
	desc := k.cfg.Alarms[a]
	max := k.cfg.Counters[desc.Counter].MaxAllowedValue + 1
	now := k.counters[desc.Counter].value
	exp := k.alarms[a].expiry
	if exp >= now {
		*tick = exp - now
	} else {
		*tick = max - now + exp
	}
	return E_OK
}

// fireAlarm performs an alarm's configured action (ActivateTask,
// SetEvent, or an application callback) when IncrementCounter discovers
// its expiry has been reached, then re-arms it if cyclic.
func (k *Kernel) fireAlarm(a AlarmID) {
	desc := k.cfg.Alarms[a]
	switch desc.Action.Kind {
	case ActionActivateTask:
		k.activateTaskLocked(desc.Action.Task)
	case ActionSetEvent:
		k.setEventLocked(desc.Action.Task, desc.Action.Event)
	case ActionCallback:
		if desc.Action.Callback != nil {
			desc.Action.Callback(k)
		}
	}
	if k.alarms[a].cycle != 0 {
		max := k.cfg.Counters[desc.Counter].MaxAllowedValue + 1
		k.armAlarm(a, (k.alarms[a].expiry+k.alarms[a].cycle)%max, k.alarms[a].cycle)
	} else {
		k.disarmAlarm(a)
	}
}
