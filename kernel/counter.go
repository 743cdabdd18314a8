package kernel

// IncrementCounter advances counter c by one tick, wrapping modulo
// MaxAllowedValue+1, and fires every alarm whose expiry the new value
// reaches, in the order spec.md §4.G requires: declaration order among
// alarms expiring on the same tick (the heap gives us expiry order;
// counterAlarmHeap.Less's AlarmID tie-break gives us declaration order
// among same-tick alarms). Typically called once per hardware/simulated
// tick from tick.go's TickHandler, but also directly usable as an OSEK
// service by software counters.
func (k *Kernel) IncrementCounter(c CounterID) StatusType {
	k.EnterCritical()
	defer k.ExitCritical()

	if !k.validCounter(c) {
		return k.reportError(ServiceIncrementCounter, E_OS_ID)
	}
	desc := k.cfg.Counters[c]
	cd := &k.counters[c]
	cd.value = (cd.value + 1) % (desc.MaxAllowedValue + 1)

	h := k.alarmHeaps[c]
	fired := false
	for h.Len() > 0 && k.alarms[h.order[0]].expiry == cd.value {
		k.fireAlarm(h.order[0])
		fired = true
	}
	if fired {
		k.requestDispatch()
	}

	return E_OK
}

// GetCounterValue reports counter c's current value.
func (k *Kernel) GetCounterValue(c CounterID, out *TickType) StatusType {
	k.EnterCritical()
	defer k.ExitCritical()

	if !k.validCounter(c) {
		return k.reportError(ServiceGetCounterValue, E_OS_ID)
	}
	*out = k.counters[c].value
	return E_OK
}

// GetElapsedValue reports the number of ticks elapsed since prevValue (an
// earlier reading the caller supplies) and updates prevValue to the
// current reading, matching the OSEK idiom of repeated elapsed-time
// polling without a separate "start" call.
func (k *Kernel) GetElapsedValue(c CounterID, prevValue *TickType, out *TickType) StatusType {
	k.EnterCritical()
	defer k.ExitCritical()

	if !k.validCounter(c) {
		return k.reportError(ServiceGetElapsedValue, E_OS_ID)
	}
	desc := k.cfg.Counters[c]
	now := k.counters[c].value
	if now >= *prevValue {
		*out = now - *prevValue
	} else {
		*out = desc.MaxAllowedValue + 1 - *prevValue + now
	}
	*prevValue = now
	return E_OK
}
