package kernel

import "fmt"

// StatusType is the 8-bit OSEK/AUTOSAR return code. Every exported kernel
// service returns one; E_OK is the only non-error value. Values are taken
// verbatim from src/include/osek/error.h in the original sdvos source.
type StatusType uint8

const (
	E_OK          StatusType = 0x0
	E_OS_ACCESS   StatusType = 0x1
	E_OS_CALLEVEL StatusType = 0x2
	E_OS_ID       StatusType = 0x3
	E_OS_LIMIT    StatusType = 0x4
	E_OS_NOFUNC   StatusType = 0x5
	E_OS_RESOURCE StatusType = 0x6
	E_OS_STATE    StatusType = 0x7
	E_OS_VALUE    StatusType = 0x8
)

func (s StatusType) String() string {
	switch s {
	case E_OK:
		return "E_OK"
	case E_OS_ACCESS:
		return "E_OS_ACCESS"
	case E_OS_CALLEVEL:
		return "E_OS_CALLEVEL"
	case E_OS_ID:
		return "E_OS_ID"
	case E_OS_LIMIT:
		return "E_OS_LIMIT"
	case E_OS_NOFUNC:
		return "E_OS_NOFUNC"
	case E_OS_RESOURCE:
		return "E_OS_RESOURCE"
	case E_OS_STATE:
		return "E_OS_STATE"
	case E_OS_VALUE:
		return "E_OS_VALUE"
	default:
		return fmt.Sprintf("StatusType(%d)", uint8(s))
	}
}

// ServiceID names a callable kernel service, for use by OSErrorGetServiceId
// and extended-status error reporting.
type ServiceID uint8

const (
	ServiceNone ServiceID = iota
	ServiceActivateTask
	ServiceTerminateTask
	ServiceChainTask
	ServiceSchedule
	ServiceGetTaskID
	ServiceGetTaskState
	ServiceGetResource
	ServiceReleaseResource
	ServiceSetEvent
	ServiceClearEvent
	ServiceWaitEvent
	ServiceGetEvent
	ServiceSetRelAlarm
	ServiceSetAbsAlarm
	ServiceCancelAlarm
	ServiceGetAlarm
	ServiceIncrementCounter
	ServiceGetCounterValue
	ServiceGetElapsedValue
	ServiceStartOS
	ServiceShutdownOS
)

func (s ServiceID) String() string {
	names := [...]string{
		"none", "ActivateTask", "TerminateTask", "ChainTask", "Schedule",
		"GetTaskID", "GetTaskState", "GetResource", "ReleaseResource",
		"SetEvent", "ClearEvent", "WaitEvent", "GetEvent",
		"SetRelAlarm", "SetAbsAlarm", "CancelAlarm", "GetAlarm",
		"IncrementCounter", "GetCounterValue", "GetElapsedValue",
		"StartOS", "ShutdownOS",
	}
	if int(s) < len(names) {
		return names[s]
	}
	return fmt.Sprintf("ServiceID(%d)", uint8(s))
}

// OSError is the process-wide extended-status error record populated by
// the dispatcher (see service.go) immediately before ErrorHook runs. It is
// the Go analogue of the unspecified-but-implied OSErrorGetServiceId()
// surface named in spec.md §4.I/§6.
type OSError struct {
	Service ServiceID
	Status  StatusType
	Task    TaskID
	Args    []any
}

// PanicError is raised (via Kernel.Panic) on kernel-internal invariant
// violations: corrupted ready queue state, resource/task bookkeeping that
// cannot be true, and similar "this must never happen" conditions. It is
// always fatal — there is no recovery path, matching §7's "Fatal" class.
type PanicError struct {
	Reason string
}

func (e *PanicError) Error() string {
	return "sdvos: kernel panic: " + e.Reason
}
