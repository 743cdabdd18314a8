package kernel

import "testing"

// testPlatform is a deterministic, single-goroutine Platform stand-in:
// EnterCritical/ExitCritical are no-ops (tests drive the kernel from one
// goroutine only), IdleLoop and Panic just record that they were called.
type testPlatform struct {
	idleCalls  int
	panics     []string
	interrupts int
}

func (p *testPlatform) EnterCritical() {}
func (p *testPlatform) ExitCritical()  {}
func (p *testPlatform) IdleLoop()      { p.idleCalls++ }
func (p *testPlatform) Panic(reason string) {
	p.panics = append(p.panics, reason)
	panic(&PanicError{Reason: reason})
}
func (p *testPlatform) InterruptInit() { p.interrupts++ }

func basicTask(priority uint8, maxAct uint8, entry func(*Kernel)) TaskDescriptor {
	return TaskDescriptor{
		Name:           "task",
		Priority:       priority,
		Kind:           Basic,
		MaxActivations: maxAct,
		Entry:          entry,
	}
}

func extendedTask(priority uint8, events EventMaskType, entry func(*Kernel)) TaskDescriptor {
	return TaskDescriptor{
		Name:           "task",
		Priority:       priority,
		Kind:           Extended,
		MaxActivations: 1,
		Events:         events,
		Entry:          entry,
	}
}
