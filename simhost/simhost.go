// Package simhost is the hosted Linux realization of kernel.Platform: a
// process-level stand-in for the bare-metal board support package a real
// SDVOS port supplies (see the original's src/arch/linux and
// src/arch/armv7m trees). It drives the tick subsystem from a real POSIX
// interval timer, delivered the same way the original's
// src/arch/linux/interrupt.c does — ISR(SIGALRM) calling TickHandler() —
// except that Go never hands a signal handler raw control of a running
// goroutine's stack; os/signal turns it into an ordinary channel value
// instead, which is also exactly the safe-point delivery dispatch.go's
// doc comment describes the rest of the kernel relying on.
package simhost

import (
	"fmt"
	"os"
	"os/signal"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/sdvos/sdvos-sub001/kernel"
)

// Platform is a kernel.Platform backed by a real process: EnterCritical/
// ExitCritical use a mutex (there is no interrupt controller to mask),
// IdleLoop owns the single driver goroutine's tick-delivery loop, and
// Panic reports to stderr and exits the process, matching
// src/arch/linux/panic.c's behaviour on a hosted build.
type Platform struct {
	mu sync.Mutex

	k           *kernel.Kernel
	counter     kernel.CounterID
	tickSeconds uint
	sigs        chan os.Signal
	stderr      *os.File
}

// New builds a Platform that increments counter every tickSeconds via
// SIGALRM once bound to a Kernel and started with StartOS.
func New(tickSeconds uint, counter kernel.CounterID) *Platform {
	return &Platform{
		counter:     counter,
		tickSeconds: tickSeconds,
		sigs:        make(chan os.Signal, 1),
		stderr:      os.Stderr,
	}
}

// Bind attaches the Kernel this Platform drives. Call it after
// kernel.New, before StartOS — the two-phase construction mirrors the
// unavoidable cycle (Platform must exist to pass to kernel.New, but needs
// the resulting *Kernel to deliver ticks to).
func (p *Platform) Bind(k *kernel.Kernel) {
	p.k = k
}

func (p *Platform) EnterCritical() { p.mu.Lock() }
func (p *Platform) ExitCritical()  { p.mu.Unlock() }

// InterruptInit registers the SIGALRM handler and arms the first
// interval; called once by StartOS before any task runs.
func (p *Platform) InterruptInit() {
	signal.Notify(p.sigs, unix.SIGALRM)
	unix.Alarm(p.tickSeconds)
}

// IdleLoop is the single driver goroutine's steady-state loop once the
// initial dispatch has drained the ready queue: block for the next
// SIGALRM, deliver it to the kernel, re-arm, repeat. This is also where a
// real target would put the MCU to sleep between interrupts.
func (p *Platform) IdleLoop() {
	for range p.sigs {
		p.k.TickHandler(p.counter)
		unix.Alarm(p.tickSeconds)
	}
}

// Panic reports reason to stderr and terminates the process. It never
// returns.
func (p *Platform) Panic(reason string) {
	fmt.Fprintf(p.stderr, "sdvos: panic: %s\n", reason)
	os.Exit(1)
}
