package kernel

import (
	"io"
	"os"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Log is the type of the structured logger the kernel writes diagnostic
// (non-hot-path) events to. It is a concrete instantiation of logiface's
// generic logger using stumpy's zero-alloc JSON event type — both
// authored in the teacher monorepo (see SPEC_FULL.md §1.2 for the
// rationale: logiface is the façade, stumpy the backend).
type Log = logiface.Logger[*stumpy.Event]

// NewLogger builds the kernel's default diagnostic logger, writing
// newline-delimited JSON to w at the given minimum level. Pass a nil
// Logger to Option WithLogger to disable logging entirely (the default);
// a nil *Log is a documented no-op throughout this package, mirroring
// eventloop's NewNoOpLogger() convention in logging.go of the teacher.
func NewLogger(w io.Writer, level logiface.Level) *Log {
	if w == nil {
		w = os.Stderr
	}
	return logiface.New[*stumpy.Event](
		stumpy.WithStumpy(stumpy.WithWriter(w)),
		logiface.WithLevel[*stumpy.Event](level),
	)
}

// logHookEvent logs a lifecycle boundary event; it is called from
// ShutdownOS and Panic. Service errors go through logServiceError, called
// from service.go's reportError. Neither is called from task.go,
// resource.go, event.go, or alarm.go's hot paths, so a configured logger
// cannot perturb dispatch latency, per SPEC_FULL.md §1.2.
func (k *Kernel) logHookEvent(kind string, msg string) {
	if k.logger == nil {
		return
	}
	k.logger.Info().
		Str("kind", kind).
		Int("mode", int(k.appMode)).
		Log(msg)
}

func (k *Kernel) logServiceError(osErr OSError) {
	if k.logger == nil {
		return
	}
	k.logger.Warning().
		Str("service", osErr.Service.String()).
		Str("status", osErr.Status.String()).
		Int("task", int(osErr.Task)).
		Log("service call returned a non-E_OK status")
}
