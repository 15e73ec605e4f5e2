package view

import (
	"fmt"

	"notesapp/pkg/logger"

	"go.uber.org/zap"
)

type Operation string

const (
	OpLoad   Operation = "load"
	OpCreate Operation = "create"
)

type Kind string

// KindRemoteCallFailed covers network failures, non-2xx responses and
// malformed bodies alike.
const KindRemoteCallFailed Kind = "remote_call_failed"

const (
	MsgFetchFailed = "Failed to fetch notes"
	MsgAddFailed   = "Failed to add note"
)

// Failure describes a remote call the view could not complete.
type Failure struct {
	Kind      Kind
	Operation Operation
	Message   string
	Err       error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Message, f.Err)
}

func (f Failure) Unwrap() error { return f.Err }

// Reporter receives failures. The view never surfaces them to the end user
// itself.
type Reporter interface {
	Report(f Failure)
}

type ReporterFunc func(f Failure)

func (fn ReporterFunc) Report(f Failure) { fn(f) }

// LogReporter writes failures to the diagnostic log. A nil Log falls back to
// the global logger.
type LogReporter struct {
	Log *zap.Logger
}

func (r LogReporter) Report(f Failure) {
	log := r.Log
	if log == nil {
		log = logger.Log
	}
	log.Error(f.Message,
		zap.String("operation", string(f.Operation)),
		zap.String("kind", string(f.Kind)),
		zap.Error(f.Err),
	)
}

func newFailure(op Operation, err error) Failure {
	msg := MsgFetchFailed
	if op == OpCreate {
		msg = MsgAddFailed
	}
	return Failure{Kind: KindRemoteCallFailed, Operation: op, Message: msg, Err: err}
}
