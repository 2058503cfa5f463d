package harness

import "errors"

// ErrSideChannelConcurrent is returned by Runner.Execute when recovery or
// dump files are enabled under a concurrency mode more parallel than
// Serial: both files require a process-wide single-writer invariant
// that concurrent family/test execution would violate.
var ErrSideChannelConcurrent = errors.New("harness: recovery/dump files require serial concurrency")

// ErrScaffoldingUnavailable is returned by the init/scaffolder command
// surface: source-code scaffolding is an external collaborator this
// module only documents the interface of, never implements.
var ErrScaffoldingUnavailable = errors.New("harness: scaffolding is an external collaborator, not implemented here")

// ErrDuplicateSelection is wrapped into the error Register panics with
// when a family name is registered twice, a form of the framework-misuse
// category.
var ErrDuplicateSelection = errors.New("harness: duplicate selection entry")
