// Package extension provides the run-time registry of action services that
// workflow engines call by name, for example "infra/job".
//
// The registry is normally populated by the root gridgate package, therefore
// most applications do not need to import this package directly.
package extension
