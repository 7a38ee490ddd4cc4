/*
Package observability provides helpers for monitoring the duplication
engine.

It composes lifecycle hooks from multiple backends (logging, metrics,
tracing) into a single set the engine can consume.
*/
package observability
