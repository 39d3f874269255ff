// Package logging builds the zerolog loggers used across foodtruckfinder and
// carries them, together with a per-run trace ID, through context.Context.
//
// Components obtain their logger with FromContext and tag every event with
// "component" and "operation" fields. Events created with .Ctx(ctx) pick up
// the trace ID automatically through TraceHook.
package logging
