/*
Package observability provides Prometheus instrumentation for the Levelance
engine.

Metrics are exposed as domain.LifecycleHooks so the engine stays unaware of
the metrics backend; register them on any prometheus.Registerer.
*/
package observability
