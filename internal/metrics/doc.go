// Package metrics provides observability hooks for docsite exports.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics collection never needs nil checks:
//
//	exporter := export.New(loader, export.Config{...})
//	exporter.WithRecorder(metrics.NewPrometheusRecorder(reg))
//
// The command line activates the Prometheus implementation only when a
// metrics file is requested; the registry is then written in the node
// exporter textfile format with WriteTextfile.
package metrics
