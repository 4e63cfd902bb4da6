// Package metrics records run and generation metrics for factpress.
//
// Components receive a Recorder. NoopRecorder is the default; the generate
// command swaps in a PrometheusRecorder when --metrics-file is given and writes
// the registry in the node-exporter textfile format once the run ends:
//
//	rec := metrics.NewPrometheusRecorder(prometheus.NewRegistry())
//	res, err := site.NewRunner(cfg, secrets, site.Deps{Recorder: rec}).Run(ctx)
//	...
//	_ = rec.WriteTextfile("/var/lib/node_exporter/factpress.prom")
package metrics
