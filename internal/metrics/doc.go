// Package metrics records run statistics (chain durations, throughput,
// mismatches, memory) in a private Prometheus registry that can be dumped
// to a file in the text exposition format.
package metrics
