package pipeline

import "log"

// Reporter receives corpus-level counters at the end of a run. Passing a
// reporter in explicitly keeps the pipeline free of ambient logging state;
// the counters are informational and not part of the functional contract.
type Reporter interface {
	ReportRun(totalURLs, validURLs int, validityRate float64)
}

// LogReporter writes summary counters to the standard logger.
type LogReporter struct{}

// ReportRun logs the run summary.
func (LogReporter) ReportRun(totalURLs, validURLs int, validityRate float64) {
	log.Printf("Pipeline: total URLs processed: %d", totalURLs)
	log.Printf("Pipeline: total valid URLs: %d", validURLs)
	log.Printf("Pipeline: percentage of valid URLs: %.2f%%", validityRate*100)
}
