package virtual

// Metrics receives counters from the renderer. The telemetry package
// provides a Prometheus implementation.
type Metrics interface {
	Triggered(reason Reason)
	Coalesced()
	MeasurePass(changed bool)
	MeasureDropped(cause string)
	WindowComputed(rows int, virtualized bool)
	DocumentReset()
}

type nopMetrics struct{}

func (nopMetrics) Triggered(Reason) {}
func (nopMetrics) Coalesced() {}
func (nopMetrics) MeasurePass(bool) {}
func (nopMetrics) MeasureDropped(string) {}
func (nopMetrics) WindowComputed(int, bool) {}
func (nopMetrics) DocumentReset() {}
