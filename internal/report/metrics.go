package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// elapsedMetric is the gauge every interval is exported as
const elapsedMetric = "ivtimer_interval_elapsed_seconds"

// PrometheusExport renders one gauge sample per interval in the text
// exposition format. The index label keeps intervals with equal names apart.
// Nothing is served; the registry lives only for this call.
func PrometheusExport(w io.Writer, s *Snapshot) error {
	reg := prometheus.NewRegistry()
	elapsed := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name:        elapsedMetric,
		Help:        "Elapsed time between interval start and stop in seconds.",
		ConstLabels: prometheus.Labels{"run_id": s.RunID},
	}, []string{"index", "interval", "clock"})
	if err := reg.Register(elapsed); err != nil {
		return fmt.Errorf("register gauge: %w", err)
	}

	for i, r := range s.Intervals {
		elapsed.WithLabelValues(strconv.Itoa(i), r.Name, r.Clock).Set(r.ElapsedSeconds)
	}

	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	encoder := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := encoder.Encode(mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
