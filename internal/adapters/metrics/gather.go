package metrics

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Sample is one gathered metric value
type Sample struct {
	Name   string
	Labels map[string]string
	Value  float64
}

// String renders the sample as name{label="value"} value
func (s Sample) String() string {
	if len(s.Labels) == 0 {
		return fmt.Sprintf("%s %g", s.Name, s.Value)
	}
	keys := make([]string, 0, len(s.Labels))
	for k := range s.Labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%q", k, s.Labels[k]))
	}
	return fmt.Sprintf("%s{%s} %g", s.Name, strings.Join(pairs, ","), s.Value)
}

// Gather flattens the registry into samples. Histograms contribute their
// _count and _sum series.
func Gather(gatherer prometheus.Gatherer) ([]Sample, error) {
	if gatherer == nil {
		return nil, nil
	}
	families, err := gatherer.Gather()
	if err != nil {
		return nil, fmt.Errorf("failed to gather metrics: %w", err)
	}

	var samples []Sample
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			labels := labelMap(metric.GetLabel())
			switch family.GetType() {
			case dto.MetricType_COUNTER:
				samples = append(samples, Sample{Name: family.GetName(), Labels: labels, Value: metric.GetCounter().GetValue()})
			case dto.MetricType_GAUGE:
				samples = append(samples, Sample{Name: family.GetName(), Labels: labels, Value: metric.GetGauge().GetValue()})
			case dto.MetricType_HISTOGRAM:
				h := metric.GetHistogram()
				samples = append(samples,
					Sample{Name: family.GetName() + "_count", Labels: labels, Value: float64(h.GetSampleCount())},
					Sample{Name: family.GetName() + "_sum", Labels: labels, Value: h.GetSampleSum()},
				)
			}
		}
	}
	return samples, nil
}

func labelMap(pairs []*dto.LabelPair) map[string]string {
	if len(pairs) == 0 {
		return nil
	}
	labels := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		labels[pair.GetName()] = pair.GetValue()
	}
	return labels
}

// WriteText writes every sample of the registry, one per line
func WriteText(w io.Writer, gatherer prometheus.Gatherer) error {
	samples, err := Gather(gatherer)
	if err != nil {
		return err
	}
	for _, sample := range samples {
		if _, err := fmt.Fprintln(w, sample.String()); err != nil {
			return err
		}
	}
	return nil
}
