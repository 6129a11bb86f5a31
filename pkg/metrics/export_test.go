package metrics

import "github.com/prometheus/client_golang/prometheus"

func ChangesTotal() *prometheus.CounterVec { return changesTotal }
func BreakerState() *prometheus.GaugeVec { return breakerState }
