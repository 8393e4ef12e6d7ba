package metrics

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"

	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"

	"github.com/ModernExodus/tontoken/lib/version"
)

var Version metrics.Gauge = discard.NewGauge()

func PromVersion() metrics.Gauge {
	return prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "version",
		Help:      "Version of tontoken.",
	}, []string{"version", "git_commit", "go_version"})
}

func SetVersion() {
	info := version.Get()
	Version.With(
		"version", info.Version,
		"git_commit", info.GitCommit,
		"go_version", info.GoVersion).Set(1)
}
