package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

// withManager swaps the global manager for one on a fresh registry.
func withManager(t *testing.T, opts ...Option) (*Manager, *prometheus.Registry) {
	t.Helper()
	registry := prometheus.NewRegistry()
	m := NewManager(append([]Option{WithPrometheusRegistry(registry)}, opts...)...)
	prev := globalManager
	globalManager = m
	t.Cleanup(func() { globalManager = prev })
	return m, registry
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithPrometheusRegistry(registry),
			)
			manager.viewsRendered.WithLabelValues("overview").Inc()

			Convey("Then metric names carry the namespace and subsystem", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
				for _, f := range families {
					So(strings.HasPrefix(f.GetName(), "test_namespace_test_subsystem_"), ShouldBeTrue)
				}
			})
		})

		Convey("When empty options are given", func() {
			manager := NewManager(WithNamespace(""), WithSubsystem(""), WithHistogramBuckets(nil), WithPrometheusRegistry(prometheus.NewRegistry()))
			So(manager.namespace, ShouldEqual, "rrdash")
			So(manager.subsystem, ShouldEqual, "dashboard")
			So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a fresh metrics manager", t, func() {
		m, _ := withManager(t)

		Convey("When dataset metrics are recorded", func() {
			UpdateDatasetRows("csv", 120)
			RecordDatasetLoadDuration("csv", 3.5)
			RecordDatasetLoadError("csv", "malformed")

			So(testutil.ToFloat64(m.datasetRows.WithLabelValues("csv")), ShouldEqual, 120.0)
			So(testutil.ToFloat64(m.datasetLoadErrors.WithLabelValues("csv", "malformed")), ShouldEqual, 1.0)
			So(testutil.CollectAndCount(m.datasetLoadDuration), ShouldEqual, 1)
		})

		Convey("When view metrics are recorded", func() {
			RecordViewRendered("overview")
			RecordViewRendered("overview")
			RecordViewEmpty("insights")
			RecordViewLatency("overview", 1.2)

			So(testutil.ToFloat64(m.viewsRendered.WithLabelValues("overview")), ShouldEqual, 2.0)
			So(testutil.ToFloat64(m.viewsEmpty.WithLabelValues("insights")), ShouldEqual, 1.0)
			So(testutil.CollectAndCount(m.viewLatency), ShouldEqual, 1)
		})

		Convey("When chart metrics are recorded", func() {
			RecordChartRendered("pie")
			RecordChartError("bar", "empty")

			So(testutil.ToFloat64(m.chartsRendered.WithLabelValues("pie")), ShouldEqual, 1.0)
			So(testutil.ToFloat64(m.chartErrors.WithLabelValues("bar", "empty")), ShouldEqual, 1.0)
		})

		Convey("When HTTP metrics are recorded", func() {
			RecordHTTPRequest("view", "GET", "200")
			RecordHTTPRequestDuration("view", "GET", "200", 4)
			RecordErrorByEndpoint("chart", "GET", "not_found")

			So(testutil.ToFloat64(m.httpRequests.WithLabelValues("view", "GET", "200")), ShouldEqual, 1.0)
			So(testutil.ToFloat64(m.errorRateByEndpoint.WithLabelValues("chart", "GET", "not_found")), ShouldEqual, 1.0)
		})

		Convey("When system metrics are recorded", func() {
			UpdateSystemMemoryUsage(2048)
			UpdateSystemGoroutineCount(12)
			RecordSystemGCPauseTime(0.3)

			So(testutil.ToFloat64(m.systemMemoryUsage), ShouldEqual, 2048.0)
			So(testutil.ToFloat64(m.systemGoroutineCount), ShouldEqual, 12.0)
		})
	})

	Convey("Given the global registry", t, func() {
		So(GetRegistry(), ShouldNotBeNil)
		So(GetRegistry(), ShouldEqual, customRegistry)
	})
}
