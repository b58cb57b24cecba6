// Package metrics exports archive codec activity as Prometheus metrics.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ssargent/pakfile/pkg/codec"
)

const (
	statusSuccess = "success"
	statusError   = "error"

	operationEncode = "encode"
	operationDecode = "decode"
)

// Metrics holds the Prometheus collectors for codec operations.
// It implements codec.Observer.
type Metrics struct {
	operationsTotal *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	filesTotal      *prometheus.CounterVec
	bytesTotal      *prometheus.CounterVec
	archiveBytes    *prometheus.HistogramVec
}

var _ codec.Observer = (*Metrics)(nil)

// NewMetrics creates the codec metrics and registers them with reg.
// A nil reg registers with prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		operationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pakfile_codec_operations_total",
				Help: "Total number of archive encode and decode operations",
			},
			[]string{"operation", "status"},
		),

		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pakfile_codec_errors_total",
				Help: "Total number of failed archive operations by reason",
			},
			[]string{"operation", "reason"},
		),

		filesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pakfile_codec_files_total",
				Help: "Total number of files encoded into or decoded from archives",
			},
			[]string{"operation"},
		),

		bytesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pakfile_codec_bytes_total",
				Help: "Total size in bytes of archives produced or consumed",
			},
			[]string{"operation"},
		),

		archiveBytes: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pakfile_codec_archive_size_bytes",
				Help:    "Size of archives produced or consumed",
				Buckets: prometheus.ExponentialBuckets(1024, 4, 10),
			},
			[]string{"operation"},
		),
	}
}

// ObserveEncode records an archive encode
func (m *Metrics) ObserveEncode(files, bytes int, err error) {
	m.record(operationEncode, files, bytes, err)
}

// ObserveDecode records an archive decode
func (m *Metrics) ObserveDecode(files, bytes int, err error) {
	m.record(operationDecode, files, bytes, err)
}

func (m *Metrics) record(operation string, files, bytes int, err error) {
	if err != nil {
		m.operationsTotal.WithLabelValues(operation, statusError).Inc()
		m.errorsTotal.WithLabelValues(operation, errorReason(err)).Inc()
		return
	}

	m.operationsTotal.WithLabelValues(operation, statusSuccess).Inc()
	m.filesTotal.WithLabelValues(operation).Add(float64(files))
	m.bytesTotal.WithLabelValues(operation).Add(float64(bytes))
	m.archiveBytes.WithLabelValues(operation).Observe(float64(bytes))
}

func errorReason(err error) string {
	switch {
	case errors.Is(err, codec.ErrFormat):
		return "format"
	case errors.Is(err, codec.ErrOutOfBounds):
		return "bounds"
	case errors.Is(err, codec.ErrSizeOverflow):
		return "overflow"
	default:
		return "other"
	}
}
