/*Package metrics wraps datadog-go to facilitate metric recording
Following are naming convention of metric:
- Internal process time: *.time
- External latency: *.latency
- Error: *.err
*/
package metrics

import (
	"github.com/spf13/viper"
)

// Ender provides interface for BumpTime
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpAvg(key string, val float64, tags ...string)
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)

	BumpTime(key string, tags ...string) Ender
}

// New creates a metric client with package name as prefix
func New(pkgName string) Service {
	ddTags := []string{
		// using host removes all tags associated with host
		// ref: https://docs.datadoghq.com/developers/dogstatsd/data_types/#host-tag-key
		"host:",
		"env:" + viper.GetString("env_name"),
		"app:" + viper.GetString("app_name"),
	}

	return &Metrics{
		pkgName: pkgName,
		datadog: DDMetrics{
			ddTags: ddTags,
		},
	}
}

// Metrics sends bumps to the datadog agent with the package prefix applied
type Metrics struct {
	pkgName string
	datadog DDMetrics
}

// BumpAvg bumps the average for the given key.
func (mt *Metrics) BumpAvg(key string, val float64, tags ...string) {
	mt.datadog.BumpAvg(mt.pkgName+"."+key, val, 1, tags...)
}

// BumpSum bumps the sum for the given key.
func (mt *Metrics) BumpSum(key string, val float64, tags ...string) {
	mt.datadog.BumpSum(mt.pkgName+"."+key, val, 1, tags...)
}

// BumpHistogram bumps the histogram for the given key.
func (mt *Metrics) BumpHistogram(key string, val float64, tags ...string) {
	mt.datadog.BumpHistogram(mt.pkgName+"."+key, val, 1, tags...)
}

// BumpTime starts a timer whose End() records the elapsed duration:
//
//	defer met.BumpTime("poll.time").End()
func (mt *Metrics) BumpTime(key string, tags ...string) Ender {
	return mt.datadog.BumpTime(mt.pkgName+"."+key, 1, tags...)
}

// noop is used while metrics are disabled (no datadog agent configured)
type noop struct{}

type noopEnder struct{}

func (noopEnder) End() {}

// NewNoop creates a metric client dropping every bump
func NewNoop() Service {
	return noop{}
}

func (noop) BumpAvg(key string, val float64, tags ...string)       {}
func (noop) BumpSum(key string, val float64, tags ...string)       {}
func (noop) BumpHistogram(key string, val float64, tags ...string) {}
func (noop) BumpTime(key string, tags ...string) Ender             { return noopEnder{} }
