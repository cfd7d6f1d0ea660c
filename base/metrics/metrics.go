/*Package metrics wraps datadog-go to faciliate metric recording
Following are naming convention of metric:
- Internal process time: *.time
- External latency: *.latency
- Error: *.err
- Warning: *.warn
*/
package metrics

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/x-xyz/escrow/base/env"
	"github.com/x-xyz/escrow/base/log"
)

const (
	// TagValueNA is used for tags whose values are not available.
	TagValueNA = "n/a"

	sampleRate = 1.0
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

// Option is functional parameter for metrics option
type Option func(*opt)

type opt struct {
	// default: true
	withPodName bool
}

// WithoutPodName drops the pod tag, use it when grouping by pod is useless
func WithoutPodName() Option {
	return func(o *opt) {
		o.withPodName = false
	}
}

// New creates a metric client with package name as prefix
func New(pkgName string, options ...Option) Service {
	o := opt{
		withPodName: true,
	}
	for _, option := range options {
		option(&o)
	}

	// an empty host tag removes the tags datadog attaches per host
	ddTags := []string{
		"host:",
		"env:" + orEnv(viper.GetString("env_name"), env.EnvName),
		"app:" + orEnv(viper.GetString("app_name"), env.AppName),
	}
	if o.withPodName {
		ddTags = append(ddTags, "pod:"+env.PodName())
	}

	return &Metrics{
		pkgName: pkgName,
		datadog: DDMetrics{
			ddTags: ddTags,
		},
	}
}

func orEnv(v string, fallback func() string) string {
	if v != "" {
		return v
	}
	return fallback()
}

// Metrics prefixes every key with its package name
type Metrics struct {
	pkgName string
	datadog DDMetrics
}

func (mt *Metrics) key(key string) string {
	return mt.pkgName + `.` + key
}

// recoverBump keeps a malformed bump from taking the caller down
func (mt *Metrics) recoverBump(fn, key string, tags []string) {
	if err := recover(); err != nil {
		log.Log().WithFields(log.Fields{
			"err":  err,
			"func": fn,
			"key":  mt.key(key) + "#" + strings.Join(tags, "#"),
		}).Error("metrics panic")
	}
}

// BumpAvg bumps the average for the given key.
func (mt *Metrics) BumpAvg(key string, val float64, tags ...string) {
	defer mt.recoverBump("BumpAvg", key, tags)
	mt.datadog.BumpAvg(mt.key(key), val, sampleRate, tags...)
}

// BumpSum bumps the sum for the given key.
func (mt *Metrics) BumpSum(key string, val float64, tags ...string) {
	defer mt.recoverBump("BumpSum", key, tags)
	mt.datadog.BumpSum(mt.key(key), val, sampleRate, tags...)
}

// BumpHistogram bumps the histogram for the given key.
func (mt *Metrics) BumpHistogram(key string, val float64, tags ...string) {
	defer mt.recoverBump("BumpHistogram", key, tags)
	mt.datadog.BumpHistogram(mt.key(key), val, sampleRate, tags...)
}

// BumpTime is a special version of BumpHistogram which is specialized for
// timers. A convenient way of recording the duration of a function is:
//
//     defer s.BumpTime("my.function").End()
func (mt *Metrics) BumpTime(key string, tags ...string) (e Ender) {
	e = noopEnder{}
	defer mt.recoverBump("BumpTime", key, tags)
	e = &timeTracker{
		mt:    mt,
		key:   key,
		tags:  tags,
		ddEnd: mt.datadog.BumpTime(mt.key(key), sampleRate, tags...),
	}
	return e
}

type noopEnder struct{}

func (noopEnder) End() {}

type timeTracker struct {
	mt    *Metrics
	key   string
	tags  []string
	ddEnd Ender
}

func (t *timeTracker) End() {
	defer t.mt.recoverBump("BumpTime.End", t.key, t.tags)
	t.ddEnd.End()
}
