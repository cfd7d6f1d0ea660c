package metrics

import (
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/spf13/viper"

	"github.com/x-xyz/escrow/base/log"
)

const namespace = "escrow."

var (
	clientMu sync.Mutex
	client   statsCli

	// DdPort is the statsd port of the datadog agent
	DdPort = 8125
)

type statsCli interface {
	Gauge(name string, value float64, tags []string, rate float64) error
	Count(name string, value int64, tags []string, rate float64) error
	Histogram(name string, value float64, tags []string, rate float64) error
	TimeInMilliseconds(name string, value float64, tags []string, rate float64) error
	Flush() error
}

// dial connects to the agent at `datadog_host`, or falls back to the debug log
func dial() statsCli {
	host := viper.GetString("datadog_host")
	if host == "" {
		log.Log().Info("datadog_host not set, metrics go to debug log")
		return &LogClient{}
	}

	addr := net.JoinHostPort(host, strconv.Itoa(DdPort))
	c, err := statsd.New(addr, statsd.WithNamespace(namespace))
	if err != nil {
		log.Log().WithFields(log.Fields{"addr": addr, "err": err}).Panic("can't talk to datadog agent")
	}
	log.Log().WithField("addr", addr).Info("datadog agent connected")
	return c
}

// the statsd client buffers and is safe for concurrent use, one per process is enough
func statsClient() statsCli {
	clientMu.Lock()
	defer clientMu.Unlock()
	if client == nil {
		client = dial()
	}
	return client
}

// Flush sends buffered metrics, call it before the process exits
func Flush() {
	clientMu.Lock()
	defer clientMu.Unlock()
	if client == nil {
		return
	}
	if err := client.Flush(); err != nil {
		log.Log().WithField("err", err).Warn("metrics flush failed")
	}
}

// DDMetrics sends to datadog with a fixed set of tags
type DDMetrics struct {
	ddTags []string
}

func (dm *DDMetrics) report(fn, key string, val interface{}, err error) {
	if err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key, "val": val, "func": fn}).Error("Bump fail")
	}
}

// BumpAvg bumps the average for the given key.
func (dm *DDMetrics) BumpAvg(key string, val, sampleRate float64, tags ...string) {
	dm.report("BumpAvg", key, val, statsClient().Gauge(key, val, dm.tags(tags), sampleRate))
}

// BumpSum bumps the sum for the given key.
func (dm *DDMetrics) BumpSum(key string, val, sampleRate float64, tags ...string) {
	dm.report("BumpSum", key, val, statsClient().Count(key, int64(val), dm.tags(tags), sampleRate))
}

// BumpHistogram bumps the histogram for the given key.
func (dm *DDMetrics) BumpHistogram(key string, val, sampleRate float64, tags ...string) {
	dm.report("BumpHistogram", key, val, statsClient().Histogram(key, val, dm.tags(tags), sampleRate))
}

// BumpTime starts a timer, End() records the elapsed milliseconds.
func (dm *DDMetrics) BumpTime(key string, sampleRate float64, tags ...string) Ender {
	start := time.Now()
	merged := dm.tags(tags)
	return enderFunc(func() {
		ms := float64(time.Since(start)) / float64(time.Millisecond)
		dm.report("BumpTime", key, ms, statsClient().TimeInMilliseconds(key, ms, merged, sampleRate))
	})
}

func (dm *DDMetrics) tags(tags []string) []string {
	res := make([]string, 0, len(dm.ddTags)+len(tags)/2)
	res = append(res, dm.ddTags...)
	return append(res, parseTag(tags)...)
}

// parseTag turns key, value pairs into datadog key:value tags
func parseTag(tags []string) []string {
	if tags == nil {
		return nil
	}
	if len(tags)%2 != 0 {
		log.Log().WithField("tags", tags).Panic("tag length needs to be multiple of 2")
	}
	arr := make([]string, len(tags)/2)
	for i := 0; i < len(tags); i += 2 {
		arr[i/2] = tags[i] + ":" + tags[i+1]
	}
	return arr
}

type enderFunc func()

func (f enderFunc) End() { f() }
