package redisclient

import (
	"math/rand"
	"runtime"
	"strings"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/escrow/base/log"
)

const (
	dialTimeout  = 2 * time.Second
	readTimeout  = 1500 * time.Millisecond
	writeTimeout = 1500 * time.Millisecond
	idleTimeout  = 240 * time.Second

	dialRetries = 3
)

// RedisParam is the optional param for redis connection
type RedisParam struct {
	PoolMultiplier float64
	Retry          bool
}

// MustConnectRedis connects to one redis uri and panics on failure
func MustConnectRedis(uri, password string, param ...RedisParam) *redis.Pool {
	p, err := ConnectRedis(uri, password, param...)
	if err != nil {
		log.Log().WithFields(log.Fields{"redisURI": uri, "err": err}).Panic("fail to dial Redis")
	}
	return p
}

// dialer accepts host:port as well as redis:// and rediss:// urls
func dialer(uri, password string) func() (redis.Conn, error) {
	opts := []redis.DialOption{
		redis.DialConnectTimeout(dialTimeout),
		redis.DialReadTimeout(readTimeout),
		redis.DialWriteTimeout(writeTimeout),
	}
	if password != "" {
		opts = append(opts, redis.DialPassword(password))
	}
	if strings.HasPrefix(uri, "redis://") || strings.HasPrefix(uri, "rediss://") {
		return func() (redis.Conn, error) {
			return redis.DialURL(uri, opts...)
		}
	}
	return func() (redis.Conn, error) {
		return redis.Dial("tcp", uri, opts...)
	}
}

func newPool(uri, password string, param ...RedisParam) *redis.Pool {
	p := &redis.Pool{
		MaxIdle:     200,
		MaxActive:   1024,
		Wait:        true,
		IdleTimeout: idleTimeout,
		Dial:        dialer(uri, password),
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			if time.Since(t) < time.Second {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
	if len(param) > 0 && param[0].PoolMultiplier > 0 {
		p.MaxActive = int(float64(runtime.NumCPU()) * param[0].PoolMultiplier)
		if p.MaxActive < 1 {
			p.MaxActive = 1
		}
		// keep a quarter idle
		p.MaxIdle = p.MaxActive / 4
	}
	return p
}

// ConnectRedis builds a pool for uri and pings it, with RedisParam.Retry it
// tries dialRetries more times with a jittered one to two second pause
func ConnectRedis(uri, password string, param ...RedisParam) (*redis.Pool, error) {
	p := newPool(uri, password, param...)
	retry := len(param) > 0 && param[0].Retry
	jitter := rand.New(rand.NewSource(time.Now().UnixNano()))

	var err error
	for attempt := 0; attempt <= dialRetries; attempt++ {
		if attempt > 0 {
			if !retry {
				break
			}
			time.Sleep(time.Second + time.Duration(jitter.Intn(1000))*time.Millisecond)
		}
		if err = ping(p); err == nil {
			log.Log().WithFields(log.Fields{"redisURI": uri, "maxActive": p.MaxActive}).Info("redis connected")
			return p, nil
		}
		log.Log().WithFields(log.Fields{"redisURI": uri, "err": err, "attempt": attempt}).Error("ping redis failed")
	}
	return nil, err
}

func ping(p *redis.Pool) error {
	c := p.Get()
	defer c.Close()
	_, err := c.Do("PING")
	return err
}
