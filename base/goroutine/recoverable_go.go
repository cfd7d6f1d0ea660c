package goroutine

import (
	"runtime/debug"

	"github.com/x-xyz/escrow/base/log"
)

var (
	logger = log.Log()
)

type PanicEvent struct {
	Panic interface{}
	Stack []byte
}

type RecoverableGoOptions struct {
	name           string
	beforeStart    func()
	afterEnded     func()
	afterRecovered func(panic interface{}, stack []byte)
}

type RecoverableGoOptionsFunc = func(*RecoverableGoOptions)

func getRecoverableGoOptions(fns ...RecoverableGoOptionsFunc) RecoverableGoOptions {
	opts := RecoverableGoOptions{}
	for _, fn := range fns {
		fn(&opts)
	}
	return opts
}

// WithName tags the panic log of the task
func WithName(name string) RecoverableGoOptionsFunc {
	return func(options *RecoverableGoOptions) {
		options.name = name
	}
}

func WithBeforeStart(f func()) RecoverableGoOptionsFunc {
	return func(options *RecoverableGoOptions) {
		options.beforeStart = f
	}
}

func WithAfterEnded(f func()) RecoverableGoOptionsFunc {
	return func(options *RecoverableGoOptions) {
		options.afterEnded = f
	}
}

func WithAfterRecovered(f func(panic interface{}, stack []byte)) RecoverableGoOptionsFunc {
	return func(options *RecoverableGoOptions) {
		options.afterRecovered = f
	}
}

// Run calls f on the current goroutine and turns a panic into a PanicEvent
func Run(f func(), fns ...RecoverableGoOptionsFunc) (res *PanicEvent) {
	opts := getRecoverableGoOptions(fns...)

	defer func() {
		if opts.afterEnded != nil {
			opts.afterEnded()
		}

		if p := recover(); p != nil {
			stack := debug.Stack()

			logger.WithFields(log.Fields{
				"task":  opts.name,
				"err":   p,
				"stack": string(stack),
			}).Error("panic")

			if opts.afterRecovered != nil {
				opts.afterRecovered(p, stack)
			}
			res = &PanicEvent{p, stack}
		}
	}()

	if opts.beforeStart != nil {
		opts.beforeStart()
	}

	f()
	return nil
}

// RecoverableGo runs f on a new goroutine. The returned channel receives the
// recovered panic, or is closed when f returns.
func RecoverableGo(f func(), fns ...RecoverableGoOptionsFunc) chan *PanicEvent {
	panicChan := make(chan *PanicEvent, 1)

	go func() {
		if p := Run(f, fns...); p != nil {
			panicChan <- p
			return
		}
		close(panicChan)
	}()

	return panicChan
}
