package goroutine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecoverableGo(t *testing.T) {
	res := []string{}

	p := <-RecoverableGo(
		func() {
			res = append(res, "run task")
			panic("panic")
		},
		WithName("test"),
		WithBeforeStart(func() {
			res = append(res, "before start")
		}),
		WithAfterEnded(func() {
			res = append(res, "after ended")
		}),
		WithAfterRecovered(func(p interface{}, stack []byte) {
			res = append(res, "after recovered")
			res = append(res, p.(string))
		}),
	)

	assert.Equal(t, []string{
		"before start",
		"run task",
		"after ended",
		"after recovered",
		"panic",
	}, res)
	assert.Equal(t, "panic", p.Panic)
	assert.NotEmpty(t, p.Stack)
}

func TestRecoverableGoReturns(t *testing.T) {
	done := false
	p, ok := <-RecoverableGo(func() { done = true })
	assert.Nil(t, p)
	assert.False(t, ok)
	assert.True(t, done)
}

func TestRun(t *testing.T) {
	assert.Nil(t, Run(func() {}))
	assert.Equal(t, 1, Run(func() { panic(1) }).Panic)
}
