// Copyright (c) 2026, The DistSweep Authors.
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
// 1. Redistributions of source code must retain the above copyright
//    notice, this list of conditions and the following disclaimer.
// 2. Redistributions in binary form must reproduce the above copyright
//    notice, this list of conditions and the following disclaimer in the
//    documentation and/or other materials provided with the distribution.
// 3. Neither the name of the copyright holder nor the
//    names of its contributors may be used to endorse or promote products
//    derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
// ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
// LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
// CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
// SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
// CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
// ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
// POSSIBILITY OF SUCH DAMAGE.

// Package progctx manages the lifetime of a program: cancellation with a cause, accounting of running
// goroutines, and cleanup functions run on cancel.
package progctx

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/wifisim/distsweep/logger"
)

// ProgCtx represents the context of a program during its lifetime.
type ProgCtx struct {
	context.Context
	wg       sync.WaitGroup
	cancel   context.CancelFunc
	lock     sync.Mutex
	routines map[string]int
	deferred []func()
	cause    error
}

// New creates a new ProgCtx from the parent context.
func New(parent context.Context) *ProgCtx {
	if parent == nil {
		parent = context.Background()
	}

	ctx, cancel := context.WithCancel(parent)
	return &ProgCtx{
		Context:  ctx,
		cancel:   cancel,
		routines: map[string]int{},
	}
}

// WaitCount returns the number of goroutines to wait for.
func (ctx *ProgCtx) WaitCount() int {
	ctx.lock.Lock()
	defer ctx.lock.Unlock()

	total := 0
	for _, c := range ctx.routines {
		total += c
	}
	return total
}

// Cancel cancels the program context. Only the first call has effect; the deferred functions then run in
// reverse order of registration.
func (ctx *ProgCtx) Cancel(reason interface{}) {
	ctx.lock.Lock()
	if ctx.Err() != nil {
		ctx.lock.Unlock()
		return
	}
	ctx.cancel()
	deferred := ctx.deferred
	ctx.deferred = nil
	if e, ok := reason.(error); ok {
		ctx.cause = e
	}
	ctx.lock.Unlock()

	if e, ok := reason.(error); ok {
		logger.TraceError("program exit: %v", e)
	} else {
		logger.Debugf("program exit: %v", reason)
	}

	for i := len(deferred) - 1; i >= 0; i-- {
		deferred[i]()
	}
}

// Cause returns the error the context was cancelled with, or nil.
func (ctx *ProgCtx) Cause() error {
	ctx.lock.Lock()
	defer ctx.lock.Unlock()
	return ctx.cause
}

// WaitAdd adds delta goroutines named name to wait for.
func (ctx *ProgCtx) WaitAdd(name string, delta int) {
	ctx.lock.Lock()
	ctx.routines[name] += delta
	ctx.lock.Unlock()

	ctx.wg.Add(delta)
}

// WaitDone notifies that a goroutine named name has finished.
func (ctx *ProgCtx) WaitDone(name string) {
	ctx.lock.Lock()
	defer ctx.lock.Unlock()

	if ctx.routines[name] <= 0 {
		logger.Panicf("routine %s is not running, should not call WaitDone", name)
	}
	ctx.routines[name] -= 1
	ctx.wg.Done()
}

// Go runs f in a new goroutine named name. The context is cancelled with the error f returns, if any.
func (ctx *ProgCtx) Go(name string, f func(ctx *ProgCtx) error) {
	ctx.WaitAdd(name, 1)
	go func() {
		defer ctx.WaitDone(name)
		if err := f(ctx); err != nil {
			ctx.Cancel(errors.Wrap(err, name))
		}
	}()
}

// Wait waits for all goroutines to finish.
func (ctx *ProgCtx) Wait() {
	ctx.lock.Lock()
	logger.Debugf("program context waiting routines: %v", ctx.routines)
	ctx.lock.Unlock()

	ctx.wg.Wait()
}

// Defer registers f to be called when the context is cancelled.
func (ctx *ProgCtx) Defer(f func()) {
	ctx.lock.Lock()
	defer ctx.lock.Unlock()
	if ctx.Err() != nil {
		logger.Panicf("cannot Defer after the program context is done")
	}
	ctx.deferred = append(ctx.deferred, f)
}
