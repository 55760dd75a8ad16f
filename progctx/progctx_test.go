// Copyright (c) 2024, The OTNS Authors.
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

package progctx

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	ctx := New(context.Background())
	_ = context.Context(ctx)
	ctx2 := New(nil) // nolint
	_ = context.Context(ctx2)
	assert.Nil(t, ctx.Cause())
}

func TestProgCtx_Cancel(t *testing.T) {
	ctx := New(context.Background())
	deferredCalls := 0
	ctx.Defer(func() { deferredCalls++ })

	err := errors.Errorf("test error")
	ctx.Cancel(err)
	ctx.Cancel(errors.Errorf("second error"))
	<-ctx.Done()

	assert.True(t, ctx.Err() == context.Canceled)
	assert.Equal(t, err, ctx.Cause())
	assert.Equal(t, 1, deferredCalls)
	assert.Panics(t, func() { ctx.Defer(func() {}) })
}

func TestProgCtx_CancelNonError(t *testing.T) {
	ctx := New(context.Background())
	ctx.Cancel("interrupted")
	<-ctx.Done()
	assert.NotNil(t, ctx.Cause())
	assert.Equal(t, "interrupted", ctx.Cause().Error())
}

func TestProgCtx_Wait(t *testing.T) {
	ctx := New(context.Background())
	ctx.WaitAdd("test1", 1)
	go func() {
		ctx.WaitDone("test1")
	}()

	var n int32
	for i := 0; i < 3; i++ {
		ctx.Go("test2", func() { atomic.AddInt32(&n, 1) })
	}
	ctx.Wait()
	assert.Equal(t, int32(3), atomic.LoadInt32(&n))
	assert.Equal(t, 0, ctx.WaitCount())
}

func TestProgCtx_WaitDoneUnknown(t *testing.T) {
	ctx := New(context.Background())
	assert.Panics(t, func() { ctx.WaitDone("unknown") })
}
