// File: middleware/chain.go
// Package middleware implements the ordered middleware chain of spec §4.7:
// each stage returns continue/stop, and a stage that stops owns the
// response it has already written.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package middleware

import "github.com/riftwave/riftwave/httpctx"

// Func is a single middleware stage. Returning false halts the chain —
// the stage is responsible for having written a response in that case.
type Func func(req *httpctx.Request, res *httpctx.Response) bool

// Chain is an ordered list of middleware stages, run in registration
// order.
type Chain []Func

// Run executes every stage in order. It returns false as soon as a stage
// returns false, short-circuiting the remaining stages.
func (c Chain) Run(req *httpctx.Request, res *httpctx.Response) bool {
	for _, stage := range c {
		if !stage(req, res) {
			return false
		}
	}
	return true
}

// Append returns a new Chain with extra appended, leaving c unmodified.
func (c Chain) Append(extra ...Func) Chain {
	out := make(Chain, 0, len(c)+len(extra))
	out = append(out, c...)
	out = append(out, extra...)
	return out
}
