package api

import "sync/atomic"

// Latest guards a call site against stale responses from overlapping
// requests. Take a generation before issuing the request, check it when the
// response lands; responses for a superseded generation are dropped by the
// caller.
//
//	gen := latest.Next()
//	env, err := client.Get(ctx, path, query, api.CredentialsInclude)
//	if !latest.Current(gen) {
//		return // a newer request is in flight or already landed
//	}
type Latest struct {
	gen atomic.Uint64
}

func (l *Latest) Next() uint64 {
	return l.gen.Add(1)
}

func (l *Latest) Current(gen uint64) bool {
	return l.gen.Load() == gen
}
