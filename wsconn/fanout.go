// File: wsconn/fanout.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Adapted from the teacher's internal/concurrency/executor.go, which ran
// submitted TaskFuncs off an eapache/queue.Queue by a fixed worker pool.
// Here the same queue batches per-peer write jobs once a fan-out target
// set crosses batchThreshold, instead of writing to every peer serially
// on the caller's goroutine.
package wsconn

import (
	"sync"

	"github.com/eapache/queue"
)

// batchThreshold is the room/broadcast size above which fan-out switches
// from inline sequential writes to a small worker pool draining a shared
// queue.Queue.
const batchThreshold = 32

// fanoutWorkers bounds how many goroutines drain the batch queue
// concurrently for one fanout call.
const fanoutWorkers = 4

type fanoutJob struct {
	conn *Conn
	do   func(*Conn) error
}

// fanout delivers to every conn in targets by calling do(conn). Per spec
// §5, a per-peer failure (e.g. the peer disconnected mid-fanout) is
// swallowed — fanout callers never see individual write errors.
func fanout(targets []*Conn, do func(*Conn) error) {
	if len(targets) <= batchThreshold {
		for _, c := range targets {
			_ = do(c)
		}
		return
	}

	q := queue.New()
	for _, c := range targets {
		q.Add(fanoutJob{conn: c, do: do})
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	wg.Add(fanoutWorkers)
	for i := 0; i < fanoutWorkers; i++ {
		go func() {
			defer wg.Done()
			for {
				mu.Lock()
				if q.Length() == 0 {
					mu.Unlock()
					return
				}
				item := q.Remove()
				mu.Unlock()

				job := item.(fanoutJob)
				_ = job.do(job.conn)
			}
		}()
	}
	wg.Wait()
}
