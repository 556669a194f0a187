// Package profiler records named scopes into a ring of open/close events.
// Recording is off until SetEnabled(true); a disabled Start costs one atomic
// load. Frames are delimited with NewFrame, which also summarizes the scopes
// of the frame that just ended for on-screen display. The capture can be
// written as an evented speedscope profile.
package profiler

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultCapacity is the number of events kept when Init is not called.
const DefaultCapacity = 1 << 16

// -------- public API --------

// Init resets the event ring with room for capacity events (two per scope).
func Init(capacity int) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	evrb.init(capacity)
	frameLog.reset()
}

// SetEnabled turns recording on or off. Enabling an uninitialized profiler
// initializes it with DefaultCapacity.
func SetEnabled(on bool) {
	if on && !evrb.ready.Load() {
		Init(DefaultCapacity)
	}
	enabled.Store(on)
}

func Enabled() bool { return enabled.Load() }

var enabled atomic.Bool

// Start begins a scope and returns a func that ends it. Scopes must be
// closed in LIFO order on one goroutine.
func Start(name string) func() {
	if !enabled.Load() || !evrb.ready.Load() {
		return func() {}
	}
	fid := intern(name)
	// Emit OPEN now
	now := nowNS()
	evrb.push(evEntry{AtNS: now, FrameID: fid, Open: true})
	return func() {
		end := nowNS()
		// keep end >= start when the clock does not advance
		if end < now {
			end = now
		}
		evrb.push(evEntry{AtNS: end, FrameID: fid, Open: false})
	}
}

// NewFrame closes the current frame: its scopes are summarized and kept
// for Frames. Call it once per redraw, before any scope of the new frame.
func NewFrame() {
	if !enabled.Load() || !evrb.ready.Load() {
		return
	}
	frameLog.close(nowNS())
}

func MemoryUsage() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc
}

func MemoryAllocs() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Mallocs
}

func NumGoroutine() int {
	return runtime.NumGoroutine()
}

func NumCPU() int {
	return runtime.NumCPU()
}

var epoch = time.Now()

// nowNS is monotonic nanoseconds since process start.
var nowNS = func() int64 { return int64(time.Since(epoch)) }

// ---------- event ring ----------

type evEntry struct {
	AtNS    int64
	FrameID int
	Open    bool
}

type evRing struct {
	ready atomic.Bool
	cap   uint64
	write atomic.Uint64
	evs   []evEntry
}

func (r *evRing) init(capacity int) {
	r.ready.Store(false)
	r.cap = uint64(capacity)
	r.evs = make([]evEntry, r.cap)
	r.write.Store(0)
	r.ready.Store(true)
}

func (r *evRing) push(e evEntry) {
	i := r.write.Add(1) - 1
	r.evs[i%r.cap] = e
}

// since returns the events written at or after index from, in write order,
// and the index to continue from. Events already overwritten are skipped.
func (r *evRing) since(from uint64) ([]evEntry, uint64) {
	n := r.write.Load()
	if n <= from {
		return nil, n
	}
	if n-from > r.cap {
		from = n - r.cap
	}
	out := make([]evEntry, 0, n-from)
	for k := from; k < n; k++ {
		out = append(out, r.evs[k%r.cap])
	}
	return out, n
}

// snapshot preserves write order.
func (r *evRing) snapshot() []evEntry {
	evs, _ := r.since(0)
	return evs
}

var evrb evRing

// ---------- string interner ----------

var (
	muFrames sync.Mutex
	frames   []string
	index    = map[string]int{}
)

func intern(name string) int {
	muFrames.Lock()
	defer muFrames.Unlock()
	if id, ok := index[name]; ok {
		return id
	}
	id := len(frames)
	index[name] = id
	frames = append(frames, name)
	return id
}

func frameName(id int) string {
	muFrames.Lock()
	defer muFrames.Unlock()
	if id < 0 || id >= len(frames) {
		return "?"
	}
	return frames[id]
}
