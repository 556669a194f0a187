package profiler

import (
	"sync"
	"time"
)

// MaxFrames is how many frame summaries are kept.
const MaxFrames = 120

// ScopeSummary aggregates every call of one scope at one nesting depth
// within a frame.
type ScopeSummary struct {
	Name  string
	Depth int
	Total time.Duration
	Count int
}

type FrameSummary struct {
	Index    uint64
	Duration time.Duration
	Scopes   []ScopeSummary // in order of first appearance
}

type frameRecorder struct {
	mu      sync.Mutex
	next    uint64 // ring index where the open frame starts
	startNS int64
	started bool
	index   uint64
	frames  []FrameSummary
}

var frameLog frameRecorder

func (f *frameRecorder) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next, f.startNS, f.started, f.index = 0, 0, false, 0
	f.frames = nil
}

func (f *frameRecorder) close(now int64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	evs, next := evrb.since(f.next)
	f.next = next
	if !f.started {
		// the first boundary only opens a frame
		f.started, f.startNS = true, now
		return
	}
	sum := FrameSummary{
		Index:    f.index,
		Duration: time.Duration(now - f.startNS),
		Scopes:   summarize(evs),
	}
	f.index++
	f.startNS = now
	f.frames = append(f.frames, sum)
	if len(f.frames) > MaxFrames {
		f.frames = append(f.frames[:0], f.frames[len(f.frames)-MaxFrames:]...)
	}
}

func summarize(evs []evEntry) []ScopeSummary {
	type key struct{ id, depth int }
	type open struct {
		id int
		at int64
	}
	var (
		out   []ScopeSummary
		slot  = map[key]int{}
		stack []open
	)
	for _, e := range evs {
		if e.Open {
			k := key{e.FrameID, len(stack)}
			if _, ok := slot[k]; !ok {
				slot[k] = len(out)
				out = append(out, ScopeSummary{Name: frameName(e.FrameID), Depth: len(stack)})
			}
			stack = append(stack, open{e.FrameID, e.AtNS})
			continue
		}
		if len(stack) == 0 || stack[len(stack)-1].id != e.FrameID {
			continue // close of a scope opened before this frame
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		s := &out[slot[key{e.FrameID, len(stack)}]]
		s.Total += time.Duration(e.AtNS - top.at)
		s.Count++
	}
	return out
}

// Frames returns the kept frame summaries, oldest first.
func Frames() []FrameSummary {
	frameLog.mu.Lock()
	defer frameLog.mu.Unlock()
	return append([]FrameSummary(nil), frameLog.frames...)
}

// LastFrame returns the most recent complete frame.
func LastFrame() (FrameSummary, bool) {
	frameLog.mu.Lock()
	defer frameLog.mu.Unlock()
	if len(frameLog.frames) == 0 {
		return FrameSummary{}, false
	}
	return frameLog.frames[len(frameLog.frames)-1], true
}

// AverageFrameTime is the mean duration of the kept frames.
func AverageFrameTime() time.Duration {
	frameLog.mu.Lock()
	defer frameLog.mu.Unlock()
	if len(frameLog.frames) == 0 {
		return 0
	}
	var total time.Duration
	for _, f := range frameLog.frames {
		total += f.Duration
	}
	return total / time.Duration(len(frameLog.frames))
}
