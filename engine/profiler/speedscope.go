package profiler

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// ProfileFileName is the capture written by OpenProfilerGraph.
const ProfileFileName = "canopy.profile.speedscope.json"

// OpenProfilerGraph writes the capture into the temp directory and opens it
// with the speedscope command when one is installed. It returns the file
// path either way.
func OpenProfilerGraph() (string, error) {
	profilePath := filepath.Join(os.TempDir(), ProfileFileName)
	if err := DumpSpeedscope(profilePath); err != nil {
		return "", err
	}
	bin, err := exec.LookPath("speedscope")
	if err != nil {
		return profilePath, nil
	}
	cmd := exec.Command(bin, profilePath)
	hideConsole(cmd)
	if err := cmd.Start(); err != nil {
		return profilePath, fmt.Errorf("launch speedscope: %w", err)
	}
	go func() { _ = cmd.Wait() }()
	return profilePath, nil
}

// DumpSpeedscope writes every event still in the ring to path.
func DumpSpeedscope(path string) error {
	if !evrb.ready.Load() {
		return errors.New("profiler: not initialized")
	}
	evs := evrb.snapshot()
	if len(evs) == 0 {
		return errors.New("profiler: no events to dump")
	}
	return dumpSpeedscopeEvents(evs, path)
}

// ---------- speedscope dump from EVENTS ----------
type ssFile struct {
	Schema             string      `json:"$schema"`
	Shared             ssShared    `json:"shared"`
	Profiles           []ssProfile `json:"profiles"`
	ActiveProfileIndex int         `json:"activeProfileIndex,omitempty"`
	Exporter           string      `json:"exporter,omitempty"`
	Name               string      `json:"name,omitempty"`
}
type ssShared struct {
	Frames []ssFrame `json:"frames"`
}
type ssFrame struct {
	Name string `json:"name"`
}

type ssProfile struct {
	Type       string    `json:"type"` // "evented"
	Name       string    `json:"name"`
	Unit       string    `json:"unit"` // "microseconds"
	StartValue int64     `json:"startValue"`
	EndValue   int64     `json:"endValue"`
	Events     []ssEvent `json:"events"`
}

// Frame is set on both open and close events.
type ssEvent struct {
	Type  string `json:"type"`  // "O" or "C"
	At    int64  `json:"at"`    // µs since first event
	Frame int    `json:"frame"` // frame index
}

func dumpSpeedscopeEvents(evs []evEntry, path string) error {
	muFrames.Lock()
	fs := make([]ssFrame, len(frames))
	for i, name := range frames {
		fs[i] = ssFrame{Name: name}
	}
	muFrames.Unlock()

	base := evs[0].AtNS
	endUS := int64(0)

	// stream in write order with small stack filter
	out := make([]ssEvent, 0, len(evs)+16)
	stack := make([]int, 0, 64) // frame IDs
	lastUS := int64(-1)

	for _, e := range evs {
		atUS := (e.AtNS - base) / 1000
		if atUS < lastUS {
			atUS = lastUS // keep µs monotonic
		}

		if e.Open {
			out = append(out, ssEvent{Type: "O", At: atUS, Frame: e.FrameID})
			stack = append(stack, e.FrameID)
		} else {
			// the ring may have dropped the matching open
			if len(stack) == 0 || stack[len(stack)-1] != e.FrameID {
				continue
			}
			stack = stack[:len(stack)-1]
			out = append(out, ssEvent{Type: "C", At: atUS, Frame: e.FrameID})
		}

		lastUS = atUS
		if atUS > endUS {
			endUS = atUS
		}
	}

	// Scopes still open at capture time are closed at the last timestamp so
	// the profile stays balanced.
	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, ssEvent{Type: "C", At: lastUS, Frame: stack[i]})
	}

	if len(out) == 0 {
		return errors.New("profiler: no usable events after filtering")
	}

	doc := ssFile{
		Schema: "https://www.speedscope.app/file-format-schema.json",
		Shared: ssShared{Frames: fs},
		Profiles: []ssProfile{{
			Type:       "evented",
			Name:       "canopy main thread",
			Unit:       "microseconds",
			StartValue: 0,
			EndValue:   endUS,
			Events:     out,
		}},
		ActiveProfileIndex: 0,
		Exporter:           "canopy-profiler",
		Name:               "canopy capture",
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&doc); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
