package storage

import (
	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Recorder collects the inputs of a live session frame by frame.
type Recorder struct {
	sess Session
}

// NewRecorder starts recording a session of variant with the given seed.
func NewRecorder(variant string, seed int64, frameRate int) *Recorder {
	return &Recorder{sess: Session{Variant: variant, Seed: seed, FrameRate: frameRate}}
}

// SetConfig attaches the effective configuration so replays can rebuild it.
func (r *Recorder) SetConfig(yaml []byte) {
	r.sess.Config = string(yaml)
}

// Record stores the actions of frame. Quit is not replayed and is skipped.
func (r *Recorder) Record(frame uint64, in core.InputFrame) {
	for _, a := range in.Ordered() {
		if a == core.ActionQuit {
			continue
		}
		r.sess.Inputs = append(r.sess.Inputs, Input{Frame: frame, Action: a})
	}
}

// Finish returns the recorded session with its final state filled in.
func (r *Recorder) Finish(frames uint64, state core.GameState) Session {
	sess := r.sess
	sess.Frames = frames
	sess.Score = state.Score
	sess.Lines = state.Lines
	return sess
}

// InputFrames regroups the recorded inputs by frame.
func (s Session) InputFrames() map[uint64]core.InputFrame {
	frames := make(map[uint64]core.InputFrame)
	for _, in := range s.Inputs {
		f, ok := frames[in.Frame]
		if !ok {
			f = core.NewInputFrame()
		}
		f.Set(in.Action)
		frames[in.Frame] = f
	}
	return frames
}
