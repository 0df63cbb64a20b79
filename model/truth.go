package model

// GroundTruth is the frame-indexed reference for one track.
// StateFrames[f] is the index of the note sounding at frame f. BoundaryFrames
// holds the first frame of every note followed by a sentinel equal to
// len(StateFrames).
type GroundTruth struct {
	StateFrames    []int `json:"state_frames"`
	BoundaryFrames []int `json:"boundary_frames"`
}

func (gt GroundTruth) NumFrames() int {
	return len(gt.StateFrames)
}
