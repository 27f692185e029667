package batch

// NormalizeAlpha makes one folder group channel-homogeneous. If any frame in
// the group carries an alpha channel, every frame is marked alpha-bearing;
// frames that lacked one keep the opaque alpha their NRGBA storage already
// holds. If no frame has alpha, the group stays uniformly alpha-free.
//
// The decision is folder-local: alpha in one folder never changes another
// folder's channel layout.
func NormalizeAlpha(frames []Frame) []Frame {
	hasAlpha := false
	for _, f := range frames {
		if f.HasAlpha {
			hasAlpha = true
			break
		}
	}
	if !hasAlpha {
		return frames
	}
	for i := range frames {
		frames[i].HasAlpha = true
	}
	return frames
}
