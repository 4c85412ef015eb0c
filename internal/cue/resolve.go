package cue

// determines which cue is current for a playback time. A valid forced
// index wins outright; otherwise the first cue in list order whose range
// contains t (inclusive on both ends) is returned, or -1 when none match.
//
// The scan is O(n), which is fine at subtitle-track sizes and is called on
// every playback tick. First-match-in-list-order is the tie-break for
// overlapping cues and must be preserved by any future speedup.
func Resolve(cues List, t float64, forced int) int {
	if forced >= 0 && forced < len(cues) {
		return forced
	}
	for i := range cues {
		if cues[i].Contains(t) {
			return i
		}
	}
	return -1
}

// NoForcedIndex disables the forced-index override in Resolve.
const NoForcedIndex = -1
