package scorer

import "sort"

// Entry is one leaderboard row: a player and how many goal events carry
// their id. Own goals are included; the event is still scored by that
// player even though it benefits the other side. Callers wanting
// "goals for the scorer's own team" filter own goals before tallying.
type Entry struct {
	PlayerID string
	Goals    int
}

// Tally is the explicit map-reduce over goal counts per scorer: group,
// count, then sort by count descending with player id ascending as the
// deterministic tie-break.
func Tally(goalsByScorer map[string]int) []Entry {
	out := make([]Entry, 0, len(goalsByScorer))
	for playerID, goals := range goalsByScorer {
		out = append(out, Entry{PlayerID: playerID, Goals: goals})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Goals != out[j].Goals {
			return out[i].Goals > out[j].Goals
		}
		return out[i].PlayerID < out[j].PlayerID
	})

	return out
}

// Page applies offset/limit pagination to a ranked slice.
func Page(entries []Entry, limit, offset int) []Entry {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(entries) {
		return []Entry{}
	}
	entries = entries[offset:]
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}

	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
