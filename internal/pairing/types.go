package pairing

import "sort"

// PlayerID identifies a registered player. IDs are assigned by storage.
type PlayerID int64

// StandingsEntry is one row of the standings table.
type StandingsEntry struct {
	PlayerID PlayerID `json:"id"`
	Name     string   `json:"name"`
	Wins     int      `json:"wins"`
	Matches  int      `json:"matches"`
}

// Pairing is a single board for the next round.
type Pairing struct {
	PlayerID1 PlayerID `json:"id1"`
	Name1     string   `json:"name1"`
	PlayerID2 PlayerID `json:"id2"`
	Name2     string   `json:"name2"`
}

// OpponentPair is one row of the played-against relation.
type OpponentPair struct {
	PlayerID   PlayerID
	OpponentID PlayerID
}

// Opponents maps each player to the set of players they have already faced.
// A missing key means the player has not played yet.
type Opponents map[PlayerID]map[PlayerID]struct{}

// NewOpponents builds the relation from played-against rows. Each row is
// recorded in both directions, so a one-sided relation is completed.
func NewOpponents(pairs []OpponentPair) Opponents {
	o := make(Opponents, len(pairs))
	for _, p := range pairs {
		o.Add(p.PlayerID, p.OpponentID)
	}
	return o
}

// Add records that a and b have played each other.
func (o Opponents) Add(a, b PlayerID) {
	o.add(a, b)
	o.add(b, a)
}

func (o Opponents) add(a, b PlayerID) {
	set, ok := o[a]
	if !ok {
		set = make(map[PlayerID]struct{})
		o[a] = set
	}
	set[b] = struct{}{}
}

// Played reports whether a and b have met, looking in both directions.
func (o Opponents) Played(a, b PlayerID) bool {
	if _, ok := o[a][b]; ok {
		return true
	}
	_, ok := o[b][a]
	return ok
}

// Of returns the opponents of id in ascending ID order.
func (o Opponents) Of(id PlayerID) []PlayerID {
	ids := make([]PlayerID, 0, len(o[id]))
	for opp := range o[id] {
		ids = append(ids, opp)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
