package tipping

import "sort"

// Points configures the reward per prediction tier.
type Points struct {
	Exact        int `json:"exact"`
	Differential int `json:"differential"`
	Direction    int `json:"direction"`
}

func DefaultPoints() Points {
	return Points{Exact: 3, Differential: 2, Direction: 1}
}

type tier int

const (
	tierMiss tier = iota
	tierDirection
	tierDifferential
	tierExact
)

// classify compares a bet with the final score. A predicted draw only
// scores through the exact or differential tier.
func classify(bet Bet, result Result) tier {
	switch {
	case bet.Team1 == result.Team1 && bet.Team2 == result.Team2:
		return tierExact
	case bet.Team1-bet.Team2 == result.Team1-result.Team2:
		return tierDifferential
	case bet.Team1 > bet.Team2 && result.Team1 > result.Team2,
		bet.Team1 < bet.Team2 && result.Team1 < result.Team2:
		return tierDirection
	default:
		return tierMiss
	}
}

func (p Points) award(t tier) int {
	switch t {
	case tierExact:
		return p.Exact
	case tierDifferential:
		return p.Differential
	case tierDirection:
		return p.Direction
	default:
		return 0
	}
}

// BetPoints scores a single bet against a result.
func BetPoints(bet Bet, result Result, points Points) int {
	return points.award(classify(bet, result))
}

// Standing is one leaderboard row. The hit counters are the tie-break tiers.
type Standing struct {
	Rank         int    `json:"rank"`
	User         UserID `json:"user"`
	Points       int    `json:"points"`
	Exact        int    `json:"exact"`
	Differential int    `json:"differential"`
	Direction    int    `json:"direction"`
	Global       int    `json:"global"`
}

func tally(data Data, points Points) map[UserID]*Standing {
	rows := make(map[UserID]*Standing)
	row := func(user UserID) *Standing {
		entry, ok := rows[user]
		if !ok {
			entry = &Standing{User: user}
			rows[user] = entry
		}
		return entry
	}

	results := make(map[string]Result, len(data.Games))
	for _, game := range data.Games {
		if game.Result != nil {
			results[game.Short] = *game.Result
		}
	}
	for short, bets := range data.Bets {
		result, scored := results[short]
		for _, bet := range bets {
			entry := row(bet.User)
			if !scored {
				continue
			}
			t := classify(bet, result)
			entry.Points += points.award(t)
			switch t {
			case tierExact:
				entry.Exact++
			case tierDifferential:
				entry.Differential++
			case tierDirection:
				entry.Direction++
			}
		}
	}
	for _, global := range data.GlobalBets {
		for user, iso := range global.Bets {
			entry := row(user)
			if global.Result != nil && *global.Result == iso {
				entry.Points += global.Points
				entry.Global++
			}
		}
	}
	return rows
}

// Score totals points per user over every game and global bet. Every user
// with at least one prediction appears, with 0 if nothing has paid out yet.
func Score(data Data, points Points) map[UserID]int {
	rows := tally(data, points)
	totals := make(map[UserID]int, len(rows))
	for user, entry := range rows {
		totals[user] = entry.Points
	}
	return totals
}

// Rank orders users by points, then by exact, differential, direction and
// global hits. Rows equal on all of those share a rank; the user id only
// fixes the listing order.
func Rank(data Data, points Points) []Standing {
	rows := tally(data, points)
	list := make([]Standing, 0, len(rows))
	for _, entry := range rows {
		list = append(list, *entry)
	}
	sort.Slice(list, func(i, j int) bool {
		if c := compareTiers(list[i], list[j]); c != 0 {
			return c > 0
		}
		return list[i].User < list[j].User
	})
	for i := range list {
		if i > 0 && compareTiers(list[i], list[i-1]) == 0 {
			list[i].Rank = list[i-1].Rank
			continue
		}
		list[i].Rank = i + 1
	}
	return list
}

func compareTiers(a, b Standing) int {
	for _, pair := range [][2]int{
		{a.Points, b.Points},
		{a.Exact, b.Exact},
		{a.Differential, b.Differential},
		{a.Direction, b.Direction},
		{a.Global, b.Global},
	} {
		if pair[0] != pair[1] {
			if pair[0] > pair[1] {
				return 1
			}
			return -1
		}
	}
	return 0
}
