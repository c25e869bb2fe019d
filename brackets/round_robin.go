package brackets

import (
	"context"
	"fmt"
	"sort"
)

// bye marks the empty slot added when a group has an odd number of teams.
const bye = -1

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() BracketGenerator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) GetName() string {
	return "RoundRobin"
}

// GenerateBracket creates group-stage matches with the circle method: the
// first team stays fixed and the others rotate, so every team plays once per
// round. With an odd count one team rests each round. Legs == 2 appends the
// reverse fixtures with home and away swapped.
func (g *RoundRobinGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]*BracketMatch, error) {
	if len(params.TeamIDs) < 2 {
		return nil, fmt.Errorf("RoundRobinGenerator: not enough teams (found %d, min 2 required)", len(params.TeamIDs))
	}
	legs := params.Legs
	if legs != 2 {
		legs = 1
	}

	seen := make(map[int]bool, len(params.TeamIDs))
	slots := make([]int, 0, len(params.TeamIDs)+1)
	for _, id := range params.TeamIDs {
		if seen[id] {
			return nil, fmt.Errorf("RoundRobinGenerator: team %d listed twice", id)
		}
		seen[id] = true
		slots = append(slots, id)
	}
	if len(slots)%2 == 1 {
		slots = append(slots, bye)
	}

	n := len(slots)
	roundsPerLeg := n - 1
	matches := make([]*BracketMatch, 0, legs*roundsPerLeg*n/2)

	for round := 0; round < roundsPerLeg; round++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		order := 0
		for i := 0; i < n/2; i++ {
			home, away := slots[i], slots[n-1-i]
			if home == bye || away == bye {
				continue
			}
			// Чередуем хозяев для фиксированной команды
			if i == 0 && round%2 == 1 {
				home, away = away, home
			}
			order++
			matches = append(matches, g.newMatch(params, 1, round+1, order, home, away))
		}
		// Поворот всех слотов, кроме первого
		last := slots[n-1]
		copy(slots[2:], slots[1:n-1])
		slots[1] = last
	}

	if legs == 2 {
		firstLeg := len(matches)
		for i := 0; i < firstLeg; i++ {
			m := matches[i]
			matches = append(matches, g.newMatch(params, 2, m.Round+roundsPerLeg, m.OrderInRound, m.AwayTeamID, m.HomeTeamID))
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Round != matches[j].Round {
			return matches[i].Round < matches[j].Round
		}
		return matches[i].OrderInRound < matches[j].OrderInRound
	})

	return matches, nil
}

func (g *RoundRobinGenerator) newMatch(params GenerateBracketParams, leg, round, order, home, away int) *BracketMatch {
	return &BracketMatch{
		UID:          fmt.Sprintf("T%d_G%s_L%d_R%dM%d_%dvs%d", params.TournamentID, params.Group, leg, round, order, home, away),
		Round:        round,
		OrderInRound: order,
		HomeTeamID:   home,
		AwayTeamID:   away,
	}
}
