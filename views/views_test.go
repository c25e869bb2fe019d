package views

import (
	"testing"
	"time"

	"github.com/Dosada05/soccer-tournament/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr[T any](v T) *T { return &v }

func TestFormatLongDate(t *testing.T) {
	assert.Equal(t, "November 5, 2025", FormatLongDate(day("2025-11-05")))
	// календарная дата в UTC, а не в локальной зоне
	late := time.Date(2025, 11, 5, 22, 0, 0, 0, time.FixedZone("UTC-3", -3*3600))
	assert.Equal(t, "November 6, 2025", FormatLongDate(late))
	assert.Equal(t, "", FormatLongDate(time.Time{}))
}

func TestMatchStatus(t *testing.T) {
	assert.Equal(t, StatusScheduled, MatchStatus("TBD"))
	assert.Equal(t, StatusCompleted, MatchStatus("WIN"))
	assert.Equal(t, StatusCompleted, MatchStatus("DRAW"))
}

func TestTournamentStatus(t *testing.T) {
	start, end := day("2025-05-15"), day("2025-08-30")

	assert.Equal(t, TournamentPlanning, TournamentStatus(start, end, day("2025-05-14")))
	assert.Equal(t, TournamentActive, TournamentStatus(start, end, day("2025-05-15")))
	assert.Equal(t, TournamentActive, TournamentStatus(start, end, day("2025-08-30").Add(23*time.Hour)))
	assert.Equal(t, TournamentCompleted, TournamentStatus(start, end, day("2025-08-31")))
}

func TestParseCount(t *testing.T) {
	assert.Equal(t, 12, ParseCount("12"))
	assert.Equal(t, 3, ParseCount(" 3 "))
	assert.Equal(t, 0, ParseCount(""))
	assert.Equal(t, 0, ParseCount("abc"))
	assert.Equal(t, 0, ParseCount("-4"))
}

func TestAverage(t *testing.T) {
	assert.Equal(t, "1.5", Average(3, 2))
	assert.Equal(t, "4.0", Average(4, 0))
	assert.Equal(t, "0.3", Average(1, 3))
}

func TestTeams(t *testing.T) {
	rows := []models.TeamListRow{
		{TeamID: 1214, TeamName: "Team Alpha", TournamentID: ptr(1), TournamentName: ptr("Summer Championship 2025"), PlayerCount: 11, SquadSize: ptr(11), CaptainName: ptr("Samir Nabil")},
		{TeamID: 1215, TeamName: "Team Beta", TournamentID: ptr(1), TournamentName: ptr("Summer Championship 2025"), PlayerCount: 2, SquadSize: ptr(11)},
		{TeamID: 1216, TeamName: "Team Gamma", PlayerCount: 0},
		{TeamID: 1217, TeamName: "Team Delta", PlayerCount: 1, SquadSize: ptr(0)},
	}

	teams := Teams(rows)
	require.Len(t, teams, 4)
	assert.Equal(t, TeamComplete, teams[0].Status)
	assert.Equal(t, "Samir Nabil", teams[0].Captain)
	assert.Equal(t, TeamIncomplete, teams[1].Status)
	assert.Equal(t, NoTournament, teams[2].Tournament)
	assert.Equal(t, TeamIncomplete, teams[2].Status)
	assert.Equal(t, TeamComplete, teams[3].Status)
}

func TestMatches(t *testing.T) {
	rows := []models.MatchRow{
		{MatchNo: 1, PlayDate: day("2025-05-20"), Results: "WIN", GoalScore: "3-1", HomeTeam: "Team Alpha", AwayTeam: "Team Beta", VenueName: "Central Stadium", TournamentName: "Summer Championship 2025"},
		{MatchNo: 5, PlayDate: day("2025-06-10"), Results: "TBD", GoalScore: "0-0", HomeTeam: "Team Alpha", AwayTeam: "Team Gamma"},
	}

	matches := Matches(rows)
	assert.Equal(t, "May 20, 2025", matches[0].Date)
	assert.Equal(t, StatusCompleted, matches[0].Status)
	assert.Equal(t, "3-1", matches[0].Score)
	assert.Equal(t, StatusScheduled, matches[1].Status)
	assert.Empty(t, matches[1].Score)

	results := MatchResults(rows[:1])
	assert.Equal(t, MatchResult{
		ID: 1, Date: "May 20, 2025", Tournament: "Summer Championship 2025",
		Home: "Team Alpha", Score: "3-1", Away: "Team Beta", Venue: "Central Stadium",
		HomeGoals: 3, AwayGoals: 1,
	}, results[0])
}

func TestMatchResults_MalformedScore(t *testing.T) {
	results := MatchResults([]models.MatchRow{
		{MatchNo: 7, GoalScore: "2 - 0"},
		{MatchNo: 8, GoalScore: ""},
		{MatchNo: 9, GoalScore: "x-4"},
	})
	require.Len(t, results, 3)
	assert.Equal(t, [2]int{2, 0}, [2]int{results[0].HomeGoals, results[0].AwayGoals})
	assert.Equal(t, [2]int{0, 0}, [2]int{results[1].HomeGoals, results[1].AwayGoals})
	assert.Equal(t, [2]int{0, 4}, [2]int{results[2].HomeGoals, results[2].AwayGoals})
}

func TestTopScorers(t *testing.T) {
	scorers := TopScorers([]models.TopScorerRow{
		{PlayerID: 1007, PlayerName: "Samir Nabil", Goals: 4, Matches: 2},
		{PlayerID: 1013, PlayerName: "Amr Khaled", Goals: 3, Matches: 1},
	})
	require.Len(t, scorers, 2)
	assert.Equal(t, 1, scorers[0].Rank)
	assert.Equal(t, "2.0", scorers[0].Avg)
	assert.Equal(t, 2, scorers[1].Rank)
	assert.Equal(t, "3.0", scorers[1].Avg)
}

func TestRedCards(t *testing.T) {
	cards := RedCards([]models.RedCardRow{{
		PlayerID: 1003, PlayerName: "Mohammed Ali", TeamName: "Team Beta", MatchNo: 1,
		PlayDate: day("2025-05-20"), BookingTime: 75, PlayHalf: 2, HomeTeam: "Team Alpha", AwayTeam: "Team Beta",
	}})
	require.Len(t, cards, 1)
	assert.Equal(t, "Team Alpha vs Team Beta", cards[0].Match)
	assert.Equal(t, "May 20, 2025", cards[0].Date)
	assert.Equal(t, 75, cards[0].Minute)
}

func TestTeamMembers(t *testing.T) {
	members := TeamMembers(
		[]models.RosterPlayerRow{
			{PlayerID: 1007, Name: "Samir Nabil", JerseyNo: 4, Position: "Midfielders", TeamName: ptr("Team Alpha"), TeamID: ptr(1214), IsCaptain: true},
			{PlayerID: 1001, Name: "Ahmed Hassan", JerseyNo: 1, Position: "Goalkeepers", TeamName: ptr("Team Alpha")},
			{PlayerID: 2000, Name: "Free Agent", JerseyNo: 99},
		},
		[]models.RosterStaffRow{{SupportID: 9001, Name: "Carlos Rodriguez", Role: "COACH", TeamID: 1214, TeamName: "Team Alpha"}},
	)
	require.Len(t, members, 4)
	assert.Equal(t, RoleCaptain, members[0].Role)
	assert.Equal(t, "4", members[0].Number)
	assert.Equal(t, 1214, members[0].TeamID)
	assert.Equal(t, RolePlayer, members[1].Role)
	assert.Equal(t, NoTeam, members[2].Team)
	assert.Zero(t, members[2].TeamID)
	assert.Equal(t, "COACH", members[3].Role)
	assert.Empty(t, members[3].Number)
}

func TestStandingsAndPlayers(t *testing.T) {
	standings := Standings([]models.StandingRow{{
		TournamentTeam: models.TournamentTeam{TeamID: 1214, TournamentID: 1, Group: "A", MatchesPlayed: 3, Won: 2, Draw: 1, Points: 7, GroupPosition: 1, TeamName: "Team Alpha"},
		TournamentName: "Summer Championship 2025",
	}})
	assert.Equal(t, Standing{
		TournamentID: 1, Tournament: "Summer Championship 2025", Group: "A", Position: 1,
		TeamID: 1214, Team: "Team Alpha", Played: 3, Won: 2, Draw: 1, Points: 7,
	}, standings[0])

	players := Players([]models.PlayerListRow{{PlayerID: 1009, PlayerName: "Youssef Mahmoud", Status: models.RosterStatusPending}})
	assert.Equal(t, "pending", players[0].Status)
}

func TestMappersAreIdempotent(t *testing.T) {
	rows := []models.MatchRow{{MatchNo: 1, Results: "WIN", GoalScore: "1-0"}}
	assert.Equal(t, Matches(rows), Matches(rows))
	assert.Equal(t, []Match{}, Matches(nil))
}
