package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Dosada05/soccer-tournament/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to      []string
	subject string
	body    string
}

type fakeMailer struct {
	sent   []sentMail
	failTo string
}

func (m *fakeMailer) SendEmail(to []string, subject string, body string) error {
	if len(to) == 1 && to[0] == m.failTo {
		return errors.New("550 mailbox unavailable")
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func newReminderFixture(mailer Mailer) ReminderService {
	matches := newFakeMatchRepo(nil, scheduled(1, 1214, 1215))
	matches.rows[1] = &models.MatchRow{
		MatchNo:        1,
		PlayDate:       date("2025-06-01"),
		HomeTeam:       "Team Alpha",
		AwayTeam:       "Team Beta",
		VenueName:      "Central Stadium",
		TournamentName: "Summer Championship 2025",
	}
	roster := &fakeRosterRepo{recipients: []models.ReminderRecipient{
		{PersonID: 1001, Name: "Ahmed Hassan", Email: "ahmed.hassan@example.com"},
		{PersonID: 9001, Name: "Carlos Rodriguez", Email: "carlos.rodriguez@example.com"},
	}}
	return NewReminderService(matches, roster, mailer, testLogger())
}

func TestSendMatchReminder(t *testing.T) {
	mailer := &fakeMailer{}
	svc := newReminderFixture(mailer)

	sent, err := svc.SendMatchReminder(context.Background(), 1, "Kick-off moved to 18:00")
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	require.Len(t, mailer.sent, 2)

	first := mailer.sent[0]
	assert.Equal(t, []string{"ahmed.hassan@example.com"}, first.to)
	assert.Equal(t, "Match reminder: Team Alpha vs Team Beta", first.subject)
	assert.Contains(t, first.body, "Hello Ahmed Hassan")
	assert.Contains(t, first.body, "June 1, 2025")
	assert.Contains(t, first.body, "Central Stadium")
	assert.Contains(t, first.body, "Kick-off moved to 18:00")
}

func TestSendMatchReminder_SkipsFailedRecipients(t *testing.T) {
	mailer := &fakeMailer{failTo: "ahmed.hassan@example.com"}
	svc := newReminderFixture(mailer)

	sent, err := svc.SendMatchReminder(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.False(t, strings.Contains(mailer.sent[0].body, "<p></p>"))
}

func TestSendMatchReminder_Errors(t *testing.T) {
	_, err := newReminderFixture(nil).SendMatchReminder(context.Background(), 1, "")
	assert.ErrorIs(t, err, ErrFeatureDisabled)

	_, err = newReminderFixture(&fakeMailer{}).SendMatchReminder(context.Background(), 42, "")
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestRenderMatchReminder_EscapesHTML(t *testing.T) {
	body, err := renderMatchReminder(MatchReminderData{Name: "<b>x</b>", Message: "a & b"})
	require.NoError(t, err)
	assert.Contains(t, body, "&lt;b&gt;x&lt;/b&gt;")
	assert.Contains(t, body, "a &amp; b")
}
