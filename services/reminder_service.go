package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dosada05/soccer-tournament/repositories"
)

// ReminderService emails rostered players and staff of both teams before a
// match.
type ReminderService interface {
	SendMatchReminder(ctx context.Context, matchNo int, message string) (int, error)
}

type reminderService struct {
	matchRepo  repositories.MatchRepository
	rosterRepo repositories.RosterRepository
	mailer     Mailer
	logger     *slog.Logger
}

// NewReminderService accepts a nil mailer; reminders then fail with
// ErrFeatureDisabled.
func NewReminderService(
	matchRepo repositories.MatchRepository,
	rosterRepo repositories.RosterRepository,
	mailer Mailer,
	logger *slog.Logger,
) ReminderService {
	return &reminderService{
		matchRepo:  matchRepo,
		rosterRepo: rosterRepo,
		mailer:     mailer,
		logger:     logger,
	}
}

// SendMatchReminder returns the number of messages sent. Delivery failures for
// single recipients are logged and skipped.
func (s *reminderService) SendMatchReminder(ctx context.Context, matchNo int, message string) (int, error) {
	if s.mailer == nil {
		return 0, fmt.Errorf("%w: smtp", ErrFeatureDisabled)
	}

	match, err := s.matchRepo.GetByID(ctx, nil, matchNo)
	if err != nil {
		return 0, handleRepositoryError(err, repositories.ErrMatchNotFound, ErrMatchNotFound)
	}
	row, err := s.matchRepo.GetRow(ctx, matchNo)
	if err != nil {
		return 0, handleRepositoryError(err, repositories.ErrMatchNotFound, ErrMatchNotFound)
	}

	recipients, err := s.rosterRepo.ListReminderRecipients(ctx, nil, match.TournamentID, []int{match.TeamID1, match.TeamID2})
	if err != nil {
		return 0, handleRepositoryError(err)
	}

	subject := fmt.Sprintf("Match reminder: %s vs %s", row.HomeTeam, row.AwayTeam)
	sent := 0
	for _, rc := range recipients {
		body, err := renderMatchReminder(MatchReminderData{
			Name:       rc.Name,
			Home:       row.HomeTeam,
			Away:       row.AwayTeam,
			Tournament: row.TournamentName,
			Date:       row.PlayDate.UTC().Format("January 2, 2006"),
			Venue:      row.VenueName,
			Message:    message,
		})
		if err != nil {
			return sent, err
		}
		if err := s.mailer.SendEmail([]string{rc.Email}, subject, body); err != nil {
			s.logger.WarnContext(ctx, "Failed to send match reminder",
				slog.Int("match_no", matchNo),
				slog.Int("person_id", rc.PersonID),
				slog.Any("error", err),
			)
			continue
		}
		sent++
	}

	s.logger.InfoContext(ctx, "Match reminders sent",
		slog.Int("match_no", matchNo),
		slog.Int("recipients", len(recipients)),
		slog.Int("sent", sent),
	)
	return sent, nil
}
