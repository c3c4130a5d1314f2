// File: /jobs/weekly_report_job.go
package jobs

import (
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"gigtrack-api/metrics"
	"gigtrack-api/models"
	"gigtrack-api/services"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "jobs").Logger()

// Recipients lists the users who opted in to the weekly report
type Recipients interface {
	UsersWithWeeklyReport() ([]models.User, error)
}

// Digests computes a user's weekly goal status
type Digests interface {
	WeeklyDigest(userID string) (*services.WeeklyDigest, error)
}

// Mailer delivers a rendered weekly report
type Mailer interface {
	SendWeeklyReport(user models.User, settings models.Settings, status metrics.GoalStatus, estimate metrics.FuelEstimate) error
}

// WeeklyReportJob periodically mails each opted-in driver their weekly goal progress
type WeeklyReportJob struct {
	recipients Recipients
	digests    Digests
	mailer     Mailer
	ticker     *time.Ticker
	done       chan struct{}
	stopOnce   sync.Once
}

// NewWeeklyReportJob creates a new weekly report job
func NewWeeklyReportJob(recipients Recipients, digests Digests, mailer Mailer, interval time.Duration) *WeeklyReportJob {
	return &WeeklyReportJob{
		recipients: recipients,
		digests:    digests,
		mailer:     mailer,
		ticker:     time.NewTicker(interval),
		done:       make(chan struct{}),
	}
}

// Start begins the job. The first run happens on the first tick.
func (j *WeeklyReportJob) Start() {
	logger.Info().Msg("weekly report job started")

	go func() {
		for {
			select {
			case <-j.ticker.C:
				j.RunOnce()
			case <-j.done:
				logger.Info().Msg("weekly report job stopped")
				return
			}
		}
	}()
}

// Stop stops the job. It is safe to call more than once, and before Start.
func (j *WeeklyReportJob) Stop() {
	j.stopOnce.Do(func() {
		j.ticker.Stop()
		close(j.done)
	})
}

// RunOnce sends one report per opted-in user and returns how many were sent.
// A failure for one user is logged and does not stop the others.
func (j *WeeklyReportJob) RunOnce() int {
	users, err := j.recipients.UsersWithWeeklyReport()
	if err != nil {
		logger.Error().Err(err).Msg("load weekly report recipients")
		return 0
	}

	sent := 0
	for _, user := range users {
		digest, err := j.digests.WeeklyDigest(user.ID)
		if err != nil {
			logger.Error().Err(err).Str("user_id", user.ID).Msg("compute weekly goal")
			continue
		}
		if err := j.mailer.SendWeeklyReport(user, digest.Settings, digest.Status, digest.Estimate); err != nil {
			logger.Error().Err(err).Str("user_id", user.ID).Msg("send weekly report")
			continue
		}
		sent++
	}

	logger.Info().Int("users", len(users)).Int("sent", sent).Msg("weekly report run completed")
	return sent
}
