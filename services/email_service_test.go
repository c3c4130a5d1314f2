package services

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"gigtrack-api/config"
	"gigtrack-api/metrics"
	"gigtrack-api/models"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	if d.err != nil {
		return d.err
	}
	d.sent = append(d.sent, m...)
	return nil
}

var weekStatus = metrics.GoalStatus{
	WeekStart:             time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC),
	Goal:                  500,
	Current:               200,
	Percent:               40,
	WeekBusinessKm:        100,
	WeekEstimatedFuel:     20,
	WeekNet:               180,
	WeekProfitPerDistance: 1.8,
}

func TestBuildWeeklyReport(t *testing.T) {
	user := models.User{ID: "u1", Name: "Sam", Email: "sam@example.com"}
	settings := models.DefaultSettings("u1")

	report := BuildWeeklyReport(user, settings, weekStatus, metrics.FuelEstimate{AvgCostPerDistance: 0.2, AvgEfficiency: 10})

	assert.Equal(t, "GigTrack weekly report: 40% of your goal", report.Subject)
	assert.Contains(t, report.Text, "Week starting 2024-03-11")
	assert.Contains(t, report.Text, "AUD 200.00 of AUD 500.00 (40%)")
	assert.Contains(t, report.Text, "AUD 180.00")
	assert.NotContains(t, report.Text, "estimated until")
	assert.Contains(t, report.HTML, "<strong>AUD 200.00</strong>")

	estimated := BuildWeeklyReport(user, settings, weekStatus, metrics.FuelEstimate{AvgCostPerDistance: 0.19, AvgEfficiency: 10, IsEstimate: true})
	assert.Contains(t, estimated.Text, "estimated until")
}

func TestBuildWeeklyReport_EscapesName(t *testing.T) {
	user := models.User{ID: "u1", Name: `<img src=x onerror="alert(1)">`, Email: "sam@example.com"}

	report := BuildWeeklyReport(user, models.DefaultSettings("u1"), weekStatus, metrics.FuelEstimate{})

	assert.NotContains(t, report.HTML, "<img")
	assert.Contains(t, report.HTML, "&lt;img src=x onerror=&#34;alert(1)&#34;&gt;")
	assert.Contains(t, report.Text, user.Name)
}

func TestSendWeeklyReport(t *testing.T) {
	dialer := &fakeDialer{}
	svc := NewEmailServiceWithDialer(&config.Config{FromName: "GigTrack", FromEmail: "noreply@gigtrack.app"}, dialer)
	user := models.User{ID: "u1", Name: "Sam", Email: "sam@example.com"}

	require.NoError(t, svc.SendWeeklyReport(user, models.DefaultSettings("u1"), weekStatus, metrics.FuelEstimate{}))
	require.Len(t, dialer.sent, 1)

	msg := dialer.sent[0]
	assert.Equal(t, []string{"sam@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"GigTrack <noreply@gigtrack.app>"}, msg.GetHeader("From"))

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "AUD 200.00")
}

func TestSendWeeklyReport_Errors(t *testing.T) {
	dialer := &fakeDialer{err: errors.New("connection refused")}
	svc := NewEmailServiceWithDialer(&config.Config{}, dialer)

	err := svc.SendWeeklyReport(models.User{ID: "u1", Email: "not-an-address"}, models.DefaultSettings("u1"), weekStatus, metrics.FuelEstimate{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.SendWeeklyReport(models.User{ID: "u1", Email: "sam@example.com"}, models.DefaultSettings("u1"), weekStatus, metrics.FuelEstimate{})
	assert.ErrorContains(t, err, "connection refused")
}
