package reminder

import (
	c "batchbuddy/internal/core/domain/common"
	"batchbuddy/internal/core/domain/reminder"
	"batchbuddy/internal/db"
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

var NOW time.Time = time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	repo *PgxRepository
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool()
	suite.repo = NewPgxRepository(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	suite.pool.Close()
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxReminderRepository(t *testing.T) {
	if os.Getenv("TEST_POSTGRESQL_URL") == "" {
		t.Skip("TEST_POSTGRESQL_URL is not set")
	}
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) createReminder(input reminder.CreateInput) reminder.Reminder {
	suite.T().Helper()
	rem, err := suite.repo.Create(context.Background(), input)
	suite.Require().Nil(err)
	return rem
}

func defaultCreateInput() reminder.CreateInput {
	return reminder.CreateInput{
		UserID:    1,
		Title:     "Submit lab report",
		At:        NOW.Add(time.Hour),
		Priority:  reminder.PriorityMedium,
		Repeat:    reminder.RepeatNever,
		Status:    reminder.StatusPending,
		Channels:  reminder.NewChannels(reminder.ChannelPush),
		CreatedAt: NOW,
	}
}

func (suite *testSuite) TestCreateAndGetByID() {
	input := defaultCreateInput()
	input.Description = "Section B"
	input.NotifyBefore = 10 * time.Minute
	input.Channels = reminder.NewChannels(reminder.ChannelPush, reminder.ChannelSound)

	created := suite.createReminder(input)
	got, err := suite.repo.GetByID(context.Background(), created.ID)

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(created.ID, got.ID)
	assert.Equal(input.Title, got.Title)
	assert.Equal(input.Description, got.Description)
	assert.True(got.At.Equal(input.At))
	assert.Equal(input.NotifyBefore, got.NotifyBefore)
	assert.Equal(reminder.StatusPending, got.Status)
	assert.True(got.Channels.Has(reminder.ChannelSound))
	assert.False(got.Notified)
	assert.False(got.SnoozedUntil.IsPresent)
}

func (suite *testSuite) TestGetByIDNotFound() {
	_, err := suite.repo.GetByID(context.Background(), 111)

	suite.Require().ErrorIs(err, reminder.ErrReminderDoesNotExist)
}

func (suite *testSuite) TestReadFiltersAndOrder() {
	first := defaultCreateInput()
	first.UserID = 1
	second := defaultCreateInput()
	second.UserID = 2
	third := defaultCreateInput()
	third.UserID = 1
	third.Status = reminder.StatusCompleted
	suite.createReminder(first)
	suite.createReminder(second)
	createdThird := suite.createReminder(third)
	_, err := suite.repo.Update(context.Background(), reminder.UpdateInput{
		ID:                  createdThird.ID,
		DoCompletedAtUpdate: true,
		CompletedAt:         c.NewOptional(NOW, true),
	})
	suite.Require().Nil(err)

	type test struct {
		id       string
		options  reminder.ReadOptions
		expected int
	}
	cases := []test{
		{id: "all", options: reminder.ReadOptions{}, expected: 3},
		{
			id:       "by user",
			options:  reminder.ReadOptions{UserIDEquals: c.NewOptional(reminder.UserID(1), true)},
			expected: 2,
		},
		{
			id: "by status",
			options: reminder.ReadOptions{
				StatusIn: c.NewOptional([]reminder.Status{reminder.StatusPending}, true),
			},
			expected: 2,
		},
		{
			id:       "limit",
			options:  reminder.ReadOptions{Limit: c.NewOptional(uint(1), true)},
			expected: 1,
		},
	}
	for _, testcase := range cases {
		suite.Run(testcase.id, func() {
			reminders, err := suite.repo.Read(context.Background(), testcase.options)

			assert := suite.Require()
			assert.Nil(err)
			assert.Len(reminders, testcase.expected)
		})
	}
}

func (suite *testSuite) TestCountMatchesRead() {
	suite.createReminder(defaultCreateInput())
	suite.createReminder(defaultCreateInput())

	count, err := suite.repo.Count(
		context.Background(),
		reminder.ReadOptions{UserIDEquals: c.NewOptional(reminder.UserID(1), true)},
	)

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(uint(2), count)
}

func (suite *testSuite) TestUpdateSnooze() {
	created := suite.createReminder(defaultCreateInput())
	snoozedUntil := NOW.Add(15 * time.Minute)

	updated, err := suite.repo.Update(context.Background(), reminder.UpdateInput{
		ID:                   created.ID,
		DoStatusUpdate:       true,
		Status:               reminder.StatusSnoozed,
		DoSnoozedUntilUpdate: true,
		SnoozedUntil:         c.NewOptional(snoozedUntil, true),
		DoNotifiedUpdate:     true,
		Notified:             false,
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(reminder.StatusSnoozed, updated.Status)
	assert.True(updated.SnoozedUntil.IsPresent)
	assert.True(updated.SnoozedUntil.Value.Equal(snoozedUntil))
}

func (suite *testSuite) TestUpdateNotFound() {
	_, err := suite.repo.Update(context.Background(), reminder.UpdateInput{
		ID:            111,
		DoTitleUpdate: true,
		Title:         "updated",
	})

	suite.Require().ErrorIs(err, reminder.ErrReminderDoesNotExist)
}

func (suite *testSuite) TestDelete() {
	created := suite.createReminder(defaultCreateInput())

	err := suite.repo.Delete(context.Background(), created.ID)
	suite.Require().Nil(err)

	_, err = suite.repo.GetByID(context.Background(), created.ID)
	suite.Require().ErrorIs(err, reminder.ErrReminderDoesNotExist)

	err = suite.repo.Delete(context.Background(), created.ID)
	suite.Require().ErrorIs(err, reminder.ErrReminderDoesNotExist)
}

func (suite *testSuite) TestReadPendingExcludesTerminalStatuses() {
	pending := defaultCreateInput()
	completed := defaultCreateInput()
	completed.Status = reminder.StatusCompleted
	createdPending := suite.createReminder(pending)
	createdCompleted := suite.createReminder(completed)
	_, err := suite.repo.Update(context.Background(), reminder.UpdateInput{
		ID:                  createdCompleted.ID,
		DoCompletedAtUpdate: true,
		CompletedAt:         c.NewOptional(NOW, true),
	})
	suite.Require().Nil(err)

	reminders, err := suite.repo.ReadPending(context.Background())

	assert := suite.Require()
	assert.Nil(err)
	assert.Len(reminders, 1)
	assert.Equal(createdPending.ID, reminders[0].ID)
}

func (suite *testSuite) TestMarkNotified() {
	created := suite.createReminder(defaultCreateInput())

	err := suite.repo.MarkNotified(context.Background(), created.ID)
	suite.Require().Nil(err)

	got, err := suite.repo.GetByID(context.Background(), created.ID)
	suite.Require().Nil(err)
	suite.Require().True(got.Notified)
}
