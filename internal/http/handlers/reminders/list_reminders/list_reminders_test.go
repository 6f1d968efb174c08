package listreminders

import (
	c "batchbuddy/internal/core/domain/common"
	"batchbuddy/internal/core/domain/reminder"
	service "batchbuddy/internal/core/services/list_reminders"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixtures = []reminder.Reminder{
	{
		ID:       1,
		UserID:   1,
		Title:    "Lecture",
		At:       time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
		Priority: reminder.PriorityMedium,
		Repeat:   reminder.RepeatNever,
		Status:   reminder.StatusPending,
		Channels: reminder.NewChannels(reminder.ChannelPush),
	},
	{
		ID:       2,
		UserID:   1,
		Title:    "Assignment",
		At:       time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC),
		Priority: reminder.PriorityHigh,
		Repeat:   reminder.RepeatWeekly,
		Status:   reminder.StatusPending,
		Channels: reminder.NewChannels(reminder.ChannelPush, reminder.ChannelSound),
	},
}

type stubService struct {
	reminders  []reminder.Reminder
	totalCount uint
	err        error
	input      *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	s.input = &input
	if s.err != nil {
		return result, s.err
	}
	result.Reminders = s.reminders
	result.TotalCount = s.totalCount
	return result, nil
}

func TestListRemindersHandler(t *testing.T) {
	cases := []struct {
		testName       string
		url            string
		expectedStatus int
		expectedInput  *service.Input
	}{
		{
			testName:       "no filters",
			url:            "/reminders",
			expectedStatus: http.StatusOK,
			expectedInput: &service.Input{
				Limit: c.NewOptional(uint(maxLimit), true),
			},
		},
		{
			testName:       "filter by user",
			url:            "/reminders?user_id=7",
			expectedStatus: http.StatusOK,
			expectedInput: &service.Input{
				UserIDEquals: c.NewOptional(reminder.UserID(7), true),
				Limit:        c.NewOptional(uint(maxLimit), true),
			},
		},
		{
			testName:       "filter by status",
			url:            "/reminders?status=pending",
			expectedStatus: http.StatusOK,
			expectedInput: &service.Input{
				StatusIn: c.NewOptional([]reminder.Status{reminder.StatusPending}, true),
				Limit:    c.NewOptional(uint(maxLimit), true),
			},
		},
		{
			testName:       "limit and offset",
			url:            "/reminders?limit=10&offset=20",
			expectedStatus: http.StatusOK,
			expectedInput: &service.Input{
				Limit:  c.NewOptional(uint(10), true),
				Offset: 20,
			},
		},
		{
			testName:       "invalid user_id",
			url:            "/reminders?user_id=asd",
			expectedStatus: http.StatusBadRequest,
		},
		{
			testName:       "invalid status",
			url:            "/reminders?status=asd",
			expectedStatus: http.StatusBadRequest,
		},
		{
			testName:       "limit above maximum",
			url:            "/reminders?limit=501",
			expectedStatus: http.StatusBadRequest,
		},
		{
			testName:       "invalid offset",
			url:            "/reminders?offset=-1",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.testName, func(t *testing.T) {
			stub := &stubService{reminders: fixtures, totalCount: uint(len(fixtures))}
			handler := New(stub)
			request := httptest.NewRequest(http.MethodGet, testcase.url, nil)
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, testcase.expectedStatus, recorder.Code)
			if testcase.expectedInput != nil {
				require.NotNil(t, stub.input)
				assert.Equal(t, *testcase.expectedInput, *stub.input)
			}
		})
	}
}
