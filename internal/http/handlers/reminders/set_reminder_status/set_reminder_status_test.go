package setreminderstatus

import (
	"batchbuddy/internal/core/domain/common"
	"batchbuddy/internal/core/domain/reminder"
	completeservice "batchbuddy/internal/core/services/complete_reminder"
	service "batchbuddy/internal/core/services/set_reminder_status"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSetStatusService struct {
	err   error
	input *service.Input
}

func (s *stubSetStatusService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	s.input = &input
	if s.err != nil {
		return result, s.err
	}
	result.Reminder = fixture(input.ReminderID, input.Status)
	return result, nil
}

type stubCompleteService struct {
	err   error
	input *completeservice.Input
}

func (s *stubCompleteService) Run(
	ctx context.Context,
	input completeservice.Input,
) (result completeservice.Result, err error) {
	s.input = &input
	if s.err != nil {
		return result, s.err
	}
	result.Reminder = fixture(input.ReminderID, reminder.StatusCompleted)
	return result, nil
}

func fixture(id reminder.ID, status reminder.Status) reminder.Reminder {
	rem := reminder.Reminder{
		ID:       id,
		UserID:   1,
		Title:    "Lecture",
		At:       time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
		Priority: reminder.PriorityMedium,
		Repeat:   reminder.RepeatNever,
		Status:   status,
		Channels: reminder.NewChannels(reminder.ChannelPush),
	}
	if status == reminder.StatusCompleted {
		rem.CompletedAt = common.NewOptional(time.Date(2024, 3, 1, 10, 35, 0, 0, time.UTC), true)
	}
	return rem
}

func TestSetReminderStatusHandler(t *testing.T) {
	cases := []struct {
		testName        string
		body            string
		setStatusErr    error
		completeErr     error
		expectedStatus  int
		expectSetStatus bool
		expectComplete  bool
	}{
		{
			testName:        "set pending",
			body:            `{"status": "pending"}`,
			expectedStatus:  http.StatusOK,
			expectSetStatus: true,
		},
		{
			testName:       "completion goes through the completing service",
			body:           `{"status": "completed"}`,
			expectedStatus: http.StatusOK,
			expectComplete: true,
		},
		{
			testName:       "not a json",
			body:           `asd`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			testName:       "missing status",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			testName:       "invalid status",
			body:           `{"status": "asd"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			testName:       "reminder does not exist",
			body:           `{"status": "completed"}`,
			completeErr:    reminder.ErrReminderDoesNotExist,
			expectedStatus: http.StatusNotFound,
		},
		{
			testName:       "snoozed status requires the snooze endpoint",
			body:           `{"status": "snoozed"}`,
			setStatusErr:   reminder.ErrSnoozeRequiresMinutes,
			expectedStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.testName, func(t *testing.T) {
			setStatus := &stubSetStatusService{err: testcase.setStatusErr}
			complete := &stubCompleteService{err: testcase.completeErr}
			router := chi.NewRouter()
			router.Method(
				http.MethodPatch,
				"/reminders/{reminderID:[0-9]+}/status",
				New(setStatus, complete),
			)

			request := httptest.NewRequest(
				http.MethodPatch,
				"/reminders/42/status",
				strings.NewReader(testcase.body),
			)
			recorder := httptest.NewRecorder()

			router.ServeHTTP(recorder, request)

			assert.Equal(t, testcase.expectedStatus, recorder.Code)
			if testcase.expectSetStatus {
				require.NotNil(t, setStatus.input)
				assert.Equal(t, reminder.ID(42), setStatus.input.ReminderID)
				assert.Nil(t, complete.input)
			}
			if testcase.expectComplete {
				require.NotNil(t, complete.input)
				assert.Equal(t, reminder.ID(42), complete.input.ReminderID)
				assert.Nil(t, setStatus.input)
			}
		})
	}
}
