package createreminder

import (
	"batchbuddy/internal/core/domain/reminder"
	service "batchbuddy/internal/core/services/create_reminder"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	if s.err != nil {
		return result, s.err
	}
	s.input = &input
	result.Reminder = reminder.Reminder{
		ID:        1,
		UserID:    input.UserID,
		Title:     input.Title,
		At:        input.At,
		Priority:  reminder.PriorityMedium,
		Repeat:    reminder.RepeatNever,
		Status:    reminder.StatusPending,
		Channels:  reminder.NewChannels(reminder.ChannelPush),
		CreatedAt: input.At,
	}
	return result, nil
}

func TestCreateReminderHandler(t *testing.T) {
	cases := []struct {
		testName       string
		body           string
		expectedStatus int
	}{
		{
			testName:       "created",
			body:           `{"user_id": 1, "title": "Lecture", "at": "2024-03-01T10:30:00Z"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			testName: "created with all fields",
			body: `{"user_id": 1, "title": "Lecture", "description": "Room 12",
				"at": "2024-03-01T10:30:00Z", "priority": "high", "repeat": "weekly",
				"notify_before_minutes": 10, "notification_types": ["push", "sound"]}`,
			expectedStatus: http.StatusCreated,
		},
		{
			testName:       "not a json",
			body:           `asd`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			testName:       "missing title",
			body:           `{"user_id": 1, "at": "2024-03-01T10:30:00Z"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			testName:       "missing due instant",
			body:           `{"user_id": 1, "title": "Lecture"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			testName:       "invalid priority",
			body:           `{"user_id": 1, "title": "Lecture", "at": "2024-03-01T10:30:00Z", "priority": "asd"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			testName:       "invalid repeat",
			body:           `{"user_id": 1, "title": "Lecture", "at": "2024-03-01T10:30:00Z", "repeat": "asd"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			testName:       "invalid notification type",
			body:           `{"user_id": 1, "title": "Lecture", "at": "2024-03-01T10:30:00Z", "notification_types": ["asd"]}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.testName, func(t *testing.T) {
			stub := &stubService{}
			handler := New(stub)
			request := httptest.NewRequest(http.MethodPost, "/reminders", strings.NewReader(testcase.body))
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, testcase.expectedStatus, recorder.Code)
			if testcase.expectedStatus == http.StatusCreated {
				require.NotNil(t, stub.input)
			} else {
				assert.Nil(t, stub.input)
			}
		})
	}
}

func TestCreateReminderHandlerPassesParsedInput(t *testing.T) {
	// Setup ---
	stub := &stubService{}
	handler := New(stub)
	body := `{"user_id": 7, "title": "Lecture", "at": "2024-03-01T10:30:00Z",
		"priority": "high", "repeat": "weekly", "notify_before_minutes": 10,
		"notification_types": ["push", "email"]}`
	request := httptest.NewRequest(http.MethodPost, "/reminders", strings.NewReader(body))
	recorder := httptest.NewRecorder()

	// Exercise ---
	handler.ServeHTTP(recorder, request)

	// Verify ---
	assert := require.New(t)
	assert.Equal(http.StatusCreated, recorder.Code)
	assert.NotNil(stub.input)
	assert.Equal(reminder.UserID(7), stub.input.UserID)
	assert.Equal(reminder.PriorityHigh, stub.input.Priority)
	assert.Equal(reminder.RepeatWeekly, stub.input.Repeat)
	assert.Equal(10*time.Minute, stub.input.NotifyBefore)
	assert.True(stub.input.Channels.Has(reminder.ChannelEmail))
	assert.True(stub.input.At.Equal(time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)))
}
