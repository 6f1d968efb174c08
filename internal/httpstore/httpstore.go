package httpstore

import (
	e "batchbuddy/internal/core/domain/errors"
	"batchbuddy/internal/core/domain/logging"
	"batchbuddy/internal/core/domain/reminder"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const requestTimeout = 10 * time.Second

// Store is the adapter for a remote reminder store reachable over HTTP. The
// checker uses it instead of the local database when a store URL is
// configured. The remote API is loosely shaped: lists come back as a bare
// array or as {data: [...]}, dates and times in several formats. All of that
// is normalized here so nothing past this boundary branches on input shape.
type Store struct {
	baseURL    string
	httpClient *http.Client
	log        logging.Logger
	location   *time.Location
}

func New(baseURL string, log logging.Logger) *Store {
	if baseURL == "" {
		panic("baseURL must not be empty")
	}
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	return &Store{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		log:        log,
		location:   time.Local,
	}
}

type wireReminder struct {
	ID                int64    `json:"id"`
	UserID            int64    `json:"userId"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Date              string   `json:"date"`
	Time              string   `json:"time"`
	Priority          string   `json:"priority"`
	NotifyBefore      int      `json:"notifyBefore"`
	Repeat            string   `json:"repeat"`
	Status            string   `json:"status"`
	Completed         bool     `json:"completed"`
	Notified          bool     `json:"notified"`
	NotificationTypes []string `json:"notificationTypes"`
	SnoozedUntil      string   `json:"snoozedUntil"`
}

type listEnvelope struct {
	Data []wireReminder `json:"data"`
}

func (s *Store) ReadPending(ctx context.Context) ([]reminder.Reminder, error) {
	body, err := s.get(ctx, "/reminders")
	if err != nil {
		return nil, err
	}

	wire, err := decodeList(body)
	if err != nil {
		return nil, fmt.Errorf("httpstore: decode reminder list: %w", err)
	}

	reminders := make([]reminder.Reminder, 0, len(wire))
	for _, w := range wire {
		rem := s.fromWire(ctx, w)
		if !rem.IsActive() {
			continue
		}
		reminders = append(reminders, rem)
	}
	return reminders, nil
}

func (s *Store) GetByID(ctx context.Context, id reminder.ID) (rem reminder.Reminder, err error) {
	body, err := s.get(ctx, fmt.Sprintf("/reminders/%d", id))
	if err != nil {
		return rem, err
	}
	var w wireReminder
	if err := json.Unmarshal(body, &w); err != nil {
		return rem, fmt.Errorf("httpstore: decode reminder: %w", err)
	}
	return s.fromWire(ctx, w), nil
}

func (s *Store) MarkNotified(ctx context.Context, id reminder.ID) error {
	return s.send(ctx, http.MethodPut, fmt.Sprintf("/reminders/%d", id), map[string]interface{}{
		"notified": true,
	})
}

func (s *Store) Complete(ctx context.Context, id reminder.ID) error {
	return s.send(ctx, http.MethodPatch, fmt.Sprintf("/reminders/%d/status", id), map[string]interface{}{
		"status": reminder.StatusCompleted.String(),
	})
}

func (s *Store) Snooze(ctx context.Context, id reminder.ID, minutes int) error {
	return s.send(ctx, http.MethodPatch, fmt.Sprintf("/reminders/%d/snooze", id), map[string]interface{}{
		"minutes": minutes,
	})
}

// decodeList accepts both list shapes the remote API is known to produce.
func decodeList(body []byte) ([]wireReminder, error) {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var wire []wireReminder
		err := json.Unmarshal(trimmed, &wire)
		return wire, err
	}
	var envelope listEnvelope
	err := json.Unmarshal(trimmed, &envelope)
	return envelope.Data, err
}

// fromWire normalizes one remote reminder. Unknown enum values fall back to
// defaults; an unparseable due instant yields a zero At, which the due check
// treats as not-due.
func (s *Store) fromWire(ctx context.Context, w wireReminder) reminder.Reminder {
	rem := reminder.Reminder{
		ID:           reminder.ID(w.ID),
		UserID:       reminder.UserID(w.UserID),
		Title:        w.Title,
		Description:  w.Description,
		NotifyBefore: time.Duration(w.NotifyBefore) * time.Minute,
		Notified:     w.Notified,
	}

	at, err := ParseDueInstant(w.Date, w.Time, s.location)
	if err != nil {
		s.log.Warning(
			ctx,
			"Remote reminder has an unparseable due instant.",
			logging.Entry("reminderID", w.ID),
			logging.Entry("err", err),
		)
	} else {
		rem.At = at
	}

	rem.Priority, err = reminder.ParsePriority(w.Priority)
	if err != nil {
		rem.Priority = reminder.PriorityMedium
	}
	rem.Repeat, err = reminder.ParseRepeat(w.Repeat)
	if err != nil {
		rem.Repeat = reminder.RepeatNever
	}
	rem.Status = normalizeStatus(w)
	rem.Channels, err = reminder.ParseChannels(w.NotificationTypes)
	if err != nil || w.NotificationTypes == nil {
		rem.Channels = reminder.NewChannels(reminder.ChannelPush)
	}

	if w.SnoozedUntil != "" {
		if snoozedUntil, err := time.Parse(time.RFC3339, w.SnoozedUntil); err == nil {
			rem.SnoozedUntil.Value = snoozedUntil
			rem.SnoozedUntil.IsPresent = true
		}
	}

	return rem
}

// normalizeStatus prefers the status field; older store records carry only
// the completed flag.
func normalizeStatus(w wireReminder) reminder.Status {
	if status, err := reminder.ParseStatus(w.Status); err == nil {
		return status
	}
	if w.Completed {
		return reminder.StatusCompleted
	}
	return reminder.StatusPending
}

func (s *Store) get(ctx context.Context, path string) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	response, err := s.httpClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	if response.StatusCode == http.StatusNotFound {
		return nil, reminder.ErrReminderDoesNotExist
	}
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpstore: GET %s: unexpected status %d", path, response.StatusCode)
	}
	return io.ReadAll(response.Body)
}

func (s *Store) send(ctx context.Context, method string, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	request, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")
	response, err := s.httpClient.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()
	if response.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("httpstore: %s %s: unexpected status %d", method, path, response.StatusCode)
	}
	return nil
}
