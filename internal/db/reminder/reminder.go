package reminder

import (
	c "batchbuddy/internal/core/domain/common"
	e "batchbuddy/internal/core/domain/errors"
	"batchbuddy/internal/core/domain/reminder"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

// DBTX is satisfied by pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type PgxRepository struct {
	db DBTX
}

func NewPgxRepository(db DBTX) *PgxRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxRepository{db: db}
}

const reminderColumns = `id, user_id, title, description, at, priority, notify_before_minutes,
	repeat, status, channels, notified, snoozed_until, completed_at, created_at`

func (r *PgxRepository) Create(
	ctx context.Context,
	input reminder.CreateInput,
) (rem reminder.Reminder, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO reminder
			(user_id, title, description, at, priority, notify_before_minutes,
			 repeat, status, channels, notified, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING `+reminderColumns,
		int64(input.UserID),
		input.Title,
		input.Description,
		input.At,
		input.Priority.String(),
		int(input.NotifyBefore/time.Minute),
		input.Repeat.String(),
		input.Status.String(),
		input.Channels.Strings(),
		input.Notified,
		input.CreatedAt,
	)
	return decodeReminder(row)
}

func (r *PgxRepository) GetByID(ctx context.Context, id reminder.ID) (rem reminder.Reminder, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+reminderColumns+` FROM reminder WHERE id = $1`,
		int64(id),
	)
	rem, err = decodeReminder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return rem, reminder.ErrReminderDoesNotExist
	}
	return rem, err
}

func (r *PgxRepository) Read(
	ctx context.Context,
	options reminder.ReadOptions,
) (reminders []reminder.Reminder, err error) {
	query, args := buildReadQuery(`SELECT `+reminderColumns+` FROM reminder`, options, true)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		rem, err := decodeReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, rem)
	}
	return reminders, rows.Err()
}

func (r *PgxRepository) Count(ctx context.Context, options reminder.ReadOptions) (uint, error) {
	query, args := buildReadQuery(`SELECT count(*) FROM reminder`, options, false)
	var count uint
	err := r.db.QueryRow(ctx, query, args...).Scan(&count)
	return count, err
}

func (r *PgxRepository) Update(
	ctx context.Context,
	input reminder.UpdateInput,
) (rem reminder.Reminder, err error) {
	assignments := make([]string, 0, 11)
	args := make([]interface{}, 0, 12)
	args = append(args, int64(input.ID))
	addAssignment := func(column string, value interface{}) {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if input.DoTitleUpdate {
		addAssignment("title", input.Title)
	}
	if input.DoDescriptionUpdate {
		addAssignment("description", input.Description)
	}
	if input.DoAtUpdate {
		addAssignment("at", input.At)
	}
	if input.DoPriorityUpdate {
		addAssignment("priority", input.Priority.String())
	}
	if input.DoNotifyBeforeUpdate {
		addAssignment("notify_before_minutes", int(input.NotifyBefore/time.Minute))
	}
	if input.DoRepeatUpdate {
		addAssignment("repeat", input.Repeat.String())
	}
	if input.DoStatusUpdate {
		addAssignment("status", input.Status.String())
	}
	if input.DoChannelsUpdate {
		addAssignment("channels", input.Channels.Strings())
	}
	if input.DoNotifiedUpdate {
		addAssignment("notified", input.Notified)
	}
	if input.DoSnoozedUntilUpdate {
		addAssignment("snoozed_until", nullTime(input.SnoozedUntil))
	}
	if input.DoCompletedAtUpdate {
		addAssignment("completed_at", nullTime(input.CompletedAt))
	}
	if len(assignments) == 0 {
		return r.GetByID(ctx, input.ID)
	}

	row := r.db.QueryRow(
		ctx,
		`UPDATE reminder SET `+strings.Join(assignments, ", ")+` WHERE id = $1 RETURNING `+reminderColumns,
		args...,
	)
	rem, err = decodeReminder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return rem, reminder.ErrReminderDoesNotExist
	}
	return rem, err
}

func (r *PgxRepository) Delete(ctx context.Context, id reminder.ID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reminder WHERE id = $1`, int64(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return reminder.ErrReminderDoesNotExist
	}
	return nil
}

// ReadPending returns the reminders the due check needs to consider.
func (r *PgxRepository) ReadPending(ctx context.Context) ([]reminder.Reminder, error) {
	return r.Read(ctx, reminder.ReadOptions{
		StatusIn: c.NewOptional([]reminder.Status{reminder.StatusPending, reminder.StatusSnoozed}, true),
	})
}

func (r *PgxRepository) MarkNotified(ctx context.Context, id reminder.ID) error {
	tag, err := r.db.Exec(ctx, `UPDATE reminder SET notified = true WHERE id = $1`, int64(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return reminder.ErrReminderDoesNotExist
	}
	return nil
}

func buildReadQuery(
	selectClause string,
	options reminder.ReadOptions,
	withOrderAndLimit bool,
) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if options.UserIDEquals.IsPresent {
		args = append(args, int64(options.UserIDEquals.Value))
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if options.StatusIn.IsPresent {
		statusIn := make([]string, len(options.StatusIn.Value))
		for ix, status := range options.StatusIn.Value {
			statusIn[ix] = status.String()
		}
		args = append(args, statusIn)
		conditions = append(conditions, fmt.Sprintf("status = any($%d)", len(args)))
	}
	if options.DueBefore.IsPresent {
		args = append(args, options.DueBefore.Value)
		conditions = append(conditions, fmt.Sprintf("coalesce(snoozed_until, at) < $%d", len(args)))
	}

	query := selectClause
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	if !withOrderAndLimit {
		return query, args
	}

	switch options.OrderBy {
	case reminder.OrderByIDDesc:
		query += " ORDER BY id DESC"
	case reminder.OrderByAtAsc:
		query += " ORDER BY at ASC"
	case reminder.OrderByAtDesc:
		query += " ORDER BY at DESC"
	default:
		query += " ORDER BY id ASC"
	}
	if options.Limit.IsPresent {
		args = append(args, options.Limit.Value)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if options.Offset > 0 {
		args = append(args, options.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return query, args
}

func decodeReminder(row pgx.Row) (rem reminder.Reminder, err error) {
	var (
		id                  int64
		userID              int64
		priority            string
		notifyBeforeMinutes int
		repeat              string
		status              string
		channels            []string
		snoozedUntil        sql.NullTime
		completedAt         sql.NullTime
	)
	err = row.Scan(
		&id,
		&userID,
		&rem.Title,
		&rem.Description,
		&rem.At,
		&priority,
		&notifyBeforeMinutes,
		&repeat,
		&status,
		&channels,
		&rem.Notified,
		&snoozedUntil,
		&completedAt,
		&rem.CreatedAt,
	)
	if err != nil {
		return rem, err
	}

	rem.ID = reminder.ID(id)
	rem.UserID = reminder.UserID(userID)
	rem.NotifyBefore = time.Duration(notifyBeforeMinutes) * time.Minute
	if rem.Priority, err = reminder.ParsePriority(priority); err != nil {
		return rem, fmt.Errorf("reminder %d: %w", id, err)
	}
	if rem.Repeat, err = reminder.ParseRepeat(repeat); err != nil {
		return rem, fmt.Errorf("reminder %d: %w", id, err)
	}
	if rem.Status, err = reminder.ParseStatus(status); err != nil {
		return rem, fmt.Errorf("reminder %d: %w", id, err)
	}
	if rem.Channels, err = reminder.ParseChannels(channels); err != nil {
		return rem, fmt.Errorf("reminder %d: %w", id, err)
	}
	rem.SnoozedUntil = c.NewOptional(snoozedUntil.Time, snoozedUntil.Valid)
	rem.CompletedAt = c.NewOptional(completedAt.Time, completedAt.Valid)
	return rem, nil
}

func nullTime(value c.Optional[time.Time]) sql.NullTime {
	return sql.NullTime{Time: value.Value, Valid: value.IsPresent}
}
