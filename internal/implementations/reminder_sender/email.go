package remindersender

import (
	"batchbuddy/internal/core/domain/reminder"
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type EmailSender struct {
	ses *ses.Client
	// This address must be verified with Amazon SES.
	sender              string
	recipient           string
	dueReminderTemplate string
}

func NewEmail(
	awsConfig aws.Config,
	sender string,
	recipient string,
	dueReminderTemplate string,
) *EmailSender {
	return &EmailSender{
		ses:                 ses.NewFromConfig(awsConfig),
		sender:              sender,
		recipient:           recipient,
		dueReminderTemplate: dueReminderTemplate,
	}
}

func (s *EmailSender) SendDueReminder(ctx context.Context, rem reminder.Reminder, speech string) error {
	templateParamsBytes, err := json.Marshal(
		dueReminderTemplateParams{
			Title:       rem.Title,
			Description: rem.Description,
			Summary:     speech,
			Priority:    rem.Priority.String(),
		},
	)
	if err != nil {
		return err
	}
	templateParams := string(templateParamsBytes)

	_, err = s.ses.SendTemplatedEmail(
		ctx,
		&ses.SendTemplatedEmailInput{
			Source: &s.sender,
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{s.recipient},
			},
			Template:     &s.dueReminderTemplate,
			TemplateData: &templateParams,
		},
	)
	return err
}

type dueReminderTemplateParams struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Summary     string `json:"summary"`
	Priority    string `json:"priority"`
}
