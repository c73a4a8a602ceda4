package notify

import (
	"context"
	"fmt"

	"salonbook/pkg/config"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

type SMSNotifier struct {
	api  messageCreator
	from string
	to   string
}

func NewSMSNotifier(cfg *config.Config) *SMSNotifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})
	return &SMSNotifier{
		api:  client.Api,
		from: cfg.TwilioFromNumber,
		to:   cfg.TwilioToNumber,
	}
}

// Notify sends subject and body as one text message.
func (n *SMSNotifier) Notify(ctx context.Context, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(n.to)
	params.SetFrom(n.from)
	params.SetBody(subject + "\n" + body)

	if _, err := n.api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio send: %w", err)
	}
	return nil
}
