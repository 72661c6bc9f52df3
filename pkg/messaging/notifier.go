package messaging

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/civicpulse/civicpulse-backend/pkg/messaging/templates"
	smtp_client "github.com/civicpulse/civicpulse-backend/pkg/smtp-client"
	surveyTypes "github.com/civicpulse/civicpulse-backend/pkg/survey/types"
)

type EmailSender interface {
	SendMail(to []string, subject string, htmlContent string, overrides *smtp_client.HeaderOverrides) error
}

type SMSSender interface {
	SendSMS(to string, message string) error
}

// WinnerNotifier dispatches winner notifications over the delivery channel
// configured on the survey's reward. WALLET rewards need no outbound message,
// the on-chain transfer itself is the delivery.
type WinnerNotifier struct {
	emailSender EmailSender
	smsSender   SMSSender
}

func NewWinnerNotifier(emailSender EmailSender, smsSender SMSSender) *WinnerNotifier {
	return &WinnerNotifier{
		emailSender: emailSender,
		smsSender:   smsSender,
	}
}

func (n *WinnerNotifier) NotifyWinner(winner surveyTypes.Winner, survey surveyTypes.Survey) error {
	if survey.Reward == nil {
		return nil
	}

	payload := map[string]string{
		"SurveyName": survey.Title,
		"Amount":     survey.Reward.Amount,
		"RewardType": survey.Reward.Type,
	}
	if survey.Reward.CryptoInfo != nil {
		payload["Network"] = survey.Reward.CryptoInfo.Network
	}

	switch survey.Reward.Delivery {
	case surveyTypes.REWARD_DELIVERY_EMAIL:
		if n.emailSender == nil {
			return errors.New("email sending not configured")
		}
		if winner.Contact == "" {
			return fmt.Errorf("winner %s has no contact address", winner.UserID)
		}
		subject, err := templates.ResolveTemplate("winner-email-subject", templates.WinnerEmailSubject, payload)
		if err != nil {
			return err
		}
		body, err := templates.ResolveTemplate("winner-email-body", templates.WinnerEmailBody, payload)
		if err != nil {
			return err
		}
		return n.emailSender.SendMail([]string{winner.Contact}, subject, body, nil)
	case surveyTypes.REWARD_DELIVERY_SMS:
		if n.smsSender == nil {
			return errors.New("sms sending not configured")
		}
		if winner.Contact == "" {
			return fmt.Errorf("winner %s has no contact number", winner.UserID)
		}
		content, err := templates.ResolveTemplate("winner-sms", templates.WinnerSMSBody, payload)
		if err != nil {
			return err
		}
		return n.smsSender.SendSMS(winner.Contact, content)
	case surveyTypes.REWARD_DELIVERY_WALLET:
		return nil
	default:
		slog.Warn("unknown reward delivery channel, nothing dispatched",
			slog.String("surveyKey", survey.SurveyKey),
			slog.String("delivery", survey.Reward.Delivery))
		return nil
	}
}
