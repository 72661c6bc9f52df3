package smtp_client

import (
	"reflect"
	"testing"
)

func TestBuildEmail(t *testing.T) {
	sc := &SmtpClients{
		servers: SmtpServerList{
			From:    "noreply@civicpulse.example",
			Sender:  "bounce@civicpulse.example",
			ReplyTo: []string{"support@civicpulse.example"},
		},
	}

	t.Run("defaults from server list", func(t *testing.T) {
		e := sc.buildEmail([]string{"winner@example.com"}, "Congrats", "<p>hi</p>", nil)
		if e.From != "noreply@civicpulse.example" {
			t.Errorf("from = %s", e.From)
		}
		if e.Sender != "bounce@civicpulse.example" {
			t.Errorf("sender = %s", e.Sender)
		}
		if !reflect.DeepEqual(e.ReplyTo, []string{"support@civicpulse.example"}) {
			t.Errorf("replyTo = %v", e.ReplyTo)
		}
		if string(e.HTML) != "<p>hi</p>" || e.Subject != "Congrats" {
			t.Errorf("content not carried: subject=%s html=%s", e.Subject, e.HTML)
		}
	})

	t.Run("overrides applied", func(t *testing.T) {
		e := sc.buildEmail([]string{"winner@example.com"}, "Congrats", "", &HeaderOverrides{
			From:    "surveys@civicpulse.example",
			ReplyTo: []string{"team@civicpulse.example"},
		})
		if e.From != "surveys@civicpulse.example" {
			t.Errorf("from = %s", e.From)
		}
		if !reflect.DeepEqual(e.ReplyTo, []string{"team@civicpulse.example"}) {
			t.Errorf("replyTo = %v", e.ReplyTo)
		}
		if e.Sender != "bounce@civicpulse.example" {
			t.Error("unset override field should keep the default")
		}
	})

	t.Run("noReplyTo clears reply addresses", func(t *testing.T) {
		e := sc.buildEmail([]string{"winner@example.com"}, "Congrats", "", &HeaderOverrides{
			NoReplyTo: true,
			ReplyTo:   []string{"team@civicpulse.example"},
		})
		if len(e.ReplyTo) != 0 {
			t.Errorf("replyTo = %v, want empty", e.ReplyTo)
		}
	})
}
