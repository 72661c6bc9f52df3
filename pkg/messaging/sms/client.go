package sms

import (
	"errors"
	"log/slog"
	"time"

	httpclient "github.com/civicpulse/civicpulse-backend/pkg/http-client"
)

type GatewayConfig struct {
	URL            string        `json:"url" yaml:"url"`
	APIKey         string        `json:"api_key" yaml:"api_key"`
	From           string        `json:"from" yaml:"from"`
	RequestTimeout time.Duration `json:"request_timeout" yaml:"request_timeout"`
}

// Client talks to the SMS gateway's bulk messaging endpoint.
type Client struct {
	config     GatewayConfig
	httpClient httpclient.ClientConfig
}

func NewClient(config GatewayConfig) *Client {
	return &Client{
		config: config,
		httpClient: httpclient.ClientConfig{
			RootURL: config.URL,
			Timeout: config.RequestTimeout,
		},
	}
}

type SMSTo struct {
	Number string `json:"number"`
}

type SMSBody struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type SingleSMS struct {
	AllowedChannels []string `json:"allowedChannels"`
	From            string   `json:"from"`
	To              []SMSTo  `json:"to"`
	Body            SMSBody  `json:"body"`
}

type SMSAuth struct {
	Producttoken string `json:"producttoken"`
}

type SMSSendingReq struct {
	Messages struct {
		Authentication SMSAuth     `json:"authentication"`
		Msg            []SingleSMS `json:"msg"`
	} `json:"messages"`
}

func (c *Client) SendSMS(to string, message string) error {
	if c == nil || c.config.URL == "" {
		return errors.New("connection to sms gateway not initialized")
	}

	payload := SMSSendingReq{
		Messages: struct {
			Authentication SMSAuth     `json:"authentication"`
			Msg            []SingleSMS `json:"msg"`
		}{
			Authentication: SMSAuth{
				Producttoken: c.config.APIKey,
			},
			Msg: []SingleSMS{
				{
					AllowedChannels: []string{"SMS"},
					From:            c.config.From,
					To: []SMSTo{
						{
							Number: to,
						},
					},
					Body: SMSBody{
						Type:    "auto",
						Content: message,
					},
				},
			},
		},
	}

	res, err := c.httpClient.RunHTTPcall("", payload)
	if err != nil {
		return err
	}

	errorCode, ok := res["errorCode"]
	if !ok {
		slog.Error("no error code in response")
		return errors.New("no error code in response")
	}

	errorCodeNum, ok := errorCode.(float64)
	if !ok {
		slog.Error("error code is not a number")
		return errors.New("error code is not a number")
	}
	if errorCodeNum != 0 {
		slog.Error("sms gateway returned error", slog.Int("errorCode", int(errorCodeNum)))
		return errors.New("sms gateway returned error")
	}

	return nil
}
