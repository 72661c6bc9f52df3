package templates

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// Built-in winner notification templates. Surveys currently share one message
// layout; the payload carries the survey specific values.
const (
	WinnerEmailSubject = "You won the {{.SurveyName}} reward draw"

	WinnerEmailBody = `<p>Good news!</p>
<p>Your response to <b>{{.SurveyName}}</b> was drawn in the reward lottery.</p>
<p>Your reward: {{.Amount}} ({{.RewardType}}){{if .Network}} via {{.Network}}{{end}}.</p>
<p>No further action is needed, the reward will be delivered to the contact
details you provided with your response.</p>`

	WinnerSMSBody = `You won the {{.SurveyName}} reward draw: {{.Amount}} ({{.RewardType}}). The reward will be sent to the contact details from your response.`
)

func ResolveTemplate(tempName string, templateDef string, contentInfos map[string]string) (content string, err error) {
	if strings.TrimSpace(templateDef) == "" {
		return "", errors.New("empty template `" + tempName)
	}
	tmpl, err := template.New(tempName).Parse(templateDef)
	if err != nil {
		err = fmt.Errorf("error when parsing template %s: %v", tempName, err)
		return "", err
	}
	var tpl bytes.Buffer

	err = tmpl.Execute(&tpl, contentInfos)
	if err != nil {
		err = fmt.Errorf("error during executing template %s: %v", tempName, err)
		return "", err
	}
	return tpl.String(), nil
}
