package notify

import (
	"bytes"
	"fmt"
	"html/template"

	"privsweep/internal/sweep/models"
	"privsweep/pkg/email"
)

// bodyData feeds the stage templates.
type bodyData struct {
	OwnerName      string
	Account        string
	InactivityDays int
}

var stageSubjects = map[models.NotificationStage]string{
	models.StageWarning:  "Action required: privileged account %s is inactive",
	models.StageDisabled: "Privileged account %s has been disabled",
	models.StageDeletion: "Privileged account %s is scheduled for removal",
}

var stageTemplates = map[models.NotificationStage]*template.Template{
	models.StageWarning: template.Must(template.New("warning").Parse(`<html><body>
<p>Hello {{.OwnerName}},</p>
<p>The privileged account <b>{{.Account}}</b> has shown no activity for
{{.InactivityDays}} days. If it stays inactive it will be disabled
automatically. Sign in with it, or reply to this notice if it is no longer
needed.</p>
</body></html>`)),
	models.StageDisabled: template.Must(template.New("disabled").Parse(`<html><body>
<p>Hello {{.OwnerName}},</p>
<p>The privileged account <b>{{.Account}}</b> was inactive for
{{.InactivityDays}} days and has been disabled by lifecycle policy. Contact
identity governance to re-enable it if it is still required.</p>
</body></html>`)),
	models.StageDeletion: template.Must(template.New("deletion").Parse(`<html><body>
<p>Hello {{.OwnerName}},</p>
<p>The privileged account <b>{{.Account}}</b> was inactive for
{{.InactivityDays}} days and has passed the removal threshold. It is being
removed; contact identity governance immediately if this is unexpected.</p>
</body></html>`)),
}

// renderMessage builds the subject and HTML body for one staged notice.
func renderMessage(stage models.NotificationStage, account models.AccountRecord, recipient string, inactivityDays int) (subject, body string, err error) {
	subjectFormat, ok := stageSubjects[stage]
	if !ok {
		return "", "", fmt.Errorf("no subject for notification stage %q", stage)
	}
	tmpl, ok := stageTemplates[stage]
	if !ok {
		return "", "", fmt.Errorf("no template for notification stage %q", stage)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, bodyData{
		OwnerName:      email.FriendlyName(recipient),
		Account:        account.PrincipalName,
		InactivityDays: inactivityDays,
	})
	if err != nil {
		return "", "", fmt.Errorf("render %s notice: %w", stage, err)
	}
	return fmt.Sprintf(subjectFormat, account.PrincipalName), buf.String(), nil
}
