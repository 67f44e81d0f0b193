package mailer

import "fmt"

// Job templates understood by the email worker.
const (
	TemplateWelcome           = "welcome"
	TemplateLoginNotification = "login_notification"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Subject/Text override the template rendering when set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// Render produces subject and text body for the job's template.
// Unknown templates fall back to the literal Subject/Text fields.
func (j *EmailJob) Render() (subject, text string) {
	name := str(j.Data, "Name")
	switch j.Template {
	case TemplateWelcome:
		return "Welcome aboard",
			fmt.Sprintf("Hi %s,\n\nYour account was created successfully. You can sign in with %s.\n", name, str(j.Data, "Email"))
	case TemplateLoginNotification:
		return "New sign-in to your account",
			fmt.Sprintf("Hi %s,\n\nA new sign-in to your account was recorded at %s. If this was not you, change your password.\n", name, str(j.Data, "Time"))
	default:
		return j.Subject, j.Text
	}
}

func str(data map[string]any, key string) string {
	if data == nil {
		return ""
	}
	if v, ok := data[key]; ok {
		return fmt.Sprintf("%v", v)
	}
	return ""
}
