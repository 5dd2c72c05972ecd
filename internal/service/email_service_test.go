package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	"hindipath/internal/logger"
)

type fakeSES struct {
	inputs []*sesv2.SendEmailInput
	err    error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.inputs = append(f.inputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestEmailServiceDisabled(t *testing.T) {
	svc, err := NewEmailService(context.Background(), "us-east-1", "", "HindiPath", "http://localhost:5000", logger.Nop())
	if err != nil {
		t.Fatalf("NewEmailService() error = %v", err)
	}
	if svc.IsEnabled() {
		t.Error("service without a from address should be disabled")
	}
	if err := svc.SendWelcomeEmail(context.Background(), "asha@example.com", "asha"); err != nil {
		t.Errorf("disabled send returned %v", err)
	}
}

func TestSendWelcomeEmail(t *testing.T) {
	ses := &fakeSES{}
	svc := newEmailService(ses, "hello@hindipath.test", "HindiPath", "https://hindipath.test", logger.Nop())

	if err := svc.SendWelcomeEmail(context.Background(), "asha@example.com", "<asha>"); err != nil {
		t.Fatalf("SendWelcomeEmail() error = %v", err)
	}
	if len(ses.inputs) != 1 {
		t.Fatalf("sent %d emails, want 1", len(ses.inputs))
	}

	in := ses.inputs[0]
	if got := aws.ToString(in.FromEmailAddress); got != "HindiPath <hello@hindipath.test>" {
		t.Errorf("from = %q", got)
	}
	if len(in.Destination.ToAddresses) != 1 || in.Destination.ToAddresses[0] != "asha@example.com" {
		t.Errorf("to = %v", in.Destination.ToAddresses)
	}
	html := aws.ToString(in.Content.Simple.Body.Html.Data)
	if strings.Contains(html, "<asha>") || !strings.Contains(html, "&lt;asha&gt;") {
		t.Error("name should be escaped in the HTML body")
	}
	if !strings.Contains(html, "https://hindipath.test/app") {
		t.Error("HTML body should link to the app")
	}

	ses.err = errors.New("throttled")
	if err := svc.SendWelcomeEmail(context.Background(), "asha@example.com", "asha"); err == nil {
		t.Error("expected SES failure to be returned")
	}
}
