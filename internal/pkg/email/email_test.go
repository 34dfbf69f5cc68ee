package email

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSendFeeReminderWithoutCredentials(t *testing.T) {
	service := NewEmailService(SMTPConfig{
		FromName:  "TailorWise",
		FromEmail: "no-reply@tailorwise.local",
	}, zerolog.Nop())

	// Development mode: no credentials means the mail is logged, not sent
	err := service.SendFeeReminder("student@example.com", "Ayesha Siddiqui", "Your fee of 2500 is overdue.")
	assert.NoError(t, err)
}

func TestSendCredentialsEmailWithoutCredentials(t *testing.T) {
	service := NewEmailService(SMTPConfig{
		FromName:  "TailorWise",
		FromEmail: "no-reply@tailorwise.local",
	}, zerolog.Nop())

	err := service.SendCredentialsEmail("student@example.com", "Ayesha Siddiqui", "asiddiqui", "Temp1234")
	assert.NoError(t, err)
}
