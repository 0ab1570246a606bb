package sms

import (
	"fmt"

	"github.com/RASHMI-2005/hospital-management-system/server/models"
	"github.com/RASHMI-2005/hospital-management-system/shared"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// ClientWrapper sends emergency alerts to the configured on-call
// number. In test mode no request leaves the process.
type ClientWrapper struct {
	client   *twilio.RestClient
	config   shared.TwilioConfig
	testMode bool
}

func NewClient(config shared.TwilioConfig, testMode bool) *ClientWrapper {
	client := twilio.NewRestClientWithParams(twilio.RestClientParams{
		Username: config.AccountSid,
		Password: config.AuthToken,
	})

	return &ClientWrapper{client: client, config: config, testMode: testMode}
}

// SendEmergencyAlert notifies the on-call number about a newly filed
// high priority case.
func (cw *ClientWrapper) SendEmergencyAlert(emergencyCase *models.EmergencyCase) error {
	msg := fmt.Sprintf(
		"Emergency case #%v: %v (%v priority). Reason: %v. Assigned: %v",
		emergencyCase.ID,
		emergencyCase.PatientName,
		emergencyCase.Priority,
		valueOrNone(emergencyCase.EmergencyReason),
		valueOrNone(emergencyCase.AssignedDoctor),
	)

	return cw.sendMessage(cw.config.AlertPhoneNumber, msg)
}

func (cw *ClientWrapper) sendMessage(to, msg string) error {
	if cw.testMode {
		return nil
	}

	params := &openapi.CreateMessageParams{}
	params.SetMessagingServiceSid(cw.config.MessagingServiceSid)
	params.SetTo(to)
	params.SetBody(msg)

	_, err := cw.client.ApiV2010.CreateMessage(params)
	return err
}

func valueOrNone(value string) string {
	if value == "" {
		return "none"
	}
	return value
}
