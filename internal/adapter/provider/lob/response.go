package lob

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/heartmarshall/credit-disputer/internal/domain"
)

type address struct {
	Name         string `json:"name"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"address_city"`
	State        string `json:"address_state"`
	Zip          string `json:"address_zip"`
	Country      string `json:"address_country"`
}

type letterRequest struct {
	Description string  `json:"description"`
	To          address `json:"to"`
	From        address `json:"from"`
	File        string  `json:"file"`
	Color       bool    `json:"color"`
	UseType     string  `json:"use_type"`
}

type trackingEvent struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Time string `json:"time"`
}

type letterResponse struct {
	ID             string          `json:"id"`
	Deleted        bool            `json:"deleted"`
	TrackingEvents []trackingEvent `json:"tracking_events"`
}

type apiError struct {
	Error struct {
		Message    string `json:"message"`
		StatusCode int    `json:"status_code"`
	} `json:"error"`
}

func toAddress(a domain.MailingAddress) address {
	return address{
		Name:         a.Name,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		Zip:          a.ZipCode,
		Country:      "US",
	}
}

func newLetterRequest(req domain.MailRequest) letterRequest {
	return letterRequest{
		Description: req.Description,
		To:          toAddress(req.To),
		From:        toAddress(req.From),
		File:        renderHTML(req.Body),
		Color:       false,
		UseType:     "operational",
	}
}

// renderHTML wraps the plain-text letter in the minimal HTML document Lob
// prints from.
func renderHTML(body string) string {
	return `<html><body style="font-family: Times, serif; font-size: 12pt; margin: 0.75in;">` +
		`<pre style="white-space: pre-wrap; font-family: inherit;">` +
		html.EscapeString(body) +
		`</pre></body></html>`
}

// carrierStatus maps the most recent tracking event to a carrier status.
func (l letterResponse) carrierStatus() domain.CarrierStatus {
	if l.Deleted {
		return domain.CarrierStatusFailed
	}
	if len(l.TrackingEvents) == 0 {
		return domain.CarrierStatusUnknown
	}
	return eventStatus(l.TrackingEvents[len(l.TrackingEvents)-1].Name)
}

func eventStatus(name string) domain.CarrierStatus {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mailed", "in transit", "in local area", "processed for delivery", "re-routed":
		return domain.CarrierStatusInTransit
	case "delivered":
		return domain.CarrierStatusDelivered
	case "returned to sender":
		return domain.CarrierStatusReturned
	case "failed":
		return domain.CarrierStatusFailed
	default:
		return domain.CarrierStatusUnknown
	}
}

func apiErrorMessage(status int, body []byte) string {
	var e apiError
	if err := json.Unmarshal(body, &e); err == nil && e.Error.Message != "" {
		return fmt.Sprintf("status %d: %s", status, e.Error.Message)
	}
	return fmt.Sprintf("unexpected status %d", status)
}
