package domain

import "strings"

// Email is an inbound message as received by the API.
type Email struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// Text is the string that gets classified: subject and body joined by a
// single space.
func (e Email) Text() string {
	return strings.TrimSpace(e.Subject + " " + e.Body)
}

// Empty reports whether there is nothing to classify.
func (e Email) Empty() bool {
	return strings.TrimSpace(e.Subject) == "" && strings.TrimSpace(e.Body) == ""
}
