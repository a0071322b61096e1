package entity

// MessageKind labels an outgoing email for logs and metrics.
type MessageKind string

const (
	MessageKindVerification  MessageKind = "verification"
	MessageKindPasswordReset MessageKind = "password_reset"
	MessageKindCancellation  MessageKind = "cancellation"
	MessageKindUpdate        MessageKind = "update"
	MessageKindReminder      MessageKind = "reminder"
)

// Message is one rendered email addressed to one recipient.
type Message struct {
	Kind    MessageKind
	To      string
	Subject string
	HTML    string
}

// DeliveryResult is the outcome of sending one Message.
type DeliveryResult struct {
	To  string
	Err error
}

// DeliveryReport collects per-recipient outcomes of a fan-out.
type DeliveryReport struct {
	Results []DeliveryResult
}

func (r DeliveryReport) Total() int {
	return len(r.Results)
}

func (r DeliveryReport) Sent() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

func (r DeliveryReport) Failed() int {
	return r.Total() - r.Sent()
}
