package notify

import "log"

// Message is a rendered notification addressed to a customer.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a rendered message. The log sender stands in until a real
// mail/SMS transport is configured.
type Sender interface {
	Send(msg Message) error
}

type LogSender struct{}

func (LogSender) Send(msg Message) error {
	log.Printf("notify %s: %s", msg.To, msg.Subject)
	return nil
}

// Notifier dispatches notifications asynchronously; a full queue drops the
// message rather than blocking a request.
type Notifier struct {
	sender Sender
	queue  chan Message
}

func NewNotifier(sender Sender) *Notifier {
	n := &Notifier{
		sender: sender,
		queue:  make(chan Message, 100),
	}

	go n.worker()
	return n
}

func (n *Notifier) worker() {
	for msg := range n.queue {
		if err := n.sender.Send(msg); err != nil {
			log.Println("notify error:", err)
		}
	}
}

func (n *Notifier) Dispatch(templateID, to, customer, service, date, timeOfDay string) {
	subject, body := Render(templateID, customer, service, date, timeOfDay)

	select {
	case n.queue <- Message{To: to, Subject: subject, Body: body}:
	default:
		log.Println("notify queue full, dropping message")
	}
}
