package push

import "context"

type Sender interface {
	// SendToTopic broadcasts one push notification to every device
	// subscribed to the topic.
	SendToTopic(ctx context.Context, topic string, msg Message) error
}
