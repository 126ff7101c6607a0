package notification

import (
	"context"
	"fmt"
)

type ConsoleNotifier struct {
}

func NewConsoleNotifier() ConsoleNotifier {
	return ConsoleNotifier{}
}

func (c ConsoleNotifier) Notify(ctx context.Context, event Event) error {
	ch := ""
	if event.Change != nil {
		ch = fmt.Sprintf(" (%+.2f%% 24h)", *event.Change)
	}
	fmt.Printf("condition met: #%d %s/%s %s %v, current price %.8f%s\n",
		event.SubscriptionId, event.Base, event.Quote, event.Operator, event.Threshold, event.Price, ch)
	return nil
}
