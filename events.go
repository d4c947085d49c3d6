package ovlkit

import "fmt"

// User-interaction events the presentation layer raises. The controller
// re-emits them outward unmodified beyond a shape check - it does not
// interpret click payloads, it only preserves the closed type set.
var userEventTypes = map[EventType]bool{
	EventFollowButtonClicked:  true,
	EventBuyNowButtonClicked:  true,
	EventExploreButtonClicked: true,
	EventRewardBadgeClicked:   true,
}

// EmitUserEvent re-emits a user-interaction event to the host.
//
// The presentation layer must route every click through here rather than
// emitting ad hoc structures: only the closed set of click event types is
// accepted (ErrUnknownEventType otherwise), and a nil data map is sent as an
// empty object so the wire shape stays {type, data}.
func (c *Controller) EmitUserEvent(t EventType, data map[string]any) error {
	if !userEventTypes[t] {
		return fmt.Errorf("%w: %q is not a user event", ErrUnknownEventType, t)
	}
	if data == nil {
		data = map[string]any{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.emitLocked(Envelope{Type: t, Data: data})
	return nil
}

// EmitFollowClicked reports a tap on the brand follow button.
func (c *Controller) EmitFollowClicked(brandName string) error {
	return c.EmitUserEvent(EventFollowButtonClicked, map[string]any{"brandName": brandName})
}

// EmitBuyNowClicked reports a tap on the item card's buy button.
func (c *Controller) EmitBuyNowClicked(productID string) error {
	return c.EmitUserEvent(EventBuyNowButtonClicked, map[string]any{"productId": productID})
}

// EmitExploreClicked reports a tap on the pinned explore button.
func (c *Controller) EmitExploreClicked() error {
	return c.EmitUserEvent(EventExploreButtonClicked, nil)
}

// EmitRewardClicked reports a tap on the reward badge.
func (c *Controller) EmitRewardClicked(points string) error {
	return c.EmitUserEvent(EventRewardBadgeClicked, map[string]any{"points": points})
}
