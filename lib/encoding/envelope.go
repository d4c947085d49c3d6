package encoding

// EventType identifies a wire envelope. The set is closed: both sides of the
// bridge agree on these strings, and anything else is version skew.
type EventType string

// Inbound control events (host → surface).
const (
	EventShowComponent      EventType = "showComponent"
	EventHideComponent      EventType = "hideComponent"
	EventUpdateComponentData EventType = "updateComponentData"
)

// Outbound events (surface → host).
const (
	EventFollowButtonClicked  EventType = "followButtonClicked"
	EventBuyNowButtonClicked  EventType = "buyNowButtonClicked"
	EventExploreButtonClicked EventType = "exploreButtonClicked"
	EventRewardBadgeClicked   EventType = "rewardBadgeClicked"
	EventComponentShown       EventType = "componentShown"
	EventComponentHidden      EventType = "componentHidden"
	EventWebViewReady         EventType = "webViewReady"
)

// Envelope is the wire unit exchanged across the host/surface boundary.
//
// Data carries the event-specific structure as a loose map. Unknown fields
// inside Data survive a decode/encode round trip untouched - the protocol
// tolerates version skew on both sides, so extra fields are never fatal.
type Envelope struct {
	Type EventType      `json:"type" msgpack:"type"`
	Data map[string]any `json:"data,omitempty" msgpack:"data,omitempty"`
}

// inboundControl marks the event types that require a data object and are
// accepted as host commands. All other known types flow outward only.
var inboundControl = map[EventType]bool{
	EventShowComponent:       true,
	EventHideComponent:       true,
	EventUpdateComponentData: true,
}

var knownTypes = map[EventType]bool{
	EventShowComponent:        true,
	EventHideComponent:        true,
	EventUpdateComponentData:  true,
	EventFollowButtonClicked:  true,
	EventBuyNowButtonClicked:  true,
	EventExploreButtonClicked: true,
	EventRewardBadgeClicked:   true,
	EventComponentShown:       true,
	EventComponentHidden:      true,
	EventWebViewReady:         true,
}

// KnownType reports whether t belongs to the closed protocol set.
func KnownType(t EventType) bool {
	return knownTypes[t]
}

// InboundControl reports whether t is a host command the surface acts on.
func InboundControl(t EventType) bool {
	return inboundControl[t]
}
