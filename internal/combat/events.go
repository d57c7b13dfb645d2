package combat

import "fmt"

// EventKind classifies a single combat log entry.
type EventKind int

const (
	EventHit EventKind = iota
	EventCrit
	EventDodge
	EventCompanionDamage
	EventCompanionHeal
)

// String returns the string representation of an EventKind
func (k EventKind) String() string {
	switch k {
	case EventHit:
		return "hit"
	case EventCrit:
		return "crit"
	case EventDodge:
		return "dodge"
	case EventCompanionDamage:
		return "companion_damage"
	case EventCompanionHeal:
		return "companion_heal"
	default:
		return "unknown"
	}
}

// Event is one entry in the ordered combat log. The rendering layer
// formats events for players; the engine never parses them back.
type Event struct {
	Kind   EventKind
	Actor  string
	Amount int
}

// String returns a human-readable description of the event
func (e Event) String() string {
	switch e.Kind {
	case EventCrit:
		return fmt.Sprintf("Critical hit! %s deals %d damage", e.Actor, e.Amount)
	case EventDodge:
		return fmt.Sprintf("%s dodges the attack", e.Actor)
	case EventCompanionDamage:
		return fmt.Sprintf("%s strikes for %d damage", e.Actor, e.Amount)
	case EventCompanionHeal:
		return fmt.Sprintf("%s restores %d health", e.Actor, e.Amount)
	default:
		return fmt.Sprintf("%s deals %d damage", e.Actor, e.Amount)
	}
}
