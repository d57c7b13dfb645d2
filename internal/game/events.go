package game

import "fmt"

// EventType classifies a notification the core emits for the transport
// layer to deliver.
type EventType string

const (
	EventLevelUp     EventType = "level_up"
	EventPetLevelUp  EventType = "pet_level_up"
	EventAchievement EventType = "achievement"
	EventNewRecord   EventType = "new_record"
	EventRankChange  EventType = "rank_change"
)

// Event is one notification bound for a player.
type Event struct {
	Type     EventType
	PlayerID int64
	Message  string
}

// Notifier receives events from the core. The server layer delivers
// them; the core never blocks on delivery.
type Notifier interface {
	Notify(Event)
}

// NopNotifier discards events. Used when no transport is attached.
type NopNotifier struct{}

func (NopNotifier) Notify(Event) {}

func levelUpEvent(playerID int64, level int) Event {
	return Event{
		Type:     EventLevelUp,
		PlayerID: playerID,
		Message:  fmt.Sprintf("You reached level %d!", level),
	}
}

func petLevelUpEvent(playerID int64, name string, level int) Event {
	return Event{
		Type:     EventPetLevelUp,
		PlayerID: playerID,
		Message:  fmt.Sprintf("%s reached level %d!", name, level),
	}
}

func achievementEvent(playerID int64, name string) Event {
	return Event{
		Type:     EventAchievement,
		PlayerID: playerID,
		Message:  fmt.Sprintf("Achievement unlocked: %s", name),
	}
}

func recordEvent(playerID int64, dungeonName string) Event {
	return Event{
		Type:     EventNewRecord,
		PlayerID: playerID,
		Message:  fmt.Sprintf("New fastest clear of %s!", dungeonName),
	}
}

func rankChangeEvent(playerID int64, rank string) Event {
	return Event{
		Type:     EventRankChange,
		PlayerID: playerID,
		Message:  fmt.Sprintf("Arena rank: %s", rank),
	}
}
