// Package combat implements the round-based battle simulator. One
// parameterized resolver covers monster fights, duels and dungeon rooms;
// an optional companion hook lets an active pet act between the
// attacker's strike and the defender's counter.
package combat

// MaxRounds caps a battle; reaching it with both sides alive is a draw.
const MaxRounds = 20

// RNG supplies the random draws a battle needs. *rand.Rand satisfies it;
// tests inject fixed sequences for deterministic replay.
type RNG interface {
	Float64() float64
	Intn(n int) int
}

// StatBlock is a side's resolved combat stats. Blocks are produced by the
// stat aggregator (players), monster templates, or pet stats; the
// simulator treats all of them identically.
type StatBlock struct {
	Name           string
	Health         int
	MaxHealth      int
	Damage         int
	Defense        float64
	CriticalChance float64 // percent
	DodgeChance    float64 // percent
}

// Alive reports whether the side still has health left.
func (s *StatBlock) Alive() bool {
	return s.Health > 0
}

// Side identifies who won an encounter.
type Side int

const (
	SideNone Side = iota // draw: round cap reached with both alive
	SideAttacker
	SideDefender
)

// String returns the string representation of a Side
func (s Side) String() string {
	switch s {
	case SideAttacker:
		return "attacker"
	case SideDefender:
		return "defender"
	default:
		return "none"
	}
}

// Outcome is the result of a resolved encounter.
type Outcome struct {
	Winner     Side
	AttackerHP int
	DefenderHP int
	Rounds     int
	Log        []Event
}

// IsDraw reports whether the encounter ended at the round cap with both
// sides alive. Draws settle with no rewards.
func (o Outcome) IsDraw() bool {
	return o.Winner == SideNone
}

// CompanionAction is a single companion ability use.
type CompanionAction struct {
	Name   string
	Damage int // applied to the defender
	Heal   int // applied to the attacker, capped at max health
}

// Companion is the hook for an active pet fighting alongside the
// attacker. Act returns nil when every ability is on cooldown;
// TickCooldowns runs once per round regardless.
type Companion interface {
	Act(rng RNG) *CompanionAction
	TickCooldowns()
}

// Options tune a single resolution.
type Options struct {
	MaxRounds int       // 0 means MaxRounds
	Companion Companion // optional
}

// Resolve runs a round-based battle between two stat blocks until one
// side drops to zero health or the round cap is hit. Each round the
// attacker strikes, the companion may act, then the defender counters if
// still alive. Identical inputs and RNG state reproduce the identical
// outcome and log.
//
// Victory requires ending the loop with health above zero: a side at
// exactly zero never wins, so an attacker who somehow reaches zero in the
// same round as the defender loses.
func Resolve(attacker, defender StatBlock, rng RNG, opts Options) Outcome {
	maxRounds := opts.MaxRounds
	if maxRounds <= 0 {
		maxRounds = MaxRounds
	}

	var log []Event
	rounds := 0

	for attacker.Alive() && defender.Alive() && rounds < maxRounds {
		log = append(log, strike(&attacker, &defender, rng)...)

		if opts.Companion != nil && defender.Alive() {
			if action := opts.Companion.Act(rng); action != nil {
				log = append(log, applyCompanion(action, &attacker, &defender)...)
			}
		}

		if defender.Alive() {
			log = append(log, strike(&defender, &attacker, rng)...)
		}

		if opts.Companion != nil {
			opts.Companion.TickCooldowns()
		}

		rounds++
	}

	return Outcome{
		Winner:     winner(&attacker, &defender),
		AttackerHP: attacker.Health,
		DefenderHP: defender.Health,
		Rounds:     rounds,
		Log:        log,
	}
}

// strike resolves one attack from actor against target and returns the
// logged events.
func strike(actor, target *StatBlock, rng RNG) []Event {
	damage := actor.Damage - int(target.Defense)/2
	if damage < 1 {
		damage = 1
	}

	kind := EventHit
	if rng.Float64() < actor.CriticalChance/100 {
		damage *= 2
		kind = EventCrit
	}

	// A dodge fully evades the attack; no partial damage.
	if rng.Float64() < target.DodgeChance/100 {
		return []Event{{Kind: EventDodge, Actor: target.Name}}
	}

	target.Health -= damage
	return []Event{{Kind: kind, Actor: actor.Name, Amount: damage}}
}

// applyCompanion applies a companion ability to the battle state.
func applyCompanion(action *CompanionAction, attacker, defender *StatBlock) []Event {
	var events []Event

	if action.Damage > 0 {
		defender.Health -= action.Damage
		events = append(events, Event{Kind: EventCompanionDamage, Actor: action.Name, Amount: action.Damage})
	}
	if action.Heal > 0 {
		healed := action.Heal
		if attacker.Health+healed > attacker.MaxHealth {
			healed = attacker.MaxHealth - attacker.Health
		}
		if healed > 0 {
			attacker.Health += healed
			events = append(events, Event{Kind: EventCompanionHeal, Actor: action.Name, Amount: healed})
		}
	}

	return events
}

// winner picks the side left standing, or SideNone on a draw.
func winner(attacker, defender *StatBlock) Side {
	switch {
	case attacker.Alive() && defender.Alive():
		return SideNone
	case attacker.Alive():
		return SideAttacker
	case defender.Alive():
		return SideDefender
	default:
		// Both at or below zero: the attacker's victory check fails.
		return SideDefender
	}
}
