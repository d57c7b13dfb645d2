package game

import (
	"github.com/google/uuid"

	"github.com/batonquest/server/internal/pet"
)

// Training rolls.
const (
	trainStatGainMin = 1
	trainStatGainMax = 3
	trainExpMin      = 10
	trainExpMax      = 20
)

var trainableStats = []string{"damage", "defense", "health"}

// BuyPet purchases a new pet of the given species at its rarity price.
// The first pet a player owns becomes active automatically.
func (e *Engine) BuyPet(playerID int64, templateID, nickname string) (*pet.Owned, error) {
	p, err := e.loadPlayer(playerID)
	if err != nil {
		return nil, err
	}
	t, ok := e.content.Pets.Get(templateID)
	if !ok {
		return nil, Validationf("unknown pet species %q", templateID)
	}

	price := t.Price()
	if p.Batons < price {
		return nil, &InsufficientResourceError{Resource: "batons", Need: price, Have: p.Batons}
	}
	if err := p.SpendBatons(price); err != nil {
		return nil, err
	}

	o := pet.NewOwned(uuid.NewString(), playerID, templateID, e.clock.Now())
	o.Nickname = nickname
	if p.ActivePetID == "" {
		o.Active = true
		p.ActivePetID = o.ID
	}

	if err := e.store.SavePet(o); err != nil {
		return nil, err
	}
	if err := e.store.SavePlayer(p); err != nil {
		return nil, err
	}

	e.log.Info("pet purchased", "player", playerID, "species", templateID, "pet", o.ID)
	return o, nil
}

// SetActivePet switches which pet fights alongside the player.
func (e *Engine) SetActivePet(playerID int64, petID string) error {
	p, err := e.loadPlayer(playerID)
	if err != nil {
		return err
	}
	next, err := e.ownedPet(playerID, petID)
	if err != nil {
		return err
	}

	if p.ActivePetID != "" && p.ActivePetID != petID {
		if prev, err := e.store.GetPet(p.ActivePetID); err == nil {
			prev.Active = false
			if err := e.store.SavePet(prev); err != nil {
				return err
			}
		}
	}

	next.Active = true
	p.ActivePetID = next.ID
	if err := e.store.SavePet(next); err != nil {
		return err
	}
	return e.store.SavePlayer(p)
}

// FeedPet spends batons to reset hunger and lift happiness.
func (e *Engine) FeedPet(playerID int64, petID string) error {
	p, err := e.loadPlayer(playerID)
	if err != nil {
		return err
	}
	o, err := e.ownedPet(playerID, petID)
	if err != nil {
		return err
	}
	if p.Batons < pet.FeedCost {
		return &InsufficientResourceError{Resource: "batons", Need: pet.FeedCost, Have: p.Batons}
	}

	if err := p.SpendBatons(pet.FeedCost); err != nil {
		return err
	}
	o.UpdateStatus(e.clock.Now())
	o.Feed(e.clock.Now())

	if err := e.store.SavePet(o); err != nil {
		return err
	}
	return e.store.SavePlayer(p)
}

// TrainResult reports one training session.
type TrainResult struct {
	Stat       string
	StatGain   int
	Experience int
	LeveledUp  bool
}

// TrainPet spends batons on a session: a random stat gains a few
// points, halved when the pet is unhappy, and the pet earns experience.
func (e *Engine) TrainPet(playerID int64, petID string) (*TrainResult, error) {
	p, err := e.loadPlayer(playerID)
	if err != nil {
		return nil, err
	}
	o, err := e.ownedPet(playerID, petID)
	if err != nil {
		return nil, err
	}
	if p.Batons < pet.TrainCost {
		return nil, &InsufficientResourceError{Resource: "batons", Need: pet.TrainCost, Have: p.Batons}
	}

	if err := p.SpendBatons(pet.TrainCost); err != nil {
		return nil, err
	}
	o.UpdateStatus(e.clock.Now())

	result := &TrainResult{
		Stat:     trainableStats[e.rng.Intn(len(trainableStats))],
		StatGain: trainStatGainMin + e.rng.Intn(trainStatGainMax-trainStatGainMin+1),
	}
	if o.Happiness < pet.LowHappinessLine {
		result.StatGain /= 2
	}
	o.TrainedBonus[result.Stat] += result.StatGain

	result.Experience = trainExpMin + e.rng.Intn(trainExpMax-trainExpMin+1)
	if result.LeveledUp = o.AddExperience(result.Experience); result.LeveledUp {
		t, ok := e.content.Pets.Get(o.TemplateID)
		if ok {
			e.notifier.Notify(petLevelUpEvent(playerID, o.DisplayName(t), o.Level))
		}
	}

	if err := e.store.SavePet(o); err != nil {
		return nil, err
	}
	if err := e.store.SavePlayer(p); err != nil {
		return nil, err
	}

	e.log.Info("pet trained", "player", playerID, "pet", o.ID, "stat", result.Stat, "gain", result.StatGain)
	return result, nil
}

// EvolvePet advances a pet one evolution stage: level gate, baton cost.
func (e *Engine) EvolvePet(playerID int64, petID string) error {
	p, err := e.loadPlayer(playerID)
	if err != nil {
		return err
	}
	o, err := e.ownedPet(playerID, petID)
	if err != nil {
		return err
	}
	t, ok := e.content.Pets.Get(o.TemplateID)
	if !ok {
		return Validationf("pet %s references unknown species %s", o.ID, o.TemplateID)
	}

	if o.Evolution >= t.MaxEvolution {
		return Conflictf("%s is already at its final form", o.DisplayName(t))
	}
	if !o.CanEvolve(t) {
		return Validationf("%s needs level %d to evolve", o.DisplayName(t), o.EvolutionLevelRequired())
	}
	cost := o.EvolutionCost()
	if p.Batons < cost {
		return &InsufficientResourceError{Resource: "batons", Need: cost, Have: p.Batons}
	}

	if err := p.SpendBatons(cost); err != nil {
		return err
	}
	o.Evolve()

	if err := e.store.SavePet(o); err != nil {
		return err
	}
	if err := e.store.SavePlayer(p); err != nil {
		return err
	}

	e.log.Info("pet evolved", "player", playerID, "pet", o.ID, "stage", o.Evolution)
	return nil
}

// ownedPet loads a pet and checks ownership.
func (e *Engine) ownedPet(playerID int64, petID string) (*pet.Owned, error) {
	o, err := e.store.GetPet(petID)
	if err != nil {
		return nil, Validationf("unknown pet %q", petID)
	}
	if o.PlayerID != playerID {
		return nil, Validationf("pet %q is not yours", petID)
	}
	return o, nil
}
