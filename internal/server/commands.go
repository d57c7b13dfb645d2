package server

import (
	"encoding/json"
	"errors"

	"github.com/batonquest/server/internal/database"
	"github.com/batonquest/server/internal/game"
)

// dispatch executes one command and builds its response frame.
func (s *Server) dispatch(sess *session, req *Request) Response {
	data, err := s.execute(sess, req)
	resp := Response{
		Type:    "response",
		ID:      req.ID,
		Command: req.Command,
	}
	if err != nil {
		resp.Error = &ErrorInfo{Code: errorCode(err), Message: err.Error()}
		return resp
	}
	resp.OK = true
	resp.Data = data
	return resp
}

func (s *Server) execute(sess *session, req *Request) (any, error) {
	switch req.Command {
	case "register":
		return s.register(sess, req.Params)
	case "login":
		return s.login(sess, req.Params)
	}

	playerID := sess.boundPlayer()
	if playerID == 0 {
		return nil, game.Validationf("log in first")
	}

	// A duel touches two players and resolves the opponent before
	// locking; everything else holds the caller's lock. A player's
	// sessions share one lock, so same-player commands never interleave
	// inside an engine operation.
	if req.Command == "duel" {
		return s.duel(playerID, req.Params)
	}

	defer s.lockPlayers(playerID)()

	switch req.Command {
	case "profile":
		return s.engine.Profile(playerID)

	case "fight":
		var p struct {
			Monster string `json:"monster"`
		}
		if err := decodeParams(req.Params, &p); err != nil {
			return nil, err
		}
		return s.engine.Fight(playerID, p.Monster)

	case "enter_dungeon":
		var p struct {
			Dungeon string `json:"dungeon"`
		}
		if err := decodeParams(req.Params, &p); err != nil {
			return nil, err
		}
		return s.engine.EnterDungeon(playerID, p.Dungeon)

	case "advance_room":
		return s.engine.AdvanceRoom(playerID)

	case "abandon_run":
		return nil, s.engine.AbandonRun(playerID)

	case "craft":
		var p struct {
			Recipe string `json:"recipe"`
		}
		if err := decodeParams(req.Params, &p); err != nil {
			return nil, err
		}
		return s.engine.Craft(playerID, p.Recipe)

	case "equip":
		var p struct {
			Item string `json:"item"`
		}
		if err := decodeParams(req.Params, &p); err != nil {
			return nil, err
		}
		return nil, s.engine.EquipItem(playerID, p.Item)

	case "unequip":
		var p struct {
			Slot string `json:"slot"`
		}
		if err := decodeParams(req.Params, &p); err != nil {
			return nil, err
		}
		return nil, s.engine.UnequipItem(playerID, p.Slot)

	case "pets":
		return s.engine.ListPets(playerID)

	case "buy_pet":
		var p struct {
			Species  string `json:"species"`
			Nickname string `json:"nickname"`
		}
		if err := decodeParams(req.Params, &p); err != nil {
			return nil, err
		}
		return s.engine.BuyPet(playerID, p.Species, p.Nickname)

	case "set_active_pet":
		var p struct {
			Pet string `json:"pet"`
		}
		if err := decodeParams(req.Params, &p); err != nil {
			return nil, err
		}
		return nil, s.engine.SetActivePet(playerID, p.Pet)

	case "feed_pet":
		var p struct {
			Pet string `json:"pet"`
		}
		if err := decodeParams(req.Params, &p); err != nil {
			return nil, err
		}
		return nil, s.engine.FeedPet(playerID, p.Pet)

	case "train_pet":
		var p struct {
			Pet string `json:"pet"`
		}
		if err := decodeParams(req.Params, &p); err != nil {
			return nil, err
		}
		return s.engine.TrainPet(playerID, p.Pet)

	case "evolve_pet":
		var p struct {
			Pet string `json:"pet"`
		}
		if err := decodeParams(req.Params, &p); err != nil {
			return nil, err
		}
		return nil, s.engine.EvolvePet(playerID, p.Pet)

	case "quests":
		return s.engine.DailyBoard(playerID)

	case "attempt_quest":
		var p struct {
			Quest string `json:"quest"`
		}
		if err := decodeParams(req.Params, &p); err != nil {
			return nil, err
		}
		return s.engine.AttemptQuest(playerID, p.Quest)

	default:
		return nil, game.Validationf("unknown command %q", req.Command)
	}
}

func (s *Server) duel(playerID int64, params json.RawMessage) (any, error) {
	var p struct {
		Opponent string `json:"opponent"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	opponent, err := s.accounts.GetPlayerByName(p.Opponent)
	if err != nil {
		if errors.Is(err, database.ErrPlayerNotFound) {
			return nil, game.Validationf("no player named %q", p.Opponent)
		}
		return nil, err
	}

	defer s.lockPlayers(playerID, opponent.ID)()
	return s.engine.Duel(playerID, opponent.ID)
}

func (s *Server) register(sess *session, params json.RawMessage) (any, error) {
	var p struct {
		Name string `json:"name"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	created, err := s.accounts.CreatePlayer(p.Name, s.clock.Now())
	if err != nil {
		if errors.Is(err, database.ErrPlayerExists) {
			return nil, game.Conflictf("name %q is taken", p.Name)
		}
		return nil, err
	}

	sess.bind(created.ID)
	s.log.Info("player registered", "player", created.ID, "name", created.Name)

	defer s.lockPlayers(created.ID)()
	return s.engine.Profile(created.ID)
}

func (s *Server) login(sess *session, params json.RawMessage) (any, error) {
	var p struct {
		Name string `json:"name"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	found, err := s.accounts.GetPlayerByName(p.Name)
	if err != nil {
		if errors.Is(err, database.ErrPlayerNotFound) {
			return nil, game.Validationf("no player named %q", p.Name)
		}
		return nil, err
	}

	sess.bind(found.ID)
	s.log.Info("player logged in", "player", found.ID, "name", found.Name)

	defer s.lockPlayers(found.ID)()
	return s.engine.Profile(found.ID)
}

func decodeParams(raw json.RawMessage, into any) error {
	if len(raw) == 0 {
		return game.Validationf("missing command parameters")
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return game.Validationf("bad command parameters: %v", err)
	}
	return nil
}

// errorCode maps the engine's error taxonomy onto wire codes.
func errorCode(err error) string {
	switch {
	case game.IsValidation(err):
		return "validation"
	case game.IsInsufficientResource(err):
		return "insufficient"
	case game.IsStateConflict(err):
		return "conflict"
	default:
		return "internal"
	}
}
