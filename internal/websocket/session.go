package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/dom/league-skinset-finder/internal/catalog"
	"github.com/dom/league-skinset-finder/internal/domain"
	"github.com/dom/league-skinset-finder/internal/roster"
	"github.com/dom/league-skinset-finder/internal/service"
)

// Session is the live state behind one connection. Run is the only goroutine
// that touches the roster, so edits are applied one at a time in the order
// they arrive and every reply reflects the state after the edit.
type Session struct {
	client  *Client
	catalog *catalog.Catalog
	resolve *service.ResolveService
	roster  *roster.Roster

	requests chan *Message
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
	ctx      context.Context
	cancel   context.CancelFunc
}

func newSession(client *Client, resolve *service.ResolveService, r *roster.Roster) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		client:   client,
		catalog:  r.Catalog(),
		resolve:  resolve,
		roster:   r,
		requests: make(chan *Message),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Run sends the initial state and then applies requests until stopped.
func (s *Session) Run() {
	defer close(s.done)

	s.sync()
	for {
		select {
		case <-s.stop:
			return
		case msg := <-s.requests:
			s.handle(msg)
		}
	}
}

// Submit queues a client message. It returns false once the session is gone.
func (s *Session) Submit(msg *Message) bool {
	select {
	case s.requests <- msg:
		return true
	case <-s.done:
		return false
	}
}

// Stop cancels any running resolve and waits for Run to return.
func (s *Session) Stop() {
	s.cancel()
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
}

func (s *Session) handle(msg *Message) {
	switch msg.Type {
	case MessageTypeSyncState:

	case MessageTypeAddPlayer:
		s.roster.AddPlayer()

	case MessageTypeRemovePlayer:
		var p PlayerIndexPayload
		if !s.decode(msg, &p) || !s.checkPlayer(p.Index) {
			return
		}
		s.roster.RemovePlayer(p.Index)

	case MessageTypeSetName:
		var p SetNamePayload
		if !s.decode(msg, &p) || !s.checkPlayer(p.Index) {
			return
		}
		s.roster.SetName(p.Index, p.Name)

	case MessageTypeUpsertChampion:
		var p UpsertChampionPayload
		if !s.decode(msg, &p) || !s.checkPlayer(p.Index) {
			return
		}
		id, ok := s.lookupChampion(p.Champion)
		if !ok {
			return
		}
		lanes, err := domain.ParseLaneSet(p.Lanes)
		if err != nil {
			s.client.sendError(ErrCodeInvalidLane, err.Error())
			return
		}
		s.roster.UpsertChampion(p.Index, id, lanes)

	case MessageTypeToggleLane:
		var p ToggleLanePayload
		if !s.decode(msg, &p) || !s.checkPlayer(p.Index) {
			return
		}
		id, ok := s.lookupChampion(p.Champion)
		if !ok {
			return
		}
		lane, err := domain.ParseLane(p.Lane)
		if err != nil {
			s.client.sendError(ErrCodeInvalidLane, err.Error())
			return
		}
		if s.roster.Player(p.Index).IndexOf(id) < 0 {
			s.client.sendError(ErrCodeChampionNotChosen, fmt.Sprintf("%s is not selected by player %d", p.Champion, p.Index+1))
			return
		}
		s.roster.ToggleLane(p.Index, id, lane)

	case MessageTypeRemoveChampion:
		var p ChampionPayload
		if !s.decode(msg, &p) || !s.checkPlayer(p.Index) {
			return
		}
		id, ok := s.lookupChampion(p.Champion)
		if !ok {
			return
		}
		s.roster.RemoveChampion(p.Index, id)

	case MessageTypeToggleSkinset:
		var p SkinsetPayload
		if !s.decode(msg, &p) {
			return
		}
		id, ok := s.catalog.SkinsetByName(p.Skinset)
		if !ok {
			s.client.sendError(ErrCodeUnknownSkinset, fmt.Sprintf("Unknown skinset %q", p.Skinset))
			return
		}
		s.roster.ToggleSkinset(id)

	case MessageTypeExcludeAll:
		s.roster.ExcludeAll()

	case MessageTypeIncludeAll:
		s.roster.IncludeAll()

	case MessageTypeLoadRoster:
		var p LoadRosterPayload
		if !s.decode(msg, &p) {
			return
		}
		r, err := s.resolve.BuildRoster(p.Roster)
		if err != nil {
			s.client.sendError(rosterErrorCode(err), err.Error())
			return
		}
		s.roster = r

	default:
		s.client.sendError(ErrCodeUnknownMessage, fmt.Sprintf("Unknown message type %q", msg.Type))
		return
	}

	s.sync()
}

func (s *Session) decode(msg *Message, v interface{}) bool {
	if err := json.Unmarshal(msg.Payload, v); err != nil {
		s.client.sendError(ErrCodeInvalidPayload, fmt.Sprintf("Invalid %s payload", msg.Type))
		return false
	}
	return true
}

func (s *Session) checkPlayer(index int) bool {
	if !s.roster.HasPlayer(index) {
		s.client.sendError(ErrCodeInvalidPlayer, fmt.Sprintf("No player at index %d", index))
		return false
	}
	return true
}

func (s *Session) lookupChampion(name string) (domain.ChampionID, bool) {
	id, ok := s.catalog.ChampionByName(name)
	if !ok {
		s.client.sendError(ErrCodeUnknownChampion, fmt.Sprintf("Unknown champion %q", name))
	}
	return id, ok
}

// sync sends the roster followed by its results.
func (s *Session) sync() {
	players := s.roster.Players()
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.DisplayName(i)
	}

	state, err := NewMessage(MessageTypeStateSync, StateSyncPayload{
		SessionID:   s.client.ID().String(),
		Roster:      service.SpecFromRoster(s.roster),
		PlayerNames: names,
		CanAdd:      len(players) < domain.MaxPlayers,
		CanRemove:   len(players) > 1,
	})
	if err != nil {
		log.Printf("ERROR [Session.sync] client=%s: %v", s.client.ID(), err)
		return
	}
	s.client.Send(state)

	resp, err := s.resolve.ResolveRoster(s.ctx, s.roster)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Printf("ERROR [Session.sync] resolve client=%s: %v", s.client.ID(), err)
			s.client.sendError(ErrCodeResolveFailed, "Could not compute results")
		}
		return
	}

	results, err := NewMessage(MessageTypeResults, resp)
	if err != nil {
		log.Printf("ERROR [Session.sync] client=%s: %v", s.client.ID(), err)
		return
	}
	s.client.Send(results)
}

func rosterErrorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnknownChampion):
		return ErrCodeUnknownChampion
	case errors.Is(err, domain.ErrUnknownSkinset):
		return ErrCodeUnknownSkinset
	case errors.Is(err, domain.ErrInvalidLane):
		return ErrCodeInvalidLane
	default:
		return ErrCodeInvalidRoster
	}
}
