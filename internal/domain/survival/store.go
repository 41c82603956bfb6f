package survival

import (
	"sort"
	"sync"
)

// Store owns every agent's survival State. Reads of unknown agents return
// DefaultState; the first mutation creates the record. All writers go
// through read-modify-write helpers so clamping cannot be bypassed.
type Store struct {
	mu     sync.Mutex
	states map[string]*State
}

func NewStore() *Store {
	return &Store{states: make(map[string]*State)}
}

func (s *Store) Has(agentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.states[agentID]
	return ok
}

// Ensure creates the default record for agentID if it does not exist yet.
func (s *Store) Ensure(agentID string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locked(agentID).clone()
}

func (s *Store) Get(agentID string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.states[agentID]; ok {
		return st.clone()
	}
	return DefaultState()
}

// Update applies fn to the agent's record under the store lock and clamps
// the result.
func (s *Store) Update(agentID string, fn func(*State)) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.locked(agentID)
	fn(st)
	*st = st.clamped()
	return st.clone()
}

func (s *Store) Remove(agentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, agentID)
}

func (s *Store) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.states))
	for id := range s.states {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (s *Store) All() map[string]State {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]State, len(s.states))
	for id, st := range s.states {
		out[id] = st.clone()
	}
	return out
}

// Restore replaces the table, clamping every incoming record.
func (s *Store) Restore(states map[string]State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states = make(map[string]*State, len(states))
	for id, st := range states {
		c := st.clone().clamped()
		s.states[id] = &c
	}
}

func (s *Store) locked(agentID string) *State {
	st, ok := s.states[agentID]
	if !ok {
		d := DefaultState()
		st = &d
		s.states[agentID] = st
	}
	return st
}

func (s *Store) Thirst(agentID string) float64 {
	return s.Get(agentID).Thirst
}

func (s *Store) SetThirst(agentID string, v float64) float64 {
	return s.Update(agentID, func(st *State) { st.Thirst = v }).Thirst
}

func (s *Store) AddThirst(agentID string, delta float64) float64 {
	return s.Update(agentID, func(st *State) { st.Thirst += delta }).Thirst
}

func (s *Store) ResetThirst(agentID string) {
	s.SetThirst(agentID, MaxThirst)
}

func (s *Store) BodyTemp(agentID string) float64 {
	return s.Get(agentID).BodyTemp
}

func (s *Store) SetBodyTemp(agentID string, v float64) float64 {
	return s.Update(agentID, func(st *State) { st.BodyTemp = v }).BodyTemp
}

// RegulateBodyTemp moves body temperature toward target by rate.
func (s *Store) RegulateBodyTemp(agentID string, target, rate float64) float64 {
	return s.Update(agentID, func(st *State) {
		st.BodyTemp = SmoothBodyTemp(st.BodyTemp, target, rate)
	}).BodyTemp
}

func (s *Store) Wetness(agentID string) float64 {
	return s.Get(agentID).Wetness
}

func (s *Store) SetWetness(agentID string, v float64) float64 {
	return s.Update(agentID, func(st *State) { st.Wetness = v }).Wetness
}

// UpdateWetness advances wetness one step with NextWetness.
func (s *Store) UpdateWetness(agentID string, in WetnessInput) float64 {
	return s.Update(agentID, func(st *State) {
		st.Wetness = NextWetness(st.Wetness, in)
	}).Wetness
}

func (s *Store) Stamina(agentID string) float64 {
	return s.Get(agentID).Stamina
}

func (s *Store) SetStamina(agentID string, v float64) float64 {
	return s.Update(agentID, func(st *State) { st.Stamina = v }).Stamina
}

func (s *Store) AddStamina(agentID string, delta float64) float64 {
	return s.Update(agentID, func(st *State) { st.Stamina += delta }).Stamina
}

func (s *Store) BleedingTicks(agentID string) int {
	return s.Get(agentID).BleedingTicks
}

func (s *Store) AddBleeding(agentID string, ticks int) int {
	return s.Update(agentID, func(st *State) { st.BleedingTicks += ticks }).BleedingTicks
}

// TickBleeding consumes one bleeding tick and reports whether the agent was
// bleeding before the call.
func (s *Store) TickBleeding(agentID string) bool {
	was := false
	s.Update(agentID, func(st *State) {
		if st.BleedingTicks > 0 {
			was = true
			st.BleedingTicks--
		}
	})
	return was
}

// StopBleeding clears bleeding and reports whether there was any.
func (s *Store) StopBleeding(agentID string) bool {
	had := false
	s.Update(agentID, func(st *State) {
		had = st.BleedingTicks > 0
		st.BleedingTicks = 0
	})
	return had
}

func (s *Store) BrokenLeg(agentID string) bool {
	return s.Get(agentID).BrokenLeg
}

// SetBrokenLeg stores v and returns the previous value.
func (s *Store) SetBrokenLeg(agentID string, v bool) bool {
	prev := false
	s.Update(agentID, func(st *State) {
		prev = st.BrokenLeg
		st.BrokenLeg = v
	})
	return prev
}

// RecordFood counts prior occurrences of kind in the diet window, then
// appends kind and evicts the oldest entry beyond DietHistorySize.
func (s *Store) RecordFood(agentID string, kind FoodKind) int {
	count := 0
	s.Update(agentID, func(st *State) {
		for _, k := range st.DietHistory {
			if k == kind {
				count++
			}
		}
		st.DietHistory = append(st.DietHistory, kind)
	})
	return count
}
