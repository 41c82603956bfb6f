package runtime

import (
	"sync"

	"github.com/google/uuid"
)

type EntryKind string

const (
	EntryMessage   EntryKind = "message"
	EntryActionBar EntryKind = "action_bar"
	EntryTitle     EntryKind = "title"
	EntryDamage    EntryKind = "damage"
	EntryEffect    EntryKind = "effect"
	EntryCue       EntryKind = "cue"
)

type Entry struct {
	ID      string    `json:"id"`
	Time    int64     `json:"time"`
	Kind    EntryKind `json:"kind"`
	AgentID string    `json:"agent_id,omitempty"`
	Text    string    `json:"text"`
}

// Journal keeps the most recent effects the engine pushed to the host.
type Journal struct {
	mu      sync.Mutex
	size    int
	entries []Entry
}

func NewJournal(size int) *Journal {
	if size <= 0 {
		size = 256
	}
	return &Journal{size: size}
}

func (j *Journal) Add(at int64, kind EntryKind, agentID, text string) Entry {
	e := Entry{ID: uuid.NewString(), Time: at, Kind: kind, AgentID: agentID, Text: text}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, e)
	if over := len(j.entries) - j.size; over > 0 {
		j.entries = append(j.entries[:0:0], j.entries[over:]...)
	}
	return e
}

// Entries returns a copy, oldest first.
func (j *Journal) Entries() []Entry {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]Entry(nil), j.entries...)
}

// Filter returns the entries of one kind for one agent.
func (j *Journal) Filter(kind EntryKind, agentID string) []Entry {
	j.mu.Lock()
	defer j.mu.Unlock()
	var out []Entry
	for _, e := range j.entries {
		if e.Kind == kind && (agentID == "" || e.AgentID == agentID) {
			out = append(out, e)
		}
	}
	return out
}
