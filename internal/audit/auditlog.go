// Package audit keeps a hash-chained, in-process trail of admin mutations.
// It is advisory: entries do not survive a restart.
package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

type Entry struct {
	TS     int64  `json:"ts"`
	Actor  string `json:"actor"`  // user id from the session claims
	Action string `json:"action"` // e.g. "project.create"
	Detail string `json:"detail,omitempty"`
	Hash   string `json:"hash"`
}

type Log struct {
	mu       sync.Mutex
	lastHash []byte
	entries  []Entry
}

func New() *Log { return &Log{} }

// Record appends an entry whose hash chains over the previous one.
func (l *Log) Record(actor, action, detail string) Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	h := sha256.New()
	h.Write(l.lastHash)
	h.Write([]byte(actor))
	h.Write([]byte(action))
	h.Write([]byte(detail))
	sum := h.Sum(nil)
	l.lastHash = sum

	e := Entry{
		TS:     time.Now().Unix(),
		Actor:  actor,
		Action: action,
		Detail: detail,
		Hash:   hex.EncodeToString(sum),
	}
	l.entries = append(l.entries, e)
	return e
}

// Verify walks the chain and reports the first break, if any.
func (l *Log) Verify() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var prev []byte
	for i, e := range l.entries {
		h := sha256.New()
		h.Write(prev)
		h.Write([]byte(e.Actor))
		h.Write([]byte(e.Action))
		h.Write([]byte(e.Detail))
		sum := h.Sum(nil)
		if hex.EncodeToString(sum) != e.Hash {
			return fmt.Errorf("audit chain broken at entry %d", i)
		}
		prev = sum
	}
	return nil
}

func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Entry(nil), l.entries...)
}
