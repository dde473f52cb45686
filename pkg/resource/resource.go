// Package resource tracks fungible quantities. A resource is just a thing you
// can have some number of; the count is the only information kept about it.
package resource

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind identifies a fungible resource.
type Kind string

const (
	Cash     Kind = "cash"
	Bottle   Kind = "bottle"
	Paper    Kind = "paper"
	Pencil   Kind = "pencil"
	Envelope Kind = "envelope"
)

// All lists every resource kind in display order.
var All = []Kind{Cash, Bottle, Paper, Pencil, Envelope}

// Collectable lists the resources that the collect action can turn up.
var Collectable = []Kind{Bottle, Paper, Pencil}

var titleCaser = cases.Title(language.English)

// Valid reports whether k is a known resource kind.
func (k Kind) Valid() bool {
	for _, known := range All {
		if k == known {
			return true
		}
	}
	return false
}

// Label returns the display name of the resource, e.g. "Paper".
func (k Kind) Label() string {
	return titleCaser.String(string(k))
}

// Ledger holds a non-negative counter per resource kind.
type Ledger struct {
	counts map[Kind]int
}

// NewLedger returns a ledger with every resource at zero.
func NewLedger() *Ledger {
	l := &Ledger{counts: make(map[Kind]int, len(All))}
	for _, k := range All {
		l.counts[k] = 0
	}
	return l
}

// Get returns the current count of k.
func (l *Ledger) Get(k Kind) int {
	return l.counts[k]
}

// Set replaces the count of k.
func (l *Ledger) Set(k Kind, n int) error {
	if n < 0 {
		return fmt.Errorf("resource %s cannot be negative (%d)", k, n)
	}
	if !k.Valid() {
		return fmt.Errorf("unknown resource %q", k)
	}
	l.counts[k] = n
	return nil
}

// Adjust adds delta to the count of k. The count never goes below zero;
// an adjustment that would make it negative is rejected and nothing changes.
func (l *Ledger) Adjust(k Kind, delta int) error {
	return l.Set(k, l.counts[k]+delta)
}

// Has reports whether at least n units of k are available.
func (l *Ledger) Has(k Kind, n int) bool {
	return l.counts[k] >= n
}

// Snapshot returns a copy of all counters.
func (l *Ledger) Snapshot() map[Kind]int {
	out := make(map[Kind]int, len(l.counts))
	for k, v := range l.counts {
		out[k] = v
	}
	return out
}
