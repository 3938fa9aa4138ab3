package entity

import "ikedadada/go-onionoo/internal/domain/value_object"

// Directory is the ordered list of relays of one directory response.
// Order is the order received from the source.
type Directory struct {
	relays []*Relay
}

func NewDirectory(relays []*Relay) Directory {
	s := make([]*Relay, len(relays))
	copy(s, relays)
	return Directory{relays: s}
}

func (d Directory) Relays() []*Relay {
	out := make([]*Relay, len(d.relays))
	copy(out, d.relays)
	return out
}

func (d Directory) Len() int { return len(d.relays) }

// Filter returns the relays matching keep, preserving relative order.
func (d Directory) Filter(keep func(*Relay) bool) Directory {
	out := make([]*Relay, 0, len(d.relays))
	for _, r := range d.relays {
		if keep(r) {
			out = append(out, r)
		}
	}
	return Directory{relays: out}
}

func (d Directory) Entries() Directory { return d.Filter((*Relay).IsEntry) }
func (d Directory) Exits() Directory   { return d.Filter((*Relay).IsExit) }

func (d Directory) FindByFingerprint(fp value_object.Fingerprint) (*Relay, bool) {
	for _, r := range d.relays {
		if r.fingerprint.Equal(fp) {
			return r, true
		}
	}
	return nil, false
}
