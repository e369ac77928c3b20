package event

import "encoding/json"

// Parse decodes a raw event payload as the most specific registered shape
// for the given dotted name. Candidates are tried most specific first; a
// decode failure or shape mismatch moves on to the next, looser one. The
// generic catch-all never fails, so Parse always returns an event.
func Parse(name string, data []byte, d *Derived) Event {
	for _, m := range Resolve(name) {
		ev := m.New()
		if err := json.Unmarshal(data, ev); err != nil {
			continue
		}
		if f, ok := ev.(filler); ok {
			if err := f.fill(d); err != nil {
				continue
			}
		}
		return ev
	}

	// Nothing registered for the name, not even the catch-all.
	ev := &Base{}
	_ = json.Unmarshal(data, ev)
	_ = ev.fill(d)
	return ev
}
