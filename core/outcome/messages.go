package outcome

import "fmt"

// Messages maps every outcome to the text narrated for it.
type Messages struct {
	text [count]string
}

// DefaultMessages returns the compiled-in message table.
func DefaultMessages() Messages {
	var m Messages
	for i, d := range definitions {
		m.text[i] = d.message
	}
	return m
}

// With returns a copy of the table with messages replaced by outcome name.
// Unknown names and empty messages are rejected.
func (m Messages) With(overrides map[string]string) (Messages, error) {
	out := m
	for name, text := range overrides {
		o, err := Parse(name)
		if err != nil {
			return Messages{}, err
		}
		if text == "" {
			return Messages{}, fmt.Errorf("empty message for outcome %q", o)
		}
		out.text[o] = text
	}
	return out, nil
}

// Text returns the message of an outcome.
func (m Messages) Text(o Outcome) string {
	if !o.Valid() {
		return o.String()
	}
	if m.text[o] == "" {
		return definitions[o].message
	}
	return m.text[o]
}
