package model

import (
	"bytes"

	json "github.com/goccy/go-json"
)

const (
	SectionMonth1      = "Month 1"
	SectionMonth6      = "Month 6"
	SectionMonth12     = "Month 12 (CPT Eligibility)"
	SectionPreOPT      = "Pre-OPT Window"
	SectionPolicySteps = "Policy-Triggered Steps"
)

// SectionOrder is the fixed order of checklist sections.
var SectionOrder = []string{
	SectionMonth1,
	SectionMonth6,
	SectionMonth12,
	SectionPreOPT,
	SectionPolicySteps,
}

type Section struct {
	Name  string
	Items []string
}

// Checklist maps the fixed section names to action items. It serializes as a JSON
// object whose keys keep SectionOrder.
type Checklist struct {
	sections []Section
}

func NewChecklist() *Checklist {
	c := &Checklist{sections: make([]Section, len(SectionOrder))}
	for i, name := range SectionOrder {
		c.sections[i] = Section{Name: name, Items: []string{}}
	}
	return c
}

// Add appends an item to the named section. Unknown section names are ignored.
func (c *Checklist) Add(section, item string) {
	for i := range c.sections {
		if c.sections[i].Name == section {
			c.sections[i].Items = append(c.sections[i].Items, item)
			return
		}
	}
}

// Items returns a copy of the named section's items.
func (c *Checklist) Items(section string) []string {
	for _, s := range c.sections {
		if s.Name == section {
			out := make([]string, len(s.Items))
			copy(out, s.Items)
			return out
		}
	}
	return nil
}

func (c *Checklist) Sections() []Section {
	out := make([]Section, len(c.sections))
	for i, s := range c.sections {
		items := make([]string, len(s.Items))
		copy(items, s.Items)
		out[i] = Section{Name: s.Name, Items: items}
	}
	return out
}

func (c Checklist) MarshalJSON() ([]byte, error) {
	sections := c.sections
	if sections == nil {
		sections = NewChecklist().sections
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range sections {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(s.Name)
		if err != nil {
			return nil, err
		}
		items := s.Items
		if items == nil {
			items = []string{}
		}
		val, err := json.Marshal(items)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON rebuilds the fixed sections from an exported checklist; keys outside
// SectionOrder are dropped.
func (c *Checklist) UnmarshalJSON(data []byte) error {
	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	fresh := NewChecklist()
	for i := range fresh.sections {
		if items, ok := raw[fresh.sections[i].Name]; ok && items != nil {
			fresh.sections[i].Items = items
		}
	}
	c.sections = fresh.sections
	return nil
}
