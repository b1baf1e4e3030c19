package gamedata

import "fmt"

// ValidateParts splits a catalog into usable parts and human readable
// issues for the entries that were dropped.
func ValidateParts(parts []Part) (valid []Part, issues []string) {
	seen := make(map[int]bool, len(parts))
	valid = make([]Part, 0, len(parts))

	for _, p := range parts {
		if p.ID <= 0 {
			issues = append(issues, fmt.Sprintf("%s: invalid id %d, ids start at 1", p.Name, p.ID))
			continue
		}
		if seen[p.ID] {
			issues = append(issues, fmt.Sprintf("%s: duplicate id %d", p.Name, p.ID))
			continue
		}
		if !p.Type.Valid() {
			issues = append(issues, fmt.Sprintf("%s: invalid part type %q", p.Name, p.Type))
			continue
		}
		if r := p.Stats.Range; r != nil && r.Min() > r.Max() {
			issues = append(issues, fmt.Sprintf("%s: invalid 'range' stat: min range (%d) is greater than max range (%d)",
				p.Name, r.Min(), r.Max()))
			continue
		}
		if err := checkSpans(&p); err != nil {
			issues = append(issues, fmt.Sprintf("%s: %v", p.Name, err))
			continue
		}

		seen[p.ID] = true
		valid = append(valid, p)
	}

	return valid, issues
}

func checkSpans(p *Part) error {
	spans := map[string]*Span{
		"phyDmg": p.Stats.PhysicalDmg,
		"expDmg": p.Stats.ExplosiveDmg,
		"eleDmg": p.Stats.ElectricDmg,
	}
	for key, s := range spans {
		if s != nil && s.Min() > s.Max() {
			return fmt.Errorf("invalid '%s' stat: min (%d) is greater than max (%d)", key, s.Min(), s.Max())
		}
	}
	return nil
}
