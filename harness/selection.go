package harness

// Selection names the families and/or source files a Runner restricts
// execution to. An empty Selection selects everything.
type Selection struct {
	Families []string
	Sources  []string
}

func (s Selection) empty() bool {
	return len(s.Families) == 0 && len(s.Sources) == 0
}

// matches reports whether f should run under s, and marks which
// selection entries (if any) were responsible, via the exercised map.
func (s Selection) matches(f *Family, exercised map[string]bool) bool {
	if s.empty() {
		return true
	}
	matched := false
	for _, name := range s.Families {
		if name == f.Name {
			exercised["family:"+name] = true
			matched = true
		}
	}
	for _, src := range s.Sources {
		for _, t := range f.Tests {
			if t.Source == src {
				exercised["source:"+src] = true
				matched = true
			}
		}
	}
	return matched
}

// unmatched returns the selection entries that were never exercised,
// for the Runner to warn about at the end of a run.
func (s Selection) unmatched(exercised map[string]bool) []string {
	var out []string
	for _, name := range s.Families {
		if !exercised["family:"+name] {
			out = append(out, "family:"+name)
		}
	}
	for _, src := range s.Sources {
		if !exercised["source:"+src] {
			out = append(out, "source:"+src)
		}
	}
	return out
}
