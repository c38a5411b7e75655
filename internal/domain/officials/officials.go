package officials

import "strings"

// State is the reference record for one U.S. state.
type State struct {
	Name         string
	Abbreviation string
	Capital      string
	Governor     string
	Senators     [2]string
}

// States returns all 50 states in alphabetical order.
func States() []State {
	out := make([]State, len(states))
	copy(out, states)
	return out
}

// LookupState matches input against state abbreviations and names,
// ignoring case and surrounding whitespace. Territories and D.C. are
// not states and never match.
func LookupState(input string) (State, bool) {
	key := strings.ToUpper(strings.TrimSpace(input))
	if key == "" {
		return State{}, false
	}
	for _, s := range states {
		if s.Abbreviation == key || strings.ToUpper(s.Name) == key {
			return s, true
		}
	}
	return State{}, false
}

// Office identifies a federal office whose holder appears in the bank.
type Office string

const (
	President     Office = "president"
	VicePresident Office = "vice_president"
	Speaker       Office = "speaker"
	ChiefJustice  Office = "chief_justice"
)

// Officeholder is the current holder of an office plus the spellings
// accepted as correct.
type Officeholder struct {
	Name    string   `mapstructure:"name" yaml:"name"`
	Aliases []string `mapstructure:"aliases" yaml:"aliases"`
}

// Accepted returns Name followed by every alias, case-insensitively deduplicated.
func (o Officeholder) Accepted() []string {
	return dedupeFold(append([]string{o.Name}, o.Aliases...))
}

// Federal holds the federal officeholders used by dynamic questions. It is
// loaded from configuration so it can change without a release.
type Federal struct {
	President      Officeholder `mapstructure:"president" yaml:"president"`
	VicePresident  Officeholder `mapstructure:"vice_president" yaml:"vice_president"`
	Speaker        Officeholder `mapstructure:"speaker" yaml:"speaker"`
	ChiefJustice   Officeholder `mapstructure:"chief_justice" yaml:"chief_justice"`
	DistractorPool []string     `mapstructure:"distractor_pool" yaml:"distractor_pool"`
	LastUpdated    string       `mapstructure:"last_updated" yaml:"last_updated"`
}

// DefaultFederal returns the officeholders as of January 2025.
func DefaultFederal() Federal {
	return Federal{
		President: Officeholder{
			Name:    "Donald J. Trump",
			Aliases: []string{"Donald Trump", "Donald J. Trump", "Trump"},
		},
		VicePresident: Officeholder{
			Name:    "JD Vance",
			Aliases: []string{"JD Vance", "Vance", "J.D. Vance"},
		},
		Speaker: Officeholder{
			Name:    "Mike Johnson",
			Aliases: []string{"Mike Johnson"},
		},
		ChiefJustice: Officeholder{
			Name:    "John G. Roberts, Jr.",
			Aliases: []string{"John Roberts", "Roberts", "John G. Roberts, Jr."},
		},
		DistractorPool: []string{
			"JD Vance",
			"Mike Johnson",
			"Donald J. Trump",
			"Marco Rubio",
			"John G. Roberts, Jr.",
		},
		LastUpdated: "January 2025",
	}
}

// Holder returns the officeholder for o.
func (f Federal) Holder(o Office) (Officeholder, bool) {
	switch o {
	case President:
		return f.President, true
	case VicePresident:
		return f.VicePresident, true
	case Speaker:
		return f.Speaker, true
	case ChiefJustice:
		return f.ChiefJustice, true
	}
	return Officeholder{}, false
}

// Custom holds user-entered officials that take precedence over the state
// record. Empty fields fall back to the reference data.
type Custom struct {
	Governor       string `json:"governor,omitempty"`
	Senator1       string `json:"senator1,omitempty"`
	Senator2       string `json:"senator2,omitempty"`
	Representative string `json:"representative,omitempty"`
}

// Senators returns the non-empty custom senators in order.
func (c *Custom) Senators() []string {
	if c == nil {
		return nil
	}
	var out []string
	for _, s := range []string{c.Senator1, c.Senator2} {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// GovernorOverride returns the custom governor, if any.
func (c *Custom) GovernorOverride() (string, bool) {
	if c == nil {
		return "", false
	}
	g := strings.TrimSpace(c.Governor)
	return g, g != ""
}

// RepresentativeOverride returns the custom representative, if any.
func (c *Custom) RepresentativeOverride() (string, bool) {
	if c == nil {
		return "", false
	}
	r := strings.TrimSpace(c.Representative)
	return r, r != ""
}

func dedupeFold(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		k := strings.ToLower(strings.TrimSpace(s))
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, s)
	}
	return out
}
