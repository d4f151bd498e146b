package eda

import "fmt"

// Representation selects the vector encoding the distribution is learned
// over and sampled from.
type Representation int

const (
	ReprPermutation Representation = iota
	ReprInversion
	ReprRim
)

func (r Representation) String() string {
	switch r {
	case ReprPermutation:
		return "permutation"
	case ReprInversion:
		return "inversion"
	case ReprRim:
		return "rim"
	default:
		return fmt.Sprintf("Representation(%d)", int(r))
	}
}

// ParseRepresentation maps a name to a Representation.
func ParseRepresentation(s string) (Representation, error) {
	switch s {
	case "permutation", "permu":
		return ReprPermutation, nil
	case "inversion":
		return ReprInversion, nil
	case "rim":
		return ReprRim, nil
	default:
		return 0, fmt.Errorf("unknown representation %q", s)
	}
}

type Config struct {
	Population     int
	Generations    int
	Elite          int
	Truncation     float64 // fraction of best individuals the model is learned from
	Representation Representation
}

func (c Config) Validate() error {
	if c.Population <= 1 {
		return fmt.Errorf("population size must be > 1 (got %d)", c.Population)
	}
	if c.Generations <= 0 {
		return fmt.Errorf("generation count must be > 0 (got %d)", c.Generations)
	}
	if c.Elite < 0 || c.Elite >= c.Population {
		return fmt.Errorf("elite count must be in [0, population) (got %d)", c.Elite)
	}
	if c.Truncation <= 0 || c.Truncation > 1 {
		return fmt.Errorf("truncation fraction must be in (0,1] (got %f)", c.Truncation)
	}
	switch c.Representation {
	case ReprPermutation, ReprInversion, ReprRim:
	default:
		return fmt.Errorf("unknown representation %d", int(c.Representation))
	}
	return nil
}

func DefaultConfig() Config {
	return Config{
		Population:     100,
		Generations:    250,
		Elite:          2,
		Truncation:     0.5,
		Representation: ReprInversion,
	}
}
