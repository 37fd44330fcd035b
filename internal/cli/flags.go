package cli

import "ptx/internal/config"

// Flags holds command-line flags
type Flags struct {
	Line       int
	Select     string
	Debug      bool
	JSON       bool
	ScanPath   string
	NameFilter string
	NoPoetry   bool
	Workers    int
	Verbose    bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Line:       f.Line,
		Select:     f.Select,
		Debug:      f.Debug,
		JSON:       f.JSON,
		ScanPath:   f.ScanPath,
		NameFilter: f.NameFilter,
		NoPoetry:   f.NoPoetry,
	}
}
