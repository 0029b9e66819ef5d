package pipeline

import (
	"github.com/roach88/sift/internal/stage"
	"github.com/roach88/sift/internal/table"
)

// StandardStages builds the standard ordering:
// format, dedup, gender, complaints, one replace per configured column in
// configuration order, then the configured casts.
//
// Deduplication runs on the raw (formatted) rows, so two rows that only
// become identical after gender normalization stay distinct.
func StandardStages(c *Config) []stage.Stage {
	stages := []stage.Stage{
		stage.Format{Renames: c.ColumnRenames},
		stage.Dedup{},
		stage.NormalizeGender{Column: c.genderColumn()},
		stage.ExtractComplaintMonth{Column: c.complaintsColumn()},
	}
	for _, r := range c.Replacements {
		stages = append(stages, stage.Replace{Column: r.Column, Pairs: r.Pairs})
	}
	for _, cast := range c.Casts {
		stages = append(stages, stage.Cast{Column: cast.Column, To: cast.Type})
	}
	return stages
}

// DedupLastStages builds the late-dedup ordering:
// format, gender, then for each numeric-replacement column a replace
// followed by a float cast, and finally dedup.
//
// Because dedup runs last, rows that differ only in raw spelling ("Male"
// vs "M", "1,000" vs "1000") collapse into one - the orderings are not
// equivalent.
func DedupLastStages(c *Config) []stage.Stage {
	stages := []stage.Stage{
		stage.Format{Renames: c.ColumnRenames},
		stage.NormalizeGender{Column: c.genderColumn()},
	}
	for _, r := range c.NumericReplacements {
		stages = append(stages,
			stage.Replace{Column: r.Column, Pairs: r.Pairs},
			stage.Cast{Column: r.Column, To: table.TypeFloat},
		)
	}
	stages = append(stages, stage.Dedup{})
	return stages
}
