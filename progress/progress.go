package progress

// Record is the persisted unlock and best-score state.
type Record struct {
	Level        int `json:"level"`
	BestCrystals int `json:"bestCrystals"`
}

// Fresh reports whether the record holds no progress at all.
func (r Record) Fresh() bool {
	return r.Level == 0 && r.BestCrystals == 0
}

func (r Record) valid() bool {
	return r.Level >= 0 && r.BestCrystals >= 0
}

// Complete merges a finished level into the record. Replaying an earlier level
// never lowers the unlocked index; the final level stays the highest unlock.
func (r Record) Complete(index, lastIndex, lifetimeCrystals int) Record {
	if index >= r.Level {
		unlock := index
		if index < lastIndex {
			unlock = index + 1
		}
		r.Level = max(r.Level, min(lastIndex, unlock))
	}
	r.BestCrystals = max(r.BestCrystals, lifetimeCrystals)
	return r
}

// Store is the load/save contract the simulation uses. Load never fails; a
// missing or malformed record reads as the zero Record.
type Store interface {
	Load() Record
	Save(Record) error
}
