package processor

import "github.com/candidatos-info/civic-enrichers/civic"

// unique keeps one item per key in first-seen order; a later put replaces
// the item but keeps its position.
type unique[T any] struct {
	index map[string]int
	items []T
}

func newUnique[T any]() *unique[T] {
	return &unique[T]{index: make(map[string]int)}
}

func (u *unique[T]) put(key string, item T) {
	if i, ok := u.index[key]; ok {
		u.items[i] = item
		return
	}
	u.index[key] = len(u.items)
	u.items = append(u.items, item)
}

type assembler struct {
	key        civic.BatchKey
	parties    *unique[civic.StagedParty]
	offices    *unique[civic.StagedOffice]
	people     *unique[civic.StagedPolitician]
	elections  *unique[civic.StagedElection]
	races      *unique[civic.StagedRace]
	candidates *unique[civic.StagedRaceCandidate]
}

func newAssembler(key civic.BatchKey) *assembler {
	return &assembler{
		key:        key,
		parties:    newUnique[civic.StagedParty](),
		offices:    newUnique[civic.StagedOffice](),
		people:     newUnique[civic.StagedPolitician](),
		elections:  newUnique[civic.StagedElection](),
		races:      newUnique[civic.StagedRace](),
		candidates: newUnique[civic.StagedRaceCandidate](),
	}
}

func (a *assembler) add(r rowResult) {
	if r.party != nil {
		a.parties.put(r.party.Slug, *r.party)
	}
	a.offices.put(r.office.Slug, r.office)
	a.people.put(r.politician.Slug, r.politician)
	a.races.put(r.race.Slug, r.race)
	a.candidates.put(r.candidacy.RaceSlug+"\x00"+r.candidacy.PoliticianSlug, r.candidacy)
}

func (a *assembler) batch() *civic.Batch {
	return &civic.Batch{
		Key:            a.key,
		Parties:        a.parties.items,
		Offices:        a.offices.items,
		Politicians:    a.people.items,
		Elections:      a.elections.items,
		Races:          a.races.items,
		RaceCandidates: a.candidates.items,
	}
}
