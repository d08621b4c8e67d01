// Package processor turns the raw filing rows of one jurisdiction and cycle
// into a staged batch of civic entities. It has no side effects: writing the
// batch is up to the store.
package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/candidatos-info/civic-enrichers/civic"
	"github.com/candidatos-info/civic-enrichers/extract"
	"github.com/candidatos-info/civic-enrichers/filings"
	"github.com/candidatos-info/civic-enrichers/jurisdiction"
	"github.com/candidatos-info/civic-enrichers/logger"
	"github.com/candidatos-info/civic-enrichers/slugs"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
)

var (
	// ErrMissingOfficeName means no office rule recognized the office title.
	ErrMissingOfficeName = errors.New("office title yields no office name")

	// ErrMissingCandidate means the row carries no candidate name.
	ErrMissingCandidate = errors.New("filing has no candidate name")

	// ErrMissingQualifier means a county, city or special district office
	// lacks the county, municipality or district that sets it apart.
	ErrMissingQualifier = errors.New("office lacks the district it is elected in")
)

// RowError is a row that was skipped. The batch goes on without it.
type RowError struct {
	SourceRow   int
	OfficeTitle string
	Err         error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d [%s]: %v", e.SourceRow, e.OfficeTitle, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// RaceContext is what the caller knows about the contests of a filing file.
type RaceContext struct {
	Cycle        int
	RaceType     civic.RaceType
	ElectionDate time.Time // computed from the calendar rules when zero
}

func (rc RaceContext) validate() error {
	if rc.Cycle < 1900 {
		return fmt.Errorf("invalid election cycle [%d]", rc.Cycle)
	}
	if rc.RaceType != civic.RaceTypeGeneral && rc.RaceType != civic.RaceTypePrimary {
		return fmt.Errorf("invalid race type [%s]", rc.RaceType)
	}
	return nil
}

// Processor runs extraction and generation over filing rows.
type Processor struct {
	log     *logger.Logger
	workers int
}

// New returns a processor handling up to workers rows at a time. Zero or less
// means one worker per CPU.
func New(log *logger.Logger, workers int) *Processor {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Processor{log: log, workers: workers}
}

type rowResult struct {
	office      civic.StagedOffice
	party       *civic.StagedParty
	politician  civic.StagedPolitician
	race        civic.StagedRace
	candidacy   civic.StagedRaceCandidate
	ambiguities []string
	err         *RowError
}

// Process extracts every row concurrently and assembles the results in row
// order, so the batch is the same however the rows were scheduled. Rows
// that cannot be staged are returned as RowErrors; the error is reserved
// for an invalid race context and cancellation.
func (p *Processor) Process(ctx context.Context, j jurisdiction.Jurisdiction, rc RaceContext, rows []filings.RawFiling) (*civic.Batch, []*RowError, error) {
	if err := rc.validate(); err != nil {
		return nil, nil, err
	}
	key := civic.BatchKey{Jurisdiction: j.Code(), Cycle: rc.Cycle}
	election := stageElection(key, j, rc)

	results := make([]rowResult, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i := range rows {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = processRow(key, j, rc, election.Slug, rows[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("failed to process filings of [%s], error %w", key, err)
	}

	b := newAssembler(key)
	b.elections.put(election.Slug, election)
	var rowErrs []*RowError
	for _, r := range results {
		if r.err != nil {
			p.log.Warn("skipping filing row", "batch", key.String(), "row", r.err.SourceRow, "title", r.err.OfficeTitle, "error", r.err.Err.Error())
			rowErrs = append(rowErrs, r.err)
			continue
		}
		for _, note := range r.ambiguities {
			p.log.Debug("ambiguous filing field", "batch", key.String(), "row", r.office.SourceRow, "note", note)
		}
		b.add(r)
	}
	batch := b.batch()
	p.log.Info("processed filings", "batch", key.String(), "rows", len(rows), "skipped", len(rowErrs), "offices", len(batch.Offices), "races", len(batch.Races), "candidates", len(batch.RaceCandidates))
	return batch, rowErrs, nil
}

func stageElection(key civic.BatchKey, j jurisdiction.Jurisdiction, rc RaceContext) civic.StagedElection {
	var title, slug, state string
	date := rc.ElectionDate
	if rc.RaceType == civic.RaceTypePrimary {
		title, slug = slugs.PrimaryElection(j.Code(), rc.Cycle)
		state = j.Code()
		if date.IsZero() {
			date = j.PrimaryDate(rc.Cycle)
		}
	} else {
		title, slug = slugs.GeneralElection(rc.Cycle)
		if date.IsZero() {
			date = slugs.GeneralElectionDate(rc.Cycle)
		}
	}
	return civic.StagedElection{
		Staged:         civic.Staged{BatchKey: key},
		Slug:           slug,
		ElectionFields: civic.ElectionFields{Title: title, State: state, Date: date},
	}
}

func processRow(key civic.BatchKey, j jurisdiction.Jurisdiction, rc RaceContext, electionSlug string, f filings.RawFiling) rowResult {
	staged := civic.Staged{BatchKey: key, SourceRow: f.SourceRow}
	attrs := j.ExtractOffice(f)
	if !attrs.Known() {
		return rowResult{err: &RowError{SourceRow: f.SourceRow, OfficeTitle: f.OfficeTitle, Err: ErrMissingOfficeName}}
	}
	if !attrs.Qualified() {
		return rowResult{err: &RowError{SourceRow: f.SourceRow, OfficeTitle: f.OfficeTitle, Err: ErrMissingQualifier}}
	}
	name := extract.ParseName(f.CandidateName)
	fullName := name.Full()
	if fullName == "" {
		return rowResult{err: &RowError{SourceRow: f.SourceRow, OfficeTitle: f.OfficeTitle, Err: ErrMissingCandidate}}
	}
	raw := rawJSON(f.Raw)

	fields := attrs.OfficeFields
	var officeSlug string
	fields.Title, officeSlug = slugs.Office(fields)
	fields.Subtitle, fields.SubtitleShort = slugs.OfficeSubtitle(fields)
	r := rowResult{
		office:      civic.StagedOffice{Staged: staged, Slug: officeSlug, OfficeFields: fields, Raw: raw},
		ambiguities: attrs.Ambiguities,
	}

	var partySlug string
	if party, ok := j.ExtractParty(f.PartyCode); ok {
		partySlug = slugs.Party(party.Name)
		r.party = &civic.StagedParty{
			Staged:      staged,
			Slug:        partySlug,
			PartyFields: civic.PartyFields{Name: party.Name, Abbreviation: party.Abbreviation},
		}
	} else if f.PartyCode != "" {
		r.ambiguities = append(r.ambiguities, fmt.Sprintf("party %q not recognized", f.PartyCode))
	}

	politicianSlug, refKey := slugs.Politician(j.Source(), fullName)
	r.politician = civic.StagedPolitician{
		Staged: staged,
		Slug:   politicianSlug,
		PoliticianFields: civic.PoliticianFields{
			RefKey:        refKey,
			FirstName:     name.First,
			MiddleName:    name.Middle,
			LastName:      name.Last,
			Suffix:        name.Suffix,
			PreferredName: name.Preferred,
			FullName:      fullName,
			Email:         f.Email,
			Phone:         f.Phone,
			Website:       f.Website,
			AddressLine1:  f.AddressLine1,
			City:          f.City,
			HomeState:     f.State,
			PostalCode:    f.PostalCode,
		},
		PartySlug: partySlug,
		Raw:       raw,
	}

	q := j.Qualifiers(f)
	in := slugs.RaceInput{
		State:      fields.State,
		OfficeName: fields.Name,
		Qualifiers: slugs.OfficeQualifiers(fields),
		RaceType:   rc.RaceType,
		IsSpecial:  q.Special(),
		Year:       rc.Cycle,
	}
	var racePartySlug string
	if rc.RaceType == civic.RaceTypePrimary {
		in.PartyLabel = j.PrimaryPartyLabel(f.PartyCode)
		racePartySlug = partySlug
	}
	raceTitle, raceSlug := slugs.Race(in)
	r.race = civic.StagedRace{
		Staged: staged,
		Slug:   raceSlug,
		RaceFields: civic.RaceFields{
			Title:      raceTitle,
			RaceType:   rc.RaceType,
			State:      fields.State,
			IsSpecial:  q.Special(),
			NumElected: q.NumElected,
		},
		OfficeSlug:   officeSlug,
		ElectionSlug: electionSlug,
		PartySlug:    racePartySlug,
	}
	r.candidacy = civic.StagedRaceCandidate{
		Staged:         staged,
		RaceSlug:       raceSlug,
		PoliticianSlug: politicianSlug,
		RaceCandidateFields: civic.RaceCandidateFields{
			IsRunning:   !f.Withdrawn,
			FilingDate:  f.FilingDate,
			QualifyDate: f.QualifyDate,
			DropDate:    f.DropDate,
		},
	}
	return r
}

func rawJSON(v interface{}) datatypes.JSON {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}
