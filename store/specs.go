package store

import (
	"fmt"
	"strings"

	"github.com/candidatos-info/civic-enrichers/civic"
	"github.com/google/uuid"
)

var partySpec = entitySpec[civic.StagedParty, civic.Party]{
	entity:   "party",
	columns:  []string{"Name", "Abbreviation"},
	slug:     func(s *civic.StagedParty) string { return s.Slug },
	prodSlug: func(p *civic.Party) string { return p.Slug },
	build: func(s *civic.StagedParty) (civic.Party, error) {
		return civic.Party{Slug: s.Slug, PartyFields: s.PartyFields}, nil
	},
	base: func(p *civic.Party) *civic.Base { return &p.Base },
	same: func(prod, next *civic.Party) bool { return prod.PartyFields == next.PartyFields },
	conflict: func(prod, next *civic.Party) *ConflictError {
		return differ("name", prod.Name, next.Name)
	},
}

var officeSpec = entitySpec[civic.StagedOffice, civic.Office]{
	entity: "office",
	columns: []string{
		"Title", "Name", "Subtitle", "SubtitleShort", "OfficeType", "Chamber",
		"PoliticalScope", "ElectionScope", "State", "County", "DistrictType",
		"District", "Seat", "SchoolDistrict", "HospitalDistrict", "Municipality",
	},
	slug:     func(s *civic.StagedOffice) string { return s.Slug },
	prodSlug: func(o *civic.Office) string { return o.Slug },
	build: func(s *civic.StagedOffice) (civic.Office, error) {
		return civic.Office{Slug: s.Slug, OfficeFields: s.OfficeFields}, nil
	},
	base: func(o *civic.Office) *civic.Base { return &o.Base },
	same: func(prod, next *civic.Office) bool { return prod.OfficeFields == next.OfficeFields },
	conflict: func(prod, next *civic.Office) *ConflictError {
		return firstDiffer(
			differ("name", prod.Name, next.Name),
			differ("state", prod.State, next.State),
			differ("election_scope", string(prod.ElectionScope), string(next.ElectionScope)),
			differ("district_type", string(prod.DistrictType), string(next.DistrictType)),
		)
	},
}

func politicianSpec(parties map[string]uuid.UUID) entitySpec[civic.StagedPolitician, civic.Politician] {
	return entitySpec[civic.StagedPolitician, civic.Politician]{
		entity: "politician",
		columns: []string{
			"RefKey", "FirstName", "MiddleName", "LastName", "Suffix", "PreferredName",
			"FullName", "Email", "Phone", "Website", "AddressLine1", "City",
			"HomeState", "PostalCode", "PartyID",
		},
		slug:     func(s *civic.StagedPolitician) string { return s.Slug },
		prodSlug: func(p *civic.Politician) string { return p.Slug },
		build: func(s *civic.StagedPolitician) (civic.Politician, error) {
			partyID, err := optionalID(parties, "party", s.PartySlug)
			if err != nil {
				return civic.Politician{}, err
			}
			return civic.Politician{Slug: s.Slug, PoliticianFields: s.PoliticianFields, PartyID: partyID}, nil
		},
		base: func(p *civic.Politician) *civic.Base { return &p.Base },
		same: func(prod, next *civic.Politician) bool {
			return prod.PoliticianFields == next.PoliticianFields && sameID(prod.PartyID, next.PartyID)
		},
		conflict: func(prod, next *civic.Politician) *ConflictError {
			return firstDiffer(
				differ("ref_key", prod.RefKey, next.RefKey),
				differ("full_name", strings.ToLower(prod.FullName), strings.ToLower(next.FullName)),
			)
		},
	}
}

var electionSpec = entitySpec[civic.StagedElection, civic.Election]{
	entity:   "election",
	columns:  []string{"Title", "State", "Date"},
	slug:     func(s *civic.StagedElection) string { return s.Slug },
	prodSlug: func(e *civic.Election) string { return e.Slug },
	build: func(s *civic.StagedElection) (civic.Election, error) {
		return civic.Election{Slug: s.Slug, ElectionFields: s.ElectionFields}, nil
	},
	base: func(e *civic.Election) *civic.Base { return &e.Base },
	same: func(prod, next *civic.Election) bool { return prod.ElectionFields.Equal(next.ElectionFields) },
	conflict: func(prod, next *civic.Election) *ConflictError {
		const day = "2006-01-02"
		return differ("date", prod.Date.UTC().Format(day), next.Date.UTC().Format(day))
	},
}

func raceSpec(offices, elections, parties map[string]uuid.UUID) entitySpec[civic.StagedRace, civic.Race] {
	return entitySpec[civic.StagedRace, civic.Race]{
		entity:   "race",
		columns:  []string{"Title", "RaceType", "State", "IsSpecial", "NumElected", "OfficeID", "ElectionID", "PartyID"},
		slug:     func(s *civic.StagedRace) string { return s.Slug },
		prodSlug: func(r *civic.Race) string { return r.Slug },
		build: func(s *civic.StagedRace) (civic.Race, error) {
			officeID, ok := offices[s.OfficeSlug]
			if !ok {
				return civic.Race{}, fmt.Errorf("unknown office [%s]: %w", s.OfficeSlug, ErrUnresolved)
			}
			electionID, ok := elections[s.ElectionSlug]
			if !ok {
				return civic.Race{}, fmt.Errorf("unknown election [%s]: %w", s.ElectionSlug, ErrUnresolved)
			}
			partyID, err := optionalID(parties, "party", s.PartySlug)
			if err != nil {
				return civic.Race{}, err
			}
			return civic.Race{
				Slug:       s.Slug,
				RaceFields: s.RaceFields,
				OfficeID:   officeID,
				ElectionID: electionID,
				PartyID:    partyID,
			}, nil
		},
		base: func(r *civic.Race) *civic.Base { return &r.Base },
		same: func(prod, next *civic.Race) bool {
			return prod.RaceFields == next.RaceFields &&
				prod.OfficeID == next.OfficeID &&
				prod.ElectionID == next.ElectionID &&
				sameID(prod.PartyID, next.PartyID)
		},
		conflict: func(prod, next *civic.Race) *ConflictError {
			return firstDiffer(
				differ("office_id", prod.OfficeID.String(), next.OfficeID.String()),
				differ("election_id", prod.ElectionID.String(), next.ElectionID.String()),
				differ("race_type", string(prod.RaceType), string(next.RaceType)),
			)
		},
	}
}

func differ(field, prod, staged string) *ConflictError {
	if prod == staged {
		return nil
	}
	return &ConflictError{Field: field, Production: prod, Staged: staged}
}

func firstDiffer(conflicts ...*ConflictError) *ConflictError {
	for _, c := range conflicts {
		if c != nil {
			return c
		}
	}
	return nil
}

func optionalID(ids map[string]uuid.UUID, entity, slug string) (*uuid.UUID, error) {
	if slug == "" {
		return nil, nil
	}
	id, ok := ids[slug]
	if !ok {
		return nil, fmt.Errorf("unknown %s [%s]: %w", entity, slug, ErrUnresolved)
	}
	return &id, nil
}

func sameID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
