// Package registry selects a jurisdiction by its key at job start.
package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/candidatos-info/civic-enrichers/jurisdiction"
	"github.com/candidatos-info/civic-enrichers/jurisdiction/colorado"
	"github.com/candidatos-info/civic-enrichers/jurisdiction/minnesota"
)

var jurisdictions = map[string]func() jurisdiction.Jurisdiction{
	"co": colorado.New,
	"mn": minnesota.New,
}

// Lookup returns the jurisdiction of a state code, ignoring case.
func Lookup(key string) (jurisdiction.Jurisdiction, error) {
	newJurisdiction, ok := jurisdictions[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return nil, fmt.Errorf("unknown jurisdiction [%s], supported: %s", key, strings.Join(Keys(), ", "))
	}
	return newJurisdiction(), nil
}

// Keys lists the supported jurisdiction keys in order.
func Keys() []string {
	keys := make([]string, 0, len(jurisdictions))
	for k := range jurisdictions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
