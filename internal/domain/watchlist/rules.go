package watchlist

import (
	"fmt"
	"strings"

	"github.com/turtacn/GeoRisk-Intelligence/internal/domain/content"
	"github.com/turtacn/GeoRisk-Intelligence/pkg/types/common"
)

// DiscoveryRules gates automatic list additions: an entity must be tagged
// with confidence above Confidence and appear with identical text more than
// Mentions times in the scanned window.
type DiscoveryRules struct {
	Confidence float64
	Mentions   int
}

// CountOrganizationMentions counts entities whose lowercased text contains
// the organization's name or any alias.  All entity types count; upstream
// taggers are not reliable enough to restrict organization matches to ORG.
func CountOrganizationMentions(org *Organization, entities []content.Entity) int {
	name := strings.ToLower(org.Name)
	aliases := make([]string, len(org.Aliases))
	for i, a := range org.Aliases {
		aliases[i] = strings.ToLower(a)
	}

	mentions := 0
	for _, e := range entities {
		text := strings.ToLower(e.Text)
		if strings.Contains(text, name) || containsAny(text, aliases) {
			mentions++
		}
	}
	return mentions
}

// CountIndividualMentions counts PERSON entities whose lowercased text
// contains the individual's name or any alias.
func CountIndividualMentions(ind *Individual, entities []content.Entity) int {
	name := strings.ToLower(ind.Name)
	aliases := make([]string, len(ind.Aliases))
	for i, a := range ind.Aliases {
		aliases[i] = strings.ToLower(a)
	}

	mentions := 0
	for _, e := range entities {
		if e.Type != common.EntityPerson {
			continue
		}
		text := strings.ToLower(e.Text)
		if strings.Contains(text, name) || containsAny(text, aliases) {
			mentions++
		}
	}
	return mentions
}

// OrganizationLevel maps an organization's mention count to a threat level.
// Zero mentions returns ok=false: the level is left unchanged, only the
// entry's timestamp refreshes.
func OrganizationLevel(mentions int) (level common.ThreatLevel, ok bool) {
	switch {
	case mentions > 10:
		return common.ThreatHigh, true
	case mentions > 5:
		return common.ThreatMedium, true
	case mentions > 0:
		return common.ThreatLow, true
	}
	return "", false
}

// IndividualLevel maps an individual's mention count to a threat level.
// Individuals escalate faster than organizations.  Zero mentions returns
// ok=false, same contract as OrganizationLevel.
func IndividualLevel(mentions int) (level common.ThreatLevel, ok bool) {
	switch {
	case mentions > 5:
		return common.ThreatHigh, true
	case mentions > 2:
		return common.ThreatMedium, true
	case mentions > 0:
		return common.ThreatLow, true
	}
	return "", false
}

// UpdateOrganizations recomputes the threat level of every organization from
// its mention count, refreshes all timestamps, and appends newly discovered
// organizations that pass rules.  The updated list is returned along with
// the names of any discoveries.
func UpdateOrganizations(orgs []Organization, entities []content.Entity, rules DiscoveryRules) ([]Organization, []string) {
	for i := range orgs {
		mentions := CountOrganizationMentions(&orgs[i], entities)
		if level, ok := OrganizationLevel(mentions); ok {
			orgs[i].ThreatLevel = level
		}
		orgs[i].LastUpdated = common.NewTimestamp()
	}

	var discovered []string
	for _, e := range entities {
		if e.Type != common.EntityOrganization || e.Confidence <= rules.Confidence {
			continue
		}
		if hasOrganization(orgs, e.Text) {
			continue
		}
		mentions := exactMentions(entities, e.Text)
		if mentions <= rules.Mentions {
			continue
		}
		orgs = append(orgs, Organization{
			Name:        e.Text,
			Aliases:     []string{},
			Type:        PotentialThreatType,
			ThreatLevel: common.ThreatLow,
			Regions:     []string{},
			Description: fmt.Sprintf("Newly identified organization with %d mentions", mentions),
			LastUpdated: common.NewTimestamp(),
		})
		discovered = append(discovered, e.Text)
	}
	return orgs, discovered
}

// UpdateIndividuals recomputes the threat level of every individual from its
// mention count, refreshes all timestamps, and appends newly discovered
// individuals that pass rules.
func UpdateIndividuals(inds []Individual, entities []content.Entity, rules DiscoveryRules) ([]Individual, []string) {
	for i := range inds {
		mentions := CountIndividualMentions(&inds[i], entities)
		if level, ok := IndividualLevel(mentions); ok {
			inds[i].ThreatLevel = level
		}
		inds[i].LastUpdated = common.NewTimestamp()
	}

	var discovered []string
	for _, e := range entities {
		if e.Type != common.EntityPerson || e.Confidence <= rules.Confidence {
			continue
		}
		if hasIndividual(inds, e.Text) {
			continue
		}
		mentions := exactMentions(entities, e.Text)
		if mentions <= rules.Mentions {
			continue
		}
		inds = append(inds, Individual{
			Name:         e.Text,
			Aliases:      []string{},
			Organization: "Unknown",
			ThreatLevel:  common.ThreatLow,
			Nationality:  "Unknown",
			Status:       "Active",
			Description:  fmt.Sprintf("Newly identified individual with %d mentions", mentions),
			LastUpdated:  common.NewTimestamp(),
		})
		discovered = append(discovered, e.Text)
	}
	return inds, discovered
}

// exactMentions counts entities whose text matches exactly, case-sensitive.
// Discovery uses exact matching so that a burst of identical tags is
// required before an unvetted name enters a list.
func exactMentions(entities []content.Entity, text string) int {
	n := 0
	for _, e := range entities {
		if e.Text == text {
			n++
		}
	}
	return n
}

func hasOrganization(orgs []Organization, name string) bool {
	for i := range orgs {
		if orgs[i].Name == name {
			return true
		}
	}
	return false
}

func hasIndividual(inds []Individual, name string) bool {
	for i := range inds {
		if inds[i].Name == name {
			return true
		}
	}
	return false
}

func containsAny(text string, subs []string) bool {
	for _, s := range subs {
		if s != "" && strings.Contains(text, s) {
			return true
		}
	}
	return false
}
