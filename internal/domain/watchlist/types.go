// Package watchlist defines the four tracked entity lists and the rules
// that recompute threat levels and discover new entries from tagged content.
//
// Supported and opposed groups are flat label lists maintained entirely by
// operators.  Dangerous organizations and flagged individuals are structured
// records whose threat levels are recomputed from mention counts on every
// tracking cycle.
package watchlist

import (
	"github.com/turtacn/GeoRisk-Intelligence/pkg/types/common"
)

// PotentialThreatType marks entries added by automatic discovery rather than
// by an operator or the seed list.
const PotentialThreatType = "Potential Threat"

// Organization is one entry on the dangerous-organizations list.
type Organization struct {
	Name        string             `json:"name"`
	Aliases     []string           `json:"aliases"`
	Type        string             `json:"type"`
	ThreatLevel common.ThreatLevel `json:"threat_level"`
	Regions     []string           `json:"regions"`
	Description string             `json:"description"`
	LastUpdated common.Timestamp   `json:"last_updated"`
}

// Individual is one entry on the flagged-individuals list.
type Individual struct {
	Name         string             `json:"name"`
	Aliases      []string           `json:"aliases"`
	Organization string             `json:"organization"`
	ThreatLevel  common.ThreatLevel `json:"threat_level"`
	Nationality  string             `json:"nationality"`
	Status       string             `json:"status"`
	Description  string             `json:"description"`
	LastUpdated  common.Timestamp   `json:"last_updated"`
}

// SeedOrganizations returns the default dangerous-organizations list used
// when no persisted list exists yet.
func SeedOrganizations() []Organization {
	now := common.NewTimestamp()
	return []Organization{
		{
			Name:        "ISIS",
			Aliases:     []string{"Islamic State", "ISIL", "Daesh"},
			Type:        "Terrorist Organization",
			ThreatLevel: common.ThreatHigh,
			Regions:     []string{"Middle East", "North Africa", "Europe"},
			Description: "Extremist jihadist group known for violence and territorial claims",
			LastUpdated: now,
		},
		{
			Name:        "Al-Qaeda",
			Aliases:     []string{"The Base", "AQ"},
			Type:        "Terrorist Organization",
			ThreatLevel: common.ThreatHigh,
			Regions:     []string{"Middle East", "North Africa", "South Asia", "Europe", "North America"},
			Description: "Global militant Islamist organization founded by Osama bin Laden",
			LastUpdated: now,
		},
		{
			Name:        "Hamas",
			Aliases:     []string{"Islamic Resistance Movement"},
			Type:        "Terrorist Organization",
			ThreatLevel: common.ThreatHigh,
			Regions:     []string{"Middle East"},
			Description: "Palestinian Sunni-Islamic fundamentalist organization",
			LastUpdated: now,
		},
		{
			Name:        "Hezbollah",
			Aliases:     []string{"Party of God", "Islamic Jihad Organization"},
			Type:        "Terrorist Organization",
			ThreatLevel: common.ThreatHigh,
			Regions:     []string{"Middle East", "South America"},
			Description: "Lebanese Shia Islamist political party and militant group",
			LastUpdated: now,
		},
		{
			Name:        "Boko Haram",
			Aliases:     []string{"Jamā'at Ahl as-Sunnah lid-Da'wah wa'l-Jihād"},
			Type:        "Terrorist Organization",
			ThreatLevel: common.ThreatHigh,
			Regions:     []string{"West Africa"},
			Description: "Jihadist terrorist organization based in northeastern Nigeria",
			LastUpdated: now,
		},
	}
}

// SeedIndividuals returns the default flagged-individuals list used when no
// persisted list exists yet.  The names are fictional placeholders.
func SeedIndividuals() []Individual {
	now := common.NewTimestamp()
	return []Individual{
		{
			Name:         "Abu Mohammed Al-Fiktivi",
			Aliases:      []string{"The Ghost", "Mohammed Al-Shadid"},
			Organization: "ISIS",
			ThreatLevel:  common.ThreatHigh,
			Nationality:  "Unknown",
			Status:       "Active",
			Description:  "High-ranking ISIS commander responsible for multiple attacks",
			LastUpdated:  now,
		},
		{
			Name:         "Yusuf Al-Imaginary",
			Aliases:      []string{"The Engineer", "Abu Yusuf"},
			Organization: "Al-Qaeda",
			ThreatLevel:  common.ThreatHigh,
			Nationality:  "Unknown",
			Status:       "Active",
			Description:  "Al-Qaeda explosives expert and operational planner",
			LastUpdated:  now,
		},
		{
			Name:         "Ibrahim Al-Fictional",
			Aliases:      []string{"The Recruiter", "Sheikh Ibrahim"},
			Organization: "Boko Haram",
			ThreatLevel:  common.ThreatMedium,
			Nationality:  "Unknown",
			Status:       "Active",
			Description:  "Boko Haram recruiter and propagandist",
			LastUpdated:  now,
		},
	}
}
