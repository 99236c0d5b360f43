package library

import "github.com/agentstation/strainmap/pkg/strains"

// Seeds returns the profiles an empty library starts with.
func Seeds() []strains.Profile {
	return []strains.Profile{
		{
			ID:           "blue-dream",
			Name:         "Blue Dream",
			Manufacturer: "Aurora",
			Genetics:     "Blueberry x Haze",
			THC:          "22%",
			CBD:          "0.7%",
			Cultivation:  "Unbestrahlt, Kanada",
			Terpenes: []strains.Terpene{
				{Name: "Myrcene", Amount: "0.8%", Effects: []string{"Entspannend", "Sedierend"}},
				{Name: "Pinene", Amount: "0.4%", Effects: []string{"Fokus", "Klarheit"}},
				{Name: "Caryophyllene", Amount: "0.3%", Effects: []string{"Antientzündlich"}},
			},
			Effects:             []string{"Euphorisch", "Kreativ", "Ausgeglichen"},
			AromaFlavor:         []string{"Beere", "Kiefer", "Erde"},
			OverallEffect:       "Ausgleichende Tageswirkung mit mentaler Klarheit.",
			OnsetDuration:       "Onset: 8 min, Dauer: 3 h",
			Characteristic:      "Dichte Buds, harzig, helle Trichome",
			MedicalApplications: []string{"Schmerz", "Stress", "Depression"},
			CommunityFeedback:   "Viele berichten von klarer Wirkung ohne schwere Sedierung.",
			CreatedAt:           "2026-02-17T00:00:00Z",
		},
		{
			ID:           "pink-kush",
			Name:         "Pink Kush",
			Manufacturer: "Canopy",
			Genetics:     "OG Kush Phänotyp",
			THC:          "25%",
			CBD:          "<1%",
			Cultivation:  "Indoor, unbestrahlt, Kanada",
			Terpenes: []strains.Terpene{
				{Name: "Limonene", Amount: "0.5%", Effects: []string{"Stimmungsaufhellend"}},
				{Name: "Linalool", Amount: "0.4%", Effects: []string{"Beruhigend", "Schlaffördernd"}},
			},
			Effects:             []string{"Entspannend", "Körperlich schwer", "Müdigkeit"},
			AromaFlavor:         []string{"Vanille", "Süße Erde", "Blumig"},
			OverallEffect:       "Stark körperbetonte Abendwirkung.",
			OnsetDuration:       "Onset: 5 min, Dauer: 4 h",
			Characteristic:      "Violette Akzente, kompakte Blüten",
			MedicalApplications: []string{"Schlaf", "Chronischer Schmerz", "Angst"},
			CommunityFeedback:   "Beliebt für Abendroutine und Schlafhilfe.",
			CreatedAt:           "2026-02-17T00:00:00Z",
		},
	}
}
