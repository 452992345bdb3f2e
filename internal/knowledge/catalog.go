// Package knowledge holds the static base catalog of building-science
// reference documents. The catalog is embedded once at startup and is
// read-only for the life of the process.
package knowledge

import "github.com/coastwise/strata-advisor/internal/domain"

// Catalog returns the base knowledge documents. Base documents carry no
// report ID and are never matched by report-scoped retrieval.
func Catalog() []domain.Document {
	return []domain.Document{
		{
			ID:    "doc1_balcony_membranes",
			Title: "Balcony Membrane Lifespan and Replacement",
			Text: "In coastal British Columbia, exposed balcony membranes typically have a " +
				"service life of approximately 15 to 25 years, depending on UV exposure, " +
				"drainage, and maintenance. Common deficiencies include membrane cracks, " +
				"failures at door thresholds, and poor slope leading to ponding. " +
				"When membranes are at or beyond their expected service life, or when " +
				"leaks are observed below, replacement should be considered a high priority.",
		},
		{
			ID:    "doc2_parkade_cracking",
			Title: "Parkade Slab Cracking and Risk",
			Text: "Hairline shrinkage cracks in parkade slabs are common and often not " +
				"structurally significant, provided there is no differential movement, " +
				"spalling, or corrosion staining. Wider cracks, active water leakage, " +
				"or rust staining at reinforcing steel indicate a higher risk of " +
				"long-term deterioration. In such cases, further structural assessment " +
				"and localized repair are recommended.",
		},
		{
			ID:    "doc3_rainscreen_bc",
			Title: "Rainscreen Requirements in British Columbia",
			Text: "Rainscreen wall assemblies became common practice in coastal BC in the " +
				"mid to late 1990s, following widespread moisture-related building envelope " +
				"failures. For many municipalities in the Lower Mainland, rainscreen " +
				"requirements were adopted around 1996–1999. Older buildings without " +
				"rainscreen cladding generally have a higher risk of concealed moisture " +
				"damage, particularly at balconies, window interfaces, and roof-wall junctions.",
		},
		{
			ID:    "doc4_maintenance_planning",
			Title: "Maintenance Planning and Prioritization",
			Text: "For strata corporations, maintenance and renewal projects are typically " +
				"prioritized based on safety, active leakage, risk of further deterioration, " +
				"and impact on the building’s operation. Life-safety issues and active leaks " +
				"are normally addressed first, followed by building envelope renewals, " +
				"parkade repairs, and aesthetic upgrades. A depreciation report should " +
				"provide a 30-year roadmap for major renewals.",
		},
	}
}
