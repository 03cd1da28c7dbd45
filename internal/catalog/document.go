package catalog

import (
	"fmt"
	"strings"

	"github.com/californiaroad/cwwp-catalog/internal/domain"
)

// Document renders the llms.txt navigation guide: URL patterns for the
// site's routing scheme plus the catalog's county and highway slug lists.
// siteURL is the public base the patterns are rooted at.
func Document(c Catalog, siteURL string) string {
	var b strings.Builder

	b.WriteString("# California Road Data - LLM Navigation Guide\n\n")
	b.WriteString("## Overview\n")
	b.WriteString("This service provides real-time traffic data from Caltrans.\n")
	b.WriteString("Use the following URL patterns to locate specific resources.\n\n")

	b.WriteString("## URL Patterns\n\n")
	b.WriteString("### By Geographic Region (County)\n")
	fmt.Fprintf(&b, "Pattern: %s/[type]/county/[county-slug]\n", siteURL)
	fmt.Fprintf(&b, "Example: %s/cctv/county/san-mateo\n", siteURL)
	b.WriteString("Types: cctv, cms, cc (chain control), lcs (lane closures), rwis (weather), tt (travel times)\n\n")

	b.WriteString("### By Highway / Route\n")
	fmt.Fprintf(&b, "Pattern: %s/[type]/route/[highway-slug]\n", siteURL)
	fmt.Fprintf(&b, "Example: %s/cctv/route/us-101\n", siteURL)
	b.WriteString("Note: Use \"us-101\", \"i-5\", \"sr-1\" formats.\n\n")

	b.WriteString("### By District\n")
	fmt.Fprintf(&b, "Pattern: %s/[type]/[district-id]\n", siteURL)
	fmt.Fprintf(&b, "Example: %s/cctv/04\n", siteURL)
	b.WriteString("Districts: 01 through 12.\n\n")

	b.WriteString("## Reference Lists\n\n")
	b.WriteString("### Valid County Slugs\n")
	b.WriteString("(Use these in URLs)\n")
	writeSlugList(&b, c.Counties)
	b.WriteString("\n### Valid Highway Slugs\n")
	b.WriteString("(Use these in URLs)\n")
	writeSlugList(&b, c.Highways)

	b.WriteString("\n## Data Types\n")
	b.WriteString("- cctv: Traffic Cameras (Images/Video)\n")
	b.WriteString("- cms: Changeable Message Signs (Text alerts)\n")
	b.WriteString("- cc: Chain Controls (Winter driving requirements)\n")
	b.WriteString("- lcs: Lane Closures (Construction/Maintenance)\n")
	b.WriteString("- rwis: Weather Stations (Temp, Wind, Visibility)\n")
	b.WriteString("- tt: Travel Times\n")

	return b.String()
}

func writeSlugList(b *strings.Builder, entries []string) {
	for _, e := range entries {
		fmt.Fprintf(b, "- %s (%s)\n", domain.Slugify(e), e)
	}
}
