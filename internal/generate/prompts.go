package generate

import (
	"fmt"
	"strings"

	"galley/internal/catalog"
)

func articlePrompt(product string, item catalog.Item, research string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a markdown article comparing %s to %s for C# barcode tasks.\n\n", item.Name, product)
	fmt.Fprintf(&b, "LIBRARY:\n- Name: %s\n- Website: %s\n- License: %s\n- Description: %s\n- Category: %s\n",
		item.Name, item.Website, item.License, item.Description, item.Category)
	writeList(&b, "KNOWN ISSUES:", item.KnownIssues)
	writeList(&b, fmt.Sprintf("%s ADVANTAGES:", strings.ToUpper(product)), item.Advantages)
	if research != "" {
		fmt.Fprintf(&b, "\nRESEARCH:\n%s\n", research)
	}
	fmt.Fprintf(&b, `
REQUIREMENTS:
1. H1 combining "%s", "C#", and "barcode"
2. First paragraph mentions %s twice naturally
3. A C# code example within the first 500 words
4. A markdown comparison table covering features, symbology support, platforms, ease of use
5. Honest about strengths AND weaknesses of %s
6. Installation instructions (NuGet commands)
7. Side-by-side code comparison: %s vs %s for the same task

Write 1500+ words. Output ONLY markdown.`, item.Name, item.Name, item.Name, item.Name, product)
	return b.String()
}

func migrationPrompt(product string, item catalog.Item) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Migration guide: %s to %s for C# barcode reading and generation.\n\n", item.Name, product)
	writeList(&b, fmt.Sprintf("ISSUES WITH %s:", item.Name), item.KnownIssues)
	writeList(&b, "API MAPPING HINTS:", item.APIMapping)
	fmt.Fprintf(&b, `
INCLUDE:
1. Why migrate (2-3 sentences)
2. NuGet package changes
3. Namespace mapping table
4. API mapping table (their methods -> %s equivalents)
5. Three before/after code examples: basic reading, generation, batch PDF reading
6. Common gotchas (symbology configuration, error handling, disposal)

Output ONLY markdown.`, product)
	return b.String()
}

func examplesPrompt(product string, item catalog.Item) string {
	return fmt.Sprintf(`Generate 3 C# code examples comparing %s to %s for barcode tasks.

Respond with a JSON object of the form:
{"examples": [{"task": "Basic Barcode Reading", "filename": "basic-barcode-reading", "library_code": "// code using %s", "product_code": "// code using %s"}]}

TASKS TO COVER:
1. Basic Barcode Reading - read a barcode value from an image file
2. Barcode Generation - create a QR code or Code128 barcode
3. PDF Batch Processing - read all barcodes from a multi-page PDF

Requirements:
- Complete C# with all using statements
- %s code shows that library's typical usage pattern
- %s code starts with a NuGet installation comment
- Realistic file paths and variable names

Output ONLY valid JSON.`, item.Name, product, item.Name, product, item.Name, product)
}

func writeList(b *strings.Builder, heading string, entries []string) {
	if len(entries) == 0 {
		return
	}
	b.WriteString("\n")
	b.WriteString(heading)
	b.WriteString("\n")
	for _, entry := range entries {
		fmt.Fprintf(b, "- %s\n", entry)
	}
}
