package testsupport

import (
	"os"
	"testing"

	"galley/internal/config"
)

// SampleCatalog is a small catalog in the master-list markdown format used
// across package tests.
const SampleCatalog = `# Master Library List

## Category: Open Source Readers

### 1. ZXing.Net
- **Website:** https://github.com/micjahn/ZXing.Net
- **NuGet:** ZXing.Net
- **License:** Apache-2.0
- **Tier:** Tier 1
- **What it is:** Port of the ZXing barcode engine.

**Known Issues:**
1. No built-in PDF rendering.
2. Sparse documentation for advanced symbologies.

**Advantages:**
- One-line read API.
- Commercial support.

**API Mapping Hints:**
- ` + "`BarcodeReader.Decode`" + ` maps to a single read call.

---

### 2. Aspose.BarCode (Cloud)
- **Website:** https://products.aspose.com/barcode
- **License:** Commercial
- **Tier:** Tier 2
- **What it is:** Commercial barcode suite.

---

## Category: Legacy Toolkits

### 3. Barcode Rendering Framework
- **Website:** https://github.com/barnhill/barcodelib
- **License:** Apache-2.0
- **Tier:** Tier 2
- **What it is:** Rendering-only toolkit.

---

### 4. MessagingToolkit.Barcode
- **Website:** https://archive.codeplex.com/?p=messagingtoolkit
- **License:** MIT
- **What it is:** Abandoned CodePlex-era library.

---

## Summary

4 libraries total.
`

// WriteCatalog writes content to the config's catalog path and returns it.
func WriteCatalog(t testing.TB, cfg *config.Config, content string) string {
	t.Helper()

	if content == "" {
		content = SampleCatalog
	}
	if err := os.WriteFile(cfg.Paths.CatalogPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write catalog fixture: %v", err)
	}
	return cfg.Paths.CatalogPath
}
