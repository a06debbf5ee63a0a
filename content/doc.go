// Package content holds the static table of searchable site entries.
//
// A [Catalog] is built once at startup, from the embedded default document
// or from an operator-provided YAML file, and is read-only for the rest of
// the process lifetime. Every accessor returns copies, so no caller can
// mutate the table.
//
// # Usage
//
//	cat, err := content.DefaultCatalog()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, e := range cat.Entries() {
//	    fmt.Println(e.ID, e.Title, e.Target().Kind)
//	}
//
// # Targets
//
// Each entry's URL resolves once into a [Target]:
//
//   - TargetPath: root-relative path ("/solutions/registry"), full navigation
//   - TargetAnchor: in-page fragment ("#pricing"), smooth scroll
//   - TargetExternal: absolute http(s) URL
//
// Entries declared without a URL get the fragment "#<slug(title)>".
package content
