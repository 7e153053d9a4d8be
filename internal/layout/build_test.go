package layout

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/sbom-report/internal/sbom"
)

func mustParse(t *testing.T, raw string) *sbom.Document {
	t.Helper()
	doc, err := sbom.Parse([]byte(raw))
	require.NoError(t, err)
	return doc
}

func kinds(sections []Section) []string {
	out := make([]string, len(sections))
	for i, s := range sections {
		out[i] = s.Kind()
	}
	return out
}

func tableAt(t *testing.T, sections []Section, i int) Table {
	t.Helper()
	require.Greater(t, len(sections), i)
	table, ok := sections[i].(Table)
	require.True(t, ok, "section %d is %s, want table", i, sections[i].Kind())
	return table
}

func TestBuild_EmptyDocument(t *testing.T) {
	sections := Build(mustParse(t, `{"name": "empty", "spdxVersion": "SPDX-2.3"}`))

	assert.Equal(t, []string{
		"heading", "keyvalue",
		"heading", "placeholder",
		"heading", "placeholder",
		"heading", "placeholder",
	}, kinds(sections))

	placeholders := 0
	for _, s := range sections {
		switch s := s.(type) {
		case Placeholder:
			placeholders++
			assert.Equal(t, PlaceholderText, s.Text)
		case Table:
			t.Errorf("unexpected table in empty document")
		}
	}
	assert.Equal(t, 3, placeholders)
}

func TestBuild_SectionOrder(t *testing.T) {
	doc := mustParse(t, `{
		"name": "ordered",
		"packages": [{"name": "a"}],
		"files": [{"fileName": "a.txt"}],
		"relationships": [{"spdxElementId": "x", "relationshipType": "CONTAINS", "relatedSpdxElement": "y"}]
	}`)
	sections := Build(doc)

	assert.Equal(t, []string{
		"heading", "keyvalue",
		"heading", "table",
		"heading", "table",
		"heading", "table",
	}, kinds(sections))
	assert.Equal(t, []string{"ordered"}, sections[0].(Heading).Lines)
	assert.Equal(t, []string{"Packages"}, sections[2].(Heading).Lines)
	assert.Equal(t, []string{"Files"}, sections[4].(Heading).Lines)
	assert.Equal(t, []string{"Relationships"}, sections[6].(Heading).Lines)
}

func TestBuild_DefaultTitle(t *testing.T) {
	sections := Build(mustParse(t, `{"packages": []}`))
	assert.Equal(t, []string{DefaultTitle}, sections[0].(Heading).Lines)
}

func TestBuild_NilDocument(t *testing.T) {
	sections := Build(nil)
	require.Len(t, sections, 8)
	assert.Equal(t, []string{DefaultTitle}, sections[0].(Heading).Lines)
}

func TestBuild_PackageRowsInSourceOrder(t *testing.T) {
	names := []string{"zeta", "alpha", "mu", "beta", "omega"}
	var entries []string
	for i, n := range names {
		entries = append(entries, fmt.Sprintf(`{"SPDXID": "SPDXRef-%d", "name": %q}`, i, n))
	}
	doc := mustParse(t, `{"packages": [`+strings.Join(entries, ",")+`]}`)

	table := tableAt(t, Build(doc), 3)
	require.Len(t, table.Rows, len(names), "one data row per package, header excluded")
	for i, row := range table.Rows {
		assert.Equal(t, names[i], row[1][0])
	}
}

func TestBuild_MissingOptionalCellsAreEmpty(t *testing.T) {
	doc := mustParse(t, `{"packages": [{"SPDXID": "SPDXRef-p", "name": "bare", "versionInfo": "1.0"}]}`)

	table := tableAt(t, Build(doc), 3)
	require.Len(t, table.Rows, 1)
	row := table.Rows[0]
	require.Len(t, row, len(table.Columns))

	assert.Equal(t, Cell{"1.0"}, row[2])
	assert.Empty(t, row[3], "supplier")
	assert.Empty(t, row[4], "license concluded")
	assert.Empty(t, row[7], "checksums")
	assert.Empty(t, row[8], "details")
}

func TestBuild_PackageDetails(t *testing.T) {
	doc := mustParse(t, `{"packages": [{
		"name": "curl",
		"originator": "Person: Daniel Stenberg",
		"homepage": "https://curl.se",
		"summary": "URL transfer tool",
		"description": "Command line tool and library for transferring data with URLs",
		"copyrightText": "Copyright (c) 1996 - 2024, Daniel Stenberg"
	}]}`)

	table := tableAt(t, Build(doc), 3)
	require.Equal(t, "Details", table.Columns[8].Title[0])
	cell := table.Rows[0][8]
	width := table.Columns[8].Width

	for _, line := range cell {
		assert.LessOrEqual(t, utf8.RuneCountInString(line), width)
	}
	text := strings.Join(cell, " ")
	for _, want := range []string{
		"Originator: Person: Daniel Stenberg",
		"Homepage: https://curl.se",
		"Summary: URL transfer tool",
		"Description: Command line tool and library",
		"Copyright: Copyright (c) 1996 - 2024,",
	} {
		assert.Contains(t, text, want)
	}
	assert.Less(t, strings.Index(text, "Originator:"), strings.Index(text, "Copyright:"))
}

func TestBuild_FileDetails(t *testing.T) {
	doc := mustParse(t, `{"files": [
		{
			"fileName": "./src/tool_main.c",
			"fileTypes": ["SOURCE"],
			"fileContributors": ["Daniel Stenberg"],
			"copyrightText": "NOASSERTION",
			"comment": "entry point"
		},
		{"fileName": "./README"}
	]}`)

	table := tableAt(t, Build(doc), 5)
	require.Len(t, table.Columns, 6)
	assert.Equal(t, Cell{
		"File Types: SOURCE",
		"Contributors: Daniel Stenberg",
		"Copyright: NOASSERTION",
		"Comment: entry point",
	}, table.Rows[0][5])
	assert.Empty(t, table.Rows[1][5])
}

func TestBuild_LongFieldWrapsWithinColumn(t *testing.T) {
	url := "https://example.com/" + strings.Repeat("very-long-path-segment/", 8) + "pkg.tgz"
	require.GreaterOrEqual(t, len(url), 200)
	doc := mustParse(t, fmt.Sprintf(`{"packages": [{"name": "p", "downloadLocation": %q}]}`, url))

	table := tableAt(t, Build(doc), 3)
	cell := table.Rows[0][6]
	width := table.Columns[6].Width

	require.Greater(t, len(cell), 1)
	for _, line := range cell {
		assert.LessOrEqual(t, utf8.RuneCountInString(line), width)
	}
	assert.Equal(t, url, strings.Join(cell, ""))
}

func TestBuild_ChecksumsElided(t *testing.T) {
	doc := mustParse(t, `{"files": [{
		"fileName": "lib.so",
		"checksums": [
			{"algorithm": "SHA256", "checksumValue": "9a93b2b7dfdac77ceba5a558a580e74667dd6fede4585b91eefb60f03b72df23"},
			{"algorithm": "MD5", "checksumValue": "0cc175b9"}
		]
	}]}`)

	table := tableAt(t, Build(doc), 5)
	cell := table.Rows[0][4]
	width := table.Columns[4].Width

	require.Len(t, cell, 2, "one line per checksum")
	assert.True(t, strings.HasPrefix(cell[0], "SHA256: 9a93b2b7"))
	assert.True(t, strings.HasSuffix(cell[0], Ellipsis))
	assert.LessOrEqual(t, utf8.RuneCountInString(cell[0]), width)
	assert.Equal(t, "MD5: 0cc175b9", cell[1])
}

func TestBuild_PURLUnderName(t *testing.T) {
	doc := mustParse(t, `{"packages": [{
		"name": "requests",
		"externalRefs": [{"referenceType": "purl", "referenceLocator": "pkg:pypi/requests@2.31.0"}]
	}]}`)

	cell := tableAt(t, Build(doc), 3).Rows[0][1]
	require.Greater(t, len(cell), 1)
	assert.Equal(t, "requests", cell[0])
	assert.Equal(t, "pkg:pypi/requests@2.31.0", strings.Join(cell[1:], ""))
}

func TestBuild_InvalidPURLKeptVerbatim(t *testing.T) {
	assert.Equal(t, "not a purl", canonicalPURL(strPtr("not a purl")))
	assert.Equal(t, "", canonicalPURL(nil))
}

func TestBuild_RelationshipEndpoints(t *testing.T) {
	doc := mustParse(t, `{
		"SPDXID": "SPDXRef-DOCUMENT",
		"name": "app",
		"packages": [{"SPDXID": "SPDXRef-Package-zlib", "name": "zlib"}],
		"files": [{"SPDXID": "SPDXRef-File-a", "fileName": "a.c"}],
		"relationships": [
			{"spdxElementId": "SPDXRef-DOCUMENT", "relationshipType": "DESCRIBES", "relatedSpdxElement": "SPDXRef-Package-zlib"},
			{"spdxElementId": "SPDXRef-Package-zlib", "relationshipType": "CONTAINS", "relatedSpdxElement": "SPDXRef-File-a"},
			{"spdxElementId": "SPDXRef-Package-zlib", "relationshipType": "DEPENDS_ON", "relatedSpdxElement": "SPDXRef-Package-gone"},
			{"spdxElementId": "SPDXRef-File-a", "relationshipType": "OTHER"}
		]
	}`)

	table := tableAt(t, Build(doc), 7)
	require.Len(t, table.Rows, 4)

	assert.Equal(t, Cell{"app (SPDXRef-DOCUMENT)"}, table.Rows[0][0])
	assert.Equal(t, Cell{"DESCRIBES"}, table.Rows[0][1])
	assert.Equal(t, Cell{"zlib (SPDXRef-Package-zlib)"}, table.Rows[0][2])
	assert.Equal(t, Cell{"a.c (SPDXRef-File-a)"}, table.Rows[1][2])
	assert.Equal(t, Cell{"SPDXRef-Package-gone"}, table.Rows[2][2], "dangling ids are shown raw")
	assert.Empty(t, table.Rows[3][2])
}

func TestBuild_DuplicateIdentifiersKeepAllRows(t *testing.T) {
	doc := mustParse(t, `{
		"packages": [
			{"SPDXID": "SPDXRef-dup", "name": "first"},
			{"SPDXID": "SPDXRef-dup", "name": "second"}
		],
		"relationships": [{"spdxElementId": "SPDXRef-dup", "relationshipType": "OTHER", "relatedSpdxElement": "SPDXRef-dup"}]
	}`)
	sections := Build(doc)

	assert.Len(t, tableAt(t, sections, 3).Rows, 2)
	assert.Equal(t, Cell{"first (SPDXRef-dup)"}, tableAt(t, sections, 7).Rows[0][0])
}

func TestBuild_Metadata(t *testing.T) {
	doc := mustParse(t, `{
		"name": "demo",
		"spdxVersion": "SPDX-2.3",
		"creationInfo": {"created": "2024-01-02T03:04:05Z", "creators": ["Tool: a", "Person: b"]}
	}`)
	block, ok := Build(doc)[1].(KeyValueBlock)
	require.True(t, ok)

	values := map[string]Cell{}
	for _, row := range block.Rows {
		require.Len(t, row, 2)
		values[strings.Join(row[0], " ")] = row[1]
	}
	assert.Equal(t, Cell{"demo"}, values["Name"])
	assert.Equal(t, Cell{"SPDX-2.3"}, values["SPDX Version"])
	assert.Equal(t, Cell{"Tool: a, Person: b"}, values["Creators"])
	assert.Equal(t, Cell{"2024-01-02T03:04:05Z"}, values["Created"])
	assert.Empty(t, values["Data License"], "absent values render empty")
}

func TestBuild_HeaderTitlesWrap(t *testing.T) {
	doc := mustParse(t, `{"packages": [{"name": "a"}]}`)
	table := tableAt(t, Build(doc), 3)

	assert.Equal(t, Cell{"License", "Concluded"}, table.Columns[4].Title)
	assert.Len(t, table.HeaderRow(), len(table.Columns))
	assert.Equal(t, 162, table.Width())
}

func TestBuild_DoesNotModifyDocument(t *testing.T) {
	doc := mustParse(t, `{"name": "", "packages": [{"name": "a", "supplier": "Organization: x"}]}`)

	Build(doc)
	Build(doc)

	assert.Equal(t, "", doc.Name)
	require.Len(t, doc.Packages, 1)
	assert.Equal(t, "Organization: x", *doc.Packages[0].Supplier)
}

func TestRow_Height(t *testing.T) {
	assert.Equal(t, 1, Row{nil, Cell{}}.Height())
	assert.Equal(t, 3, Row{Cell{"a"}, Cell{"a", "b", "c"}}.Height())
}

func strPtr(s string) *string {
	return &s
}
