package sbom

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/multierr"

	"github.com/jonathan/sbom-report/internal/schemas"
	sbomschema "github.com/jonathan/sbom-report/schemas"
)

// Parse reads an SPDX-style JSON SBOM. Only malformed JSON or a document without an
// identifiable SBOM structure fails; missing or oddly typed fields are tolerated and come
// back as nil or empty values.
func Parse(raw []byte) (*Document, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, &ParseError{Message: "document is empty"}
	}
	if !gjson.ValidBytes(raw) {
		return nil, &ParseError{Message: "document is not valid JSON"}
	}
	if err := schemas.ValidateBytes(sbomschema.SBOM, raw); err != nil {
		return nil, &ParseError{
			Message: "document has no identifiable SBOM structure",
			Cause:   err,
		}
	}

	root := gjson.ParseBytes(raw)
	p := &parser{}

	doc := &Document{
		Name:        displayString(root.Get("name")),
		SPDXVersion: p.optString(root.Get("spdxVersion")),
		ID:          p.optString(root.Get("SPDXID")),
		DataLicense: p.optString(root.Get("dataLicense")),
		Namespace:   p.optString(root.Get("documentNamespace")),
		Comment:     p.optString(root.Get("comment")),
		Describes:   p.optString(root.Get("documentDescribes")),
	}
	doc.CreationInfo = p.creationInfo(root.Get("creationInfo"))

	p.each(root.Get("packages"), "packages", func(key string, v gjson.Result) {
		pkg := p.pkg(v)
		if pkg.ID == "" {
			pkg.ID = key
		}
		doc.Packages = append(doc.Packages, pkg)
	})
	p.each(root.Get("files"), "files", func(key string, v gjson.Result) {
		f := p.file(v)
		if f.ID == "" {
			f.ID = key
		}
		doc.Files = append(doc.Files, f)
	})
	p.each(root.Get("relationships"), "relationships", func(_ string, v gjson.Result) {
		doc.Relationships = append(doc.Relationships, p.relationship(v))
	})

	for _, w := range multierr.Errors(p.warnings) {
		doc.Warnings = append(doc.Warnings, w.Error())
	}
	doc.buildIndex()

	return doc, nil
}

// parser accumulates non-fatal findings while walking one document.
type parser struct {
	warnings error
}

func (p *parser) warnf(format string, args ...any) {
	p.warnings = multierr.Append(p.warnings, fmt.Errorf(format, args...))
}

// each visits the object entries of a collection in source order. Arrays and objects are
// both accepted; for an object the member name is passed as key. Entries that are not JSON
// objects are skipped.
func (p *parser) each(collection gjson.Result, name string, fn func(key string, v gjson.Result)) {
	if !collection.Exists() || collection.Type == gjson.Null {
		return
	}
	i := 0
	collection.ForEach(func(k, value gjson.Result) bool {
		key, pos := "", fmt.Sprintf("%d", i)
		if collection.IsObject() {
			key = k.String()
			pos = key
		}
		i++
		if !value.IsObject() {
			p.warnf("%s[%s]: skipped %s entry, expected an object", name, pos, typeName(value))
			return true
		}
		fn(key, value)
		return true
	})
}

func (p *parser) creationInfo(v gjson.Result) CreationInfo {
	if !v.Exists() || v.Type == gjson.Null {
		return CreationInfo{}
	}
	if !v.IsObject() {
		p.warnf("creationInfo: ignored %s value, expected an object", typeName(v))
		return CreationInfo{}
	}

	info := CreationInfo{
		Created:            p.optString(v.Get("created")),
		LicenseListVersion: p.optString(v.Get("licenseListVersion")),
		Comment:            p.optString(v.Get("comment")),
	}
	creators := v.Get("creators")
	switch {
	case creators.IsArray():
		for _, c := range creators.Array() {
			if s := displayString(c); s != "" {
				info.Creators = append(info.Creators, s)
			}
		}
	case creators.Exists() && creators.Type != gjson.Null:
		if s := displayString(creators); s != "" {
			info.Creators = []string{s}
		}
	}
	return info
}

func (p *parser) pkg(v gjson.Result) Package {
	return Package{
		ID:               displayString(v.Get("SPDXID")),
		Name:             displayString(v.Get("name")),
		Version:          p.optString(first(v, "versionInfo", "version")),
		Supplier:         p.optString(v.Get("supplier")),
		LicenseConcluded: p.optString(v.Get("licenseConcluded")),
		LicenseDeclared:  p.optString(v.Get("licenseDeclared")),
		DownloadLocation: p.optString(v.Get("downloadLocation")),
		PURL:             purlRef(v.Get("externalRefs")),
		Checksums:        checksums(first(v, "checksums", "checksum")),
		Description:      p.optString(v.Get("description")),
		Summary:          p.optString(v.Get("summary")),
		Homepage:         p.optString(v.Get("homepage")),
		Originator:       p.optString(v.Get("originator")),
		Copyright:        p.optString(v.Get("copyrightText")),
	}
}

func (p *parser) file(v gjson.Result) File {
	return File{
		ID:               displayString(v.Get("SPDXID")),
		Name:             displayString(first(v, "fileName", "name")),
		LicenseConcluded: p.optString(v.Get("licenseConcluded")),
		LicenseInfo:      p.optString(first(v, "licenseInfoInFiles", "licenseInfo")),
		Checksums:        checksums(first(v, "checksums", "checksum")),
		Types:            p.optString(v.Get("fileTypes")),
		Contributors:     p.optString(v.Get("fileContributors")),
		Copyright:        p.optString(v.Get("copyrightText")),
		Comment:          p.optString(v.Get("comment")),
	}
}

func (p *parser) relationship(v gjson.Result) Relationship {
	return Relationship{
		SourceID: displayString(first(v, "spdxElementId", "sourceId")),
		TargetID: displayString(first(v, "relatedSpdxElement", "targetId")),
		Type:     displayString(v.Get("relationshipType")),
	}
}

// optString returns nil for absent, null and empty values.
func (p *parser) optString(v gjson.Result) *string {
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}
	s := displayString(v)
	if s == "" {
		return nil
	}
	return &s
}

// displayString renders any JSON value as report text.
func displayString(v gjson.Result) string {
	switch {
	case !v.Exists() || v.Type == gjson.Null:
		return ""
	case v.Type == gjson.True:
		return "Yes"
	case v.Type == gjson.False:
		return "No"
	case v.Type == gjson.Number:
		return v.Raw
	case v.IsArray():
		parts := make([]string, 0, len(v.Array()))
		for _, item := range v.Array() {
			if s := displayString(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case v.IsObject():
		return compact(v.Raw)
	default:
		return strings.TrimSpace(v.String())
	}
}

func checksums(v gjson.Result) []Checksum {
	var items []gjson.Result
	switch {
	case v.IsArray():
		items = v.Array()
	case v.IsObject():
		items = []gjson.Result{v}
	default:
		return nil
	}

	var out []Checksum
	for _, item := range items {
		if !item.IsObject() {
			continue
		}
		c := Checksum{
			Algorithm: displayString(first(item, "algorithm", "alg")),
			Value:     displayString(first(item, "checksumValue", "value", "content")),
		}
		if c.Value == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}

// purlRef returns the first package-url external reference.
func purlRef(refs gjson.Result) *string {
	if !refs.IsArray() {
		return nil
	}
	for _, ref := range refs.Array() {
		if !strings.EqualFold(ref.Get("referenceType").String(), "purl") {
			continue
		}
		if loc := strings.TrimSpace(ref.Get("referenceLocator").String()); loc != "" {
			return &loc
		}
	}
	return nil
}

// first returns the value of the first key present on v with a non-null value.
func first(v gjson.Result, keys ...string) gjson.Result {
	for _, k := range keys {
		if r := v.Get(gjson.Escape(k)); r.Exists() && r.Type != gjson.Null {
			return r
		}
	}
	return gjson.Result{}
}

func compact(raw string) string {
	return gjson.Get(raw, "@ugly").Raw
}

func typeName(v gjson.Result) string {
	switch {
	case v.IsArray():
		return "array"
	case v.IsObject():
		return "object"
	case v.Type == gjson.Null:
		return "null"
	case v.Type == gjson.String:
		return "string"
	case v.Type == gjson.Number:
		return "number"
	default:
		return "boolean"
	}
}
