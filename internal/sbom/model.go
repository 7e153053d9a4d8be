// Package sbom parses SPDX-style JSON SBOM documents into an immutable model.
package sbom

// NoAssertion is the SPDX marker for "no claim is made about this value".
const NoAssertion = "NOASSERTION"

// Document is the parsed form of one SBOM. Optional attributes are nil when the source
// omits them.
type Document struct {
	Name          string
	SPDXVersion   *string
	ID            *string
	DataLicense   *string
	Namespace     *string
	Comment       *string
	Describes     *string
	CreationInfo  CreationInfo
	Packages      []Package
	Files         []File
	Relationships []Relationship

	// Warnings lists entries the parser skipped. They never fail the parse.
	Warnings []string

	index map[string]Element
}

// CreationInfo holds the creationInfo block of the document.
type CreationInfo struct {
	Created            *string
	Creators           []string
	LicenseListVersion *string
	Comment            *string
}

// Package is one entry of the packages collection.
type Package struct {
	ID               string
	Name             string
	Version          *string
	Supplier         *string
	LicenseConcluded *string
	LicenseDeclared  *string
	DownloadLocation *string
	PURL             *string
	Checksums        []Checksum

	Description *string
	Summary     *string
	Homepage    *string
	Originator  *string
	Copyright   *string
}

// File is one entry of the files collection.
type File struct {
	ID               string
	Name             string
	LicenseConcluded *string
	LicenseInfo      *string
	Checksums        []Checksum

	// Types and Contributors are the fileTypes and fileContributors lists, comma-joined.
	Types        *string
	Contributors *string
	Copyright    *string
	Comment      *string
}

// Checksum is an algorithm/value pair such as SHA256 and its hex digest.
type Checksum struct {
	Algorithm string
	Value     string
}

// Relationship is a typed edge between two SPDX identifiers. The identifiers are not
// required to resolve.
type Relationship struct {
	SourceID string
	TargetID string
	Type     string
}

// ElementKind tells which collection an identifier was found in.
type ElementKind int

const (
	// ElementDocument is the document itself (its SPDXID).
	ElementDocument ElementKind = iota
	// ElementPackage is an entry of packages.
	ElementPackage
	// ElementFile is an entry of files.
	ElementFile
)

// Element is the result of resolving an SPDX identifier.
type Element struct {
	Kind ElementKind
	ID   string
	Name string
}

// Lookup resolves an SPDX identifier against the document, its packages and its files.
// When an identifier is duplicated, the first entry in source order wins.
func (d *Document) Lookup(id string) (Element, bool) {
	if d == nil || id == "" {
		return Element{}, false
	}
	el, ok := d.index[id]
	return el, ok
}

func (d *Document) buildIndex() {
	d.index = make(map[string]Element, len(d.Packages)+len(d.Files)+1)
	add := func(el Element) {
		if el.ID == "" {
			return
		}
		if _, seen := d.index[el.ID]; seen {
			return
		}
		d.index[el.ID] = el
	}

	if d.ID != nil {
		add(Element{Kind: ElementDocument, ID: *d.ID, Name: d.Name})
	}
	for _, p := range d.Packages {
		add(Element{Kind: ElementPackage, ID: p.ID, Name: p.Name})
	}
	for _, f := range d.Files {
		add(Element{Kind: ElementFile, ID: f.ID, Name: f.Name})
	}
}
