package slidegen

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// maxZipEntrySize is the maximum allowed size for a single file extracted from a ZIP.
// This prevents zip bomb attacks. 50 MB is generous for any legitimate PPTX part.
const maxZipEntrySize = 50 << 20 // 50 MB

// maxZipTotalSize is the cumulative limit for all extracted content from a single ZIP.
const maxZipTotalSize = 200 << 20 // 200 MB

// maxZipEntries is the maximum number of files allowed in a ZIP archive.
const maxZipEntries = 10000

// openPackage loads every part of the package at path into memory. The
// source file is closed before returning, so it may also be the output.
func openPackage(path string) (*Package, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrTemplateNotFound, path)
	}
	if info.Size() > int64(maxZipTotalSize) {
		return nil, fmt.Errorf("file size %d exceeds maximum allowed (%d bytes)", info.Size(), maxZipTotalSize)
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open zip: %w", ErrInvalidPackage, err)
	}
	defer zr.Close()
	return readPackage(&zr.Reader)
}

func readPackage(zr *zip.Reader) (*Package, error) {
	if len(zr.File) > maxZipEntries {
		return nil, fmt.Errorf("zip archive contains too many entries (%d > %d)", len(zr.File), maxZipEntries)
	}

	p := newPackage()
	rels := make(map[string][]byte)
	var contentTypes []byte
	var total int64

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		data, err := readZipEntry(f)
		if err != nil {
			return nil, err
		}
		total += int64(len(data))
		if total > maxZipTotalSize {
			return nil, fmt.Errorf("zip archive exceeds maximum extracted size (%d bytes)", maxZipTotalSize)
		}
		name := strings.TrimPrefix(f.Name, "/")
		switch {
		case name == "[Content_Types].xml":
			contentTypes = data
		case strings.HasSuffix(name, ".rels"):
			rels[name] = data
		default:
			p.addPart(name, "", data)
		}
	}

	if contentTypes == nil {
		return nil, fmt.Errorf("%w: missing [Content_Types].xml", ErrInvalidPackage)
	}
	if err := p.applyContentTypes(contentTypes); err != nil {
		return nil, err
	}

	for relsName, data := range rels {
		source, ok := sourceOfRels(relsName)
		if !ok {
			continue
		}
		set, err := parseRelationships(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse relationships %s: %w", relsName, err)
		}
		if source == "" {
			p.rootRels = set
			continue
		}
		if pt := p.part(source); pt != nil {
			pt.rels = set
		}
	}

	if p.part(presentationPart) == nil {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidPackage, presentationPart)
	}
	return p, nil
}

func readZipEntry(f *zip.File) ([]byte, error) {
	if f.UncompressedSize64 > maxZipEntrySize {
		return nil, fmt.Errorf("file %s exceeds maximum allowed size (%d bytes)", f.Name, maxZipEntrySize)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s in zip: %w", f.Name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(io.LimitReader(rc, int64(maxZipEntrySize)+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s from zip: %w", f.Name, err)
	}
	if int64(len(data)) > int64(maxZipEntrySize) {
		return nil, fmt.Errorf("file %s actual size exceeds maximum allowed size", f.Name)
	}
	return data, nil
}

func (p *Package) applyContentTypes(data []byte) error {
	var ct xmlContentTypes
	if err := xml.Unmarshal(data, &ct); err != nil {
		return fmt.Errorf("%w: failed to parse [Content_Types].xml: %w", ErrInvalidPackage, err)
	}
	for _, d := range ct.Defaults {
		p.defaults[strings.ToLower(d.Extension)] = d.ContentType
	}
	for _, o := range ct.Overrides {
		if pt := p.part(o.PartName); pt != nil {
			pt.contentType = o.ContentType
		}
	}
	return nil
}

func parseRelationships(data []byte) (*relationships, error) {
	var doc xmlRelationships
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	set := &relationships{}
	for _, r := range doc.Relationships {
		set.items = append(set.items, &relationship{
			ID:         r.ID,
			Type:       r.Type,
			Target:     r.Target,
			TargetMode: r.TargetMode,
		})
	}
	return set, nil
}
