package slidegen

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// createPackage opens outPath for writing and returns an empty package bound
// to it. The file is removed again unless commit succeeds.
func createPackage(outPath string) (*Package, error) {
	p := newPackage()
	if err := p.attachOutput(outPath); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Package) attachOutput(outPath string) error {
	dir := filepath.Dir(outPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("%w: %w", ErrDestination, err)
		}
	}
	f, err := os.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDestination, err)
	}
	p.out = f
	p.outPath = outPath
	return nil
}

// WriteTo serializes the package as a zip archive.
func (p *Package) WriteTo(w io.Writer) error {
	zw := zip.NewWriter(w)

	if err := writeXMLToZip(zw, "[Content_Types].xml", p.contentTypes()); err != nil {
		return err
	}
	if err := writeXMLToZip(zw, "_rels/.rels", p.rootRels.marshal()); err != nil {
		return err
	}
	for _, name := range p.order {
		pt := p.parts[name]
		fw, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("failed to create %s in zip: %w", name, err)
		}
		if _, err := fw.Write(pt.data); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		if pt.rels != nil && len(pt.rels.items) > 0 {
			if err := writeXMLToZip(zw, relsPathFor(name), pt.rels.marshal()); err != nil {
				return err
			}
		}
	}
	return zw.Close()
}

// commit writes the package to its output file and releases the handle.
func (p *Package) commit() error {
	if p.out == nil {
		return fmt.Errorf("package has no output")
	}
	writeErr := p.WriteTo(p.out)
	closeErr := p.out.Close()
	p.out = nil
	if writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		os.Remove(p.outPath)
		return writeErr
	}
	p.committed = true
	return nil
}

// discard releases the output handle and removes the file unless the package
// was committed. It is safe to call more than once.
func (p *Package) discard() {
	if p.committed {
		return
	}
	if p.out != nil {
		p.out.Close()
		p.out = nil
	}
	if p.outPath != "" {
		os.Remove(p.outPath)
	}
}
