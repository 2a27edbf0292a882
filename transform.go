package bsreshape

import (
	"bytes"
	"errors"
	"fmt"
	"os"
)

// Result is the outcome of a transformation.
type Result struct {
	// Document is the rewritten sheet.
	Document *Document
	// Header is the secondary header record the new rows sit under.
	Header []string
	// Rows are the appended rows in recipe order.
	Rows []Row
	// Unresolved lists the labels emitted as blank placeholders.
	Unresolved []string
	// PrimaryRows and ExistingRows count the labels found in each block.
	PrimaryRows  int
	ExistingRows int
}

// Transform builds the restructured document in memory.
// The layout and header are validated before anything else happens, and doc
// is left untouched.
func Transform(doc *Document, recipe Recipe, layout Layout) (*Result, error) {
	if doc == nil {
		return nil, errors.New("document cannot be nil")
	}
	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}
	if err := recipe.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recipe: %w", err)
	}
	if err := ValidateHeader(doc, layout); err != nil {
		return nil, err
	}

	primary, err := BuildIndex(doc, layout.PrimaryStart, layout.PrimaryEnd, layout.Width())
	if err != nil {
		return nil, fmt.Errorf("failed to index primary block: %w", err)
	}
	existing, err := BuildIndex(doc, layout.SecondaryStart, layout.SecondaryEnd, layout.Width())
	if err != nil {
		return nil, fmt.Errorf("failed to index secondary block: %w", err)
	}

	rows, err := BuildRows(recipe, primary, existing, layout)
	if err != nil {
		return nil, err
	}

	out, err := AppendRows(doc, layout.KeepLines(), rows)
	if err != nil {
		return nil, err
	}

	header, err := doc.Record(layout.SecondaryHeaderLine)
	if err != nil {
		return nil, err
	}
	// Cells past the value columns carry no data in the new rows
	header = header[:1+layout.Width()]

	return &Result{
		Document:     out,
		Header:       header,
		Rows:         rows,
		Unresolved:   recipe.Placeholders(),
		PrimaryRows:  primary.Len(),
		ExistingRows: existing.Len(),
	}, nil
}

// Options controls RewriteFile.
type Options struct {
	Recipe Recipe
	Layout Layout
	// DryRun builds the result without touching the file.
	DryRun bool
}

// DefaultOptions returns the built-in recipe and layout.
func DefaultOptions() Options {
	return Options{
		Recipe: DefaultRecipe(),
		Layout: DefaultLayout(),
	}
}

// BuildFile loads the sheet at path and transforms it without writing
// anything. It returns the result and the encoded content a rewrite would
// store, in the same format and compression as the input.
func BuildFile(path string, opts Options) (*Result, []byte, error) {
	fileType := DetectFileType(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc, err := Load(bytes.NewReader(data), fileType)
	if err != nil {
		return nil, nil, err
	}

	result, err := Transform(doc, opts.Recipe, opts.Layout)
	if err != nil {
		return nil, nil, err
	}

	encoded, err := result.Document.Encode()
	if err != nil {
		return nil, nil, err
	}
	return result, encoded, nil
}

// RewriteFile builds the sheet at path and, unless DryRun is set, overwrites
// path with the result. The file is only written after every row has been
// built.
func RewriteFile(path string, opts Options) (*Result, []byte, error) {
	result, encoded, err := BuildFile(path, opts)
	if err != nil {
		return nil, nil, err
	}
	if opts.DryRun {
		return result, encoded, nil
	}
	if err := WriteFile(path, encoded); err != nil {
		return nil, nil, err
	}
	return result, encoded, nil
}
