// Package newman turns one DOCX journal issue into per-article LaTeX
// fragments.
//
// # Quick Start
//
// Create a converter and split a document:
//
//	conv, err := newman.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.ConvertFile(ctx, "issues/vol1.docx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, a := range result.Articles {
//	    fmt.Println(a.FileName(), len(a.Body))
//	}
//
// ConvertFile runs the markup converter (pandoc by default) and then Split.
// Callers that already hold the converter output use Split directly.
//
// # Conversion Pipeline
//
// Each document is processed in the same order:
//
//  1. DOCX to flat LaTeX via pandoc (-f docx -t latex)
//  2. Decoding: UTF-8 check, byte order mark, line endings, NFC
//  3. A fixed sequence of text rewrites (bold groups, lists, number
//     spacing, tag removal, tables, quotes, envelopes, indentation,
//     bullets, figures, scripts, mail links, configured rewrites)
//  4. Splitting at classification markers (IRSTI, ҒТАМР, МРНТИ, ГРНТИ)
//     rewritten to \id{<code>}{}
//
// Text before the first marker is dropped unless WithKeepPreamble is set.
//
// # Projects
//
// A Project is a LaTeX tree with a master document. UpdatePart writes the
// articles of one document to src/<part>/NNN.tex, copies its images to
// media/<part>/ and inserts one \input line per article after the sentinel
// line of the master:
//
//	proj, err := newman.OpenProject("journal")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report, err := proj.UpdatePart(ctx, "issues/vol1.docx")
//
// UpdateParts processes several documents concurrently and inserts their
// inputs in the order the documents were given.
//
// # Errors
//
// Sentinel errors are exported for errors.Is checks: ErrInvalidPartName,
// ErrInvalidEncoding, ErrInvalidPattern, ErrMarkupConversion,
// ErrMasterNotFound, ErrWriteFragment and ErrProjectExists. A document
// with no text yields a Result without articles. A master without a sentinel line is not an error:
// PartReport.Inserted is false and the master is left unchanged.
package newman
