// Package writer serializes reconstructed documents into output formats.
//
// A [Writer] encodes a [model.Document] to an io.Writer. Writers are created
// by format:
//
//	w, err := writer.New(writer.FormatDOCX, writer.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	if err := w.Write(out, doc); err != nil {
//	    return err
//	}
//
// Supported formats are plain text, Markdown, HTML, DOCX and PDF. Writers
// only decide presentation: font family, size and justification come from
// [Options]; paragraph and line boundaries come from the document.
//
// Blank pages are kept as empty paragraphs so that output stays aligned
// with the source pages when page breaks are enabled.
package writer
