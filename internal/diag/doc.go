// Package diag defines the diagnostic model shared by the lexer, the driver
// and combinator code running over token streams.
//
// Diagnostic is the central record: severity, a numeric Code with a stable
// string form, a short message, the primary source.Span and optional notes.
// Producers emit through a Reporter (BagReporter collects into a bounded Bag,
// DedupReporter drops repeats) and never format anything themselves;
// rendering lives in internal/diagfmt.
//
// Streams never build diagnostics. A combinator that fails at some stream
// position asks Locate or LocateN for the span and reports it:
//
//	diag.ReportError(r, diag.SynUnexpectedToken, diag.Locate(in), "expected identifier").Emit()
package diag
