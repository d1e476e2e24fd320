// Package sheet writes runner results to xlsx workbooks and reads tabular
// input for the text tools.
//
// Each runner has its own layout on a single "OCR Results" sheet: a header
// row, then one row per image with the image embedded as a PNG thumbnail in
// the first column. Row heights follow the thumbnail height (pixels × 0.75
// points).
//
// Output names are resolved with ResolveOutput, which never silently
// replaces an existing workbook: it overwrites only when told to, and asks
// through a Prompter otherwise.
//
// Workbooks are produced with github.com/xuri/excelize/v2.
package sheet
