// Package batch runs OCR over a directory of images.
//
// Three runners share the same shape, a linear pass over the supported
// files in file-name order producing one record per image:
//
//   - Runner: OCR, confidence labelling, spell check and batch statistics
//   - Comparer: OCR of the original and of a filtered copy, with the
//     tokens a filter added or removed
//   - Cataloger: an inventory of dimensions, format and OCR text
//
// Per-image errors are recorded in that image's record and logged; they
// never abort the batch. Cancelling the context stops a runner between
// images and returns what was finished, marked Interrupted.
package batch
