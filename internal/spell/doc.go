// Package spell tokenizes OCR output and flags words missing from an English
// word list.
package spell
