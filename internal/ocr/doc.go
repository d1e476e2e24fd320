// Package ocr provides the interchangeable OCR engines the batch runners call.
//
// Every engine implements Engine and returns a Result: the recognized words
// in reading order, each with a confidence in [0,1] and, where the engine
// reports one, a pixel bounding box.
//
// # Engines
//
//   - "tesseract": libtesseract in-process through gosseract/v2 (needs cgo)
//   - "tesseract-cli": an external tesseract binary run with hOCR output,
//     parsed word by word with x_wconf confidences
//   - "documentai": a Google Document AI OCR processor
//   - "textract": Amazon Textract synchronous text detection
//
// NewEngine builds one from Options; unknown names fail with
// ErrUnknownEngine.
//
// # Prerequisites
//
// The Tesseract engines need Tesseract and the language data for every
// language requested:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-chi-sim tesseract-ocr-chi-tra
//   - macOS: brew install tesseract tesseract-lang
//
// Cloud engines use the standard credential chains of their SDKs
// (GOOGLE_APPLICATION_CREDENTIALS, AWS shared config).
//
// # Languages
//
// Languages are Tesseract codes ("eng", "chi_sim", "chi_tra", ...). Reader
// pairs an engine with a primary set and a fallback set: the fallback is
// tried only when the primary set finds no text at all.
package ocr
