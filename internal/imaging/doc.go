// Package imaging loads, filters and shrinks the images a batch run processes.
//
// It covers three jobs:
//
//   - Loading: ImageCache decodes PNG, JPEG, GIF, BMP and TIFF files once per
//     batch row, and LoadImageInfo reports dimensions and format for the
//     catalog workbook.
//   - Pre-processing: named Filters (sharpen, kernel9, unsharp, binarize,
//     threshold, denoise, enhance) produce the second image a comparison run
//     OCRs. Filters are built from bild and disintegration/imaging
//     primitives and never modify their input.
//   - Embedding: Resize, Fit and EncodePNG produce the thumbnails written
//     into spreadsheets.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Filters are stateless.
package imaging
