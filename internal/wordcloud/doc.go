// Package wordcloud draws word-frequency pictures: a word cloud PNG and a
// bar chart of the most frequent words.
//
// The cloud is laid out by github.com/psykhi/wordclouds, set in the Go
// Regular font from golang.org/x/image unless another font file is given,
// and colored from a go-colorful HCL palette.
package wordcloud
