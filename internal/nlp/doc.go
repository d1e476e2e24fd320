// Package nlp holds the text mining helpers used on OCR output and trade
// listing spreadsheets: cleaning, regex field extraction, stopword-filtered
// tokens, n-grams, frequency tables and a Chinese/Latin split.
//
// Two normalizations exist. Clean keeps only ASCII letters and is used for
// term counting. Normalize keeps digits, punctuation and line breaks and is
// used for field extraction, where a CAS number or a line-terminated value
// must survive.
package nlp
