// Package translate translates spreadsheet columns, typically search
// results scraped in Simplified Chinese, into English.
//
// Google calls the Cloud Translation v2 API; authenticate with an API key or
// Application Default Credentials. Mapper applies any Translator to the
// columns of a sheet.Table and never lets one failed cell abort the table.
package translate
