package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ironsheep/ocr-batch/internal/nlp"
	"github.com/ironsheep/ocr-batch/internal/sheet"
	"github.com/ironsheep/ocr-batch/internal/translate"
	"github.com/ironsheep/ocr-batch/internal/wordcloud"
)

type TranslateCmd struct {
	Input   string   `arg:"-i,--input,required" help:"workbook to translate"`
	Output  string   `arg:"-o,--output,required" help:"translated workbook"`
	Sheet   string   `arg:"--sheet" help:"sheet to read (default: first)"`
	Columns []string `arg:"--columns" help:"columns to translate"`
	From    string   `arg:"--from" help:"source language"`
	To      string   `arg:"--to" help:"target language"`
}

func (c *TranslateCmd) execute(ctx context.Context, e *env) error {
	tc := e.cfg.Translate
	if c.From != "" {
		tc.Source = c.From
	}
	if c.To != "" {
		tc.Target = c.To
	}
	if len(c.Columns) > 0 {
		tc.Columns = c.Columns
	}

	table, err := sheet.ReadTable(c.Input, c.Sheet)
	if err != nil {
		return err
	}
	client, err := translate.NewGoogle(ctx, tc.APIKey, tc.Source, tc.Target)
	if err != nil {
		return err
	}

	mapper := translate.NewMapper(client, e.log)
	summary := mapper.Table(ctx, table, tc.Columns, tc.DropColumn, tc.DropValue)
	if err := sheet.SaveColumns(c.Input, c.Output, c.Sheet, table, tc.Columns); err != nil {
		return err
	}

	fmt.Printf("Dropped %d rows, translated %d cells, %d failures\n", summary.Dropped, summary.Translated, summary.Failed)
	fmt.Printf("Translated workbook saved to %s\n", c.Output)
	return nil
}

type MineCmd struct {
	Input           string `arg:"-i,--input,required" help:"workbook with product listings"`
	Sheet           string `arg:"--sheet" default:"Foreign Trade Matched Data Pull" help:"sheet to read"`
	Column          string `arg:"--column" default:"Product Description" help:"column holding the listing text"`
	Substances      string `arg:"-s,--substances" help:"workbook with Substance and Synonyms columns"`
	SubstancesSheet string `arg:"--substances-sheet" help:"sheet of the substances workbook (default: first)"`
	Top             int    `arg:"--top" default:"20" help:"how many words and phrases to list"`
	Cloud           string `arg:"--cloud" help:"write a word cloud PNG of the key words"`
	Extract         string `arg:"--extract" help:"write the extracted fields to this workbook"`
}

func (c *MineCmd) execute(ctx context.Context, e *env) error {
	table, err := sheet.ReadTable(c.Input, c.Sheet)
	if err != nil {
		return err
	}
	if table.Column(c.Column) < 0 {
		return &userError{msg: fmt.Sprintf("Column %q not found in sheet %q.", c.Column, c.Sheet)}
	}

	substances := nlp.NewSet()
	if c.Substances != "" {
		subs, err := sheet.ReadTable(c.Substances, c.SubstancesSheet)
		if err != nil {
			return err
		}
		substances = nlp.SubstanceNames(subs.Values("Substance"), subs.Values("Synonyms"))
		e.log.WithField("names", len(substances)).Debug("loaded substance names")
	}

	analysis := nlp.NewAnalyzer(substances).Analyze(table.Values(c.Column))

	fmt.Printf("Number of unique companies: %d\n", analysis.UniqueCompanies())
	fmt.Printf("Number of unique CAS numbers: %d\n", analysis.UniqueCAS())
	fmt.Printf("Number of skipped entries: %d\n", analysis.Skipped)
	fmt.Printf("\nTop %d most common words:\n", c.Top)
	for _, entry := range analysis.Words.MostCommon(c.Top) {
		fmt.Printf("%s: %d\n", entry.Key, entry.Count)
	}
	fmt.Printf("\nTop %d most common phrases:\n", c.Top)
	for _, entry := range analysis.Phrases.MostCommon(c.Top) {
		fmt.Printf("%s: %d\n", entry.Key, entry.Count)
	}

	if c.Extract != "" {
		out := &sheet.Table{Header: nlp.FieldNames}
		for _, fields := range analysis.Extracted {
			out.Rows = append(out.Rows, fields.Row())
		}
		if err := sheet.WriteTable(c.Extract, "Extracted", out); err != nil {
			return err
		}
		fmt.Printf("\nExtracted information saved to %s\n", c.Extract)
	}

	if c.Cloud != "" {
		if err := saveCloud(c.Cloud, analysis.Words.MostCommon(0)); err != nil {
			return err
		}
		fmt.Printf("Word cloud saved to %s\n", c.Cloud)
	}
	return nil
}

type WordcloudCmd struct {
	Input      string `arg:"-i,--input" help:"English text file (asked for when empty)"`
	Output     string `arg:"-o,--output" default:"wordcloud.png" help:"word cloud PNG"`
	Chart      string `arg:"--chart" help:"also write a bar chart of the top words"`
	Top        int    `arg:"--top" default:"20" help:"words in the bar chart"`
	Background string `arg:"--background" default:"#FFFFFF" help:"background color"`
}

func (c *WordcloudCmd) execute(e *env) error {
	path := c.Input
	if path == "" {
		var err error
		if path, err = newLinePrompter().Prompt("Enter the path and text file name: "); err != nil {
			return err
		}
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &userError{msg: "The file was not found. Please check the path and try again."}
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	entries := wordcloud.Frequencies(string(data))
	e.log.WithField("words", len(entries)).Debug("counted words")

	opts := wordcloud.DefaultOptions()
	if opts.Background, err = wordcloud.ParseColor(c.Background); err != nil {
		return err
	}
	cloud, err := wordcloud.Render(entries, opts)
	if errors.Is(err, wordcloud.ErrNoWords) {
		return &userError{msg: "No words left to draw after removing stopwords."}
	}
	if err != nil {
		return err
	}
	if err := cloud.SavePNG(c.Output); err != nil {
		return err
	}
	e.log.WithField("words", cloud.Words).Debug("drew word cloud")
	fmt.Printf("Word cloud saved to %s\n", c.Output)

	if c.Chart != "" {
		var buf bytes.Buffer
		if err := wordcloud.BarChart(&buf, fmt.Sprintf("Top %d words", c.Top), entries, c.Top); err != nil {
			return err
		}
		if err := os.WriteFile(c.Chart, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", c.Chart, err)
		}
		fmt.Printf("Bar chart saved to %s\n", c.Chart)
	}
	return nil
}

func saveCloud(path string, entries []nlp.Entry) error {
	cloud, err := wordcloud.Render(entries, wordcloud.DefaultOptions())
	if errors.Is(err, wordcloud.ErrNoWords) {
		return &userError{msg: "No key words to draw."}
	}
	if err != nil {
		return err
	}
	return cloud.SavePNG(path)
}
