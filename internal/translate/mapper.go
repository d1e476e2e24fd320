package translate

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/ocr-batch/internal/logging"
	"github.com/ironsheep/ocr-batch/internal/sheet"
)

// Summary counts what a Mapper did to a table.
type Summary struct {
	Dropped    int
	Translated int
	Failed     int

	// Missing lists requested columns the table does not have.
	Missing []string
}

// Mapper translates spreadsheet columns cell by cell. Identical cells are
// translated once. A cell whose translation fails keeps its original text.
type Mapper struct {
	Translator Translator
	Log        *logrus.Logger

	memo map[string]string
}

// NewMapper returns a Mapper using t.
func NewMapper(t Translator, log *logrus.Logger) *Mapper {
	if log == nil {
		log = logging.Discard()
	}
	return &Mapper{Translator: t, Log: log, memo: make(map[string]string)}
}

// Text translates s. Blank text is returned unchanged without a request.
func (m *Mapper) Text(ctx context.Context, s string) (string, bool) {
	if strings.TrimSpace(s) == "" {
		return s, true
	}
	if out, ok := m.memo[s]; ok {
		return out, true
	}
	out, err := m.Translator.Translate(ctx, s)
	if err != nil {
		m.Log.WithError(err).WithField("text", s).Warn("translation error, keeping original text")
		return s, false
	}
	m.memo[s] = out
	return out, true
}

// Table translates columns of t in place, after dropping the rows whose
// dropColumn cell equals dropValue. An empty dropColumn keeps every row.
// Cancelling ctx stops translation; cells not yet reached keep their text.
func (m *Mapper) Table(ctx context.Context, t *sheet.Table, columns []string, dropColumn, dropValue string) Summary {
	var s Summary
	if dropColumn != "" {
		s.Dropped = DropRows(t, dropColumn, dropValue)
	}

	for _, name := range columns {
		col := t.Column(name)
		if col < 0 {
			m.Log.WithField("column", name).Warn("column not found, skipping")
			s.Missing = append(s.Missing, name)
			continue
		}
		for _, row := range t.Rows {
			if ctx.Err() != nil {
				return s
			}
			out, ok := m.Text(ctx, row[col])
			if !ok {
				s.Failed++
				continue
			}
			if out != row[col] {
				s.Translated++
			}
			row[col] = out
		}
	}
	return s
}

// DropRows removes the rows of t whose column cell equals value and returns
// how many were removed. A missing column removes nothing.
func DropRows(t *sheet.Table, column, value string) int {
	col := t.Column(column)
	if col < 0 {
		return 0
	}
	return t.Filter(func(row []string) bool { return row[col] != value })
}
