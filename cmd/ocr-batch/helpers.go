package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/ironsheep/ocr-batch/internal/batch"
	"github.com/ironsheep/ocr-batch/internal/ocr"
	"github.com/ironsheep/ocr-batch/internal/sheet"
)

// userError carries a message printed as is instead of logged.
type userError struct {
	msg string
}

func (e *userError) Error() string { return e.msg }

func userMessage(err error) (string, bool) {
	var ue *userError
	if errors.As(err, &ue) {
		return ue.msg, true
	}
	return "", false
}

// linePrompter asks questions on out and reads answers from in.
type linePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newLinePrompter() *linePrompter {
	return &linePrompter{in: bufio.NewReader(os.Stdin), out: os.Stdout}
}

func (p *linePrompter) Prompt(question string) (string, error) {
	fmt.Fprint(p.out, question)
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// imageDir returns the directory from the flag, or asks for it when the
// flag is empty. prompted reports whether the user was asked.
func imageDir(flag, question, invalid string, p *linePrompter) (dir string, prompted bool, err error) {
	dir = strings.TrimSpace(flag)
	if dir == "" {
		if dir, err = p.Prompt(question); err != nil {
			return "", true, err
		}
		prompted = true
	}
	if err := batch.CheckDir(dir); err != nil {
		return "", prompted, &userError{msg: invalid}
	}
	return dir, prompted, nil
}

// workbookPath resolves the output workbook in dir. The name is asked for
// when the directory was asked for and no --output was given.
func workbookPath(dir, name string, prompted, overwrite bool, question string, p *linePrompter) (string, error) {
	if name == "" && prompted {
		var err error
		if name, err = p.Prompt(question); err != nil {
			return "", err
		}
	}

	var prompter sheet.Prompter
	if interactive() {
		prompter = p
	}
	path, err := sheet.ResolveOutput(dir, name, overwrite, prompter)
	if errors.Is(err, sheet.ErrOutputExists) {
		return "", &userError{msg: err.Error() + " (use --overwrite to replace it)"}
	}
	return path, err
}

// newReader builds the configured engine wrapped in a language-fallback
// reader. The caller closes the engine.
func newReader(ctx context.Context, e *env, engine string) (*ocr.Reader, error) {
	if engine != "" {
		e.cfg.Engine = engine
	}
	eng, err := ocr.NewEngine(ctx, ocr.Options{
		Name:           e.cfg.Engine,
		TessdataPrefix: e.cfg.TessdataPrefix,
		TesseractPath:  e.cfg.TesseractPath,
		DocumentAI: ocr.DocumentAIOptions{
			ProjectID:       e.cfg.DocumentAI.ProjectID,
			Location:        e.cfg.DocumentAI.Location,
			ProcessorID:     e.cfg.DocumentAI.ProcessorID,
			CredentialsFile: e.cfg.DocumentAI.CredentialsFile,
		},
		AWSRegion: e.cfg.AWSRegion,
	})
	if err != nil {
		return nil, err
	}
	e.log.WithField("engine", eng.Name()).Debug("OCR engine ready")
	return &ocr.Reader{
		Engine:    eng,
		Languages: e.cfg.Languages,
		Fallback:  e.cfg.FallbackLanguages,
	}, nil
}

func closeReader(e *env, r *ocr.Reader) {
	if err := r.Engine.Close(); err != nil {
		e.log.WithError(err).Warn("failed to close OCR engine")
	}
}

// progress draws one bar per run on stderr.
func progress(total int, description string) batch.Progress {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetItsString("image"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(os.Stderr) }),
	)
}
