package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/noborus/ov/oviewer"

	"hnsearch/internal/domain"
)

var errNoProgram = errors.New("program not set")

// terminal is the part of *tea.Program the pager needs
type terminal interface {
	ReleaseTerminal() error
	RestoreTerminal() error
}

// ResultsPager shows a full result set in the ov pager
type ResultsPager struct {
	program terminal
}

// NewResultsPager creates a new results pager
func NewResultsPager() *ResultsPager {
	return &ResultsPager{}
}

// SetProgram sets the program whose terminal the pager borrows
func (p *ResultsPager) SetProgram(t terminal) {
	p.program = t
}

// RenderResults renders every hit as plain text for the pager
func RenderResults(query string, rs domain.ResultSet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Results for %q (%d hits)\n\n", query, len(rs.Hits))
	for i, hit := range rs.Hits {
		fmt.Fprintf(&b, "%4d. %s\n", i+1, hit.DisplayTitle())
		if hit.URL != "" {
			fmt.Fprintf(&b, "      %s\n", hit.URL)
		}
	}
	return b.String()
}

// Show displays content in ov, handing the terminal back afterwards
func (p *ResultsPager) Show(content string) error {
	if p.program == nil {
		return errNoProgram
	}

	// Release terminal control to run ov
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Give ov time to exit before restoring the terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
