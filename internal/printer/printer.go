package printer

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/kpauljoseph/invoicepack/pkg/logger"
)

const (
	StyleLP      = "lp"
	StyleSumatra = "sumatra"

	DefaultTimeout = 10 * time.Second
)

var ErrPrintFailed = errors.New("print failed")

type Printer interface {
	Print(ctx context.Context, path, printerName string) error
}

// CommandPrinter hands files to an external print command. An empty printer
// name selects the system default printer.
type CommandPrinter struct {
	command string
	style   string
	timeout time.Duration
	logger  *logger.Logger
}

func NewCommandPrinter(command, style string, timeout time.Duration, logger *logger.Logger) *CommandPrinter {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &CommandPrinter{
		command: command,
		style:   style,
		timeout: timeout,
		logger:  logger,
	}
}

func (p *CommandPrinter) Args(path, printerName string) []string {
	switch p.style {
	case StyleSumatra:
		if printerName == "" {
			return []string{"-print-to-default", "-silent", path}
		}
		return []string{"-print-to", printerName, "-silent", path}
	default:
		if printerName == "" {
			return []string{path}
		}
		return []string{"-d", printerName, path}
	}
}

func (p *CommandPrinter) Print(ctx context.Context, path, printerName string) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	args := p.Args(path, printerName)
	p.logger.Debug("Running %s %s", p.command, strings.Join(args, " "))

	out, err := exec.CommandContext(ctx, p.command, args...).CombinedOutput()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			err = fmt.Errorf("timed out after %s", p.timeout)
		}
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("%w: %s: %v (%s)", ErrPrintFailed, filepath.Base(path), err, msg)
		}
		return fmt.Errorf("%w: %s: %v", ErrPrintFailed, filepath.Base(path), err)
	}

	return nil
}
