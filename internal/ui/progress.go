package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

const barWidth = 30

// Progress renders batch progress: a redrawn bar on terminals, a log line
// every 10% otherwise.
type Progress struct {
	out    io.Writer
	tty    bool
	logger *logrus.Entry

	lastDecile int
}

func NewProgress(out io.Writer, tty bool, logger *logrus.Entry) *Progress {
	return &Progress{
		out:        out,
		tty:        tty,
		logger:     logger,
		lastDecile: -1,
	}
}

// Update has the batcher progress callback signature.
func (p *Progress) Update(current, total int) {
	if total <= 0 {
		return
	}

	percent := current * 100 / total

	if !p.tty {
		decile := percent / 10
		if decile == p.lastDecile {
			return
		}

		p.lastDecile = decile

		p.logger.WithFields(logrus.Fields{
			"current": current,
			"total":   total,
		}).Infof("Progress: %d%%", percent)

		return
	}

	filled := current * barWidth / total
	bar := strings.Repeat("=", filled) + strings.Repeat(" ", barWidth-filled)

	fmt.Fprintf(p.out, "\r[%s] %d/%d (%d%%)", bar, current, total, percent)

	if current == total {
		fmt.Fprintln(p.out)
	}
}
