package export

import (
	"context"
	"fmt"
	"time"

	"github.com/mwarren-dev/finsight/internal/money"
	"github.com/mwarren-dev/finsight/internal/period"
	"github.com/mwarren-dev/finsight/internal/report"
	"github.com/mwarren-dev/finsight/internal/transaction"
)

// Config carries the export service's explicit configuration.
type Config struct {
	// Now supplies the reference instant for relative windows and the
	// generation timestamp. Defaults to time.Now.
	Now func() time.Time
}

// Service runs the export pipeline: period filter, summary, codec.
type Service struct {
	transactions *transaction.Service
	formatter    *money.Formatter
	now          func() time.Time
}

func NewService(txService *transaction.Service, formatter *money.Formatter, cfg Config) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Service{
		transactions: txService,
		formatter:    formatter,
		now:          now,
	}
}

// Export produces an artifact for the options. Validation failures (bad
// format, bad custom bounds) surface before any rendering work begins and
// never leave a partial artifact behind. Export runs to completion or
// fails; retry is the caller's call.
func (s *Service) Export(ctx context.Context, opts Options) (*Artifact, error) {
	if opts.Format != FormatCSV && opts.Format != FormatPDF {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}

	now := s.now()

	r, err := period.Resolve(opts.Window, opts.Custom, now)
	if err != nil {
		return nil, err
	}

	progress(opts, 0)

	filter := transaction.ListFilter{}
	if r != nil {
		filter.StartDate = &r.Start
		if !r.End.IsZero() {
			filter.EndDate = &r.End
		}
	}

	txs, err := s.transactions.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	progress(opts, 25)

	totals := report.Sum(txs)

	progress(opts, 50)

	label := period.Describe(opts.Window, opts.Custom)

	var data []byte

	switch opts.Format {
	case FormatCSV:
		data, err = renderCSV(txs, totals, opts, s.formatter)
	case FormatPDF:
		data, err = renderPDF(txs, totals, opts, s.formatter, label, now)
	}

	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", opts.Format, err)
	}

	progress(opts, 100)

	return &Artifact{
		Filename:    fmt.Sprintf("transactions_%s.%s", now.Format("20060102"), opts.Format),
		ContentType: contentType(opts.Format),
		Data:        data,
	}, nil
}

func contentType(f Format) string {
	if f == FormatPDF {
		return "application/pdf"
	}

	return "text/csv; charset=utf-8"
}

func progress(opts Options, pct int) {
	if opts.Progress != nil {
		opts.Progress(pct)
	}
}
