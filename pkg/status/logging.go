package status

import (
	"github.com/pterm/pterm"
	"github.com/walteh/migrc/pkg/batch"
	"github.com/walteh/migrc/pkg/log"
)

// 📢 ConsoleReporter implements batch.Reporter on top of the console
// logger: one pterm-prefixed line per file in real time, partial-match
// warnings, and the final tally.
type ConsoleReporter struct {
	logger    *log.Logger
	formatter OutcomeFormatter
}

// 🏭 NewConsoleReporter creates a reporter writing through the logger
func NewConsoleReporter(logger *log.Logger) *ConsoleReporter {
	return &ConsoleReporter{
		logger:    logger,
		formatter: NewDefaultOutcomeFormatter(),
	}
}

// 📝 FileResult prints the status line for one candidate file
func (r *ConsoleReporter) FileResult(res batch.FileResult) {
	msg := r.formatter.FormatFileOutcome(res)

	var printer *pterm.PrefixPrinter
	switch res.Outcome {
	case batch.OutcomeUpdated:
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"})
	case batch.OutcomeFailed:
		printer = pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"})
	case batch.OutcomeNotFound:
		printer = pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"})
	case batch.OutcomeAlreadyMigrated:
		printer = pterm.Info.WithPrefix(pterm.Prefix{Text: "⏭️"})
	default:
		printer = pterm.Info.WithPrefix(pterm.Prefix{Text: "ℹ️"})
	}
	printer.WithWriter(r.logger.Console()).Println(msg)

	if res.Declined > 0 {
		r.logger.Warning(r.formatter.FormatPartial(res))
	}
}

// 📝 Summary prints the final tally after the last candidate, with
// warning lines whenever files failed or occurrences were left verbatim
func (r *ConsoleReporter) Summary(rep *batch.Report) {
	r.logger.LogNewline()
	if failed := rep.Failed(); failed > 0 {
		r.logger.Warningf("%d file(s) failed", failed)
	}
	if declined := rep.Declined(); declined > 0 {
		r.logger.Warningf("%d occurrence(s) left as-is across the run", declined)
	}
	r.logger.Success(r.formatter.FormatSummary(rep.Updated(), rep.Total()))
}
