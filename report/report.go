package report

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/angas/elpris-go/convert"
	"github.com/angas/elpris-go/database"
	"github.com/angas/elpris-go/hours"
	"github.com/angas/elpris-go/optimize"
	"github.com/angas/elpris-go/pipeline"
	"github.com/angas/elpris-go/stats"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const LocalePlain = "plain"

type Unit string

const (
	UnitSEK Unit = "sek" // SEK/kWh
	UnitOre Unit = "ore" // öre/kWh
)

func ParseUnit(s string) (Unit, error) {
	switch u := Unit(strings.ToLower(strings.TrimSpace(s))); u {
	case "", UnitSEK:
		return UnitSEK, nil
	case UnitOre, "öre":
		return UnitOre, nil
	default:
		return "", fmt.Errorf("unknown unit %q, expected sek or ore", s)
	}
}

type Options struct {
	Locale string // "plain" or a BCP 47 tag such as "sv-SE"
	Unit   Unit
	// Charging power in kW, an estimated cost is printed for the window when > 0
	ChargingPower float64
	EnergyTax     float64 // SEK/kWh including VAT
	GridBenefit   float64 // SEK/kWh
}

type Printer struct {
	w       io.Writer
	opts    Options
	sprintf func(format string, a ...any) string
}

func New(w io.Writer, opts Options) (*Printer, error) {
	p := &Printer{w: w, opts: opts, sprintf: fmt.Sprintf}
	if opts.Unit == "" {
		p.opts.Unit = UnitSEK
	}
	if opts.Locale != "" && !strings.EqualFold(opts.Locale, LocalePlain) {
		tag, err := language.Parse(opts.Locale)
		if err != nil {
			return nil, fmt.Errorf("invalid locale %q: %w", opts.Locale, err)
		}
		mp := message.NewPrinter(tag)
		p.sprintf = func(format string, a ...any) string {
			return mp.Sprintf(format, a...)
		}
	}
	return p, nil
}

func (p *Printer) Print(r pipeline.Result) error {
	var b strings.Builder

	if !r.HasData() {
		fmt.Fprintf(&b, "No data available for %s on %s\n", r.Zone, hours.FormatDate(r.Date))
		return p.write(b.String())
	}

	fmt.Fprintf(&b, "Electricity prices for zone %s:\n", r.Zone)
	for _, e := range r.Display {
		fmt.Fprintf(&b, "%s | %s | %s\n", hours.FormatMinute(e.Start), p.price(e.Price), e.Source)
	}

	if st, ok := r.Statistics.Get(); ok {
		b.WriteString("\n")
		p.writeStatistics(&b, st)
	}

	if w, ok := r.Window.Get(); ok {
		b.WriteString("\n")
		p.writeWindow(&b, w)
	} else if r.WindowErr != nil {
		b.WriteString("\n")
		b.WriteString(WindowErrorText(r.WindowErr, r.ChargingHours.Value(), len(r.Series)))
		b.WriteString("\n")
	}

	return p.write(b.String())
}

func (p *Printer) writeStatistics(b *strings.Builder, st stats.Statistics) {
	fmt.Fprintf(b, "Mean price:          %s\n", p.price(st.Mean))
	fmt.Fprintf(b, "Cheapest hour:       %s | %s\n", hours.FormatMinute(st.Cheapest.Start), p.price(st.Cheapest.Price))
	fmt.Fprintf(b, "Most expensive hour: %s | %s\n", hours.FormatMinute(st.MostExpensive.Start), p.price(st.MostExpensive.Price))
}

func (p *Printer) writeWindow(b *strings.Builder, w optimize.ChargingWindow) {
	fmt.Fprintf(b, "Cheapest %d-hour charging window: %s - %s\n",
		w.Hours, hours.FormatMinute(w.Start), hours.FormatMinute(w.End))
	fmt.Fprintf(b, "  Total: %s, average: %s\n", p.price(w.Total), p.price(w.Average))
	if p.opts.ChargingPower > 0 {
		cost := w.EstimatedCost(p.opts.ChargingPower, p.opts.EnergyTax, p.opts.GridBenefit)
		fmt.Fprintf(b, "  Estimated cost at %s kW: %s SEK\n",
			p.sprintf("%.1f", p.opts.ChargingPower), p.sprintf("%.2f", cost))
	}
}

// WindowErrorText turns an optimizer error into a message for the user.
func WindowErrorText(err error, requested, available int) string {
	switch {
	case errors.Is(err, optimize.ErrInvalidWindowLength):
		return fmt.Sprintf("Invalid charging window of %d hours, the length must be a positive number of hours", requested)
	case errors.Is(err, optimize.ErrInsufficientData):
		return fmt.Sprintf("Not enough data for a %d-hour window (%d hours available)", requested, available)
	default:
		return fmt.Sprintf("No charging window: %v", err)
	}
}

func (p *Printer) PrintLogEntries(entries []database.LogEntryRow) error {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s %-5s %s", e.Timestamp.Local().Format("2006-01-02 15:04:05"), slog.Level(e.Level), e.Message)
		if e.Attrs != "" {
			fmt.Fprintf(&b, " %s", e.Attrs)
		}
		b.WriteString("\n")
	}
	return p.write(b.String())
}

func (p *Printer) price(sekPerKWh float64) string {
	if p.opts.Unit == UnitOre {
		return p.sprintf("%.1f öre/kWh", convert.SekToOre(sekPerKWh))
	}
	return p.sprintf("%.3f SEK/kWh", sekPerKWh)
}

func (p *Printer) write(s string) error {
	if _, err := io.WriteString(p.w, s); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
