// Package output provides utilities for formatting and displaying forecast results.
package output

import (
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/iwvelando/fleet-forecast/internal/forecast"
	"github.com/iwvelando/fleet-forecast/pkg/format"
	"github.com/iwvelando/fleet-forecast/pkg/sensitivity"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// WritePretty writes human-readable rather than machine-readable tables to w.
func WritePretty(w io.Writer, results []forecast.Forecast) {
	p := message.NewPrinter(language.English)
	for i, result := range results {
		r := result.Results
		_, _ = fmt.Fprintf(w, "--- Results for scenario %s (%s strategy) ---\n", result.Name, r.Strategy)
		_, _ = fmt.Fprintf(w, "Station cost          | %s%s\n", format.WholeCurrency(r.StationCost), stationNote(result))
		_, _ = fmt.Fprintf(w, "Vehicle investment    | %s\n", format.WholeCurrency(r.VehicleInvestment))
		_, _ = fmt.Fprintf(w, "Total investment      | %s\n", format.WholeCurrency(r.TotalInvestment))
		_, _ = fmt.Fprintf(w, "Payback period        | %s\n", r.Payback)
		if r.ZeroInvestment {
			_, _ = fmt.Fprintf(w, "ROI                   | n/a (no investment)\n")
		} else {
			_, _ = fmt.Fprintf(w, "ROI                   | %s\n", format.Percent(r.ROI))
			_, _ = fmt.Fprintf(w, "Annual rate of return | %s\n", format.Percent(r.AnnualRateOfReturn))
		}
		_, _ = fmt.Fprintf(w, "Net cash flow         | %s\n", format.WholeCurrency(r.NetCashFlow))
		_, _ = fmt.Fprintf(w, "CO2 reduction         | %s (%s avoided)\n", format.Percent(r.CO2Reduction), format.Tonnes(r.TotalEmissionsSaved))
		_, _ = fmt.Fprintf(w, "Light-duty cost/mile  | %s gasoline, %s CNG (%s lower)\n",
			p.Sprintf("$%.3f", r.CostPerMileGasoline), p.Sprintf("$%.3f", r.CostPerMileCNG), format.Percent(r.CostReduction))
		_, _ = fmt.Fprintf(w, "\n")

		_, _ = fmt.Fprintf(w, "Year | Light | Medium | Heavy | Investment | Savings | Cumulative Savings | Cumulative Investment | Notes\n")
		_, _ = fmt.Fprintf(w, "____ | _____ | ______ | _____ | __________ | _______ | __________________ | _____________________ | _____\n")
		for y, label := range result.Years {
			d := r.VehicleDistribution[y]
			_, _ = p.Fprintf(w, "%s | %d | %d | %d | $%.0f | $%.0f | $%.0f | $%.0f | %s\n",
				label, d.Light, d.Medium, d.Heavy, d.Investment,
				r.YearlySavings[y], r.CumulativeSavings[y], r.CumulativeInvestment[y],
				strings.Join(result.Notes[label], ","))
		}

		if len(result.Sensitivity) > 0 {
			_, _ = fmt.Fprintf(w, "\n")
			writeTornado(w, result.Tornado)
		}
		if i < len(results)-1 {
			_, _ = fmt.Fprintf(w, "\n")
		}
	}
}

func stationNote(result forecast.Forecast) string {
	r := result.Results
	if r.AnnualTariff > 0 {
		return fmt.Sprintf(" (financed, %s/year tariff)", format.Currency(r.AnnualTariff))
	}
	if r.Station != nil {
		return fmt.Sprintf(" (turnkey, %s tier)", r.Station.Tier)
	}
	return " (turnkey)"
}

func writeTornado(w io.Writer, swings []sensitivity.Swing) {
	_, _ = fmt.Fprintf(w, "Sensitivity           | Low ROI | High ROI | Swing\n")
	for _, s := range swings {
		_, _ = fmt.Fprintf(w, "%-21s | %s | %s | %s\n", s.Variable, format.Percent(s.LowROI), format.Percent(s.HighROI), format.Percent(s.Range))
	}
}

// CsvString renders every scenario year as one quoted CSV row.
func CsvString(results []forecast.Forecast) string {
	var b strings.Builder
	b.WriteString(`"scenario","year","light","medium","heavy","vehicle investment","yearly savings","cumulative savings","cumulative investment","emissions saved (kg)","notes"`)
	b.WriteString("\n")
	for _, result := range results {
		r := result.Results
		for y, label := range result.Years {
			d := r.VehicleDistribution[y]
			fmt.Fprintf(&b, `"%s","%s","%d","%d","%d","%.2f","%.2f","%.2f","%.2f","%.2f","%s"`,
				csvEscape(result.Name), label, d.Light, d.Medium, d.Heavy, d.Investment,
				r.YearlySavings[y], r.CumulativeSavings[y], r.CumulativeInvestment[y], r.YearlyEmissionsSaved[y],
				csvEscape(strings.Join(result.Notes[label], ",")))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func csvEscape(s string) string {
	return strings.ReplaceAll(s, `"`, `""`)
}

// WriteJSON writes v as indented JSON to w.
func WriteJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// WriteStations writes a station quote table for each scenario.
func WriteStations(w io.Writer, estimates []forecast.StationEstimate) {
	p := message.NewPrinter(language.English)
	_, _ = fmt.Fprintf(w, "Scenario | Type | Business | Tier | Daily GGE | Cost | Annual Tariff\n")
	_, _ = fmt.Fprintf(w, "________ | ____ | ________ | ____ | _________ | ____ | _____________\n")
	for _, e := range estimates {
		_, _ = p.Fprintf(w, "%s | %s | %s | %s | %.1f | $%.0f | $%.0f\n",
			e.Name, e.Config.Type, e.Config.Business, e.Quote.Tier, e.Quote.DailyGGE, e.Quote.Cost, e.AnnualTariff)
	}
}

// WriteSensitivity writes every sweep point of every scenario.
func WriteSensitivity(w io.Writer, results []forecast.Forecast) {
	for i, result := range results {
		_, _ = fmt.Fprintf(w, "--- Sensitivity for scenario %s ---\n", result.Name)
		if len(result.Sensitivity) == 0 {
			_, _ = fmt.Fprintf(w, "no sweeps configured\n")
		}
		for _, series := range result.Sensitivity {
			_, _ = fmt.Fprintf(w, "%s\n", series.Variable)
			for _, point := range series.Points {
				_, _ = fmt.Fprintf(w, "  x%.2f | ROI %s | net %s | payback %s\n",
					point.Multiplier, format.Percent(point.ROI), format.WholeCurrency(point.NetCashFlow), point.Payback)
			}
		}
		if len(result.Tornado) > 0 {
			writeTornado(w, result.Tornado)
		}
		if i < len(results)-1 {
			_, _ = fmt.Fprintf(w, "\n")
		}
	}
}
