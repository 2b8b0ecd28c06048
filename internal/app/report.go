package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fx-xf/bfte/generator"
	"github.com/fx-xf/bfte/internal/ui"
)

// Report renders an analysis as a terminal panel.
func (a *App) Report(an *Analysis) string {
	rec := an.Record
	counts := ui.KeyValues(
		[2]string{"Length", strconv.Itoa(rec.Length)},
		[2]string{"Digits", strconv.Itoa(rec.NumDigits)},
		[2]string{"Lowercase letters", strconv.Itoa(rec.NumLower)},
		[2]string{"Uppercase letters", strconv.Itoa(rec.NumUpper)},
		[2]string{"Special characters", strconv.Itoa(rec.NumSpecial)},
	)
	entropy := ui.KeyValues(
		[2]string{"Actual entropy", formatEntropy(an.ActualEntropy)},
		[2]string{"Complexity (actual)", ui.StrengthLabel(an.Actual, an.ActualLabel)},
		[2]string{"Predicted entropy (model)", formatEntropy(an.PredictedEntropy)},
		[2]string{"Complexity (model)", ui.StrengthLabel(an.Predicted, an.ModelLabel)},
	)
	title := "Password Analysis"
	if rec.Password != "" {
		title += ": " + rec.Password
	}
	return ui.Panel(ui.Styles.Box, title, counts+"\n"+entropy)
}

func formatEntropy(e float64) string {
	return strconv.FormatFloat(e, 'f', 2, 64)
}

// GenerateReport renders a generated password.
func (a *App) GenerateReport(res generator.Result) string {
	var b strings.Builder
	if res.Clamped {
		fmt.Fprintf(&b, "%s\n\n", ui.Styles.Muted.Render(
			fmt.Sprintf("Minimum password length is %d characters. Using %d.", generator.MinLength, res.Length)))
	}
	b.WriteString(ui.Styles.Success.Render(res.Password))
	return ui.Panel(ui.Styles.InfoBox, "Your generated password", b.String())
}

// TrainReport renders a training summary.
func (a *App) TrainReport(res *TrainResult) string {
	body := ui.KeyValues(
		[2]string{"Run", res.RunID},
		[2]string{"Weights", fmt.Sprint(res.Weights)},
		[2]string{"Train rows", strconv.Itoa(res.TrainRows)},
		[2]string{"Test rows", strconv.Itoa(res.TestRows)},
		[2]string{"Dropped rows", strconv.Itoa(res.Dropped)},
		[2]string{"Test MSE", strconv.FormatFloat(res.TestMetrics.MSE, 'f', 4, 64)},
		[2]string{"Test RMSE", strconv.FormatFloat(res.TestMetrics.RMSE, 'f', 4, 64)},
		[2]string{"Test MAE", strconv.FormatFloat(res.TestMetrics.MAE, 'f', 4, 64)},
		[2]string{"Test R²", strconv.FormatFloat(res.TestMetrics.R2, 'f', 4, 64)},
		[2]string{"Diagrams", strings.Join(res.Diagrams, ", ")},
		[2]string{"Model", res.ModelPath},
	)
	return ui.Panel(ui.Styles.InfoBox, "Model trained", body)
}
