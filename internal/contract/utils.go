package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/seasonlab/dropoff/schema"
)

// Trend label constants for table output.
const (
	AboveValue = "Above" // Season trending above the series average
	BelowValue = "Below" // Season trending below the series average
	OnsetValue = "Onset" // First season of a sustained decline
)

// Color variables for console output.
var (
	AboveColor = color.New(color.FgCyan)              // above average, healthy signal
	BelowColor = color.New(color.FgYellow)            // below average, caution
	OnsetColor = color.New(color.FgRed, color.Bold)   // decline onset, the shark-jump season
	NullColor  = color.New(color.FgGreen, color.Bold) // no decline detected
)

// GetPlainTrendLabel returns a plain text label for a season based on its
// rolling average relative to the series average. This is the core logic
// used for CSV, JSON, and table printing.
func GetPlainTrendLabel(rollingAvg, seriesAvg float64, isOnset bool) string {
	switch {
	case isOnset:
		return OnsetValue
	case rollingAvg < seriesAvg:
		return BelowValue
	default:
		return AboveValue
	}
}

// GetColorTrendLabel returns a colored trend label for console output.
func GetColorTrendLabel(rollingAvg, seriesAvg float64, isOnset bool, useColors bool) string {
	text := GetPlainTrendLabel(rollingAvg, seriesAvg, isOnset)
	if !useColors {
		return text
	}

	switch text {
	case OnsetValue:
		return OnsetColor.Sprint(text)
	case BelowValue:
		return BelowColor.Sprint(text)
	default:
		return AboveColor.Sprint(text)
	}
}

// GetColorCheckStatus returns a colored check status for console output.
func GetColorCheckStatus(status schema.CheckStatus, useColors bool) string {
	text := string(status)
	if !useColors {
		return text
	}

	switch status {
	case schema.CheckFail:
		return OnsetColor.Sprint(text)
	case schema.CheckWarn:
		return BelowColor.Sprint(text)
	default:
		return NullColor.Sprint(text)
	}
}

// GetPlainSharkVerdict returns a plain text verdict for a show's shark-jump
// outcome.
func GetPlainSharkVerdict(season *int) string {
	if season == nil {
		return "No decline"
	}
	return fmt.Sprintf("Jumped at S%d", *season)
}

// GetColorSharkVerdict returns a colored verdict for console output.
func GetColorSharkVerdict(season *int, useColors bool) string {
	text := GetPlainSharkVerdict(season)
	if !useColors {
		return text
	}
	if season == nil {
		return NullColor.Sprint(text)
	}
	return OnsetColor.Sprint(text)
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// TruncateTitle truncates a show title to a maximum width with an ellipsis
// suffix. Requires maxWidth > 3 so there is room for both the ellipsis and
// at least one character of content.
func TruncateTitle(title string, maxWidth int) string {
	runes := []rune(title)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return title
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetRunDBFilePath returns the path to the SQLite DB file for run tracking.
func GetRunDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".dropoff_runs.db"
	}
	return filepath.Join(homeDir, ".dropoff_runs.db")
}
