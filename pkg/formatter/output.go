package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/helmcode/sentiment-triage/pkg/model"
)

// DisplayResult formats and writes the analysis of text to w
func DisplayResult(w io.Writer, text string, analysis *model.Analysis, format string) error {
	switch format {
	case "json":
		return displayJSON(w, analysis)
	case "yaml":
		return displayYAML(w, analysis)
	case "human":
		fallthrough
	default:
		displayHuman(w, text, analysis)
	}
	return nil
}

func displayJSON(w io.Writer, analysis *model.Analysis) error {
	output, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

func displayYAML(w io.Writer, analysis *model.Analysis) error {
	output, err := yaml.Marshal(analysis)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, string(output))
	return err
}

func displayHuman(w io.Writer, text string, analysis *model.Analysis) {
	cyan := color.New(color.FgCyan, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)

	fmt.Fprintln(w)

	cyan.Fprintln(w, "📝 TEXT:")
	if strings.TrimSpace(text) == "" {
		fmt.Fprintf(w, "   %s\n\n", color.HiBlackString("(empty)"))
	} else {
		fmt.Fprintf(w, "%s\n\n", wrapText(text, 80, "   "))
	}

	sentimentColor := getSentimentColor(analysis.Sentiment)
	sentimentColor.Fprintf(w, "💬 SENTIMENT: %s\n", strings.ToUpper(string(analysis.Sentiment)))

	severityColor := getSeverityColor(analysis.Severity)
	severityColor.Fprintf(w, "%s SEVERITY: %s\n", getSeverityIcon(analysis.Severity), strings.ToUpper(string(analysis.Severity)))

	if analysis.Source != "" {
		fmt.Fprintf(w, "🔎 Source: %s\n", analysis.Source)
	}

	if analysis.Warning != "" {
		fmt.Fprintln(w)
		yellow.Fprintln(w, "⚠️  WARNING:")
		fmt.Fprintf(w, "   %s\n", color.YellowString(analysis.Warning))
	}

	fmt.Fprintln(w, strings.Repeat("─", 80))
	fmt.Fprintf(w, "💡 %s\n", color.HiBlackString("Run with -o json or -o yaml for machine-readable output"))
}

func getSentimentColor(sentiment model.Sentiment) *color.Color {
	switch sentiment {
	case model.SentimentNegative:
		return color.New(color.FgRed, color.Bold)
	case model.SentimentPositive:
		return color.New(color.FgGreen, color.Bold)
	default:
		return color.New(color.FgWhite, color.Bold)
	}
}

func getSeverityColor(severity model.Severity) *color.Color {
	switch severity {
	case model.SeverityHigh:
		return color.New(color.FgRed)
	case model.SeverityMedium:
		return color.New(color.FgYellow)
	case model.SeverityLow:
		return color.New(color.FgGreen)
	default:
		return color.New(color.FgWhite)
	}
}

func getSeverityIcon(severity model.Severity) string {
	switch severity {
	case model.SeverityHigh:
		return "🟠"
	case model.SeverityMedium:
		return "🟡"
	case model.SeverityLow:
		return "🟢"
	default:
		return "⚪"
	}
}

func wrapText(text string, width int, indent string) string {
	var result strings.Builder
	lines := strings.Split(text, "\n")

	for _, line := range lines {
		words := strings.Fields(line)
		if len(words) == 0 {
			result.WriteString("\n")
			continue
		}

		currentLine := indent
		for _, word := range words {
			if len(currentLine)+len(word)+1 > width {
				result.WriteString(currentLine + "\n")
				currentLine = indent + word
			} else if currentLine == indent {
				currentLine += word
			} else {
				currentLine += " " + word
			}
		}

		if currentLine != indent {
			result.WriteString(currentLine + "\n")
		}
	}

	return strings.TrimSuffix(result.String(), "\n")
}
