// Package output provides styled terminal output helpers (success, error,
// warning, item and swap-result formatting) using lipgloss.
package output

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"fabswap/internal/models"
	"fabswap/internal/swap"
)

var (
	// Styles
	titleStyle   = lipgloss.NewStyle().Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	serviceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
)

// Success prints a success message
func Success(format string, args ...interface{}) {
	fmt.Println(successStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	fmt.Println(errorStyle.Render("ERROR: " + fmt.Sprintf(format, args...)))
}

// Warning prints a warning message
func Warning(format string, args ...interface{}) {
	fmt.Println(warningStyle.Render("Warning: " + fmt.Sprintf(format, args...)))
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	fmt.Println(fmt.Sprintf(format, args...))
}

// JSON outputs data as JSON
func JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// Error codes for structured JSON output
const (
	ErrCodeNotFound      = "not_found"
	ErrCodeInvalidInput  = "invalid_input"
	ErrCodeSwapFailed    = "swap_failed"
	ErrCodeDatabaseError = "database_error"
)

// JSONError outputs an error as JSON
func JSONError(code, message string) {
	fmt.Printf(`{"error":{"code":"%s","message":"%s"}}`, code, message)
	fmt.Println()
}

// FormatItemShort formats a placed item on one line.
func FormatItemShort(item *models.PlacedItem) string {
	var parts []string
	parts = append(parts, titleStyle.Render(item.ID))
	parts = append(parts, item.Name)
	if item.ServiceName != "" {
		parts = append(parts, serviceStyle.Render("["+item.ServiceName+"]"))
	}
	parts = append(parts, subtleStyle.Render(item.ClassID))
	parts = append(parts, subtleStyle.Render("@ "+item.Origin.String()))
	return strings.Join(parts, "  ")
}

// FormatItemLong formats a placed item with all property groups.
func FormatItemLong(item *models.PlacedItem) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(fmt.Sprintf("%s: %s", item.ID, item.Name)))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Class: %s\n", item.ClassID))
	if item.ServiceName != "" {
		sb.WriteString(fmt.Sprintf("Service: %s", item.ServiceName))
		if item.ButtonRef != "" {
			sb.WriteString(fmt.Sprintf(" | Button: %s", item.ButtonRef))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("Origin: %s\n", item.Origin))

	if len(item.Connectors) > 0 {
		sb.WriteString(SectionHeader("connectors"))
		for _, c := range item.Connectors {
			sb.WriteString(fmt.Sprintf("  %s %s\n", c.Name, c.End))
		}
	}

	if len(item.Dimensions) > 0 {
		sb.WriteString(SectionHeader("dimensions"))
		for _, k := range sortedFloatKeys(item.Dimensions) {
			sb.WriteString(fmt.Sprintf("  %s: %g\n", k, item.Dimensions[k]))
		}
	}

	if len(item.Options) > 0 {
		sb.WriteString(SectionHeader("options"))
		for _, k := range sortedStringKeys(item.Options) {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", k, item.Options[k]))
		}
	}

	if len(item.CustomData) > 0 {
		sb.WriteString(SectionHeader("custom data"))
		for _, k := range sortedStringKeys(item.CustomData) {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", k, item.CustomData[k]))
		}
	}

	var status []string
	if item.Status != "" {
		status = append(status, "Status: "+item.Status)
	}
	if item.Section != "" {
		status = append(status, "Section: "+item.Section)
	}
	if item.PriceList != "" {
		status = append(status, "Price list: "+item.PriceList)
	}
	if len(status) > 0 {
		sb.WriteString("\n")
		sb.WriteString(strings.Join(status, " | "))
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatSwapResult summarizes a swap or undo outcome, warnings included.
func FormatSwapResult(res swap.Result) string {
	var sb strings.Builder
	if res.Item != nil {
		sb.WriteString(FormatItemShort(res.Item))
		sb.WriteString("\n")
	}
	for _, g := range res.Transfer.Failed() {
		sb.WriteString(warningStyle.Render(fmt.Sprintf("  transfer %s failed: %s", g.Group, g.Reason)))
		sb.WriteString("\n")
	}
	for _, w := range res.Warnings {
		sb.WriteString(warningStyle.Render("  " + w))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatSwapRecord formats one undo-history entry.
func FormatSwapRecord(rec swap.CompletedSwap) string {
	return fmt.Sprintf("%s  %s  %s",
		titleStyle.Render(rec.Description),
		subtleStyle.Render(fmt.Sprintf("(%s -> %s, from %s)", rec.OriginalID, rec.NewID, rec.ButtonName)),
		subtleStyle.Render(FormatTimeAgo(rec.SwappedAt)))
}

// SectionHeader returns a formatted section header for CLI output
// e.g., "\nDIMENSIONS:\n"
func SectionHeader(title string) string {
	return fmt.Sprintf("\n%s:\n", strings.ToUpper(title))
}

// FormatTimeAgo formats a time as a human-readable "ago" string
func FormatTimeAgo(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1h ago"
		}
		return fmt.Sprintf("%dh ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1d ago"
		}
		return fmt.Sprintf("%dd ago", days)
	default:
		return t.Format("2006-01-02")
	}
}

func sortedStringKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedFloatKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
