package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/gwillem/servoctl/pkg/servo"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	subHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func printError(err error) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
}

// printResponses echoes lines received from the controller.
func printResponses(lines []string) {
	writeResponses(os.Stdout, lines)
}

func writeResponses(w io.Writer, lines []string) {
	for _, l := range lines {
		fmt.Fprintln(w, dimStyle.Render("arduino: ")+l)
	}
}

// angleTable renders the last commanded angle of every channel.
func angleTable(angles [servo.NumChannels]int) string {
	rows := make([][]string, 0, servo.NumChannels)
	for ch, angle := range angles {
		rows = append(rows, []string{
			fmt.Sprintf("%d", ch),
			channelKeyHint(ch),
			fmt.Sprintf("%d°", angle),
			angleBar(angle, 18),
		})
	}

	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("Servo", "Keys", "Angle", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return cellStyle.Bold(true).Foreground(lipgloss.Color("12"))
			}
			if col == 2 {
				return cellStyle.Foreground(lipgloss.Color("11"))
			}
			return cellStyle
		}).
		Render()
}

// angleBar draws angle as a bar of width cells.
func angleBar(angle, width int) string {
	filled := angle * width / servo.MaxAngle
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
