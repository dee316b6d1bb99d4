package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/gwillem/servoctl/pkg/serialport"
)

type PortsCommand struct{}

func (c *PortsCommand) Execute(args []string) error {
	ports, err := serialport.ListPorts()
	if err != nil {
		return err
	}
	if len(ports) == 0 {
		fmt.Println("No serial ports found.")
		fmt.Println("Make sure the Arduino is connected over USB.")
		return nil
	}

	fmt.Println(portTable(ports))
	return nil
}

func portTable(ports []serialport.PortInfo) string {
	rows := make([][]string, 0, len(ports))
	for _, p := range ports {
		usb := ""
		if p.IsUSB {
			usb = p.VID + ":" + p.PID
		}
		mark := ""
		if p.LikelyArduino() {
			mark = "✓"
		}
		rows = append(rows, []string{p.Name, usb, p.Vendor(), p.Product, mark})
	}

	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("Port", "USB ID", "Vendor", "Product", "Arduino").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return cellStyle.Bold(true).Foreground(lipgloss.Color("12"))
			}
			if col == 4 {
				return cellStyle.Foreground(lipgloss.Color("10"))
			}
			return cellStyle
		}).
		Render()
}
