package ui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/boxalarm/dropletforge/internal/types"
)

// NoPublicIP is displayed for instances without a public address
const NoPublicIP = "-"

var instanceHeaders = []string{"ID", "Name", "Status", "Public IP"}

// StatusLabel colors a droplet status: green when active, red when off and
// yellow for every transitional state.
func (p *Printer) StatusLabel(status types.InstanceStatus) string {
	switch status {
	case types.InstanceStatusActive:
		return p.success.Render(string(status))
	case types.InstanceStatusOff:
		return p.fail.Render(string(status))
	default:
		return p.warn.Render(string(status))
	}
}

// InstanceRows converts summaries to table rows
func (p *Printer) InstanceRows(instances []types.InstanceSummary) [][]string {
	rows := make([][]string, 0, len(instances))
	for _, inst := range instances {
		ip := inst.PublicIP
		if ip == "" {
			ip = NoPublicIP
		}
		rows = append(rows, []string{
			strconv.Itoa(inst.ID),
			inst.Name,
			p.StatusLabel(inst.Status),
			ip,
		})
	}
	return rows
}

// InstanceTable renders the instance listing
func (p *Printer) InstanceTable(instances []types.InstanceSummary) {
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(instanceHeaders...).
		Rows(p.InstanceRows(instances)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return cell.Bold(true)
			}
			return cell
		})

	fmt.Fprintln(p.out, t.String())
	if len(instances) == 0 {
		fmt.Fprintln(p.out, "No droplets found.")
	}
}
