package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/serializer"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginBottom(1)

	topologyBoxStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#00FFFF")).
				Padding(0, 1).
				MarginRight(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)
)

func renderSummary(req *serializer.SliceRequest) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Slice %s  (%d topologies, %d VMs)",
		req.Name, len(req.Topologies), req.VMCount())))
	b.WriteString("\n")

	boxes := make([]string, 0, len(req.Topologies))
	for _, t := range req.Topologies {
		boxes = append(boxes, topologyBoxStyle.Render(renderTopology(t)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	b.WriteString("\n")

	if len(req.Connections) == 0 {
		b.WriteString(dimStyle.Render("no connections between topologies"))
		return b.String()
	}
	b.WriteString(headerStyle.Render("Connections"))
	for _, c := range req.Connections {
		b.WriteString(fmt.Sprintf("\n  %s <-> %s", c.From, c.To))
	}
	return b.String()
}

func renderTopology(t serializer.TopologyRequest) string {
	lines := []string{headerStyle.Render(fmt.Sprintf("%s [%s]", t.Name, t.Kind))}
	for _, vm := range t.VMs {
		line := fmt.Sprintf("%s  %s", vm.Name, vm.Flavor)
		if vm.Internet {
			line += "  internet"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
