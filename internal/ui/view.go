package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/NitishVankina/ServerPet/internal/engine"
	"github.com/NitishVankina/ServerPet/internal/pet"
	"github.com/NitishVankina/ServerPet/internal/sysinfo"
)

// Styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true)
	alertStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	cardStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	gaugeFill  = "█"
	gaugeEmpty = "░"
	sparkRunes = []rune("▁▂▃▄▅▆▇█")
)

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.header())
	b.WriteString("\n")

	switch m.active {
	case viewDashboard:
		b.WriteString(m.dashboardView())
	case viewDetails:
		b.WriteString(m.detailsView())
	case viewStats:
		b.WriteString(m.statsView())
	}

	b.WriteString("\n")
	b.WriteString(m.footer())

	return b.String()
}

func (m *Model) header() string {
	title := titleStyle.Render(fmt.Sprintf("ServerPet — %s the %s", m.creature.Name, m.creature.Type))

	tabs := []string{"[1] dashboard", "[2] details", "[3] stats"}
	for i := range tabs {
		if view(i) == m.active {
			tabs[i] = labelStyle.Render(tabs[i])
		} else {
			tabs[i] = subtleStyle.Render(tabs[i])
		}
	}

	return title + "  " + strings.Join(tabs, " ")
}

func (m *Model) footer() string {
	alerts := "on"
	if !m.eng.AlertsEnabled() {
		alerts = "off"
	}
	help := fmt.Sprintf("q quit · tab view · +/- threshold (%.0f%%) · a alerts (%s)",
		m.eng.Threshold(), alerts)

	return subtleStyle.Render(help)
}

func (m *Model) dashboardView() string {
	mood := engine.MoodContent
	if m.hasSnap {
		mood = m.latest.Mood
	}

	faceStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(pet.MoodColor(mood)))
	petCard := cardStyle.Render(
		faceStyle.Render(m.creature.Face(mood)) + "\n" +
			fmt.Sprintf("mood: %s %s", mood, pet.MoodEmoji(mood)) + "\n" +
			subtleStyle.Render(m.message),
	)

	var rows []string
	if m.hasSnap {
		rows = append(rows,
			m.metricRow("CPU ", m.latest.CPU, m.eng.CPUHistory()),
			m.metricRow("RAM ", m.latest.RAM, m.eng.RAMHistory()),
			m.metricRow("Disk", m.latest.Disk, m.eng.DiskHistory()),
			fmt.Sprintf("%s %8.1f KB/s  %s",
				labelStyle.Render("Net "), m.latest.NetRateKBs, sparkline(m.eng.NetHistory(), 30)),
		)
	} else {
		rows = append(rows, subtleStyle.Render("waiting for first sample..."))
	}

	metricsCard := cardStyle.Render(strings.Join(rows, "\n"))
	body := lipgloss.JoinHorizontal(lipgloss.Top, petCard, " ", metricsCard)

	if m.alertTicks > 0 && m.hasSnap {
		body += "\n" + alertStyle.Render(fmt.Sprintf(
			"⚠ %s is in distress! cpu=%.1f%% ram=%.1f%% disk=%.1f%%",
			m.creature.Name, m.latest.CPU, m.latest.RAM, m.latest.Disk))
	}

	return body
}

func (m *Model) metricRow(name string, value float64, history []float64) string {
	return fmt.Sprintf("%s %6.1f%%  %s %s",
		labelStyle.Render(name), value, gauge(value, 20), sparkline(history, 30))
}

// gauge renders a fixed-width bar colored by level: >90 red, >75 orange,
// otherwise green.
func gauge(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(percent / 100 * float64(width))
	bar := strings.Repeat(gaugeFill, filled) + strings.Repeat(gaugeEmpty, width-filled)

	color := "40" // green
	switch {
	case percent > 90:
		color = "196" // red
	case percent > 75:
		color = "208" // orange
	}

	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(bar)
}

// sparkline compresses a 0-100 history into one row of block characters,
// newest on the right.
func sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return subtleStyle.Render(strings.Repeat(" ", width))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	var b strings.Builder
	for _, v := range values {
		if v < 0 {
			v = 0
		}
		if v > 100 {
			v = 100
		}
		idx := int(v / 100 * float64(len(sparkRunes)-1))
		b.WriteRune(sparkRunes[idx])
	}

	return subtleStyle.Render(b.String())
}

func (m *Model) detailsView() string {
	if !m.hasDetails {
		return cardStyle.Render(subtleStyle.Render("collecting host details..."))
	}

	d := m.details
	var rows []string

	rows = append(rows,
		labelStyle.Render("System")+fmt.Sprintf("  %s · %s · %s", d.Platform, d.Kernel, d.Arch),
		labelStyle.Render("Host")+fmt.Sprintf("    %s · up %s · %d processes",
			d.Hostname, sysinfo.FormatDuration(d.Uptime), d.Processes),
		labelStyle.Render("CPU")+fmt.Sprintf("     %s (%d cores)", d.CPUModel, d.LogicalCores),
	)

	if len(d.PerCoreCPU) > 0 {
		var cores []string
		for i, pct := range d.PerCoreCPU {
			cores = append(cores, fmt.Sprintf("c%d %4.0f%%", i, pct))
		}
		rows = append(rows, subtleStyle.Render("        "+strings.Join(cores, "  ")))
	}

	rows = append(rows,
		labelStyle.Render("Memory")+fmt.Sprintf("  %s / %s · swap %s / %s",
			sysinfo.FormatBytes(float64(d.RAMUsed)), sysinfo.FormatBytes(float64(d.RAMTotal)),
			sysinfo.FormatBytes(float64(d.SwapUsed)), sysinfo.FormatBytes(float64(d.SwapTotal))),
		labelStyle.Render("Disk")+fmt.Sprintf("    %s: %s / %s",
			d.DiskPath, sysinfo.FormatBytes(float64(d.DiskUsed)), sysinfo.FormatBytes(float64(d.DiskTotal))),
	)

	for _, iface := range d.Interfaces {
		rows = append(rows, subtleStyle.Render(fmt.Sprintf("        %-10s ↑ %s  ↓ %s",
			iface.Name, sysinfo.FormatBytes(float64(iface.BytesSent)), sysinfo.FormatBytes(float64(iface.BytesRecv)))))
	}

	if d.HasTemp {
		rows = append(rows, labelStyle.Render("Temp")+fmt.Sprintf("    %.1f°C", d.TempC))
	}

	return cardStyle.Render(strings.Join(rows, "\n"))
}

func (m *Model) statsView() string {
	stats := m.eng.CurrentStats()

	rows := []string{
		labelStyle.Render("Session") + "  " + sysinfo.FormatDuration(stats.TotalElapsed),
		"",
		labelStyle.Render("Mood distribution"),
	}

	for _, mood := range engine.Moods() {
		color := lipgloss.NewStyle().Foreground(lipgloss.Color(pet.MoodColor(mood)))
		rows = append(rows, fmt.Sprintf("  %s %s %5.1f%%  (%s)",
			pet.MoodEmoji(mood),
			color.Render(fmt.Sprintf("%-8s", mood.String())),
			stats.MoodPercent[mood],
			sysinfo.FormatDuration(stats.TimeInState[mood])))
	}

	cpuAvg, ramAvg, diskAvg := m.eng.Averages()
	rows = append(rows,
		"",
		labelStyle.Render("Peak usage"),
		fmt.Sprintf("  CPU %.1f%% · RAM %.1f%% · Disk %.1f%%", stats.MaxCPU, stats.MaxRAM, stats.MaxDisk),
		"",
		labelStyle.Render("Rolling average"),
		fmt.Sprintf("  CPU %.1f%% · RAM %.1f%% · Disk %.1f%%", cpuAvg, ramAvg, diskAvg),
	)

	return cardStyle.Render(strings.Join(rows, "\n"))
}
