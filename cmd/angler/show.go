// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/common-nighthawk/go-figure"
	"golang.org/x/term"

	"angler.dev/angler/appenv"
	"angler.dev/angler/config"
	"angler.dev/angler/logging"
)

// unset marks a key that no source configured.
const unset = "-"

// colorWriter downsamples ANSI colors to what w supports. Production nodes
// never get colors.
func colorWriter(w io.Writer, mode appenv.Mode) *colorprofile.Writer {
	cpw := colorprofile.NewWriter(w, os.Environ())
	if mode == appenv.Production {
		cpw.Profile = colorprofile.NoTTY
	}
	return cpw
}

// renderEnvironment writes a banner, the node section and a table of every
// recognized key with its resolved value.
func renderEnvironment(w io.Writer, env *appenv.Environment, width int) error {
	cw := colorWriter(w, env.Mode())

	var art strings.Builder
	gradient := []string{"12", "14", "10", "11"}
	for _, line := range figure.NewFigure("angler", "", false).Slicify() {
		if strings.TrimSpace(line) == "" {
			art.WriteString("\n")
			continue
		}
		for i, char := range line {
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(gradient[i%len(gradient)])).
				Bold(true)
			art.WriteString(style.Render(string(char)))
		}
		art.WriteString("\n")
	}

	categoryStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Width(14).
		PaddingLeft(2).
		Align(lipgloss.Left)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)

	roles := make([]string, 0, len(env.Roles()))
	for _, r := range env.Roles() {
		roles = append(roles, string(r))
	}

	var out strings.Builder
	out.WriteString(categoryStyle.Render("Node") + "\n")
	for _, row := range [][2]string{
		{"Mode:", env.Mode().String()},
		{"Type:", env.NodeType().String()},
		{"Roles:", strings.Join(roles, ", ")},
		{"Config:", env.ConfigPath()},
	} {
		out.WriteString(labelStyle.Render(row[0]) + "  " + valueStyle.Render(row[1]) + "\n")
	}

	if file, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(file.Fd())); err == nil && tw > 0 {
			width = min(width, tw)
		}
	}

	props := env.Settings().Properties()
	rows := make([][]string, 0, len(config.Keys()))
	for _, key := range config.Keys() {
		value, ok := props[key]
		switch {
		case !ok:
			value = unset
		case key == config.KeyClusterAuthKey:
			value = logging.Redacted
		}
		grammar, _ := config.Grammar(key)
		rows = append(rows, []string{key, value, grammar})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			style := lipgloss.NewStyle().Align(lipgloss.Left).Padding(0, 1)
			if row == table.HeaderRow {
				style = style.Bold(true).Foreground(lipgloss.Color("230"))
			}
			return style
		}).
		Headers("Key", "Value", "Expected").
		Rows(rows...).
		Width(max(60, width))

	_, err := fmt.Fprintf(cw, "\n%s\n%s\n%s\n", art.String(), out.String(), t.Render())
	return err
}
