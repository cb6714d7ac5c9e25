// Package render formats resolved dependency output for the CLI.
package render

import (
	"fmt"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"

	"github.com/dbsmedya/godepend/internal/depend"
)

// kindColors maps object kinds to their display color.
var kindColors = map[string]color.Color{
	"table":     color.FgGreen,
	"view":      color.FgCyan,
	"procedure": color.FgYellow,
	"function":  color.FgYellow,
	"trigger":   color.FgMagenta,
}

// paintKind colors a kind label when colored output is enabled.
func paintKind(kind string, colored bool) string {
	if !colored {
		return kind
	}
	if c, ok := kindColors[kind]; ok {
		return c.Render(kind)
	}
	return kind
}

// pad right-pads s to the given visual width. Width math uses runewidth so
// wide characters in object names keep columns aligned.
func pad(s string, width int) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// Records renders ordered dependency records as an aligned table, one row
// per record in emission (causal) order.
func Records(records []depend.DependencyRecord, colored bool) string {
	if len(records) == 0 {
		return "No dependencies found.\n"
	}

	headers := []string{"#", "TIER", "KIND", "OBJECT", "PARENT", "BOUND"}
	rows := make([][]string, 0, len(records))
	for i, rec := range records {
		parent := ""
		if rec.Parent != nil {
			parent = rec.Parent.String()
		}
		bound := ""
		if rec.SchemaBound {
			bound = "yes"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", rec.Tier),
			rec.Kind,
			rec.Identity.String(),
			parent,
			bound,
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder
	for i, h := range headers {
		sb.WriteString(pad(h, widths[i]))
		if i < len(headers)-1 {
			sb.WriteString("  ")
		}
	}
	sb.WriteString("\n")
	for i := range headers {
		sb.WriteString(strings.Repeat("-", widths[i]))
		if i < len(headers)-1 {
			sb.WriteString("  ")
		}
	}
	sb.WriteString("\n")

	for _, row := range rows {
		for i, cell := range row {
			// Color after padding so escape codes don't skew width math.
			padded := pad(cell, widths[i])
			if i == 2 {
				padded = paintKind(cell, colored) + padded[len(cell):]
			}
			sb.WriteString(padded)
			if i < len(row)-1 {
				sb.WriteString("  ")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// Tree renders a discovery tree with box-drawing connectors, pre-order.
func Tree(root depend.TreeNode) string {
	if root == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(root.Identity().String())
	sb.WriteString("\n")
	writeChildren(&sb, root, "")
	return sb.String()
}

// writeChildren walks the sibling chain under node's first child.
func writeChildren(sb *strings.Builder, node depend.TreeNode, prefix string) {
	var children []depend.TreeNode
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		children = append(children, child)
	}

	for i, child := range children {
		connector, childPrefix := "├── ", prefix+"│   "
		if i == len(children)-1 {
			connector, childPrefix = "└── ", prefix+"    "
		}
		sb.WriteString(prefix)
		sb.WriteString(connector)
		sb.WriteString(child.Identity().String())
		if child.IsSchemaBound() {
			sb.WriteString(" (schema-bound)")
		}
		sb.WriteString("\n")
		writeChildren(sb, child, childPrefix)
	}
}
