package inventory

import (
	"fmt"
	"sort"
	"strings"
)

// Table columns. Level 0 is the compact form (name and count); any
// higher level adds every attribute.
var (
	compactHeader = []string{"NAME", "COUNT"}
	detailHeader  = []string{"KIND", "NAME", "COUNT", "CAPACITY", "SIZE", "FREE", "TAGS"}
)

// Less orders sibling entities when rendering.
type Less func(a, b Entity) bool

// Sort keys for Rows.
var (
	ByName     Less = func(a, b Entity) bool { return a.Name() < b.Name() }
	ByCount    Less = func(a, b Entity) bool { return b.Count().Less(a.Count()) }
	ByCapacity Less = func(a, b Entity) bool { return b.TotalCapacity(false).Less(a.TotalCapacity(false)) }
)

// Header returns the column titles for the given detail level.
func (o *Object) Header(level int) []string {
	return headerFor(level)
}

// Row renders the object: name and count, plus capacity, size and tags
// at higher levels. Capacity and size are per unit.
func (o *Object) Row(level int) []string {
	if level <= 0 {
		return []string{o.name, o.count.String()}
	}
	return []string{
		o.Kind().String(),
		o.name,
		o.count.String(),
		o.capacity.String(),
		o.size.String(),
		"-",
		o.tags.String(),
	}
}

// Header returns the column titles for the given detail level.
func (c *Container) Header(level int) []string {
	return headerFor(level)
}

// Row renders the container itself. The SIZE column holds the reserved
// size and FREE the remaining free space.
func (c *Container) Row(level int) []string {
	if level <= 0 {
		return []string{c.name, "1"}
	}
	return []string{
		c.Kind().String(),
		c.name,
		"1",
		c.capacity.String(),
		c.reserved.String(),
		c.FreeSpace().String(),
		c.tags.String(),
	}
}

// Rows renders the container followed by its whole subtree, depth first.
// Siblings are ordered by less, or by insertion order when less is nil.
// Names are indented two spaces per depth.
func (c *Container) Rows(level int, less Less) [][]string {
	return c.rows(level, less, 0)
}

func (c *Container) rows(level int, less Less, depth int) [][]string {
	rows := [][]string{indent(c.Row(level), level, depth)}

	children := c.Children()
	if less != nil {
		sort.SliceStable(children, func(i, j int) bool { return less(children[i], children[j]) })
	}
	for _, child := range children {
		if sub, ok := child.(*Container); ok {
			rows = append(rows, sub.rows(level, less, depth+1)...)
			continue
		}
		rows = append(rows, indent(child.Row(level), level, depth+1))
	}
	return rows
}

// FormatTable lays rows out in left-aligned columns separated by two
// spaces, with the header first. Trailing spaces are trimmed.
func FormatTable(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	measure := func(row []string) {
		for i, cell := range row {
			if i < len(widths) && len([]rune(cell)) > widths[i] {
				widths[i] = len([]rune(cell))
			}
		}
	}
	measure(header)
	for _, row := range rows {
		measure(row)
	}

	var b strings.Builder
	write := func(row []string) {
		var line strings.Builder
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if i > 0 {
				line.WriteString("  ")
			}
			fmt.Fprintf(&line, "%-*s", widths[i], cell)
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteByte('\n')
	}
	write(header)
	for _, row := range rows {
		write(row)
	}
	return b.String()
}

func headerFor(level int) []string {
	src := compactHeader
	if level > 0 {
		src = detailHeader
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// indent prefixes the NAME cell with two spaces per depth.
func indent(row []string, level, depth int) []string {
	col := 0
	if level > 0 {
		col = 1
	}
	row[col] = strings.Repeat("  ", depth) + row[col]
	return row
}
