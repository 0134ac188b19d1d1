package osc

import (
	"fmt"
	"strings"
)

// Describe renders one oscillator as "#id kind(params) <- #child ..."
func (c *Context) Describe(o Osc) (string, error) {
	if err := c.own(o); err != nil {
		return "", err
	}
	return c.describe(o.id), nil
}

// Dump writes one Describe line per owned oscillator in creation order
func (c *Context) Dump(sb *strings.Builder) {
	for id := range c.nodes {
		sb.WriteString(c.describe(id))
		sb.WriteByte('\n')
	}
}

func (c *Context) describe(id int) string {
	n := c.nodes[id]
	var sb strings.Builder
	fmt.Fprintf(&sb, "#%d %s(%s) %v", id, n.kind(), n.params(), n.bounds())
	if kids := n.children(); len(kids) > 0 {
		sb.WriteString(" <-")
		for _, k := range kids {
			fmt.Fprintf(&sb, " #%d", k)
		}
	}
	return sb.String()
}
