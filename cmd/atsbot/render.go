package main

import (
	"fmt"
	"strings"

	"ats-assistant-be/pkg/assistant"

	"github.com/fatih/color"
)

var (
	linkColor  = color.New(color.FgCyan)
	labelColor = color.New(color.Bold)
	errorColor = color.New(color.FgRed, color.Bold)
	youColor   = color.New(color.FgGreen, color.Bold)
)

// render lays out a response for a terminal: the message, then the
// navigation target or one line per result.
func render(resp assistant.Response) string {
	var b strings.Builder
	b.WriteString(resp.Message)

	switch resp.Kind {
	case assistant.KindNavigation:
		label := resp.EntityLabel
		if label == "" {
			label = resp.Path
		}
		fmt.Fprintf(&b, "\n  -> %s %s", labelColor.Sprint(label), linkColor.Sprint(resp.Path))
	case assistant.KindResults:
		for i, item := range resp.Items {
			fmt.Fprintf(&b, "\n  %d. %s %s", i+1, item.DisplayText, linkColor.Sprint(item.Navigate))
		}
	}
	return b.String()
}
