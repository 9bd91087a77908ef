package document

import (
	"fmt"
	"strings"
)

// Action is what a menu item does to a node.
type Action string

const (
	ActionToText     Action = "to-text"
	ActionToHeading2 Action = "to-heading-2"
	ActionToHeading3 Action = "to-heading-3"
	ActionToHeading1 Action = "to-heading-1"
	ActionToDivider  Action = "to-divider"
	ActionDelete     Action = "delete"
)

// MenuItem is one entry of a node's transform menu.
type MenuItem struct {
	ID     string
	Label  string
	Detail string
	Action Action
}

// MenuItems lists the transforms offered for n.
func MenuItems(n Node) []MenuItem {
	var items []MenuItem
	switch n.Kind {
	case KindText:
		items = []MenuItem{
			menuItem(ActionToHeading2, "Heading 2", "##"),
			menuItem(ActionToHeading3, "Heading 3", "###"),
		}
	case KindHeading:
		items = []MenuItem{menuItem(ActionToText, "Text", "")}
		level := MinHeadingLevel
		if n.Heading != nil {
			level = n.Heading.Level
		}
		for l := MinHeadingLevel; l <= MaxHeadingLevel; l++ {
			if l == level {
				continue
			}
			items = append(items, menuItem(headingAction(l), fmt.Sprintf("Heading %d", l), strings.Repeat("#", l)))
		}
	}
	return append(items, menuItem(ActionDelete, "Delete", ""))
}

func menuItem(a Action, label, detail string) MenuItem {
	return MenuItem{ID: string(a), Label: label, Detail: detail, Action: a}
}

func headingAction(level int) Action {
	switch level {
	case 1:
		return ActionToHeading1
	case 2:
		return ActionToHeading2
	default:
		return ActionToHeading3
	}
}

// Transform applies a to n, keeping its id. Text survives kind changes;
// formatting only survives on text nodes. The delete action and unknown
// actions return n unchanged with ok=false.
func Transform(n Node, a Action) (Node, bool) {
	out := Node{ID: n.ID}
	switch a {
	case ActionToText:
		out.Kind = KindText
		out.Text = &TextData{Content: n.Content(), Spans: n.Spans()}
	case ActionToHeading1, ActionToHeading2, ActionToHeading3:
		level := 1
		switch a {
		case ActionToHeading2:
			level = 2
		case ActionToHeading3:
			level = 3
		}
		out.Kind = KindHeading
		out.Heading = &HeadingData{Content: n.Content(), Level: level}
	case ActionToDivider:
		out.Kind = KindDivider
	default:
		return n, false
	}
	return out, true
}
