package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/wbs"
	"github.com/charmbracelet/lipgloss"
)

// TreeItem is one line of a WBS tree display.
type TreeItem struct {
	Title       string
	Level       int
	IsLast      bool
	HasChildren bool
	Expanded    bool
	Selected    bool
	Status      domain.WBSStatus
	Detail      string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// WBSTreeItems converts visible WBS rows into tree lines. cursor marks the
// selected line; pass -1 for none.
func WBSTreeItems(rows []wbs.VisibleRow, cursor int) []TreeItem {
	items := make([]TreeItem, len(rows))
	for i, r := range rows {
		detail := ShortSpan(r.Item.StartDate, &r.Item.EndDate)
		if r.Item.Owner != "" {
			detail += " · " + r.Item.Owner
		}
		items[i] = TreeItem{
			Title:       r.Item.TaskName,
			Level:       r.Level,
			IsLast:      r.IsLast,
			HasChildren: r.HasChildren,
			Expanded:    r.Expanded,
			Selected:    i == cursor,
			Status:      r.Item.Status,
			Detail:      detail,
		}
	}
	return items
}

// RenderTree renders TreeItems as an indented tree using box-drawing
// connectors. Parents carry a fold marker, done tasks a green ✔ and
// in-progress tasks an amber ▶. Detail badges are right-aligned.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		badge   string
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	for idx, item := range items {
		prefix := strings.Repeat(treePipe, item.Level)
		if item.IsLast {
			prefix += treeCorner
		} else {
			prefix += treeBranch
		}
		prefix = Dim(prefix)

		marker := "  "
		if item.HasChildren {
			marker = "▸ "
			if item.Expanded {
				marker = "▾ "
			}
		}

		title := item.Title
		statusPrefix := ""
		switch item.Status {
		case domain.WBSDone:
			statusPrefix = StyleGreen.Render("✔ ")
			title = Dim(title)
		case domain.WBSInProgress:
			statusPrefix = StyleYellowBold.Render("▶ ")
			title = StyleYellowBold.Render(title)
		default:
			if item.HasChildren {
				title = Bold(title)
			}
		}
		if item.Selected {
			title = lipgloss.NewStyle().Reverse(true).Render(item.Title)
		}

		content := prefix + marker + statusPrefix + title
		lines[idx].content = content
		if item.Detail != "" {
			lines[idx].badge = StyleBlue.Render(fmt.Sprintf("[ %s ]", item.Detail))
		}
		if w := lipgloss.Width(content); w > maxContentWidth {
			maxContentWidth = w
		}
	}

	var b strings.Builder
	for _, li := range lines {
		if li.badge == "" {
			b.WriteString(li.content + "\n")
			continue
		}
		pad := max(maxContentWidth-lipgloss.Width(li.content), 0)
		b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
	}
	return b.String()
}

// WBSProgress returns the share of leaf tasks marked done.
func WBSProgress(forest []domain.WBSItem) (done, total int) {
	for _, n := range forest {
		if n.HasSubTasks() {
			d, t := WBSProgress(n.SubTasks)
			done += d
			total += t
			continue
		}
		total++
		if n.Status == domain.WBSDone {
			done++
		}
	}
	return done, total
}
