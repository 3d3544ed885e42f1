package tui

import (
	"fmt"
	"strings"

	"github.com/mabhi256/jprobe/utils"
)

func (m *Model) applyScrolling(content string, viewportHeight int) string {
	lines := strings.Split(content, "\n")
	totalLines := len(lines)

	// No scrolling needed if content fits
	if totalLines <= viewportHeight {
		return content
	}

	scrollPos := m.scrollPositions[m.activeTab]

	maxScroll := totalLines - viewportHeight
	scrollPos = min(max(scrollPos, 0), maxScroll)
	m.scrollPositions[m.activeTab] = scrollPos

	endPos := scrollPos + viewportHeight
	visibleLines := lines[scrollPos:endPos]

	// Replace last line with scroll indicator
	scrollInfo := fmt.Sprintf("%s (Line %d-%d of %d) %s",
		utils.MutedStyle.Render("▲"),
		scrollPos+1,
		endPos,
		totalLines,
		utils.MutedStyle.Render("▼"))
	visibleLines[len(visibleLines)-1] = scrollInfo

	return strings.Join(visibleLines, "\n")
}

func (m *Model) scrollUp(lines int) {
	currentPos := m.scrollPositions[m.activeTab]
	m.scrollPositions[m.activeTab] = max(currentPos-lines, 0)
}

func (m *Model) scrollDown(lines int) {
	m.scrollPositions[m.activeTab] += lines
	// Max scroll validation happens in applyScrolling()
}
