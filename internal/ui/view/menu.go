package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/palemoky/decawise/internal/game/player"
	"github.com/palemoky/decawise/internal/storage"
	"github.com/palemoky/decawise/internal/ui/common"
	"github.com/palemoky/decawise/internal/ui/model"
)

// MenuView renders the start screen.
func MenuView(m model.Model) string {
	var sb strings.Builder
	sb.WriteString(common.TitleStyle("🔟 DecaWise"))
	sb.WriteString("\n")
	sb.WriteString(common.DimStyle.Render("Ten answers per question. Know when to stop."))
	sb.WriteString("\n\n")

	keys := m.Keys()
	items := []string{
		menuItem(keys.New.Help().Key, "New game"),
	}
	if m.HasSavedGame() {
		items = append(items, menuItem(keys.Continue.Help().Key, "Continue saved game"))
	} else {
		items = append(items, common.DimStyle.Render(menuItem(keys.Continue.Help().Key, "Continue (no saved game)")))
	}
	items = append(items,
		menuItem(keys.History.Help().Key, "Recent games"),
		menuItem(keys.Help.Help().Key, "How to play"),
		menuItem(keys.Quit.Help().Key, "Quit"),
	)
	sb.WriteString(common.BoxStyle.Render(strings.Join(items, "\n")))

	if !m.CanDraw() {
		sb.WriteString("\n\n")
		sb.WriteString(common.ErrorStyle.Render(model.NoticeNoQuestions))
	}
	return sb.String()
}

func menuItem(k, label string) string {
	return fmt.Sprintf("[%s] %s", k, label)
}

// PlayerSetupView renders the player count picker.
func PlayerSetupView(m model.Model) string {
	var items []string
	for n := player.MinPlayers; n <= player.MaxPlayers; n++ {
		var icons []string
		for i := range n {
			icons = append(icons, common.ShapeIcon(player.Shapes[i]))
		}
		items = append(items, fmt.Sprintf("%d players  %s", n, strings.Join(icons, " ")))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		common.TitleStyle("How many players?"),
		"",
		common.BoxStyle.Render(choiceList(items, m.Cursor())),
	)
}

// PointsSetupView renders the target score picker.
func PointsSetupView(m model.Model) string {
	choices := m.PointChoices()
	items := make([]string, len(choices))
	for i, c := range choices {
		items[i] = fmt.Sprintf("%2d points", c)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		common.TitleStyle("Points to win"),
		"",
		common.BoxStyle.Render(choiceList(items, m.Cursor())),
	)
}

// HistoryView renders recently finished games, newest first.
func HistoryView(m model.Model) string {
	var sb strings.Builder
	sb.WriteString(common.TitleStyle("🏆 Recent games"))
	sb.WriteString("\n\n")

	results := m.History()
	if len(results) == 0 {
		sb.WriteString(common.DimStyle.Render("No finished games yet"))
		return sb.String()
	}

	lines := make([]string, len(results))
	for i, r := range results {
		lines[i] = historyLine(r, m.Now())
	}
	sb.WriteString(common.BoxStyle.Render(strings.Join(lines, "\n")))
	return sb.String()
}

func historyLine(r *storage.GameResult, now time.Time) string {
	when := humanize.RelTime(time.Unix(r.FinishedAt, 0), now, "ago", "from now")
	return fmt.Sprintf("%-16s %s %s won %d/%d · %d players · %s",
		when,
		common.ShapeIcon(r.Winner.Shape),
		common.TruncateName(r.Winner.Name, 16),
		r.Winner.Score,
		r.PointsToWin,
		len(r.Standings),
		roundsLabel(r.Rounds),
	)
}

func roundsLabel(n int) string {
	if n == 1 {
		return "1 round"
	}
	return fmt.Sprintf("%d rounds", n)
}

// HelpView renders the rules.
func HelpView(m model.Model) string {
	rules := []string{
		"Each question has ten answers. Players take turns naming one.",
		"A correct answer reveals the option and earns 1 round point.",
		"Pass to bank your round points and sit out the rest of the round.",
		"A wrong answer loses every point earned this round.",
		"The round ends when all ten are revealed or nobody is left to play.",
		"The first player to reach the target after a round wins.",
		"",
		"Board keys:",
		"  1-9, 0   reveal an option for the player whose turn it is",
		"  a s d f  player card: pass (on their turn), wrong (otherwise),",
		"           or undo a pass or wrong answer",
		"  x        skip the question, no penalty",
		"  esc      abandon the game",
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		common.TitleStyle("❓ How to play"),
		"",
		common.BoxStyle.Render(strings.Join(rules, "\n")),
	)
}
