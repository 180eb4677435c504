package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/decawise/internal/game/engine"
	"github.com/palemoky/decawise/internal/game/player"
	"github.com/palemoky/decawise/internal/game/question"
	"github.com/palemoky/decawise/internal/ui/common"
	"github.com/palemoky/decawise/internal/ui/model"
)

const optionWidth = 34

// BoardView renders the question, its options and the player cards.
func BoardView(m model.Model) string {
	s := m.State()
	header := fmt.Sprintf("Round %d · first to %d points", s.CurrentRound, s.PointsToWin)

	return lipgloss.JoinVertical(lipgloss.Left,
		common.TitleStyle(header),
		"",
		renderQuestion(s.CurrentQuestion),
		renderOptions(s.CurrentQuestion, s.Revealed, false),
		"",
		renderPlayers(m, s),
	)
}

func renderQuestion(q *question.Question) string {
	if q == nil {
		return common.ErrorStyle.Render(model.NoticeNoQuestions)
	}
	kind := common.DimStyle.Render(fmt.Sprintf("%s · %s", q.Topic, q.Kind.Label()))
	return common.BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, kind, lipgloss.NewStyle().Bold(true).Render(q.Prompt)))
}

// renderOptions lays the ten options out in two columns. With showAll every
// answer is printed; otherwise only revealed ones.
func renderOptions(q *question.Question, revealed engine.OptionSet, showAll bool) string {
	if q == nil {
		return ""
	}
	half := (len(q.Options) + 1) / 2
	var left, right []string
	for i, opt := range q.Options {
		cell := renderOption(i, opt, revealed.Has(i), showAll)
		if i < half {
			left = append(left, cell)
		} else {
			right = append(right, cell)
		}
	}
	col := lipgloss.NewStyle().Width(optionWidth)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		col.Render(strings.Join(left, "\n")),
		"  ",
		col.Render(strings.Join(right, "\n")),
	)
}

func renderOption(idx int, opt question.Option, revealed, showAll bool) string {
	label := fmt.Sprintf("[%s] %s", common.OptionKey(idx), common.TruncateName(opt.Label, 18))
	switch {
	case revealed:
		return common.RevealedStyle.Render(fmt.Sprintf("%s ✓ %s", label, opt.Value))
	case showAll:
		return fmt.Sprintf("%s → %s", label, opt.Value)
	default:
		return label
	}
}

func renderPlayers(m model.Model, s engine.GameState) string {
	cards := make([]string, 0, len(s.Players))
	for i, p := range s.Players {
		cards = append(cards, renderPlayerCard(m.Keys().PlayerKey(i).Help().Key, p, i == s.CurrentPlayerIndex))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func renderPlayerCard(k string, p player.Player, current bool) string {
	status := ""
	switch {
	case p.IsEliminated:
		status = common.ErrorStyle.Render(common.EliminatedIcon + " wrong")
	case p.HasPassedThisRound:
		status = common.PassedIcon + " passed"
	case current:
		status = common.CurrentIcon + " turn"
	}

	lines := []string{
		fmt.Sprintf("%s %s", common.ShapeIcon(p.Shape), common.TruncateName(p.Name, 12)),
		fmt.Sprintf("Score %d", p.Score),
		fmt.Sprintf("Round +%d", p.RoundScore),
		status,
		common.DimStyle.Render("[" + k + "]"),
	}

	box := common.InactiveBox
	if current && p.Active() {
		box = common.ActiveBox
	}
	return box.Width(18).Render(strings.Join(lines, "\n"))
}

// RoundEndView summarizes the round and shows every answer.
func RoundEndView(m model.Model) string {
	s := m.State()

	var rows []string
	for _, p := range s.Players {
		banked := p.BankedRoundScore()
		var change string
		if p.IsEliminated && p.RoundScore > 0 {
			change = common.ErrorStyle.Render(fmt.Sprintf("forfeits %d", p.RoundScore))
		} else {
			change = fmt.Sprintf("+%d", banked)
		}
		rows = append(rows, fmt.Sprintf("%s %-12s %-12s → %d",
			common.ShapeIcon(p.Shape), common.TruncateName(p.Name, 12), change, p.Score+banked))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		common.TitleStyle(fmt.Sprintf("Round %d complete", s.CurrentRound)),
		"",
		common.BoxStyle.Render(strings.Join(rows, "\n")),
		"",
		renderOptions(s.CurrentQuestion, s.Revealed, true),
	)
}

// GameEndView announces the winner and the final standings.
func GameEndView(m model.Model) string {
	s := m.State()

	title := "Game over"
	if s.Winner != nil {
		title = fmt.Sprintf("%s %s wins with %d points!", common.WinnerIcon, s.Winner.Name, s.Winner.Score)
	}

	var rows []string
	for i, p := range player.Standings(s.Players) {
		rows = append(rows, fmt.Sprintf("%d. %s %-12s %d", i+1, common.ShapeIcon(p.Shape), common.TruncateName(p.Name, 12), p.Score))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		common.TitleStyle(title),
		"",
		common.BoxStyle.Render(strings.Join(rows, "\n")),
		"",
		common.DimStyle.Render(roundsLabel(s.CurrentRound)+" played"),
	)
}
