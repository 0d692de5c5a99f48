package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Popilynx/SistemaLevelUp-sub000/internal/game"
	"github.com/Popilynx/SistemaLevelUp-sub000/internal/storage"
)

type dashModel struct {
	ctx context.Context
	svc *game.Service

	width  int
	height int

	character  *storage.Character
	stats      game.Stats
	habits     []storage.GoodHabit
	doneToday  map[int64]bool
	boss       *storage.Boss
	quests     []storage.Quest
	pet        *storage.Pet
	categoryXP map[string]int

	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	character  *storage.Character
	stats      game.Stats
	habits     []storage.GoodHabit
	doneToday  map[int64]bool
	boss       *storage.Boss
	quests     []storage.Quest
	pet        *storage.Pet
	categoryXP map[string]int
	err        error
}

type completedMsg struct {
	res *game.HabitResult
	err error
}

type attackedMsg struct {
	res *game.AttackResult
	err error
}

type claimedMsg struct {
	res *game.BossRewardResult
	err error
}

func newDashModel(ctx context.Context, svc *game.Service) dashModel {
	return dashModel{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m dashModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m dashModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		c, err := m.svc.CharacterRepo().GetOrCreateMain(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		stats, err := m.svc.Stats(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		habits, err := m.svc.HabitRepo().ListGood(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		today := time.Now().Format(game.DayFormat)
		done := map[int64]bool{}
		for _, h := range habits {
			ok, err := m.svc.CheckRepo().Exists(m.ctx, h.ID, game.HabitTypeGood, today)
			if err != nil {
				return loadedMsg{err: err}
			}
			done[h.ID] = ok
		}
		boss, err := m.svc.DailyBoss(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		quests, err := m.svc.GenerateDailyQuests(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		pet, err := m.svc.ActivePet(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		xp, err := m.svc.CharacterRepo().CategoryXP(m.ctx, storage.MainCharacterKey)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{
			character:  c,
			stats:      stats,
			habits:     habits,
			doneToday:  done,
			boss:       boss,
			quests:     quests,
			pet:        pet,
			categoryXP: xp,
		}
	}
}

func (m dashModel) completeCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CompleteGoodHabit(m.ctx, id)
		return completedMsg{res: res, err: err}
	}
}

func (m dashModel) attackCmd() tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.AttackBoss(m.ctx)
		return attackedMsg{res: res, err: err}
	}
}

func (m dashModel) claimCmd() tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.ClaimBossReward(m.ctx)
		return claimedMsg{res: res, err: err}
	}
}

func (m dashModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.character = msg.character
		m.stats = msg.stats
		m.habits = msg.habits
		m.doneToday = msg.doneToday
		m.boss = msg.boss
		m.quests = msg.quests
		m.pet = msg.pet
		m.categoryXP = msg.categoryXP
		if m.selected >= len(m.habits) {
			m.selected = len(m.habits) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case completedMsg:
		if msg.err != nil {
			m.lastLog = "Complete failed: " + msg.err.Error()
			return m, m.loadCmd()
		}
		m.lastLog = fmt.Sprintf("Completed %s: +%d exp, +%d gold (streak %d)",
			msg.res.Title, msg.res.ExpGranted, msg.res.GoldGranted, msg.res.Streak)
		if msg.res.LevelsGained > 0 {
			m.lastLog += fmt.Sprintf(" — LEVEL UP → %d", msg.res.NewLevel)
		}
		return m, m.loadCmd()
	case attackedMsg:
		if msg.err != nil {
			m.lastLog = "Attack failed: " + msg.err.Error()
			return m, m.loadCmd()
		}
		if msg.res.BossDefeated {
			m.lastLog = fmt.Sprintf("Hit for %d. Boss defeated! Press b to claim.", msg.res.DamageDealt)
		} else {
			m.lastLog = fmt.Sprintf("Hit for %d, took %d back.", msg.res.DamageDealt, msg.res.CounterDamage)
		}
		return m, m.loadCmd()
	case claimedMsg:
		if msg.err != nil {
			m.lastLog = "Claim failed: " + msg.err.Error()
			return m, m.loadCmd()
		}
		if msg.res == nil {
			m.lastLog = "Reward already claimed."
		} else {
			m.lastLog = fmt.Sprintf("Claimed +%d gold, +%d exp.", msg.res.Gold, msg.res.Exp)
		}
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.habits)-1 {
				m.selected++
			}
			return m, nil
		case "c", " ":
			if m.selected < 0 || m.selected >= len(m.habits) {
				return m, nil
			}
			h := m.habits[m.selected]
			if m.doneToday[h.ID] {
				m.lastLog = "Already done today."
				return m, nil
			}
			m.lastLog = fmt.Sprintf("Completing %s…", h.Title)
			return m, m.completeCmd(h.ID)
		case "a":
			if m.boss != nil && m.boss.Status == game.BossDefeated {
				m.lastLog = "Boss already down. Press b to claim."
				return m, nil
			}
			m.lastLog = "Attacking…"
			return m, m.attackCmd()
		case "b":
			return m, m.claimCmd()
		}
	}
	return m, nil
}

func (m dashModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	// Simple 2-column layout.
	leftW := 28
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	max := len(linesLeft)
	if len(linesRight) > max {
		max = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < max; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m dashModel) renderHeader() string {
	if m.character == nil {
		return "SistemaLevelUp — loading…"
	}
	c := m.character
	expBar := progressBar(c.CurrentExp, game.ExpRequiredForLevel(c.Level), 24)
	return fmt.Sprintf("SistemaLevelUp | Level %d (rank %s) | EXP %s | Gold %d | Difficulty %d",
		c.Level, c.Rank, expBar, c.Gold, c.Difficulty)
}

func (m dashModel) renderSidebar() string {
	lines := []string{"Character"}
	if m.character == nil {
		lines = append(lines, "Loading…")
	} else {
		lines = append(lines, fmt.Sprintf("- HP %s", progressBar(m.character.Health, m.character.MaxHealth, 14)))
		lines = append(lines, fmt.Sprintf("- DMG %d  CRIT %.0f%%", game.BasePlayerDamage+m.stats.Damage, m.stats.CritChance*100))
		for _, cat := range []game.Category{game.CategoryFitness, game.CategoryMind, game.CategoryWork, game.CategoryCreative, game.CategorySocial} {
			lines = append(lines, fmt.Sprintf("- %s %d xp", cat, m.categoryXP[string(cat)]))
		}
	}
	lines = append(lines, "")
	if m.pet != nil {
		lines = append(lines, "Companion")
		lines = append(lines, fmt.Sprintf("- %s %s L%d", m.pet.Icon, m.pet.Name, m.pet.Level))
		lines = append(lines, fmt.Sprintf("- hunger %d", m.pet.Hunger))
		lines = append(lines, "")
	}
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- c/space: complete habit")
	lines = append(lines, "- a: attack boss")
	lines = append(lines, "- b: claim boss reward")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m dashModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	var out []string

	out = append(out, "Daily Boss")
	if m.boss != nil {
		out = append(out, fmt.Sprintf("%s %s (atk=%d def=%d status=%s)",
			m.boss.Name, progressBar(m.boss.Health, m.boss.MaxHealth, 20), m.boss.Attack, m.boss.Defense, m.boss.Status))
	}
	out = append(out, "")

	out = append(out, "Quests")
	if len(m.quests) == 0 {
		out = append(out, "(none)")
	}
	for _, q := range m.quests {
		out = append(out, fmt.Sprintf("- %s %d/%d (status=%s)", q.Title, q.CurrentValue, q.TargetValue, q.Status))
	}
	out = append(out, "")

	out = append(out, "Habits")
	if len(m.habits) == 0 {
		out = append(out, "(no habits yet)")
		return strings.Join(out, "\n")
	}
	for i, h := range m.habits {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		mark := "[ ]"
		if m.doneToday[h.ID] {
			mark = "[x]"
		}
		out = append(out, fmt.Sprintf("%s%s %s (%s, streak=%d)", cursor, mark, h.Title, h.Category, h.Streak))
	}
	return strings.Join(out, "\n")
}

func (m dashModel) renderFooter() string {
	return "\n" + m.lastLog
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	ratio := float64(value) / float64(total)
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
