package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cantoapp/canto/internal/format"
	"github.com/cantoapp/canto/internal/player"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	var body string
	switch m.currentView {
	case ViewWorks:
		body = m.viewWorks()
	case ViewHistory:
		body = m.viewHistory()
	case ViewSearch:
		body = m.viewSearch()
	default:
		body = m.viewHome()
	}

	sections := []string{
		m.renderHeader(),
		body,
		m.renderPlayerBar(),
		m.renderFooter(),
	}
	screen := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if m.showHelp {
		return m.renderHelp()
	}
	if m.login.visible {
		return m.renderLoginOverlay(screen)
	}
	return screen
}

func (m Model) renderHeader() string {
	tabs := []struct {
		view  View
		label string
	}{
		{ViewHome, "1 首页"},
		{ViewWorks, "2 我的作品"},
		{ViewHistory, "3 历史"},
		{ViewSearch, "/ 搜索"},
	}
	var parts []string
	for _, t := range tabs {
		label := t.label
		if t.view == m.currentView {
			parts = append(parts, m.styles.AccentText.Render(label))
			continue
		}
		parts = append(parts, m.styles.MutedText.Render(label))
	}

	who := "未登录"
	if m.session.IsLoggedIn() {
		if u := m.session.User(); u != nil {
			who = u.DisplayName()
		}
	}
	left := m.styles.AccentText.Render("CANTO") + "  " + strings.Join(parts, "  ")
	right := m.styles.MutedText.Render(who)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return m.styles.Header.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderFooter() string {
	hint := "?: 帮助  L: 登录  Space: 播放/暂停  q: 退出"
	if m.notice != "" {
		hint = m.styles.WarningText.Render(m.notice)
	}
	return m.styles.Footer.Width(m.width).Render(hint)
}

func (m Model) viewHome() string {
	var b strings.Builder
	b.WriteString(m.styles.AccentText.Render("热门歌曲"))
	b.WriteString("\n")
	if m.homeErr != "" {
		b.WriteString(m.styles.DangerText.Render(m.homeErr))
		b.WriteString("\n")
	}
	if len(m.hotSongs) == 0 {
		b.WriteString(m.styles.MutedText.Render("暂无内容"))
		b.WriteString("\n")
	}
	cursor := m.cursor[ViewHome]
	for i, w := range m.hotSongs {
		author := ""
		if w.Author != nil {
			author = w.Author.Username
		}
		line := fmt.Sprintf("%-30s %-16s ♥%-5d ▶%-5d",
			truncate(w.Title, 30), truncate(author, 16),
			w.LikeCount, w.PlayCount)
		b.WriteString(m.renderRow(line, i == cursor))
		b.WriteString("\n")
	}

	if len(m.creators) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.AccentText.Render("推荐创作者"))
		b.WriteString("\n")
		for _, u := range m.creators {
			b.WriteString(m.styles.Text.Render(fmt.Sprintf("  %-20s 粉丝 %d", truncate(u.Username, 20), u.Followers)))
			b.WriteString("\n")
		}
	}
	return m.bodyFrame(b.String())
}

func (m Model) viewWorks() string {
	snap := m.works.Snapshot()
	var b strings.Builder
	b.WriteString(m.styles.AccentText.Render("我的作品"))
	b.WriteString("\n")
	if snap.Loading {
		b.WriteString(m.styles.MutedText.Render("加载中..."))
		b.WriteString("\n")
	}
	if snap.Err != "" {
		b.WriteString(m.styles.DangerText.Render(snap.Err))
		b.WriteString("\n")
	}
	if len(snap.List) == 0 && !snap.Loading && snap.Err == "" {
		b.WriteString(m.styles.MutedText.Render("还没有作品"))
		b.WriteString("\n")
	}
	cursor := m.cursor[ViewWorks]
	for i, w := range snap.List {
		status := w.Status
		if status == "" {
			status = "draft"
		}
		line := fmt.Sprintf("%-30s %-10s %-10s %s",
			truncate(w.Title, 30), status, w.Visibility,
			format.BeijingDate(w.CreatedAt))
		b.WriteString(m.renderRow(line, i == cursor))
		b.WriteString("\n")
	}
	return m.bodyFrame(b.String())
}

func (m Model) viewHistory() string {
	snap := m.history.Snapshot()
	var b strings.Builder
	b.WriteString(m.styles.AccentText.Render("历史记录"))
	b.WriteString("\n")
	if !m.session.IsLoggedIn() {
		b.WriteString(m.styles.MutedText.Render("登录后可查看生成与分析历史"))
		b.WriteString("\n")
		return m.bodyFrame(b.String())
	}
	if snap.Loading {
		b.WriteString(m.styles.MutedText.Render("加载中..."))
		b.WriteString("\n")
	}
	if snap.Err != "" {
		b.WriteString(m.styles.DangerText.Render(snap.Err))
		b.WriteString("\n")
	}
	if len(snap.Items) == 0 && !snap.Loading && snap.Err == "" {
		b.WriteString(m.styles.MutedText.Render("暂无记录"))
		b.WriteString("\n")
	}
	cursor := m.cursor[ViewHistory]
	for i, item := range snap.Items {
		kind, _ := item["type"].(string)
		title, _ := item["title"].(string)
		if title == "" {
			if prompt, ok := item["prompt"].(string); ok {
				title = prompt
			}
		}
		created, _ := item["created_at"].(string)
		line := fmt.Sprintf("%-10s %-36s %s",
			truncate(kind, 10), truncate(title, 36), format.BeijingTime(created))
		b.WriteString(m.renderRow(line, i == cursor))
		b.WriteString("\n")
	}
	return m.bodyFrame(b.String())
}

func (m Model) viewSearch() string {
	var b strings.Builder
	b.WriteString(m.styles.AccentText.Render("搜索"))
	b.WriteString("\n")
	b.WriteString(m.searchInput.input.View())
	b.WriteString("\n\n")

	if m.results == nil {
		if m.searchInput.ran {
			b.WriteString(m.styles.MutedText.Render("没有结果"))
		} else {
			b.WriteString(m.styles.MutedText.Render("输入关键词后回车"))
		}
		b.WriteString("\n")
		return m.bodyFrame(b.String())
	}

	cursor := m.cursor[ViewSearch]
	for i, song := range m.results.Songs {
		line := fmt.Sprintf("%-30s %-16s ♥%d", truncate(song.Title, 30), truncate(song.AuthorName, 16), song.LikeCount)
		b.WriteString(m.renderRow(line, i == cursor))
		b.WriteString("\n")
	}
	if len(m.results.Users) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.AccentText.Render("用户"))
		b.WriteString("\n")
		for _, u := range m.results.Users {
			b.WriteString(m.styles.Text.Render(fmt.Sprintf("  %-20s %s", truncate(u.Username, 20), truncate(u.Bio, 40))))
			b.WriteString("\n")
		}
	}
	return m.bodyFrame(b.String())
}

func (m Model) renderRow(line string, selected bool) string {
	if selected {
		return m.styles.Selected.Render("▸ " + line)
	}
	return m.styles.Text.Render("  " + line)
}

func (m Model) bodyFrame(content string) string {
	height := m.height - 4 // header, player bar, footer
	if height < 3 {
		height = 3
	}
	return lipgloss.NewStyle().Width(m.width).Height(height).Padding(0, 1).Render(content)
}

func (m Model) renderPlayerBar() string {
	snap := m.player.Snapshot()

	icon := "■"
	switch snap.State {
	case player.Playing:
		icon = "▶"
	case player.Paused:
		icon = "⏸"
	}

	title := "未在播放"
	if snap.Track != nil {
		title = snap.Track.Title
		if snap.Track.Artist != "" {
			title += " · " + snap.Track.Artist
		}
	}

	volume := fmt.Sprintf("音量 %d%%", int(snap.Volume*100))
	if snap.Muted {
		volume = "静音"
	}
	mode := map[player.RepeatMode]string{
		player.RepeatAll: "循环",
		player.RepeatOne: "单曲",
		player.RepeatOff: "顺序",
	}[snap.Repeat]
	if snap.Shuffle {
		mode += " 随机"
	}

	pos := format.Clock(snap.Position)
	dur := format.Clock(snap.Duration)

	line := fmt.Sprintf(" %s %s  %s/%s  %s  %s", icon, truncate(title, 40), pos, dur, volume, mode)
	return m.styles.Header.Width(m.width).Render(line)
}

func (m Model) renderLoginOverlay(background string) string {
	title := "登录"
	hint := "Enter 提交  Tab 切换  Ctrl+R 注册  Esc 关闭"
	if m.login.mode == modeRegister {
		title = "注册"
		hint = "Enter 提交  Tab 切换  Ctrl+R 登录  Esc 关闭"
	}

	var b strings.Builder
	b.WriteString(m.styles.AccentText.Render(title))
	b.WriteString("\n\n")
	b.WriteString(m.login.inputs[fieldUsername].View())
	b.WriteString("\n")
	b.WriteString(m.login.inputs[fieldPassword].View())
	b.WriteString("\n")
	if m.login.mode == modeRegister {
		b.WriteString(m.login.inputs[fieldEmail].View())
		b.WriteString("\n")
	}
	if m.login.busy {
		b.WriteString("\n")
		b.WriteString(m.styles.MutedText.Render("请稍候..."))
	}
	if m.login.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.DangerText.Render(m.login.errMsg))
	}
	b.WriteString("\n\n")
	b.WriteString(m.styles.MutedText.Render(hint))

	panel := m.styles.PanelFocus.Width(48).Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panel)
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(m.styles.AccentText.Render("快捷键"))
	b.WriteString("\n\n")
	for _, group := range m.keys.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-12s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.styles.MutedText.Render("按任意键返回"))
	panel := m.styles.Panel.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panel)
}

func truncate(s string, max int) string {
	if max <= 0 || len([]rune(s)) <= max {
		return s
	}
	runes := []rune(s)
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
