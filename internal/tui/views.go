package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nvidela/duet/internal/domain"
	"github.com/nvidela/duet/internal/tui/styles"
)

var tabLabels = []string{"Movies", "Coupons", "Wishlist", "Pet"}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(m.tabBarView())
	b.WriteString("\n\n")

	switch m.tab {
	case TabMovies:
		b.WriteString(m.moviesView())
	case TabCoupons:
		b.WriteString(m.couponsView())
	case TabWishlist:
		b.WriteString(m.wishlistView())
	case TabPet:
		b.WriteString(m.petView())
	}

	content := b.String()

	if modal := m.modalView(); modal != "" {
		content = lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, modal)
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, m.footerView())
}

func (m Model) tabBarView() string {
	tabs := make([]string, len(tabLabels))
	for i, label := range tabLabels {
		if Tab(i) == m.tab {
			tabs[i] = styles.ActiveTabStyle.Render(label)
		} else {
			tabs[i] = styles.InactiveTabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) moviesView() string {
	var b strings.Builder

	lists := append(domain.BaseLists(), domain.ListWatched)
	parts := make([]string, len(lists))
	for i, list := range lists {
		label := fmt.Sprintf("%d %s", i+1, list)
		if list == m.movieList {
			parts[i] = styles.AccentStyle.Render(label)
		} else {
			parts[i] = styles.DimStyle.Render(label)
		}
	}
	b.WriteString(strings.Join(parts, "  "))
	b.WriteString("\n\n")

	if m.loadingMovies && m.movieRows.Len() == 0 {
		b.WriteString(m.spinner.View() + " loading...")
	} else {
		b.WriteString(m.movieRows.View(m.width, m.spinner.View()))
	}
	return b.String()
}

func (m Model) couponsView() string {
	var b strings.Builder

	first, second := m.cfg.Owners.First, m.cfg.Owners.Second
	if m.owner == first {
		b.WriteString(styles.AccentStyle.Render(first) + styles.DimStyle.Render("  o "+second))
	} else {
		b.WriteString(styles.DimStyle.Render(first+" o  ") + styles.AccentStyle.Render(second))
	}
	b.WriteString("\n\n")

	if m.loadingCoupons && m.couponRows.Len() == 0 {
		b.WriteString(m.spinner.View() + " loading...")
	} else {
		b.WriteString(m.couponRows.View(m.width, m.spinner.View()))
	}
	return b.String()
}

func (m Model) wishlistView() string {
	var b strings.Builder

	status := [...]string{"all", "pending", "bought"}[m.statusFilter]
	heart := [...]string{"any", m.cfg.Owners.First, m.cfg.Owners.Second, "both"}[m.heartFilter]
	b.WriteString(styles.DimStyle.Render("f status: ") + styles.AccentStyle.Render(status))
	b.WriteString(styles.DimStyle.Render("   h hearts: ") + styles.AccentStyle.Render(heart))
	if m.productQuery != "" {
		b.WriteString(styles.DimStyle.Render("   /") + styles.AccentStyle.Render(m.productQuery))
	}
	b.WriteString("\n\n")

	if m.loadingProducts && m.productRows.Len() == 0 {
		b.WriteString(m.spinner.View() + " loading...")
	} else {
		b.WriteString(m.productRows.View(m.width, m.spinner.View()))
	}
	return b.String()
}

func (m Model) petView() string {
	if m.petState == nil {
		return m.spinner.View() + " loading..."
	}

	pet := m.petState
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(pet.Name))
	b.WriteString(styles.DimStyle.Render("  feeling " + pet.Mood()))
	b.WriteString("\n\n")
	b.WriteString(statBar("happiness", pet.Happiness))
	b.WriteString("\n")
	b.WriteString(statBar("energy   ", pet.Energy))
	b.WriteString("\n")
	b.WriteString(statBar("curiosity", pet.Curiosity))
	b.WriteString("\n\n")
	if pet.LastMessage != "" {
		b.WriteString(styles.SubtitleStyle.Render("“" + pet.LastMessage + "”"))
		b.WriteString("\n")
	}
	if !pet.LastInteractionAt.IsZero() {
		b.WriteString(styles.DimStyle.Render(
			fmt.Sprintf("last seen reacting to %s at %s",
				pet.LastInteraction, pet.LastInteractionAt.Format("15:04"))))
	}
	return b.String()
}

// statBar renders a 0-100 stat as a 20-cell bar
func statBar(label string, value int) string {
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	filled := value / 5
	bar := styles.ProgressFilled.Render(strings.Repeat("█", filled)) +
		styles.ProgressEmpty.Render(strings.Repeat("█", 20-filled))
	return fmt.Sprintf("%s %s %3d", styles.SubtitleStyle.Render(label), bar, value)
}

func (m Model) modalView() string {
	switch {
	case m.revealSession != nil:
		return m.revealView()
	case m.couponForm.IsVisible():
		return m.couponForm.View()
	case m.productForm.IsVisible():
		return m.productForm.View()
	case m.searching:
		return m.searchView()
	}
	return ""
}

func (m Model) revealView() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Tonight we watch..."))
	b.WriteString("\n\n")

	pick, ok := m.revealSession.Pick()
	title := "..."
	if ok {
		title = pick.Title
	}
	if m.revealSession.Settled() {
		b.WriteString(styles.SuccessStyle.Bold(true).Render(title))
		b.WriteString("\n\n")
		b.WriteString(styles.DimStyle.Render("enter close · esc close"))
	} else {
		b.WriteString(styles.AccentStyle.Render(title))
		b.WriteString("\n\n")
		width := 24
		filled := int(m.revealSession.Fraction() * float64(width))
		if filled > width {
			filled = width
		}
		b.WriteString(styles.ProgressFilled.Render(strings.Repeat("─", filled)))
		b.WriteString(styles.ProgressEmpty.Render(strings.Repeat("─", width-filled)))
		b.WriteString("\n\n")
		b.WriteString(styles.DimStyle.Render("esc cancel"))
	}
	return styles.ModalStyle.Render(b.String())
}

func (m Model) searchView() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Add to " + string(m.movieList)))
	b.WriteString("\n\n")
	b.WriteString(m.searchInput.View())
	b.WriteString("\n\n")

	if len(m.results) == 0 {
		b.WriteString(styles.DimStyle.Render("type to search"))
	}
	for i, result := range m.results {
		if i >= 8 {
			break
		}
		line := result.Title
		if result.Kind != "" {
			line += " " + styles.DimStyle.Render(result.Kind)
		}
		if i == m.resultCursor {
			b.WriteString(styles.SelectedStyle.Render(line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("enter add · esc cancel"))
	return styles.ModalStyle.Render(b.String())
}

func (m Model) footerView() string {
	if m.showHelp {
		return m.help.FullHelpView(m.keys.FullHelp())
	}

	if m.filtering {
		return m.filterInput.View()
	}

	left := m.help.ShortHelpView(m.keys.ShortHelp())
	if m.status != "" {
		style := styles.SuccessStyle
		if m.statusErr {
			style = styles.ErrorStyle
		}
		return style.Render(m.status)
	}
	return left
}
