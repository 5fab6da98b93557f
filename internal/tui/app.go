package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvidela/duet/internal/config"
	"github.com/nvidela/duet/internal/domain"
	"github.com/nvidela/duet/internal/mutate"
	"github.com/nvidela/duet/internal/reveal"
	"github.com/nvidela/duet/internal/service"
	"github.com/nvidela/duet/internal/store"
	"github.com/nvidela/duet/internal/tui/components"
	"github.com/nvidela/duet/internal/tui/styles"
)

// Tab identifies one of the top-level views
type Tab int

const (
	TabMovies Tab = iota
	TabCoupons
	TabWishlist
	TabPet
	tabCount
)

// String returns the tab's persistence name
func (t Tab) String() string {
	switch t {
	case TabCoupons:
		return "coupons"
	case TabWishlist:
		return "wishlist"
	case TabPet:
		return "pet"
	default:
		return "movies"
	}
}

func tabFromName(name string) Tab {
	switch name {
	case "coupons":
		return TabCoupons
	case "wishlist":
		return TabWishlist
	case "pet":
		return TabPet
	default:
		return TabMovies
	}
}

// Model is the main application model
type Model struct {
	cfg    *config.Config
	logger *slog.Logger
	st     *store.Store

	movies   *service.MovieService
	coupons  *service.CouponService
	products *service.ProductService
	pet      *service.PetService
	search   *service.SearchService

	keys    KeyMap
	help    help.Model
	spinner spinner.Model

	width  int
	height int
	tab    Tab

	// Movies tab
	movieList     domain.ListName
	movieTracker  *mutate.Tracker[*domain.Movie]
	movieRows     components.List
	movieSeq      int
	loadingMovies bool

	// Add-movie search flow
	searchInput  textinput.Model
	searching    bool
	searchSeq    int
	results      []domain.SearchResult
	resultCursor int

	// Coupons tab
	owner          string
	couponTracker  *mutate.Tracker[*domain.Coupon]
	couponRows     components.List
	couponSeq      int
	couponForm     components.Form
	loadingCoupons bool

	// Wishlist tab
	productTracker  *mutate.Tracker[*domain.Product]
	productRows     components.List
	productSeq      int
	productForm     components.Form
	statusFilter    service.StatusFilter
	heartFilter     service.HeartFilter
	productQuery    string
	loadingProducts bool

	// List filter input, shared across tabs
	filterInput textinput.Model
	filtering   bool

	// Pet tab
	petState *domain.Pet

	// Randomized reveal
	revealSession *reveal.Session[*domain.Movie]
	revealGen     int

	// Status bar
	status    string
	statusErr bool
	statusSeq int

	showHelp bool
}

// New creates the application model
func New(
	cfg *config.Config,
	movies *service.MovieService,
	coupons *service.CouponService,
	products *service.ProductService,
	pet *service.PetService,
	search *service.SearchService,
	st *store.Store,
	logger *slog.Logger,
) Model {
	if logger == nil {
		logger = slog.Default()
	}

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = styles.AccentStyle

	searchInput := textinput.New()
	searchInput.Placeholder = "search a title..."
	searchInput.CharLimit = 80
	searchInput.Width = 40

	filterInput := textinput.New()
	filterInput.Placeholder = "filter..."
	filterInput.CharLimit = 60
	filterInput.Width = 30
	filterInput.Prompt = "/"

	tab := tabFromName(cfg.UI.DefaultTab)
	if st != nil {
		if saved, ok := st.ActiveTab(); ok {
			tab = tabFromName(saved)
		}
	}

	return Model{
		cfg:            cfg,
		logger:         logger,
		st:             st,
		movies:         movies,
		coupons:        coupons,
		products:       products,
		pet:            pet,
		search:         search,
		keys:           DefaultKeyMap(),
		help:           help.New(),
		spinner:        sp,
		tab:            tab,
		movieList:      domain.ListBarbara,
		movieTracker:   mutate.NewTracker(movies.Cache()),
		couponTracker:  mutate.NewTracker(coupons.Cache()),
		productTracker: mutate.NewTracker(products.Cache()),
		owner:          cfg.Owners.First,
		searchInput:    searchInput,
		filterInput:    filterInput,
		couponForm:     components.NewForm(),
		productForm:    components.NewForm(),
		movieRows:      components.NewList(),
		couponRows:     components.NewList(),
		productRows:    components.NewList(),
	}
}

// initMsg kicks off the first tab activation inside Update, where model
// mutations stick
type initMsg struct{}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, func() tea.Msg { return initMsg{} })
}

// activateTab seeds the active tab from the last persisted snapshot and
// kicks off the real fetch. Already-cached filter keys resolve from memory
// without touching the network.
func (m *Model) activateTab() tea.Cmd {
	switch m.tab {
	case TabMovies:
		m.movieSeq++
		if snap, ok := m.movies.Snapshot(m.movieList); ok {
			m.movieTracker.SetSlice(string(m.movieList), snap)
			m.rebuildMovieRows()
		}
		m.loadingMovies = true
		return m.loadMoviesCmd(m.movieList, m.movieSeq, false)
	case TabCoupons:
		m.couponSeq++
		if snap, ok := m.coupons.Snapshot(m.owner); ok {
			m.couponTracker.SetSlice(m.owner, snap)
			m.rebuildCouponRows()
		}
		m.loadingCoupons = true
		return m.loadCouponsCmd(m.owner, m.couponSeq, false)
	case TabWishlist:
		m.productSeq++
		if snap, ok := m.products.Snapshot(); ok {
			m.productTracker.SetSlice(m.products.Key(), snap)
			m.rebuildProductRows()
		}
		m.loadingProducts = true
		return m.loadProductsCmd(m.productSeq, false)
	case TabPet:
		if m.petState == nil {
			if snap, ok := m.pet.Snapshot(); ok {
				m.petState = snap
			}
		}
		return m.loadPetCmd()
	}
	return nil
}

func (m *Model) switchTab(t Tab) tea.Cmd {
	m.tab = t
	m.filtering = false
	if m.st != nil {
		if err := m.st.SaveActiveTab(t.String()); err != nil {
			m.logger.Warn("failed to persist active tab", "error", err)
		}
	}
	return m.activateTab()
}

// setStatus replaces the status bar message and schedules its expiry
func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.status = msg
	m.statusErr = isErr
	m.statusSeq++
	return clearStatusCmd(m.statusSeq)
}

// friendlyError maps sentinel errors to short human messages
func friendlyError(err error) string {
	switch {
	case errors.Is(err, domain.ErrServerOffline):
		return "server unreachable"
	case errors.Is(err, domain.ErrNotFound):
		return "not found on server"
	case errors.Is(err, domain.ErrInvalidInput):
		return "server rejected the request"
	case errors.Is(err, domain.ErrMutationPending):
		return "previous change still in flight"
	default:
		return err.Error()
	}
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		listHeight := m.height - 8
		m.movieRows.SetHeight(listHeight)
		m.couponRows.SetHeight(listHeight)
		m.productRows.SetHeight(listHeight)
		m.help.Width = msg.Width
		return m, nil

	case initMsg:
		return m, m.activateTab()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case MoviesLoadedMsg:
		if msg.Seq != m.movieSeq || msg.List != m.movieList {
			return m, nil
		}
		m.loadingMovies = false
		m.movieTracker.SetSlice(string(msg.List), msg.Movies)
		m.rebuildMovieRows()
		return m, nil

	case MovieAddedMsg:
		var cmds []tea.Cmd
		if m.movieTracker.Key() == string(msg.Movie.List) {
			m.movieTracker.Add(msg.Movie)
			m.rebuildMovieRows()
		}
		cmds = append(cmds,
			m.setStatus(fmt.Sprintf("added %q to %s", msg.Movie.Title, msg.Movie.List), false),
			m.notifyPetCmd(domain.InteractAddMovie),
		)
		return m, tea.Batch(cmds...)

	case MovieWatchedMsg:
		removed := m.movieList == domain.ListWatched && !msg.Movie.Watched
		m.movieTracker.Confirm(msg.ID, msg.Movie, removed)
		m.rebuildMovieRows()
		if msg.Movie.Watched {
			return m, m.notifyPetCmd(domain.InteractMarkWatched)
		}
		return m, nil

	case MovieDeletedMsg:
		m.movieTracker.Confirm(msg.ID, nil, true)
		m.rebuildMovieRows()
		return m, m.notifyPetCmd(domain.InteractDeleteMovie)

	case SearchDebounceMsg:
		if msg.Seq != m.searchSeq || msg.Query != m.searchInput.Value() {
			return m, nil
		}
		return m, m.searchTitlesCmd(msg.Query, msg.Seq)

	case SearchResultsMsg:
		if msg.Seq != m.searchSeq || !m.searching {
			return m, nil
		}
		m.results = msg.Results
		m.resultCursor = 0
		return m, nil

	case CouponsLoadedMsg:
		if msg.Seq != m.couponSeq || msg.Owner != m.owner {
			return m, nil
		}
		m.loadingCoupons = false
		m.couponTracker.SetSlice(msg.Owner, msg.Coupons)
		m.rebuildCouponRows()
		return m, nil

	case CouponCreatedMsg:
		var cmds []tea.Cmd
		if msg.Coupon.Owner == m.owner {
			m.couponTracker.Add(msg.Coupon)
			m.rebuildCouponRows()
		}
		cmds = append(cmds,
			m.setStatus(fmt.Sprintf("created coupon %q", msg.Coupon.Title), false),
			m.notifyPetCmd(domain.InteractAddCoupon),
		)
		return m, tea.Batch(cmds...)

	case CouponRedeemedMsg:
		m.couponTracker.Confirm(msg.ID, msg.Coupon, msg.Removed)
		m.rebuildCouponRows()
		var cmds []tea.Cmd
		if msg.Removed {
			cmds = append(cmds, m.setStatus("coupon redeemed and spent", false))
		}
		if msg.Removed || (msg.Coupon != nil && msg.Coupon.Redeemed) {
			cmds = append(cmds, m.notifyPetCmd(domain.InteractRedeemCoupon))
		}
		return m, tea.Batch(cmds...)

	case CouponDeletedMsg:
		m.couponTracker.Confirm(msg.ID, nil, true)
		m.rebuildCouponRows()
		return m, nil

	case ProductsLoadedMsg:
		if msg.Seq != m.productSeq {
			return m, nil
		}
		m.loadingProducts = false
		m.productTracker.SetSlice(m.products.Key(), msg.Products)
		m.rebuildProductRows()
		return m, nil

	case ProductCreatedMsg:
		m.productTracker.Add(msg.Product)
		m.rebuildProductRows()
		return m, tea.Batch(
			m.setStatus(fmt.Sprintf("added %q to the wishlist", msg.Product.Name), false),
			m.notifyPetCmd(domain.InteractAddProduct),
		)

	case ProductUpdatedMsg:
		m.productTracker.Confirm(msg.ID, msg.Product, false)
		m.rebuildProductRows()
		return m, m.notifyPetCmd(msg.Kind)

	case ProductDeletedMsg:
		m.productTracker.Confirm(msg.ID, nil, true)
		m.rebuildProductRows()
		return m, m.notifyPetCmd(domain.InteractDeleteProduct)

	case PetLoadedMsg:
		m.petState = msg.Pet
		return m, nil

	case PetNotifiedMsg:
		if msg.Pet != nil {
			m.petState = msg.Pet
		}
		return m, nil

	case RevealTickMsg:
		if msg.Gen != m.revealGen || m.revealSession == nil {
			return m, nil
		}
		_, _, settled := m.revealSession.Advance(time.Now())
		if settled {
			return m, nil
		}
		return m, revealTickCmd(m.revealGen)

	case MutationFailedMsg:
		switch msg.Tab {
		case TabMovies:
			m.movieTracker.Fail(msg.ID)
			m.rebuildMovieRows()
		case TabCoupons:
			m.couponTracker.Fail(msg.ID)
			m.rebuildCouponRows()
		case TabWishlist:
			m.productTracker.Fail(msg.ID)
			m.rebuildProductRows()
		}
		return m, m.setStatus(friendlyError(msg.Err), true)

	case ErrMsg:
		m.loadingMovies = false
		m.loadingCoupons = false
		m.loadingProducts = false
		m.logger.Error("ui error", "context", msg.Context, "error", msg.Err)
		return m, m.setStatus(msg.Context+": "+friendlyError(msg.Err), true)

	case StatusMsg:
		return m, m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		if msg.Seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Modal layers swallow keys before global bindings apply
	if m.revealSession != nil {
		return m.handleRevealKey(msg)
	}
	if m.couponForm.IsVisible() {
		return m.handleCouponFormKey(msg)
	}
	if m.productForm.IsVisible() {
		return m.handleProductFormKey(msg)
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}
	if m.filtering {
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.NextTab):
		return m, m.switchTab((m.tab + 1) % tabCount)

	case key.Matches(msg, m.keys.PrevTab):
		return m, m.switchTab((m.tab - 1 + tabCount) % tabCount)

	case key.Matches(msg, m.keys.Escape):
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		if m.tab == TabWishlist && m.productQuery != "" {
			m.productQuery = ""
			m.rebuildProductRows()
			return m, nil
		}
		if q := m.activeRows().Query(); q != "" {
			m.activeRows().SetQuery("")
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.activeRows().MoveUp()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.activeRows().MoveDown()
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.activeRows().GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.activeRows().GotoBottom()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refresh()

	case key.Matches(msg, m.keys.HardReset):
		return m, m.hardReset()

	case key.Matches(msg, m.keys.Filter):
		if m.tab == TabPet {
			return m, nil
		}
		m.filtering = true
		if m.tab == TabWishlist {
			m.filterInput.SetValue(m.productQuery)
		} else {
			m.filterInput.SetValue(m.activeRows().Query())
		}
		m.filterInput.Focus()
		return m, nil
	}

	switch m.tab {
	case TabMovies:
		return m.handleMovieKey(msg)
	case TabCoupons:
		return m.handleCouponKey(msg)
	case TabWishlist:
		return m.handleProductKey(msg)
	}
	return m, nil
}

func (m Model) handleMovieKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.List1):
		return m, m.selectMovieList(domain.ListBarbara)
	case key.Matches(msg, m.keys.List2):
		return m, m.selectMovieList(domain.ListNico)
	case key.Matches(msg, m.keys.List3):
		return m, m.selectMovieList(domain.ListShared)
	case key.Matches(msg, m.keys.List4):
		return m, m.selectMovieList(domain.ListWatched)

	case key.Matches(msg, m.keys.Add):
		m.searching = true
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		m.results = nil
		m.resultCursor = 0
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Toggle):
		row, ok := m.movieRows.Selected()
		if !ok {
			return m, nil
		}
		movie, ok := m.movieTracker.Item(row.ID)
		if !ok {
			return m, nil
		}
		if err := m.movieTracker.Begin(movie.ID); err != nil {
			return m, m.setStatus(friendlyError(err), true)
		}
		watched := !movie.Watched
		m.movieTracker.Speculate(movie.ID, func(mv *domain.Movie) *domain.Movie {
			flipped := *mv
			flipped.Watched = watched
			return &flipped
		})
		m.rebuildMovieRows()
		return m, m.setWatchedCmd(movie, watched)

	case key.Matches(msg, m.keys.Delete):
		row, ok := m.movieRows.Selected()
		if !ok {
			return m, nil
		}
		movie, ok := m.movieTracker.Item(row.ID)
		if !ok {
			return m, nil
		}
		if err := m.movieTracker.Begin(movie.ID); err != nil {
			return m, m.setStatus(friendlyError(err), true)
		}
		m.rebuildMovieRows()
		return m, m.deleteMovieCmd(movie)

	case key.Matches(msg, m.keys.Reveal):
		return m.startReveal()
	}
	return m, nil
}

func (m Model) handleCouponKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Owner):
		if m.owner == m.cfg.Owners.First {
			m.owner = m.cfg.Owners.Second
		} else {
			m.owner = m.cfg.Owners.First
		}
		return m, m.activateTab()

	case key.Matches(msg, m.keys.Add):
		m.couponForm.Show("New coupon for "+m.owner, []components.FieldSpec{
			{Label: "Title", Placeholder: "breakfast in bed"},
			{Label: "Description", Placeholder: "what is it good for?"},
			{Label: "Reusable (y/n)", Placeholder: "n", CharLimit: 1},
			{Label: "Expires (YYYY-MM-DD, empty = never)", Placeholder: "", CharLimit: 10},
		})
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Toggle):
		row, ok := m.couponRows.Selected()
		if !ok {
			return m, nil
		}
		coupon, ok := m.couponTracker.Item(row.ID)
		if !ok {
			return m, nil
		}
		redeemed := !coupon.Redeemed
		if redeemed && !coupon.Redeemable(time.Now()) {
			return m, m.setStatus("that coupon is spent", true)
		}
		if err := m.couponTracker.Begin(coupon.ID); err != nil {
			return m, m.setStatus(friendlyError(err), true)
		}
		m.couponTracker.Speculate(coupon.ID, func(c *domain.Coupon) *domain.Coupon {
			flipped := *c
			flipped.Redeemed = redeemed
			return &flipped
		})
		m.rebuildCouponRows()
		return m, m.redeemCouponCmd(coupon, redeemed)

	case key.Matches(msg, m.keys.Delete):
		row, ok := m.couponRows.Selected()
		if !ok {
			return m, nil
		}
		coupon, ok := m.couponTracker.Item(row.ID)
		if !ok {
			return m, nil
		}
		if err := m.couponTracker.Begin(coupon.ID); err != nil {
			return m, m.setStatus(friendlyError(err), true)
		}
		m.rebuildCouponRows()
		return m, m.deleteCouponCmd(coupon)
	}
	return m, nil
}

func (m Model) handleProductKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Add):
		m.productForm.Show("New wishlist item", []components.FieldSpec{
			{Label: "Name", Placeholder: "something nice"},
			{Label: "Image URL", Placeholder: "https://..."},
			{Label: "Store name", Placeholder: ""},
			{Label: "Store link", Placeholder: "https://..."},
		})
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Toggle):
		row, ok := m.productRows.Selected()
		if !ok {
			return m, nil
		}
		product, ok := m.productTracker.Item(row.ID)
		if !ok {
			return m, nil
		}
		if err := m.productTracker.Begin(product.ID); err != nil {
			return m, m.setStatus(friendlyError(err), true)
		}
		m.productTracker.Speculate(product.ID, func(p *domain.Product) *domain.Product {
			flipped := *p
			flipped.Bought = !p.Bought
			return &flipped
		})
		m.rebuildProductRows()
		return m, m.toggleBoughtCmd(product)

	case key.Matches(msg, m.keys.LikeFirst):
		return m.toggleLike(domain.ReactorBarbara)

	case key.Matches(msg, m.keys.LikeSecond):
		return m.toggleLike(domain.ReactorNico)

	case key.Matches(msg, m.keys.CycleStatus):
		m.statusFilter = (m.statusFilter + 1) % 3
		m.rebuildProductRows()
		return m, nil

	case key.Matches(msg, m.keys.CycleHeart):
		m.heartFilter = (m.heartFilter + 1) % 4
		m.rebuildProductRows()
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		row, ok := m.productRows.Selected()
		if !ok {
			return m, nil
		}
		product, ok := m.productTracker.Item(row.ID)
		if !ok {
			return m, nil
		}
		if err := m.productTracker.Begin(product.ID); err != nil {
			return m, m.setStatus(friendlyError(err), true)
		}
		m.rebuildProductRows()
		return m, m.deleteProductCmd(product)
	}
	return m, nil
}

// toggleLike flips a heart for one of the two fixed reactors. The keymap
// maps the first owner's key to ReactorBarbara and the second to
// ReactorNico, so renaming the owners in config never breaks likes.
func (m Model) toggleLike(reactor string) (tea.Model, tea.Cmd) {
	row, ok := m.productRows.Selected()
	if !ok {
		return m, nil
	}
	product, ok := m.productTracker.Item(row.ID)
	if !ok {
		return m, nil
	}
	if err := m.productTracker.Begin(product.ID); err != nil {
		return m, m.setStatus(friendlyError(err), true)
	}
	m.productTracker.Speculate(product.ID, func(p *domain.Product) *domain.Product {
		flipped := *p
		switch reactor {
		case domain.ReactorBarbara:
			flipped.LikeBarbara = !p.LikeBarbara
		case domain.ReactorNico:
			flipped.LikeNico = !p.LikeNico
		}
		return &flipped
	})
	m.rebuildProductRows()
	return m, m.toggleLikeCmd(product, reactor)
}

func (m *Model) selectMovieList(list domain.ListName) tea.Cmd {
	if m.movieList == list {
		return nil
	}
	m.movieList = list
	m.movieRows.SetQuery("")
	return m.activateTab()
}

// hardReset throws away every in-memory cache and the persisted
// snapshots, then refetches the active tab from the server.
func (m *Model) hardReset() tea.Cmd {
	m.movies.Cache().InvalidateAll()
	m.coupons.Cache().InvalidateAll()
	m.products.Cache().InvalidateAll()
	if m.st != nil {
		if err := m.st.InvalidateAll(); err != nil {
			m.logger.Warn("failed to clear persisted snapshots", "error", err)
		}
	}
	m.petState = nil
	return tea.Batch(m.activateTab(), m.setStatus("local data cleared", false))
}

func (m *Model) refresh() tea.Cmd {
	switch m.tab {
	case TabMovies:
		m.movieSeq++
		m.loadingMovies = true
		return m.loadMoviesCmd(m.movieList, m.movieSeq, true)
	case TabCoupons:
		m.couponSeq++
		m.loadingCoupons = true
		return m.loadCouponsCmd(m.owner, m.couponSeq, true)
	case TabWishlist:
		m.productSeq++
		m.loadingProducts = true
		return m.loadProductsCmd(m.productSeq, true)
	case TabPet:
		return m.loadPetCmd()
	}
	return nil
}

func (m Model) startReveal() (tea.Model, tea.Cmd) {
	var pool []*domain.Movie
	for _, movie := range m.movieTracker.Items() {
		if !movie.Watched {
			pool = append(pool, movie)
		}
	}

	session, err := reveal.NewSession(pool, nil)
	if err != nil {
		return m, m.setStatus("need at least two unwatched movies to pick from", true)
	}

	m.revealGen++
	m.revealSession = session
	m.revealSession.Start(time.Now())
	return m, revealTickCmd(m.revealGen)
}

func (m Model) handleRevealKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.revealSession.Cancel()
		m.revealSession = nil
		m.revealGen++
		return m, nil
	case "enter":
		if m.revealSession.Settled() {
			m.revealSession = nil
			m.revealGen++
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		m.results = nil
		return m, nil
	case "up":
		if m.resultCursor > 0 {
			m.resultCursor--
		}
		return m, nil
	case "down":
		if m.resultCursor < len(m.results)-1 {
			m.resultCursor++
		}
		return m, nil
	case "enter":
		if m.resultCursor >= len(m.results) {
			return m, nil
		}
		result := m.results[m.resultCursor]
		m.searching = false
		m.searchInput.Blur()
		m.results = nil

		list := m.movieList
		if list == domain.ListWatched {
			list = domain.ListShared
		}
		return m, m.addMovieCmd(domain.NewMovie{
			Title:  result.Title,
			APIID:  result.APIID,
			List:   list,
			Poster: result.Poster,
		})
	}

	prev := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() != prev {
		m.searchSeq++
		return m, tea.Batch(cmd, searchDebounceCmd(m.searchInput.Value(), m.searchSeq))
	}
	return m, cmd
}

// handleFilterKey routes the filter input. On the wishlist the query
// feeds the product filter pipeline next to the status and heart
// filters; the other tabs filter their rendered rows directly.
func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filtering = false
		m.filterInput.Blur()
		m.setFilterQuery("")
		return m, nil
	case "enter":
		m.filtering = false
		m.filterInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.setFilterQuery(m.filterInput.Value())
	return m, cmd
}

func (m *Model) setFilterQuery(query string) {
	if m.tab == TabWishlist {
		m.productQuery = query
		m.rebuildProductRows()
		return
	}
	m.activeRows().SetQuery(query)
}

func (m Model) handleCouponFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form, cmd, submitted := m.couponForm.Update(msg)
	m.couponForm = form
	if !submitted {
		return m, cmd
	}

	values := m.couponForm.Values()
	m.couponForm.Hide()

	if values[0] == "" {
		return m, m.setStatus("a coupon needs a title", true)
	}

	nc := domain.NewCoupon{
		Title:       values[0],
		Description: values[1],
		Owner:       m.owner,
		Reusable:    values[2] == "y" || values[2] == "Y",
	}
	if values[3] != "" {
		expires, err := time.Parse("2006-01-02", values[3])
		if err != nil {
			return m, m.setStatus("expiry must look like 2025-12-31", true)
		}
		nc.ExpiresAt = &expires
	}
	return m, m.createCouponCmd(nc)
}

func (m Model) handleProductFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form, cmd, submitted := m.productForm.Update(msg)
	m.productForm = form
	if !submitted {
		return m, cmd
	}

	values := m.productForm.Values()
	m.productForm.Hide()

	if values[0] == "" {
		return m, m.setStatus("a wishlist item needs a name", true)
	}

	return m, m.createProductCmd(domain.NewProduct{
		Name:      values[0],
		ImageURL:  values[1],
		StoreName: values[2],
		StoreLink: values[3],
	})
}

// activeRows returns the list component for the current tab
func (m *Model) activeRows() *components.List {
	switch m.tab {
	case TabCoupons:
		return &m.couponRows
	case TabWishlist:
		return &m.productRows
	default:
		return &m.movieRows
	}
}

func (m *Model) rebuildMovieRows() {
	items := m.movieTracker.Items()
	rows := make([]components.Row, 0, len(items))
	for _, movie := range items {
		rows = append(rows, components.Row{
			ID:      movie.ID,
			Title:   movie.Title,
			Done:    movie.Watched,
			Pending: m.movieTracker.Pending(movie.ID),
		})
	}
	m.movieRows.SetRows(rows)
}

func (m *Model) rebuildCouponRows() {
	items := m.couponTracker.Items()
	now := time.Now()
	rows := make([]components.Row, 0, len(items))
	for _, coupon := range items {
		if coupon.Redeemed && !m.cfg.UI.ShowRedeemed {
			continue
		}
		badge := ""
		if coupon.Reusable {
			badge = styles.AccentStyle.Render("↻")
		}
		if coupon.Expired(now) {
			badge = styles.ErrorStyle.Render("expired")
		}
		rows = append(rows, components.Row{
			ID:          coupon.ID,
			Title:       coupon.Title,
			Description: coupon.GetDescription(),
			Done:        coupon.Redeemed,
			Pending:     m.couponTracker.Pending(coupon.ID),
			Badge:       badge,
		})
	}
	m.couponRows.SetRows(rows)
}

func (m *Model) rebuildProductRows() {
	filtered := service.Filter(m.productTracker.Items(), m.statusFilter, m.heartFilter, m.productQuery)
	rows := make([]components.Row, 0, len(filtered))
	for _, product := range filtered {
		badge := ""
		if product.LikeBarbara {
			badge += styles.Heart + styles.DimStyle.Render("B")
		}
		if product.LikeNico {
			if badge != "" {
				badge += " "
			}
			badge += styles.Heart + styles.DimStyle.Render("N")
		}
		rows = append(rows, components.Row{
			ID:          product.ID,
			Title:       product.Name,
			Description: product.GetDescription(),
			Done:        product.Bought,
			Pending:     m.productTracker.Pending(product.ID),
			Badge:       badge,
		})
	}
	m.productRows.SetRows(rows)
}
