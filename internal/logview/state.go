package logview

import "github.com/hande-app/logwatch/internal/models"

// Tab selects which backend source a view is showing.
type Tab string

const (
	TabAudit    Tab = "audit"
	TabSystem   Tab = "system"
	TabActivity Tab = "activity"
)

// Valid reports whether t names a known tab.
func (t Tab) Valid() bool {
	switch t {
	case TabAudit, TabSystem, TabActivity:
		return true
	}
	return false
}

// PageState is the server-side paging position of one tab.
type PageState struct {
	Page    int
	PerPage int
	Meta    models.Pagination
}

// ViewState is the mutable state of one log view session. It is owned by a
// single event loop: every mutation happens inside one callback, never
// concurrently. Each mutation that invalidates in-flight fetches bumps the
// sequence number; ApplyPage discards responses issued under an older one.
type ViewState struct {
	ActiveTab   Tab
	LevelFilter string // client-side, LevelAll or a models.Level
	SearchTerm  string // server-side for the audit tab, client-side otherwise
	TypeFilter  string // server-side system event type, "all" for no filter
	Paused      bool
	LastSeenID  string

	pages map[Tab]*PageState
	seq   uint64
}

// NewViewState creates the state for a fresh session showing the audit tab.
func NewViewState(perPage int) *ViewState {
	pages := make(map[Tab]*PageState)
	for _, tab := range []Tab{TabAudit, TabSystem, TabActivity} {
		pages[tab] = &PageState{Page: 1, PerPage: perPage}
	}
	return &ViewState{
		ActiveTab:   TabAudit,
		LevelFilter: LevelAll,
		TypeFilter:  "all",
		pages:       pages,
	}
}

// Seq returns the current fetch sequence number. A fetch issued now must
// carry this value for its response to be applied.
func (s *ViewState) Seq() uint64 { return s.seq }

// Page returns the paging state of a tab.
func (s *ViewState) Page(tab Tab) PageState { return *s.pages[tab] }

// SwitchTab activates another tab. Each tab keeps its own page position;
// outstanding fetches for the previous tab become stale.
func (s *ViewState) SwitchTab(tab Tab) {
	if !tab.Valid() || tab == s.ActiveTab {
		return
	}
	s.ActiveTab = tab
	s.seq++
}

// SetSearch updates the free-text term. Any change forces the active tab
// back to page 1: a result page must always correspond to the filters that
// produced it.
func (s *ViewState) SetSearch(term string) {
	if term == s.SearchTerm {
		return
	}
	s.SearchTerm = term
	s.resetPage()
}

// SetTypeFilter updates the server-side system event type filter.
func (s *ViewState) SetTypeFilter(eventType string) {
	if eventType == "" {
		eventType = "all"
	}
	if eventType == s.TypeFilter {
		return
	}
	s.TypeFilter = eventType
	s.resetPage()
}

// SetLevelFilter updates the client-side level filter.
func (s *ViewState) SetLevelFilter(level string) {
	if level == "" {
		level = LevelAll
	}
	if level == s.LevelFilter {
		return
	}
	s.LevelFilter = level
	s.resetPage()
}

// SetPage jumps the active tab to an explicit page, clamped at 1. The upper
// bound is enforced against backend metadata once a response arrives.
func (s *ViewState) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	ps := s.pages[s.ActiveTab]
	if page == ps.Page {
		return
	}
	ps.Page = page
	s.seq++
}

// NextPage advances the active tab, guarded by the last page the backend
// reported. Out-of-range requests are ignored, never an error.
func (s *ViewState) NextPage() {
	ps := s.pages[s.ActiveTab]
	if ps.Meta.LastPage > 0 && ps.Page >= ps.Meta.LastPage {
		return
	}
	ps.Page++
	s.seq++
}

// PrevPage goes back one page, never below 1.
func (s *ViewState) PrevPage() {
	ps := s.pages[s.ActiveTab]
	if ps.Page <= 1 {
		return
	}
	ps.Page--
	s.seq++
}

// ApplyPage records the pagination metadata of a completed fetch. A
// response carrying a stale sequence number is discarded so that a slow
// older response can never overwrite the result of a newer one. It reports
// whether the response was applied.
func (s *ViewState) ApplyPage(tab Tab, seq uint64, meta models.Pagination) bool {
	if seq != s.seq {
		return false
	}
	ps := s.pages[tab]
	ps.Meta = meta
	if meta.LastPage > 0 && ps.Page > meta.LastPage {
		ps.Page = meta.LastPage
	}
	return true
}

// Pause freezes auto-follow of the live view. Polling continues.
func (s *ViewState) Pause() { s.Paused = true }

// Resume re-enables auto-follow.
func (s *ViewState) Resume() { s.Paused = false }

// resetPage puts the active tab back on page 1 and invalidates in-flight
// fetches.
func (s *ViewState) resetPage() {
	s.pages[s.ActiveTab].Page = 1
	s.seq++
}

// FetchParams captures everything a server-side fetch for the active tab
// depends on, so a response can be matched back to the state that issued it.
type FetchParams struct {
	Tab     Tab
	Search  string // server-side search, audit tab only
	Type    string // server-side type filter, system tab only
	Page    int
	PerPage int
	Seq     uint64
}

// FetchParams builds the fetch parameters for the active tab under the
// current filters.
func (s *ViewState) FetchParams() FetchParams {
	ps := s.pages[s.ActiveTab]
	p := FetchParams{
		Tab:     s.ActiveTab,
		Page:    ps.Page,
		PerPage: ps.PerPage,
		Seq:     s.seq,
	}
	switch s.ActiveTab {
	case TabAudit:
		p.Search = s.SearchTerm
	case TabSystem:
		p.Type = s.TypeFilter
	}
	return p
}
